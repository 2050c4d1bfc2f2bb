package engine

import (
	"github.com/tholloway/roguecore/pkg/combat"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/level"
	"github.com/tholloway/roguecore/pkg/tile"
)

// TurnResult is everything a host needs after one ResolveTurn call.
type TurnResult struct {
	State                GameState     `json:"state"`
	Events               []GameEvent   `json:"events"`
	GameOver             *GameOverInfo `json:"game_over,omitempty"`
	AutoExploreInterrupt *string       `json:"auto_explore_interrupt,omitempty"`
}

// GameState is the renderable snapshot of the world from the player's
// perspective.
type GameState struct {
	Player       PlayerSummary `json:"player"`
	Tiles        []TileView    `json:"tiles"`
	Entities     []EntityView  `json:"entities"`
	Floor        uint32        `json:"floor"`
	Turn         uint32        `json:"turn"`
	Messages     []LogMessage  `json:"messages"`
	Minimap      []byte        `json:"minimap"`
	MinimapWidth int           `json:"minimap_width"`
	PendingLevel bool          `json:"pending_level_up"`
}

// PlayerSummary is the HUD block.
type PlayerSummary struct {
	HP        int           `json:"hp"`
	MaxHP     int           `json:"max_hp"`
	Attack    int           `json:"attack"`
	Defense   int           `json:"defense"`
	Speed     int           `json:"speed"`
	Level     uint32        `json:"level"`
	XP        uint32        `json:"xp"`
	XPToNext  uint32        `json:"xp_to_next"`
	Gold      uint32        `json:"gold"`
	Mana      int           `json:"mana"`
	MaxMana   int           `json:"max_mana"`
	Position  tile.Position `json:"position"`
	Inventory []ItemView    `json:"inventory"`
	Equipment EquipmentView `json:"equipment"`
	Statuses  []StatusView  `json:"statuses"`
	Abilities []AbilityView `json:"abilities"`
}

// AbilityView is one castable ability for HUD display; Index is what
// UseAbility takes.
type AbilityView struct {
	Index       int    `json:"index"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	ManaCost    int    `json:"mana_cost"`
	Description string `json:"description"`
}

// ItemView is one pack slot as the host sees it.
type ItemView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Glyph    string `json:"glyph"`
	Equipped bool   `json:"equipped"`
	Charges  uint32 `json:"charges,omitempty"`
}

// EquipmentView names what occupies each slot, empty string for none.
type EquipmentView struct {
	MainHand string `json:"main_hand,omitempty"`
	OffHand  string `json:"off_hand,omitempty"`
	Head     string `json:"head,omitempty"`
	Body     string `json:"body,omitempty"`
	Ring     string `json:"ring,omitempty"`
	Amulet   string `json:"amulet,omitempty"`
}

// StatusView is one active status effect for HUD display.
type StatusView struct {
	Name      string `json:"name"`
	Duration  uint32 `json:"duration"`
	Magnitude int    `json:"magnitude"`
}

// TileView describes one currently visible or previously explored tile.
type TileView struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
}

// EntityView describes one entity inside the player's FOV.
type EntityView struct {
	ID    entity.ID     `json:"id"`
	Name  string        `json:"name"`
	Glyph string        `json:"glyph"`
	Pos   tile.Position `json:"pos"`
	HP    int           `json:"hp,omitempty"`
	MaxHP int           `json:"max_hp,omitempty"`
}

// GameOverInfo summarizes a finished run.
type GameOverInfo struct {
	RunSummary RunSummary `json:"run_summary"`
	FinalScore uint32     `json:"final_score"`
}

// RunSummary is the tally the host persists when a run ends.
type RunSummary struct {
	Victory       bool   `json:"victory"`
	Floor         uint32 `json:"floor"`
	Turns         uint32 `json:"turns"`
	Level         uint32 `json:"level"`
	EnemiesKilled uint32 `json:"enemies_killed"`
	BossesKilled  uint32 `json:"bosses_killed"`
	Gold          uint32 `json:"gold"`
	DeathCause    string `json:"death_cause,omitempty"`
}

// Minimap cell codes.
const (
	MinimapUnknown byte = 0
	MinimapWall    byte = 1
	MinimapFloor   byte = 2
	MinimapStairs  byte = 3
)

// buildResult assembles the TurnResult for the just-resolved turn.
func (w *World) buildResult(interrupt *string) *TurnResult {
	result := &TurnResult{
		State:                w.buildGameState(),
		Events:               w.events,
		AutoExploreInterrupt: interrupt,
	}
	w.events = nil
	if w.gameOver {
		result.GameOver = w.buildGameOverInfo()
	}
	return result
}

func (w *World) buildGameOverInfo() *GameOverInfo {
	return &GameOverInfo{
		RunSummary: RunSummary{
			Victory:       w.victory,
			Floor:         w.floor,
			Turns:         w.turn,
			Level:         w.playerLevel + 1,
			EnemiesKilled: w.enemiesKilled,
			BossesKilled:  w.bossesKilled,
			Gold:          w.gold,
			DeathCause:    w.lastDamageSource,
		},
		FinalScore: level.CalculateScore(w.floor, w.enemiesKilled, w.bossesKilled, w.playerLevel+1, w.victory),
	}
}

func (w *World) buildGameState() GameState {
	player := w.player()
	return GameState{
		Player:       w.buildPlayerSummary(player),
		Tiles:        w.buildTileViews(player),
		Entities:     w.buildEntityViews(player),
		Floor:        w.floor,
		Turn:         w.turn,
		Messages:     w.recentMessages(),
		Minimap:      w.buildMinimap(),
		MinimapWidth: w.gameMap.Width,
		PendingLevel: w.pendingLevelUp,
	}
}

func (w *World) buildPlayerSummary(player *entity.Entity) PlayerSummary {
	summary := PlayerSummary{
		Attack:   combat.EffectiveAttack(player),
		Defense:  combat.EffectiveDefense(player),
		Speed:    combat.EffectiveSpeed(player),
		Level:    w.playerLevel + 1,
		XP:       w.playerXP,
		XPToNext: level.XPToNextLevel(w.playerLevel + 1),
		Gold:     w.gold,
		Position: player.Position,
	}
	if player.Health != nil {
		summary.HP = player.Health.Current
		summary.MaxHP = player.Health.Max
	}
	if player.Combat != nil {
		summary.Mana = player.Combat.Mana
		summary.MaxMana = player.Combat.MaxMana
	}
	for i, ability := range w.tables.AbilitiesForClass(w.class) {
		summary.Abilities = append(summary.Abilities, AbilityView{
			Index:       i,
			ID:          ability.ID,
			Name:        ability.Name,
			ManaCost:    ability.ManaCost,
			Description: ability.Description,
		})
	}
	if player.Inventory != nil {
		for i, item := range player.Inventory.Items {
			view := ItemView{
				Index:    i,
				Name:     item.Name,
				Glyph:    string(item.Glyph),
				Equipped: w.isEquipped(player, item),
			}
			if item.Item != nil && item.Item.Charges != nil {
				view.Charges = *item.Item.Charges
			}
			summary.Inventory = append(summary.Inventory, view)
		}
	}
	if player.Equipment != nil && player.Inventory != nil {
		name := func(id *entity.ID) string {
			if id == nil {
				return ""
			}
			for _, item := range player.Inventory.Items {
				if item.ID == *id {
					return item.Name
				}
			}
			return ""
		}
		summary.Equipment = EquipmentView{
			MainHand: name(player.Equipment.MainHand),
			OffHand:  name(player.Equipment.OffHand),
			Head:     name(player.Equipment.Head),
			Body:     name(player.Equipment.Body),
			Ring:     name(player.Equipment.Ring),
			Amulet:   name(player.Equipment.Amulet),
		}
	}
	for _, eff := range player.StatusEffects {
		summary.Statuses = append(summary.Statuses, StatusView{
			Name:      eff.Type.String(),
			Duration:  eff.Duration,
			Magnitude: eff.Magnitude,
		})
	}
	return summary
}

// buildTileViews lists every revealed tile, flagging the currently visible
// ones.
func (w *World) buildTileViews(player *entity.Entity) []TileView {
	var views []TileView
	for y := 0; y < w.gameMap.Height; y++ {
		for x := 0; x < w.gameMap.Width; x++ {
			if !w.gameMap.IsRevealed(x, y) {
				continue
			}
			visible := player.FOV != nil && player.FOV.VisibleTiles[tile.Position{X: x, Y: y}]
			views = append(views, TileView{
				X:       x,
				Y:       y,
				Kind:    w.gameMap.At(x, y).String(),
				Visible: visible,
			})
		}
	}
	return views
}

// buildEntityViews lists non-player entities inside the player's FOV, in
// insertion order.
func (w *World) buildEntityViews(player *entity.Entity) []EntityView {
	if player.FOV == nil {
		return nil
	}
	var views []EntityView
	for _, e := range w.entities.All() {
		if e.ID == PlayerID || !player.FOV.VisibleTiles[e.Position] {
			continue
		}
		view := EntityView{
			ID:    e.ID,
			Name:  e.Name,
			Glyph: string(e.Glyph),
			Pos:   e.Position,
		}
		if e.Health != nil {
			view.HP = e.Health.Current
			view.MaxHP = e.Health.Max
		}
		views = append(views, view)
	}
	return views
}

// buildMinimap encodes the revealed map one byte per tile.
func (w *World) buildMinimap() []byte {
	out := make([]byte, w.gameMap.Width*w.gameMap.Height)
	for y := 0; y < w.gameMap.Height; y++ {
		for x := 0; x < w.gameMap.Width; x++ {
			i := w.gameMap.Idx(x, y)
			if !w.gameMap.Revealed[i] {
				continue
			}
			switch w.gameMap.Tiles[i] {
			case tile.Wall:
				out[i] = MinimapWall
			case tile.DownStairs, tile.UpStairs:
				out[i] = MinimapStairs
			default:
				out[i] = MinimapFloor
			}
		}
	}
	return out
}
