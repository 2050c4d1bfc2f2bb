package engine

import (
	"encoding/json"
	"fmt"

	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// worldJSON is the on-disk shape of a World. The PRNG state is not part of
// it: loading re-seeds from seed+turn, so random outcomes after a load
// diverge from the original run. That trade keeps the save format free of
// generator internals.
type worldJSON struct {
	Seed  uint64 `json:"seed"`
	Floor uint32 `json:"floor"`
	Turn  uint32 `json:"turn"`
	Class string `json:"class"`

	MapWidth  int         `json:"map_width"`
	MapHeight int         `json:"map_height"`
	Tiles     []tile.Kind `json:"tiles"`
	Revealed  []bool      `json:"revealed"`
	Rooms     []tile.Room `json:"rooms"`

	Entities []entityJSON `json:"entities"`

	Messages []LogMessage `json:"messages"`

	PlayerLevel    uint32 `json:"player_level"`
	PlayerXP       uint32 `json:"player_xp"`
	PendingLevelUp bool   `json:"pending_level_up"`

	CleaveBonus     int `json:"cleave_bonus,omitempty"`
	SpellPowerBonus int `json:"spell_power_bonus,omitempty"`
	ManaRegenBonus  int `json:"mana_regen_bonus,omitempty"`

	EnemiesKilled uint32 `json:"enemies_killed"`
	BossesKilled  uint32 `json:"bosses_killed"`
	Gold          uint32 `json:"gold"`

	GameOver         bool   `json:"game_over"`
	Victory          bool   `json:"victory"`
	LastDamageSource string `json:"last_damage_source,omitempty"`

	SpottedEnemies []entity.ID `json:"spotted_enemies"`

	PoisonStrike *entity.OnHitEffect `json:"poison_strike,omitempty"`
}

// entityJSON flattens an Entity and its components. Visible-tile sets are
// omitted; FOVs reload dirty and recompute on the first turn.
type entityJSON struct {
	ID             entity.ID     `json:"id"`
	Name           string        `json:"name"`
	Position       tile.Position `json:"position"`
	Glyph          string        `json:"glyph"`
	RenderOrder    uint8         `json:"render_order"`
	BlocksMovement bool          `json:"blocks_movement"`
	BlocksFOV      bool          `json:"blocks_fov,omitempty"`
	Energy         int           `json:"energy,omitempty"`
	FlavorText     string        `json:"flavor_text,omitempty"`

	Health      *entity.Health                `json:"health,omitempty"`
	Combat      *entity.CombatStats           `json:"combat,omitempty"`
	AI          *entity.AIBehavior            `json:"ai,omitempty"`
	Equipment   *entity.EquipmentSlots        `json:"equipment,omitempty"`
	Item        *entity.ItemProperties        `json:"item,omitempty"`
	Statuses    []status.Effect               `json:"statuses,omitempty"`
	FOVRadius   int                           `json:"fov_radius,omitempty"`
	Door        *entity.DoorState             `json:"door,omitempty"`
	Trap        *entity.TrapProperties        `json:"trap,omitempty"`
	Stair       *entity.StairDirection        `json:"stair,omitempty"`
	Loot        *entity.LootTable             `json:"loot,omitempty"`
	Shop        *entity.ShopInventory         `json:"shop,omitempty"`
	Interactive *entity.InteractiveProperties `json:"interactive,omitempty"`
	Elite       *entity.EliteModifier         `json:"elite,omitempty"`

	InventoryMax   int          `json:"inventory_max,omitempty"`
	InventoryItems []entityJSON `json:"inventory_items,omitempty"`
}

func toEntityJSON(e *entity.Entity) entityJSON {
	ej := entityJSON{
		ID:             e.ID,
		Name:           e.Name,
		Position:       e.Position,
		Glyph:          string(e.Glyph),
		RenderOrder:    uint8(e.RenderOrder),
		BlocksMovement: e.BlocksMovement,
		BlocksFOV:      e.BlocksFOV,
		Energy:         e.Energy,
		FlavorText:     e.FlavorText,
		Health:         e.Health,
		Combat:         e.Combat,
		AI:             e.AI,
		Equipment:      e.Equipment,
		Item:           e.Item,
		Statuses:       e.StatusEffects,
		Door:           e.Door,
		Trap:           e.Trap,
		Stair:          e.Stair,
		Loot:           e.LootTable,
		Shop:           e.Shop,
		Interactive:    e.Interactive,
		Elite:          e.Elite,
	}
	if e.FOV != nil {
		ej.FOVRadius = e.FOV.Radius
	}
	if e.Inventory != nil {
		ej.InventoryMax = e.Inventory.MaxSize
		for _, item := range e.Inventory.Items {
			ej.InventoryItems = append(ej.InventoryItems, toEntityJSON(item))
		}
	}
	return ej
}

func fromEntityJSON(ej entityJSON) *entity.Entity {
	glyph := ' '
	for _, r := range ej.Glyph {
		glyph = r
		break
	}
	e := &entity.Entity{
		ID:             ej.ID,
		Name:           ej.Name,
		Position:       ej.Position,
		Glyph:          glyph,
		RenderOrder:    entity.RenderOrder(ej.RenderOrder),
		BlocksMovement: ej.BlocksMovement,
		BlocksFOV:      ej.BlocksFOV,
		Energy:         ej.Energy,
		FlavorText:     ej.FlavorText,
		Health:         ej.Health,
		Combat:         ej.Combat,
		AI:             ej.AI,
		Equipment:      ej.Equipment,
		Item:           ej.Item,
		StatusEffects:  ej.Statuses,
		Door:           ej.Door,
		Trap:           ej.Trap,
		Stair:          ej.Stair,
		LootTable:      ej.Loot,
		Shop:           ej.Shop,
		Interactive:    ej.Interactive,
		Elite:          ej.Elite,
	}
	if ej.FOVRadius > 0 {
		e.FOV = entity.NewFieldOfView(ej.FOVRadius)
	}
	if ej.InventoryMax > 0 || len(ej.InventoryItems) > 0 {
		e.Inventory = &entity.Inventory{MaxSize: ej.InventoryMax}
		for _, itemJSON := range ej.InventoryItems {
			e.Inventory.Items = append(e.Inventory.Items, fromEntityJSON(itemJSON))
		}
	}
	return e
}

// MarshalJSON serializes the complete world state.
func (w *World) MarshalJSON() ([]byte, error) {
	wj := worldJSON{
		Seed:             w.seed,
		Floor:            w.floor,
		Turn:             w.turn,
		Class:            w.class,
		PoisonStrike:     w.poisonStrike,
		MapWidth:         w.gameMap.Width,
		MapHeight:        w.gameMap.Height,
		Tiles:            w.gameMap.Tiles,
		Revealed:         w.gameMap.Revealed,
		Rooms:            w.gameMap.Rooms,
		Messages:         w.messages,
		PlayerLevel:      w.playerLevel,
		PlayerXP:         w.playerXP,
		PendingLevelUp:   w.pendingLevelUp,
		CleaveBonus:      w.cleaveBonus,
		SpellPowerBonus:  w.spellPowerBonus,
		ManaRegenBonus:   w.manaRegenBonus,
		EnemiesKilled:    w.enemiesKilled,
		BossesKilled:     w.bossesKilled,
		Gold:             w.gold,
		GameOver:         w.gameOver,
		Victory:          w.victory,
		LastDamageSource: w.lastDamageSource,
	}
	for _, e := range w.entities.All() {
		wj.Entities = append(wj.Entities, toEntityJSON(e))
	}
	// The spotted set is ordered by entity insertion so the blob is stable
	// for a given world state.
	for _, e := range w.entities.All() {
		if w.spottedEnemies[e.ID] {
			wj.SpottedEnemies = append(wj.SpottedEnemies, e.ID)
		}
	}
	return json.Marshal(wj)
}

// UnmarshalJSON rehydrates a world from a save blob. The RNG is re-seeded
// from seed+turn; outcomes after a load will not match the original run's.
func (w *World) UnmarshalJSON(data []byte) error {
	var wj worldJSON
	if err := json.Unmarshal(data, &wj); err != nil {
		return fmt.Errorf("decoding world: %w", err)
	}
	if wj.MapWidth <= 0 || wj.MapHeight <= 0 {
		return fmt.Errorf("decoding world: bad map dimensions %dx%d", wj.MapWidth, wj.MapHeight)
	}
	if len(wj.Tiles) != wj.MapWidth*wj.MapHeight {
		return fmt.Errorf("decoding world: tile array length %d does not match %dx%d", len(wj.Tiles), wj.MapWidth, wj.MapHeight)
	}

	tables, err := content.Default()
	if err != nil {
		return fmt.Errorf("loading content tables: %w", err)
	}

	m := tile.NewMap(wj.MapWidth, wj.MapHeight)
	copy(m.Tiles, wj.Tiles)
	if len(wj.Revealed) == len(m.Revealed) {
		copy(m.Revealed, wj.Revealed)
	}
	m.Rooms = wj.Rooms
	m.RefreshBlocked()

	store := entity.NewStore()
	for _, ej := range wj.Entities {
		store.AddWithID(fromEntityJSON(ej), ej.ID)
	}

	w.seed = wj.Seed
	w.floor = wj.Floor
	w.turn = wj.Turn
	w.class = wj.Class
	if w.class == "" {
		w.class = "warrior"
	}
	w.poisonStrike = wj.PoisonStrike
	w.gameMap = m
	w.entities = store
	w.rng = rng.New(wj.Seed + uint64(wj.Turn))
	w.tables = tables
	w.messages = wj.Messages
	w.playerLevel = wj.PlayerLevel
	w.playerXP = wj.PlayerXP
	w.pendingLevelUp = wj.PendingLevelUp
	w.cleaveBonus = wj.CleaveBonus
	w.spellPowerBonus = wj.SpellPowerBonus
	w.manaRegenBonus = wj.ManaRegenBonus
	w.enemiesKilled = wj.EnemiesKilled
	w.bossesKilled = wj.BossesKilled
	w.gold = wj.Gold
	w.gameOver = wj.GameOver
	w.victory = wj.Victory
	w.lastDamageSource = wj.LastDamageSource
	w.spottedEnemies = make(map[entity.ID]bool, len(wj.SpottedEnemies))
	for _, id := range wj.SpottedEnemies {
		w.spottedEnemies[id] = true
	}

	if w.entities.Get(PlayerID) == nil {
		return fmt.Errorf("decoding world: player entity missing")
	}
	w.refreshVision()
	return nil
}
