// Package engine holds the World state and the turn resolver that drives
// it. One call to ResolveTurn applies a player action, schedules and runs
// every enemy that has banked enough energy to act, ticks status effects,
// recomputes visibility, and returns a TurnResult snapshot for the host to
// render. The engine performs no I/O and draws every random number from the
// World's own seeded generator, so a (seed, action sequence) pair replays
// identically anywhere.
package engine

import (
	"fmt"

	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/fov"
	"github.com/tholloway/roguecore/pkg/mapgen"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/placement"
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// PlayerID is the fixed entity ID of the player.
const PlayerID entity.ID = 0

// messageWindow is how many trailing log lines a TurnResult surfaces.
const messageWindow = 50

// World is the complete simulation state for one run.
type World struct {
	seed  uint64
	floor uint32
	turn  uint32

	gameMap  *tile.Map
	entities *entity.Store
	rng      *rng.RNG
	tables   *content.Tables
	class    string

	dijkstra *pathfind.DijkstraMap
	messages []LogMessage

	playerLevel    uint32
	playerXP       uint32
	pendingLevelUp bool

	// World-level level-up bonuses with no CombatStats home.
	cleaveBonus     int
	spellPowerBonus int
	manaRegenBonus  int

	enemiesKilled uint32
	bossesKilled  uint32
	gold          uint32

	gameOver         bool
	victory          bool
	lastDamageSource string

	spottedEnemies map[entity.ID]bool

	// poisonStrike is the armed next-attack effect from the rogue's
	// Poison Strike ability, consumed by the player's next hit.
	poisonStrike *entity.OnHitEffect

	// events accumulates during one ResolveTurn call and is drained into
	// the returned TurnResult.
	events []GameEvent
}

// Option configures New.
type Option func(*newConfig)

type newConfig struct {
	class     string
	tables    *content.Tables
	fovRadius int
}

// WithClass selects the starting class template by name. Unknown names
// fall back to the warrior template.
func WithClass(class string) Option {
	return func(c *newConfig) { c.class = class }
}

// WithTables injects custom content tables in place of the embedded
// defaults, letting a host supply its own enemy/item/class data.
func WithTables(t *content.Tables) Option {
	return func(c *newConfig) { c.tables = t }
}

// WithFOVRadius overrides the player's sight radius, which hosts read
// from their settings store. Zero or negative keeps the class default.
func WithFOVRadius(radius int) Option {
	return func(c *newConfig) { c.fovRadius = radius }
}

// New constructs a fresh World on floor 1 from seed.
func New(seed uint64, opts ...Option) (*World, error) {
	cfg := newConfig{class: "warrior"}
	for _, opt := range opts {
		opt(&cfg)
	}

	tables := cfg.tables
	if tables == nil {
		var err error
		tables, err = content.Default()
		if err != nil {
			return nil, fmt.Errorf("loading content tables: %w", err)
		}
	}
	// Placement falls back to the warrior stat block for unknown class
	// names; keep the recorded class in step so ability lookups agree.
	if _, ok := tables.FindClass(cfg.class); !ok {
		cfg.class = "warrior"
	}

	w := &World{
		seed:           seed,
		floor:          1,
		rng:            rng.New(seed),
		tables:         tables,
		class:          cfg.class,
		entities:       entity.NewStore(),
		spottedEnemies: make(map[entity.ID]bool),
	}

	w.generateFloor()
	spawn, err := w.gameMap.NearestWalkable(w.gameMap.StartRoom().Center())
	if err != nil {
		return nil, fmt.Errorf("floor 1 start room has no walkable tile: %w", err)
	}
	player := placement.SpawnPlayer(w.entities, tables, cfg.class, spawn)
	if cfg.fovRadius > 0 && player.FOV != nil {
		player.FOV.Radius = cfg.fovRadius
	}
	w.spawnFloorEntities()
	w.refreshVision()
	w.log("You descend into the dungeon. Good luck.")
	return w, nil
}

// generateFloor builds the map for the current floor. Panics if the
// generator yields a map without a Start room, which would mean the
// generator itself is broken.
func (w *World) generateFloor() {
	w.gameMap = mapgen.Generate(w.seed, w.floor)
	if len(w.gameMap.Rooms) == 0 {
		panic(fmt.Sprintf("engine: floor %d generated with no rooms", w.floor))
	}
}

// spawnFloorEntities populates the current floor from the content tables,
// drawing from a placement-specific RNG derived from (seed, floor) so the
// layout is a function of the floor alone, not of how many random numbers
// combat consumed on the way down.
func (w *World) spawnFloorEntities() {
	placementRNG := rng.New(rng.DeriveFloorSeed(w.seed, w.floor) ^ 0xA5A5A5A5)
	placement.SpawnFloor(w.entities, w.tables, w.gameMap, w.floor, placementRNG)
}

// Seed returns the seed this run was created with.
func (w *World) Seed() uint64 { return w.seed }

// Floor returns the current dungeon depth, starting at 1.
func (w *World) Floor() uint32 { return w.floor }

// Turn returns how many turns have elapsed.
func (w *World) Turn() uint32 { return w.turn }

// IsGameOver reports whether the run has ended.
func (w *World) IsGameOver() bool { return w.gameOver }

// IsVictory reports whether the run ended with the final boss dead.
func (w *World) IsVictory() bool { return w.victory }

// Gold returns the player's current gold.
func (w *World) Gold() uint32 { return w.gold }

// PlayerLevel returns the player's current level (1-based).
func (w *World) PlayerLevel() uint32 { return w.playerLevel + 1 }

// PendingLevelUp reports whether the run is paused on a level-up choice.
func (w *World) PendingLevelUp() bool { return w.pendingLevelUp }

// Map exposes the current floor's tile map, read-only by convention.
func (w *World) Map() *tile.Map { return w.gameMap }

// Entities exposes the entity store, read-only by convention.
func (w *World) Entities() *entity.Store { return w.entities }

// player returns the player entity. Its absence is an invariant violation.
func (w *World) player() *entity.Entity {
	p := w.entities.Get(PlayerID)
	if p == nil {
		panic("engine: player entity missing")
	}
	return p
}

// Player returns the player entity for hosts that render it directly.
func (w *World) Player() *entity.Entity { return w.player() }

func (w *World) log(format string, args ...any) {
	w.messages = append(w.messages, LogMessage{
		Turn: w.turn,
		Text: fmt.Sprintf(format, args...),
	})
}

func (w *World) emit(ev GameEvent) {
	w.events = append(w.events, ev)
}

// Messages returns the full append-only log, for hosts that tail it
// across turns rather than re-reading the windowed snapshot.
func (w *World) Messages() []LogMessage { return w.messages }

// recentMessages returns the last messageWindow log lines.
func (w *World) recentMessages() []LogMessage {
	if len(w.messages) <= messageWindow {
		out := make([]LogMessage, len(w.messages))
		copy(out, w.messages)
		return out
	}
	out := make([]LogMessage, messageWindow)
	copy(out, w.messages[len(w.messages)-messageWindow:])
	return out
}

// refreshVision recomputes FOV for every entity whose FOV is dirty,
// reveals the player's visible tiles, and rebuilds the Dijkstra field
// sourced at the player's position.
func (w *World) refreshVision() {
	player := w.player()
	for _, e := range w.entities.All() {
		if e.FOV == nil || !e.FOV.Dirty {
			continue
		}
		radius := status.EffectiveFOVRadius(e.StatusEffects, e.FOV.Radius)
		e.FOV.VisibleTiles = fov.Compute(w.gameMap, e.Position, radius)
		e.FOV.Dirty = false
	}
	if player.FOV != nil {
		for pos := range player.FOV.VisibleTiles {
			w.gameMap.Reveal(pos.X, pos.Y)
		}
	}
	w.dijkstra = pathfind.ComputeDijkstraMap(
		w.gameMap, w.gameMap.Width, w.gameMap.Height,
		[]tile.Position{player.Position},
	)
}

// markAllFOVDirty forces a recompute for every sighted entity, used after
// map mutations (door opened, floor change) that can change anyone's view.
func (w *World) markAllFOVDirty() {
	for _, e := range w.entities.All() {
		if e.FOV != nil {
			e.FOV.Dirty = true
		}
	}
}

// checkSpottedEnemies emits EnemySpotted once per enemy, the first time it
// enters the player's FOV. The set guard keeps a lingering enemy from
// re-announcing itself every turn.
func (w *World) checkSpottedEnemies() {
	player := w.player()
	if player.FOV == nil {
		return
	}
	for _, e := range w.entities.All() {
		if e.ID == PlayerID || e.AI == nil || e.AI.Kind == entity.Ally {
			continue
		}
		if !player.FOV.VisibleTiles[e.Position] || w.spottedEnemies[e.ID] {
			continue
		}
		w.spottedEnemies[e.ID] = true
		w.emit(GameEvent{Kind: EvEnemySpotted, Target: e.ID, Position: e.Position})
		w.log("You spot a %s!", e.Name)
		if e.FlavorText != "" {
			w.emit(GameEvent{Kind: EvFlavorText, Target: e.ID, Text: e.FlavorText})
			w.log("%s", e.FlavorText)
		}
	}
}

// descendStairs advances to the next floor. The player entity persists
// with its inventory, equipment, statuses, level, XP, and gold; everything
// else is rebuilt for the new floor.
func (w *World) descendStairs() {
	player := w.player()
	w.floor++

	for _, e := range w.entities.All() {
		if e.ID != PlayerID {
			w.entities.Remove(e.ID)
		}
	}
	// Carried items live in the inventory component, not the store, so the
	// sweep above cannot touch them.

	w.spottedEnemies = make(map[entity.ID]bool)
	w.generateFloor()
	player.Position = w.gameMap.StartRoom().Center()
	if !w.gameMap.IsWalkable(player.Position.X, player.Position.Y) {
		pos, err := w.gameMap.NearestWalkable(player.Position)
		if err != nil {
			panic(fmt.Sprintf("engine: floor %d start room has no walkable tile", w.floor))
		}
		player.Position = pos
	}
	player.Energy = 0
	w.spawnFloorEntities()
	w.markAllFOVDirty()
	w.refreshVision()

	w.emit(GameEvent{Kind: EvStairsDescended, Floor: w.floor})
	w.log("You descend to floor %d.", w.floor)
}

// blockingEntityAt returns the blocking entity at pos other than skip.
func (w *World) blockingEntityAt(pos tile.Position, skip entity.ID) *entity.Entity {
	for _, e := range w.entities.All() {
		if e.ID != skip && e.BlocksMovement && e.Position == pos {
			return e
		}
	}
	return nil
}

// canMoveTo reports whether pos is walkable terrain unoccupied by a
// blocking entity.
func (w *World) canMoveTo(pos tile.Position, self entity.ID) bool {
	if !w.gameMap.IsWalkable(pos.X, pos.Y) {
		return false
	}
	return w.blockingEntityAt(pos, self) == nil
}

// isHostile reports whether e is something the player can bump-attack.
func isHostile(e *entity.Entity) bool {
	return e.AI != nil && e.AI.Kind != entity.Ally && e.Health != nil
}
