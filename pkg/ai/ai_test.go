package ai

import (
	"math/rand"
	"testing"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

func openMap(size int) *tile.Map {
	m := tile.NewMap(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				m.SetTile(x, y, tile.Wall)
			} else {
				m.SetTile(x, y, tile.Floor)
			}
		}
	}
	m.RefreshBlocked()
	return m
}

func fullFOV(center tile.Position, radius int) *entity.FieldOfView {
	fov := entity.NewFieldOfView(radius)
	for dy := -8; dy <= 8; dy++ {
		for dx := -8; dx <= 8; dx++ {
			fov.VisibleTiles[tile.Position{X: center.X + dx, Y: center.Y + dy}] = true
		}
	}
	fov.Dirty = false
	return fov
}

func makePlayer(pos tile.Position) *entity.Entity {
	return &entity.Entity{
		ID:       0,
		Name:     "Player",
		Position: pos,
		Health:   entity.NewHealth(50),
		Combat:   &entity.CombatStats{BaseAttack: 5, BaseDefense: 2, BaseSpeed: 100, CritChance: 0.05},
	}
}

func makeMelee(id entity.ID, pos tile.Position, hp, maxHP int) *entity.Entity {
	return &entity.Entity{
		ID:             id,
		Name:           "Test",
		Position:       pos,
		BlocksMovement: true,
		Health:         &entity.Health{Current: hp, Max: maxHP},
		Combat:         &entity.CombatStats{BaseAttack: 5, BaseDefense: 2, BaseSpeed: 100},
		AI:             &entity.AIBehavior{Kind: entity.Melee},
		FOV:            fullFOV(pos, 8),
	}
}

func TestDecide_MeleeAttacksWhenAdjacent(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 11, Y: 10}, 20, 20)
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MeleeAttack {
		t.Fatalf("Kind = %v, want MeleeAttack", action.Kind)
	}
}

func TestDecide_MeleeMovesTowardPlayer(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 15, Y: 10}, 20, 20)
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MoveToward {
		t.Fatalf("Kind = %v, want MoveToward", action.Kind)
	}
	if action.Pos.ChebyshevDistance(player.Position) >= enemy.Position.ChebyshevDistance(player.Position) {
		t.Fatal("expected move to reduce distance to player")
	}
}

func TestDecide_MeleeFleesAtLowHP(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 12, Y: 10}, 3, 20) // 15% HP
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MoveAway {
		t.Fatalf("Kind = %v, want MoveAway", action.Kind)
	}
}

func TestDecide_RangedAttacksAtRange(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 14, Y: 10}, 20, 20)
	enemy.AI = &entity.AIBehavior{Kind: entity.Ranged, Range: 5, PreferredDistance: 3}
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != RangedAttack {
		t.Fatalf("Kind = %v, want RangedAttack", action.Kind)
	}
}

func TestDecide_RangedFleesWhenTooClose(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 12, Y: 10}, 20, 20)
	enemy.AI = &entity.AIBehavior{Kind: entity.Ranged, Range: 5, PreferredDistance: 4}
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MoveAway {
		t.Fatalf("Kind = %v, want MoveAway", action.Kind)
	}
}

func TestDecide_PassiveWaits(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 11, Y: 10}, 20, 20)
	enemy.AI = &entity.AIBehavior{Kind: entity.Passive}
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != Wait {
		t.Fatalf("Kind = %v, want Wait", action.Kind)
	}
}

func TestDecide_ConfusedMovesRandomly(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 11, Y: 10}, 20, 20)
	enemy.StatusEffects = status.Apply(enemy.StatusEffects, false, status.Confused, 3, 0, "test")
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MoveRandom {
		t.Fatalf("Kind = %v, want MoveRandom", action.Kind)
	}
}

func TestDecide_PlayerNotVisibleWaits(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	enemy := makeMelee(1, tile.Position{X: 11, Y: 10}, 20, 20)
	enemy.FOV = entity.NewFieldOfView(8) // empty visible set
	entities := []*entity.Entity{player, enemy}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(enemy, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != Wait {
		t.Fatalf("Kind = %v, want Wait", action.Kind)
	}
}

func TestCheckBossPhase_TransitionsBelow50Percent(t *testing.T) {
	boss := makeMelee(1, tile.Position{X: 10, Y: 10}, 30, 100)
	boss.AI = &entity.AIBehavior{Kind: entity.Boss, BossName: "The Lich", Phase: entity.Phase1}

	if !CheckBossPhase(boss) {
		t.Fatal("expected phase transition")
	}
	if boss.AI.Phase != entity.Phase2 {
		t.Fatal("expected Phase2 after transition")
	}
	if CheckBossPhase(boss) {
		t.Fatal("transition should be monotonic, not re-fire")
	}
}

func TestActivatePassive_SwitchesToMelee(t *testing.T) {
	e := makeMelee(1, tile.Position{X: 10, Y: 10}, 20, 20)
	e.AI = &entity.AIBehavior{Kind: entity.Passive}
	ActivatePassive(e)
	if e.AI.Kind != entity.Melee {
		t.Fatalf("Kind = %v, want Melee", e.AI.Kind)
	}
}

func TestDecide_BossGoblinKingMovesToward(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	boss := makeMelee(1, tile.Position{X: 15, Y: 10}, 100, 100)
	boss.AI = &entity.AIBehavior{Kind: entity.Boss, BossName: "Goblin King"}
	entities := []*entity.Entity{player, boss}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(boss, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != MoveToward {
		t.Fatalf("Kind = %v, want MoveToward", action.Kind)
	}
}

func TestDecide_BossTrollWarlordCharges(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	boss := makeMelee(1, tile.Position{X: 13, Y: 10}, 100, 100)
	boss.AI = &entity.AIBehavior{Kind: entity.Boss, BossName: "Troll Warlord", Phase: entity.Phase2}
	entities := []*entity.Entity{player, boss}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(boss, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != BossCharge || !action.Stun {
		t.Fatalf("action = %+v, want BossCharge with Stun", action)
	}
}

func TestDecide_BossLichTeleportsWhenAdjacent(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	boss := makeMelee(1, tile.Position{X: 11, Y: 10}, 100, 100)
	boss.AI = &entity.AIBehavior{Kind: entity.Boss, BossName: "The Lich"}
	entities := []*entity.Entity{player, boss}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(boss, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != BossTeleport {
		t.Fatalf("Kind = %v, want BossTeleport", action.Kind)
	}
}

func TestDecide_BossLichFrostBoltInPhase2(t *testing.T) {
	m := openMap(20)
	player := makePlayer(tile.Position{X: 10, Y: 10})
	boss := makeMelee(1, tile.Position{X: 13, Y: 10}, 100, 100)
	boss.AI = &entity.AIBehavior{Kind: entity.Boss, BossName: "The Lich", Phase: entity.Phase2}
	entities := []*entity.Entity{player, boss}
	dijkstra := pathfind.ComputeDijkstraMap(m, m.Width, m.Height, []tile.Position{player.Position})

	action := Decide(boss, player, dijkstra, m, entities, rand.New(rand.NewSource(1)))
	if action.Kind != BossFrostBolt {
		t.Fatalf("Kind = %v, want BossFrostBolt", action.Kind)
	}
}
