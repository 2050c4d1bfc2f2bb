package engine

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

func addBoss(w *World, name string, pos tile.Position, hp, attack int) *entity.Entity {
	boss := &entity.Entity{
		Name:           name,
		Position:       pos,
		Glyph:          'B',
		RenderOrder:    entity.EnemyOrder,
		BlocksMovement: true,
		Health:         entity.NewHealth(hp),
		Combat: &entity.CombatStats{
			BaseAttack: attack,
			BaseSpeed:  100,
		},
		AI:  &entity.AIBehavior{Kind: entity.Boss, BossName: name},
		FOV: entity.NewFieldOfView(6),
	}
	w.entities.Add(boss)
	return boss
}

func TestGoblinKingSummonsEveryFourthTurn(t *testing.T) {
	w := newArenaWorld(t, 11)
	addBoss(w, "Goblin King", tile.Position{X: 14, Y: 10}, 100, 3)

	before := w.entities.Len()
	for i := 0; i < 8; i++ {
		w.ResolveTurn(Wait())
	}
	// 8 boss turns at a 4-turn cadence: two summon rounds of 1-2 minions.
	gained := w.entities.Len() - before
	if gained < 2 || gained > 4 {
		t.Fatalf("expected 2-4 summoned minions after 8 turns, got %d", gained)
	}
}

func TestBossPhaseTransitionIsMonotonic(t *testing.T) {
	w := newArenaWorld(t, 11)
	boss := addBoss(w, "Troll Warlord", tile.Position{X: 14, Y: 10}, 100, 3)

	w.applyDamage(boss, 60, "test")
	if boss.AI.Phase != entity.Phase2 {
		t.Fatalf("boss below half HP must enter phase 2")
	}

	boss.Health.Current = boss.Health.Max
	w.applyDamage(boss, 1, "test")
	if boss.AI.Phase != entity.Phase2 {
		t.Fatalf("phase transition must never revert")
	}
}

func TestBossImmuneToStunAndConfusion(t *testing.T) {
	w := newArenaWorld(t, 11)
	boss := addBoss(w, "Goblin King", tile.Position{X: 14, Y: 10}, 100, 3)

	boss.StatusEffects = status.Apply(boss.StatusEffects, boss.IsBoss(), status.Stunned, 5, 0, "test")
	boss.StatusEffects = status.Apply(boss.StatusEffects, boss.IsBoss(), status.Confused, 5, 0, "test")
	if status.Has(boss.StatusEffects, status.Stunned) || status.Has(boss.StatusEffects, status.Confused) {
		t.Fatalf("bosses must silently drop Stunned and Confused")
	}

	boss.StatusEffects = status.Apply(boss.StatusEffects, boss.IsBoss(), status.Poison, 5, 2, "test")
	if !status.Has(boss.StatusEffects, status.Poison) {
		t.Fatalf("bosses are not immune to other effects")
	}
}

func TestTrollWarlordChargeClosesAndHits(t *testing.T) {
	w := newArenaWorld(t, 13)
	boss := addBoss(w, "Troll Warlord", tile.Position{X: 13, Y: 10}, 100, 6)
	boss.Combat.CritChance = 0
	w.ResolveTurn(Wait())

	hpBefore := w.player().Health.Current
	w.ResolveTurn(Wait())
	if boss.Position.ChebyshevDistance(w.player().Position) > 1 {
		t.Fatalf("charge should end adjacent to the player, boss at %v", boss.Position)
	}
	if w.player().Health.Current >= hpBefore {
		t.Fatalf("charge should strike on arrival")
	}
}

func TestTrollWarlordPhaseTwoChargeStuns(t *testing.T) {
	w := newArenaWorld(t, 13)
	boss := addBoss(w, "Troll Warlord", tile.Position{X: 13, Y: 10}, 100, 6)
	boss.AI.Phase = entity.Phase2
	w.ResolveTurn(Wait())

	w.ResolveTurn(Wait())
	if !status.Has(w.player().StatusEffects, status.Stunned) {
		t.Fatalf("a phase-2 charge must stun")
	}
}

func TestLichTeleportsOutOfMelee(t *testing.T) {
	w := newArenaWorld(t, 17)
	boss := addBoss(w, "The Lich", tile.Position{X: 11, Y: 10}, 100, 5)
	w.ResolveTurn(Wait())

	w.ResolveTurn(Wait())
	d := boss.Position.ChebyshevDistance(w.player().Position)
	if d <= 1 {
		t.Fatalf("adjacent Lich should blink away, still at distance %d", d)
	}
}

func TestLichPhaseTwoFrostBoltSlows(t *testing.T) {
	w := newArenaWorld(t, 17)
	boss := addBoss(w, "The Lich", tile.Position{X: 14, Y: 10}, 100, 5)
	boss.AI.Phase = entity.Phase2
	boss.Health.Current = 40
	w.ResolveTurn(Wait())

	w.ResolveTurn(Wait())
	if !status.Has(w.player().StatusEffects, status.Slowed) {
		t.Fatalf("phase-2 Lich in bolt range must chill the player")
	}
}
