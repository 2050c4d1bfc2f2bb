package engine

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// abilityIndex finds the class's table index for an ability id.
func abilityIndex(t *testing.T, w *World, id string) int {
	t.Helper()
	for i, a := range w.tables.AbilitiesForClass(w.class) {
		if a.ID == id {
			return i
		}
	}
	t.Fatalf("class %q has no ability %q", w.class, id)
	return -1
}

func TestShieldBashStunsAdjacent(t *testing.T) {
	w := newArenaWorld(t, 21)
	enemy := addEnemy(w, "Goblin", tile.Position{X: 11, Y: 10}, 30, 0, 0)

	idx := abilityIndex(t, w, "shield_bash")
	manaBefore := w.player().Combat.Mana
	result := w.ResolveTurn(UseAbility(idx, enemy.ID))

	if !status.Has(enemy.StatusEffects, status.Stunned) {
		t.Fatalf("shield bash did not stun")
	}
	if w.player().Combat.Mana >= manaBefore {
		t.Fatalf("cast spent no mana")
	}
	if countEvents(result.Events, EvAbilityUsed) != 1 {
		t.Fatalf("no AbilityUsed event")
	}
	if w.Turn() != 1 {
		t.Fatalf("a successful cast must consume the turn")
	}
}

func TestShieldBashOutOfReachFailsFree(t *testing.T) {
	w := newArenaWorld(t, 21)
	enemy := addEnemy(w, "Goblin", tile.Position{X: 15, Y: 10}, 30, 0, 0)

	idx := abilityIndex(t, w, "shield_bash")
	manaBefore := w.player().Combat.Mana
	w.ResolveTurn(UseAbility(idx, enemy.ID))

	if w.Turn() != 0 || w.player().Combat.Mana != manaBefore {
		t.Fatalf("a failed cast must cost neither the turn nor mana")
	}
}

func TestInsufficientManaFailsFree(t *testing.T) {
	w := newArenaWorld(t, 21)
	w.player().Combat.Mana = 5

	idx := abilityIndex(t, w, "war_cry")
	w.ResolveTurn(UseAbility(idx, 0))
	if w.Turn() != 0 {
		t.Fatalf("casting without mana must not consume the turn")
	}
	if status.Has(w.player().StatusEffects, status.Strengthened) {
		t.Fatalf("war cry applied despite missing mana")
	}
}

func TestWarCryStrengthensSelf(t *testing.T) {
	w := newArenaWorld(t, 21)
	idx := abilityIndex(t, w, "war_cry")
	w.ResolveTurn(UseAbility(idx, 0))
	if !status.Has(w.player().StatusEffects, status.Strengthened) {
		t.Fatalf("war cry did not strengthen the caster")
	}
}

func TestWhirlwindHitsAllAdjacent(t *testing.T) {
	w := newArenaWorld(t, 21)
	a := addEnemy(w, "Goblin", tile.Position{X: 11, Y: 10}, 30, 0, 0)
	b := addEnemy(w, "Rat", tile.Position{X: 9, Y: 9}, 30, 0, 0)
	far := addEnemy(w, "Orc", tile.Position{X: 14, Y: 10}, 30, 0, 0)

	idx := abilityIndex(t, w, "whirlwind")
	w.ResolveTurn(UseAbility(idx, 0))

	if a.Health.Current != 22 || b.Health.Current != 22 {
		t.Fatalf("whirlwind should deal 8 to each adjacent enemy: %d, %d", a.Health.Current, b.Health.Current)
	}
	if far.Health.Current != 30 {
		t.Fatalf("whirlwind hit a non-adjacent enemy")
	}
}

func TestManaRegeneratesPerTurn(t *testing.T) {
	w := newArenaWorld(t, 21)
	w.player().Combat.Mana = 10
	w.ResolveTurn(Wait())
	if w.player().Combat.Mana != 11 {
		t.Fatalf("mana = %d after one turn, want 11", w.player().Combat.Mana)
	}

	w.manaRegenBonus = 2
	w.ResolveTurn(Wait())
	if w.player().Combat.Mana != 14 {
		t.Fatalf("mana = %d with +2 regen, want 14", w.player().Combat.Mana)
	}

	w.player().Combat.Mana = w.player().Combat.MaxMana
	w.ResolveTurn(Wait())
	if w.player().Combat.Mana != w.player().Combat.MaxMana {
		t.Fatalf("regen must cap at max mana")
	}
}

func TestSpellPowerScalesAbilityDamage(t *testing.T) {
	w := newArenaWorld(t, 21)
	w.spellPowerBonus = 3
	enemy := addEnemy(w, "Goblin", tile.Position{X: 11, Y: 10}, 30, 0, 0)

	idx := abilityIndex(t, w, "whirlwind")
	w.ResolveTurn(UseAbility(idx, 0))
	// 8 base + 2 per spell-power rank.
	if got := 30 - enemy.Health.Current; got != 14 {
		t.Fatalf("whirlwind dealt %d with +3 spell power, want 14", got)
	}
}

func TestRogueDashMovesThreeTiles(t *testing.T) {
	w := newArenaWorld(t, 23)
	w.class = "rogue"
	start := w.player().Position

	idx := abilityIndex(t, w, "dash")
	w.ResolveTurn(UseAbilityDir(idx, entity.E))
	if got := w.player().Position; got != start.Add(3, 0) {
		t.Fatalf("dash ended at %v, want %v", got, start.Add(3, 0))
	}
}

func TestPoisonStrikeArmsNextAttack(t *testing.T) {
	w := newArenaWorld(t, 23)
	w.class = "rogue"
	enemy := addEnemy(w, "Goblin", tile.Position{X: 11, Y: 10}, 50, 0, 0)
	enemy.AI.Kind = entity.Passive

	idx := abilityIndex(t, w, "poison_strike")
	w.ResolveTurn(UseAbility(idx, 0))
	if w.poisonStrike == nil {
		t.Fatalf("poison strike did not arm")
	}

	w.ResolveTurn(Move(entity.E))
	if !status.Has(enemy.StatusEffects, status.Poison) {
		t.Fatalf("armed strike did not poison the target")
	}
	if w.poisonStrike != nil {
		t.Fatalf("poison strike must be consumed by one attack")
	}
}

func TestMageFireballHitsRadius(t *testing.T) {
	w := newArenaWorld(t, 25)
	w.class = "mage"
	center := addEnemy(w, "Goblin", tile.Position{X: 14, Y: 10}, 30, 0, 0)
	splash := addEnemy(w, "Rat", tile.Position{X: 15, Y: 11}, 30, 0, 0)
	safe := addEnemy(w, "Orc", tile.Position{X: 18, Y: 14}, 30, 0, 0)

	idx := abilityIndex(t, w, "fireball")
	w.ResolveTurn(UseAbility(idx, center.ID))

	if center.Health.Current != 18 || splash.Health.Current != 18 {
		t.Fatalf("fireball should deal 12 in its radius: %d, %d", center.Health.Current, splash.Health.Current)
	}
	if safe.Health.Current != 30 {
		t.Fatalf("fireball hit outside its radius")
	}
}

func TestMageBlinkTeleports(t *testing.T) {
	w := newArenaWorld(t, 25)
	w.class = "mage"

	idx := abilityIndex(t, w, "blink")
	w.ResolveTurn(UseAbilityAt(idx, 14, 10))
	if w.player().Position != (tile.Position{X: 14, Y: 10}) {
		t.Fatalf("blink ended at %v, want (14,10)", w.player().Position)
	}
}

func TestBlinkOutOfRangeFails(t *testing.T) {
	w := newArenaWorld(t, 25)
	w.class = "mage"
	start := w.player().Position

	idx := abilityIndex(t, w, "blink")
	w.ResolveTurn(UseAbilityAt(idx, 17, 10))
	if w.player().Position != start || w.Turn() != 0 {
		t.Fatalf("a cast beyond range must fail without moving or spending the turn")
	}
}

func TestArcaneShieldAbsorbs(t *testing.T) {
	w := newArenaWorld(t, 25)
	w.class = "mage"

	idx := abilityIndex(t, w, "arcane_shield")
	w.ResolveTurn(UseAbility(idx, 0))
	mag, ok := status.Magnitude(w.player().StatusEffects, status.Shielded)
	if !ok || mag < 20 {
		t.Fatalf("arcane shield magnitude = %d, want >= 20", mag)
	}
}

func TestBossShrugsOffShieldBashStun(t *testing.T) {
	w := newArenaWorld(t, 27)
	boss := addBoss(w, "Goblin King", tile.Position{X: 11, Y: 10}, 100, 3)

	idx := abilityIndex(t, w, "shield_bash")
	w.ResolveTurn(UseAbility(idx, boss.ID))
	if status.Has(boss.StatusEffects, status.Stunned) {
		t.Fatalf("bosses must shrug off ability stuns")
	}
}
