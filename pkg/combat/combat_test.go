package combat

import (
	"math/rand"
	"testing"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
)

func makePlayer() *entity.Entity {
	return &entity.Entity{
		Name:   "Player",
		Health: entity.NewHealth(50),
		Combat: &entity.CombatStats{
			BaseAttack:  5,
			BaseDefense: 2,
			BaseSpeed:   100,
			CritChance:  0.05,
		},
		Inventory:  &entity.Inventory{MaxSize: 20},
		Equipment:  &entity.EquipmentSlots{},
	}
}

func makeEnemy(hp, attack, defense int) *entity.Entity {
	return &entity.Entity{
		Name:   "Enemy",
		Health: entity.NewHealth(hp),
		Combat: &entity.CombatStats{
			BaseAttack:  attack,
			BaseDefense: defense,
			BaseSpeed:   100,
		},
	}
}

func TestEffectiveAttack_Base(t *testing.T) {
	if got := EffectiveAttack(makePlayer()); got != 5 {
		t.Fatalf("EffectiveAttack = %d, want 5", got)
	}
}

func TestEffectiveDefense_Base(t *testing.T) {
	if got := EffectiveDefense(makePlayer()); got != 2 {
		t.Fatalf("EffectiveDefense = %d, want 2", got)
	}
}

func TestEffectiveAttack_WeaponBonus(t *testing.T) {
	p := makePlayer()
	weaponID := entity.ID(1)
	weapon := &entity.Entity{ID: weaponID, Name: "Sword", Item: &entity.ItemProperties{ItemType: entity.Weapon, Power: 4}}
	p.Inventory.Items = append(p.Inventory.Items, weapon)
	p.Equipment.Set(entity.MainHand, &weaponID)

	if got := EffectiveAttack(p); got != 9 {
		t.Fatalf("EffectiveAttack with weapon = %d, want 9", got)
	}
}

func TestEffectiveDefense_ArmorBonus(t *testing.T) {
	p := makePlayer()
	armorID := entity.ID(1)
	armor := &entity.Entity{ID: armorID, Name: "Mail", Item: &entity.ItemProperties{ItemType: entity.Armor, Power: 3}}
	p.Inventory.Items = append(p.Inventory.Items, armor)
	p.Equipment.Set(entity.Body, &armorID)

	if got := EffectiveDefense(p); got != 5 {
		t.Fatalf("EffectiveDefense with armor = %d, want 5", got)
	}
}

func TestEffectiveAttack_RingOfStrength(t *testing.T) {
	p := makePlayer()
	ringID := entity.ID(1)
	ring := &entity.Entity{ID: ringID, Name: "Ring of Strength", Item: &entity.ItemProperties{ItemType: entity.RingType, Power: 2}}
	p.Inventory.Items = append(p.Inventory.Items, ring)
	p.Equipment.Set(entity.Ring, &ringID)

	if got := EffectiveAttack(p); got != 7 {
		t.Fatalf("EffectiveAttack with ring = %d, want 7", got)
	}
}

func TestEffectiveDefense_RingOfProtection(t *testing.T) {
	p := makePlayer()
	ringID := entity.ID(1)
	ring := &entity.Entity{ID: ringID, Name: "Ring of Protection", Item: &entity.ItemProperties{ItemType: entity.RingType, Power: 2}}
	p.Inventory.Items = append(p.Inventory.Items, ring)
	p.Equipment.Set(entity.Ring, &ringID)

	if got := EffectiveDefense(p); got != 4 {
		t.Fatalf("EffectiveDefense with ring = %d, want 4", got)
	}
}

func TestEffectiveAttack_Weakened(t *testing.T) {
	p := makePlayer()
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Weakened, 3, 0, "curse")

	if got := EffectiveAttack(p); got != 2 {
		t.Fatalf("EffectiveAttack weakened = %d, want 2", got)
	}
	if got := EffectiveDefense(p); got != 0 {
		t.Fatalf("EffectiveDefense weakened = %d, want 0", got)
	}
}

func TestEffectiveSpeed_Hasted(t *testing.T) {
	p := makePlayer()
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Hasted, 5, 0, "potion")
	if got := EffectiveSpeed(p); got != 130 {
		t.Fatalf("EffectiveSpeed hasted = %d, want 130", got)
	}
}

func TestEffectiveSpeed_Slowed(t *testing.T) {
	p := makePlayer()
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Slowed, 5, 0, "ice")
	if got := EffectiveSpeed(p); got != 70 {
		t.Fatalf("EffectiveSpeed slowed = %d, want 70", got)
	}
}

func TestEffectiveAttack_Strengthened(t *testing.T) {
	p := makePlayer()
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Strengthened, 20, 0, "potion")
	if got := EffectiveAttack(p); got != 8 {
		t.Fatalf("EffectiveAttack strengthened = %d, want 8", got)
	}
}

func TestEffectiveSpeed_CeilingAtTwoHundred(t *testing.T) {
	p := makePlayer()
	p.Combat.BaseSpeed = 190
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Hasted, 5, 0, "potion")
	if got := EffectiveSpeed(p); got != 200 {
		t.Fatalf("EffectiveSpeed ceiling = %d, want 200", got)
	}
}

func TestEffectiveSpeed_FloorsAtTen(t *testing.T) {
	p := makePlayer()
	p.Combat.BaseSpeed = 5
	p.StatusEffects = status.Apply(p.StatusEffects, false, status.Slowed, 5, 0, "ice")
	if got := EffectiveSpeed(p); got != 10 {
		t.Fatalf("EffectiveSpeed floor = %d, want 10", got)
	}
}

func TestResolveAttack_DamageAlwaysAtLeastOne(t *testing.T) {
	attacker := makeEnemy(10, 1, 0)
	target := makeEnemy(50, 0, 10)
	r := rand.New(rand.NewSource(42))

	result := ResolveAttack(attacker, target, r)
	if result.Damage < 1 {
		t.Fatalf("Damage = %d, want >= 1", result.Damage)
	}
}

func TestResolveAttack_DamageInExpectedRange(t *testing.T) {
	attacker := makeEnemy(10, 10, 0)
	target := makeEnemy(50, 0, 2)
	r := rand.New(rand.NewSource(42))

	// base = 10 - 2 = 8, variance in [-2, 2], no crit (CritChance is 0)
	result := ResolveAttack(attacker, target, r)
	if result.Damage < 6 || result.Damage > 10 {
		t.Fatalf("Damage = %d, want in [6, 10]", result.Damage)
	}
}

func TestResolveAttack_KillDetection(t *testing.T) {
	attacker := makeEnemy(10, 20, 0)
	target := makeEnemy(5, 0, 0)
	r := rand.New(rand.NewSource(42))

	result := ResolveAttack(attacker, target, r)
	if !result.Killed {
		t.Fatal("expected target to be killed")
	}
}

func TestResolveRangedAttack_AddsDamageBonus(t *testing.T) {
	attacker := makeEnemy(10, 5, 0)
	attacker.Combat.Ranged = &entity.RangedStats{Range: 5, DamageBonus: 10}
	target := makeEnemy(50, 0, 0)
	r := rand.New(rand.NewSource(1))

	meleeR := rand.New(rand.NewSource(1))
	melee := ResolveAttack(attacker, target, meleeR)
	ranged := ResolveRangedAttack(attacker, target, r)

	if ranged.Damage <= melee.Damage {
		t.Fatalf("ranged damage %d should exceed melee damage %d", ranged.Damage, melee.Damage)
	}
}
