// Package combat computes effective combat stats and resolves attacks.
// Effective attack/defense/speed fold in equipped-item bonuses and active
// status effects on top of an entity's base CombatStats.
package combat

import (
	"math"
	"math/rand"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
)

// EffectiveAttack returns e's attack after equipment and status modifiers.
func EffectiveAttack(e *entity.Entity) int {
	base := 0
	if e.Combat != nil {
		base = e.Combat.BaseAttack
	}

	total := base + equipmentAttackBonus(e) + ringStrengthBonus(e) + statusAttackModifier(e)
	if total < 0 {
		total = 0
	}
	return total
}

// EffectiveDefense returns e's defense after equipment and status modifiers.
func EffectiveDefense(e *entity.Entity) int {
	base := 0
	if e.Combat != nil {
		base = e.Combat.BaseDefense
	}

	total := base + equipmentDefenseBonus(e) + statusDefenseModifier(e)
	if total < 0 {
		total = 0
	}
	return total
}

// EffectiveSpeed returns e's speed after equipment speed modifiers and
// status modifiers, clamped to [10, 200] — the floor prevents a fully
// Slowed entity from softlocking the turn scheduler, the ceiling caps
// stacked Hasted effects.
func EffectiveSpeed(e *entity.Entity) int {
	base := 100
	if e.Combat != nil {
		base = e.Combat.BaseSpeed
	}

	total := base + equipmentSpeedModifier(e) + statusSpeedModifier(e)
	if total < 10 {
		total = 10
	}
	if total > 200 {
		total = 200
	}
	return total
}

// AttackResult holds the outcome of one resolved attack.
type AttackResult struct {
	Damage int
	IsCrit bool
	Killed bool
}

// ResolveAttack computes melee damage from attacker to target: base damage
// is attack minus defense floored at 0, ±20% variance, a floor of 1 damage,
// and a crit chance that multiplies the result by 1.5.
func ResolveAttack(attacker, target *entity.Entity, r *rand.Rand) AttackResult {
	atk := EffectiveAttack(attacker)
	def := EffectiveDefense(target)
	return resolveDamage(atk, def, attacker, target, r)
}

// ResolveRangedAttack is ResolveAttack with the attacker's ranged weapon
// damage bonus folded into the attack term.
func ResolveRangedAttack(attacker, target *entity.Entity, r *rand.Rand) AttackResult {
	atk := EffectiveAttack(attacker)
	if attacker.Combat != nil && attacker.Combat.Ranged != nil {
		atk += attacker.Combat.Ranged.DamageBonus
	}
	def := EffectiveDefense(target)
	return resolveDamage(atk, def, attacker, target, r)
}

func resolveDamage(atk, def int, attacker, target *entity.Entity, r *rand.Rand) AttackResult {
	base := atk - def
	if base < 0 {
		base = 0
	}

	variance := 0
	if base > 0 {
		rng := int(math.Ceil(float64(base) * 0.2))
		if rng > 0 {
			variance = r.Intn(2*rng+1) - rng
		}
	}

	damage := base + variance
	if damage < 1 {
		damage = 1
	}

	critChance := 0.0
	if attacker.Combat != nil {
		critChance = attacker.Combat.CritChance
	}
	isCrit := r.Float64() < critChance
	if isCrit {
		damage = int(float64(damage) * 1.5)
	}

	targetHP := 0
	if target.Health != nil {
		targetHP = target.Health.Current
	}
	killed := damage >= targetHP

	return AttackResult{Damage: damage, IsCrit: isCrit, Killed: killed}
}

// --- Equipment helpers ---

func equippedItem(e *entity.Entity, id *entity.ID) *entity.Entity {
	if id == nil || e.Inventory == nil {
		return nil
	}
	for _, item := range e.Inventory.Items {
		if item.ID == *id {
			return item
		}
	}
	return nil
}

func equipmentAttackBonus(e *entity.Entity) int {
	if e.Equipment == nil || e.Inventory == nil {
		return 0
	}
	item := equippedItem(e, e.Equipment.MainHand)
	if item == nil || item.Item == nil {
		return 0
	}
	if item.Item.ItemType == entity.Weapon {
		return item.Item.Power
	}
	return 0
}

func equipmentDefenseBonus(e *entity.Entity) int {
	if e.Equipment == nil || e.Inventory == nil {
		return 0
	}

	bonus := 0
	for _, id := range []*entity.ID{e.Equipment.Head, e.Equipment.Body, e.Equipment.OffHand} {
		item := equippedItem(e, id)
		if item == nil || item.Item == nil {
			continue
		}
		if item.Item.ItemType == entity.Armor || item.Item.ItemType == entity.Shield {
			bonus += item.Item.Power
		}
	}

	if ring := equippedItem(e, e.Equipment.Ring); ring != nil && ring.Name == "Ring of Protection" && ring.Item != nil {
		bonus += ring.Item.Power
	}

	return bonus
}

func equipmentSpeedModifier(e *entity.Entity) int {
	if e.Equipment == nil || e.Inventory == nil {
		return 0
	}
	total := 0
	slots := []*entity.ID{e.Equipment.MainHand, e.Equipment.OffHand, e.Equipment.Head, e.Equipment.Body, e.Equipment.Ring, e.Equipment.Amulet}
	for _, id := range slots {
		item := equippedItem(e, id)
		if item != nil && item.Item != nil {
			total += item.Item.SpeedMod
		}
	}
	return total
}

func ringStrengthBonus(e *entity.Entity) int {
	if e.Equipment == nil {
		return 0
	}
	ring := equippedItem(e, e.Equipment.Ring)
	if ring == nil || ring.Item == nil || ring.Name != "Ring of Strength" {
		return 0
	}
	return ring.Item.Power
}

// --- Status modifiers ---

func statusAttackModifier(e *entity.Entity) int {
	modifier := 0
	for _, eff := range e.StatusEffects {
		switch eff.Type {
		case status.Weakened:
			modifier -= 3
		case status.Strengthened:
			modifier += 3
		}
	}
	return modifier
}

func statusDefenseModifier(e *entity.Entity) int {
	modifier := 0
	for _, eff := range e.StatusEffects {
		if eff.Type == status.Weakened {
			modifier -= 2
		}
	}
	return modifier
}

func statusSpeedModifier(e *entity.Entity) int {
	modifier := 0
	for _, eff := range e.StatusEffects {
		switch eff.Type {
		case status.Hasted:
			modifier += 30
		case status.Slowed:
			modifier -= 30
		}
	}
	return modifier
}
