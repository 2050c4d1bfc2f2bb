// Package level implements player progression: XP thresholds, level-up
// stat allocation, and the end-of-run score formula.
package level

import "github.com/tholloway/roguecore/pkg/entity"

// XPToNextLevel returns the XP required to advance past currentLevel.
func XPToNextLevel(currentLevel uint32) uint32 {
	return currentLevel * 150
}

// XPForKill returns the XP awarded for killing enemy: its max HP.
func XPForKill(enemy *entity.Entity) uint32 {
	if enemy.Health == nil {
		return 0
	}
	return uint32(enemy.Health.Max)
}

// CheckLevelUp reports whether xp at level has crossed the next threshold,
// and if so the XP remaining after the level-up is consumed.
func CheckLevelUp(xp, currentLevel uint32) (bool, uint32) {
	threshold := XPToNextLevel(currentLevel)
	if xp >= threshold {
		return true, xp - threshold
	}
	return false, xp
}

// Choice enumerates the level-up stat allocations a player may pick.
type Choice uint8

const (
	ChoiceMaxHP Choice = iota
	ChoiceAttack
	ChoiceDefense
	ChoiceSpeed
	ChoiceCleave
	ChoiceFortify
	ChoiceBackstab
	ChoiceEvasion
	ChoiceSpellPower
	ChoiceManaRegen
)

// ApplyChoice mutates player's combat stats for the chosen allocation.
// Cleave and SpellPower/ManaRegen have no per-entity field to mutate — they
// are tracked as World-level bonuses the engine package applies instead.
func ApplyChoice(player *entity.Entity, choice Choice) {
	switch choice {
	case ChoiceMaxHP:
		if player.Health != nil {
			player.Health.Max += 10
			player.Health.Current += 10
		}
	case ChoiceAttack:
		if player.Combat != nil {
			player.Combat.BaseAttack += 2
		}
	case ChoiceDefense:
		if player.Combat != nil {
			player.Combat.BaseDefense += 2
		}
	case ChoiceSpeed:
		if player.Combat != nil {
			player.Combat.BaseSpeed += 15
		}
	case ChoiceFortify:
		if player.Combat != nil {
			player.Combat.BaseDefense += 3
		}
	case ChoiceBackstab:
		if player.Combat != nil {
			player.Combat.CritChance += 0.05
		}
	case ChoiceEvasion:
		if player.Combat != nil {
			player.Combat.DodgeChance += 0.05
		}
	case ChoiceCleave, ChoiceSpellPower, ChoiceManaRegen:
		// No-op here; the engine's World tracks CleaveBonus/SpellPowerBonus/
		// ManaRegen fields directly since they have no entity.CombatStats home.
	}
}

// CalculateScore computes a run's final score:
// 100·floor + 10·enemiesKilled + 500·bossesKilled + 50·level, plus a 5000
// victory bonus.
func CalculateScore(floor, enemiesKilled, bossesKilled, playerLevel uint32, victory bool) uint32 {
	score := floor*100 + enemiesKilled*10 + bossesKilled*500 + playerLevel*50
	if victory {
		score += 5000
	}
	return score
}
