// Package content loads the static game-data tables — enemy and boss
// templates, item templates, starting class templates, and achievement
// definitions — that pkg/placement and pkg/engine draw from to populate a
// floor. Tables are data, never behavior: this package holds no RNG and
// makes no placement decisions.
package content

import (
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
)

// AIBehaviorTemplate is the YAML shape of an entity.AIBehavior. BossName
// comes from the template; Phase and SummonCounter are runtime state and
// are not part of it.
type AIBehaviorTemplate struct {
	Kind              string `yaml:"kind" json:"kind"`
	Range             int    `yaml:"range,omitempty" json:"range,omitempty"`
	PreferredDistance int    `yaml:"preferred_distance,omitempty" json:"preferred_distance,omitempty"`
	BossName          string `yaml:"boss_name,omitempty" json:"boss_name,omitempty"`
}

// OnHitTemplate is the YAML shape of an entity.OnHitEffect.
type OnHitTemplate struct {
	Effect    string  `yaml:"effect" json:"effect"`
	Duration  uint32  `yaml:"duration" json:"duration"`
	Magnitude int     `yaml:"magnitude" json:"magnitude"`
	Chance    float64 `yaml:"chance" json:"chance"`
}

// EnemyTemplate is a static monster or boss definition.
type EnemyTemplate struct {
	Name       string             `yaml:"name" json:"name"`
	Glyph      string             `yaml:"glyph" json:"glyph"`
	HP         int                `yaml:"hp" json:"hp"`
	Attack     int                `yaml:"attack" json:"attack"`
	Defense    int                `yaml:"defense" json:"defense"`
	Speed      int                `yaml:"speed" json:"speed"`
	CritChance float64            `yaml:"crit_chance" json:"crit_chance"`
	MinFloor   uint32             `yaml:"min_floor" json:"min_floor"`
	AI         AIBehaviorTemplate `yaml:"ai" json:"ai"`
	OnHit      *OnHitTemplate     `yaml:"on_hit,omitempty" json:"on_hit,omitempty"`
}

// RangedTemplate is the YAML shape of an entity.RangedStats.
type RangedTemplate struct {
	Range             int `yaml:"range" json:"range"`
	PreferredDistance int `yaml:"preferred_distance,omitempty" json:"preferred_distance,omitempty"`
	DamageBonus       int `yaml:"damage_bonus" json:"damage_bonus"`
}

// ItemEffectTemplate is the YAML shape of an entity.ItemEffect.
type ItemEffectTemplate struct {
	Kind               string  `yaml:"kind" json:"kind"`
	HealAmount         int     `yaml:"heal_amount,omitempty" json:"heal_amount,omitempty"`
	AreaDamage         int     `yaml:"area_damage,omitempty" json:"area_damage,omitempty"`
	AreaRadius         int     `yaml:"area_radius,omitempty" json:"area_radius,omitempty"`
	StatusType         string  `yaml:"status_type,omitempty" json:"status_type,omitempty"`
	StatusDuration     uint32  `yaml:"status_duration,omitempty" json:"status_duration,omitempty"`
	RangedDamage       int     `yaml:"ranged_damage,omitempty" json:"ranged_damage,omitempty"`
	RangedStatusType   string  `yaml:"ranged_status_type,omitempty" json:"ranged_status_type,omitempty"`
	RangedStatusDur    uint32  `yaml:"ranged_status_duration,omitempty" json:"ranged_status_duration,omitempty"`
}

// ItemTemplate is a static item definition.
type ItemTemplate struct {
	Name       string              `yaml:"name" json:"name"`
	Glyph      string              `yaml:"glyph" json:"glyph"`
	ItemType   string              `yaml:"item_type" json:"item_type"`
	Slot       string              `yaml:"slot,omitempty" json:"slot,omitempty"`
	Power      int                 `yaml:"power" json:"power"`
	SpeedMod   int                 `yaml:"speed_mod" json:"speed_mod"`
	EnergyCost int                 `yaml:"energy_cost" json:"energy_cost"`
	MinFloor   uint32              `yaml:"min_floor" json:"min_floor"`
	Rarity     string              `yaml:"rarity" json:"rarity"`
	Charges    uint32              `yaml:"charges,omitempty" json:"charges,omitempty"`
	AmmoType   string              `yaml:"ammo_type,omitempty" json:"ammo_type,omitempty"`
	Ranged     *RangedTemplate     `yaml:"ranged,omitempty" json:"ranged,omitempty"`
	Effect     *ItemEffectTemplate `yaml:"effect,omitempty" json:"effect,omitempty"`
}

// ClassTemplate is a starting-character template.
type ClassTemplate struct {
	Class           string   `yaml:"class" json:"class"`
	HP              int      `yaml:"hp" json:"hp"`
	Attack          int      `yaml:"attack" json:"attack"`
	Defense         int      `yaml:"defense" json:"defense"`
	Speed           int      `yaml:"speed" json:"speed"`
	CritChance      float64  `yaml:"crit_chance" json:"crit_chance"`
	DodgeChance     float64  `yaml:"dodge_chance" json:"dodge_chance"`
	FOVRadius       int      `yaml:"fov_radius" json:"fov_radius"`
	Mana            int      `yaml:"mana" json:"mana"`
	MaxMana         int      `yaml:"max_mana" json:"max_mana"`
	StartingItems   []string `yaml:"starting_items" json:"starting_items"`
	LevelUpChoices  []string `yaml:"level_up_choices" json:"level_up_choices"`
}

// AbilityTargetingTemplate is the YAML shape of an ability's targeting
// mode: self_only, adjacent, targeted (with range and optional blast
// radius), or direction.
type AbilityTargetingTemplate struct {
	Mode   string `yaml:"mode" json:"mode"`
	Range  int    `yaml:"range,omitempty" json:"range,omitempty"`
	Radius int    `yaml:"radius,omitempty" json:"radius,omitempty"`
}

// AbilityEffectTemplate is the YAML shape of what an ability does when it
// lands. Only the fields relevant to Kind are meaningful.
type AbilityEffectTemplate struct {
	Kind     string `yaml:"kind" json:"kind"`
	Amount   int    `yaml:"amount,omitempty" json:"amount,omitempty"`
	Status   string `yaml:"status,omitempty" json:"status,omitempty"`
	Duration uint32 `yaml:"duration,omitempty" json:"duration,omitempty"`
	Distance int    `yaml:"distance,omitempty" json:"distance,omitempty"`
	Range    int    `yaml:"range,omitempty" json:"range,omitempty"`
	Absorb   int    `yaml:"absorb,omitempty" json:"absorb,omitempty"`
}

// AbilityTemplate is one class-gated active ability, cast with mana.
type AbilityTemplate struct {
	ID          string                   `yaml:"id" json:"id"`
	Name        string                   `yaml:"name" json:"name"`
	Class       string                   `yaml:"class" json:"class"`
	ManaCost    int                      `yaml:"mana_cost" json:"mana_cost"`
	Targeting   AbilityTargetingTemplate `yaml:"targeting" json:"targeting"`
	Effect      AbilityEffectTemplate    `yaml:"effect" json:"effect"`
	Description string                   `yaml:"description" json:"description"`
}

// AchievementCategory groups achievement definitions for UI display.
type AchievementCategory string

const (
	CategoryExploration AchievementCategory = "exploration"
	CategoryCombat      AchievementCategory = "combat"
	CategoryCollection  AchievementCategory = "collection"
	CategoryChallenge   AchievementCategory = "challenge"
	CategoryMisc        AchievementCategory = "misc"
)

// AchievementDef names one trackable milestone. Progress bookkeeping is a
// host/save concern; this package only defines what an achievement is.
type AchievementDef struct {
	ID          string               `yaml:"id" json:"id"`
	Name        string               `yaml:"name" json:"name"`
	Description string               `yaml:"description" json:"description"`
	Category    AchievementCategory  `yaml:"category" json:"category"`
	Target      int                  `yaml:"target" json:"target"`
}

// statusTypeByName maps the YAML/JSON status-type strings to status.Type.
var statusTypeByName = map[string]status.Type{
	"poison":       status.Poison,
	"burning":      status.Burning,
	"stunned":      status.Stunned,
	"confused":     status.Confused,
	"weakened":     status.Weakened,
	"blinded":      status.Blinded,
	"regenerating": status.Regenerating,
	"hasted":       status.Hasted,
	"slowed":       status.Slowed,
	"shielded":     status.Shielded,
	"invisible":    status.Invisible,
	"strengthened": status.Strengthened,
}

var aiKindByName = map[string]entity.AIBehaviorKind{
	"melee":   entity.Melee,
	"ranged":  entity.Ranged,
	"passive": entity.Passive,
	"fleeing": entity.Fleeing,
	"boss":    entity.Boss,
	"ally":    entity.Ally,
}

var itemTypeByName = map[string]entity.ItemType{
	"weapon":     entity.Weapon,
	"armor":      entity.Armor,
	"shield":     entity.Shield,
	"ring":       entity.RingType,
	"amulet":     entity.AmuletType,
	"potion":     entity.Potion,
	"scroll":     entity.Scroll,
	"wand":       entity.Wand,
	"key":        entity.Key,
	"food":       entity.Food,
	"projectile": entity.Projectile,
}

var equipSlotByName = map[string]entity.EquipSlot{
	"main_hand": entity.MainHand,
	"off_hand":  entity.OffHand,
	"head":      entity.Head,
	"body":      entity.Body,
	"ring":      entity.Ring,
	"amulet":    entity.Amulet,
}

var ammoTypeByName = map[string]entity.AmmoType{
	"arrow":          entity.AmmoArrow,
	"bolt":           entity.AmmoBolt,
	"throwing_knife": entity.AmmoThrowingKnife,
}

var rarityByName = map[string]entity.Rarity{
	"common":    entity.Common,
	"uncommon":  entity.Uncommon,
	"rare":      entity.Rare,
	"very_rare": entity.VeryRare,
}

// abilityTargetingModes and abilityEffectKinds are the accepted YAML
// values, checked by Validate.
var abilityTargetingModes = map[string]bool{
	"self_only": true,
	"adjacent":  true,
	"targeted":  true,
	"direction": true,
}

var abilityEffectKinds = map[string]bool{
	"damage":             true,
	"status_self":        true,
	"status_target":      true,
	"move":               true,
	"teleport":           true,
	"shield":             true,
	"damage_adjacent":    true,
	"poison_next_attack": true,
}

var itemEffectKindByName = map[string]entity.ItemEffectKind{
	"heal":          entity.EffectHeal,
	"damage_area":   entity.EffectDamageArea,
	"apply_status":  entity.EffectApplyStatus,
	"reveal_map":    entity.EffectRevealMap,
	"teleport":      entity.EffectTeleport,
	"cure_status":   entity.EffectCureStatus,
	"ranged_attack": entity.EffectRangedAttack,
}
