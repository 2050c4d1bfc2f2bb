package content

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
)

//go:embed data/enemies.yaml data/items.yaml data/classes.yaml data/achievements.yaml data/abilities.yaml
var defaultData embed.FS

// Tables is the full set of static content an engine.World draws from.
// It is always an explicit, injectable argument — pkg/placement and
// pkg/engine never reach for a package-level global — so a host can swap
// in a mod pack without touching engine code.
type Tables struct {
	Enemies      []EnemyTemplate
	Bosses       []EnemyTemplate
	Items        []ItemTemplate
	Classes      []ClassTemplate
	Achievements []AchievementDef
	Abilities    []AbilityTemplate
}

type enemiesFile struct {
	Enemies []EnemyTemplate `yaml:"enemies"`
	Bosses  []EnemyTemplate `yaml:"bosses"`
}

type itemsFile struct {
	Items []ItemTemplate `yaml:"items"`
}

type classesFile struct {
	Classes []ClassTemplate `yaml:"classes"`
}

type achievementsFile struct {
	Achievements []AchievementDef `yaml:"achievements"`
}

type abilitiesFile struct {
	Abilities []AbilityTemplate `yaml:"abilities"`
}

// Default loads the tables embedded in the binary at build time. Callers
// that want to override content (a mod, a balance patch) use
// LoadTablesFromDir instead.
func Default() (*Tables, error) {
	enemiesRaw, err := defaultData.ReadFile("data/enemies.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read embedded enemies.yaml: %w", err)
	}
	itemsRaw, err := defaultData.ReadFile("data/items.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read embedded items.yaml: %w", err)
	}
	classesRaw, err := defaultData.ReadFile("data/classes.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read embedded classes.yaml: %w", err)
	}
	achievementsRaw, err := defaultData.ReadFile("data/achievements.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read embedded achievements.yaml: %w", err)
	}
	abilitiesRaw, err := defaultData.ReadFile("data/abilities.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read embedded abilities.yaml: %w", err)
	}
	return parseTables(enemiesRaw, itemsRaw, classesRaw, achievementsRaw, abilitiesRaw)
}

// LoadTablesFromDir loads enemies.yaml, items.yaml, classes.yaml,
// achievements.yaml, and abilities.yaml from dir, replacing the embedded
// defaults entirely.
// Swaps an entire content pack at once.
func LoadTablesFromDir(dir string) (*Tables, error) {
	enemiesRaw, err := os.ReadFile(dir + "/enemies.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read %s/enemies.yaml: %w", dir, err)
	}
	itemsRaw, err := os.ReadFile(dir + "/items.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read %s/items.yaml: %w", dir, err)
	}
	classesRaw, err := os.ReadFile(dir + "/classes.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read %s/classes.yaml: %w", dir, err)
	}
	achievementsRaw, err := os.ReadFile(dir + "/achievements.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read %s/achievements.yaml: %w", dir, err)
	}
	abilitiesRaw, err := os.ReadFile(dir + "/abilities.yaml")
	if err != nil {
		return nil, fmt.Errorf("content: read %s/abilities.yaml: %w", dir, err)
	}
	return parseTables(enemiesRaw, itemsRaw, classesRaw, achievementsRaw, abilitiesRaw)
}

func parseTables(enemiesRaw, itemsRaw, classesRaw, achievementsRaw, abilitiesRaw []byte) (*Tables, error) {
	var ef enemiesFile
	if err := yaml.Unmarshal(enemiesRaw, &ef); err != nil {
		return nil, fmt.Errorf("content: parse enemies.yaml: %w", err)
	}
	var itf itemsFile
	if err := yaml.Unmarshal(itemsRaw, &itf); err != nil {
		return nil, fmt.Errorf("content: parse items.yaml: %w", err)
	}
	var cf classesFile
	if err := yaml.Unmarshal(classesRaw, &cf); err != nil {
		return nil, fmt.Errorf("content: parse classes.yaml: %w", err)
	}
	var af achievementsFile
	if err := yaml.Unmarshal(achievementsRaw, &af); err != nil {
		return nil, fmt.Errorf("content: parse achievements.yaml: %w", err)
	}
	var abf abilitiesFile
	if err := yaml.Unmarshal(abilitiesRaw, &abf); err != nil {
		return nil, fmt.Errorf("content: parse abilities.yaml: %w", err)
	}

	t := &Tables{
		Enemies:      ef.Enemies,
		Bosses:       ef.Bosses,
		Items:        itf.Items,
		Classes:      cf.Classes,
		Achievements: af.Achievements,
		Abilities:    abf.Abilities,
	}
	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks referential integrity: every template must resolve to a known
// enum value, and starting items must name a real item template.
func Validate(t *Tables) error {
	itemByName := make(map[string]bool, len(t.Items))
	for _, it := range t.Items {
		if it.Name == "" {
			return fmt.Errorf("content: item template with empty name")
		}
		if _, ok := itemTypeByName[it.ItemType]; !ok {
			return fmt.Errorf("content: item %q has unknown item_type %q", it.Name, it.ItemType)
		}
		if _, ok := rarityByName[it.Rarity]; !ok {
			return fmt.Errorf("content: item %q has unknown rarity %q", it.Name, it.Rarity)
		}
		itemByName[it.Name] = true
	}

	for _, e := range append(append([]EnemyTemplate{}, t.Enemies...), t.Bosses...) {
		if e.Name == "" {
			return fmt.Errorf("content: enemy template with empty name")
		}
		if _, ok := aiKindByName[e.AI.Kind]; !ok {
			return fmt.Errorf("content: enemy %q has unknown ai.kind %q", e.Name, e.AI.Kind)
		}
	}

	for _, c := range t.Classes {
		for _, name := range c.StartingItems {
			if !itemByName[name] {
				return fmt.Errorf("content: class %q references unknown starting item %q", c.Class, name)
			}
		}
	}

	classByName := make(map[string]bool, len(t.Classes))
	for _, c := range t.Classes {
		classByName[c.Class] = true
	}
	for _, a := range t.Abilities {
		if a.ID == "" {
			return fmt.Errorf("content: ability template with empty id")
		}
		if !classByName[a.Class] {
			return fmt.Errorf("content: ability %q names unknown class %q", a.ID, a.Class)
		}
		if !abilityTargetingModes[a.Targeting.Mode] {
			return fmt.Errorf("content: ability %q has unknown targeting mode %q", a.ID, a.Targeting.Mode)
		}
		if !abilityEffectKinds[a.Effect.Kind] {
			return fmt.Errorf("content: ability %q has unknown effect kind %q", a.ID, a.Effect.Kind)
		}
		if a.Effect.Status != "" {
			if _, ok := statusTypeByName[a.Effect.Status]; !ok {
				return fmt.Errorf("content: ability %q has unknown status %q", a.ID, a.Effect.Status)
			}
		}
	}

	return nil
}

// AbilitiesForClass returns the abilities castable by class, in table
// order.
func (t *Tables) AbilitiesForClass(class string) []AbilityTemplate {
	var out []AbilityTemplate
	for _, a := range t.Abilities {
		if a.Class == class {
			out = append(out, a)
		}
	}
	return out
}

// FindAbility returns the ability with id castable by class, if present.
func (t *Tables) FindAbility(class, id string) (AbilityTemplate, bool) {
	for _, a := range t.Abilities {
		if a.Class == class && a.ID == id {
			return a, true
		}
	}
	return AbilityTemplate{}, false
}

// StatusByName resolves a content-table status name ("poison", "stunned",
// ...) to its status.Type.
func StatusByName(name string) (status.Type, bool) {
	t, ok := statusTypeByName[name]
	return t, ok
}

// EnemyPool returns every non-boss enemy template whose MinFloor is at or
// below floor.
func (t *Tables) EnemyPool(floor uint32) []EnemyTemplate {
	var out []EnemyTemplate
	for _, e := range t.Enemies {
		if e.MinFloor <= floor {
			out = append(out, e)
		}
	}
	return out
}

// BossForFloor returns the boss template gated to this floor, if any,
// selecting the highest MinFloor not exceeding floor.
func (t *Tables) BossForFloor(floor uint32) (EnemyTemplate, bool) {
	var best EnemyTemplate
	found := false
	for _, b := range t.Bosses {
		if b.MinFloor <= floor && (!found || b.MinFloor > best.MinFloor) {
			best = b
			found = true
		}
	}
	return best, found
}

// LootPool returns every item template at or below floor, excluding keys,
// for weighted drop rolls.
func (t *Tables) LootPool(floor uint32) []ItemTemplate {
	var out []ItemTemplate
	for _, it := range t.Items {
		if it.MinFloor <= floor && itemTypeByName[it.ItemType] != entity.Key {
			out = append(out, it)
		}
	}
	return out
}

// FindItem returns the item template named name, if present.
func (t *Tables) FindItem(name string) (ItemTemplate, bool) {
	for _, it := range t.Items {
		if it.Name == name {
			return it, true
		}
	}
	return ItemTemplate{}, false
}

// FindClass returns the class template named class ("warrior", "rogue",
// "mage"), if present.
func (t *Tables) FindClass(class string) (ClassTemplate, bool) {
	for _, c := range t.Classes {
		if c.Class == class {
			return c, true
		}
	}
	return ClassTemplate{}, false
}

// ApplyEndlessScaling multiplies a boss/enemy template's combat stats by
// 1.0 + (floor-10)*0.15 for floor > 10. Below floor 10 the template is
// returned unchanged.
func ApplyEndlessScaling(tmpl EnemyTemplate, floor uint32) EnemyTemplate {
	if floor <= 10 {
		return tmpl
	}
	mult := 1.0 + float64(floor-10)*0.15
	tmpl.HP = int(float64(tmpl.HP) * mult)
	tmpl.Attack = int(float64(tmpl.Attack) * mult)
	tmpl.Defense = int(float64(tmpl.Defense) * mult)
	return tmpl
}

// --- Conversion into pkg/entity component types ---

// ToAIBehavior converts a template's AI block into an entity.AIBehavior.
// BossName is carried through for boss-specific dispatch in pkg/ai; Phase
// and SummonCounter start zeroed, owned thereafter by the turn loop.
func ToAIBehavior(t AIBehaviorTemplate) *entity.AIBehavior {
	return &entity.AIBehavior{
		Kind:              aiKindByName[t.Kind],
		Range:             t.Range,
		PreferredDistance: t.PreferredDistance,
		BossName:          t.BossName,
	}
}

// ToOnHitEffect converts a template's on_hit block into an
// entity.OnHitEffect, or nil if t is nil.
func ToOnHitEffect(t *OnHitTemplate) *entity.OnHitEffect {
	if t == nil {
		return nil
	}
	return &entity.OnHitEffect{
		Effect:    statusTypeByName[t.Effect],
		Duration:  t.Duration,
		Magnitude: t.Magnitude,
		Chance:    t.Chance,
	}
}

// ToCombatStats builds an entity.CombatStats from an enemy template.
func ToCombatStats(e EnemyTemplate) *entity.CombatStats {
	return &entity.CombatStats{
		BaseAttack:  e.Attack,
		BaseDefense: e.Defense,
		BaseSpeed:   e.Speed,
		CritChance:  e.CritChance,
		Ranged:      toRangedStatsFromAI(e.AI),
		OnHit:       ToOnHitEffect(e.OnHit),
	}
}

func toRangedStatsFromAI(ai AIBehaviorTemplate) *entity.RangedStats {
	if aiKindByName[ai.Kind] != entity.Ranged {
		return nil
	}
	return &entity.RangedStats{Range: ai.Range, PreferredDistance: ai.PreferredDistance}
}

// ToItemProperties converts an item template into an entity.ItemProperties.
func ToItemProperties(it ItemTemplate) *entity.ItemProperties {
	props := &entity.ItemProperties{
		ItemType:   itemTypeByName[it.ItemType],
		Power:      it.Power,
		SpeedMod:   it.SpeedMod,
		EnergyCost: it.EnergyCost,
		Rarity:     rarityByName[it.Rarity],
		Effect:     toItemEffect(it.Effect),
		Ranged:     ToRangedStats(it.Ranged),
	}
	if it.Slot != "" {
		slot := equipSlotByName[it.Slot]
		props.Slot = &slot
	}
	if it.Charges > 0 {
		charges := it.Charges
		props.Charges = &charges
	}
	if it.AmmoType != "" {
		ammo := ammoTypeByName[it.AmmoType]
		props.AmmoType = &ammo
	}
	return props
}

func toItemEffect(t *ItemEffectTemplate) *entity.ItemEffect {
	if t == nil {
		return nil
	}
	eff := &entity.ItemEffect{
		Kind:           itemEffectKindByName[t.Kind],
		HealAmount:     t.HealAmount,
		AreaDamage:     t.AreaDamage,
		AreaRadius:     t.AreaRadius,
		StatusType:     statusTypeByName[t.StatusType],
		StatusDuration: t.StatusDuration,
		RangedDamage:   t.RangedDamage,
	}
	if t.RangedStatusType != "" {
		eff.RangedStatus = &entity.OnHitEffect{
			Effect:   statusTypeByName[t.RangedStatusType],
			Duration: t.RangedStatusDur,
			Chance:   1.0,
		}
	}
	return eff
}

// ToRangedStats converts an item template's ranged block into an
// entity.RangedStats, or nil if the item is not a ranged weapon.
func ToRangedStats(t *RangedTemplate) *entity.RangedStats {
	if t == nil {
		return nil
	}
	return &entity.RangedStats{
		Range:             t.Range,
		PreferredDistance: t.PreferredDistance,
		DamageBonus:       t.DamageBonus,
	}
}
