// Package entity implements the compositional Entity model: a single
// concrete struct with explicit optional component fields, not a generic
// tagged-union or map-keyed ECS store, because a single entity can
// simultaneously be e.g. a boss and an item holder.
package entity

import (
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// ID identifies an entity within a World.
type ID uint32

// Entity is every actor, item, door, trap, or stairway in the game. Most
// fields are nil/zero for most entities; a field being non-nil is what
// grants that capability (a door has Door != nil, a monster has AI != nil,
// and something can be both — a boss with a held ShopInventory, say).
type Entity struct {
	ID             ID
	Name           string
	Position       tile.Position
	Glyph          rune
	RenderOrder    RenderOrder
	BlocksMovement bool
	BlocksFOV      bool

	Health         *Health
	Combat         *CombatStats
	AI             *AIBehavior
	Inventory      *Inventory
	Equipment      *EquipmentSlots
	Item           *ItemProperties
	StatusEffects  []status.Effect
	FOV            *FieldOfView
	Door           *DoorState
	Trap           *TrapProperties
	Stair          *StairDirection
	LootTable      *LootTable
	FlavorText     string

	// Less common roles, nil for almost every entity.
	Shop              *ShopInventory
	Interactive       *InteractiveProperties
	Elite             *EliteModifier
	ResurrectionTimer *uint32

	// Energy accumulates effective speed each scheduling tick; an entity
	// acts once it reaches 100.
	Energy int
}

// IsBoss reports whether this entity's AI behavior is Boss, used by the
// status package's immunity check without that package depending on this
// one.
func (e *Entity) IsBoss() bool {
	return e.AI != nil && e.AI.Kind == Boss
}

// IsDead reports whether the entity's HP has reached zero.
func (e *Entity) IsDead() bool {
	return e.Health != nil && e.Health.Current <= 0
}

// Direction is one of the 8 movement directions.
type Direction uint8

const (
	N Direction = iota
	S
	E
	W
	NE
	NW
	SE
	SW
)

// Delta returns the (dx, dy) offset for a direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case N:
		return 0, -1
	case S:
		return 0, 1
	case E:
		return 1, 0
	case W:
		return -1, 0
	case NE:
		return 1, -1
	case NW:
		return -1, -1
	case SE:
		return 1, 1
	case SW:
		return -1, 1
	default:
		return 0, 0
	}
}

// AllDirections is every Direction in a fixed, deterministic order.
var AllDirections = [8]Direction{N, S, E, W, NE, NW, SE, SW}

// RenderOrder controls draw/occlusion priority; higher draws on top.
type RenderOrder uint8

const (
	Background RenderOrder = iota
	TrapOrder
	ItemOrder
	DoorOrder
	EnemyOrder
	PlayerOrder
)

// Health tracks current and maximum hit points.
type Health struct {
	Current, Max int
}

// NewHealth returns full health at max.
func NewHealth(max int) *Health {
	return &Health{Current: max, Max: max}
}

// IsDead reports whether current HP has reached zero or below.
func (h *Health) IsDead() bool { return h.Current <= 0 }

// CombatStats holds an entity's base combat numbers; effective values
// (after equipment and status modifiers) are computed by pkg/combat.
type CombatStats struct {
	BaseAttack  int
	BaseDefense int
	BaseSpeed   int
	CritChance  float64
	DodgeChance float64
	Ranged      *RangedStats
	OnHit       *OnHitEffect

	// Mana fuels class abilities; zero for entities that cast nothing.
	Mana    int
	MaxMana int
}

// RangedStats describes a ranged weapon's range, AI preferred-distance
// behavior, and bonus damage over melee.
type RangedStats struct {
	Range             int
	PreferredDistance int
	DamageBonus       int
}

// OnHitEffect is an optional status effect a weapon applies on a
// successful hit (e.g. a poisoned dagger).
type OnHitEffect struct {
	Effect    status.Type
	Duration  uint32
	Magnitude int
	Chance    float64
}

// Inventory holds carried items, themselves Entities rather than a
// separate value type: a floor item and a carried item are the same
// record, distinguished only by where they live.
type Inventory struct {
	Items   []*Entity
	MaxSize int
}

// IsFull reports whether the inventory has reached MaxSize.
func (inv *Inventory) IsFull() bool {
	return len(inv.Items) >= inv.MaxSize
}

// EquipSlot names an equipment slot.
type EquipSlot uint8

const (
	MainHand EquipSlot = iota
	OffHand
	Head
	Body
	Ring
	Amulet
)

// EquipmentSlots tracks which item (by ID) occupies each slot.
type EquipmentSlots struct {
	MainHand *ID
	OffHand  *ID
	Head     *ID
	Body     *ID
	Ring     *ID
	Amulet   *ID
}

// Get returns the item ID in slot, if any.
func (s *EquipmentSlots) Get(slot EquipSlot) *ID {
	switch slot {
	case MainHand:
		return s.MainHand
	case OffHand:
		return s.OffHand
	case Head:
		return s.Head
	case Body:
		return s.Body
	case Ring:
		return s.Ring
	case Amulet:
		return s.Amulet
	default:
		return nil
	}
}

// Set places id (or clears with nil) into slot.
func (s *EquipmentSlots) Set(slot EquipSlot, id *ID) {
	switch slot {
	case MainHand:
		s.MainHand = id
	case OffHand:
		s.OffHand = id
	case Head:
		s.Head = id
	case Body:
		s.Body = id
	case Ring:
		s.Ring = id
	case Amulet:
		s.Amulet = id
	}
}

// ItemType enumerates item categories.
type ItemType uint8

const (
	Weapon ItemType = iota
	Armor
	Shield
	RingType
	AmuletType
	Potion
	Scroll
	Wand
	Key
	Food
	Projectile
)

// IsConsumable reports whether using this item type consumes it.
func (t ItemType) IsConsumable() bool {
	return t == Potion || t == Scroll || t == Food
}

// IsEquipment reports whether this item type occupies an equipment slot.
func (t ItemType) IsEquipment() bool {
	switch t {
	case Weapon, Armor, Shield, RingType, AmuletType:
		return true
	default:
		return false
	}
}

// ItemProperties describes an item entity's effect and equip behavior.
type ItemProperties struct {
	ItemType   ItemType
	Slot       *EquipSlot
	Power      int
	SpeedMod   int
	Effect     *ItemEffect
	Charges    *uint32
	EnergyCost int
	Rarity     Rarity
	AmmoType   *AmmoType
	Ranged     *RangedStats
}

// Rarity weights an item's chance of being selected by weighted loot rolls.
type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
	VeryRare
)

// Weight returns the relative selection weight for r, per the content
// table's rarity tiers.
func (r Rarity) Weight() uint32 {
	switch r {
	case Common:
		return 10
	case Uncommon:
		return 5
	case Rare:
		return 2
	case VeryRare:
		return 1
	default:
		return 0
	}
}

// AmmoType distinguishes projectile ammunition consumed by ranged weapons.
type AmmoType uint8

const (
	AmmoArrow AmmoType = iota
	AmmoBolt
	AmmoThrowingKnife
)

// ItemEffectKind enumerates ItemEffect variants.
type ItemEffectKind uint8

const (
	EffectHeal ItemEffectKind = iota
	EffectDamageArea
	EffectApplyStatus
	EffectRevealMap
	EffectTeleport
	EffectCureStatus
	EffectRangedAttack
)

// ItemEffect is a tagged union over what a consumable/scroll/wand does.
// Only the fields relevant to Kind are meaningful.
type ItemEffect struct {
	Kind           ItemEffectKind
	HealAmount     int
	AreaDamage     int
	AreaRadius     int
	StatusType     status.Type
	StatusDuration uint32
	RangedDamage   int
	RangedStatus   *OnHitEffect
}

// DoorState tracks a door entity's open/locked state.
type DoorState struct {
	Open   bool
	Locked bool
	KeyID  string
}

// TrapType enumerates trap behaviors.
type TrapType uint8

const (
	TrapSpike TrapType = iota
	TrapPoison
	TrapTeleport
	TrapAlarm
)

// TrapProperties describes a trap entity.
type TrapProperties struct {
	TrapType  TrapType
	Damage    int
	Duration  uint32 // only meaningful for TrapPoison
	Revealed  bool
	Triggered bool
}

// StairDirection marks a stairway entity as ascending or descending.
type StairDirection uint8

const (
	StairDown StairDirection = iota
	StairUp
)

// FieldOfView is an entity's visibility state.
type FieldOfView struct {
	Radius       int
	VisibleTiles map[tile.Position]bool
	Dirty        bool
}

// NewFieldOfView returns a FOV component starting dirty (forcing the first
// post-phase recompute) with an empty visible set.
func NewFieldOfView(radius int) *FieldOfView {
	return &FieldOfView{Radius: radius, VisibleTiles: make(map[tile.Position]bool), Dirty: true}
}

// LootEntry is one weighted possible drop.
type LootEntry struct {
	ItemName string
	Weight   uint32
}

// LootTable is the set of possible drops for a defeated entity.
type LootTable struct {
	Entries []LootEntry
}

// ShopItem names one item a shopkeeper sells, without instantiating it as
// an Entity until purchased.
type ShopItem struct {
	Name     string
	Price    int
	ItemType ItemType
	Slot     *EquipSlot
}

// ShopInventory lists items a shopkeeper entity sells, with gold prices and
// the multiplier applied when the shopkeeper buys items back from the
// player.
type ShopInventory struct {
	Items         []ShopItem
	BuyMultiplier float64
}

// InteractionKind enumerates the fixture behaviors the Interact action can
// target.
type InteractionKind uint8

const (
	InteractionBarrel InteractionKind = iota
	InteractionLever
	InteractionFountain
	InteractionAltar
	InteractionChest
)

// InteractiveProperties marks an entity as targetable by the Interact
// action (levers, barrels, fountains, altars, chests).
type InteractiveProperties struct {
	Kind           InteractionKind
	Description    string
	UsesRemaining  *int // nil means unlimited, e.g. a Lever
	Activated      bool
	ContainedItems []string // chest contents, named by item template
}

// EliteModifier marks a non-boss enemy as an elite variant with a stat
// multiplier and a renamed prefix, per the class/enemy content tables.
type EliteModifier struct {
	StatMultiplier float64
	NamePrefix     string
}

// Kind classifies an entity for IPC/view purposes.
type Kind uint8

const (
	KindPlayer Kind = iota
	KindEnemy
	KindItem
	KindDoor
	KindTrap
	KindStairs
)
