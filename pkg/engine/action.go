package engine

import (
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/level"
)

// ActionKind tags a PlayerAction.
type ActionKind uint8

const (
	ActMove ActionKind = iota
	ActWait
	ActPickUp
	ActUseStairs
	ActInteract
	ActAutoExplore
	ActUseItem
	ActDropItem
	ActEquipItem
	ActUnequipSlot
	ActLevelUpChoice
	ActRangedAttack
	ActBuyItem
	ActSellItem
	ActClickMove
	ActUseAbility
)

// PlayerAction is the single input type ResolveTurn accepts. Only the
// fields relevant to Kind are meaningful; the convenience constructors
// below build well-formed values.
type PlayerAction struct {
	Kind      ActionKind
	Direction entity.Direction
	Index     int
	Slot      entity.EquipSlot
	Choice    level.Choice
	TargetID  entity.ID
	ShopID    entity.ID
	X, Y      int
}

// Move builds a Move action in dir.
func Move(dir entity.Direction) PlayerAction {
	return PlayerAction{Kind: ActMove, Direction: dir}
}

// Wait builds a pass-turn action.
func Wait() PlayerAction { return PlayerAction{Kind: ActWait} }

// PickUp builds a pick-up-here action.
func PickUp() PlayerAction { return PlayerAction{Kind: ActPickUp} }

// UseStairs builds a descend/ascend action.
func UseStairs() PlayerAction { return PlayerAction{Kind: ActUseStairs} }

// Interact builds an interact-with-adjacent-fixture action.
func Interact() PlayerAction { return PlayerAction{Kind: ActInteract} }

// AutoExplore builds a one-step auto-explore action.
func AutoExplore() PlayerAction { return PlayerAction{Kind: ActAutoExplore} }

// UseItem builds a use-inventory-item action.
func UseItem(index int) PlayerAction {
	return PlayerAction{Kind: ActUseItem, Index: index}
}

// DropItem builds a drop-inventory-item action.
func DropItem(index int) PlayerAction {
	return PlayerAction{Kind: ActDropItem, Index: index}
}

// EquipItem builds an equip-inventory-item action.
func EquipItem(index int) PlayerAction {
	return PlayerAction{Kind: ActEquipItem, Index: index}
}

// UnequipSlot builds an unequip action for slot.
func UnequipSlot(slot entity.EquipSlot) PlayerAction {
	return PlayerAction{Kind: ActUnequipSlot, Slot: slot}
}

// LevelUpChoice builds the free action answering a pending level-up.
func LevelUpChoice(choice level.Choice) PlayerAction {
	return PlayerAction{Kind: ActLevelUpChoice, Choice: choice}
}

// RangedAttack builds a fire-at-target action.
func RangedAttack(target entity.ID) PlayerAction {
	return PlayerAction{Kind: ActRangedAttack, TargetID: target}
}

// BuyItem builds a purchase action for the shop's index-th listing.
func BuyItem(shopID entity.ID, index int) PlayerAction {
	return PlayerAction{Kind: ActBuyItem, ShopID: shopID, Index: index}
}

// SellItem builds a sell action for the player's index-th inventory item.
func SellItem(index int, shopID entity.ID) PlayerAction {
	return PlayerAction{Kind: ActSellItem, Index: index, ShopID: shopID}
}

// ClickMove builds a pathfind-one-step action toward (x, y).
func ClickMove(x, y int) PlayerAction {
	return PlayerAction{Kind: ActClickMove, X: x, Y: y}
}

// UseAbility builds a cast of the class's index-th ability at an entity
// target. Self-only abilities ignore the target; pass 0 for none.
func UseAbility(index int, target entity.ID) PlayerAction {
	return PlayerAction{Kind: ActUseAbility, Index: index, TargetID: target}
}

// UseAbilityAt builds a tile-targeted cast (e.g. a teleport destination).
func UseAbilityAt(index, x, y int) PlayerAction {
	return PlayerAction{Kind: ActUseAbility, Index: index, X: x, Y: y}
}

// UseAbilityDir builds a direction-targeted cast (e.g. a dash).
func UseAbilityDir(index int, dir entity.Direction) PlayerAction {
	return PlayerAction{Kind: ActUseAbility, Index: index, Direction: dir}
}
