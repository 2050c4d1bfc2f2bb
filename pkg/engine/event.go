package engine

import (
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// EventKind tags a GameEvent.
type EventKind uint8

const (
	EvMoved EventKind = iota
	EvAttacked
	EvDamageTaken
	EvHealed
	EvItemPickedUp
	EvItemUsed
	EvItemDropped
	EvItemEquipped
	EvStatusApplied
	EvStatusExpired
	EvDoorOpened
	EvTrapTriggered
	EvStairsDescended
	EvEnemySpotted
	EvLevelUp
	EvFlavorText
	EvPlayerDied
	EvBossDefeated
	EvVictory
	EvGoldGained
	EvItemBought
	EvItemSold
	EvProjectileFired
	EvBarrelSmashed
	EvLeverPulled
	EvFountainUsed
	EvChestOpened
	EvAltarOffering
	EvAbilityUsed
)

func (k EventKind) String() string {
	switch k {
	case EvMoved:
		return "Moved"
	case EvAttacked:
		return "Attacked"
	case EvDamageTaken:
		return "DamageTaken"
	case EvHealed:
		return "Healed"
	case EvItemPickedUp:
		return "ItemPickedUp"
	case EvItemUsed:
		return "ItemUsed"
	case EvItemDropped:
		return "ItemDropped"
	case EvItemEquipped:
		return "ItemEquipped"
	case EvStatusApplied:
		return "StatusApplied"
	case EvStatusExpired:
		return "StatusExpired"
	case EvDoorOpened:
		return "DoorOpened"
	case EvTrapTriggered:
		return "TrapTriggered"
	case EvStairsDescended:
		return "StairsDescended"
	case EvEnemySpotted:
		return "EnemySpotted"
	case EvLevelUp:
		return "LevelUp"
	case EvFlavorText:
		return "FlavorText"
	case EvPlayerDied:
		return "PlayerDied"
	case EvBossDefeated:
		return "BossDefeated"
	case EvVictory:
		return "Victory"
	case EvGoldGained:
		return "GoldGained"
	case EvItemBought:
		return "ItemBought"
	case EvItemSold:
		return "ItemSold"
	case EvProjectileFired:
		return "ProjectileFired"
	case EvBarrelSmashed:
		return "BarrelSmashed"
	case EvLeverPulled:
		return "LeverPulled"
	case EvFountainUsed:
		return "FountainUsed"
	case EvChestOpened:
		return "ChestOpened"
	case EvAltarOffering:
		return "AltarOffering"
	case EvAbilityUsed:
		return "AbilityUsed"
	default:
		return "Unknown"
	}
}

// GameEvent is one observable thing that happened during a turn. Only the
// fields relevant to Kind are set.
type GameEvent struct {
	Kind EventKind `json:"kind"`

	Actor    entity.ID     `json:"actor,omitempty"`
	Target   entity.ID     `json:"target,omitempty"`
	Position tile.Position `json:"position,omitempty"`

	Damage int  `json:"damage,omitempty"`
	Amount int  `json:"amount,omitempty"`
	Killed bool `json:"killed,omitempty"`
	Crit   bool `json:"crit,omitempty"`

	ItemName string      `json:"item_name,omitempty"`
	Status   status.Type `json:"status,omitempty"`
	NewLevel uint32      `json:"new_level,omitempty"`
	Floor    uint32      `json:"floor,omitempty"`
	Text     string      `json:"text,omitempty"`
}

// LogMessage is one line of the append-only message log.
type LogMessage struct {
	Turn uint32 `json:"turn"`
	Text string `json:"text"`
}
