package engine

import (
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// doMove handles a directional step: bump-attack hostiles, talk to
// shopkeepers, open doors, walk, or bounce off a wall without spending the
// turn.
func (w *World) doMove(dir entity.Direction) actionOutcome {
	player := w.player()
	dx, dy := dir.Delta()
	target := player.Position.Add(dx, dy)

	if blocker := w.blockingEntityAt(target, PlayerID); blocker != nil {
		if isHostile(blocker) {
			w.resolveAttack(player, blocker, false)
			return advance()
		}
		if blocker.Shop != nil {
			w.log("%s beckons: \"Have a look at my wares.\"", blocker.Name)
			return noAdvance()
		}
		if blocker.Door != nil && !blocker.Door.Open {
			return w.openDoor(blocker)
		}
		w.log("You can't move there.")
		return noAdvance()
	}

	if kind := w.gameMap.AtPos(target); kind == tile.DoorClosed {
		return w.openDoorTile(target)
	}

	if !w.canMoveTo(target, PlayerID) {
		w.log("You can't move there.")
		return noAdvance()
	}

	player.Position = target
	if player.FOV != nil {
		player.FOV.Dirty = true
	}
	w.emit(GameEvent{Kind: EvMoved, Actor: PlayerID, Position: target})
	w.checkTrapsAt(target)
	return advance()
}

// openDoor opens a door entity, unlocking it first when the player carries
// the matching key.
func (w *World) openDoor(door *entity.Entity) actionOutcome {
	if door.Door.Locked {
		if !w.playerHasKey(door.Door.KeyID) {
			w.log("The door is locked.")
			return noAdvance()
		}
		door.Door.Locked = false
		w.log("You unlock the door.")
	}
	door.Door.Open = true
	door.BlocksMovement = false
	door.BlocksFOV = false
	idx := w.gameMap.Idx(door.Position.X, door.Position.Y)
	if w.gameMap.Tiles[idx] == tile.DoorClosed {
		w.gameMap.Tiles[idx] = tile.DoorOpen
		w.gameMap.RefreshBlocked()
	}
	w.markAllFOVDirty()
	w.emit(GameEvent{Kind: EvDoorOpened, Position: door.Position})
	w.log("You open the door.")
	return advance()
}

// openDoorTile opens a bare door tile with no entity attached.
func (w *World) openDoorTile(pos tile.Position) actionOutcome {
	w.gameMap.SetTile(pos.X, pos.Y, tile.DoorOpen)
	w.gameMap.RefreshBlocked()
	w.markAllFOVDirty()
	w.emit(GameEvent{Kind: EvDoorOpened, Position: pos})
	w.log("You open the door.")
	return advance()
}

func (w *World) playerHasKey(keyID string) bool {
	player := w.player()
	if player.Inventory == nil {
		return false
	}
	for _, item := range player.Inventory.Items {
		if item.Item != nil && item.Item.ItemType == entity.Key {
			if keyID == "" || item.Name == keyID {
				return true
			}
		}
	}
	return false
}

// checkTrapsAt fires any untriggered trap at pos against the player.
func (w *World) checkTrapsAt(pos tile.Position) {
	player := w.player()
	for _, e := range w.entities.All() {
		if e.Trap == nil || e.Position != pos || e.Trap.Triggered {
			continue
		}
		e.Trap.Triggered = true
		e.Trap.Revealed = true
		w.emit(GameEvent{Kind: EvTrapTriggered, Position: pos, Damage: e.Trap.Damage})

		switch e.Trap.TrapType {
		case entity.TrapSpike:
			w.log("Spikes shoot up from the floor! You take %d damage.", e.Trap.Damage)
			w.applyDamage(player, e.Trap.Damage, "a spike trap")
		case entity.TrapPoison:
			w.log("A needle pricks you. Poison courses through your veins.")
			player.StatusEffects = status.Apply(player.StatusEffects, false, status.Poison, e.Trap.Duration, e.Trap.Damage, "a poison trap")
			w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Poison})
		case entity.TrapTeleport:
			w.log("The floor glows and the world lurches!")
			w.teleportPlayerRandom()
		case entity.TrapAlarm:
			w.log("A shrill alarm echoes through the dungeon!")
			w.alertNearbyEnemies(pos)
		}
		return
	}
}

// teleportPlayerRandom relocates the player to a random walkable tile.
func (w *World) teleportPlayerRandom() {
	player := w.player()
	for attempt := 0; attempt < 100; attempt++ {
		x := w.rng.Intn(w.gameMap.Width)
		y := w.rng.Intn(w.gameMap.Height)
		pos := tile.Position{X: x, Y: y}
		if !w.canMoveTo(pos, PlayerID) {
			continue
		}
		player.Position = pos
		if player.FOV != nil {
			player.FOV.Dirty = true
		}
		return
	}
}

// alertNearbyEnemies wakes passive enemies within earshot of pos.
func (w *World) alertNearbyEnemies(pos tile.Position) {
	for _, e := range w.entities.All() {
		if e.AI != nil && e.AI.Kind == entity.Passive && e.Position.ChebyshevDistance(pos) <= 12 {
			e.AI.Kind = entity.Melee
		}
	}
}

// doPickUp lifts the first item entity at the player's feet into the pack.
func (w *World) doPickUp() actionOutcome {
	player := w.player()
	for _, e := range w.entities.All() {
		if e.Item == nil || e.Position != player.Position {
			continue
		}
		if player.Inventory == nil || player.Inventory.IsFull() {
			w.log("Your pack is full.")
			return noAdvance()
		}
		w.entities.Remove(e.ID)
		player.Inventory.Items = append(player.Inventory.Items, e)
		w.emit(GameEvent{Kind: EvItemPickedUp, Actor: PlayerID, ItemName: e.Name})
		w.log("You pick up the %s.", e.Name)
		return advance()
	}
	w.log("Nothing to pick up here.")
	return noAdvance()
}

// doUseStairs descends when standing on the down staircase.
func (w *World) doUseStairs() actionOutcome {
	player := w.player()
	switch w.gameMap.AtPos(player.Position) {
	case tile.DownStairs:
		w.descendStairs()
		return advance()
	case tile.UpStairs:
		w.log("The way back is sealed behind you.")
		return noAdvance()
	default:
		w.log("There are no stairs here.")
		return noAdvance()
	}
}

// doUseItem consumes or activates the index-th inventory item.
func (w *World) doUseItem(index int) actionOutcome {
	player := w.player()
	item, outcome := w.inventoryItem(index)
	if item == nil {
		return outcome
	}
	if item.Item == nil || item.Item.Effect == nil {
		w.log("You can't use the %s.", item.Name)
		return noAdvance()
	}

	eff := item.Item.Effect
	switch eff.Kind {
	case entity.EffectHeal:
		healed := eff.HealAmount
		if player.Health.Current+healed > player.Health.Max {
			healed = player.Health.Max - player.Health.Current
		}
		player.Health.Current += healed
		w.emit(GameEvent{Kind: EvHealed, Target: PlayerID, Amount: healed})
		w.log("You drink the %s and recover %d HP.", item.Name, healed)
	case entity.EffectCureStatus:
		player.StatusEffects = status.CureNegative(player.StatusEffects)
		w.log("You feel cleansed.")
	case entity.EffectApplyStatus:
		player.StatusEffects = status.Apply(player.StatusEffects, false, eff.StatusType, eff.StatusDuration, eff.HealAmount, item.Name)
		w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: eff.StatusType})
		w.log("You use the %s. You feel %s.", item.Name, eff.StatusType)
	case entity.EffectRevealMap:
		for i := range w.gameMap.Revealed {
			w.gameMap.Revealed[i] = true
		}
		w.log("The dungeon's layout floods into your mind.")
	case entity.EffectTeleport:
		w.teleportPlayerRandom()
		w.log("Reality folds around you.")
	case entity.EffectDamageArea:
		w.useAreaDamage(eff.AreaDamage, eff.AreaRadius, item.Name)
	case entity.EffectRangedAttack:
		w.log("Aim the %s with a ranged attack instead.", item.Name)
		return noAdvance()
	}

	w.emit(GameEvent{Kind: EvItemUsed, Actor: PlayerID, ItemName: item.Name})
	w.consumeItem(player, index, item)
	return advance()
}

// useAreaDamage hits every enemy within radius of the player.
func (w *World) useAreaDamage(damage, radius int, source string) {
	player := w.player()
	w.log("A wave of force erupts outward!")
	for _, e := range w.entities.All() {
		if e.ID == PlayerID || e.Health == nil || e.AI == nil {
			continue
		}
		if e.Position.ChebyshevDistance(player.Position) > radius {
			continue
		}
		w.applyDamage(e, damage, source)
		if e.IsDead() {
			w.handleEntityDeath(e, source)
		}
	}
}

// consumeItem uses up one charge of item, removing it from the pack when
// spent. Non-consumables without charges persist.
func (w *World) consumeItem(player *entity.Entity, index int, item *entity.Entity) {
	if item.Item.Charges != nil {
		if *item.Item.Charges > 0 {
			*item.Item.Charges--
		}
		if *item.Item.Charges == 0 {
			w.removeInventoryItem(player, index)
			w.log("The %s crumbles to dust.", item.Name)
		}
		return
	}
	if item.Item.ItemType.IsConsumable() {
		w.removeInventoryItem(player, index)
	}
}

// removeInventoryItem drops the index-th pack slot, clearing any equipment
// slot that referenced it.
func (w *World) removeInventoryItem(player *entity.Entity, index int) {
	item := player.Inventory.Items[index]
	if player.Equipment != nil {
		for _, slot := range []entity.EquipSlot{entity.MainHand, entity.OffHand, entity.Head, entity.Body, entity.Ring, entity.Amulet} {
			if id := player.Equipment.Get(slot); id != nil && *id == item.ID {
				player.Equipment.Set(slot, nil)
			}
		}
	}
	player.Inventory.Items = append(player.Inventory.Items[:index], player.Inventory.Items[index+1:]...)
}

// inventoryItem validates index against the player's pack.
func (w *World) inventoryItem(index int) (*entity.Entity, actionOutcome) {
	player := w.player()
	if player.Inventory == nil || index < 0 || index >= len(player.Inventory.Items) {
		w.log("You don't have that item.")
		return nil, noAdvance()
	}
	return player.Inventory.Items[index], noAdvance()
}

// isEquipped reports whether item occupies any of the player's slots.
func (w *World) isEquipped(player *entity.Entity, item *entity.Entity) bool {
	if player.Equipment == nil {
		return false
	}
	for _, slot := range []entity.EquipSlot{entity.MainHand, entity.OffHand, entity.Head, entity.Body, entity.Ring, entity.Amulet} {
		if id := player.Equipment.Get(slot); id != nil && *id == item.ID {
			return true
		}
	}
	return false
}

// doDropItem places the index-th pack item at the player's feet.
func (w *World) doDropItem(index int) actionOutcome {
	player := w.player()
	item, outcome := w.inventoryItem(index)
	if item == nil {
		return outcome
	}
	if w.isEquipped(player, item) {
		w.log("Unequip the %s first.", item.Name)
		return noAdvance()
	}

	player.Inventory.Items = append(player.Inventory.Items[:index], player.Inventory.Items[index+1:]...)
	item.Position = player.Position
	item.RenderOrder = entity.ItemOrder
	w.entities.AddWithID(item, item.ID)
	w.emit(GameEvent{Kind: EvItemDropped, Actor: PlayerID, ItemName: item.Name})
	w.log("You drop the %s.", item.Name)
	return advance()
}

// doEquipItem wears or wields the index-th pack item.
func (w *World) doEquipItem(index int) actionOutcome {
	player := w.player()
	item, outcome := w.inventoryItem(index)
	if item == nil {
		return outcome
	}
	if item.Item == nil || !item.Item.ItemType.IsEquipment() || item.Item.Slot == nil {
		w.log("You can't equip the %s.", item.Name)
		return noAdvance()
	}
	if player.Equipment == nil {
		player.Equipment = &entity.EquipmentSlots{}
	}

	slot := *item.Item.Slot
	id := item.ID
	player.Equipment.Set(slot, &id)
	w.emit(GameEvent{Kind: EvItemEquipped, Actor: PlayerID, ItemName: item.Name})
	w.log("You equip the %s.", item.Name)
	return advance()
}

// doUnequipSlot empties slot.
func (w *World) doUnequipSlot(slot entity.EquipSlot) actionOutcome {
	player := w.player()
	if player.Equipment == nil || player.Equipment.Get(slot) == nil {
		w.log("Nothing is equipped there.")
		return noAdvance()
	}
	player.Equipment.Set(slot, nil)
	w.log("You unequip it.")
	return advance()
}

// doRangedAttack fires the equipped ranged weapon at target.
func (w *World) doRangedAttack(targetID entity.ID) actionOutcome {
	player := w.player()
	weapon := w.equippedRangedWeapon(player)
	if weapon == nil {
		w.log("You have no ranged weapon equipped.")
		return noAdvance()
	}

	target := w.entities.Get(targetID)
	if target == nil || target.Health == nil {
		w.log("There's nothing there to shoot.")
		return noAdvance()
	}
	if player.Position.ChebyshevDistance(target.Position) > weapon.Item.Ranged.Range {
		w.log("The %s is out of range.", target.Name)
		return noAdvance()
	}
	if !pathfind.HasLineOfSight(w.gameMap, player.Position, target.Position) {
		w.log("You can't see a clear shot.")
		return noAdvance()
	}
	if weapon.Item.AmmoType != nil && !w.consumeAmmo(player, *weapon.Item.AmmoType) {
		w.log("You're out of ammunition.")
		return noAdvance()
	}

	// Borrow the weapon's ranged profile for the resolution, since the
	// player's base stats carry no ranged block of their own.
	savedRanged := player.Combat.Ranged
	player.Combat.Ranged = weapon.Item.Ranged
	w.emit(GameEvent{Kind: EvProjectileFired, Actor: PlayerID, Target: targetID})
	w.resolveAttack(player, target, true)
	player.Combat.Ranged = savedRanged
	return advance()
}

// equippedRangedWeapon returns the main-hand item when it has a ranged
// profile.
func (w *World) equippedRangedWeapon(player *entity.Entity) *entity.Entity {
	if player.Equipment == nil || player.Equipment.MainHand == nil || player.Inventory == nil {
		return nil
	}
	for _, item := range player.Inventory.Items {
		if item.ID == *player.Equipment.MainHand && item.Item != nil && item.Item.Ranged != nil {
			return item
		}
	}
	return nil
}

// consumeAmmo spends one projectile of the given type from the pack.
func (w *World) consumeAmmo(player *entity.Entity, ammo entity.AmmoType) bool {
	if player.Inventory == nil {
		return false
	}
	for i, item := range player.Inventory.Items {
		if item.Item == nil || item.Item.ItemType != entity.Projectile {
			continue
		}
		if item.Item.AmmoType == nil || *item.Item.AmmoType != ammo {
			continue
		}
		if item.Item.Charges != nil && *item.Item.Charges > 1 {
			*item.Item.Charges--
			return true
		}
		w.removeInventoryItem(player, i)
		return true
	}
	return false
}
