package engine

import (
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/pathfind"
	"github.com/tholloway/roguecore/pkg/status"
	"github.com/tholloway/roguecore/pkg/tile"
)

// doBuyItem purchases the index-th listing from the shop entity.
func (w *World) doBuyItem(shopID entity.ID, index int) actionOutcome {
	player := w.player()
	shop := w.entities.Get(shopID)
	if shop == nil || shop.Shop == nil {
		w.log("There's no shopkeeper here.")
		return noAdvance()
	}
	if index < 0 || index >= len(shop.Shop.Items) {
		w.log("The shopkeeper doesn't have that.")
		return noAdvance()
	}
	listing := shop.Shop.Items[index]
	if w.gold < uint32(listing.Price) {
		w.log("You can't afford the %s.", listing.Name)
		return noAdvance()
	}
	if player.Inventory == nil || player.Inventory.IsFull() {
		w.log("Your pack is full.")
		return noAdvance()
	}

	item := w.newItemEntity(listing.Name, player.Position)
	if item == nil {
		w.log("The shopkeeper rummages and comes up empty.")
		return noAdvance()
	}
	item.ID = w.entities.AllocID()

	w.gold -= uint32(listing.Price)
	shop.Shop.Items = append(shop.Shop.Items[:index], shop.Shop.Items[index+1:]...)
	player.Inventory.Items = append(player.Inventory.Items, item)
	w.emit(GameEvent{Kind: EvItemBought, Actor: PlayerID, ItemName: item.Name, Amount: listing.Price})
	w.log("You buy the %s for %d gold.", item.Name, listing.Price)
	return advance()
}

// doSellItem sells the index-th pack item to the shop at its buyback rate.
func (w *World) doSellItem(index int, shopID entity.ID) actionOutcome {
	player := w.player()
	shop := w.entities.Get(shopID)
	if shop == nil || shop.Shop == nil {
		w.log("There's no shopkeeper here.")
		return noAdvance()
	}
	item, outcome := w.inventoryItem(index)
	if item == nil {
		return outcome
	}
	if w.isEquipped(player, item) {
		w.log("Unequip the %s first.", item.Name)
		return noAdvance()
	}

	price := w.sellPrice(item, shop.Shop.BuyMultiplier)
	player.Inventory.Items = append(player.Inventory.Items[:index], player.Inventory.Items[index+1:]...)
	w.gold += uint32(price)
	w.emit(GameEvent{Kind: EvItemSold, Actor: PlayerID, ItemName: item.Name, Amount: price})
	w.emit(GameEvent{Kind: EvGoldGained, Amount: price})
	w.log("You sell the %s for %d gold.", item.Name, price)
	return advance()
}

// sellPrice values an item for buyback: rarity-scaled base times the
// shop's multiplier, never below 1 gold.
func (w *World) sellPrice(item *entity.Entity, multiplier float64) int {
	base := 10
	if item.Item != nil {
		switch item.Item.Rarity {
		case entity.Uncommon:
			base = 25
		case entity.Rare:
			base = 60
		case entity.VeryRare:
			base = 150
		}
	}
	price := int(float64(base) * multiplier)
	if price < 1 {
		price = 1
	}
	return price
}

// doInteract activates the first interactive fixture at or adjacent to the
// player.
func (w *World) doInteract() actionOutcome {
	player := w.player()
	for _, e := range w.entities.All() {
		if e.Interactive == nil {
			continue
		}
		if e.Position.ChebyshevDistance(player.Position) > 1 {
			continue
		}
		return w.interactWith(e)
	}
	w.log("Nothing to interact with.")
	return noAdvance()
}

func (w *World) interactWith(fixture *entity.Entity) actionOutcome {
	if fixture.Interactive.UsesRemaining != nil && *fixture.Interactive.UsesRemaining <= 0 {
		w.log("The %s has nothing left to give.", fixture.Name)
		return noAdvance()
	}

	switch fixture.Interactive.Kind {
	case entity.InteractionBarrel:
		return w.smashBarrel(fixture)
	case entity.InteractionLever:
		return w.pullLever(fixture)
	case entity.InteractionFountain:
		return w.useFountain(fixture)
	case entity.InteractionAltar:
		return w.useAltar(fixture)
	case entity.InteractionChest:
		return w.openChest(fixture)
	default:
		w.log("Nothing to interact with.")
		return noAdvance()
	}
}

// smashBarrel destroys the barrel, sometimes spilling loot.
func (w *World) smashBarrel(barrel *entity.Entity) actionOutcome {
	w.emit(GameEvent{Kind: EvBarrelSmashed, Position: barrel.Position})
	w.log("You smash the %s to splinters.", barrel.Name)

	if w.rng.Float64() < 0.3 {
		pool := w.tables.LootPool(w.floor)
		if len(pool) > 0 {
			tmpl := pool[w.rng.Intn(len(pool))]
			if item := w.newItemEntity(tmpl.Name, barrel.Position); item != nil {
				w.entities.Add(item)
				w.log("A %s tumbles out.", item.Name)
			}
		}
	}
	w.entities.Remove(barrel.ID)
	return advance()
}

// pullLever toggles the lever and reveals the floor's layout.
func (w *World) pullLever(lever *entity.Entity) actionOutcome {
	lever.Interactive.Activated = !lever.Interactive.Activated
	w.emit(GameEvent{Kind: EvLeverPulled, Position: lever.Position})
	if lever.Interactive.Activated {
		w.log("The lever grinds into place. Somewhere, stone shifts.")
		for i := range w.gameMap.Revealed {
			w.gameMap.Revealed[i] = true
		}
	} else {
		w.log("You pull the lever back.")
	}
	return advance()
}

// useFountain drinks from the fountain: usually healing, occasionally a
// blessing or a curse.
func (w *World) useFountain(fountain *entity.Entity) actionOutcome {
	player := w.player()
	w.emit(GameEvent{Kind: EvFountainUsed, Position: fountain.Position})

	roll := w.rng.Float64()
	switch {
	case roll < 0.6:
		healed := player.Health.Max / 2
		if player.Health.Current+healed > player.Health.Max {
			healed = player.Health.Max - player.Health.Current
		}
		player.Health.Current += healed
		w.emit(GameEvent{Kind: EvHealed, Target: PlayerID, Amount: healed})
		w.log("The water is cool and restorative. You recover %d HP.", healed)
	case roll < 0.85:
		player.StatusEffects = status.Apply(player.StatusEffects, false, status.Regenerating, 10, 2, fountain.Name)
		w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Regenerating})
		w.log("Warmth spreads through your body.")
	default:
		player.StatusEffects = status.Apply(player.StatusEffects, false, status.Poison, 5, 2, fountain.Name)
		w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: status.Poison})
		w.log("The water tastes foul!")
	}

	if fountain.Interactive.UsesRemaining != nil {
		*fountain.Interactive.UsesRemaining--
		if *fountain.Interactive.UsesRemaining <= 0 {
			w.log("The fountain runs dry.")
		}
	}
	return advance()
}

// useAltar trades gold for a blessing.
func (w *World) useAltar(altar *entity.Entity) actionOutcome {
	player := w.player()
	const offering = 25
	if w.gold < offering {
		w.log("The altar demands an offering of %d gold you do not have.", offering)
		return noAdvance()
	}

	w.gold -= offering
	w.emit(GameEvent{Kind: EvAltarOffering, Position: altar.Position, Amount: offering})

	blessings := []status.Type{status.Strengthened, status.Shielded, status.Hasted, status.Regenerating}
	blessing := blessings[w.rng.Intn(len(blessings))]
	magnitude := 3
	if blessing == status.Shielded {
		magnitude = 10
	}
	player.StatusEffects = status.Apply(player.StatusEffects, false, blessing, 20, magnitude, altar.Name)
	w.emit(GameEvent{Kind: EvStatusApplied, Target: PlayerID, Status: blessing})
	w.log("You place %d gold on the altar. A blessing of %s settles over you.", offering, blessing)

	if altar.Interactive.UsesRemaining != nil {
		*altar.Interactive.UsesRemaining--
	}
	return advance()
}

// openChest empties the chest's contents onto the floor around it.
func (w *World) openChest(chest *entity.Entity) actionOutcome {
	if chest.Interactive.Activated {
		w.log("The chest is empty.")
		return noAdvance()
	}
	chest.Interactive.Activated = true
	w.emit(GameEvent{Kind: EvChestOpened, Position: chest.Position})
	w.log("You pry open the %s.", chest.Name)

	if len(chest.Interactive.ContainedItems) == 0 {
		w.log("It's empty. Of course it's empty.")
		return advance()
	}
	for _, name := range chest.Interactive.ContainedItems {
		item := w.newItemEntity(name, chest.Position)
		if item == nil {
			continue
		}
		w.entities.Add(item)
		w.log("Inside: a %s.", item.Name)
	}
	chest.Interactive.ContainedItems = nil
	return advance()
}

// doClickMove pathfinds one step toward the clicked tile and feeds it back
// through doMove so bumping and door handling behave identically.
func (w *World) doClickMove(x, y int) actionOutcome {
	player := w.player()
	goal := tile.Position{X: x, Y: y}
	if !w.gameMap.InBounds(x, y) {
		w.log("You can't move there.")
		return noAdvance()
	}
	if goal == player.Position {
		w.log("You wait.")
		return advance()
	}

	path, ok := pathfind.AStar(w.gameMap, w.gameMap.Width, w.gameMap.Height, player.Position, goal)
	if !ok || len(path) == 0 {
		w.log("You can't find a way there.")
		return noAdvance()
	}
	dir, ok := directionTo(player.Position, path[0])
	if !ok {
		w.log("You can't move there.")
		return noAdvance()
	}
	return w.doMove(dir)
}

// doAutoExplore steps toward the nearest unexplored reachable tile,
// interrupting when enemies are in sight or the floor is fully explored.
func (w *World) doAutoExplore() actionOutcome {
	player := w.player()

	if player.FOV != nil {
		for _, e := range w.entities.All() {
			if e.ID != PlayerID && isHostile(e) && player.FOV.VisibleTiles[e.Position] {
				w.log("You stop: enemies nearby.")
				return interrupted("enemies in sight")
			}
		}
	}

	goal, found := w.nearestUnexplored(player.Position)
	if !found {
		w.log("You've explored everything here. The stairs await.")
		return interrupted("floor fully explored")
	}

	path, ok := pathfind.AStar(w.gameMap, w.gameMap.Width, w.gameMap.Height, player.Position, goal)
	if !ok || len(path) == 0 {
		w.log("You can't find a path onward.")
		return interrupted("no path to unexplored tiles")
	}
	dir, ok := directionTo(player.Position, path[0])
	if !ok {
		return interrupted("no path to unexplored tiles")
	}
	return w.doMove(dir)
}

// nearestUnexplored finds the closest walkable unrevealed tile by scanning
// the player-sourced Dijkstra field.
func (w *World) nearestUnexplored(from tile.Position) (tile.Position, bool) {
	if w.dijkstra == nil {
		return tile.Position{}, false
	}
	best := tile.Position{}
	bestDist := -1
	for y := 0; y < w.gameMap.Height; y++ {
		for x := 0; x < w.gameMap.Width; x++ {
			if w.gameMap.IsRevealed(x, y) || !w.gameMap.IsWalkable(x, y) {
				continue
			}
			d := w.dijkstra.Get(x, y)
			if d == pathfind.Unreachable {
				continue
			}
			if bestDist == -1 || d < bestDist {
				best = tile.Position{X: x, Y: y}
				bestDist = d
			}
		}
	}
	return best, bestDist != -1
}

// directionTo converts a unit step between adjacent positions into a
// Direction.
func directionTo(from, to tile.Position) (entity.Direction, bool) {
	for _, dir := range entity.AllDirections {
		dx, dy := dir.Delta()
		if from.Add(dx, dy) == to {
			return dir, true
		}
	}
	return entity.N, false
}
