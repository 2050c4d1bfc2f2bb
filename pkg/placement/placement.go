// Package placement populates a freshly generated floor with the player,
// enemies, items, traps, shops, and interactables drawn from pkg/content's
// static tables. It makes every random decision through the
// supplied *rng.RNG and never consults time or an unseeded source, so a
// given (seed, floor) always yields the identical entity layout — the same
// determinism contract pkg/mapgen upholds for terrain.
package placement

import (
	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

// SpawnPlayer creates the player entity at pos and adds it to store under
// ID 0, the one fixed entity ID. class selects
// the starting stat block and inventory from tbl.Classes; an unknown class
// name falls back to the Warrior template.
func SpawnPlayer(store *entity.Store, tbl *content.Tables, class string, pos tile.Position) *entity.Entity {
	ct, ok := tbl.FindClass(class)
	if !ok {
		ct, _ = tbl.FindClass("warrior")
	}

	player := &entity.Entity{
		Name:           "Player",
		Position:       pos,
		Glyph:          '@',
		RenderOrder:    entity.PlayerOrder,
		BlocksMovement: true,
		Health:         entity.NewHealth(ct.HP),
		Combat: &entity.CombatStats{
			BaseAttack:  ct.Attack,
			BaseDefense: ct.Defense,
			BaseSpeed:   ct.Speed,
			CritChance:  ct.CritChance,
			DodgeChance: ct.DodgeChance,
			Mana:        ct.Mana,
			MaxMana:     ct.MaxMana,
		},
		Inventory: &entity.Inventory{MaxSize: 20},
		Equipment: &entity.EquipmentSlots{},
		FOV:       entity.NewFieldOfView(ct.FOVRadius),
	}
	store.AddWithID(player, 0)

	for _, itemName := range ct.StartingItems {
		if tmpl, found := tbl.FindItem(itemName); found {
			// Carried items get an ID for equip-slot references but stay
			// out of the world list; only floor items are stored entities.
			item := newItemEntity(tmpl, tile.Position{})
			item.ID = store.AllocID()
			player.Inventory.Items = append(player.Inventory.Items, item)
		}
	}
	return player
}

// SpawnFloor populates every room of m with content appropriate to its
// RoomType, then scatters 1-3 traps and — on boss floors — a boss key in a
// non-Start, non-Boss room. Every created entity is added to store.
func SpawnFloor(store *entity.Store, tbl *content.Tables, m *tile.Map, floor uint32, r *rng.RNG) {
	occupied := make(map[tile.Position]bool)
	enemyPool := tbl.EnemyPool(floor)
	boss, hasBoss := tbl.BossForFloor(floor)

	for _, room := range m.Rooms {
		positions := floorPositions(m, room)
		if len(positions) == 0 {
			continue
		}

		switch room.RoomType {
		case tile.Start:
			spawnStartRoom(store, tbl, positions, occupied, floor)
		case tile.Boss:
			spawnBossRoom(store, tbl, positions, occupied, enemyPool, boss, hasBoss, floor, r)
		case tile.Treasure:
			spawnTreasureRoom(store, tbl, positions, occupied, enemyPool, floor, r)
		case tile.Library, tile.Armory:
			spawnStockedRoom(store, tbl, positions, occupied, floor, r, 2, 3)
		case tile.Shrine:
			spawnShrineRoom(store, tbl, positions, occupied, floor, r)
		case tile.Shop:
			spawnShopRoom(store, tbl, positions, occupied, floor, r)
		case tile.Normal:
			spawnNormalRoom(store, tbl, positions, occupied, enemyPool, floor, r)
		}
	}

	placeTraps(store, m, occupied, floor, r)

	if hasBoss {
		placeBossKey(store, tbl, m, occupied, r)
	}
}

func floorPositions(m *tile.Map, room tile.Room) []tile.Position {
	var out []tile.Position
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			if m.InBounds(x, y) && m.At(x, y) == tile.Floor {
				out = append(out, tile.Position{X: x, Y: y})
			}
		}
	}
	return out
}

func pickFreePos(positions []tile.Position, occupied map[tile.Position]bool, r *rng.RNG) (tile.Position, bool) {
	free := make([]tile.Position, 0, len(positions))
	for _, p := range positions {
		if !occupied[p] {
			free = append(free, p)
		}
	}
	if len(free) == 0 {
		return tile.Position{}, false
	}
	return free[r.Intn(len(free))], true
}

func spawnStartRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, floor uint32) {
	if floor != 1 {
		return
	}
	// Floor 1's Start room seeds the run with a guaranteed heal and a
	// guaranteed starter weapon so an unlucky item roll never strands the
	// player; deterministic placement order keeps the layout reproducible
	// without drawing from r (positions are handed out in scan order).
	for i, name := range []string{"Health Potion", "Dagger"} {
		if i >= len(positions) {
			break
		}
		pos := positions[i]
		if occupied[pos] {
			continue
		}
		if tmpl, ok := tbl.FindItem(name); ok {
			store.Add(newItemEntity(tmpl, pos))
			occupied[pos] = true
		}
	}
}

func spawnBossRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, enemyPool []content.EnemyTemplate, boss content.EnemyTemplate, hasBoss bool, floor uint32, r *rng.RNG) {
	if hasBoss {
		if pos, ok := pickFreePos(positions, occupied, r); ok {
			store.Add(newEnemyEntity(content.ApplyEndlessScaling(boss, floor), pos))
			occupied[pos] = true
		}
		minionCount := r.IntRange(1, 2)
		for i := 0; i < minionCount && len(enemyPool) > 0; i++ {
			tmpl := enemyPool[r.Intn(len(enemyPool))]
			if pos, ok := pickFreePos(positions, occupied, r); ok {
				store.Add(newEnemyEntity(content.ApplyEndlessScaling(tmpl, floor), pos))
				occupied[pos] = true
			}
		}
	}
	if pos, ok := pickFreePos(positions, occupied, r); ok {
		store.Add(newInteractableEntity(entity.InteractionLever, pos, nil))
		occupied[pos] = true
	}
}

func spawnTreasureRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, enemyPool []content.EnemyTemplate, floor uint32, r *rng.RNG) {
	if pos, ok := pickFreePos(positions, occupied, r); ok {
		itemCount := r.IntRange(1, 2)
		var chestItems []string
		for i := 0; i < itemCount; i++ {
			if tmpl, ok := pickWeightedItem(tbl, floor, r); ok {
				chestItems = append(chestItems, tmpl.Name)
			}
		}
		store.Add(newInteractableEntity(entity.InteractionChest, pos, chestItems))
		occupied[pos] = true
	}

	looseCount := r.IntRange(1, 3)
	for i := 0; i < looseCount; i++ {
		pos, ok := pickFreePos(positions, occupied, r)
		if !ok {
			break
		}
		if tmpl, ok := pickWeightedItem(tbl, floor, r); ok {
			store.Add(newItemEntity(tmpl, pos))
			occupied[pos] = true
		}
	}

	if len(enemyPool) > 0 {
		tmpl := enemyPool[r.Intn(len(enemyPool))]
		if pos, ok := pickFreePos(positions, occupied, r); ok {
			store.Add(newEnemyEntity(content.ApplyEndlessScaling(tmpl, floor), pos))
			occupied[pos] = true
		}
	}
}

func spawnStockedRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, floor uint32, r *rng.RNG, min, max int) {
	count := r.IntRange(min, max)
	for i := 0; i < count; i++ {
		pos, ok := pickFreePos(positions, occupied, r)
		if !ok {
			break
		}
		if tmpl, ok := pickWeightedItem(tbl, floor, r); ok {
			store.Add(newItemEntity(tmpl, pos))
			occupied[pos] = true
		}
	}
}

func spawnShrineRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, floor uint32, r *rng.RNG) {
	if pos, ok := pickFreePos(positions, occupied, r); ok {
		kind := entity.InteractionFountain
		if r.Float64() >= 0.5 {
			kind = entity.InteractionAltar
		}
		store.Add(newInteractableEntity(kind, pos, nil))
		occupied[pos] = true
	}
	if pos, ok := pickFreePos(positions, occupied, r); ok {
		if tmpl, ok := pickWeightedItem(tbl, floor, r); ok {
			store.Add(newItemEntity(tmpl, pos))
			occupied[pos] = true
		}
	}
}

func spawnShopRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, floor uint32, r *rng.RNG) {
	pos, ok := pickFreePos(positions, occupied, r)
	if !ok {
		return
	}
	store.Add(newShopkeeperEntity(tbl, pos, floor, r))
	occupied[pos] = true
}

func spawnNormalRoom(store *entity.Store, tbl *content.Tables, positions []tile.Position, occupied map[tile.Position]bool, enemyPool []content.EnemyTemplate, floor uint32, r *rng.RNG) {
	enemyCount := int(floor)/2 + r.IntRange(1, 3)
	if maxEnemies := len(positions) / 2; enemyCount > maxEnemies {
		enemyCount = maxEnemies
	}
	for i := 0; i < enemyCount && len(enemyPool) > 0; i++ {
		tmpl := enemyPool[r.Intn(len(enemyPool))]
		if pos, ok := pickFreePos(positions, occupied, r); ok {
			store.Add(newEnemyEntity(content.ApplyEndlessScaling(tmpl, floor), pos))
			occupied[pos] = true
		}
	}

	if r.Float64() < 0.30 {
		if pos, ok := pickFreePos(positions, occupied, r); ok {
			if tmpl, ok := pickWeightedItem(tbl, floor, r); ok {
				store.Add(newItemEntity(tmpl, pos))
				occupied[pos] = true
			}
		}
	}

	barrelCount := r.IntRange(0, 2)
	for i := 0; i < barrelCount; i++ {
		pos, ok := pickFreePos(positions, occupied, r)
		if !ok {
			break
		}
		store.Add(newInteractableEntity(entity.InteractionBarrel, pos, nil))
		occupied[pos] = true
	}
}

func placeTraps(store *entity.Store, m *tile.Map, occupied map[tile.Position]bool, floor uint32, r *rng.RNG) {
	var allFloor []tile.Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			p := tile.Position{X: x, Y: y}
			if m.At(x, y) == tile.Floor && !occupied[p] {
				allFloor = append(allFloor, p)
			}
		}
	}

	trapCount := r.IntRange(1, 3)
	for i := 0; i < trapCount; i++ {
		pos, ok := pickFreePos(allFloor, occupied, r)
		if !ok {
			break
		}
		var trap entity.TrapProperties
		switch r.Intn(4) {
		case 0:
			trap = entity.TrapProperties{TrapType: entity.TrapSpike, Damage: 5 + int(floor)}
		case 1:
			trap = entity.TrapProperties{TrapType: entity.TrapPoison, Damage: 2, Duration: 3}
		case 2:
			trap = entity.TrapProperties{TrapType: entity.TrapTeleport}
		default:
			trap = entity.TrapProperties{TrapType: entity.TrapAlarm}
		}
		store.Add(&entity.Entity{
			Name:        "Trap",
			Position:    pos,
			Glyph:       '^',
			RenderOrder: entity.TrapOrder,
			Trap:        &trap,
		})
		occupied[pos] = true
	}
}

func placeBossKey(store *entity.Store, tbl *content.Tables, m *tile.Map, occupied map[tile.Position]bool, r *rng.RNG) {
	var keyRooms []tile.Room
	for _, rm := range m.Rooms {
		if rm.RoomType != tile.Boss && rm.RoomType != tile.Start {
			keyRooms = append(keyRooms, rm)
		}
	}
	if len(keyRooms) == 0 {
		return
	}
	room := keyRooms[r.Intn(len(keyRooms))]
	positions := floorPositions(m, room)
	pos, ok := pickFreePos(positions, occupied, r)
	if !ok {
		return
	}
	if tmpl, found := tbl.FindItem("Boss Key"); found {
		store.Add(newItemEntity(tmpl, pos))
		occupied[pos] = true
	}
}

func pickWeightedItem(tbl *content.Tables, floor uint32, r *rng.RNG) (content.ItemTemplate, bool) {
	pool := tbl.LootPool(floor)
	if len(pool) == 0 {
		return content.ItemTemplate{}, false
	}
	weights := make([]float64, len(pool))
	for i, it := range pool {
		weights[i] = float64(entityRarity(it).Weight())
	}
	idx := r.WeightedChoice(weights)
	if idx < 0 {
		return content.ItemTemplate{}, false
	}
	return pool[idx], true
}

func entityRarity(it content.ItemTemplate) entity.Rarity {
	return content.ToItemProperties(it).Rarity
}

func newItemEntity(tmpl content.ItemTemplate, pos tile.Position) *entity.Entity {
	glyph := '?'
	if len(tmpl.Glyph) > 0 {
		glyph = []rune(tmpl.Glyph)[0]
	}
	return &entity.Entity{
		Name:        tmpl.Name,
		Position:    pos,
		Glyph:       glyph,
		RenderOrder: entity.ItemOrder,
		Item:        content.ToItemProperties(tmpl),
	}
}

func newEnemyEntity(tmpl content.EnemyTemplate, pos tile.Position) *entity.Entity {
	glyph := '?'
	if len(tmpl.Glyph) > 0 {
		glyph = []rune(tmpl.Glyph)[0]
	}
	return &entity.Entity{
		Name:           tmpl.Name,
		Position:       pos,
		Glyph:          glyph,
		RenderOrder:    entity.EnemyOrder,
		BlocksMovement: true,
		Health:         entity.NewHealth(tmpl.HP),
		Combat:         content.ToCombatStats(tmpl),
		AI:             content.ToAIBehavior(tmpl.AI),
		FOV:            entity.NewFieldOfView(6),
	}
}

func newInteractableEntity(kind entity.InteractionKind, pos tile.Position, containedItems []string) *entity.Entity {
	name, glyph, blocks := interactionAppearance(kind)
	var uses *int
	if kind != entity.InteractionLever {
		one := 1
		uses = &one
	}
	return &entity.Entity{
		Name:           name,
		Position:       pos,
		Glyph:          glyph,
		RenderOrder:    entity.ItemOrder,
		BlocksMovement: blocks,
		Interactive: &entity.InteractiveProperties{
			Kind:           kind,
			UsesRemaining:  uses,
			ContainedItems: containedItems,
		},
	}
}

func interactionAppearance(kind entity.InteractionKind) (name string, glyph rune, blocksMovement bool) {
	switch kind {
	case entity.InteractionBarrel:
		return "Barrel", 'o', true
	case entity.InteractionLever:
		return "Lever", '/', false
	case entity.InteractionFountain:
		return "Fountain", '~', false
	case entity.InteractionAltar:
		return "Altar", '+', false
	case entity.InteractionChest:
		return "Chest", '=', false
	default:
		return "Fixture", '?', false
	}
}

func newShopkeeperEntity(tbl *content.Tables, pos tile.Position, floor uint32, r *rng.RNG) *entity.Entity {
	return &entity.Entity{
		Name:           "Shopkeeper",
		Position:       pos,
		Glyph:          '$',
		RenderOrder:    entity.EnemyOrder,
		BlocksMovement: true,
		FlavorText:     "A weathered merchant. Bump to trade.",
		Shop: &entity.ShopInventory{
			Items:         generateShopInventory(tbl, floor, r),
			BuyMultiplier: 1.0,
		},
	}
}

func generateShopInventory(tbl *content.Tables, floor uint32, r *rng.RNG) []entity.ShopItem {
	pool := tbl.LootPool(floor + 1)
	var eligible []content.ItemTemplate
	for _, it := range pool {
		if it.ItemType != "projectile" {
			eligible = append(eligible, it)
		}
	}
	if len(eligible) == 0 {
		return nil
	}

	count := r.IntRange(4, 6)
	if count > len(eligible) {
		count = len(eligible)
	}

	used := make(map[string]bool, count)
	var items []entity.ShopItem
	for attempt := 0; attempt < count*3 && len(items) < count; attempt++ {
		tmpl := eligible[r.Intn(len(eligible))]
		if used[tmpl.Name] {
			continue
		}
		props := content.ToItemProperties(tmpl)
		items = append(items, entity.ShopItem{
			Name:     tmpl.Name,
			Price:    shopPrice(props.Rarity, floor),
			ItemType: props.ItemType,
			Slot:     props.Slot,
		})
		used[tmpl.Name] = true
	}
	return items
}

func shopPrice(rarity entity.Rarity, floor uint32) int {
	base := map[entity.Rarity]int{
		entity.Common:   5,
		entity.Uncommon: 12,
		entity.Rare:     25,
		entity.VeryRare: 50,
	}[rarity]
	return base + int(floor)/2
}
