package placement_test

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/content"
	"github.com/tholloway/roguecore/pkg/entity"
	"github.com/tholloway/roguecore/pkg/mapgen"
	"github.com/tholloway/roguecore/pkg/placement"
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

func tables(t *testing.T) *content.Tables {
	t.Helper()
	tbl, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return tbl
}

func spawn(t *testing.T, seed uint64, floor uint32) *entity.Store {
	t.Helper()
	m := mapgen.Generate(seed, floor)
	store := entity.NewStore()
	placement.SpawnFloor(store, tables(t), m, floor, rng.New(seed))
	return store
}

func TestSpawnPlayerIsIDZero(t *testing.T) {
	store := entity.NewStore()
	player := placement.SpawnPlayer(store, tables(t), "warrior", tile.Position{X: 5, Y: 5})
	if player.ID != 0 {
		t.Fatalf("player ID = %d, want 0", player.ID)
	}
	if store.Get(0) != player {
		t.Fatalf("player not retrievable by ID 0")
	}
	if player.Health == nil || player.Combat == nil || player.Inventory == nil || player.FOV == nil {
		t.Fatalf("player missing core components")
	}
	if len(player.Inventory.Items) == 0 {
		t.Fatalf("warrior should start with items")
	}
	for _, item := range player.Inventory.Items {
		if store.Get(item.ID) != nil {
			t.Fatalf("carried item %q must not live in the world list", item.Name)
		}
		if item.ID == 0 {
			t.Fatalf("carried item %q has no allocated ID", item.Name)
		}
	}
}

func TestUnknownClassFallsBackToWarrior(t *testing.T) {
	store := entity.NewStore()
	player := placement.SpawnPlayer(store, tables(t), "necromancer", tile.Position{})
	warrior, _ := tables(t).FindClass("warrior")
	if player.Health.Max != warrior.HP {
		t.Fatalf("fallback HP = %d, want warrior's %d", player.Health.Max, warrior.HP)
	}
}

func TestSpawnFloorDeterministic(t *testing.T) {
	a := spawn(t, 42, 1)
	b := spawn(t, 42, 1)
	ea, eb := a.All(), b.All()
	if len(ea) != len(eb) {
		t.Fatalf("entity counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i].Name != eb[i].Name || ea[i].Position != eb[i].Position {
			t.Fatalf("entity %d differs: %s@%v vs %s@%v",
				i, ea[i].Name, ea[i].Position, eb[i].Name, eb[i].Position)
		}
	}
}

func TestBossFloorSpawnsBoss(t *testing.T) {
	store := spawn(t, 7, 3)
	found := false
	for _, e := range store.All() {
		if e.AI != nil && e.AI.Kind == entity.Boss {
			found = true
			if e.AI.BossName == "" {
				t.Fatalf("boss entity missing BossName")
			}
		}
	}
	if !found {
		t.Fatalf("floor 3 should spawn a boss")
	}
}

func TestNonBossFloorHasNoBoss(t *testing.T) {
	store := spawn(t, 7, 2)
	for _, e := range store.All() {
		if e.AI != nil && e.AI.Kind == entity.Boss {
			t.Fatalf("floor 2 spawned a boss: %s", e.Name)
		}
	}
}

func TestFloorHasTrapsAndEnemies(t *testing.T) {
	store := spawn(t, 99, 2)
	traps, enemies := 0, 0
	for _, e := range store.All() {
		if e.Trap != nil {
			traps++
		}
		if e.AI != nil {
			enemies++
		}
	}
	if traps < 1 || traps > 3 {
		t.Fatalf("trap count = %d, want 1-3", traps)
	}
	if enemies == 0 {
		t.Fatalf("no enemies spawned")
	}
}

func TestEntitiesSpawnOnFloorTiles(t *testing.T) {
	m := mapgen.Generate(1234, 5)
	store := entity.NewStore()
	placement.SpawnFloor(store, tables(t), m, 5, rng.New(1234))
	for _, e := range store.All() {
		if m.At(e.Position.X, e.Position.Y) != tile.Floor {
			t.Fatalf("%s spawned on %v, a non-floor tile", e.Name, e.Position)
		}
	}
}

func TestShopRoomGetsShopkeeper(t *testing.T) {
	// Shop rooms are a random roll; sweep seeds until one appears, then
	// assert its contents are well-formed.
	for seed := uint64(1); seed < 60; seed++ {
		m := mapgen.Generate(seed, 2)
		hasShopRoom := false
		for _, room := range m.Rooms {
			if room.RoomType == tile.Shop {
				hasShopRoom = true
			}
		}
		if !hasShopRoom {
			continue
		}
		store := entity.NewStore()
		placement.SpawnFloor(store, tables(t), m, 2, rng.New(seed))
		for _, e := range store.All() {
			if e.Shop != nil {
				if len(e.Shop.Items) == 0 {
					t.Fatalf("shopkeeper with empty stock")
				}
				if e.Shop.BuyMultiplier <= 0 {
					t.Fatalf("shopkeeper with non-positive buy multiplier")
				}
				return
			}
		}
		t.Fatalf("seed %d has a Shop room but no shopkeeper", seed)
	}
	t.Skip("no shop room in the swept seed range")
}
