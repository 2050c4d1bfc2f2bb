package mapgen

import (
	"testing"

	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(12345, 1)
	b := Generate(12345, 1)

	if a.Width != b.Width || a.Height != b.Height {
		t.Fatal("dimensions differ between identical generations")
	}
	for i := range a.Tiles {
		if a.Tiles[i] != b.Tiles[i] {
			t.Fatalf("tile %d differs between identical (seed, floor) generations", i)
		}
	}
	if len(a.Rooms) != len(b.Rooms) {
		t.Fatalf("room count differs: %d vs %d", len(a.Rooms), len(b.Rooms))
	}
}

func TestGenerate_HasExactlyOneStartRoom(t *testing.T) {
	for floor := uint32(1); floor <= 12; floor++ {
		m := Generate(uint64(floor)*777+1, floor)
		starts := m.RoomsOfType(tile.Start)
		if len(starts) != 1 {
			t.Fatalf("floor %d: got %d Start rooms, want 1", floor, len(starts))
		}
	}
}

func TestGenerate_BossFloorsHaveBossRoom(t *testing.T) {
	for _, floor := range []uint32{3, 6, 10, 15} {
		m := Generate(999, floor)
		if len(m.Rooms) < 2 {
			continue
		}
		bosses := m.RoomsOfType(tile.Boss)
		if len(bosses) != 1 {
			t.Fatalf("boss floor %d: got %d Boss rooms, want 1", floor, len(bosses))
		}
	}
}

func TestGenerate_HasDownStairs(t *testing.T) {
	for floor := uint32(1); floor <= 12; floor++ {
		m := Generate(42, floor)
		found := false
		for _, k := range m.Tiles {
			if k == tile.DownStairs {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("floor %d: no DownStairs tile placed", floor)
		}
	}
}

func TestGenerate_StartReachesAllRooms(t *testing.T) {
	for floor := uint32(1); floor <= 9; floor++ {
		m := Generate(uint64(floor)*31+5, floor)
		if len(m.Rooms) == 0 {
			t.Fatalf("floor %d: no rooms generated", floor)
		}

		start := m.StartRoom().Center()
		start, err := m.NearestWalkable(start)
		if err != nil {
			t.Fatalf("floor %d: start room center has no nearby floor: %v", floor, err)
		}

		visited := make([]bool, m.Width*m.Height)
		reachable := m.FloodFillCount(start, func(k tile.Kind) bool { return k.Walkable() }, visited)
		reachSet := make(map[tile.Position]bool, len(reachable))
		for _, p := range reachable {
			reachSet[p] = true
		}

		for i, rm := range m.Rooms {
			c, err := m.NearestWalkable(rm.Center())
			if err != nil {
				continue
			}
			if !reachSet[c] {
				t.Fatalf("floor %d: room %d (%v) not reachable from Start", floor, i, rm)
			}
		}
	}
}

func TestSelectAlgorithm_FixedFloors(t *testing.T) {
	r := rng.New(1)
	for floor := uint32(1); floor <= 3; floor++ {
		if got := SelectAlgorithm(floor, r); got != AlgorithmBSP {
			t.Fatalf("floor %d: got %v, want BSP", floor, got)
		}
	}
	for floor := uint32(7); floor <= 9; floor++ {
		if got := SelectAlgorithm(floor, r); got != AlgorithmCellular {
			t.Fatalf("floor %d: got %v, want Cellular", floor, got)
		}
	}
	if got := SelectAlgorithm(10, r); got != AlgorithmArena {
		t.Fatalf("floor 10: got %v, want Arena", got)
	}
}
