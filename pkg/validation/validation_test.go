package validation_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/tholloway/roguecore/pkg/mapgen"
	"github.com/tholloway/roguecore/pkg/tile"
	"github.com/tholloway/roguecore/pkg/validation"
)

func TestGeneratedFloorsPass(t *testing.T) {
	for _, seed := range []uint64{1, 42, 12345, 0xDEADBEEF} {
		for floor := uint32(1); floor <= 12; floor++ {
			m := mapgen.Generate(seed, floor)
			report := validation.ValidateFloor(m, floor)
			if !report.Passed {
				t.Errorf("seed %d floor %d failed validation:\n%s", seed, floor, report.Summary())
			}
		}
	}
}

func TestGeneratedFloorsPassProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		floor := uint32(rapid.IntRange(1, 15).Draw(rt, "floor"))
		m := mapgen.Generate(seed, floor)
		report := validation.ValidateFloor(m, floor)
		if !report.Passed {
			rt.Fatalf("seed %d floor %d failed:\n%s", seed, floor, report.Summary())
		}
	})
}

func TestDisconnectedMapFails(t *testing.T) {
	m := tile.NewMap(20, 10)
	// Two sealed 3x3 chambers with a wall between them.
	m.FillRect(2, 2, 3, 3, tile.Floor)
	m.FillRect(12, 2, 3, 3, tile.Floor)
	m.SetTile(3, 3, tile.DownStairs)
	m.RefreshBlocked()
	m.Rooms = []tile.Room{
		{X: 2, Y: 2, Width: 3, Height: 3, RoomType: tile.Start},
		{X: 12, Y: 2, Width: 3, Height: 3, RoomType: tile.Normal},
	}

	report := validation.ValidateFloor(m, 1)
	if report.Passed {
		t.Fatalf("disconnected chambers must fail validation:\n%s", report.Summary())
	}
}

func TestMissingStairsFails(t *testing.T) {
	m := tile.NewMap(10, 10)
	m.FillRect(1, 1, 8, 8, tile.Floor)
	m.RefreshBlocked()
	m.Rooms = []tile.Room{{X: 1, Y: 1, Width: 8, Height: 8, RoomType: tile.Start}}

	report := validation.ValidateFloor(m, 1)
	if report.Passed {
		t.Fatalf("a floor without stairs must fail validation")
	}
}

func TestDuplicateStartFails(t *testing.T) {
	m := tile.NewMap(10, 10)
	m.FillRect(1, 1, 8, 8, tile.Floor)
	m.SetTile(4, 4, tile.DownStairs)
	m.RefreshBlocked()
	m.Rooms = []tile.Room{
		{X: 1, Y: 1, Width: 4, Height: 4, RoomType: tile.Start},
		{X: 5, Y: 5, Width: 3, Height: 3, RoomType: tile.Start},
	}

	report := validation.ValidateFloor(m, 1)
	if report.Passed {
		t.Fatalf("two start rooms must fail validation")
	}
}
