package mapgen

import (
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

// carveLCorridor carves an L-shaped corridor between two room centers,
// going horizontal-then-vertical or vertical-then-horizontal with equal
// probability.
func carveLCorridor(m *tile.Map, start, end tile.Position, r *rng.RNG) {
	if r.Bool() {
		carveHorizontal(m, start.X, end.X, start.Y)
		carveVertical(m, start.Y, end.Y, end.X)
	} else {
		carveVertical(m, start.Y, end.Y, start.X)
		carveHorizontal(m, start.X, end.X, end.Y)
	}
}

func carveHorizontal(m *tile.Map, x1, x2, y int) {
	minX, maxX := x1, x2
	if x2 < x1 {
		minX, maxX = x2, x1
	}
	for x := minX; x <= maxX; x++ {
		if m.InBounds(x, y) && m.At(x, y) == tile.Wall {
			m.SetTile(x, y, tile.Floor)
		}
	}
}

func carveVertical(m *tile.Map, y1, y2, x int) {
	minY, maxY := y1, y2
	if y2 < y1 {
		minY, maxY = y2, y1
	}
	for y := minY; y <= maxY; y++ {
		if m.InBounds(x, y) && m.At(x, y) == tile.Wall {
			m.SetTile(x, y, tile.Floor)
		}
	}
}
