package pathfind

import "github.com/tholloway/roguecore/pkg/tile"

// Opaque reports whether a map position blocks a line-of-sight ray.
type Opaque interface {
	IsOpaque(x, y int) bool
}

// HasLineOfSight walks a Bresenham line from 'from' to 'to' and reports
// whether every tile strictly between the two endpoints is transparent
// (false as soon as one of them is opaque). The origin
// tile is never tested, matching the convention that an entity always has
// line of sight to the tile it stands on.
func HasLineOfSight(m Opaque, from, to tile.Position) bool {
	x, y := from.X, from.Y
	dx := abs(to.X - from.X)
	dy := -abs(to.Y - from.Y)
	sx := -1
	if from.X < to.X {
		sx = 1
	}
	sy := -1
	if from.Y < to.Y {
		sy = 1
	}
	err := dx + dy

	for {
		if x == to.X && y == to.Y {
			return true
		}
		if (x != from.X || y != from.Y) && m.IsOpaque(x, y) {
			return false
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
