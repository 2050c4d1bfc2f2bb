// Package fov computes visible tiles from an origin using recursive
// shadowcasting.
package fov

import "github.com/tholloway/roguecore/pkg/tile"

// octants holds the 8 coordinate-transform multipliers used to sweep a
// single shadowcasting quadrant-octant over every direction. Each entry maps
// (dx, dy) sweep coordinates to a world offset via:
//
//	worldX = originX + dx*m[0] + dy*m[1]
//	worldY = originY + dx*m[2] + dy*m[3]
//
// These are the standard RogueBasin recursive-shadowcasting multipliers.
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Opaque reports whether a map position blocks line of sight. Satisfied by
// *tile.Map; factored out as an interface so pkg/engine can run FOV over a
// view that also treats closed doors or fog as opaque without pkg/fov
// importing engine-level types.
type Opaque interface {
	IsOpaque(x, y int) bool
	InBounds(x, y int) bool
}

// Compute returns the set of positions visible from origin within radius,
// using recursive shadowcasting. The origin itself is included whenever it
// is in bounds.
//
// A pure function returning a visibility set, so callers can compose it
// with revealed-tile bookkeeping independently.
func Compute(m Opaque, origin tile.Position, radius int) map[tile.Position]bool {
	visible := make(map[tile.Position]bool)
	if m.InBounds(origin.X, origin.Y) {
		visible[origin] = true
	}
	for _, oct := range octants {
		castLight(m, origin, 1, 1.0, 0.0, radius, oct[0], oct[1], oct[2], oct[3], visible)
	}
	return visible
}

func castLight(m Opaque, origin tile.Position, row int, start, end float64, radius, xx, xy, yx, yy int, visible map[tile.Position]bool) {
	if start < end {
		return
	}
	radiusSq := float64(radius * radius)
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			wx := origin.X + dx*xx + dy*xy
			wy := origin.Y + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if float64(dx*dx+dy*dy) < radiusSq && m.InBounds(wx, wy) {
				visible[tile.Position{X: wx, Y: wy}] = true
			}

			opaque := !m.InBounds(wx, wy) || m.IsOpaque(wx, wy)

			if blocked {
				if opaque {
					newStart = rSlope
				} else {
					blocked = false
					start = newStart
				}
			} else if opaque && j < radius {
				blocked = true
				castLight(m, origin, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}
