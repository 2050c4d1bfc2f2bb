// Package pathfind provides Dijkstra scalar-field maps, A* search, and
// Bresenham line-of-sight queries over a tile.Map.
package pathfind

import "github.com/tholloway/roguecore/pkg/tile"

// Unreachable is the sentinel distance for tiles the BFS never reaches.
const Unreachable = int(^uint(0) >> 1) // math.MaxInt, without importing math for one constant

// neighbors8 is the fixed 8-directional offset order every pathfinding
// routine in this package iterates in. Keeping one shared order everywhere
// avoids subtly different tie-breaking between Dijkstra, A*, and AI
// movement decisions built on top of them.
var neighbors8 = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Walkable reports whether a position can be entered, and is exposed as an
// interface so callers can build a Dijkstra map over something richer than
// raw terrain (e.g. terrain plus "no other entity occupies this tile").
type Walkable interface {
	InBounds(x, y int) bool
	IsWalkable(x, y int) bool
}

// DijkstraMap is a multi-source BFS scalar field: the fewest walkable steps
// from any source tile to every other tile. A plain queue-based BFS
// (rather than a priority queue) is correct because every step has uniform
// cost 1.
type DijkstraMap struct {
	width, height int
	values        []int
}

// ComputeDijkstraMap runs a multi-source BFS from sources over m, returning
// the resulting scalar field. Tiles unreachable from every source carry
// Unreachable.
func ComputeDijkstraMap(m Walkable, width, height int, sources []tile.Position) *DijkstraMap {
	size := width * height
	values := make([]int, size)
	for i := range values {
		values[i] = Unreachable
	}

	queue := make([]tile.Position, 0, len(sources))
	for _, s := range sources {
		if !m.InBounds(s.X, s.Y) {
			continue
		}
		idx := s.Y*width + s.X
		if values[idx] != 0 {
			values[idx] = 0
			queue = append(queue, s)
		}
	}

	for len(queue) > 0 {
		pos := queue[0]
		queue = queue[1:]
		currentDist := values[pos.Y*width+pos.X]

		for _, d := range neighbors8 {
			nx, ny := pos.X+d[0], pos.Y+d[1]
			if !m.InBounds(nx, ny) || !m.IsWalkable(nx, ny) {
				continue
			}
			nidx := ny*width + nx
			newDist := currentDist + 1
			if newDist < values[nidx] {
				values[nidx] = newDist
				queue = append(queue, tile.Position{X: nx, Y: ny})
			}
		}
	}

	return &DijkstraMap{width: width, height: height, values: values}
}

// Get returns the scalar-field value at (x, y), or Unreachable if out of
// bounds.
func (d *DijkstraMap) Get(x, y int) int {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return Unreachable
	}
	return d.values[y*d.width+x]
}

// BestNeighbor returns the walkable neighbor of pos with the lowest scalar
// value, provided it is strictly lower than pos's own value. Used by AI to
// move toward a source.
func (d *DijkstraMap) BestNeighbor(pos tile.Position, m Walkable) (tile.Position, bool) {
	bestVal := d.Get(pos.X, pos.Y)
	var bestPos tile.Position
	found := false

	for _, delta := range neighbors8 {
		nx, ny := pos.X+delta[0], pos.Y+delta[1]
		if !m.InBounds(nx, ny) || !m.IsWalkable(nx, ny) {
			continue
		}
		val := d.Get(nx, ny)
		if val < bestVal {
			bestVal = val
			bestPos = tile.Position{X: nx, Y: ny}
			found = true
		}
	}
	return bestPos, found
}

// FleeNeighbor returns the walkable neighbor of pos with the highest
// reachable scalar value, provided it is strictly higher than pos's own
// value. Used by AI to move away from a source.
func (d *DijkstraMap) FleeNeighbor(pos tile.Position, m Walkable) (tile.Position, bool) {
	bestVal := d.Get(pos.X, pos.Y)
	var bestPos tile.Position
	found := false

	for _, delta := range neighbors8 {
		nx, ny := pos.X+delta[0], pos.Y+delta[1]
		if !m.InBounds(nx, ny) || !m.IsWalkable(nx, ny) {
			continue
		}
		val := d.Get(nx, ny)
		if val > bestVal && val != Unreachable {
			bestVal = val
			bestPos = tile.Position{X: nx, Y: ny}
			found = true
		}
	}
	return bestPos, found
}
