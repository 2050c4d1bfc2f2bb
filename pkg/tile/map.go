package tile

import "fmt"

// Map is a fixed-size 2D tile grid with parallel revealed/blocked caches and
// the list of rooms carved into it.
//
// Invariant: Blocked[i] == !Tiles[i].Walkable() after every RefreshBlocked
// call. Callers must call RefreshBlocked after any mutation that changes a
// tile's walkability (e.g. opening a door).
type Map struct {
	Width, Height int
	Tiles         []Kind
	Revealed      []bool
	Blocked       []bool
	Rooms         []Room
}

// NewMap allocates a width x height map, all tiles Wall, nothing revealed.
func NewMap(width, height int) *Map {
	size := width * height
	m := &Map{
		Width:    width,
		Height:   height,
		Tiles:    make([]Kind, size),
		Revealed: make([]bool, size),
		Blocked:  make([]bool, size),
	}
	for i := range m.Tiles {
		m.Tiles[i] = Wall
	}
	m.RefreshBlocked()
	return m
}

// InBounds reports whether (x, y) lies within the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Idx converts (x, y) to a flat index. Callers must check InBounds first.
func (m *Map) Idx(x, y int) int {
	return y*m.Width + x
}

// At returns the tile kind at (x, y), or Wall if out of bounds.
func (m *Map) At(x, y int) Kind {
	if !m.InBounds(x, y) {
		return Wall
	}
	return m.Tiles[m.Idx(x, y)]
}

// AtPos is the Position-typed form of At.
func (m *Map) AtPos(p Position) Kind {
	return m.At(p.X, p.Y)
}

// SetTile sets the tile kind at (x, y). It does not refresh the blocked
// cache; call RefreshBlocked after a batch of mutations.
func (m *Map) SetTile(x, y int, k Kind) {
	if !m.InBounds(x, y) {
		return
	}
	m.Tiles[m.Idx(x, y)] = k
}

// RefreshBlocked recomputes Blocked from Tiles. Must be called after any
// tile mutation that changes walkability, and once after generation.
func (m *Map) RefreshBlocked() {
	for i, k := range m.Tiles {
		m.Blocked[i] = !k.Walkable()
	}
}

// IsWalkable reports whether (x, y) is in bounds and walkable, per the
// Blocked cache (not recomputed here — call RefreshBlocked first).
func (m *Map) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return !m.Blocked[m.Idx(x, y)]
}

// IsOpaque reports whether (x, y) blocks field of view. Out-of-bounds
// counts as opaque so shadowcasting naturally stops at the map edge.
func (m *Map) IsOpaque(x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.Tiles[m.Idx(x, y)].Opaque()
}

// Reveal marks (x, y) as having been seen at least once.
func (m *Map) Reveal(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	m.Revealed[m.Idx(x, y)] = true
}

// IsRevealed reports whether (x, y) has ever been seen.
func (m *Map) IsRevealed(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Revealed[m.Idx(x, y)]
}

// FillRect sets every tile in the w x h rectangle at (x, y) to k, clipping
// to map bounds.
func (m *Map) FillRect(x, y, w, h int, k Kind) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			m.SetTile(x+dx, y+dy, k)
		}
	}
}

// CountNeighbors8 counts how many of the 8 neighbors of (x, y) equal target,
// counting out-of-bounds neighbors only when countOOBAsTarget is set and
// target is Wall, so the map edge counts as wall for cellular-automata
// smoothing.
func (m *Map) CountNeighbors8(x, y int, target Kind, countOOBAsTarget bool) int {
	count := 0
	deltas := [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
	for _, d := range deltas {
		nx, ny := x+d[0], y+d[1]
		if !m.InBounds(nx, ny) {
			if countOOBAsTarget && target == Wall {
				count++
			}
			continue
		}
		if m.Tiles[m.Idx(nx, ny)] == target {
			count++
		}
	}
	return count
}

// FloodFillCount performs a 4-connected flood fill from (x, y) over tiles
// matching match, marking visited in-place, and returns the region's tiles
// in discovery order (used by the
// cellular generator to find the largest connected floor region and by the
// connectivity invariant test in pkg/mapgen).
func (m *Map) FloodFillCount(start Position, match func(Kind) bool, visited []bool) []Position {
	if !m.InBounds(start.X, start.Y) || !match(m.Tiles[m.Idx(start.X, start.Y)]) {
		return nil
	}
	queue := []Position{start}
	visited[m.Idx(start.X, start.Y)] = true
	region := make([]Position, 0, 64)

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		region = append(region, p)

		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !m.InBounds(nx, ny) {
				continue
			}
			idx := m.Idx(nx, ny)
			if visited[idx] {
				continue
			}
			if !match(m.Tiles[idx]) {
				continue
			}
			visited[idx] = true
			queue = append(queue, Position{X: nx, Y: ny})
		}
	}
	return region
}

// StartRoom returns the map's single Start room. Every generated map has
// exactly one; a missing one means the generator is broken, so this panics.
func (m *Map) StartRoom() Room {
	for _, r := range m.Rooms {
		if r.RoomType == Start {
			return r
		}
	}
	panic("tile: map has no Start room")
}

// RoomsOfType returns every room with the given type, in generation order.
func (m *Map) RoomsOfType(t RoomType) []Room {
	var out []Room
	for _, r := range m.Rooms {
		if r.RoomType == t {
			out = append(out, r)
		}
	}
	return out
}

// String renders a compact textual dump of the map for debugging, one
// character per tile kind.
func (m *Map) String() string {
	glyphs := map[Kind]byte{
		Wall: '#', Floor: '.', DownStairs: '>', UpStairs: '<',
		DoorClosed: '+', DoorOpen: '/',
	}
	buf := make([]byte, 0, (m.Width+1)*m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			g, ok := glyphs[m.At(x, y)]
			if !ok {
				g = '?'
			}
			buf = append(buf, g)
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// ErrNoFloorNear is returned when a spiral search cannot find any floor
// tile within the map bounds.
type ErrNoFloorNear struct {
	Near Position
}

func (e ErrNoFloorNear) Error() string {
	return fmt.Sprintf("tile: no floor tile found near %v", e.Near)
}

// NearestWalkable performs a spiral BFS outward from start, returning the
// closest walkable tile. Used by stair placement when a
// room's computed center lands on a non-floor tile, e.g. after cellular
// generation. Returns ErrNoFloorNear if the whole map is unwalkable.
func (m *Map) NearestWalkable(start Position) (Position, error) {
	if m.InBounds(start.X, start.Y) && m.Tiles[m.Idx(start.X, start.Y)].Walkable() {
		return start, nil
	}

	visited := make(map[Position]bool)
	queue := []Position{start}
	visited[start] = true
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			n := Position{X: p.X + d[0], Y: p.Y + d[1]}
			if visited[n] || !m.InBounds(n.X, n.Y) {
				continue
			}
			visited[n] = true
			if m.Tiles[m.Idx(n.X, n.Y)].Walkable() {
				return n, nil
			}
			queue = append(queue, n)
		}
	}
	return Position{}, ErrNoFloorNear{Near: start}
}
