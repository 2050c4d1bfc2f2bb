package mapgen

import (
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

const (
	wallChance         = 0.45
	smoothingIterations = 5
	minRegionSize       = 20
)

// generateCellular carves a cave-like floor via cellular automata: random
// fill, repeated smoothing, keep only the largest connected region, then
// bound-BFS the survivors into room-shaped clusters.
func generateCellular(r *rng.RNG) *tile.Map {
	m := tile.NewMap(Width, Height)

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if x == 0 || y == 0 || x == Width-1 || y == Height-1 {
				m.SetTile(x, y, tile.Wall)
			} else if r.Float64() < wallChance {
				m.SetTile(x, y, tile.Wall)
			} else {
				m.SetTile(x, y, tile.Floor)
			}
		}
	}

	for i := 0; i < smoothingIterations; i++ {
		smoothPass(m)
	}

	keepLargestRegion(m)

	rooms := identifyCaveRooms(m)
	if len(rooms) < 3 {
		rooms = createGridRooms(m)
	}
	m.Rooms = rooms
	return m
}

func smoothPass(m *tile.Map) {
	old := make([]tile.Kind, len(m.Tiles))
	copy(old, m.Tiles)

	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			wallCount := countWallNeighbors(old, x, y)
			idx := m.Idx(x, y)
			switch {
			case wallCount >= 5:
				m.Tiles[idx] = tile.Wall
			case wallCount <= 3:
				m.Tiles[idx] = tile.Floor
			}
		}
	}
}

func countWallNeighbors(tiles []tile.Kind, x, y int) int {
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if nx < 0 || ny < 0 || nx >= Width || ny >= Height {
				count++
				continue
			}
			if tiles[ny*Width+nx] == tile.Wall {
				count++
			}
		}
	}
	return count
}

func keepLargestRegion(m *tile.Map) {
	visited := make([]bool, Width*Height)
	var largest []tile.Position

	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			idx := m.Idx(x, y)
			if visited[idx] || m.Tiles[idx] != tile.Floor {
				continue
			}
			region := m.FloodFillCount(tile.Position{X: x, Y: y}, func(k tile.Kind) bool { return k == tile.Floor }, visited)
			if len(region) > len(largest) {
				largest = region
			}
		}
	}

	keep := make(map[tile.Position]bool, len(largest))
	for _, p := range largest {
		keep[p] = true
	}
	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			if m.At(x, y) == tile.Floor && !keep[tile.Position{X: x, Y: y}] {
				m.SetTile(x, y, tile.Wall)
			}
		}
	}
}

func identifyCaveRooms(m *tile.Map) []tile.Room {
	visited := make([]bool, Width*Height)
	var rooms []tile.Room

	for y := 1; y < Height-1; y++ {
		for x := 1; x < Width-1; x++ {
			idx := m.Idx(x, y)
			if visited[idx] || m.Tiles[idx] != tile.Floor {
				continue
			}
			region := m.FloodFillCount(tile.Position{X: x, Y: y}, func(k tile.Kind) bool { return k == tile.Floor }, visited)
			if len(region) < minRegionSize {
				continue
			}
			minX, maxX := region[0].X, region[0].X
			minY, maxY := region[0].Y, region[0].Y
			for _, p := range region {
				minX, maxX = min(minX, p.X), max(maxX, p.X)
				minY, maxY = min(minY, p.Y), max(maxY, p.Y)
			}
			rooms = append(rooms, tile.Room{
				X: minX, Y: minY,
				Width:  maxX - minX + 1,
				Height: maxY - minY + 1,
			})
		}
	}
	return rooms
}

// createGridRooms is the cellular generator's fallback when smoothing
// leaves too few distinct regions: divide the floor into a 3x3 grid and
// snap each section's center to its nearest floor tile.
func createGridRooms(m *tile.Map) []tile.Room {
	var rooms []tile.Room
	sectionW := Width / 3
	sectionH := Height / 3

	for gy := 0; gy < 3; gy++ {
		for gx := 0; gx < 3; gx++ {
			cx := gx*sectionW + sectionW/2
			cy := gy*sectionH + sectionH/2
			if p, err := m.NearestWalkable(tile.Position{X: cx, Y: cy}); err == nil {
				rooms = append(rooms, tile.Room{X: p.X - 2, Y: p.Y - 2, Width: 5, Height: 5})
			}
		}
	}
	return rooms
}
