package mapgen

import "github.com/tholloway/roguecore/pkg/tile"

// generateArena carves the fixed handcrafted floor-10 (and cyclical
// floor>=11) layout: one central 40x30 rectangle, four corner 10x8 rooms,
// and corridors linking each corner to the arena.
func generateArena() *tile.Map {
	m := tile.NewMap(Width, Height)

	central := tile.Room{X: 20, Y: 10, Width: 40, Height: 30}
	carveRoom(m, central)

	corners := []tile.Room{
		{X: 2, Y: 2, Width: 10, Height: 8},
		{X: Width - 12, Y: 2, Width: 10, Height: 8},
		{X: 2, Y: Height - 10, Width: 10, Height: 8},
		{X: Width - 12, Y: Height - 10, Width: 10, Height: 8},
	}
	for _, c := range corners {
		carveRoom(m, c)
	}

	// Two pairs of horizontal corridors: top corners to the arena's top
	// edge, bottom corners to its bottom edge.
	topY := central.Y + 2
	bottomY := central.Y + central.Height - 3
	carveHorizontal(m, corners[0].X+corners[0].Width/2, central.X, topY)
	carveVertical(m, corners[0].Y+corners[0].Height/2, topY, corners[0].X+corners[0].Width/2)
	carveHorizontal(m, central.X+central.Width-1, corners[1].X+corners[1].Width/2, topY)
	carveVertical(m, corners[1].Y+corners[1].Height/2, topY, corners[1].X+corners[1].Width/2)

	carveHorizontal(m, corners[2].X+corners[2].Width/2, central.X, bottomY)
	carveVertical(m, corners[2].Y+corners[2].Height/2, bottomY, corners[2].X+corners[2].Width/2)
	carveHorizontal(m, central.X+central.Width-1, corners[3].X+corners[3].Width/2, bottomY)
	carveVertical(m, corners[3].Y+corners[3].Height/2, bottomY, corners[3].X+corners[3].Width/2)

	rooms := append([]tile.Room{central}, corners...)
	m.Rooms = rooms
	return m
}
