package mapgen

import (
	"sort"

	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

// typeRooms assigns RoomType to every room: the room
// nearest the map center becomes Start; on boss floors the second-furthest
// room (by descending distance from Start) becomes Boss; remaining rooms
// roll for Treasure/Shrine/Library/Armory/Shop/Normal.
func typeRooms(m *tile.Map, r *rng.RNG, floor uint32) {
	if len(m.Rooms) == 0 {
		return
	}

	mapCenter := tile.Position{X: Width / 2, Y: Height / 2}
	startIdx := 0
	bestDist := m.Rooms[0].Center().EuclideanDistanceSq(mapCenter)
	for i, rm := range m.Rooms {
		d := rm.Center().EuclideanDistanceSq(mapCenter)
		if d < bestDist {
			bestDist = d
			startIdx = i
		}
	}
	m.Rooms[startIdx].RoomType = tile.Start
	startCenter := m.Rooms[startIdx].Center()

	rest := make([]int, 0, len(m.Rooms)-1)
	for i := range m.Rooms {
		if i != startIdx {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		da := m.Rooms[rest[a]].Center().EuclideanDistanceSq(startCenter)
		db := m.Rooms[rest[b]].Center().EuclideanDistanceSq(startCenter)
		return da > db
	})

	if len(rest) == 0 {
		return
	}

	bossFloor := IsBossFloor(floor)
	if bossFloor && len(rest) >= 2 {
		m.Rooms[rest[1]].RoomType = tile.Boss
		// furthest room keeps its Normal type; placeStairs finds it again
		// through StairsRoom rather than a RoomType tag, since Boss already
		// claimed rest[1] and the stairs room has no dedicated RoomType of
		// its own.
		rollRoomTypes(m, r, rest[2:])
	} else {
		rollRoomTypes(m, r, rest[1:])
	}
}

func rollRoomTypes(m *tile.Map, r *rng.RNG, indices []int) {
	for _, i := range indices {
		roll := r.Float64()
		switch {
		case roll < 0.20:
			m.Rooms[i].RoomType = tile.Treasure
		case roll < 0.33:
			m.Rooms[i].RoomType = tile.Shrine
		case roll < 0.43:
			m.Rooms[i].RoomType = tile.Library
		case roll < 0.53:
			m.Rooms[i].RoomType = tile.Armory
		case roll < 0.63:
			m.Rooms[i].RoomType = tile.Shop
		default:
			m.Rooms[i].RoomType = tile.Normal
		}
	}
}

// StairsRoom returns the room that holds DownStairs for this generated map:
// the room furthest (by Euclidean distance) from Start. It recomputes the
// same ordering typeRooms used so callers never need to thread an extra
// return value through Generate.
func StairsRoom(m *tile.Map) tile.Room {
	start := m.StartRoom()
	startCenter := start.Center()

	furthest := start
	bestDist := -1
	for _, rm := range m.Rooms {
		if rm.RoomType == tile.Start {
			continue
		}
		d := rm.Center().EuclideanDistanceSq(startCenter)
		if d > bestDist {
			bestDist = d
			furthest = rm
		}
	}
	return furthest
}

// placeStairs drops DownStairs at the stairs room's center (spiraling to
// the nearest floor tile if the center itself isn't walkable, as happens
// after cellular generation), and — on floors above 1 — an UpStairs snapped
// near the Start room center.
func placeStairs(m *tile.Map, floor uint32) {
	stairsRoom := StairsRoom(m)
	down, err := m.NearestWalkable(stairsRoom.Center())
	if err != nil {
		panic("mapgen: no walkable tile found for down stairs: " + err.Error())
	}
	m.SetTile(down.X, down.Y, tile.DownStairs)

	if floor > 1 {
		start := m.StartRoom()
		up, err := m.NearestWalkable(start.Center().Add(1, 0))
		if err != nil {
			up, err = m.NearestWalkable(start.Center())
		}
		if err == nil && up != down {
			m.SetTile(up.X, up.Y, tile.UpStairs)
		}
	}
}
