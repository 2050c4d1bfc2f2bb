// Package tile implements the Grid & Tile Model: positions, tile kinds,
// rooms, and the Map that ties them together.
package tile

import "fmt"

// Position is an integer grid coordinate.
type Position struct {
	X, Y int
}

// Add returns p shifted by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// ChebyshevDistance returns max(|dx|, |dy|) to other — the primary metric
// for all 8-connected grid reasoning.
func (p Position) ChebyshevDistance(other Position) int {
	dx := abs(p.X - other.X)
	dy := abs(p.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// EuclideanDistanceSq returns the squared Euclidean distance to other, used
// only for start/stairs-room selection where a true distance
// ordering matters and the square root can be skipped.
func (p Position) EuclideanDistanceSq(other Position) int {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return dx*dx + dy*dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Neighbors8 returns the 8 Chebyshev-adjacent positions around p, in a
// fixed order (N, S, E, W, NE, NW, SE, SW) so callers that need
// deterministic tie-breaking never depend on map iteration order.
func (p Position) Neighbors8() [8]Position {
	return [8]Position{
		{p.X, p.Y - 1}, {p.X, p.Y + 1}, {p.X + 1, p.Y}, {p.X - 1, p.Y},
		{p.X + 1, p.Y - 1}, {p.X - 1, p.Y - 1}, {p.X + 1, p.Y + 1}, {p.X - 1, p.Y + 1},
	}
}

// Kind enumerates the tile kinds.
type Kind uint8

const (
	Wall Kind = iota
	Floor
	DownStairs
	UpStairs
	DoorClosed
	DoorOpen
)

// String renders the tile kind name.
func (k Kind) String() string {
	switch k {
	case Wall:
		return "Wall"
	case Floor:
		return "Floor"
	case DownStairs:
		return "DownStairs"
	case UpStairs:
		return "UpStairs"
	case DoorClosed:
		return "DoorClosed"
	case DoorOpen:
		return "DoorOpen"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(k))
	}
}

// Walkable reports whether an entity can stand on this tile kind.
func (k Kind) Walkable() bool {
	switch k {
	case Floor, DownStairs, UpStairs, DoorOpen:
		return true
	default:
		return false
	}
}

// Opaque reports whether this tile kind blocks field of view.
func (k Kind) Opaque() bool {
	switch k {
	case Wall, DoorClosed:
		return true
	default:
		return false
	}
}

// RoomType is the semantic label on a Room that drives content placement.
type RoomType uint8

const (
	Normal RoomType = iota
	Start
	Treasure
	Boss
	Shrine
	Library
	Armory
	Shop
)

// String renders the room type name.
func (t RoomType) String() string {
	switch t {
	case Normal:
		return "Normal"
	case Start:
		return "Start"
	case Treasure:
		return "Treasure"
	case Boss:
		return "Boss"
	case Shrine:
		return "Shrine"
	case Library:
		return "Library"
	case Armory:
		return "Armory"
	case Shop:
		return "Shop"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Room is a rectangular region of the map with a semantic type.
type Room struct {
	X, Y, Width, Height int
	RoomType            RoomType
}

// Center returns the room's integer center point.
func (r Room) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies within the room rectangle.
func (r Room) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}
