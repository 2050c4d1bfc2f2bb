package mapgen

import (
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

const (
	minNodeW = 12
	minNodeH = 10
	minRoomW = 4
	minRoomH = 4
	maxRoomW = 12
	maxRoomH = 10
	bspMaxDepth = 4
)

// bspNode is a binary-space-partition tree node. Nil children mean the
// node is a leaf.
type bspNode struct {
	x, y, w, h int
	left, right *bspNode
	room *tile.Room
}

func (n *bspNode) split(r *rng.RNG, depth, maxDepth int) {
	if depth >= maxDepth {
		return
	}

	canSplitH := n.w >= minNodeW*2
	canSplitV := n.h >= minNodeH*2
	if !canSplitH && !canSplitV {
		return
	}

	var splitHorizontal bool
	switch {
	case canSplitH && canSplitV:
		ratio := float64(n.w) / float64(n.h)
		switch {
		case ratio > 1.25:
			splitHorizontal = true
		case 1/ratio > 1.25:
			splitHorizontal = false
		default:
			splitHorizontal = r.Bool()
		}
	default:
		splitHorizontal = canSplitH
	}

	if splitHorizontal {
		split := r.IntRange(minNodeW, n.w-minNodeW)
		left := &bspNode{x: n.x, y: n.y, w: split, h: n.h}
		right := &bspNode{x: n.x + split, y: n.y, w: n.w - split, h: n.h}
		left.split(r, depth+1, maxDepth)
		right.split(r, depth+1, maxDepth)
		n.left, n.right = left, right
	} else {
		split := r.IntRange(minNodeH, n.h-minNodeH)
		left := &bspNode{x: n.x, y: n.y, w: n.w, h: split}
		right := &bspNode{x: n.x, y: n.y + split, w: n.w, h: n.h - split}
		left.split(r, depth+1, maxDepth)
		right.split(r, depth+1, maxDepth)
		n.left, n.right = left, right
	}
}

func (n *bspNode) createRooms(r *rng.RNG) {
	if n.left != nil && n.right != nil {
		n.left.createRooms(r)
		n.right.createRooms(r)
		return
	}

	roomW := r.IntRange(minRoomW, min(maxRoomW, n.w-2))
	roomH := r.IntRange(minRoomH, min(maxRoomH, n.h-2))
	roomX := n.x + r.IntRange(1, max(1, n.w-roomW-1))
	roomY := n.y + r.IntRange(1, max(1, n.h-roomH-1))
	room := tile.Room{X: roomX, Y: roomY, Width: roomW, Height: roomH}
	n.room = &room
}

func (n *bspNode) getRoom() *tile.Room {
	if n.room != nil {
		return n.room
	}
	if n.left != nil {
		if rm := n.left.getRoom(); rm != nil {
			return rm
		}
	}
	if n.right != nil {
		if rm := n.right.getRoom(); rm != nil {
			return rm
		}
	}
	return nil
}

func (n *bspNode) collectRooms(rooms *[]tile.Room) {
	if n.room != nil {
		*rooms = append(*rooms, *n.room)
	}
	if n.left != nil {
		n.left.collectRooms(rooms)
	}
	if n.right != nil {
		n.right.collectRooms(rooms)
	}
}

func (n *bspNode) createCorridors(m *tile.Map, r *rng.RNG) {
	if n.left == nil || n.right == nil {
		return
	}
	n.left.createCorridors(m, r)
	n.right.createCorridors(m, r)

	leftRoom := n.left.getRoom()
	rightRoom := n.right.getRoom()
	if leftRoom != nil && rightRoom != nil {
		carveLCorridor(m, leftRoom.Center(), rightRoom.Center(), r)
	}
}

// generateBSP carves a binary-space-partition dungeon: split the floor into
// leaves >= 12x10, drop one 4-12 x 4-10 room per leaf, and connect sibling
// subtrees with L-shaped corridors.
func generateBSP(r *rng.RNG) *tile.Map {
	m := tile.NewMap(Width, Height)
	root := &bspNode{x: 0, y: 0, w: Width, h: Height}

	root.split(r, 0, bspMaxDepth)
	root.createRooms(r)

	var rooms []tile.Room
	root.collectRooms(&rooms)

	for _, rm := range rooms {
		carveRoom(m, rm)
	}

	root.createCorridors(m, r)
	m.Rooms = rooms
	return m
}

func carveRoom(m *tile.Map, rm tile.Room) {
	for y := rm.Y + 1; y < rm.Y+rm.Height-1; y++ {
		for x := rm.X + 1; x < rm.X+rm.Width-1; x++ {
			m.SetTile(x, y, tile.Floor)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
