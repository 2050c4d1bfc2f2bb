package pathfind

import (
	"container/heap"

	"github.com/tholloway/roguecore/pkg/tile"
)

type astarNode struct {
	pos            tile.Position
	cost           int
	estimatedTotal int
	index          int
}

// astarHeap is a binary min-heap on estimatedTotal, implementing
// container/heap.Interface rather than a hand-rolled priority queue.
type astarHeap []*astarNode

func (h astarHeap) Len() int { return len(h) }
func (h astarHeap) Less(i, j int) bool {
	return h[i].estimatedTotal < h[j].estimatedTotal
}
func (h astarHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *astarHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *astarHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return node
}

func chebyshev(a, b tile.Position) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// AStar finds a shortest 8-directional path from start to goal over m using
// the Chebyshev distance heuristic, returning the path excluding start but
// including goal. Returns nil, false if no path exists. The open set is a
// container/heap min-heap, Go's idiomatic priority-queue
// primitive.
func AStar(m Walkable, width, height int, start, goal tile.Position) ([]tile.Position, bool) {
	size := width * height
	costs := make([]int, size)
	cameFrom := make([]int, size)
	for i := range costs {
		costs[i] = Unreachable
		cameFrom[i] = -1
	}

	idx := func(p tile.Position) int { return p.Y*width + p.X }

	startIdx := idx(start)
	costs[startIdx] = 0

	h := &astarHeap{}
	heap.Init(h)
	heap.Push(h, &astarNode{pos: start, cost: 0, estimatedTotal: chebyshev(start, goal)})

	for h.Len() > 0 {
		node := heap.Pop(h).(*astarNode)

		if node.pos == goal {
			path := make([]tile.Position, 0, node.cost)
			current := goal
			for current != start {
				path = append(path, current)
				prev := cameFrom[idx(current)]
				if prev < 0 {
					return nil, false
				}
				current = tile.Position{X: prev % width, Y: prev / width}
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, true
		}

		if node.cost > costs[idx(node.pos)] {
			continue
		}

		for _, d := range neighbors8 {
			nx, ny := node.pos.X+d[0], node.pos.Y+d[1]
			if !m.InBounds(nx, ny) || !m.IsWalkable(nx, ny) {
				continue
			}
			npos := tile.Position{X: nx, Y: ny}
			nidx := idx(npos)

			newCost := node.cost + 1
			if newCost < costs[nidx] {
				costs[nidx] = newCost
				cameFrom[nidx] = idx(node.pos)
				heap.Push(h, &astarNode{
					pos:            npos,
					cost:           newCost,
					estimatedTotal: newCost + chebyshev(npos, goal),
				})
			}
		}
	}
	return nil, false
}
