// Package mapgen produces fully connected, solvable floor maps from a seed
// and floor number using BSP, cellular-automata, or arena layouts.
package mapgen

import (
	"github.com/tholloway/roguecore/pkg/rng"
	"github.com/tholloway/roguecore/pkg/tile"
)

// Width and Height are the fixed dimensions of every generated floor.
const (
	Width  = 80
	Height = 50
)

// Algorithm names the generator used for a floor.
type Algorithm int

const (
	AlgorithmBSP Algorithm = iota
	AlgorithmCellular
	AlgorithmArena
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmBSP:
		return "BSP"
	case AlgorithmCellular:
		return "Cellular"
	case AlgorithmArena:
		return "Arena"
	default:
		return "Unknown"
	}
}

// SelectAlgorithm picks the generator for floor per the fixed per-floor
// weighting table. Floors 4-6 roll a single coin flip against r to decide
// between BSP and cellular; floor >= 11 cycles deterministically.
func SelectAlgorithm(floor uint32, r *rng.RNG) Algorithm {
	switch {
	case floor >= 1 && floor <= 3:
		return AlgorithmBSP
	case floor == 4:
		if r.Float64() < 0.60 {
			return AlgorithmBSP
		}
		return AlgorithmCellular
	case floor == 5:
		if r.Float64() < 0.40 {
			return AlgorithmBSP
		}
		return AlgorithmCellular
	case floor == 6:
		if r.Float64() < 0.20 {
			return AlgorithmBSP
		}
		return AlgorithmCellular
	case floor >= 7 && floor <= 9:
		return AlgorithmCellular
	case floor == 10:
		return AlgorithmArena
	default: // floor >= 11
		switch (floor - 11) % 3 {
		case 0:
			return AlgorithmBSP
		case 1:
			return AlgorithmCellular
		default:
			return AlgorithmArena
		}
	}
}

// IsBossFloor reports whether floor carries a boss room:
// floors 3, 6, 10, and every 5 thereafter.
func IsBossFloor(floor uint32) bool {
	if floor == 3 || floor == 6 || floor == 10 {
		return true
	}
	return floor > 10 && (floor-10)%5 == 0
}

// Generate derives the floor seed, selects an algorithm, carves the map,
// types the rooms, and places stairs. Deterministic: identical (seed,
// floor) always yields identical output.
func Generate(seed uint64, floor uint32) *tile.Map {
	floorSeed := rng.DeriveFloorSeed(seed, floor)
	r := rng.New(floorSeed)

	var m *tile.Map
	switch SelectAlgorithm(floor, r) {
	case AlgorithmBSP:
		m = generateBSP(r)
	case AlgorithmCellular:
		m = generateCellular(r)
	default:
		m = generateArena()
	}

	typeRooms(m, r, floor)
	placeStairs(m, floor)
	m.RefreshBlocked()
	return m
}
