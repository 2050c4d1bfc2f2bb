package rng

import "math/rand"

// splitMix64 implements rand.Source64 with the fixed SplitMix64 algorithm.
// It is deliberately simple: one piece of state, one increment, one mixer.
type splitMix64 struct {
	state uint64
}

const splitMix64Increment = 0x9E3779B97F4A7C15

func (s *splitMix64) next() uint64 {
	s.state += splitMix64Increment
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Int63 implements rand.Source.
func (s *splitMix64) Int63() int64 {
	return int64(s.next() >> 1)
}

// Seed implements rand.Source.
func (s *splitMix64) Seed(seed int64) {
	s.state = uint64(seed)
}

// Uint64 implements rand.Source64.
func (s *splitMix64) Uint64() uint64 {
	return s.next()
}

// RNG is the engine's single source of randomness. All random decisions in
// the engine — map generation, combat variance, AI tie-breaks, loot rolls —
// must draw from an RNG, never from time or an unseeded global.
type RNG struct {
	seed   uint64
	source *splitMix64
	r      *rand.Rand
}

// New creates an RNG seeded with seed.
func New(seed uint64) *RNG {
	src := &splitMix64{state: seed}
	return &RNG{
		seed:   seed,
		source: src,
		r:      rand.New(src),
	}
}

// DeriveFloorSeed computes the per-floor seed used for map generation:
// seed + floor*0x9E3779B97F4A7C15, wrapping on overflow.
func DeriveFloorSeed(seed uint64, floor uint32) uint64 {
	return seed + uint64(floor)*splitMix64Increment
}

// Seed returns the seed this RNG was constructed with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Rand exposes the underlying *rand.Rand for callers (pkg/combat,
// pkg/ai) that accept the stdlib interface directly rather than this
// package's thin wrapper. The source behind it is still the fixed
// SplitMix64 generator, so determinism is unaffected.
func (r *RNG) Rand() *rand.Rand {
	return r.r
}

// Uint64 returns a pseudo-random 64-bit unsigned integer.
func (r *RNG) Uint64() uint64 {
	return r.source.next()
}

// Intn returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn argument must be positive")
	}
	return r.r.Intn(n)
}

// Float64 returns a pseudo-random float64 in [0.0, 1.0).
func (r *RNG) Float64() float64 {
	return r.r.Float64()
}

// Shuffle pseudo-randomizes the order of elements via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}

// IntRange returns a pseudo-random integer in [min, max]. Panics if min > max.
func (r *RNG) IntRange(min, max int) int {
	if min > max {
		panic("rng: IntRange min must be <= max")
	}
	if min == max {
		return min
	}
	return min + r.r.Intn(max-min+1)
}

// Float64Range returns a pseudo-random float64 in [min, max). Panics if min >= max.
func (r *RNG) Float64Range(min, max float64) float64 {
	if min >= max {
		panic("rng: Float64Range min must be < max")
	}
	return min + r.r.Float64()*(max-min)
}

// Bool returns a pseudo-random boolean value.
func (r *RNG) Bool() bool {
	return r.r.Intn(2) == 1
}

// WeightedChoice selects an index from weights using weighted random
// selection. Weights must be non-negative. Returns -1 if weights is empty
// or all weights are zero.
func (r *RNG) WeightedChoice(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice weights must be non-negative")
		}
		total += w
	}
	if total == 0 {
		return -1
	}

	roll := r.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}
