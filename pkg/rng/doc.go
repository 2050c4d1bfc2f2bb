// Package rng provides the single deterministic PRNG source the engine
// draws all randomness from.
//
// # Overview
//
// The engine's determinism contract needs a fixed, documented, stable
// 64-bit PRNG algorithm so that a given seed and action sequence produce
// bitwise-identical results across platforms and implementations. This
// package fixes that algorithm to SplitMix64 (Vigna, 2015): a single
// 64-bit state advanced by a golden-ratio increment and mixed through a
// fixed bit-avalanche function. SplitMix64 has no warm-up requirement,
// passes standard statistical test suites for game-simulation purposes,
// and is small enough to reimplement identically in any host language.
//
// # Seeding
//
// World carries exactly one RNG, seeded from World.Seed. Per-floor map
// generation additionally derives a floor-local seed with
//
//	floor_seed = seed + floor*0x9E3779B97F4A7C15   (wrapping uint64 add)
//
// and seeds a fresh RNG from it (see pkg/mapgen), isolating map layout
// randomness from gameplay randomness without requiring two live streams.
//
// # Thread Safety
//
// RNG is not safe for concurrent use. The engine is single-threaded by
// contract; do not share an *RNG across goroutines.
package rng
