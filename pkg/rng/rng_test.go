package rng

import "testing"

func TestNew_Determinism(t *testing.T) {
	r1 := New(123456789)
	r2 := New(123456789)

	if r1.Seed() != r2.Seed() {
		t.Fatalf("same seed produced different Seed(): %d vs %d", r1.Seed(), r2.Seed())
	}

	for i := 0; i < 200; i++ {
		v1, v2 := r1.Uint64(), r2.Uint64()
		if v1 != v2 {
			t.Fatalf("iteration %d: same-seed RNGs diverged: %d vs %d", i, v1, v2)
		}
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	r1 := New(1)
	r2 := New(2)

	same := true
	for i := 0; i < 16; i++ {
		if r1.Uint64() != r2.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestDeriveFloorSeed_Deterministic(t *testing.T) {
	a := DeriveFloorSeed(42, 3)
	b := DeriveFloorSeed(42, 3)
	if a != b {
		t.Fatalf("DeriveFloorSeed not deterministic: %d vs %d", a, b)
	}
	if DeriveFloorSeed(42, 3) == DeriveFloorSeed(42, 4) {
		t.Fatal("different floors produced the same derived seed")
	}
}

func TestIntRange_Bounds(t *testing.T) {
	r := New(7)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(3, 8)
		if v < 3 || v > 8 {
			t.Fatalf("IntRange(3,8) out of bounds: %d", v)
		}
	}
	if got := r.IntRange(5, 5); got != 5 {
		t.Fatalf("IntRange(5,5) = %d, want 5", got)
	}
}

func TestIntRange_PanicsOnInverted(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for min > max")
		}
	}()
	New(1).IntRange(8, 3)
}

func TestFloat64Range_Bounds(t *testing.T) {
	r := New(99)
	for i := 0; i < 1000; i++ {
		v := r.Float64Range(0.3, 0.8)
		if v < 0.3 || v >= 0.8 {
			t.Fatalf("Float64Range(0.3,0.8) out of bounds: %f", v)
		}
	}
}

func TestWeightedChoice(t *testing.T) {
	r := New(5)
	weights := []float64{1, 0, 0, 0}
	for i := 0; i < 50; i++ {
		if got := r.WeightedChoice(weights); got != 0 {
			t.Fatalf("WeightedChoice with single nonzero weight = %d, want 0", got)
		}
	}

	if got := r.WeightedChoice(nil); got != -1 {
		t.Fatalf("WeightedChoice(nil) = %d, want -1", got)
	}
	if got := r.WeightedChoice([]float64{0, 0, 0}); got != -1 {
		t.Fatalf("WeightedChoice(all zero) = %d, want -1", got)
	}
}

func TestShuffle_Permutation(t *testing.T) {
	r := New(123)
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]int(nil), items...)

	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })

	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	for _, v := range original {
		if !seen[v] {
			t.Fatalf("shuffle lost element %d", v)
		}
	}
}

func TestBool_BothOutcomesReachable(t *testing.T) {
	r := New(321)
	sawTrue, sawFalse := false, false
	for i := 0; i < 500 && !(sawTrue && sawFalse); i++ {
		if r.Bool() {
			sawTrue = true
		} else {
			sawFalse = true
		}
	}
	if !sawTrue || !sawFalse {
		t.Fatal("Bool() did not produce both outcomes over 500 draws")
	}
}
