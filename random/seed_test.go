// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package random

import "testing"

func TestNewIsDeterministicForFixedSeed(t *testing.T) {
	a, seedA, err := New(42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	b, seedB, err := New(42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if seedA != 42 || seedB != 42 {
		t.Fatalf("expected seed 42, got %d and %d", seedA, seedB)
	}
	for i := 0; i < 10; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d != %d", i, x, y)
		}
	}
}

func TestNewGeneratesSeedWhenZero(t *testing.T) {
	r, seed, err := New(0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if r == nil {
		t.Fatal("expected generator")
	}
	if seed == 0 {
		t.Error("expected a non-zero generated seed (extremely unlikely to be zero)")
	}
}
