// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "math/rand"

// Winners returns every index holding the maximum count, ascending.
func Winners(counts []int) ([]int, error) {
	all := make([]int, len(counts))
	for i := range counts {
		all[i] = i
	}
	return WinnersAmong(counts, all)
}

// WinnersAmong is Winners restricted to the given indices.
func WinnersAmong(counts []int, indices []int) ([]int, error) {
	var ties []int
	best := 0
	for _, i := range indices {
		if i < 0 || i >= len(counts) {
			continue
		}
		switch score := counts[i]; {
		case len(ties) == 0 || score > best:
			best = score
			ties = append(ties[:0], i)
		case score == best:
			ties = append(ties, i)
		}
	}
	if len(ties) == 0 {
		return nil, ErrEmptyTally
	}
	return ties, nil
}

// Decision is the outcome of applying the avoid policy to a set of winners.
type Decision struct {
	Winners []int
	// Defer is set when the avoided index is the only winner. The caller
	// should not apply it right away.
	Defer bool
}

// Policy removes avoid from a tied winner set. When avoid is the sole
// winner the decision is deferred instead. A negative avoid disables the
// policy.
func Policy(winners []int, avoid int) Decision {
	if avoid < 0 || !contains(winners, avoid) {
		return Decision{Winners: winners}
	}
	if len(winners) == 1 {
		return Decision{Winners: winners, Defer: true}
	}
	rest := make([]int, 0, len(winners)-1)
	for _, w := range winners {
		if w != avoid {
			rest = append(rest, w)
		}
	}
	return Decision{Winners: rest}
}

// Pick chooses one winner uniformly at random.
func Pick(rng *rand.Rand, winners []int) (int, error) {
	if len(winners) == 0 {
		return 0, ErrEmptyTally
	}
	return winners[rng.Intn(len(winners))], nil
}

func contains(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
