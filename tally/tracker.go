// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidChoice = errors.New("invalid choice")
	ErrEmptyTally    = errors.New("empty tally")
)

// Tracker records which choice each voter supports and keeps per-choice
// counts parallel to the vote list. It is not safe for concurrent use;
// the owning session serializes access.
type Tracker struct {
	valid  []bool
	counts []int
	voters map[string]int
}

// New creates a tracker for a list of len(valid) slots. Only slots marked
// valid accept votes.
func New(valid []bool) *Tracker {
	return &Tracker{
		valid:  append([]bool(nil), valid...),
		counts: make([]int, len(valid)),
		voters: make(map[string]int),
	}
}

// Register moves voter's single vote to index. It returns the previous
// choice, if any. Voting again for the same index leaves counts unchanged.
func (t *Tracker) Register(voter string, index int) (previous int, hadPrevious bool, err error) {
	if !t.Valid(index) {
		return 0, false, fmt.Errorf("%w: %d", ErrInvalidChoice, index)
	}
	previous, hadPrevious = t.voters[voter]
	if hadPrevious {
		t.counts[previous]--
	}
	t.voters[voter] = index
	t.counts[index]++
	return previous, hadPrevious, nil
}

// Remove drops voter's vote. It reports whether the voter had one.
func (t *Tracker) Remove(voter string) bool {
	index, ok := t.voters[voter]
	if !ok {
		return false
	}
	t.counts[index]--
	delete(t.voters, voter)
	return true
}

// Sync removes every voter not in present and returns how many were removed.
func (t *Tracker) Sync(present []string) int {
	keep := make(map[string]bool, len(present))
	for _, id := range present {
		keep[id] = true
	}
	removed := 0
	for voter := range t.voters {
		if !keep[voter] {
			t.Remove(voter)
			removed++
		}
	}
	return removed
}

func (t *Tracker) Valid(index int) bool {
	return index >= 0 && index < len(t.valid) && t.valid[index]
}

// ValidIndices lists every index that accepts votes, ascending.
func (t *Tracker) ValidIndices() []int {
	var out []int
	for i, ok := range t.valid {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

// Counts returns a copy of the per-choice counts.
func (t *Tracker) Counts() []int {
	return append([]int(nil), t.counts...)
}

func (t *Tracker) Count(index int) int {
	if index < 0 || index >= len(t.counts) {
		return 0
	}
	return t.counts[index]
}

func (t *Tracker) Len() int {
	return len(t.counts)
}

// Voters is the number of voters with an active vote.
func (t *Tracker) Voters() int {
	return len(t.voters)
}

func (t *Tracker) Choice(voter string) (int, bool) {
	index, ok := t.voters[voter]
	return index, ok
}
