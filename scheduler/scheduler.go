// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler

import (
	"sync"
	"time"
)

// Purpose names what a timer is for. A scheduler holds at most one timer
// per purpose.
type Purpose string

const (
	Broadcast     Purpose = "broadcast"
	Duration      Purpose = "duration"
	VoteLength    Purpose = "vote-length"
	Grace         Purpose = "grace"
	GraceReminder Purpose = "grace-reminder"
	AutoStart     Purpose = "auto-start"
	MatchSettle   Purpose = "match-settle"
	Seeding       Purpose = "seeding"
	Overlay       Purpose = "overlay"
)

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so tests can fire timers deterministically.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Executor runs a timer callback serialized with every other event the
// owner processes.
type Executor func(func())

type entry struct {
	id    uint64
	timer Timer
	due   time.Time
}

// Scheduler tracks outstanding timers by purpose. A callback only runs if
// its timer is still the current one for its purpose when the executor
// gets to it, so a timer that was cancelled or replaced after it fired is
// dropped.
type Scheduler struct {
	clock Clock
	exec  Executor

	mu     sync.Mutex
	seq    uint64
	timers map[Purpose]*entry
}

func New(clock Clock, exec Executor) *Scheduler {
	if exec == nil {
		exec = func(fn func()) { fn() }
	}
	return &Scheduler{
		clock:  clock,
		exec:   exec,
		timers: make(map[Purpose]*entry),
	}
}

// After arms fn to run once after d, replacing any pending timer with the
// same purpose.
func (s *Scheduler) After(p Purpose, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked(p)
	s.seq++
	id := s.seq
	e := &entry{id: id, due: s.clock.Now().Add(d)}
	e.timer = s.clock.AfterFunc(d, func() {
		s.exec(func() {
			if s.claim(p, id) {
				fn()
			}
		})
	})
	s.timers[p] = e
}

// Cancel stops the timer for p. It reports whether one was pending.
func (s *Scheduler) Cancel(p Purpose) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopLocked(p)
}

// CancelAll stops every pending timer.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range s.timers {
		s.stopLocked(p)
	}
}

func (s *Scheduler) Pending(p Purpose) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[p]
	return ok
}

// Deadline returns when the timer for p is due.
func (s *Scheduler) Deadline(p Purpose) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.timers[p]
	if !ok {
		return time.Time{}, false
	}
	return e.due, true
}

// Len is the number of pending timers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

func (s *Scheduler) claim(p Purpose, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.timers[p]
	if !ok || e.id != id {
		return false
	}
	delete(s.timers, p)
	return true
}

func (s *Scheduler) stopLocked(p Purpose) bool {
	e, ok := s.timers[p]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(s.timers, p)
	return true
}
