// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package scheduler_test

import (
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/mapvote/scheduler"
	"github.com/danielhkuo/mapvote/testutil"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestAfterFiresOnce(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	calls := 0
	s.After(scheduler.Duration, time.Minute, func() { calls++ })

	if !s.Pending(scheduler.Duration) {
		t.Fatal("timer should be pending")
	}
	due, ok := s.Deadline(scheduler.Duration)
	if !ok || !due.Equal(epoch.Add(time.Minute)) {
		t.Errorf("Deadline() = %v,%v, want %v", due, ok, epoch.Add(time.Minute))
	}

	clock.Advance(59 * time.Second)
	if calls != 0 {
		t.Fatalf("fired early: %d calls", calls)
	}
	clock.Advance(time.Second)
	clock.Advance(time.Hour)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if s.Pending(scheduler.Duration) {
		t.Error("fired timer still pending")
	}
}

func TestAfterReplacesSamePurpose(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	var fired []string
	s.After(scheduler.Broadcast, time.Minute, func() { fired = append(fired, "old") })
	s.After(scheduler.Broadcast, 2*time.Minute, func() { fired = append(fired, "new") })

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	clock.Advance(5 * time.Minute)
	if len(fired) != 1 || fired[0] != "new" {
		t.Errorf("fired = %v, want [new]", fired)
	}
}

func TestCancelAll(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	calls := 0
	for _, p := range []scheduler.Purpose{scheduler.Broadcast, scheduler.Duration, scheduler.VoteLength, scheduler.Grace, scheduler.AutoStart} {
		s.After(p, time.Minute, func() { calls++ })
	}
	s.CancelAll()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after CancelAll", s.Len())
	}
	if n := len(clock.Pending()); n != 0 {
		t.Errorf("%d clock timers still armed", n)
	}
	clock.Advance(time.Hour)
	if calls != 0 {
		t.Errorf("cancelled timers ran %d times", calls)
	}
}

func TestCancel(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	s.After(scheduler.AutoStart, time.Minute, func() {})
	if !s.Cancel(scheduler.AutoStart) {
		t.Error("Cancel() = false for pending timer")
	}
	if s.Cancel(scheduler.AutoStart) {
		t.Error("Cancel() = true for already cancelled timer")
	}
}

func TestStaleCallbackIsDropped(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	calls := 0
	s.After(scheduler.Duration, time.Minute, func() { calls++ })
	stale := clock.Timers()[0]

	s.CancelAll()
	s.After(scheduler.Duration, time.Minute, func() { calls += 10 })

	// the old timer fires after its replacement was armed
	stale.Fire()
	if calls != 0 {
		t.Fatalf("stale callback ran, calls = %d", calls)
	}
	if !s.Pending(scheduler.Duration) {
		t.Fatal("stale callback claimed the new timer")
	}

	clock.Advance(time.Minute)
	if calls != 10 {
		t.Errorf("calls = %d, want 10", calls)
	}
}

func TestCallbackCanRearm(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, nil)

	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		s.After(scheduler.Broadcast, time.Minute, tick)
	}
	s.After(scheduler.Broadcast, time.Minute, tick)

	clock.Advance(5 * time.Minute)
	if ticks != 5 {
		t.Errorf("ticks = %d, want 5", ticks)
	}
}

func TestExecutorSerializesCallbacks(t *testing.T) {
	var (
		mu     sync.Mutex
		ran    []scheduler.Purpose
		inside bool
	)
	exec := func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		if inside {
			t.Error("executor re-entered")
		}
		inside = true
		fn()
		inside = false
	}

	clock := testutil.NewFakeClock(epoch)
	s := scheduler.New(clock, exec)
	s.After(scheduler.Grace, 2*time.Minute, func() { ran = append(ran, scheduler.Grace) })
	s.After(scheduler.GraceReminder, time.Minute, func() { ran = append(ran, scheduler.GraceReminder) })

	clock.Advance(3 * time.Minute)
	if len(ran) != 2 || ran[0] != scheduler.GraceReminder || ran[1] != scheduler.Grace {
		t.Errorf("ran = %v, want [grace-reminder grace]", ran)
	}
}

func TestSystemClock(t *testing.T) {
	s := scheduler.New(scheduler.SystemClock{}, nil)

	done := make(chan struct{})
	s.After(scheduler.Overlay, time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("system clock timer never fired")
	}
}
