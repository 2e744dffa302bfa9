// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package scheduler owns the cancellable timers of the vote engine.

Every timer is registered under a Purpose (broadcast, duration,
vote-length, grace, auto-start, ...). Arming a purpose replaces its
previous timer, and CancelAll clears the whole set on a phase change:

	sched := scheduler.New(scheduler.SystemClock{}, engine.run)
	sched.After(scheduler.Duration, 10*time.Minute, engine.endGently)
	...
	sched.CancelAll()

Callbacks go through the Executor so they never interleave with other
events. A callback whose timer was cancelled between firing and running is
discarded.
*/
package scheduler
