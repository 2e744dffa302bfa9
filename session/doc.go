// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session runs map votes for one game server.

An Engine owns at most one vote at a time and moves it through the phases

	idle -> collecting -> closing -> closed -> idle

Every change happens under the engine mutex: chat commands, bridge events
(match start, player connect and disconnect) and timer callbacks are
processed one at a time, so the tally never sees two writers.

# Starting a Vote

	eng, err := session.New(session.Deps{
		Catalog:  cat,
		Server:   state,
		Notifier: client,
		Admin:    client,
		Log:      sink,
		Options:  opts,
	})
	eng.Start(ctx)
	err = eng.Begin(ctx, true, session.Params{})

Without force, Begin waits for MinPlayersForVote players, re-checking once
a minute. Explicit patterns (Params.Patterns) are matched against the whole
catalog; an automatic list is drawn from the filtered pool and retried a
bounded number of times before Begin gives up with ErrNoEligibleCandidates.

# Ending

End picks the winner, sets it as the next layer and broadcasts it. Cancel
closes the vote without touching the server. While a vote runs the leader
is pushed as next layer after every vote change.

When the reroll entry is the sole leader the engine waits two minutes for
players to change their minds, then replaces the vote with a new list
drawn from the same parameters.

# Timers

Session timers (broadcast, duration, vote length, grace and automatic
start) are cancelled together whenever the vote closes or a new one
starts. A callback that fires after its timer was replaced is dropped.
The time frame overlay is re-resolved every minute, and every decision
reads the options in effect at that moment.

# Chat Commands

HandleCommand understands a bare number as a vote and the prefix commands
choices, results, broadcast and help for everyone, plus start, restart,
cancel, end and cancelauto for admins.
*/
package session
