// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/mapvote/layers"
	"github.com/danielhkuo/mapvote/models"
	"github.com/danielhkuo/mapvote/nominate"
	"github.com/danielhkuo/mapvote/scheduler"
	"github.com/danielhkuo/mapvote/tally"
)

// RerolledMessage is broadcast when a reroll replaces the running vote.
const RerolledMessage = "The previous Map Vote has been canceled and a new one has been generated!"

// Params are the request parameters of a vote. A reroll reuses them
// unchanged.
type Params = nominate.Params

// Session is one vote from list generation until it closes.
type Session struct {
	ID        string
	List      nominate.List
	Tally     *tally.Tracker
	Params    Params
	StartedAt time.Time

	firstBroadcast bool
	lastApplied    string
}

// Begin opens a vote. Without force the vote waits, re-checking every
// minute, until enough players are online.
func (e *Engine) Begin(ctx context.Context, force bool, params Params) error {
	e.mu.Lock()
	defer e.unlock()
	return e.beginLocked(ctx, force, params)
}

func (e *Engine) beginLocked(ctx context.Context, force bool, params Params) error {
	if e.session != nil {
		return ErrAlreadyActive
	}

	opts := e.opts
	if players := e.server.PlayerCount(); !force && players < opts.MinPlayersForVote {
		slog.Info("not enough players for a vote, retrying",
			"players", players,
			"required", opts.MinPlayersForVote,
			"retry_in", autoStartRetry,
		)
		e.after(e.timers, scheduler.AutoStart, autoStartRetry, func(ctx context.Context) {
			if err := e.beginLocked(ctx, force, params); err != nil {
				slog.Error("automatic vote start failed", "error", err)
			}
		})
		return nil
	}

	list, err := e.generateLocked(params)
	if err != nil {
		return err
	}

	e.timers.CancelAll()
	s := &Session{
		ID:             uuid.NewString(),
		List:           list,
		Tally:          tally.New(list.Mask()),
		Params:         params.Clone(),
		StartedAt:      e.clock.Now(),
		firstBroadcast: true,
	}
	e.session = s
	e.setPhaseLocked(models.PhaseCollecting)
	slog.Info("vote started",
		"session_id", s.ID,
		"choices", len(list.Layers()),
		"explicit", params.Explicit(),
		"requester", params.Requester,
	)

	if d := opts.VotingDurationTimeout(); d > 0 {
		e.after(e.timers, scheduler.Duration, d, func(ctx context.Context) {
			e.endOnTimer(ctx, s, "voting duration elapsed")
		})
	}
	if d := opts.VoteLength(); d > 0 {
		e.after(e.timers, scheduler.VoteLength, d, func(ctx context.Context) {
			e.endOnTimer(ctx, s, "vote length elapsed")
		})
	}

	e.broadcastLocked(ctx)
	e.armBroadcastLocked()
	return nil
}

// generateLocked builds a vote list. Automatic lists are retried a bounded
// number of times before giving up with ErrNoEligibleCandidates.
func (e *Engine) generateLocked(params Params) (nominate.List, error) {
	opts := e.opts
	lim := nominate.LimitsFrom(opts)
	catalog := e.catalog.Layers()

	if params.Explicit() {
		return e.gen.Generate(catalog, nil, params, lim)
	}

	pool := layers.BuildPool(catalog, opts, e.excludedMapsLocked())
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		list, err := e.gen.Generate(catalog, pool, params, lim)
		if err == nil {
			return list, nil
		}
		if !errors.Is(err, nominate.ErrNoCandidates) {
			return nominate.List{}, err
		}
		slog.Warn("generated an empty vote list", "attempt", attempt, "pool", len(pool))
	}
	slog.Error("no eligible layers for a vote", "attempts", maxGenerateAttempts, "pool", len(pool))
	return nominate.List{}, ErrNoEligibleCandidates
}

func (e *Engine) excludedMapsLocked() []string {
	current := ""
	if id := e.server.CurrentLayer(); id == "" {
		slog.Warn("current layer unknown, not excluding it from the vote")
	} else if l, ok := e.catalog.Find(id); ok {
		current = l.Map
	}

	var recent []string
	for _, id := range e.server.History() {
		if l, ok := e.catalog.Find(id); ok {
			recent = append(recent, l.Map)
		}
	}
	return layers.ExcludedMaps(current, recent, e.opts.NumberRecentMapsToExclude)
}

// armBroadcastLocked re-arms the periodic broadcast, reading the interval
// from the options resolved right now.
func (e *Engine) armBroadcastLocked() {
	interval := e.opts.BroadcastInterval()
	if interval <= 0 {
		return
	}
	e.after(e.timers, scheduler.Broadcast, interval, func(ctx context.Context) {
		e.broadcastLocked(ctx)
		e.armBroadcastLocked()
	})
}

// broadcastLocked announces the list. The first announcement of a session
// always hides counts and is logged as the vote start.
func (e *Engine) broadcastLocked(ctx context.Context) {
	s := e.session
	if s == nil {
		return
	}

	var counts []int
	if !s.firstBroadcast && !e.opts.HideVotesCount {
		counts = s.Tally.Counts()
	}
	text := strings.Join(s.List.Lines(counts), "\n")

	e.broadcast(ctx, e.opts.VoteBroadcastMessage)
	e.broadcast(ctx, text)

	if s.firstBroadcast {
		s.firstBroadcast = false
		e.logEventLocked(ctx, s, models.EventVoteStarted, text)
	}
}

// Vote registers playerID's vote for index.
func (e *Engine) Vote(ctx context.Context, playerID string, index int) error {
	e.mu.Lock()
	defer e.unlock()
	return e.voteLocked(ctx, playerID, index)
}

func (e *Engine) voteLocked(ctx context.Context, playerID string, index int) error {
	s := e.session
	if s == nil {
		e.warn(ctx, playerID, "There is no vote running right now")
		return ErrNoActiveSession
	}
	if _, _, err := s.Tally.Register(playerID, index); err != nil {
		e.warn(ctx, playerID, "Please vote a valid option")
		return err
	}

	msg := "Registered vote: " + s.List.Slots[index].Label()
	if !e.opts.HideVotesCount {
		msg += fmt.Sprintf(" (%d votes)", s.Tally.Count(index))
	}
	e.warn(ctx, playerID, msg)

	e.updateNextMapLocked(ctx)
	return nil
}

// winnersLocked applies the reroll policy to the current leaders.
func (e *Engine) winnersLocked(s *Session) (tally.Decision, error) {
	winners, err := tally.WinnersAmong(s.Tally.Counts(), s.Tally.ValidIndices())
	if err != nil {
		return tally.Decision{}, err
	}
	avoid := -1
	if s.List.HasReroll() {
		avoid = 0
	}
	return tally.Policy(winners, avoid), nil
}

// updateNextMapLocked keeps the server's next layer on the current leader
// while the vote runs. A sole reroll leader arms the grace timer instead.
func (e *Engine) updateNextMapLocked(ctx context.Context) {
	s := e.session
	if s == nil || s.Tally.Voters() == 0 {
		return
	}
	d, err := e.winnersLocked(s)
	if err != nil {
		slog.Warn("next layer update skipped", "session_id", s.ID, "error", err)
		return
	}
	if d.Defer {
		e.armGraceLocked()
		return
	}
	pick, err := tally.Pick(e.rng, d.Winners)
	if err != nil {
		return
	}

	id := s.List.Slots[pick].Layer.ID
	if id == s.lastApplied || id == e.server.NextLayer() {
		return
	}
	if err := e.setNextMapLocked(ctx, id); err != nil {
		slog.Error("failed to set next layer", "session_id", s.ID, "layer", id, "error", err)
		return
	}
	s.lastApplied = id
}

// armGraceLocked gives players two minutes to move away from the reroll
// entry, with a reminder broadcast after one.
func (e *Engine) armGraceLocked() {
	if e.timers.Pending(scheduler.Grace) {
		return
	}
	s := e.session
	slog.Info("reroll is leading, grace period started", "session_id", s.ID, "grace", graceDelay)
	e.after(e.timers, scheduler.GraceReminder, graceReminderDelay, func(ctx context.Context) {
		e.broadcastLocked(ctx)
	})
	e.after(e.timers, scheduler.Grace, graceDelay, func(ctx context.Context) {
		if e.session != s {
			return
		}
		if d, err := e.winnersLocked(s); err == nil && d.Defer {
			e.rerollLocked(ctx)
		}
	})
}

// rerollLocked replaces the running vote with a fresh list generated from
// the same parameters.
func (e *Engine) rerollLocked(ctx context.Context) {
	s := e.session
	params := s.Params.Clone()
	e.closeLocked("rerolled")
	e.broadcast(ctx, RerolledMessage)

	if err := e.beginLocked(ctx, true, params); err != nil {
		slog.Error("reroll failed", "previous_session_id", s.ID, "error", err)
		e.warn(ctx, params.Requester, "Could not generate a new vote list")
	}
}

// End closes the vote and applies the winner as the next layer.
func (e *Engine) End(ctx context.Context) error {
	e.mu.Lock()
	defer e.unlock()
	return e.endLocked(ctx, "ended")
}

func (e *Engine) endOnTimer(ctx context.Context, s *Session, reason string) {
	if e.session != s {
		return
	}
	if err := e.endLocked(ctx, reason); err != nil {
		slog.Error("failed to end vote", "session_id", s.ID, "error", err)
	}
}

func (e *Engine) endLocked(ctx context.Context, reason string) error {
	s := e.session
	if s == nil {
		return ErrNoActiveSession
	}
	e.setPhaseLocked(models.PhaseClosing)

	d, err := e.winnersLocked(s)
	if err != nil {
		e.closeLocked(reason)
		return err
	}
	if d.Defer {
		e.rerollLocked(ctx)
		return nil
	}
	pick, err := tally.Pick(e.rng, d.Winners)
	if err != nil {
		e.closeLocked(reason)
		return err
	}
	winner := s.List.Slots[pick].Layer
	e.closeLocked(reason)

	if err := e.setNextMapLocked(ctx, winner.ID); err != nil {
		slog.Error("failed to set next layer", "session_id", s.ID, "layer", winner.ID, "error", err)
	}
	label := layers.Label(winner)
	e.broadcast(ctx, e.opts.VoteWinnerBroadcastMessage+label)
	e.logEventLocked(ctx, s, models.EventVoteEnded, label)
	slog.Info("vote winner applied", "session_id", s.ID, "layer", winner.ID, "votes", s.Tally.Count(pick))
	return nil
}

// Cancel closes the vote without touching the server's layers.
func (e *Engine) Cancel(ctx context.Context) error {
	e.mu.Lock()
	defer e.unlock()
	if e.session == nil {
		return ErrNoActiveSession
	}
	e.setPhaseLocked(models.PhaseClosing)
	e.closeLocked("cancelled")
	return nil
}

// closeLocked moves the session through Closed back to Idle and cancels
// every timer it owned.
func (e *Engine) closeLocked(reason string) {
	s := e.session
	e.timers.CancelAll()
	if s == nil {
		return
	}
	e.setPhaseLocked(models.PhaseClosing)
	e.setPhaseLocked(models.PhaseClosed)
	slog.Info("vote closed", "session_id", s.ID, "reason", reason, "voters", s.Tally.Voters())
	e.session = nil
	e.setPhaseLocked(models.PhaseIdle)
}

// OnNewGame handles a match start. After a short settle delay any running
// vote is cancelled, the automatic vote is scheduled and seeding is
// checked.
func (e *Engine) OnNewGame(ctx context.Context) {
	e.mu.Lock()
	defer e.unlock()

	e.timers.CancelAll()
	e.after(e.host, scheduler.MatchSettle, matchSettleDelay, func(ctx context.Context) {
		if e.session != nil {
			e.closeLocked("new game")
		}
		e.timers.CancelAll()

		if e.opts.AutomaticVoteStart {
			e.after(e.timers, scheduler.AutoStart, e.opts.AutoStartDelay(), func(ctx context.Context) {
				if err := e.beginLocked(ctx, false, Params{}); err != nil {
					slog.Error("automatic vote start failed", "error", err)
				}
			})
		}
		e.after(e.host, scheduler.Seeding, seedingCheckDelay, func(ctx context.Context) {
			e.seedingLocked(ctx, true)
		})
	})
}

// OnPlayerConnected re-checks seeding mode.
func (e *Engine) OnPlayerConnected(ctx context.Context) {
	e.mu.Lock()
	defer e.unlock()
	e.seedingLocked(ctx, false)
}

// OnPlayerDisconnected drops the player's vote.
func (e *Engine) OnPlayerDisconnected(ctx context.Context, playerID string) {
	e.mu.Lock()
	defer e.unlock()
	if e.session == nil {
		return
	}
	if e.session.Tally.Remove(playerID) {
		e.updateNextMapLocked(ctx)
	}
}

// SyncRoster drops the votes of players that are no longer online.
func (e *Engine) SyncRoster(ctx context.Context, playerIDs []string) {
	e.mu.Lock()
	defer e.unlock()
	if e.session == nil {
		return
	}
	if removed := e.session.Tally.Sync(playerIDs); removed > 0 {
		slog.Info("removed votes of departed players", "session_id", e.session.ID, "removed", removed)
		e.updateNextMapLocked(ctx)
	}
}
