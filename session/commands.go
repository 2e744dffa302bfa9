// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mapvote/nominate"
	"github.com/danielhkuo/mapvote/scheduler"
)

// Command is one chat message addressed to the engine.
type Command struct {
	PlayerID   string
	PlayerName string
	Message    string
	Admin      bool
}

type route struct {
	admin bool
	fn    func(ctx context.Context, cmd Command, args []string) error
}

func (e *Engine) commandRoutes() map[string]route {
	choices := route{fn: e.cmdChoices}
	return map[string]route{
		"choices":    choices,
		"results":    choices,
		"start":      {admin: true, fn: e.cmdStart},
		"restart":    {admin: true, fn: e.cmdRestart},
		"cancel":     {admin: true, fn: e.cmdCancel},
		"end":        {admin: true, fn: e.cmdEnd},
		"cancelauto": {admin: true, fn: e.cmdCancelAuto},
		"broadcast":  {fn: e.cmdBroadcast},
		"help":       {fn: e.cmdHelp},
	}
}

// IsCommand reports whether HandleCommand would act on message: a bare
// number or anything starting with the command prefix.
func (e *Engine) IsCommand(message string) bool {
	e.mu.Lock()
	defer e.unlock()
	msg := strings.ToLower(strings.TrimSpace(message))
	if _, err := strconv.Atoi(msg); err == nil {
		return true
	}
	return strings.HasPrefix(msg, strings.ToLower(e.opts.CommandPrefix))
}

// HandleCommand routes a chat message. Messages that are neither a bare
// number nor prefixed with the command prefix are ignored. Admin commands
// from non-admins are dropped without a reply.
func (e *Engine) HandleCommand(ctx context.Context, cmd Command) error {
	e.mu.Lock()
	defer e.unlock()

	msg := strings.ToLower(strings.TrimSpace(cmd.Message))
	if n, err := strconv.Atoi(msg); err == nil {
		return e.voteLocked(ctx, cmd.PlayerID, n)
	}

	prefix := strings.ToLower(e.opts.CommandPrefix)
	if !strings.HasPrefix(msg, prefix) {
		return nil
	}
	fields := strings.Fields(msg[len(prefix):])
	if len(fields) == 0 {
		return e.cmdHelp(ctx, cmd, nil)
	}
	if n, err := strconv.Atoi(fields[0]); err == nil {
		return e.voteLocked(ctx, cmd.PlayerID, n)
	}

	r, ok := e.routes[fields[0]]
	if !ok {
		e.warn(ctx, cmd.PlayerID, "Unknown vote subcommand: "+fields[0])
		return nil
	}
	if r.admin && !cmd.Admin {
		slog.Debug("ignored admin command from non-admin", "player_id", cmd.PlayerID, "command", fields[0])
		return nil
	}
	return r.fn(ctx, cmd, fields[1:])
}

func (e *Engine) noSessionLocked(ctx context.Context, cmd Command) bool {
	if e.session != nil {
		return false
	}
	e.warn(ctx, cmd.PlayerID, "There is no vote running right now")
	return true
}

func (e *Engine) cmdChoices(ctx context.Context, cmd Command, _ []string) error {
	if e.noSessionLocked(ctx, cmd) {
		return ErrNoActiveSession
	}
	var counts []int
	if !e.opts.HideVotesCount {
		counts = e.session.Tally.Counts()
	}
	e.warn(ctx, cmd.PlayerID, strings.Join(e.session.List.Lines(counts), "\n"))
	return nil
}

func (e *Engine) cmdStart(ctx context.Context, cmd Command, args []string) error {
	if e.session != nil {
		e.warn(ctx, cmd.PlayerID, "Voting is already enabled")
		return ErrAlreadyActive
	}
	return e.startForLocked(ctx, cmd, args)
}

func (e *Engine) cmdRestart(ctx context.Context, cmd Command, args []string) error {
	if e.session != nil {
		e.closeLocked("restarted")
	}
	return e.startForLocked(ctx, cmd, args)
}

func (e *Engine) startForLocked(ctx context.Context, cmd Command, patterns []string) error {
	err := e.beginLocked(ctx, true, Params{Patterns: patterns, Requester: cmd.PlayerID})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, nominate.ErrTooManyOptions):
		e.warn(ctx, cmd.PlayerID, fmt.Sprintf("You cannot start a vote with more than %d options", e.opts.MaxOptions()))
	case errors.Is(err, nominate.ErrNoCandidates):
		e.warn(ctx, cmd.PlayerID, "No layers match: "+strings.Join(patterns, " "))
	case errors.Is(err, ErrNoEligibleCandidates):
		e.warn(ctx, cmd.PlayerID, "No eligible layers to vote on")
	}
	return err
}

func (e *Engine) cmdCancel(ctx context.Context, cmd Command, _ []string) error {
	if e.noSessionLocked(ctx, cmd) {
		return ErrNoActiveSession
	}
	e.closeLocked("cancelled")
	e.warn(ctx, cmd.PlayerID, "Ending current vote")
	return nil
}

func (e *Engine) cmdEnd(ctx context.Context, cmd Command, _ []string) error {
	if e.noSessionLocked(ctx, cmd) {
		return ErrNoActiveSession
	}
	if err := e.endLocked(ctx, "ended by admin"); err != nil {
		return err
	}
	e.warn(ctx, cmd.PlayerID, "Ending current vote")
	return nil
}

func (e *Engine) cmdCancelAuto(ctx context.Context, cmd Command, _ []string) error {
	due, ok := e.timers.Deadline(scheduler.AutoStart)
	if !ok || !e.timers.Cancel(scheduler.AutoStart) {
		e.warn(ctx, cmd.PlayerID, "There is no automatic vote start scheduled")
		return ErrNoAutoStart
	}
	when := humanize.RelTime(due, e.clock.Now(), "ago", "from now")
	slog.Info("automatic vote start cancelled", "player_id", cmd.PlayerID, "due", due)
	e.warn(ctx, cmd.PlayerID, "Cancelled the automatic vote start due "+when)
	return nil
}

func (e *Engine) cmdBroadcast(ctx context.Context, cmd Command, _ []string) error {
	if e.noSessionLocked(ctx, cmd) {
		return ErrNoActiveSession
	}
	e.broadcastLocked(ctx)
	return nil
}

func (e *Engine) cmdHelp(ctx context.Context, cmd Command, _ []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n > choices\n > results\n > <number>\n", e.opts.CommandPrefix)
	if cmd.Admin {
		b.WriteString("\n Admin only:\n > start [layers...]\n > restart [layers...]\n > cancel\n > end\n > cancelauto\n > broadcast")
	}
	e.warn(ctx, cmd.PlayerID, strings.TrimRight(b.String(), "\n"))
	return nil
}
