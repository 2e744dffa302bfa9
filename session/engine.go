// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/mapvote/config"
	"github.com/danielhkuo/mapvote/models"
	"github.com/danielhkuo/mapvote/nominate"
	"github.com/danielhkuo/mapvote/random"
	"github.com/danielhkuo/mapvote/scheduler"
)

var (
	ErrNoActiveSession      = errors.New("no active vote session")
	ErrAlreadyActive        = errors.New("vote already active")
	ErrNoEligibleCandidates = errors.New("no eligible candidates")
	ErrNoAutoStart          = errors.New("no automatic vote start scheduled")
)

const (
	maxGenerateAttempts = 5
	graceDelay          = 2 * time.Minute
	graceReminderDelay  = time.Minute
	autoStartRetry      = time.Minute
	matchSettleDelay    = 10 * time.Second
	seedingCheckDelay   = 10 * time.Second
	overlayRefresh      = time.Minute
)

// Catalog is the read-only layer list.
type Catalog interface {
	Layers() []models.Layer
	Find(id string) (models.Layer, bool)
}

// ServerState is the last known game server state. Layers are layer ids,
// history is most recent first.
type ServerState interface {
	CurrentLayer() string
	NextLayer() string
	History() []string
	PlayerCount() int
	// SetNextLayer records a next layer the engine applied, until the
	// bridge reports the server's own view again.
	SetNextLayer(id string)
}

// Notifier delivers chat messages to players.
type Notifier interface {
	Warn(ctx context.Context, playerID, msg string) error
	Broadcast(ctx context.Context, msg string) error
}

// AdminChannel changes the layers the server plays.
type AdminChannel interface {
	SetCurrentMap(ctx context.Context, layerID string) error
	SetNextMap(ctx context.Context, layerID string) error
}

// LogSink receives vote started and ended events.
type LogSink interface {
	LogVote(ctx context.Context, ev models.VoteEvent) error
}

// Deps are the collaborators of an Engine. Log, Clock and Rand are
// optional.
type Deps struct {
	Catalog  Catalog
	Server   ServerState
	Notifier Notifier
	Admin    AdminChannel
	Log      LogSink
	Clock    scheduler.Clock
	Rand     *rand.Rand
	Options  config.Options
}

// Engine runs map votes for one game server. All state changes, whether
// triggered by a command, a bridge event or a timer, happen under one
// mutex, one event at a time.
type Engine struct {
	catalog Catalog
	server  ServerState
	notify  Notifier
	admin   AdminChannel
	sink    LogSink
	clock   scheduler.Clock
	rng     *rand.Rand
	gen     *nominate.Generator
	base    config.Options
	routes  map[string]route

	mu      sync.Mutex
	ctx     context.Context
	opts    config.Options
	frames  []string
	phase   string
	session *Session
	timers  *scheduler.Scheduler // owned by the current session
	host    *scheduler.Scheduler // overlay refresh, match settle, seeding
	stopped bool
	pending []queuedEvent // delivered to sink after mu is released
}

func New(deps Deps) (*Engine, error) {
	if deps.Catalog == nil || deps.Server == nil || deps.Notifier == nil || deps.Admin == nil {
		return nil, fmt.Errorf("session: catalog, server, notifier and admin are required")
	}
	if err := deps.Options.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = scheduler.SystemClock{}
	}
	if deps.Rand == nil {
		rng, _, err := random.New(0)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		deps.Rand = rng
	}

	e := &Engine{
		catalog: deps.Catalog,
		server:  deps.Server,
		notify:  deps.Notifier,
		admin:   deps.Admin,
		sink:    deps.Log,
		clock:   deps.Clock,
		rng:     deps.Rand,
		gen:     nominate.NewGenerator(deps.Rand),
		base:    deps.Options.Clone(),
		ctx:     context.Background(),
		phase:   models.PhaseIdle,
	}
	e.timers = scheduler.New(e.clock, e.run)
	e.host = scheduler.New(e.clock, e.run)
	e.routes = e.commandRoutes()
	e.refreshOverlayLocked()
	return e, nil
}

// run is the scheduler executor: timer callbacks take the engine lock.
func (e *Engine) run(fn func()) {
	e.mu.Lock()
	defer e.unlock()
	if e.stopped {
		return
	}
	fn()
}

// after arms fn on s. Timer callbacks use the engine context, never the
// context of the request that armed them.
func (e *Engine) after(s *scheduler.Scheduler, p scheduler.Purpose, d time.Duration, fn func(ctx context.Context)) {
	s.After(p, d, func() { fn(e.ctx) })
}

// Start resolves the time frame overlay and keeps it fresh every minute
// until ctx is done or Stop is called.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.unlock()

	e.ctx = ctx
	e.stopped = false
	e.refreshOverlayLocked()
	e.armOverlayLocked()
	slog.Info("map vote engine started", "time_frames", len(e.base.TimeFrames))

	if done := ctx.Done(); done != nil {
		go func() {
			<-done
			e.Stop()
		}()
	}
}

// Stop cancels every timer. Pending callbacks become no-ops.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.unlock()
	if e.stopped {
		return
	}
	e.stopped = true
	e.timers.CancelAll()
	e.host.CancelAll()
	slog.Info("map vote engine stopped")
}

func (e *Engine) armOverlayLocked() {
	e.after(e.host, scheduler.Overlay, overlayRefresh, func(context.Context) {
		e.refreshOverlayLocked()
		e.armOverlayLocked()
	})
}

// refreshOverlayLocked re-resolves the options for the current time. On a
// bad rule the previous options stay in effect.
func (e *Engine) refreshOverlayLocked() {
	now := e.clock.Now()
	opts, err := config.Resolve(e.base, e.base.TimeFrames, now)
	if err != nil {
		slog.Error("failed to resolve time frames", "error", err)
		if e.opts.CommandPrefix == "" {
			e.opts = e.base.Clone()
		}
		return
	}
	frames := config.ActiveFrames(e.base, now)
	if !slices.Equal(frames, e.frames) {
		slog.Info("active time frames changed", "time_frames", frames)
	}
	e.opts = opts
	e.frames = frames
}

// Options returns the currently resolved options.
func (e *Engine) Options() config.Options {
	e.mu.Lock()
	defer e.unlock()
	return e.opts.Clone()
}

// Phase returns the current session phase.
func (e *Engine) Phase() string {
	e.mu.Lock()
	defer e.unlock()
	return e.phase
}

func (e *Engine) setPhaseLocked(phase string) {
	if e.phase == phase {
		return
	}
	id := ""
	if e.session != nil {
		id = e.session.ID
	}
	slog.Info("vote phase changed", "session_id", id, "from", e.phase, "to", phase)
	e.phase = phase
}

func (e *Engine) warn(ctx context.Context, playerID, msg string) {
	if playerID == "" {
		return
	}
	if err := e.notify.Warn(ctx, playerID, msg); err != nil {
		slog.Warn("failed to warn player", "player_id", playerID, "error", err)
	}
}

func (e *Engine) broadcast(ctx context.Context, msg string) {
	if err := e.notify.Broadcast(ctx, msg); err != nil {
		slog.Warn("failed to broadcast", "error", err)
	}
}

func (e *Engine) logEventLocked(ctx context.Context, s *Session, kind, text string) {
	if !e.opts.LogEnabled || e.sink == nil {
		return
	}
	ev := models.VoteEvent{
		SessionID: s.ID,
		Kind:      kind,
		Channel:   e.opts.LogChannelID,
		Text:      text,
		At:        e.clock.Now(),
	}
	e.pending = append(e.pending, queuedEvent{ctx: ctx, ev: ev})
}

type queuedEvent struct {
	ctx context.Context
	ev  models.VoteEvent
}

// unlock releases mu, then hands queued vote events to the sink so a slow
// webhook or database never holds up commands and timers.
func (e *Engine) unlock() {
	queued := e.pending
	e.pending = nil
	e.mu.Unlock()

	for _, q := range queued {
		if err := e.sink.LogVote(q.ctx, q.ev); err != nil {
			slog.Warn("failed to log vote event", "session_id", q.ev.SessionID, "kind", q.ev.Kind, "error", err)
		}
	}
}

// setNextMapLocked queues id as the next layer and records it as the
// server's next layer once the admin channel accepted it.
func (e *Engine) setNextMapLocked(ctx context.Context, id string) error {
	if err := e.admin.SetNextMap(ctx, id); err != nil {
		return err
	}
	e.server.SetNextLayer(id)
	return nil
}
