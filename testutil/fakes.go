// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"sync"

	"github.com/danielhkuo/mapvote/models"
)

// Warning is one unicast message recorded by Notifier.
type Warning struct {
	PlayerID string
	Text     string
}

// Notifier records warnings and broadcasts.
type Notifier struct {
	mu         sync.Mutex
	warnings   []Warning
	broadcasts []string
}

func (n *Notifier) Warn(_ context.Context, playerID, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, Warning{PlayerID: playerID, Text: msg})
	return nil
}

func (n *Notifier) Broadcast(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcasts = append(n.broadcasts, msg)
	return nil
}

func (n *Notifier) Warnings() []Warning {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Warning(nil), n.warnings...)
}

func (n *Notifier) Broadcasts() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.broadcasts...)
}

// LastWarning returns the most recent warning sent to playerID.
func (n *Notifier) LastWarning(playerID string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := len(n.warnings) - 1; i >= 0; i-- {
		if n.warnings[i].PlayerID == playerID {
			return n.warnings[i].Text
		}
	}
	return ""
}

// Reset forgets everything recorded so far.
func (n *Notifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = nil
	n.broadcasts = nil
}

// Admin records map changes.
type Admin struct {
	mu      sync.Mutex
	next    []string
	current []string
	Err     error
}

func (a *Admin) SetNextMap(_ context.Context, layerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.next = append(a.next, layerID)
	return nil
}

func (a *Admin) SetCurrentMap(_ context.Context, layerID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.current = append(a.current, layerID)
	return nil
}

// NextMaps lists every SetNextMap target in call order.
func (a *Admin) NextMaps() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.next...)
}

// CurrentMaps lists every SetCurrentMap target in call order.
func (a *Admin) CurrentMaps() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.current...)
}

// LogSink records vote events.
type LogSink struct {
	mu     sync.Mutex
	events []models.VoteEvent
}

func (s *LogSink) LogVote(_ context.Context, ev models.VoteEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *LogSink) Events() []models.VoteEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.VoteEvent(nil), s.events...)
}
