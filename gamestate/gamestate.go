// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package gamestate keeps the last known state of the game server as
// reported by the bridge: current and next layer, recent layers and the
// player roster.
package gamestate

import (
	"sort"
	"sync"
)

// maxHistory bounds the recently played list.
const maxHistory = 20

// Server is safe for concurrent use.
type Server struct {
	mu      sync.RWMutex
	current string
	next    string
	history []string // most recent first
	players map[string]struct{}
}

func New() *Server {
	return &Server{players: make(map[string]struct{})}
}

// SetLayers records the current and next layer ids. When history is nil
// and the current layer changed, the previous one is pushed onto the
// recently played list.
func (s *Server) SetLayers(current, next string, history []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case history != nil:
		s.history = append([]string(nil), history...)
	case s.current != "" && s.current != current:
		s.history = append([]string{s.current}, s.history...)
	}
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
	s.current = current
	s.next = next
}

// SetNextLayer records a next layer change made through the admin channel.
func (s *Server) SetNextLayer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next = id
}

func (s *Server) CurrentLayer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Server) NextLayer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.next
}

// History returns recently played layer ids, most recent first.
func (s *Server) History() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.history...)
}

// SetPlayers replaces the roster.
func (s *Server) SetPlayers(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			s.players[id] = struct{}{}
		}
	}
}

func (s *Server) AddPlayer(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[id] = struct{}{}
}

func (s *Server) RemovePlayer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
}

// Players returns the roster sorted by id.
func (s *Server) Players() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.players))
	for id := range s.players {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
