// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Vote phase constants
const (
	PhaseIdle       = "idle"
	PhaseCollecting = "collecting"
	PhaseClosing    = "closing"
	PhaseClosed     = "closed"
)

// Gamemode constants
const (
	GamemodeRAAS     = "RAAS"
	GamemodeAAS      = "AAS"
	GamemodeInvasion = "INVASION"
	GamemodeSeed     = "SEED"
)

// Domain types

type Team struct {
	Faction string `json:"faction"`
}

// Layer is one playable map/mode/version entry of the server catalog.
type Layer struct {
	ID       string  `json:"layerid"`
	Map      string  `json:"map"`
	Gamemode string  `json:"gamemode"`
	Version  string  `json:"version"`
	Teams    [2]Team `json:"teams"`
}

// VoteEvent is emitted to the optional log sink when a vote starts or ends.
type VoteEvent struct {
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"` // "started" or "ended"
	Channel   string    `json:"channel,omitempty"`
	Text      string    `json:"text"`
	At        time.Time `json:"at"`
}

// Vote event kinds
const (
	EventVoteStarted = "started"
	EventVoteEnded   = "ended"
)

// Request types (host bridge -> mapvote)

type ChatEventRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Message    string `json:"message"`
	Chat       string `json:"chat"` // "ChatAdmin" marks an admin channel message
}

type LayersEventRequest struct {
	CurrentLayer string   `json:"current_layer"`
	NextLayer    string   `json:"next_layer"`
	History      []string `json:"history,omitempty"` // most recent first
}

type PlayersEventRequest struct {
	PlayerIDs []string `json:"player_ids"`
}

type PlayerEventRequest struct {
	PlayerID string `json:"player_id"`
}

// Response types

type ChoiceStatus struct {
	Index int    `json:"index"`
	Label string `json:"label"`
	Votes *int   `json:"votes,omitempty"` // nil when counts are hidden
}

type VoteStatusResponse struct {
	Phase            string         `json:"phase"`
	SessionID        string         `json:"session_id,omitempty"`
	StartedAt        *time.Time     `json:"started_at,omitempty"`
	Choices          []ChoiceStatus `json:"choices"`
	Voters           int            `json:"voters"`
	AutoStartDue     *time.Time     `json:"auto_start_due,omitempty"`
	AutoStartIn      string         `json:"auto_start_in,omitempty"`
	ActiveTimeFrames []string       `json:"active_time_frames,omitempty"`
}

type EventAcceptedResponse struct {
	Accepted bool `json:"accepted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
