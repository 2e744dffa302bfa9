// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mapvote/gamestate"
	"github.com/danielhkuo/mapvote/middleware"
	"github.com/danielhkuo/mapvote/models"
	"github.com/danielhkuo/mapvote/session"
	"github.com/danielhkuo/mapvote/tally"
)

// AdminChat is the chat channel the bridge reports for admin chat.
const AdminChat = "ChatAdmin"

// Engine is the part of the vote engine the bridge events drive.
type Engine interface {
	IsCommand(message string) bool
	HandleCommand(ctx context.Context, cmd session.Command) error
	OnNewGame(ctx context.Context)
	OnPlayerConnected(ctx context.Context)
	OnPlayerDisconnected(ctx context.Context, playerID string)
	SyncRoster(ctx context.Context, playerIDs []string)
	Status() models.VoteStatusResponse
}

// EventHandler receives game server events from the bridge.
type EventHandler struct {
	engine  Engine
	state   *gamestate.Server
	limiter *ChatLimiter
}

func NewEventHandler(engine Engine, state *gamestate.Server, limiter *ChatLimiter) *EventHandler {
	if limiter == nil {
		limiter = NewChatLimiter()
	}
	return &EventHandler{engine: engine, state: state, limiter: limiter}
}

func accepted(w http.ResponseWriter, ok bool) {
	middleware.JSONResponse(w, http.StatusAccepted, models.EventAcceptedResponse{Accepted: ok})
}

// Chat handles POST /events/chat
func (h *EventHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PlayerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player_id is required")
		return
	}
	if req.Message == "" {
		accepted(w, false)
		return
	}

	// ordinary chat never reaches the engine and is not rate limited
	if !h.engine.IsCommand(req.Message) {
		accepted(w, true)
		return
	}
	if !h.limiter.Allow(req.PlayerID) {
		slog.Warn("chat rate limit exceeded", "player_id", req.PlayerID)
		middleware.ErrorResponse(w, http.StatusTooManyRequests, "Too many commands")
		return
	}

	err := h.engine.HandleCommand(r.Context(), session.Command{
		PlayerID:   req.PlayerID,
		PlayerName: req.PlayerName,
		Message:    req.Message,
		Admin:      req.Chat == AdminChat,
	})
	switch {
	case err == nil:
	case errors.Is(err, tally.ErrInvalidChoice),
		errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, session.ErrAlreadyActive),
		errors.Is(err, session.ErrNoAutoStart):
		// the player already got a reply in game
		slog.Debug("chat command rejected", "player_id", req.PlayerID, "error", err)
	default:
		slog.Warn("chat command failed", "player_id", req.PlayerID, "message", req.Message, "error", err)
	}
	accepted(w, err == nil)
}

// NewGame handles POST /events/new-game
func (h *EventHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	slog.Info("new game started", "layer", h.state.CurrentLayer())
	h.engine.OnNewGame(r.Context())
	accepted(w, true)
}

// Layers handles POST /events/layers
func (h *EventHandler) Layers(w http.ResponseWriter, r *http.Request) {
	var req models.LayersEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CurrentLayer == "" && req.NextLayer == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "current_layer or next_layer is required")
		return
	}

	h.state.SetLayers(req.CurrentLayer, req.NextLayer, req.History)
	slog.Debug("layers updated", "current", req.CurrentLayer, "next", req.NextLayer)
	accepted(w, true)
}

// Players handles POST /events/players
func (h *EventHandler) Players(w http.ResponseWriter, r *http.Request) {
	var req models.PlayersEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.state.SetPlayers(req.PlayerIDs)
	h.engine.SyncRoster(r.Context(), req.PlayerIDs)
	accepted(w, true)
}

// PlayerConnected handles POST /events/player-connected
func (h *EventHandler) PlayerConnected(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayer(w, r)
	if !ok {
		return
	}

	h.state.AddPlayer(playerID)
	h.engine.OnPlayerConnected(r.Context())
	accepted(w, true)
}

// PlayerDisconnected handles POST /events/player-disconnected
func (h *EventHandler) PlayerDisconnected(w http.ResponseWriter, r *http.Request) {
	playerID, ok := parsePlayer(w, r)
	if !ok {
		return
	}

	h.state.RemovePlayer(playerID)
	h.engine.OnPlayerDisconnected(r.Context(), playerID)
	accepted(w, true)
}

func parsePlayer(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req models.PlayerEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return "", false
	}
	if req.PlayerID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "player_id is required")
		return "", false
	}
	return req.PlayerID, true
}
