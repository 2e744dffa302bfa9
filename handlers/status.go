// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/mapvote/middleware"
	"github.com/danielhkuo/mapvote/models"
)

// EventLog reads back the started and ended events of a vote.
type EventLog interface {
	Events(ctx context.Context, sessionID string) ([]models.VoteEvent, error)
}

type StatusHandler struct {
	engine Engine
	log    EventLog
}

func NewStatusHandler(engine Engine, log EventLog) *StatusHandler {
	return &StatusHandler{engine: engine, log: log}
}

// GetStatus handles GET /vote
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.engine.Status())
}

// GetEvents handles GET /vote/sessions/{id}/events
func (h *StatusHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session id is required")
		return
	}
	if h.log == nil {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote log disabled")
		return
	}

	events, err := h.log.Events(r.Context(), sessionID)
	if err != nil {
		slog.Error("failed to query vote events", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(events) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Vote not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, events)
}
