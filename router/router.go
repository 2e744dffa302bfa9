// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/mapvote/cliparse"
	"github.com/danielhkuo/mapvote/gamestate"
	"github.com/danielhkuo/mapvote/handlers"
	"github.com/danielhkuo/mapvote/middleware"
)

func NewRouter(engine handlers.Engine, state *gamestate.Server, log handlers.EventLog, limiter *handlers.ChatLimiter, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	eventHandler := handlers.NewEventHandler(engine, state, limiter)
	statusHandler := handlers.NewStatusHandler(engine, log)

	bridge := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireBridgeKey(cfg.ServerID, cfg.BridgeKeySalt, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Game server events (bridge only)
	mux.HandleFunc("POST /events/chat", bridge(eventHandler.Chat))
	mux.HandleFunc("POST /events/new-game", bridge(eventHandler.NewGame))
	mux.HandleFunc("POST /events/layers", bridge(eventHandler.Layers))
	mux.HandleFunc("POST /events/players", bridge(eventHandler.Players))
	mux.HandleFunc("POST /events/player-connected", bridge(eventHandler.PlayerConnected))
	mux.HandleFunc("POST /events/player-disconnected", bridge(eventHandler.PlayerDisconnected))

	// Vote status (public)
	mux.HandleFunc("GET /vote", middleware.WithLogging(statusHandler.GetStatus))
	mux.HandleFunc("GET /vote/sessions/{id}/events", middleware.WithLogging(statusHandler.GetEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mapvote API v1"))
	})

	return mux
}
