// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /vote", middleware.WithLogging(handler))

Logs request completion with method, path, status and duration_ms.

# Bridge Authentication

Event endpoints are only accepted from the game server bridge:

	mux.HandleFunc("POST /events/chat",
		middleware.RequireBridgeKey(cfg.ServerID, cfg.BridgeKeySalt, h.Chat))

A missing X-Bridge-Key header is answered with 401, a wrong one with 403.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows GET, POST and OPTIONS with the Content-Type and X-Bridge-Key headers.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

	var req models.ChatEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Honors X-Forwarded-For and X-Real-IP, then falls back to RemoteAddr.
*/
package middleware
