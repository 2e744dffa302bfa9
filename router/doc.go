// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the map vote API.

# Route Registration

	mux := router.NewRouter(engine, state, eventLog, limiter, cfg)

# Endpoints

Health:

	GET /health

Game server events (bridge only, requires X-Bridge-Key):

	POST /events/chat
	POST /events/new-game
	POST /events/layers
	POST /events/players
	POST /events/player-connected
	POST /events/player-disconnected

Vote status (public):

	GET /vote
	GET /vote/sessions/{id}/events

Every route except health and root is wrapped in request logging.
*/
package router
