// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the map vote API.

# Handler Types

  - EventHandler: game server events posted by the bridge
  - StatusHandler: the running vote and the vote event log

	events := handlers.NewEventHandler(engine, state, handlers.NewChatLimiter())
	status := handlers.NewStatusHandler(engine, votelog.NewSQLSink(db))

# Bridge Events

The bridge forwards what it sees on the game server. Every event answers
202 with {"accepted": bool}; chat replies go to the player in game, not
in the HTTP response.

	POST /events/chat                - chat message, vote or command
	POST /events/new-game            - a match started
	POST /events/layers              - current, next and recent layers
	POST /events/players             - full player roster
	POST /events/player-connected    - one player joined
	POST /events/player-disconnected - one player left, their vote is dropped

Messages from the admin chat channel ("ChatAdmin") may use admin commands.

# Rate Limiting

Chat is limited per player to one command per second with a burst of
three. Excess messages get 429. ChatLimiter.Run forgets idle players.

# Status

	GET /vote                         - phase, choices, counts, auto start
	GET /vote/sessions/{id}/events    - started and ended events of a vote

Vote counts are omitted from the status while the options hide them.
*/
package handlers
