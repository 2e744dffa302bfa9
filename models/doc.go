// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types shared by the
vote engine and the host bridge API.

# Request Types

Types for parsing incoming bridge events:

  - ChatEventRequest: player_id, player_name, message, chat
  - LayersEventRequest: current_layer, next_layer, history
  - PlayersEventRequest: player_ids
  - PlayerEventRequest: player_id

# Response Types

  - VoteStatusResponse: phase, choices, voters, auto-start deadline
  - EventAcceptedResponse: accepted
  - ErrorResponse: error, message

# Domain Types

  - Layer: one catalog entry (layerid, map, gamemode, version, teams)
  - Team: faction descriptor
  - VoteEvent: "vote started" / "vote ended" log record

# Constants

Phases:

	PhaseIdle       = "idle"
	PhaseCollecting = "collecting"
	PhaseClosing    = "closing"
	PhaseClosed     = "closed"

Gamemodes with special handling:

	GamemodeRAAS     = "RAAS"
	GamemodeAAS      = "AAS"
	GamemodeInvasion = "INVASION"
	GamemodeSeed     = "SEED"
*/
package models
