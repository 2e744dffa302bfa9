// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the map vote server.

The server runs in-game map votes for one game server. A bridge process
on the game server forwards chat and match events over HTTP and executes
the admin commands the engine sends back (warnings, broadcasts, layer
changes).

# Starting the Server

	RCON_BRIDGE_URL=http://localhost:8080 BRIDGE_KEY_SALT=... go run .

Or with flags:

	go run . -p 3318 -rcon http://localhost:8080 -options mapvote.json -layers layers.json

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - RCON_BRIDGE_URL (-rcon): base URL of the RCON bridge
  - BRIDGE_KEY_SALT (--bridge-salt): secret for the bridge key HMAC

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): database connection string
  - SERVER_ID (-server): game server id the bridge key is bound to
  - MAPVOTE_OPTIONS (-options): vote options JSON
  - MAPVOTE_LAYERS (-layers): layer catalog JSON, stored into the layer table
  - LOG_WEBHOOK_URL (-log-webhook): webhook for vote started/ended embeds
  - MAPVOTE_SEED (-seed): fixed random seed

# Architecture

  - session: vote engine (phases, timers, commands, seeding)
  - nominate: vote list generation
  - tally: vote counting and winner selection
  - layers: candidate pool filtering, patterns and labels
  - config: options and time frame overlays
  - scheduler: per-purpose timers
  - catalog, gamestate: layer catalog and last known server state
  - rcon, votelog: outgoing admin commands and vote event logs
  - handlers, router, middleware: the HTTP surface
  - auth, db, cliparse, models: keys, schema, configuration, wire types

See package documentation for each component.
*/
package main
