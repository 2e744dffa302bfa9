// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all process settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Map vote options (prefix, timings, filters, time frames) are not process
settings; they live in the JSON file named by OptionsPath and are loaded by
package config.

# Environment Variables

	PORT             → -p            (default 3318)
	DATABASE_URL     → -d            (default file:mapvote.db)
	DATABASE_TYPE    → -t            (sqlite or postgres)
	SERVER_ID        → -server
	MAPVOTE_OPTIONS  → -options
	MAPVOTE_LAYERS   → -layers
	RCON_BRIDGE_URL  → -rcon
	LOG_WEBHOOK_URL  → -log-webhook
	MAPVOTE_SEED     → -seed
	BRIDGE_KEY_SALT  → -bridge-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - RCON_BRIDGE_URL must be provided
  - BRIDGE_KEY_SALT must be provided
*/
package cliparse
