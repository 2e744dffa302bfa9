// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// DriverName maps a database type to its database/sql driver name.
func DriverName(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite, "":
		return "sqlite", nil
	case TypePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Layer catalog (read-only for the vote engine)
CREATE TABLE IF NOT EXISTS layer (
    id TEXT PRIMARY KEY,
    map TEXT NOT NULL,
    gamemode TEXT NOT NULL,
    version TEXT NOT NULL DEFAULT '',
    team1_faction TEXT NOT NULL DEFAULT '',
    team2_faction TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_layer_map ON layer(map);
CREATE INDEX IF NOT EXISTS idx_layer_gamemode ON layer(gamemode);

-- Vote log
CREATE TABLE IF NOT EXISTS vote_event (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    kind TEXT NOT NULL CHECK (kind IN ('started', 'ended')),
    channel TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_event_session_id ON vote_event(session_id);
`
