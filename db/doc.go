// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The schema is portable between SQLite (default) and PostgreSQL:

	driver, err := db.DriverName(cfg.DatabaseType) // "sqlite" or "postgres"

# Tables

  - layer: Layer catalog, read by catalog.LoadSQL
  - vote_event: "vote started" / "vote ended" records written by votelog.SQLSink

# Indexes

  - layer.map
  - layer.gamemode
  - vote_event.session_id
*/
package db
