// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/mapvote/auth"
	"github.com/danielhkuo/mapvote/cliparse"
	"github.com/danielhkuo/mapvote/db"
	"github.com/danielhkuo/mapvote/models"
	_ "modernc.org/sqlite"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		BridgeKeySalt: "test-bridge-salt",
		ServerID:      "test-server",
		RCONURL:       "http://127.0.0.1:0",
	}
}

// BridgeHeaders returns the headers an authenticated bridge request carries.
func BridgeHeaders(cfg cliparse.Config) map[string]string {
	return map[string]string{"X-Bridge-Key": auth.GenerateBridgeKey(cfg.ServerID, cfg.BridgeKeySalt)}
}

// InsertLayers writes layers into the layer table.
func InsertLayers(t *testing.T, conn *sql.DB, layers []models.Layer) {
	t.Helper()

	for _, l := range layers {
		_, err := conn.Exec(`
			INSERT INTO layer (id, map, gamemode, version, team1_faction, team2_faction)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, l.ID, l.Map, l.Gamemode, l.Version, l.Teams[0].Faction, l.Teams[1].Faction)
		if err != nil {
			t.Fatalf("Failed to insert layer %s: %v", l.ID, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
