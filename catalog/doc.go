// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog holds the read-only list of layers the server can play.
// It is loaded once at startup from a JSON file or the layer table and
// never mutated by the vote engine.
package catalog
