// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielhkuo/mapvote/models"
)

// Catalog is an immutable list of layers indexed by id.
type Catalog struct {
	layers []models.Layer
	byID   map[string]int
}

func New(layers []models.Layer) *Catalog {
	c := &Catalog{
		layers: append([]models.Layer(nil), layers...),
		byID:   make(map[string]int, len(layers)),
	}
	for i, l := range c.layers {
		if l.ID == "" {
			continue
		}
		if _, dup := c.byID[l.ID]; !dup {
			c.byID[l.ID] = i
		}
	}
	return c
}

// Layers returns a copy of every layer in catalog order.
func (c *Catalog) Layers() []models.Layer {
	return append([]models.Layer(nil), c.layers...)
}

func (c *Catalog) Find(id string) (models.Layer, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Layer{}, false
	}
	return c.layers[i], true
}

func (c *Catalog) Len() int {
	return len(c.layers)
}

// LoadFile reads a JSON catalog. The file holds either an array of layers or
// an object with a "layers" array.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layers: %w", err)
	}

	var layers []models.Layer
	if err := json.Unmarshal(data, &layers); err != nil {
		var wrapped struct {
			Layers []models.Layer `json:"layers"`
		}
		if err2 := json.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse layers %s: %w", path, err)
		}
		layers = wrapped.Layers
	}
	return New(layers), nil
}

// LoadSQL reads the catalog from the layer table.
func LoadSQL(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, map, gamemode, version, team1_faction, team2_faction
		FROM layer
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query layers: %w", err)
	}
	defer rows.Close()

	var layers []models.Layer
	for rows.Next() {
		var l models.Layer
		if err := rows.Scan(&l.ID, &l.Map, &l.Gamemode, &l.Version, &l.Teams[0].Faction, &l.Teams[1].Faction); err != nil {
			return nil, fmt.Errorf("scan layer: %w", err)
		}
		layers = append(layers, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layers: %w", err)
	}
	return New(layers), nil
}

// Store upserts every layer of c into the layer table in one transaction.
// Layers without an id are skipped.
func (c *Catalog) Store(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, l := range c.layers {
		if l.ID == "" {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO layer (id, map, gamemode, version, team1_faction, team2_faction)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				map = excluded.map,
				gamemode = excluded.gamemode,
				version = excluded.version,
				team1_faction = excluded.team1_faction,
				team2_faction = excluded.team2_faction
		`, l.ID, l.Map, l.Gamemode, l.Version, l.Teams[0].Faction, l.Teams[1].Faction)
		if err != nil {
			return fmt.Errorf("store layer %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit layers: %w", err)
	}
	return nil
}
