// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/mapvote/models"
)

// Seeding thresholds by player count.
const (
	seedingMaxPlayers     = 40 // seeding applies below this
	seedingSwitchPlayers  = 5  // switch the running match at or below this
	seedingNextMaxPlayers = 20 // queue a seed layer next below this
)

// seedingLocked steers a nearly empty server onto seed layers. The next
// layer is only touched on a match start.
func (e *Engine) seedingLocked(ctx context.Context, newGame bool) {
	opts := e.opts
	if !opts.AutomaticSeedingMode {
		slog.Debug("seeding mode disabled")
		return
	}
	players := e.server.PlayerCount()
	if players < 1 || players >= seedingMaxPlayers {
		slog.Debug("player count does not allow seeding mode", "players", players)
		return
	}

	seeds := seedLayers(e.catalog.Layers(), opts.LayerLevelBlacklist)
	if len(seeds) == 0 {
		slog.Warn("no seed layers available, seeding skipped")
		return
	}
	pick := seeds[e.rng.Intn(len(seeds))]

	currentID := e.server.CurrentLayer()
	current, ok := e.catalog.Find(currentID)
	switch {
	case !ok:
		slog.Warn("current layer unknown, seeding for current layer skipped", "layer", currentID)
	case !isSeed(current) && players <= seedingSwitchPlayers:
		slog.Info("switching to seeding layer", "layer", pick.ID, "players", players)
		if err := e.admin.SetCurrentMap(ctx, pick.ID); err != nil {
			slog.Error("failed to change layer", "layer", pick.ID, "error", err)
		}
	}

	nextID := e.server.NextLayer()
	next, ok := e.catalog.Find(nextID)
	if !ok {
		slog.Warn("next layer unknown, seeding for next layer skipped", "layer", nextID)
		return
	}
	if !newGame || players >= seedingNextMaxPlayers || isSeed(next) {
		return
	}

	var candidates []models.Layer
	for _, l := range seeds {
		if l.ID != pick.ID && l.ID != currentID {
			candidates = append(candidates, l)
		}
	}
	if len(candidates) == 0 {
		slog.Warn("no second seed layer available, next layer unchanged")
		return
	}
	nextSeed := candidates[e.rng.Intn(len(candidates))]
	slog.Info("queueing seeding layer next", "layer", nextSeed.ID, "players", players)
	if err := e.setNextMapLocked(ctx, nextSeed.ID); err != nil {
		slog.Error("failed to set next layer", "layer", nextSeed.ID, "error", err)
	}
}

// seedLayers lists SEED layers whose id does not start with a blacklist
// entry.
func seedLayers(catalog []models.Layer, blacklist []string) []models.Layer {
	var out []models.Layer
	for _, l := range catalog {
		if l.ID == "" || !isSeed(l) || blacklisted(l.ID, blacklist) {
			continue
		}
		out = append(out, l)
	}
	return out
}

func blacklisted(id string, blacklist []string) bool {
	id = strings.ToLower(id)
	for _, b := range blacklist {
		if b != "" && strings.HasPrefix(id, strings.ToLower(b)) {
			return true
		}
	}
	return false
}

func isSeed(l models.Layer) bool {
	return strings.EqualFold(l.Gamemode, models.GamemodeSeed)
}
