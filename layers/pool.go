// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package layers

import (
	"strings"

	"github.com/danielhkuo/mapvote/config"
	"github.com/danielhkuo/mapvote/models"
)

// Sanitize drops catalog entries without a layer id or map name.
func Sanitize(catalog []models.Layer) []models.Layer {
	out := make([]models.Layer, 0, len(catalog))
	for _, l := range catalog {
		if l.ID != "" && l.Map != "" {
			out = append(out, l)
		}
	}
	return out
}

// ExcludedMaps lists the current map followed by the n most recently played
// maps. Empty names are skipped.
func ExcludedMaps(current string, recent []string, n int) []string {
	var out []string
	if current != "" {
		out = append(out, current)
	}
	for i, m := range recent {
		if i >= n {
			break
		}
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}

// BuildPool filters the catalog down to the layers eligible for an
// automatic vote under opts.
func BuildPool(catalog []models.Layer, opts config.Options, excluded []string) []models.Layer {
	var pool []models.Layer
	for _, l := range Sanitize(catalog) {
		if !gamemodeAllowed(opts.GamemodeWhitelist, l.Gamemode) {
			continue
		}
		if containsFold(excluded, l.Map) {
			continue
		}
		if !listAllows(opts, l) {
			continue
		}
		pool = append(pool, l)
	}
	return pool
}

// IsRAAS reports whether l counts towards the RAAS quota.
func IsRAAS(l models.Layer) bool {
	return strings.EqualFold(l.Gamemode, models.GamemodeRAAS)
}

func listAllows(opts config.Options, l models.Layer) bool {
	blacklisted := MatchesAny(opts.LayerLevelBlacklist, l)
	if !opts.WhitelistMode() {
		return !blacklisted
	}
	if !MatchesAny(opts.LayerLevelWhitelist, l) {
		return false
	}
	return !(opts.ApplyBlacklistToWhitelist && blacklisted)
}

func gamemodeAllowed(whitelist []string, gamemode string) bool {
	return containsFold(whitelist, gamemode)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
