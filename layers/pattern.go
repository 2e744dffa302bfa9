// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package layers

import (
	"strconv"
	"strings"

	"github.com/danielhkuo/mapvote/models"
)

// standardModes is what a pattern without a mode segment matches.
var standardModes = []string{models.GamemodeRAAS, models.GamemodeAAS, models.GamemodeInvasion}

// Pattern selects layers with the map[_mode[_version]] syntax, e.g.
// "gorodok", "gorodok_raas", "gorodok_aas_v2" or "*_raas".
type Pattern struct {
	Map     string // lower-cased layer id prefix, "*" for any map
	Mode    string // lower-cased gamemode prefix, "" for the standard modes
	Version string // digits only, "" for any version
}

func ParsePattern(s string) Pattern {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "_")
	p := Pattern{Map: parts[0]}
	if len(parts) > 1 {
		p.Mode = parts[1]
	}
	if len(parts) > 2 {
		p.Version = stripVersion(parts[2])
	}
	return p
}

// AnyMap reports whether the map segment is the "*" wildcard.
func (p Pattern) AnyMap() bool {
	return p.Map == "*"
}

func (p Pattern) Matches(l models.Layer) bool {
	if !p.AnyMap() && !strings.HasPrefix(strings.ToLower(l.ID), p.Map) {
		return false
	}
	if p.Mode == "" {
		if !isStandardMode(l.Gamemode) {
			return false
		}
	} else if !strings.HasPrefix(strings.ToLower(l.Gamemode), p.Mode) {
		return false
	}
	if p.Version != "" {
		want, err := strconv.Atoi(p.Version)
		if err != nil {
			return false
		}
		got, err := strconv.Atoi(stripVersion(l.Version))
		if err != nil || got != want {
			return false
		}
	}
	return true
}

// Filter returns the layers matching p, preserving catalog order.
func (p Pattern) Filter(catalog []models.Layer) []models.Layer {
	var out []models.Layer
	for _, l := range catalog {
		if p.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

// MatchesAny reports whether any of the raw patterns matches l.
func MatchesAny(patterns []string, l models.Layer) bool {
	for _, raw := range patterns {
		if ParsePattern(raw).Matches(l) {
			return true
		}
	}
	return false
}

func isStandardMode(gamemode string) bool {
	for _, m := range standardModes {
		if strings.EqualFold(gamemode, m) {
			return true
		}
	}
	return false
}

func stripVersion(v string) string {
	return strings.NewReplacer("v", "", "V", "").Replace(strings.TrimSpace(v))
}
