// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package layers

import (
	"strings"

	"github.com/danielhkuo/mapvote/models"
)

var factionTags = map[string]string{
	"United States Army":         "USA",
	"United States Marine Corps": "USMC",
	"Russian Ground Forces":      "RUS",
	"British Army":               "GB",
	"Canadian Army":              "CAF",
	"Australian Defence Force":   "AUS",
	"Irregular Militia Forces":   "IRR",
	"Middle Eastern Alliance":    "MEA",
	"Insurgent Forces":           "INS",
}

// FactionTag abbreviates a faction name. Unknown factions use the
// upper-cased initials of each word.
func FactionTag(faction string) string {
	if tag, ok := factionTags[faction]; ok {
		return tag
	}
	var b strings.Builder
	for _, word := range strings.Fields(faction) {
		r := []rune(word)
		b.WriteRune(r[0])
	}
	return strings.ToUpper(b.String())
}

// Matchup renders both teams, e.g. "USA-RUS".
func Matchup(l models.Layer) string {
	return FactionTag(l.Teams[0].Faction) + "-" + FactionTag(l.Teams[1].Faction)
}

// Label is the human readable form used in broadcasts, e.g.
// "Gorodok RAAS USA-RUS".
func Label(l models.Layer) string {
	return l.Map + " " + l.Gamemode + " " + Matchup(l)
}
