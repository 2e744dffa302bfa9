// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package layers filters the read-only layer catalog into the pool a vote
list is drawn from.

# Patterns

Whitelists, blacklists and explicit vote requests use one syntax:

	map[_mode[_version]]

  - map: case-insensitive prefix of the layer id, or "*" for any map
  - mode: case-insensitive prefix of the gamemode; when omitted only
    RAAS, AAS and INVASION match
  - version: compared numerically, a leading "v" is ignored

# Pool Pipeline

BuildPool keeps layers that:

 1. have a layer id and map name
 2. use a whitelisted gamemode
 3. are not on the current or a recently played map
 4. pass the blacklist, or in whitelist mode match the whitelist (and
    optionally still pass the blacklist)
*/
package layers
