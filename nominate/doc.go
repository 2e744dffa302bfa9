// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package nominate draws the list of layers offered in a map vote.

# Automatic Lists

With no explicit patterns each of MaxOptions slots gets up to 20 random
draws from the pool. A draw is rejected when the layer is already listed or
its map already appears SameMap times. While fewer than MinRAAS RAAS layers
are listed (and the quota is not bypassed) draws come from the RAAS layers
of the pool first. A slot whose draws are all rejected is left out, so a
list can be shorter than MaxOptions.

# Explicit Lists

An admin can name layers with patterns (see package layers):

	!vote start gorodok_raas narva kohat_aas_v2
	!vote start *_invasion

A single "*" pattern fills every slot from its matches. Otherwise each
pattern contributes at most one layer, in order. Explicit patterns are
matched against the whole catalog, not the filtered pool.

# Reroll

When enabled, slot 0 is the reroll entry; winning it regenerates the list
with the same Params.
*/
package nominate
