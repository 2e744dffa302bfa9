// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates the game server bridge.

# Bridge Keys

Bridge keys use HMAC-SHA256 over the server id:

	key := auth.GenerateBridgeKey(serverID, salt)
	err := auth.ValidateBridgeKey(serverID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
an operator can derive it once and configure the bridge with it; nothing is
stored. The bridge sends it in the X-Bridge-Key header.
*/
package auth
