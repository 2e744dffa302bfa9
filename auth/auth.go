// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
)

// BridgeKeyHeader carries the bridge key on every event request.
const BridgeKeyHeader = "X-Bridge-Key"

var (
	ErrInvalidBridgeKey = errors.New("invalid bridge key")
	ErrMissingBridgeKey = errors.New("missing bridge key")
)

// GenerateBridgeKey creates the HMAC-based key a game server bridge presents.
// This is deterministic and verifiable
func GenerateBridgeKey(serverID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(serverID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateBridgeKey checks if the provided key is valid for the server
func ValidateBridgeKey(serverID, key, salt string) error {
	if key == "" {
		return ErrMissingBridgeKey
	}
	expected := GenerateBridgeKey(serverID, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidBridgeKey
	}
	return nil
}
