// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateBridgeKey(t *testing.T) {
	tests := []struct {
		name     string
		serverID string
		salt     string
	}{
		{"basic", "squad-eu-1", "salt1"},
		{"empty server id", "", "salt1"},
		{"long salt", "squad-us-2", strings.Repeat("s", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key1 := GenerateBridgeKey(tt.serverID, tt.salt)
			key2 := GenerateBridgeKey(tt.serverID, tt.salt)

			if key1 != key2 {
				t.Errorf("GenerateBridgeKey() not deterministic: %s != %s", key1, key2)
			}
			if strings.Contains(key1, "=") {
				t.Errorf("GenerateBridgeKey() contains padding: %s", key1)
			}
			if strings.ContainsAny(key1, "+/") {
				t.Errorf("GenerateBridgeKey() is not URL-safe: %s", key1)
			}
		})
	}

	if GenerateBridgeKey("a", "salt") == GenerateBridgeKey("b", "salt") {
		t.Error("different servers produced the same key")
	}
	if GenerateBridgeKey("a", "salt1") == GenerateBridgeKey("a", "salt2") {
		t.Error("different salts produced the same key")
	}
}

func TestValidateBridgeKey(t *testing.T) {
	serverID := "squad-eu-1"
	salt := "test-salt"
	valid := GenerateBridgeKey(serverID, salt)

	tests := []struct {
		name     string
		serverID string
		key      string
		wantErr  error
	}{
		{"valid key", serverID, valid, nil},
		{"wrong key", serverID, "not-the-key", ErrInvalidBridgeKey},
		{"other server", "squad-us-2", valid, ErrInvalidBridgeKey},
		{"missing key", serverID, "", ErrMissingBridgeKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBridgeKey(tt.serverID, tt.key, salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateBridgeKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func BenchmarkGenerateBridgeKey(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateBridgeKey("squad-eu-1", "benchmark-salt")
	}
}
