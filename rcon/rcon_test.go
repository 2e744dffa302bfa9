// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rcon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type bridge struct {
	mu       sync.Mutex
	commands []string
	keys     []string
	status   int
}

func (b *bridge) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != CommandPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req commandRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.commands = append(b.commands, req.Command)
		b.keys = append(b.keys, r.Header.Get("X-Bridge-Key"))
		status := b.status
		b.mu.Unlock()

		if status != 0 {
			http.Error(w, "rcon unavailable", status)
			return
		}
		json.NewEncoder(w).Encode(commandResponse{Response: "ok"})
	}
}

func TestClientCommands(t *testing.T) {
	b := &bridge{}
	srv := httptest.NewServer(b.handler())
	defer srv.Close()

	c := New(srv.URL+"/", "secret", srv.Client())
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want string
	}{
		{"warn", func() error { return c.Warn(ctx, "76561198000000001", "Please vote a valid option") }, `AdminWarn "76561198000000001" Please vote a valid option`},
		{"broadcast", func() error { return c.Broadcast(ctx, "Vote now") }, "AdminBroadcast Vote now"},
		{"change layer", func() error { return c.SetCurrentMap(ctx, "Sumari_Seed_v1") }, "AdminChangeLayer Sumari_Seed_v1"},
		{"next layer", func() error { return c.SetNextMap(ctx, "Narva_RAAS_v1") }, "AdminSetNextLayer Narva_RAAS_v1"},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err != nil {
				t.Fatalf("error = %v", err)
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			if b.commands[i] != tt.want {
				t.Errorf("command = %q, want %q", b.commands[i], tt.want)
			}
			if b.keys[i] != "secret" {
				t.Errorf("X-Bridge-Key = %q", b.keys[i])
			}
		})
	}
}

func TestClientExecuteReply(t *testing.T) {
	srv := httptest.NewServer((&bridge{}).handler())
	defer srv.Close()

	got, err := New(srv.URL, "", nil).Execute(context.Background(), "ShowCurrentMap")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok" {
		t.Errorf("Execute() = %q, want ok", got)
	}
}

func TestClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer((&bridge{status: http.StatusBadGateway}).handler())
	defer srv.Close()

	err := New(srv.URL, "", srv.Client()).SetNextMap(context.Background(), "Narva_RAAS_v1")
	if err == nil {
		t.Fatal("expected an error for a 502")
	}
	if !strings.Contains(err.Error(), "AdminSetNextLayer") || !strings.Contains(err.Error(), "502") {
		t.Errorf("error = %v", err)
	}
}
