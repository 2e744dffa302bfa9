// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package gamestate

import (
	"fmt"
	"sync"
	"testing"
)

func TestSetLayersTracksHistory(t *testing.T) {
	s := New()

	s.SetLayers("Gorodok_RAAS_v1", "Narva_AAS_v1", nil)
	s.SetLayers("Narva_AAS_v1", "", nil)
	s.SetLayers("Narva_AAS_v1", "Kohat_RAAS_v2", nil)
	s.SetLayers("Kohat_RAAS_v2", "", nil)

	got := fmt.Sprint(s.History())
	if got != "[Narva_AAS_v1 Gorodok_RAAS_v1]" {
		t.Errorf("History() = %s", got)
	}
	if s.CurrentLayer() != "Kohat_RAAS_v2" || s.NextLayer() != "" {
		t.Errorf("current/next = %q/%q", s.CurrentLayer(), s.NextLayer())
	}
}

func TestSetLayersExplicitHistory(t *testing.T) {
	s := New()
	s.SetLayers("A", "B", nil)
	s.SetLayers("C", "D", []string{"X", "Y"})

	if got := fmt.Sprint(s.History()); got != "[X Y]" {
		t.Errorf("History() = %s, want [X Y]", got)
	}
}

func TestHistoryIsBounded(t *testing.T) {
	s := New()
	for i := 0; i < maxHistory+10; i++ {
		s.SetLayers(fmt.Sprintf("L%d", i), "", nil)
	}
	if n := len(s.History()); n != maxHistory {
		t.Errorf("len(History()) = %d, want %d", n, maxHistory)
	}
}

func TestRoster(t *testing.T) {
	s := New()
	s.SetPlayers([]string{"b", "a", "", "c"})
	s.AddPlayer("d")
	s.AddPlayer("")
	s.RemovePlayer("b")

	if got := fmt.Sprint(s.Players()); got != "[a c d]" {
		t.Errorf("Players() = %s, want [a c d]", got)
	}
	if s.PlayerCount() != 3 {
		t.Errorf("PlayerCount() = %d, want 3", s.PlayerCount())
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("p%d", i)
			s.AddPlayer(id)
			s.SetLayers(id, "", nil)
			_ = s.Players()
			_ = s.History()
		}(i)
	}
	wg.Wait()

	if s.PlayerCount() != 20 {
		t.Errorf("PlayerCount() = %d, want 20", s.PlayerCount())
	}
}
