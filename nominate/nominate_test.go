// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nominate

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/danielhkuo/mapvote/layers"
	"github.com/danielhkuo/mapvote/models"
)

func layer(id, mapName, mode string) models.Layer {
	return models.Layer{
		ID:       id,
		Map:      mapName,
		Gamemode: mode,
		Version:  "v1",
		Teams:    [2]models.Team{{Faction: "British Army"}, {Faction: "Insurgent Forces"}},
	}
}

var catalog = []models.Layer{
	layer("Gorodok_RAAS_v1", "Gorodok", "RAAS"),
	layer("Gorodok_AAS_v1", "Gorodok", "AAS"),
	layer("Narva_RAAS_v1", "Narva", "RAAS"),
	layer("Narva_AAS_v1", "Narva", "AAS"),
	layer("Sumari_AAS_v1", "Sumari", "AAS"),
	layer("Sumari_Invasion_v1", "Sumari", "Invasion"),
	layer("Kohat_AAS_v1", "Kohat", "AAS"),
	layer("Kohat_RAAS_v1", "Kohat", "RAAS"),
	layer("Mutaha_AAS_v1", "Mutaha", "AAS"),
	layer("Fallujah_Invasion_v1", "Fallujah", "Invasion"),
	layer("Mestia_AAS_v1", "Mestia", "AAS"),
	layer("Skorpo_AAS_v1", "Skorpo", "AAS"),
	layer("Lashkar_Seed_v1", "Lashkar", "Seed"),
}

var defaultLimits = Limits{MaxOptions: 6, SameMap: 1, MinRAAS: 2}

func TestGenerateAutomaticSameMapLimit(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		list, err := g.Generate(catalog, catalog, Params{}, defaultLimits)
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}
		seen := map[string]bool{}
		for _, l := range list.Layers() {
			if seen[l.Map] {
				t.Fatalf("seed %d: map %s offered twice: %v", seed, l.Map, list.Lines(nil))
			}
			seen[l.Map] = true
		}
	}
}

func TestGenerateAutomaticRAASQuota(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		list, err := g.Generate(catalog, catalog, Params{}, defaultLimits)
		if err != nil {
			t.Fatalf("seed %d: Generate() error = %v", seed, err)
		}
		if n := countRAAS(list.Layers()); n < 2 {
			t.Fatalf("seed %d: %d RAAS entries, want at least 2", seed, n)
		}
	}
}

func TestGenerateAutomaticBypassRAAS(t *testing.T) {
	pool := []models.Layer{
		layer("Gorodok_RAAS_v1", "Gorodok", "RAAS"),
		layer("Narva_AAS_v1", "Narva", "AAS"),
	}
	lim := Limits{MaxOptions: 1, SameMap: 1, MinRAAS: 2}

	sawAAS := false
	for seed := int64(0); seed < 50 && !sawAAS; seed++ {
		g := NewGenerator(rand.New(rand.NewSource(seed)))
		list, err := g.Generate(pool, pool, Params{BypassRAAS: true}, lim)
		if err != nil {
			t.Fatal(err)
		}
		sawAAS = !layers.IsRAAS(list.Layers()[0])
	}
	if !sawAAS {
		t.Error("bypassed quota never produced a non-RAAS first slot")
	}
}

func TestGenerateAutomaticShortPool(t *testing.T) {
	pool := []models.Layer{
		layer("Gorodok_RAAS_v1", "Gorodok", "RAAS"),
		layer("Gorodok_AAS_v1", "Gorodok", "AAS"),
		layer("Narva_AAS_v1", "Narva", "AAS"),
	}
	g := NewGenerator(rand.New(rand.NewSource(3)))

	list, err := g.Generate(pool, pool, Params{}, defaultLimits)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got := len(list.Layers()); got != 2 {
		t.Errorf("got %d layers, want 2 (one per map)", got)
	}
}

func TestGenerateEmptyPool(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	_, err := g.Generate(catalog, nil, Params{}, defaultLimits)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Generate(empty pool) error = %v, want ErrNoCandidates", err)
	}
}

func TestGenerateExplicit(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))

	list, err := g.Generate(catalog, nil, Params{Patterns: []string{"narva_aas", "kohat_raas", "nothing_here"}}, defaultLimits)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	got := list.Layers()
	if len(got) != 2 || got[0].ID != "Narva_AAS_v1" || got[1].ID != "Kohat_RAAS_v1" {
		t.Errorf("explicit layers = %v, want [Narva_AAS_v1 Kohat_RAAS_v1]", got)
	}
}

func TestGenerateExplicitTooManyOptions(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	lim := Limits{MaxOptions: 5, SameMap: 1, Reroll: true}

	patterns := []string{"gorodok", "narva", "sumari", "kohat", "mutaha", "mestia"}
	_, err := g.Generate(catalog, nil, Params{Patterns: patterns}, lim)
	if !errors.Is(err, ErrTooManyOptions) {
		t.Errorf("Generate() error = %v, want ErrTooManyOptions", err)
	}
}

func TestGenerateExplicitWildcard(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(9)))

	list, err := g.Generate(catalog, nil, Params{Patterns: []string{"*_aas"}}, defaultLimits)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	got := list.Layers()
	if len(got) == 0 || len(got) > defaultLimits.MaxOptions {
		t.Fatalf("wildcard produced %d layers", len(got))
	}
	maps := map[string]bool{}
	for _, l := range got {
		if l.Gamemode != "AAS" {
			t.Errorf("wildcard *_aas picked %s", l.ID)
		}
		if maps[l.Map] {
			t.Errorf("wildcard picked map %s twice", l.Map)
		}
		maps[l.Map] = true
	}
}

func TestGenerateExplicitNoMatch(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	_, err := g.Generate(catalog, nil, Params{Patterns: []string{"atlantis"}}, defaultLimits)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("Generate() error = %v, want ErrNoCandidates", err)
	}
}

func TestListRerollSlot(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(1)))
	lim := Limits{MaxOptions: 5, SameMap: 1, MinRAAS: 2, Reroll: true}

	list, err := g.Generate(catalog, catalog, Params{}, lim)
	if err != nil {
		t.Fatal(err)
	}
	if !list.HasReroll() || !list.Valid(0) {
		t.Error("slot 0 should be a votable reroll entry")
	}
	if list.Len() != 6 {
		t.Errorf("list length = %d, want 6", list.Len())
	}
	lines := list.Lines(nil)
	if last := lines[len(lines)-1]; last != "0➤ "+RerollLabel {
		t.Errorf("last line = %q, want reroll entry", last)
	}
}

func TestListWithoutReroll(t *testing.T) {
	list := List{Slots: []Slot{{}, {Layer: catalog[0]}, {Layer: catalog[3]}}}

	if list.Valid(0) {
		t.Error("placeholder slot 0 should not be votable")
	}
	if fmt.Sprint(list.Mask()) != "[false true true]" {
		t.Errorf("Mask() = %v", list.Mask())
	}

	lines := list.Lines([]int{0, 4, 1})
	want := []string{
		"1➤ Gorodok RAAS GB-INS (4)",
		"2➤ Narva AAS GB-INS (1)",
	}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Errorf("Lines() = %q, want %q", lines, want)
	}
}

func TestParamsClone(t *testing.T) {
	p := Params{Patterns: []string{"gorodok"}, Requester: "steam1", BypassRAAS: true}
	c := p.Clone()
	c.Patterns[0] = "narva"
	if p.Patterns[0] != "gorodok" {
		t.Error("Clone() shares the pattern slice")
	}
}
