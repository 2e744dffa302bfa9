// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package nominate

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/danielhkuo/mapvote/config"
	"github.com/danielhkuo/mapvote/layers"
	"github.com/danielhkuo/mapvote/models"
)

// RerollLabel is the text of the reroll pseudo-choice at slot 0.
const RerollLabel = "Reroll vote list with random options"

const (
	autoDraws     = 20
	explicitDraws = 10
)

var (
	ErrTooManyOptions = errors.New("too many options")
	ErrNoCandidates   = errors.New("no candidates")
)

// Params are the request parameters that produced a list. They are kept
// verbatim so a reroll can regenerate with the same inputs.
type Params struct {
	Patterns   []string // explicit layer patterns, empty for an automatic list
	Requester  string   // player id of the admin who asked, "" for automatic
	BypassRAAS bool     // skip the RAAS quota
}

// Explicit reports whether the request named its own patterns.
func (p Params) Explicit() bool {
	return len(p.Patterns) > 0
}

// Clone returns a copy that shares no memory with p.
func (p Params) Clone() Params {
	p.Patterns = append([]string(nil), p.Patterns...)
	return p
}

// Limits are the option values generation depends on.
type Limits struct {
	MaxOptions int
	SameMap    int
	MinRAAS    int
	Reroll     bool
}

// LimitsFrom reads the generation limits from resolved options.
func LimitsFrom(opts config.Options) Limits {
	return Limits{
		MaxOptions: opts.MaxOptions(),
		SameMap:    opts.SameMapLimit(),
		MinRAAS:    opts.MinRaasEntries,
		Reroll:     opts.ShowRerollOption,
	}
}

// Slot is one entry of a vote list.
type Slot struct {
	Reroll bool
	Layer  models.Layer
}

// Label is the text players see for the slot.
func (s Slot) Label() string {
	if s.Reroll {
		return RerollLabel
	}
	return layers.Label(s.Layer)
}

func (s Slot) valid() bool {
	return s.Reroll || s.Layer.ID != ""
}

// List is an ordered vote list. Slots[0] holds the reroll entry when
// enabled and an unvotable placeholder otherwise; layers start at 1.
type List struct {
	Slots []Slot
}

func (l List) Len() int {
	return len(l.Slots)
}

// Valid reports whether index can be voted for.
func (l List) Valid(index int) bool {
	return index >= 0 && index < len(l.Slots) && l.Slots[index].valid()
}

// Mask returns the per-slot validity used to build a tally.
func (l List) Mask() []bool {
	out := make([]bool, len(l.Slots))
	for i := range l.Slots {
		out[i] = l.Slots[i].valid()
	}
	return out
}

// HasReroll reports whether slot 0 is the reroll entry.
func (l List) HasReroll() bool {
	return len(l.Slots) > 0 && l.Slots[0].Reroll
}

// Layers returns the candidate layers in display order.
func (l List) Layers() []models.Layer {
	var out []models.Layer
	for _, s := range l.Slots {
		if !s.Reroll && s.Layer.ID != "" {
			out = append(out, s.Layer)
		}
	}
	return out
}

// Lines renders "index➤ label" for every slot, reroll last. counts may be
// nil to hide vote counts.
func (l List) Lines(counts []int) []string {
	var lines []string
	for i := 1; i < len(l.Slots); i++ {
		lines = append(lines, formatChoice(i, l.Slots[i].Label(), counts))
	}
	if l.HasReroll() {
		lines = append(lines, formatChoice(0, RerollLabel, counts))
	}
	return lines
}

func formatChoice(i int, label string, counts []int) string {
	if counts == nil || i >= len(counts) {
		return fmt.Sprintf("%d➤ %s", i, label)
	}
	return fmt.Sprintf("%d➤ %s (%d)", i, label, counts[i])
}

// Generator draws vote lists. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds one vote list. pool is the filtered automatic pool;
// explicit patterns are resolved against the whole catalog instead. It
// returns ErrNoCandidates when no slot could be filled.
func (g *Generator) Generate(catalog, pool []models.Layer, params Params, lim Limits) (List, error) {
	if lim.MaxOptions <= 0 {
		return List{}, ErrNoCandidates
	}
	var (
		picked []models.Layer
		err    error
	)
	if params.Explicit() {
		picked, err = g.explicit(layers.Sanitize(catalog), params.Patterns, lim)
	} else {
		picked = g.automatic(pool, params.BypassRAAS, lim)
	}
	if err != nil {
		return List{}, err
	}
	if len(picked) == 0 {
		return List{}, ErrNoCandidates
	}

	list := List{Slots: make([]Slot, 0, len(picked)+1)}
	list.Slots = append(list.Slots, Slot{Reroll: lim.Reroll})
	for _, l := range picked {
		list.Slots = append(list.Slots, Slot{Layer: l})
	}
	return list, nil
}

func (g *Generator) automatic(pool []models.Layer, bypass bool, lim Limits) []models.Layer {
	var raas []models.Layer
	for _, l := range pool {
		if layers.IsRAAS(l) {
			raas = append(raas, l)
		}
	}

	var picked []models.Layer
	for slot := 0; slot < lim.MaxOptions; slot++ {
		needRAAS := !bypass && len(raas) > 0 && countRAAS(picked) < lim.MinRAAS
		if needRAAS {
			if l, ok := g.draw(raas, picked, lim.SameMap, autoDraws); ok {
				picked = append(picked, l)
				continue
			}
		}
		if l, ok := g.draw(pool, picked, lim.SameMap, autoDraws); ok {
			picked = append(picked, l)
		}
	}
	return picked
}

func (g *Generator) explicit(catalog []models.Layer, patterns []string, lim Limits) ([]models.Layer, error) {
	if len(patterns) == 1 && layers.ParsePattern(patterns[0]).AnyMap() {
		matches := layers.ParsePattern(patterns[0]).Filter(catalog)
		var picked []models.Layer
		for slot := 0; slot < lim.MaxOptions; slot++ {
			if l, ok := g.draw(matches, picked, lim.SameMap, explicitDraws); ok {
				picked = append(picked, l)
			}
		}
		return picked, nil
	}

	if len(patterns) > lim.MaxOptions {
		return nil, fmt.Errorf("%w: at most %d", ErrTooManyOptions, lim.MaxOptions)
	}
	var picked []models.Layer
	for _, raw := range patterns {
		matches := layers.ParsePattern(raw).Filter(catalog)
		if l, ok := g.draw(matches, picked, lim.SameMap, explicitDraws); ok {
			picked = append(picked, l)
		}
	}
	return picked, nil
}

// draw samples from candidates until it finds a layer that is not already
// picked and whose map is below the same-map limit.
func (g *Generator) draw(candidates, picked []models.Layer, sameMap, tries int) (models.Layer, bool) {
	if len(candidates) == 0 {
		return models.Layer{}, false
	}
	for ; tries > 0; tries-- {
		l := candidates[g.rng.Intn(len(candidates))]
		if accepts(picked, l, sameMap) {
			return l, true
		}
	}
	return models.Layer{}, false
}

func accepts(picked []models.Layer, l models.Layer, sameMap int) bool {
	sameMapCount := 0
	for _, p := range picked {
		if p.ID == l.ID {
			return false
		}
		if strings.EqualFold(p.Map, l.Map) {
			sameMapCount++
		}
	}
	return sameMapCount < sameMap
}

func countRAAS(picked []models.Layer) int {
	n := 0
	for _, l := range picked {
		if layers.IsRAAS(l) {
			n++
		}
	}
	return n
}
