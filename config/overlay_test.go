// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package config

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"06:30", 390, false},
		{"6:05", 365, false},
		{"23:59", 1439, false},
		{"24:00", 1440, false},
		{"24:01", 0, true},
		{"25:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"12", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTimeOfDay) {
					t.Fatalf("ParseTimeOfDay(%q) error = %v, want ErrInvalidTimeOfDay", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimeOfDay(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeFrameActiveAt(t *testing.T) {
	night := TimeFrame{Start: "22:00", End: "06:00"}
	day := TimeFrame{Start: "08:00", End: "18:00"}

	tests := []struct {
		name  string
		frame TimeFrame
		now   time.Time
		want  bool
	}{
		{"wrapping window late evening", night, at(23, 30), true},
		{"wrapping window after midnight", night, at(2, 0), true},
		{"wrapping window noon", night, at(12, 0), false},
		{"wrapping window start inclusive", night, at(22, 0), true},
		{"wrapping window end exclusive", night, at(6, 0), false},
		{"plain window inside", day, at(9, 15), true},
		{"plain window start inclusive", day, at(8, 0), true},
		{"plain window end exclusive", day, at(18, 0), false},
		{"plain window before", day, at(7, 59), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.frame.ActiveAt(MinuteOfDay(tt.now, 0))
			if err != nil {
				t.Fatalf("ActiveAt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ActiveAt(%s) = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestMinuteOfDayTimezone(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		tz   float64
		want int
	}{
		{"utc", at(10, 0), 0, 600},
		{"cest", at(23, 0), 2, 60},
		{"negative offset", at(0, 30), -1, 23*60 + 30},
		{"half hour offset", at(10, 0), 5.5, 15*60 + 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinuteOfDay(tt.now, tt.tz); got != tt.want {
				t.Errorf("MinuteOfDay() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestResolveAppliesActiveOverridesInOrder(t *testing.T) {
	base := Default()
	base.TimeFrames = []TimeFrame{
		{
			Name:  "night",
			Start: "22:00",
			End:   "06:00",
			Overrides: map[string]json.RawMessage{
				"minPlayersForVote": json.RawMessage(`10`),
				"hideVotesCount":    json.RawMessage(`true`),
			},
		},
		{
			Name:  "late night",
			Start: "00:00",
			End:   "04:00",
			Overrides: map[string]json.RawMessage{
				"minPlayersForVote": json.RawMessage(`5`),
				"gamemodeWhitelist": json.RawMessage(`["RAAS"]`),
			},
		},
	}

	t.Run("no frame active", func(t *testing.T) {
		got, err := Resolve(base, base.TimeFrames, at(12, 0))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.MinPlayersForVote != 40 || got.HideVotesCount {
			t.Errorf("expected base options at noon, got min=%d hide=%v", got.MinPlayersForVote, got.HideVotesCount)
		}
	})

	t.Run("single frame active", func(t *testing.T) {
		got, err := Resolve(base, base.TimeFrames, at(23, 30))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.MinPlayersForVote != 10 {
			t.Errorf("MinPlayersForVote = %d, want 10", got.MinPlayersForVote)
		}
		if !got.HideVotesCount {
			t.Error("expected HideVotesCount override")
		}
	})

	t.Run("later frame wins", func(t *testing.T) {
		got, err := Resolve(base, base.TimeFrames, at(2, 0))
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if got.MinPlayersForVote != 5 {
			t.Errorf("MinPlayersForVote = %d, want 5", got.MinPlayersForVote)
		}
		if !got.HideVotesCount {
			t.Error("expected earlier non-conflicting override to survive")
		}
		if len(got.GamemodeWhitelist) != 1 || got.GamemodeWhitelist[0] != "RAAS" {
			t.Errorf("GamemodeWhitelist = %v, want [RAAS]", got.GamemodeWhitelist)
		}
	})

	t.Run("base is never mutated", func(t *testing.T) {
		if _, err := Resolve(base, base.TimeFrames, at(2, 0)); err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if base.MinPlayersForVote != 40 {
			t.Errorf("base MinPlayersForVote mutated to %d", base.MinPlayersForVote)
		}
		if len(base.GamemodeWhitelist) != 3 || base.GamemodeWhitelist[0] != "AAS" {
			t.Errorf("base GamemodeWhitelist mutated to %v", base.GamemodeWhitelist)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		a, _ := Resolve(base, base.TimeFrames, at(2, 0))
		b, _ := Resolve(base, base.TimeFrames, at(2, 0))
		ja, _ := json.Marshal(a)
		jb, _ := json.Marshal(b)
		if string(ja) != string(jb) {
			t.Errorf("Resolve() not idempotent:\n%s\n%s", ja, jb)
		}
	})
}

func TestResolveRejectsUnknownOverride(t *testing.T) {
	base := Default()
	rules := []TimeFrame{{
		Start:     "00:00",
		End:       "24:00",
		Overrides: map[string]json.RawMessage{"timeFrames": json.RawMessage(`[]`)},
	}}

	got, err := Resolve(base, rules, at(10, 0))
	if !errors.Is(err, ErrUnknownOverride) {
		t.Fatalf("Resolve() error = %v, want ErrUnknownOverride", err)
	}
	if got.MinPlayersForVote != base.MinPlayersForVote {
		t.Error("expected base options on error")
	}
}

func TestActiveFrames(t *testing.T) {
	base := Default()
	base.TimeFrames = []TimeFrame{
		{Name: "night", Start: "22:00", End: "06:00"},
		{Start: "00:00", End: "12:00"},
	}

	got := ActiveFrames(base, at(2, 0))
	if len(got) != 2 || got[0] != "night" || got[1] != "2" {
		t.Errorf("ActiveFrames() = %v, want [night 2]", got)
	}
	if got := ActiveFrames(base, at(15, 0)); len(got) != 0 {
		t.Errorf("ActiveFrames() = %v, want none", got)
	}
}
