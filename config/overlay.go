// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrUnknownOverride  = errors.New("unknown override key")
)

const minutesPerDay = 24 * 60

// TimeFrame overrides options while the local time of day is inside
// [Start, End). A window with Start after End wraps past midnight.
type TimeFrame struct {
	Name      string                     `json:"name,omitempty"`
	Start     string                     `json:"start"`
	End       string                     `json:"end"`
	Overrides map[string]json.RawMessage `json:"overrides"`
}

func (tf TimeFrame) label(i int) string {
	if tf.Name != "" {
		return tf.Name
	}
	return strconv.Itoa(i + 1)
}

func (tf TimeFrame) clone() TimeFrame {
	c := tf
	if tf.Overrides != nil {
		c.Overrides = make(map[string]json.RawMessage, len(tf.Overrides))
		for k, v := range tf.Overrides {
			c.Overrides[k] = append(json.RawMessage(nil), v...)
		}
	}
	return c
}

// ActiveAt reports whether the window contains minute (minutes since midnight).
func (tf TimeFrame) ActiveAt(minute int) (bool, error) {
	start, err := ParseTimeOfDay(tf.Start)
	if err != nil {
		return false, err
	}
	end, err := ParseTimeOfDay(tf.End)
	if err != nil {
		return false, err
	}
	if start <= minute && minute < end {
		return true, nil
	}
	return start > end && (minute >= start || minute < end), nil
}

// ParseTimeOfDay parses "HH:MM" into minutes since midnight. "24:00" is
// accepted as an end-of-day bound.
func ParseTimeOfDay(s string) (int, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return h*60 + m, nil
}

// MinuteOfDay converts now to minutes since midnight at the UTC offset tz (hours).
func MinuteOfDay(now time.Time, tz float64) int {
	local := now.UTC().Add(time.Duration(tz * float64(time.Hour)))
	return (local.Hour()*60 + local.Minute()) % minutesPerDay
}

// Resolve merges the overrides of every rule active at now over a fresh copy
// of base. Rules apply in declared order, so later rules win on conflicting
// keys. The result keeps base's rules so it can be resolved again.
func Resolve(base Options, rules []TimeFrame, now time.Time) (Options, error) {
	resolved := base.Clone()
	minute := MinuteOfDay(now, base.Timezone)

	for i, tf := range rules {
		active, err := tf.ActiveAt(minute)
		if err != nil {
			return base.Clone(), fmt.Errorf("time frame %s: %w", tf.label(i), err)
		}
		if !active {
			continue
		}
		if err := resolved.apply(tf.Overrides); err != nil {
			return base.Clone(), fmt.Errorf("time frame %s: %w", tf.label(i), err)
		}
	}

	resolved.TimeFrames = base.Clone().TimeFrames
	return resolved, nil
}

// ActiveFrames names the rules active at now, using 1-based ids for
// unnamed rules.
func ActiveFrames(base Options, now time.Time) []string {
	minute := MinuteOfDay(now, base.Timezone)
	var names []string
	for i, tf := range base.TimeFrames {
		if ok, err := tf.ActiveAt(minute); err == nil && ok {
			names = append(names, tf.label(i))
		}
	}
	return names
}

func (o *Options) apply(overrides map[string]json.RawMessage) error {
	if len(overrides) == 0 {
		return nil
	}
	for key := range overrides {
		if !overridable(key) {
			return fmt.Errorf("%w: %s", ErrUnknownOverride, key)
		}
	}
	raw, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encode overrides: %w", err)
	}
	if err := json.Unmarshal(raw, o); err != nil {
		return fmt.Errorf("apply overrides: %w", err)
	}
	return nil
}
