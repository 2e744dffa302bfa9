// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"
)

// Layer filtering modes
const (
	FilterBlacklist = "blacklist"
	FilterWhitelist = "whitelist"
)

// Options is the full map vote configuration surface. JSON keys keep the
// names server operators already use in their config files.
type Options struct {
	CommandPrefix              string      `json:"commandPrefix"`
	AutomaticVoteStart         bool        `json:"automaticVoteStart"`
	VotingDuration             float64     `json:"votingDuration"` // minutes, 0 = unlimited
	MinPlayersForVote          int         `json:"minPlayersForVote"`
	VoteWaitTimeFromMatchStart float64     `json:"voteWaitTimeFromMatchStart"` // minutes
	VoteBroadcastInterval      float64     `json:"voteBroadcastInterval"`      // minutes
	AutomaticSeedingMode       bool        `json:"automaticSeedingMode"`
	NumberRecentMapsToExclude  int         `json:"numberRecentMapsToExlude"`
	GamemodeWhitelist          []string    `json:"gamemodeWhitelist"`
	LayerFilteringMode         string      `json:"layerFilteringMode"`
	LayerLevelWhitelist        []string    `json:"layerLevelWhitelist"`
	LayerLevelBlacklist        []string    `json:"layerLevelBlacklist"`
	ApplyBlacklistToWhitelist  bool        `json:"applyBlacklistToWhitelist"`
	MinRaasEntries             int         `json:"minRaasEntries"`
	HideVotesCount             bool        `json:"hideVotesCount"`
	ShowRerollOption           bool        `json:"showRerollOption"`
	VoteBroadcastMessage       string      `json:"voteBroadcastMessage"`
	VoteWinnerBroadcastMessage string      `json:"voteWinnerBroadcastMessage"`
	AllowedSameMapEntries      int         `json:"allowedSameMapEntries"`
	LogEnabled                 bool        `json:"logToDiscord"`
	LogChannelID               string      `json:"channelID"`
	Timezone                   float64     `json:"timezone"` // hours relative to UTC
	TimeFrames                 []TimeFrame `json:"timeFrames"`
	VoteLengthSeconds          int         `json:"voteLengthSeconds"` // 0 = disabled
}

// Default returns the options used when a config file omits a key.
func Default() Options {
	return Options{
		CommandPrefix:              "!vote",
		AutomaticVoteStart:         true,
		VotingDuration:             0,
		MinPlayersForVote:          40,
		VoteWaitTimeFromMatchStart: 15,
		VoteBroadcastInterval:      7,
		AutomaticSeedingMode:       true,
		NumberRecentMapsToExclude:  4,
		GamemodeWhitelist:          []string{"AAS", "RAAS", "INVASION"},
		LayerFilteringMode:         FilterBlacklist,
		LayerLevelWhitelist:        []string{},
		LayerLevelBlacklist:        []string{},
		ApplyBlacklistToWhitelist:  true,
		MinRaasEntries:             2,
		HideVotesCount:             false,
		ShowRerollOption:           false,
		VoteBroadcastMessage:       "✯ MAPVOTE ✯\nVote for the next map by writing in chat the corresponding number!",
		VoteWinnerBroadcastMessage: "✯ MAPVOTE ✯\nThe winning layer is\n\n",
		AllowedSameMapEntries:      1,
		TimeFrames:                 []TimeFrame{},
	}
}

// MaxOptions is the number of layer slots in a vote list.
func (o Options) MaxOptions() int {
	if o.ShowRerollOption {
		return 5
	}
	return 6
}

// SameMapLimit never drops below one, otherwise no layer could be picked.
func (o Options) SameMapLimit() int {
	if o.AllowedSameMapEntries < 1 {
		return 1
	}
	return o.AllowedSameMapEntries
}

func (o Options) VotingDurationTimeout() time.Duration {
	return minutes(o.VotingDuration)
}

func (o Options) BroadcastInterval() time.Duration {
	return minutes(o.VoteBroadcastInterval)
}

func (o Options) AutoStartDelay() time.Duration {
	return minutes(o.VoteWaitTimeFromMatchStart)
}

func (o Options) VoteLength() time.Duration {
	return time.Duration(o.VoteLengthSeconds) * time.Second
}

func (o Options) WhitelistMode() bool {
	return strings.EqualFold(o.LayerFilteringMode, FilterWhitelist)
}

// Clone returns a deep copy so overrides never write into shared slices.
func (o Options) Clone() Options {
	c := o
	c.GamemodeWhitelist = append([]string(nil), o.GamemodeWhitelist...)
	c.LayerLevelWhitelist = append([]string(nil), o.LayerLevelWhitelist...)
	c.LayerLevelBlacklist = append([]string(nil), o.LayerLevelBlacklist...)
	c.TimeFrames = make([]TimeFrame, len(o.TimeFrames))
	for i, tf := range o.TimeFrames {
		c.TimeFrames[i] = tf.clone()
	}
	return c
}

// Validate checks every time frame window and override key.
func (o Options) Validate() error {
	if strings.TrimSpace(o.CommandPrefix) == "" {
		return fmt.Errorf("commandPrefix is required")
	}
	if !strings.EqualFold(o.LayerFilteringMode, FilterBlacklist) && !o.WhitelistMode() {
		return fmt.Errorf("layerFilteringMode must be %q or %q, got %q", FilterBlacklist, FilterWhitelist, o.LayerFilteringMode)
	}
	for i, tf := range o.TimeFrames {
		if _, err := ParseTimeOfDay(tf.Start); err != nil {
			return fmt.Errorf("time frame %s start: %w", tf.label(i), err)
		}
		if _, err := ParseTimeOfDay(tf.End); err != nil {
			return fmt.Errorf("time frame %s end: %w", tf.label(i), err)
		}
		// every frame must decode on its own, or Resolve fails for all of them
		trial := o.Clone()
		if err := trial.apply(tf.Overrides); err != nil {
			return fmt.Errorf("time frame %s: %w", tf.label(i), err)
		}
	}
	return nil
}

// Parse decodes a JSON config on top of Default and validates it.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Load reads the options file at path. An empty path yields Default.
func Load(path string) (Options, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options file: %w", err)
	}
	return Parse(data)
}

var jsonKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(Options{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

func overridable(key string) bool {
	return key != "timeFrames" && jsonKeys[key]
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
