// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port          int    `env:"PORT" envDefault:"3318"`
	DatabaseURL   string `env:"DATABASE_URL" envDefault:"file:mapvote.db"`
	DatabaseType  string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	BridgeKeySalt string `env:"BRIDGE_KEY_SALT"`
	ServerID      string `env:"SERVER_ID" envDefault:"default"`
	OptionsPath   string `env:"MAPVOTE_OPTIONS"`
	LayersPath    string `env:"MAPVOTE_LAYERS"`
	RCONURL       string `env:"RCON_BRIDGE_URL"`
	LogWebhookURL string `env:"LOG_WEBHOOK_URL"`
	Seed          int64  `env:"MAPVOTE_SEED"`
}

// ParseFlags reads the environment, then lets CLI flags override it.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("mapvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.ServerID, "server", cfg.ServerID, "Game server id the bridge key is bound to")

	// Engine inputs
	fs.StringVar(&cfg.OptionsPath, "options", cfg.OptionsPath, "Map vote options JSON file")
	fs.StringVar(&cfg.LayersPath, "layers", cfg.LayersPath, "Layer catalog JSON file (defaults to the layer table)")
	fs.StringVar(&cfg.RCONURL, "rcon", cfg.RCONURL, "RCON bridge URL")
	fs.StringVar(&cfg.LogWebhookURL, "log-webhook", cfg.LogWebhookURL, "Webhook URL for vote logs")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = random)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.BridgeKeySalt, "bridge-salt", cfg.BridgeKeySalt, "Bridge key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.RCONURL == "" {
		return Config{}, errors.New("RCON bridge URL required (use -rcon or RCON_BRIDGE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.BridgeKeySalt == "" {
		return Config{}, errors.New("BRIDGE_KEY_SALT required")
	}

	return cfg, nil
}
