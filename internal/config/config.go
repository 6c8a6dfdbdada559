// Package config loads CLI defaults from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	docview "github.com/reoring/docview"
)

// Config holds defaults that command-line flags may override.
type Config struct {
	Format   string `env:"DOCVIEW_FORMAT" envDefault:"json"`
	Indent   string `env:"DOCVIEW_INDENT"`
	Lang     string `env:"DOCVIEW_LANG" envDefault:"en"`
	LogLevel string `env:"DOCVIEW_LOG_LEVEL" envDefault:"warn"`
	// Policies is the default policy file for commands that take --policies.
	Policies string `env:"DOCVIEW_POLICIES"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if _, err := docview.ParseFormat(cfg.Format); err != nil {
		return Config{}, fmt.Errorf("DOCVIEW_FORMAT: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseLevel maps debug/info/warn/error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("DOCVIEW_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}
