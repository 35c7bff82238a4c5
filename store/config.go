package store

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	defaultDriver = "sqlite"
	defaultDSN    = "sleepline.db"
	defaultTable  = "all_subjects"
)

// Config selects the shared store backend, table, and log verbosity.
type Config struct {
	Driver   string `envconfig:"STORE_DRIVER" default:"sqlite"`
	DSN      string `envconfig:"STORE_DSN" default:"sleepline.db"`
	Table    string `envconfig:"STORE_TABLE" default:"all_subjects"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// FromEnv loads store settings from SLEEPLINE_-prefixed environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("SLEEPLINE", &cfg); err != nil {
		return Config{}, fmt.Errorf("process environment: %w", err)
	}
	return cfg, nil
}

// Level maps the configured name onto a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) withDefaults() Config {
	if c.Driver == "" {
		c.Driver = defaultDriver
	}
	if c.DSN == "" {
		c.DSN = defaultDSN
	}
	if c.Table == "" {
		c.Table = defaultTable
	}
	return c
}
