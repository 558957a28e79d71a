// Package config loads application settings from UNITUTOR_* environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/abhisek/unitutor/internal/breach"
)

// Config is the process-wide configuration. Command-line flags are applied
// on top by the cmd package.
type Config struct {
	// DBPath is the SQLite database file. Empty means the XDG default.
	DBPath string `env:"UNITUTOR_DB"`

	// LogFile receives structured logs. Empty means next to the database.
	LogFile string `env:"UNITUTOR_LOG_FILE"`

	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `env:"UNITUTOR_LOG_LEVEL" envDefault:"info"`

	Breach BreachConfig
}

// BreachConfig tunes the breach protocol puzzle.
type BreachConfig struct {
	GridSize    int           `env:"UNITUTOR_BREACH_GRID_SIZE" envDefault:"5"`
	BufferSize  int           `env:"UNITUTOR_BREACH_BUFFER_SIZE" envDefault:"8"`
	TimeLimit   int           `env:"UNITUTOR_BREACH_TIME_LIMIT" envDefault:"30"`
	PayoutDelay time.Duration `env:"UNITUTOR_BREACH_PAYOUT_DELAY" envDefault:"1500ms"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Puzzle converts the settings into a validated breach.Config.
func (b BreachConfig) Puzzle() (breach.Config, error) {
	cfg := breach.DefaultConfig()
	cfg.GridSize = b.GridSize
	cfg.BufferSize = b.BufferSize
	cfg.TimeLimit = b.TimeLimit
	cfg.PayoutDelay = b.PayoutDelay
	if err := cfg.Validate(); err != nil {
		return breach.Config{}, err
	}
	return cfg, nil
}
