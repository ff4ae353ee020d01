// Package config loads process configuration from environment
// variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the paths the CLIs need. Flags may override any field.
type Config struct {
	// DBPath is the SQLite file holding run history and mission plans.
	DBPath string `env:"EVA_DB" envDefault:"eva_runs.db"`
	// LogPath is where simulate writes the CSV log.
	LogPath string `env:"EVA_LOG" envDefault:"eva_log.csv"`
	// ModelPath optionally points at a YAML file overriding the
	// embedded transition constants.
	ModelPath string `env:"EVA_MODEL"`
}

// Load parses configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
