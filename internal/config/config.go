// Package config loads process-level configuration from the environment.
// Persistent user preferences live in the store as settings, not here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/julianstephens/hedaya/internal/constants"
	"github.com/julianstephens/hedaya/internal/utils"
)

// Prefix is prepended to every environment variable name.
const Prefix = "HEDAYA"

type Config struct {
	// Store location: SQLite path, *.json file, :memory:, or a postgres:// URL.
	Config string `envconfig:"CONFIG" default:"~/.config/hedaya/hedaya.db"`
	Debug  bool   `envconfig:"DEBUG" default:"false"`
	// debug, info, warn or error; --debug overrides it.
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
	// Overrides the timezone setting stored in the database when set.
	Timezone string `envconfig:"TIMEZONE"`
	// Full Postgres connection string, may include a password. Never logged.
	DBConnection string `envconfig:"DB_CONNECTION"`
}

// Validate checks values that can be checked without touching the store.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Config) == "" {
		return fmt.Errorf("%s_CONFIG must not be empty", Prefix)
	}
	if c.Timezone != "" {
		if !utils.ValidateTimezone(c.Timezone) {
			return fmt.Errorf("%s_TIMEZONE: unknown timezone %q", Prefix, c.Timezone)
		}
	}
	return nil
}

// Load reads HEDAYA_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsPostgres reports whether location is a Postgres connection URL.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// ExpandPath resolves a leading ~ to the user's home directory. Connection
// URLs and the in-memory marker are returned unchanged.
func ExpandPath(location string) (string, error) {
	if IsPostgres(location) || location == constants.MemoryStorePath {
		return location, nil
	}
	if location == "~" || strings.HasPrefix(location, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(location, "~")), nil
	}
	return location, nil
}

// Dir returns the directory used for logs and backups for a store location.
// Non-file backends fall back to the default config directory.
func Dir(location string) (string, error) {
	if IsPostgres(location) || location == constants.MemoryStorePath {
		p, err := ExpandPath(constants.DefaultConfigPath)
		if err != nil {
			return "", err
		}
		return filepath.Dir(p), nil
	}
	p, err := ExpandPath(location)
	if err != nil {
		return "", err
	}
	return filepath.Dir(p), nil
}
