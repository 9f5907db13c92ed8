/*
Package config loads application settings from the environment.

All variables are prefixed STOCK_ and every one has a usable default, so
the server starts with no configuration at all: a database, session file
and theme file appear in the data directory.

STOCK_ADMIN_PASSWORD only matters on the very first run, when the
administrator account is provisioned. Leaving it unset makes the server
generate a password and log it once.
*/
package config

import (
	"fmt"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Config is the full application configuration.
type Config struct {
	Addr     string `envconfig:"STOCK_ADDR" default:"127.0.0.1:8080"`
	DataDir  string `envconfig:"STOCK_DATA_DIR" default:"."`
	DBPath   string `envconfig:"STOCK_DB_PATH"`
	Language string `envconfig:"STOCK_LANG" default:"fr"`
	LogLevel string `envconfig:"STOCK_LOG_LEVEL" default:"info"`

	AdminUsername string `envconfig:"STOCK_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"STOCK_ADMIN_PASSWORD"`

	AllowedOrigins []string `envconfig:"STOCK_ALLOWED_ORIGINS" default:"http://localhost:1420,tauri://localhost"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// DatabasePath is the SQLite file location: STOCK_DB_PATH when set,
// otherwise app.db inside the data directory.
func (c *Config) DatabasePath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, "app.db")
}

// SessionPath is the persisted session file location.
func (c *Config) SessionPath() string {
	return filepath.Join(c.DataDir, "session.json")
}

// ThemePath is the UI preference config file location.
func (c *Config) ThemePath() string {
	return filepath.Join(c.DataDir, "config.json")
}
