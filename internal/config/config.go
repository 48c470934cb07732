// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataFile is the JSON document holding roster, submissions and live state.
	DataFile string `koanf:"data_file"`

	// Judges lists the fixed judge panel. Env form is comma separated.
	Judges []string `koanf:"judges"`

	// AllowedOrigins lists CORS origins for browser clients polling the API.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// MetricsEnabled toggles Prometheus collection.
	MetricsEnabled bool `koanf:"metrics_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":9080",
		DataFile:       "judgeboard.json",
		Judges:         []string{"J1", "J2", "J3"},
		AllowedOrigins: []string{"*"},
		MetricsEnabled: true,
	}
}

// Validate checks the invariants the rest of the service relies on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
	}
	if len(c.Judges) == 0 {
		return fmt.Errorf("%w: judges must not be empty", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Judges))
	for _, j := range c.Judges {
		j = strings.TrimSpace(j)
		if j == "" {
			return fmt.Errorf("%w: judges must not contain blank roles", ErrInvalidConfig)
		}
		if _, dup := seen[j]; dup {
			return fmt.Errorf("%w: duplicate judge role %q", ErrInvalidConfig, j)
		}
		seen[j] = struct{}{}
	}
	return nil
}
