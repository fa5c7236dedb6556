package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/appfwlog/appfwlog/pkg/filter"
)

// DefaultConfig returns a configuration with default values applied.
func DefaultConfig() *Config {
	return &Config{
		Output: "text",
		Logging: LoggingConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if len(cfg.Inputs) == 0 {
		return errors.New("inputs: at least one log file or glob is required")
	}

	if cfg.YearHint < 0 {
		return fmt.Errorf("year_hint: must not be negative, got %d", cfg.YearHint)
	}

	if _, err := cfg.Location(); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}

	switch cfg.Output {
	case "", "text", "json":
	default:
		return fmt.Errorf("output: must be \"text\" or \"json\", got %q", cfg.Output)
	}

	if cfg.Filter != "" {
		if _, err := filter.Compile(cfg.Filter); err != nil {
			return fmt.Errorf("filter: %w", err)
		}
	}

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn":
	default:
		return fmt.Errorf("logging.level: unknown level %q", cfg.Logging.Level)
	}

	return nil
}

// Location resolves the configured timezone, defaulting to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
