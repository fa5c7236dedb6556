// Package config provides configuration loading and validation for appfwlog.
package config

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Inputs are file paths or glob patterns of logs to parse.
	Inputs []string `yaml:"inputs"`

	// YearHint seeds year inference; zero means infer from file metadata
	// or the current clock.
	YearHint int `yaml:"year_hint,omitempty"`

	// Timezone is an IANA timezone name used when converting file
	// metadata times to a calendar year. Empty means UTC.
	Timezone string `yaml:"timezone,omitempty"`

	// Output selects the event rendering: "text" or "json".
	Output string `yaml:"output,omitempty"`

	// Filter is an optional expression; only matching events are emitted.
	Filter string `yaml:"filter,omitempty"`

	// Logging configures the diagnostic logger.
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig controls the diagnostic logger and optional file rotation.
type LoggingConfig struct {
	// Level is "debug", "info", or "warn". Empty means "info".
	Level string `yaml:"level,omitempty"`

	// Path writes diagnostics to a rotating file instead of stderr.
	Path string `yaml:"path,omitempty"`

	// Rotation settings, used only when Path is set.
	MaxSize    int  `yaml:"max_size,omitempty"` // megabytes
	MaxBackups int  `yaml:"max_backups,omitempty"`
	MaxAge     int  `yaml:"max_age,omitempty"` // days
	Compress   bool `yaml:"compress,omitempty"`
}
