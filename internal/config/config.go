// Package config loads and watches the editor's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every user-tunable setting.
type Config struct {
	// BytesPerLine is the number of bytes rendered per hex row.
	BytesPerLine int `toml:"bytes_per_line"`

	// HistoryLimit caps the number of retained undo records.
	// Zero means unlimited.
	HistoryLimit int `toml:"history_limit"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// LogFile receives log output. Empty disables logging; the
	// terminal owns stderr while the editor runs.
	LogFile string `toml:"log_file"`

	State StateConfig `toml:"state"`
	Theme ThemeConfig `toml:"theme"`
}

// StateConfig controls the persisted session state file.
type StateConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// ThemeConfig names the palette as hex color strings ("#rrggbb").
type ThemeConfig struct {
	Background    string `toml:"background"`
	Foreground    string `toml:"foreground"`
	OffsetColumn  string `toml:"offset_column"`
	Selection     string `toml:"selection"`
	MainSelection string `toml:"main_selection"`
	Cursor        string `toml:"cursor"`
	NullByte      string `toml:"null_byte"`
	NonPrintable  string `toml:"non_printable"`
	StatusBar     string `toml:"status_bar"`
	StatusText    string `toml:"status_text"`
	ErrorText     string `toml:"error_text"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BytesPerLine: 16,
		HistoryLimit: 0,
		LogLevel:     "info",
		State: StateConfig{
			Enabled: true,
			Path:    "",
		},
		Theme: ThemeConfig{
			Background:    "#1d2021",
			Foreground:    "#ebdbb2",
			OffsetColumn:  "#7c6f64",
			Selection:     "#504945",
			MainSelection: "#665c54",
			Cursor:        "#fabd2f",
			NullByte:      "#928374",
			NonPrintable:  "#83a598",
			StatusBar:     "#3c3836",
			StatusText:    "#ebdbb2",
			ErrorText:     "#fb4934",
		},
	}
}

// DefaultPath returns the conventional config file location, or "" when
// the user config directory cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexad", "config.toml")
}

// DefaultStatePath returns the conventional state file location.
func DefaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "hexad", "state.json")
}

// Load reads the file at path, layering it over the defaults. A missing
// file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot run with.
func (c Config) Validate() error {
	if c.BytesPerLine <= 0 {
		return fmt.Errorf("bytes_per_line must be positive, got %d", c.BytesPerLine)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}

// StatePath resolves the state file location, falling back to the
// conventional path when unset.
func (c Config) StatePath() string {
	if !c.State.Enabled {
		return ""
	}
	if c.State.Path != "" {
		return c.State.Path
	}
	return DefaultStatePath()
}
