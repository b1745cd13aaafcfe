// Package config reads and writes the workspace configuration and
// randomize recipes.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Dir is the workspace directory holding config, database and plan.
const Dir = ".bestiary"

// ConfigVersion is written by init.
const ConfigVersion = "1"

// Log levels accepted in config.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config represents the flat workspace configuration
type Config struct {
	Version      string `json:"version"`
	DatabasePath string `json:"database_path"`       // relative paths resolve against the workspace root
	LogLevel     string `json:"log_level,omitempty"` // debug, info, warn, error
}

// DefaultConfig returns the configuration init writes.
func DefaultConfig() *Config {
	return &Config{
		Version:      ConfigVersion,
		DatabasePath: filepath.Join(Dir, "session.db"),
		LogLevel:     LogLevelWarn,
	}
}

// LoadConfig reads .bestiary/config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, Dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads the workspace config, falling back to defaults when
// the workspace has not been initialized.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	wsDir := filepath.Join(dir, Dir)
	if err := os.MkdirAll(wsDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s dir: %w", Dir, err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(wsDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("config: database_path is required")
	}
	switch c.LogLevel {
	case "", LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return fmt.Errorf("config: unknown log_level %q", c.LogLevel)
	}
	return nil
}

// DatabaseFile resolves the database path against the workspace root.
func (c *Config) DatabaseFile(dir string) string {
	if c.DatabasePath == ":memory:" || filepath.IsAbs(c.DatabasePath) {
		return c.DatabasePath
	}
	return filepath.Join(dir, c.DatabasePath)
}

// PlanFile is the location of the saved build plan.
func PlanFile(dir string) string {
	return filepath.Join(dir, Dir, "plan.json")
}
