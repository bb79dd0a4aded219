// Package config handles application configuration management.
package config

import "os"

// Config holds all application configuration.
type Config struct {
	// Base directory for all Flightdeck data (~/.flightdeck)
	BaseDir string

	// Debug enables verbose database logging
	Debug bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),
	}
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if dir := os.Getenv("FLIGHTDECK_HOME"); dir != "" {
		cfg.BaseDir = dir
	}

	if os.Getenv("FLIGHTDECK_DEBUG") != "" {
		cfg.Debug = true
	}

	// Ensure directories exist
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureDirectories creates required directories if they don't exist.
func ensureDirectories(cfg *Config) error {
	dirs := []string{
		cfg.BaseDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
