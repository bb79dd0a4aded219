package config

import (
	"os"
	"path/filepath"
)

// Paths contains commonly used file paths.
type Paths struct {
	Database string // Main SQLite database
	Logs     string // Log directory
}

// GetPaths returns all commonly used paths based on config.
func GetPaths(cfg *Config) Paths {
	return Paths{
		Database: filepath.Join(cfg.BaseDir, "flightdeck.db"),
		Logs:     filepath.Join(cfg.BaseDir, "logs"),
	}
}

// DefaultBaseDir returns the default base directory (~/.flightdeck).
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flightdeck"
	}
	return filepath.Join(home, ".flightdeck")
}
