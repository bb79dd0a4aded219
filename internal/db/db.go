// Package db provides a GORM-based database layer for Flightdeck.
// It uses the pure-Go SQLite driver and ships a preloaded airport
// catalog that is seeded on first open.
package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// ErrStorageUnavailable marks failures to open or read the persisted
// dataset. Callers surface it as an error state; it is never fatal to
// the process.
var ErrStorageUnavailable = errors.New("storage unavailable")

// DB wraps the GORM database connection with Flightdeck-specific operations.
type DB struct {
	*gorm.DB
	path string
}

// Config holds database configuration options.
type Config struct {
	Path        string
	Debug       bool
	MaxIdleConn int
	MaxOpenConn int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		Debug:       false,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
	}
}

// New creates a new database connection, runs migrations, and seeds the
// airport catalog if the table is empty.
func New(cfg Config) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Configure GORM logger
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	// Build DSN with DELETE journal mode for simpler transaction handling
	// (WAL mode has visibility issues with the pure-Go SQLite driver)
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", cfg.Path)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logLevel),
		SkipDefaultTransaction: true, // Better performance for read operations
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", ErrStorageUnavailable)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConn)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConn)
	sqlDB.SetConnMaxLifetime(time.Hour)

	wrapped := &DB{DB: db, path: cfg.Path}

	// Run auto-migrations
	if err := wrapped.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Seed the preloaded airport catalog and default preferences
	// atomically, so a failed first open leaves no partial catalog.
	err = wrapped.Transaction(func(tx *DB) error {
		if err := tx.seedAirports(); err != nil {
			return err
		}
		return tx.seedPreferences()
	})
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	return wrapped, nil
}

// migrate runs GORM auto-migrations for all models.
func (db *DB) migrate() error {
	return db.AutoMigrate(
		&models.Airport{},
		&models.Favorite{},
		&models.Preference{},
	)
}

// seedPreferences inserts default preference rows if not present.
func (db *DB) seedPreferences() error {
	defaults := []models.Preference{
		{Key: models.PreferenceSearchQuery, Value: ""},
	}

	for _, pref := range defaults {
		// Only insert if not exists
		result := db.Where("key = ?", pref.Key).FirstOrCreate(&pref)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction executes a function within a database transaction.
// The callback receives a *DB wrapper that uses the transaction.
// If the callback returns an error, the transaction is rolled back.
// If the callback returns nil, the transaction is committed.
func (d *DB) Transaction(fc func(tx *DB) error) error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		wrappedTx := &DB{DB: tx, path: d.path}
		return fc(wrappedTx)
	})
}
