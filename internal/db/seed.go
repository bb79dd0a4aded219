package db

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// airportData is the preloaded airport catalog shipped with the
// application, the equivalent of distributing a prepopulated database
// file. It is loaded verbatim into the airport table on first open and
// never mutated afterwards.
//
//go:embed airports.json
var airportData []byte

// seedAirports populates the airport table from the embedded catalog.
// It runs only when the table is empty, so an already-seeded database
// is left untouched.
func (db *DB) seedAirports() error {
	count, err := db.CountAirports()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var airports []models.Airport
	if err := json.Unmarshal(airportData, &airports); err != nil {
		return fmt.Errorf("decode embedded catalog: %w", ErrStorageUnavailable)
	}
	if len(airports) == 0 {
		return fmt.Errorf("embedded catalog is empty: %w", ErrStorageUnavailable)
	}

	return db.CreateInBatches(airports, 50).Error
}
