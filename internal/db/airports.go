package db

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// GetAllAirports returns the full airport catalog in natural storage
// order. Callers must not depend on the ordering.
func (db *DB) GetAllAirports() ([]models.Airport, error) {
	var airports []models.Airport
	if err := db.Find(&airports).Error; err != nil {
		return nil, fmt.Errorf("read airport catalog: %w", err)
	}
	return airports, nil
}

// GetAirportByCode looks up a single airport by IATA code.
// Returns nil if no airport matches.
func (db *DB) GetAirportByCode(code string) (*models.Airport, error) {
	var airport models.Airport
	err := db.Where("iata_code = ?", code).First(&airport).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &airport, nil
}

// CountAirports returns the number of airports in the catalog.
func (db *DB) CountAirports() (int64, error) {
	var count int64
	err := db.Model(&models.Airport{}).Count(&count).Error
	return count, err
}
