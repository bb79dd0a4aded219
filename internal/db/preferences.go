package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// GetPreference retrieves a preference value by key.
// Returns the empty string when the key has never been set.
func (db *DB) GetPreference(key string) (string, error) {
	var pref models.Preference
	err := db.Where("key = ?", key).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

// SetPreference persists a preference value, overwriting any previous
// value for the key.
func (db *DB) SetPreference(key, value string) error {
	pref := models.Preference{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}
