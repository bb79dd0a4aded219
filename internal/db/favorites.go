package db

import (
	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// ListFavorites returns all favorite routes ordered by departure code
// descending.
func (db *DB) ListFavorites() ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := db.Order("departure_code DESC").Find(&favorites).Error
	return favorites, err
}

// UpsertFavorite inserts a favorite route, replacing any existing row
// with the same (departure, destination) natural key. Safe to call for
// an already-saved route.
func (db *DB) UpsertFavorite(favorite *models.Favorite) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "departure_code"},
			{Name: "destination_code"},
		},
		UpdateAll: true,
	}).Create(favorite).Error
}

// DeleteFavorite removes a favorite route by its natural key.
// Deleting a route that is not saved is a no-op, not an error.
func (db *DB) DeleteFavorite(departureCode, destinationCode string) error {
	return db.
		Where("departure_code = ? AND destination_code = ?", departureCode, destinationCode).
		Delete(&models.Favorite{}).Error
}

// FavoriteExists checks whether a route is saved as a favorite.
func (db *DB) FavoriteExists(departureCode, destinationCode string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("departure_code = ? AND destination_code = ?", departureCode, destinationCode).
		Count(&count).Error
	return count > 0, err
}

// CountFavorites returns the number of saved favorite routes.
func (db *DB) CountFavorites() (int64, error) {
	var count int64
	err := db.Model(&models.Favorite{}).Count(&count).Error
	return count, err
}
