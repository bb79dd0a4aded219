// Package store exposes the three persisted collections behind the
// repository: the read-only airport catalog, the mutable favorites
// table, and the saved search query. The favorites and query stores are
// live sources; every mutation re-emits the latest state to all active
// subscribers.
package store

import (
	"context"

	"github.com/asteroid-belt/flightdeck/internal/db"
	"github.com/asteroid-belt/flightdeck/internal/models"
)

// CatalogStore reads the preloaded airport catalog. The catalog has no
// mutation operations; it is bundled data loaded verbatim.
type CatalogStore struct {
	db *db.DB
}

// NewCatalogStore creates a catalog store over an open database.
func NewCatalogStore(database *db.DB) *CatalogStore {
	return &CatalogStore{db: database}
}

// LoadAll performs a single bulk read of the catalog. Ordering of the
// returned slice is natural storage order and is unspecified.
func (s *CatalogStore) LoadAll(ctx context.Context) ([]models.Airport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.db.GetAllAirports()
}
