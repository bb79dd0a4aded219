// Package repository composes the catalog, favorites, and query stores
// behind a single facade. The airport catalog is bundled read-only data
// and is cached in memory after the first successful load; favorites
// and the saved query are mutable and always re-read from their stores.
package repository

import (
	"context"
	"sync"

	"github.com/asteroid-belt/flightdeck/internal/models"
	"github.com/asteroid-belt/flightdeck/internal/stream"
)

// CatalogLoader is the read side of the airport catalog.
type CatalogLoader interface {
	LoadAll(ctx context.Context) ([]models.Airport, error)
}

// FavoritesStore is the mutable favorites table with a live
// subscription to its full contents.
type FavoritesStore interface {
	ObserveAll(ctx context.Context) (<-chan []models.Favorite, error)
	Insert(ctx context.Context, favorite models.Favorite) error
	Delete(ctx context.Context, departureCode, destinationCode string) error
	Exists(ctx context.Context, departureCode, destinationCode string) (bool, error)
}

// QueryStore is the persisted last-search-query slot.
type QueryStore interface {
	Observe(ctx context.Context) (<-chan string, error)
	Set(ctx context.Context, query string) error
}

// Repository is the only consumer of the three stores and the only
// data-layer surface the controllers see.
type Repository struct {
	catalog   CatalogLoader
	favorites FavoritesStore
	queries   QueryStore

	// The catalog cache is written at most once, on the first
	// successful load; the mutex makes concurrent first calls converge
	// on a single storage read. A failed load leaves the cache empty so
	// a later call can retry.
	mu     sync.Mutex
	cached []models.Airport
	loaded bool
}

// New creates a repository over the given stores.
func New(catalog CatalogLoader, favorites FavoritesStore, queries QueryStore) *Repository {
	return &Repository{
		catalog:   catalog,
		favorites: favorites,
		queries:   queries,
	}
}

// airports returns the cached catalog, loading it from storage on the
// first successful call.
func (r *Repository) airports(ctx context.Context) ([]models.Airport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.cached, nil
	}

	airports, err := r.catalog.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	r.cached = airports
	r.loaded = true
	return airports, nil
}

// AllAirports returns a single-shot sequence carrying the full catalog.
// The catalog never changes at runtime, so exactly one value is emitted
// per subscription.
func (r *Repository) AllAirports(ctx context.Context) (<-chan []models.Airport, error) {
	airports, err := r.airports(ctx)
	if err != nil {
		return nil, err
	}
	return stream.Once(airports), nil
}

// AirportsByQuery returns a single-shot sequence carrying the airports
// whose name or IATA code contains the query, case-insensitively. A
// blank query matches the entire catalog; what blank means for
// navigation is the caller's decision.
func (r *Repository) AirportsByQuery(ctx context.Context, query string) (<-chan []models.Airport, error) {
	airports, err := r.airports(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Airport, 0, len(airports))
	for _, a := range airports {
		if a.Matches(query) {
			matched = append(matched, a)
		}
	}
	return stream.Once(matched), nil
}

// AllFavorites returns the favorites store's live sequence: the current
// list first, then one re-emission per mutation.
func (r *Repository) AllFavorites(ctx context.Context) (<-chan []models.Favorite, error) {
	return r.favorites.ObserveAll(ctx)
}

// InsertFavorite saves a favorite route.
func (r *Repository) InsertFavorite(ctx context.Context, favorite models.Favorite) error {
	return r.favorites.Insert(ctx, favorite)
}

// DeleteFavorite removes a favorite route by its natural key.
func (r *Repository) DeleteFavorite(ctx context.Context, favorite models.Favorite) error {
	return r.favorites.Delete(ctx, favorite.DepartureCode, favorite.DestinationCode)
}

// IsFavorite checks whether a route is saved as a favorite.
func (r *Repository) IsFavorite(ctx context.Context, departureCode, destinationCode string) (bool, error) {
	return r.favorites.Exists(ctx, departureCode, destinationCode)
}

// SaveSearchQuery persists the user's search query.
func (r *Repository) SaveSearchQuery(ctx context.Context, query string) error {
	return r.queries.Set(ctx, query)
}

// SavedSearchQuery returns the live sequence of the saved query,
// starting with the last-persisted value or "".
func (r *Repository) SavedSearchQuery(ctx context.Context) (<-chan string, error) {
	return r.queries.Observe(ctx)
}
