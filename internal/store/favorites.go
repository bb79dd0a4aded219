package store

import (
	"context"
	"sync"

	"github.com/asteroid-belt/flightdeck/internal/db"
	"github.com/asteroid-belt/flightdeck/internal/log"
	"github.com/asteroid-belt/flightdeck/internal/models"
	"github.com/asteroid-belt/flightdeck/internal/stream"
)

// FavoriteStore manages the favorite routes table and a live
// subscription to its full contents.
type FavoriteStore struct {
	db *db.DB

	// mu serializes mutations and snapshot subscriptions so that every
	// subscriber sees the current list first and then exactly one
	// re-emission per mutation, in mutation order.
	mu      sync.Mutex
	changes *stream.Broadcaster[[]models.Favorite]
}

// NewFavoriteStore creates a favorite store over an open database.
func NewFavoriteStore(database *db.DB) *FavoriteStore {
	return &FavoriteStore{
		db:      database,
		changes: stream.NewBroadcaster[[]models.Favorite](),
	}
}

// ObserveAll returns a live sequence of the full favorites list,
// ordered by departure code descending. The subscription starts with
// the current list and re-emits after every insert or delete until ctx
// is cancelled.
func (s *FavoriteStore) ObserveAll(ctx context.Context) (<-chan []models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.db.ListFavorites()
	if err != nil {
		return nil, err
	}
	return s.changes.Subscribe(ctx, snapshot), nil
}

// Insert saves a favorite route, replacing any existing row with the
// same natural key.
func (s *FavoriteStore) Insert(ctx context.Context, favorite models.Favorite) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.UpsertFavorite(&favorite); err != nil {
		return err
	}
	s.republishLocked()
	return nil
}

// Delete removes a favorite route by natural key. Removing a route that
// is not saved succeeds and changes nothing.
func (s *FavoriteStore) Delete(ctx context.Context, departureCode, destinationCode string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.DeleteFavorite(departureCode, destinationCode); err != nil {
		return err
	}
	s.republishLocked()
	return nil
}

// Exists checks whether a route is saved as a favorite.
func (s *FavoriteStore) Exists(ctx context.Context, departureCode, destinationCode string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return s.db.FavoriteExists(departureCode, destinationCode)
}

// republishLocked re-reads the full list and pushes it to subscribers.
// Caller must hold mu.
func (s *FavoriteStore) republishLocked() {
	favorites, err := s.db.ListFavorites()
	if err != nil {
		// The mutation itself succeeded; subscribers keep their last
		// known list and catch up on the next change.
		log.Errorf("favorites: re-read after mutation failed: %v", err)
		return
	}
	s.changes.Publish(favorites)
}
