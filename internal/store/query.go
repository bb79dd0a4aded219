package store

import (
	"context"
	"sync"

	"github.com/asteroid-belt/flightdeck/internal/db"
	"github.com/asteroid-belt/flightdeck/internal/models"
	"github.com/asteroid-belt/flightdeck/internal/stream"
)

// QueryStore persists the user's last search query and exposes a live
// subscription to it. Single scalar, last-write-wins; there is exactly
// one writer (the home controller).
type QueryStore struct {
	db *db.DB

	mu      sync.Mutex
	changes *stream.Broadcaster[string]
}

// NewQueryStore creates a query store over an open database.
func NewQueryStore(database *db.DB) *QueryStore {
	return &QueryStore{
		db:      database,
		changes: stream.NewBroadcaster[string](),
	}
}

// Observe returns a live sequence of the saved query. It starts with
// the last-persisted value, or the empty string when nothing has ever
// been saved, and re-emits on every Set until ctx is cancelled.
func (s *QueryStore) Observe(ctx context.Context) (<-chan string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.db.GetPreference(models.PreferenceSearchQuery)
	if err != nil {
		return nil, err
	}
	return s.changes.Subscribe(ctx, current), nil
}

// Set persists the query immediately and re-emits it to subscribers.
func (s *QueryStore) Set(ctx context.Context, query string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.SetPreference(models.PreferenceSearchQuery, query); err != nil {
		return err
	}
	s.changes.Publish(query)
	return nil
}
