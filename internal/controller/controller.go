// Package controller derives discrete UI states from the repository's
// live sequences, one controller per screen. Controllers accept no UI
// framework types: they expose a current state plus a seeded update
// subscription, and intents for query changes and favorite toggles.
// Each controller is scoped to a context; once that context is
// cancelled no further state is emitted.
package controller

import (
	"context"
	"strings"
	"time"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

// DefaultSettleDelay is how long a controller waits before issuing a
// query, so that rapid input coalesces instead of causing a storage
// read per keystroke.
const DefaultSettleDelay = 500 * time.Millisecond

// Repository is the data-layer surface the controllers consume.
type Repository interface {
	AllAirports(ctx context.Context) (<-chan []models.Airport, error)
	AirportsByQuery(ctx context.Context, query string) (<-chan []models.Airport, error)
	AllFavorites(ctx context.Context) (<-chan []models.Favorite, error)
	InsertFavorite(ctx context.Context, favorite models.Favorite) error
	DeleteFavorite(ctx context.Context, favorite models.Favorite) error
	IsFavorite(ctx context.Context, departureCode, destinationCode string) (bool, error)
	SaveSearchQuery(ctx context.Context, query string) error
	SavedSearchQuery(ctx context.Context) (<-chan string, error)
}

// Screen identifies a navigation target for the presentation layer.
type Screen int

const (
	ScreenFavorites Screen = iota
	ScreenAirports
	ScreenRoutes
)

// DestinationFor is the navigation decision driven by the home query:
// a non-blank query routes to the airport search screen, a blank one to
// favorites. It must be re-evaluated on every query change.
func DestinationFor(query string) Screen {
	if strings.TrimSpace(query) != "" {
		return ScreenAirports
	}
	return ScreenFavorites
}

type options struct {
	settleDelay time.Duration
}

// Option configures a controller.
type Option func(*options)

// WithSettleDelay overrides the delay before a controller issues its
// query. Tests use this to shorten the wait.
func WithSettleDelay(d time.Duration) Option {
	return func(o *options) {
		o.settleDelay = d
	}
}

func buildOptions(opts []Option) options {
	o := options{settleDelay: DefaultSettleDelay}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// settle waits out the settle delay. It returns false when ctx is
// cancelled first.
func settle(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// errorMessage extracts a human-readable message from a fault, falling
// back to a screen-specific default.
func errorMessage(err error, fallback string) string {
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
