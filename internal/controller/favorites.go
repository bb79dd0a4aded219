package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/asteroid-belt/flightdeck/internal/log"
	"github.com/asteroid-belt/flightdeck/internal/models"
	"github.com/asteroid-belt/flightdeck/internal/stream"
)

// FavoritesState is the discrete UI state of the favorites screen.
type FavoritesState interface {
	favoritesState()
}

// FavoritesLoading indicates the initial load is in flight.
type FavoritesLoading struct{}

// FavoritesIdle indicates the user has no saved routes. Distinct from
// Success so the presentation layer can show an empty-state hint rather
// than an empty list.
type FavoritesIdle struct{}

// FavoritesSuccess carries the saved routes together with the catalog
// used to resolve their codes to airport names.
type FavoritesSuccess struct {
	Favorites []models.Favorite
	Airports  []models.Airport
}

// FavoritesError carries a human-readable failure message.
type FavoritesError struct {
	Message string
}

func (FavoritesLoading) favoritesState() {}
func (FavoritesIdle) favoritesState()    {}
func (FavoritesSuccess) favoritesState() {}
func (FavoritesError) favoritesState()   {}

// Index returns the IATA-code lookup over the carried catalog.
func (s FavoritesSuccess) Index() map[string]models.Airport {
	return models.AirportIndex(s.Airports)
}

const (
	unknownFaultMessage    = "Unknown error"
	toggleFavoriteMessage  = "An error occurred while toggling favorite: %s"
)

// Favorites drives the favorites screen. It loads once at construction
// and then follows the live favorites sequence.
type Favorites struct {
	repo Repository
	ctx  context.Context

	mu      sync.Mutex
	state   FavoritesState
	updates *stream.Broadcaster[FavoritesState]
}

// NewFavorites creates the favorites controller and starts its load.
func NewFavorites(ctx context.Context, repo Repository, opts ...Option) *Favorites {
	o := buildOptions(opts)
	c := &Favorites{
		repo:    repo,
		ctx:     ctx,
		state:   FavoritesLoading{},
		updates: stream.NewBroadcaster[FavoritesState](),
	}
	go c.load(o.settleDelay)
	return c
}

// State returns the current UI state.
func (c *Favorites) State() FavoritesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates subscribes to state changes, starting with the current state.
func (c *Favorites) Updates(ctx context.Context) <-chan FavoritesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates.Subscribe(ctx, c.state)
}

func (c *Favorites) load(settleDelay time.Duration) {
	if !settle(c.ctx, settleDelay) {
		return
	}

	airports, err := c.repo.AllAirports(c.ctx)
	if err != nil {
		log.Errorf("favorites: error loading data: %v", err)
		c.setState(FavoritesError{Message: errorMessage(err, unknownFaultMessage)})
		return
	}

	favorites, err := c.repo.AllFavorites(c.ctx)
	if err != nil {
		log.Errorf("favorites: error loading data: %v", err)
		c.setState(FavoritesError{Message: errorMessage(err, unknownFaultMessage)})
		return
	}

	combined := stream.CombineLatest(c.ctx, airports, favorites,
		func(airports []models.Airport, favorites []models.Favorite) FavoritesState {
			if len(favorites) == 0 {
				return FavoritesIdle{}
			}
			return FavoritesSuccess{Favorites: favorites, Airports: airports}
		})

	for state := range combined {
		c.setState(state)
	}
}

// ToggleFavorite flips the saved status of a route: saved routes are
// deleted, unsaved ones inserted. The read-then-act pair is not atomic
// against concurrent toggles of the same pair; toggles originate from a
// single user's taps and are serialized by the UI.
func (c *Favorites) ToggleFavorite(favorite models.Favorite) {
	go func() {
		if err := toggleFavorite(c.ctx, c.repo, favorite); err != nil {
			log.Errorf("favorites: error toggling favorite: %v", err)
			c.setState(FavoritesError{
				Message: fmt.Sprintf(toggleFavoriteMessage, errorMessage(err, unknownFaultMessage)),
			})
		}
	}()
}

func (c *Favorites) setState(state FavoritesState) {
	if c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.state = state
	c.updates.Publish(state)
	c.mu.Unlock()
}

// toggleFavorite is the shared read-then-act toggle used by the
// favorites and routes controllers.
func toggleFavorite(ctx context.Context, repo Repository, favorite models.Favorite) error {
	saved, err := repo.IsFavorite(ctx, favorite.DepartureCode, favorite.DestinationCode)
	if err != nil {
		return err
	}
	if saved {
		return repo.DeleteFavorite(ctx, favorite)
	}
	return repo.InsertFavorite(ctx, favorite)
}
