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

// RoutesState is the discrete UI state of the routes screen.
type RoutesState interface {
	routesState()
}

// RoutesLoading indicates the initial load is in flight.
type RoutesLoading struct{}

// RoutesSuccess carries the catalog and the saved routes. There is no
// Idle variant here: absence of favorites is shown by the presentation
// layer, not modeled as a distinct state.
type RoutesSuccess struct {
	Airports  []models.Airport
	Favorites []models.Favorite

	routes map[models.RouteKey]struct{}
}

// RoutesError carries a human-readable failure message.
type RoutesError struct {
	Message string
}

func (RoutesLoading) routesState() {}
func (RoutesSuccess) routesState() {}
func (RoutesError) routesState()   {}

// Current returns the airport the routes are drawn from.
func (s RoutesSuccess) Current(airportID int64) (models.Airport, bool) {
	for _, a := range s.Airports {
		if a.ID == airportID {
			return a, true
		}
	}
	return models.Airport{}, false
}

// Destinations returns every airport other than the current one, in
// catalog order. Each is a candidate route from the current airport.
func (s RoutesSuccess) Destinations(airportID int64) []models.Airport {
	destinations := make([]models.Airport, 0, len(s.Airports))
	for _, a := range s.Airports {
		if a.ID != airportID {
			destinations = append(destinations, a)
		}
	}
	return destinations
}

// IsFavoriteRoute reports whether the departure→destination route is a
// saved favorite.
func (s RoutesSuccess) IsFavoriteRoute(departure, destination models.Airport) bool {
	routes := s.routes
	if routes == nil {
		routes = models.RouteSet(s.Favorites)
	}
	_, ok := routes[models.RouteKey{
		Departure:   departure.IATACode,
		Destination: destination.IATACode,
	}]
	return ok
}

// Routes drives the routes screen for a selected airport. It loads once
// at construction and then follows the live favorites sequence.
type Routes struct {
	repo Repository
	ctx  context.Context

	mu      sync.Mutex
	state   RoutesState
	updates *stream.Broadcaster[RoutesState]
}

// NewRoutes creates the routes controller and starts its load.
func NewRoutes(ctx context.Context, repo Repository, opts ...Option) *Routes {
	o := buildOptions(opts)
	c := &Routes{
		repo:    repo,
		ctx:     ctx,
		state:   RoutesLoading{},
		updates: stream.NewBroadcaster[RoutesState](),
	}
	go c.load(o.settleDelay)
	return c
}

// State returns the current UI state.
func (c *Routes) State() RoutesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates subscribes to state changes, starting with the current state.
func (c *Routes) Updates(ctx context.Context) <-chan RoutesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates.Subscribe(ctx, c.state)
}

func (c *Routes) load(settleDelay time.Duration) {
	if !settle(c.ctx, settleDelay) {
		return
	}

	airports, err := c.repo.AllAirports(c.ctx)
	if err != nil {
		log.Errorf("routes: error loading data: %v", err)
		c.setState(RoutesError{Message: errorMessage(err, unknownFaultMessage)})
		return
	}

	favorites, err := c.repo.AllFavorites(c.ctx)
	if err != nil {
		log.Errorf("routes: error loading data: %v", err)
		c.setState(RoutesError{Message: errorMessage(err, unknownFaultMessage)})
		return
	}

	combined := stream.CombineLatest(c.ctx, airports, favorites,
		func(airports []models.Airport, favorites []models.Favorite) RoutesState {
			return RoutesSuccess{
				Airports:  airports,
				Favorites: favorites,
				routes:    models.RouteSet(favorites),
			}
		})

	for state := range combined {
		c.setState(state)
	}
}

// ToggleFavorite flips the saved status of a route, as on the favorites
// screen.
func (c *Routes) ToggleFavorite(favorite models.Favorite) {
	go func() {
		if err := toggleFavorite(c.ctx, c.repo, favorite); err != nil {
			log.Errorf("routes: error toggling favorite: %v", err)
			c.setState(RoutesError{
				Message: fmt.Sprintf(toggleFavoriteMessage, errorMessage(err, unknownFaultMessage)),
			})
		}
	}()
}

func (c *Routes) setState(state RoutesState) {
	if c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.state = state
	c.updates.Publish(state)
	c.mu.Unlock()
}
