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

// AirportsState is the discrete UI state of the airport search screen.
type AirportsState interface {
	airportsState()
}

// AirportsLoading indicates a search is in flight.
type AirportsLoading struct{}

// AirportsSuccess carries the airports matching the query.
type AirportsSuccess struct {
	Airports []models.Airport
}

// AirportsError carries a human-readable failure message. An empty
// result set is reported through this state as a deliberate UI policy,
// not a storage failure.
type AirportsError struct {
	Message string
}

func (AirportsLoading) airportsState() {}
func (AirportsSuccess) airportsState() {}
func (AirportsError) airportsState()   {}

const (
	noAirportsFoundMessage = "No airports found for query: %s"
	unknownErrorMessage    = "Unknown error occurred"
)

// Airports drives the airport search screen.
type Airports struct {
	repo        Repository
	ctx         context.Context
	settleDelay time.Duration

	mu      sync.Mutex
	state   AirportsState
	updates *stream.Broadcaster[AirportsState]
}

// NewAirports creates the airport search controller. Nothing is loaded
// until the first Search call.
func NewAirports(ctx context.Context, repo Repository, opts ...Option) *Airports {
	o := buildOptions(opts)
	return &Airports{
		repo:        repo,
		ctx:         ctx,
		settleDelay: o.settleDelay,
		state:       AirportsLoading{},
		updates:     stream.NewBroadcaster[AirportsState](),
	}
}

// State returns the current UI state.
func (c *Airports) State() AirportsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates subscribes to state changes, starting with the current state.
func (c *Airports) Updates(ctx context.Context) <-chan AirportsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates.Subscribe(ctx, c.state)
}

// Search transitions to Loading, waits out the settle delay, then
// issues the filtered catalog query. Overlapping searches race and the
// last state write wins; superseded loads are not cancelled.
func (c *Airports) Search(query string) {
	c.setState(AirportsLoading{})

	go func() {
		if !settle(c.ctx, c.settleDelay) {
			return
		}

		results, err := c.repo.AirportsByQuery(c.ctx, query)
		if err != nil {
			log.Errorf("airports: error loading airports: %v", err)
			c.setState(AirportsError{Message: errorMessage(err, unknownErrorMessage)})
			return
		}

		for airports := range results {
			if len(airports) == 0 {
				c.setState(AirportsError{Message: fmt.Sprintf(noAirportsFoundMessage, query)})
			} else {
				c.setState(AirportsSuccess{Airports: airports})
			}
		}
	}()
}

func (c *Airports) setState(state AirportsState) {
	if c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.state = state
	c.updates.Publish(state)
	c.mu.Unlock()
}
