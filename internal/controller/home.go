package controller

import (
	"context"
	"sync"

	"github.com/asteroid-belt/flightdeck/internal/log"
	"github.com/asteroid-belt/flightdeck/internal/stream"
)

// Home drives the home screen. Its state is the current query string:
// it adopts every value of the persisted query stream and applies user
// edits optimistically, persisting them in the background.
type Home struct {
	repo Repository
	ctx  context.Context

	mu      sync.Mutex
	query   string
	updates *stream.Broadcaster[string]
}

// NewHome creates the home controller and subscribes it to the saved
// search query.
func NewHome(ctx context.Context, repo Repository) *Home {
	c := &Home{
		repo:    repo,
		ctx:     ctx,
		updates: stream.NewBroadcaster[string](),
	}

	go func() {
		queries, err := c.repo.SavedSearchQuery(c.ctx)
		if err != nil {
			log.Errorf("home: error loading query: %v", err)
			return
		}
		for query := range queries {
			c.adopt(query)
		}
	}()

	return c
}

// Query returns the current query string.
func (c *Home) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Updates subscribes to query changes, starting with the current value.
func (c *Home) Updates(ctx context.Context) <-chan string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.updates.Subscribe(ctx, c.query)
}

// SetQuery applies a user edit immediately and persists it in the
// background. Persistence failures are logged, not surfaced; the local
// value stands.
func (c *Home) SetQuery(query string) {
	c.adopt(query)
	go func() {
		if err := c.repo.SaveSearchQuery(c.ctx, query); err != nil {
			log.Errorf("home: error saving query: %v", err)
		}
	}()
}

// Destination returns the screen the current query routes to.
func (c *Home) Destination() Screen {
	return DestinationFor(c.Query())
}

func (c *Home) adopt(query string) {
	if c.ctx.Err() != nil {
		return
	}
	c.mu.Lock()
	c.query = query
	c.updates.Publish(query)
	c.mu.Unlock()
}
