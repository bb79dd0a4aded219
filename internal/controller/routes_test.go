package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/flightdeck/internal/models"
)

func TestRoutes_SuccessCarriesCatalogAndFavorites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lax := models.Airport{ID: 1, Name: "Los Angeles International Airport", IATACode: "LAX"}
	jfk := models.Airport{ID: 2, Name: "John F. Kennedy International Airport", IATACode: "JFK"}
	repo := &fakeRepo{
		airports:  []models.Airport{lax, jfk},
		favorites: []models.Favorite{{DepartureCode: "LAX", DestinationCode: "JFK"}},
	}

	c := NewRoutes(ctx, repo, WithSettleDelay(time.Millisecond))
	state := waitFor(t, c.Updates(ctx), func(s RoutesState) bool {
		_, ok := s.(RoutesSuccess)
		return ok
	})
	success := state.(RoutesSuccess)

	current, ok := success.Current(1)
	require.True(t, ok)
	assert.Equal(t, "LAX", current.IATACode)

	destinations := success.Destinations(1)
	require.Len(t, destinations, 1)
	assert.Equal(t, "JFK", destinations[0].IATACode)

	assert.True(t, success.IsFavoriteRoute(lax, jfk))
	assert.False(t, success.IsFavoriteRoute(jfk, lax), "favorites are directional")
}

func TestRoutes_NoFavoritesIsStillSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewRoutes(ctx, testRepo(t), WithSettleDelay(time.Millisecond))
	state := waitFor(t, c.Updates(ctx), func(s RoutesState) bool {
		_, ok := s.(RoutesSuccess)
		return ok
	})

	success := state.(RoutesSuccess)
	assert.NotEmpty(t, success.Airports)
	assert.Empty(t, success.Favorites)
}

func TestRoutes_UnknownAirportID(t *testing.T) {
	success := RoutesSuccess{Airports: []models.Airport{{ID: 1, IATACode: "LAX"}}}

	_, ok := success.Current(42)
	assert.False(t, ok)
	assert.Len(t, success.Destinations(42), 1)
}

func TestRoutes_LoadFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeRepo{favoritesErr: errors.New("database is locked")}
	c := NewRoutes(ctx, repo, WithSettleDelay(time.Millisecond))

	state := waitFor(t, c.Updates(ctx), func(s RoutesState) bool {
		_, ok := s.(RoutesError)
		return ok
	})
	assert.Equal(t, "database is locked", state.(RoutesError).Message)
}

func TestRoutes_ToggleReflectedInState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := testRepo(t)
	c := NewRoutes(ctx, repo, WithSettleDelay(time.Millisecond))
	updates := c.Updates(ctx)

	state := waitFor(t, updates, func(s RoutesState) bool {
		_, ok := s.(RoutesSuccess)
		return ok
	})
	success := state.(RoutesSuccess)
	require.GreaterOrEqual(t, len(success.Airports), 2)

	departure, destination := success.Airports[0], success.Airports[1]
	c.ToggleFavorite(models.Favorite{
		DepartureCode:   departure.IATACode,
		DestinationCode: destination.IATACode,
	})

	state = waitFor(t, updates, func(s RoutesState) bool {
		success, ok := s.(RoutesSuccess)
		return ok && success.IsFavoriteRoute(departure, destination)
	})
	assert.Len(t, state.(RoutesSuccess).Favorites, 1)
}
