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

func TestFavorites_NoSavedRoutesIsIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := NewFavorites(ctx, testRepo(t), WithSettleDelay(time.Millisecond))
	updates := c.Updates(ctx)

	waitFor(t, updates, func(s FavoritesState) bool {
		_, ok := s.(FavoritesIdle)
		return ok
	})
}

func TestFavorites_SavedRoutesAreSuccess(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := testRepo(t)
	require.NoError(t, repo.InsertFavorite(ctx, models.Favorite{DepartureCode: "OPO", DestinationCode: "LIS"}))

	c := NewFavorites(ctx, repo, WithSettleDelay(time.Millisecond))
	state := waitFor(t, c.Updates(ctx), func(s FavoritesState) bool {
		_, ok := s.(FavoritesSuccess)
		return ok
	})

	success := state.(FavoritesSuccess)
	require.Len(t, success.Favorites, 1)
	assert.Equal(t, "OPO", success.Favorites[0].DepartureCode)
	assert.NotEmpty(t, success.Airports)

	// The carried catalog resolves codes to airport names.
	index := success.Index()
	assert.Equal(t, "Francisco Sá Carneiro Airport", index["OPO"].Name)
}

func TestFavorites_ReactsToInsert(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := testRepo(t)
	c := NewFavorites(ctx, repo, WithSettleDelay(time.Millisecond))
	updates := c.Updates(ctx)

	waitFor(t, updates, func(s FavoritesState) bool {
		_, ok := s.(FavoritesIdle)
		return ok
	})

	require.NoError(t, repo.InsertFavorite(ctx, models.Favorite{DepartureCode: "ARN", DestinationCode: "WAW"}))

	state := waitFor(t, updates, func(s FavoritesState) bool {
		_, ok := s.(FavoritesSuccess)
		return ok
	})
	assert.Len(t, state.(FavoritesSuccess).Favorites, 1)
}

func TestFavorites_LoadFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeRepo{airportsErr: errors.New("catalog unreadable")}
	c := NewFavorites(ctx, repo, WithSettleDelay(time.Millisecond))

	state := waitFor(t, c.Updates(ctx), func(s FavoritesState) bool {
		_, ok := s.(FavoritesError)
		return ok
	})
	assert.Equal(t, "catalog unreadable", state.(FavoritesError).Message)
}

func TestFavorites_ToggleInsertsThenDeletes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := testRepo(t)
	c := NewFavorites(ctx, repo, WithSettleDelay(time.Millisecond))
	favorite := models.Favorite{DepartureCode: "OPO", DestinationCode: "LIS"}

	c.ToggleFavorite(favorite)
	require.Eventually(t, func() bool {
		saved, err := repo.IsFavorite(ctx, "OPO", "LIS")
		return err == nil && saved
	}, 2*time.Second, 10*time.Millisecond)

	c.ToggleFavorite(favorite)
	require.Eventually(t, func() bool {
		saved, err := repo.IsFavorite(ctx, "OPO", "LIS")
		return err == nil && !saved
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFavorites_ToggleFault(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repo := &fakeRepo{toggleErr: errors.New("disk full")}
	c := NewFavorites(ctx, repo, WithSettleDelay(time.Millisecond))
	updates := c.Updates(ctx)

	c.ToggleFavorite(models.Favorite{DepartureCode: "OPO", DestinationCode: "LIS"})

	state := waitFor(t, updates, func(s FavoritesState) bool {
		_, ok := s.(FavoritesError)
		return ok
	})
	assert.Equal(t, "An error occurred while toggling favorite: disk full", state.(FavoritesError).Message)
}
