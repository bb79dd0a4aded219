package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asteroid-belt/flightdeck/internal/db"
	"github.com/asteroid-belt/flightdeck/internal/models"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(db.DefaultConfig(dbPath))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// receive reads the next emission or fails the test after a timeout.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed while waiting for emission")
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		panic("unreachable")
	}
}

func TestCatalogStore_LoadAll(t *testing.T) {
	s := NewCatalogStore(testDB(t))

	airports, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, airports)
}

func TestCatalogStore_LoadAllCancelled(t *testing.T) {
	s := NewCatalogStore(testDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.LoadAll(ctx)
	assert.Error(t, err)
}

func TestFavoriteStore_ObserveAllStartsWithCurrentList(t *testing.T) {
	database := testDB(t)
	s := NewFavoriteStore(database)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Insert(ctx, models.Favorite{DepartureCode: "LIS", DestinationCode: "OPO"}))

	ch, err := s.ObserveAll(ctx)
	require.NoError(t, err)

	favorites := receive(t, ch)
	require.Len(t, favorites, 1)
	assert.Equal(t, "LIS", favorites[0].DepartureCode)
	assert.Equal(t, "OPO", favorites[0].DestinationCode)
}

func TestFavoriteStore_ReemitsOnEveryMutation(t *testing.T) {
	s := NewFavoriteStore(testDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.ObserveAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, receive(t, ch))

	require.NoError(t, s.Insert(ctx, models.Favorite{DepartureCode: "LIS", DestinationCode: "OPO"}))
	assert.Len(t, receive(t, ch), 1)

	require.NoError(t, s.Insert(ctx, models.Favorite{DepartureCode: "ZRH", DestinationCode: "AMS"}))
	favorites := receive(t, ch)
	require.Len(t, favorites, 2)
	// Ordered by departure code descending.
	assert.Equal(t, "ZRH", favorites[0].DepartureCode)
	assert.Equal(t, "LIS", favorites[1].DepartureCode)

	require.NoError(t, s.Delete(ctx, "ZRH", "AMS"))
	favorites = receive(t, ch)
	require.Len(t, favorites, 1)
	assert.Equal(t, "LIS", favorites[0].DepartureCode)
}

func TestFavoriteStore_DeleteMissingStillEmits(t *testing.T) {
	s := NewFavoriteStore(testDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.ObserveAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, receive(t, ch))

	// A delete of an absent pair succeeds and re-emits the unchanged list.
	require.NoError(t, s.Delete(ctx, "AAA", "BBB"))
	assert.Empty(t, receive(t, ch))
}

func TestFavoriteStore_Exists(t *testing.T) {
	s := NewFavoriteStore(testDB(t))
	ctx := context.Background()

	exists, err := s.Exists(ctx, "LIS", "OPO")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, s.Insert(ctx, models.Favorite{DepartureCode: "LIS", DestinationCode: "OPO"}))

	exists, err = s.Exists(ctx, "LIS", "OPO")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestQueryStore_ObserveStartsEmpty(t *testing.T) {
	s := NewQueryStore(testDB(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Observe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", receive(t, ch))
}

func TestQueryStore_SetPersistsAndReemits(t *testing.T) {
	database := testDB(t)
	s := NewQueryStore(database)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Observe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", receive(t, ch))

	require.NoError(t, s.Set(ctx, "ab"))
	assert.Equal(t, "ab", receive(t, ch))

	// A fresh subscription starts with the persisted value.
	fresh, err := s.Observe(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ab", receive(t, fresh))
}
