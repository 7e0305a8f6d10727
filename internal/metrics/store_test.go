package metrics

import (
	"os"
	"testing"

	"github.com/jmpark86/fanscore/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary SQLite database for testing.
func setupTestDB(t *testing.T) (MetricsStore, func()) {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "testdb_metrics_*.db")
	require.NoError(t, err)

	db, dbTeardown, err := database.InitDB(tmpfile.Name(), "", "", "../../migrations")
	require.NoError(t, err)

	store := New(db)

	teardown := func() {
		dbTeardown()
		db.Close()
		os.Remove(tmpfile.Name())
	}

	return store, teardown
}

func TestIncrementAndGetAll(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	// 1. Initially, there should be no metrics
	metrics, err := store.GetAll()
	require.NoError(t, err)
	assert.Empty(t, metrics)

	// 2. Increment a new key
	store.Increment("pandascore_calls")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pandascore_calls": 1}, metrics)

	// 3. Increment the same key again
	store.Increment("pandascore_calls")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"pandascore_calls": 2}, metrics)

	// 4. Increment a different key
	store.Increment("livefeed_calls")
	metrics, err = store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		"pandascore_calls": 2,
		"livefeed_calls":   1,
	}, metrics)
}

func TestGet(t *testing.T) {
	store, teardown := setupTestDB(t)
	defer teardown()

	assert.Zero(t, store.Get("missing"))

	store.Increment("livefeed_calls")
	assert.Equal(t, int64(1), store.Get("livefeed_calls"))
}
