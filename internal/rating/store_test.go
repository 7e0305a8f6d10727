package rating_test

import (
	"database/sql"
	"testing"

	"github.com/jmpark86/fanscore/internal/database"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (rating.RatingStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := rating.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func insertMatch(t *testing.T, db *sql.DB, matchID string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO matches (id, league, season, date, status, home_id, home_name, home_code, home_logo, home_score, away_id, away_name, away_code, away_logo, away_score, games_json)
		VALUES (?, 'LCK', 'Summer', '2026-08-29 17:00', 'FINISHED', 'h', 'Home', 'H', '', 0, 'a', 'Away', 'A', '', 0, '[]')
	`, matchID)
	require.NoError(t, err)
}

func TestSubmitAggregates(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	require.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 8.0))

	stats, err := store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, stats["Faker"].Sum)
	assert.Equal(t, 1, stats["Faker"].Count)
	assert.Equal(t, 8.0, stats["Faker"].Average)

	require.NoError(t, store.Submit("userB", "M1", "g1", "Faker", 6.0))

	stats, err = store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Equal(t, 14.0, stats["Faker"].Sum)
	assert.Equal(t, 2, stats["Faker"].Count)
	assert.Equal(t, 7.0, stats["Faker"].Average)

	// An edit shifts the sum by new-old and leaves the count unchanged.
	require.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 9.0))

	stats, err = store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Equal(t, 15.0, stats["Faker"].Sum)
	assert.Equal(t, 2, stats["Faker"].Count)
	assert.Equal(t, 7.5, stats["Faker"].Average)
}

func TestSubmitNoDoubleCounting(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	require.NoError(t, store.Submit("userA", "M1", "g1", "Oner", 7.0))
	require.NoError(t, store.Submit("userA", "M1", "g1", "Oner", 7.0))
	require.NoError(t, store.Submit("userA", "M1", "g1", "Oner", 7.0))

	stats, err := store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Equal(t, 7.0, stats["Oner"].Sum)
	assert.Equal(t, 1, stats["Oner"].Count)
}

func TestSubmitValidation(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	assert.ErrorIs(t, store.Submit("userA", "M1", "g1", "Faker", 10.5), rating.ErrInvalidScore)
	assert.ErrorIs(t, store.Submit("userA", "M1", "g1", "Faker", -0.5), rating.ErrInvalidScore)
	assert.ErrorIs(t, store.Submit("userA", "M1", "g1", "Faker", 7.3), rating.ErrInvalidScore)
	assert.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 7.5))
	assert.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 0))
	assert.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 10))
}

func TestSubmitMissingMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.Submit("userA", "missing", "g1", "Faker", 8.0)
	assert.ErrorIs(t, err, rating.ErrMatchNotFound)

	// The aborted transaction must leave no partial aggregate behind.
	stats, err := store.GetStats("missing", "g1")
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSubmitBatchAtomic(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	err := store.SubmitBatch("userA", "M1", "g1", map[string]float64{
		"Faker":               9.5,
		"Keria":               8.5,
		rating.FunScoreEntity: 9.0,
	})
	require.NoError(t, err)

	stats, err := store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Len(t, stats, 3)
	assert.Equal(t, 9.0, stats[rating.FunScoreEntity].Average)

	// One invalid score rejects the whole card before any write.
	err = store.SubmitBatch("userB", "M1", "g1", map[string]float64{
		"Faker": 8.0,
		"Keria": 11.0,
	})
	assert.ErrorIs(t, err, rating.ErrInvalidScore)

	stats, err = store.GetStats("M1", "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats["Faker"].Count)
}

func TestGetUserRating(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	require.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 8.0))
	require.NoError(t, store.Submit("userA", "M1", "g2", "Faker", 6.5))
	require.NoError(t, store.Submit("userA", "M1", "", rating.FunScoreEntity, 9.0))

	doc, err := store.GetUserRating("userA", "M1")
	require.NoError(t, err)
	assert.Equal(t, 8.0, doc["g1"]["Faker"])
	assert.Equal(t, 6.5, doc["g2"]["Faker"])
	assert.Equal(t, 9.0, doc[""][rating.FunScoreEntity])

	score, ok, err := store.GetScore("userA", "M1", "g1", "Faker")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 8.0, score)

	_, ok, err = store.GetScore("userB", "M1", "g1", "Faker")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStatsScopedPerGame(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()
	insertMatch(t, db, "M1")

	require.NoError(t, store.Submit("userA", "M1", "g1", "Faker", 8.0))
	require.NoError(t, store.Submit("userA", "M1", "g2", "Faker", 4.0))

	g1, err := store.GetStats("M1", "g1")
	require.NoError(t, err)
	g2, err := store.GetStats("M1", "g2")
	require.NoError(t, err)

	assert.Equal(t, 8.0, g1["Faker"].Average)
	assert.Equal(t, 4.0, g2["Faker"].Average)
}
