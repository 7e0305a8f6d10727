package league_test

import (
	"database/sql"
	"testing"

	"github.com/jmpark86/fanscore/internal/database"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := league.New(db)
	teardown := func() {
		dbTeardown()
		db.Close()
	}

	return store, db, teardown
}

func demoMatch(id string) *league.Match {
	return &league.Match{
		ID:     id,
		League: "LCK",
		Season: "Summer 2026",
		Date:   "2026-08-29 17:00",
		Status: league.StatusScheduled,
		Home:   league.TeamSide{ID: "t1", Name: "T1", Code: "T1"},
		Away:   league.TeamSide{ID: "gen", Name: "Gen.G", Code: "GEN"},
		Games: []league.Game{
			{ID: "g1", Position: 1},
			{ID: "g2", Position: 2},
		},
	}
}

func TestUpsertAndGetMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(demoMatch("M1")))

	got, err := store.GetMatch("M1")
	require.NoError(t, err)
	assert.Equal(t, "T1", got.Home.Name)
	assert.Len(t, got.Games, 2)

	_, err = store.GetMatch("missing")
	assert.ErrorIs(t, err, league.ErrNotFound)

	// A re-upsert with changed fields converges, no duplicate rows.
	updated := demoMatch("M1")
	updated.Status = league.StatusFinished
	require.NoError(t, store.UpsertMatch(updated))

	all, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, league.StatusFinished, all[0].Status)
}

func TestMatchesSortedByDate(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	later := demoMatch("M2")
	later.Date = "2026-08-30 17:00"
	require.NoError(t, store.UpsertMatches([]*league.Match{later, demoMatch("M1")}))

	// Newest kickoff first; the date strings sort lexicographically.
	all, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "M2", all[0].ID)
	assert.Equal(t, "M1", all[1].ID)
}

func TestPinsSurviveResync(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(demoMatch("M1")))
	require.NoError(t, store.PinPlayer("M1", "g1", "home", roster.Mid, "p-faker"))

	got, err := store.GetMatch("M1")
	require.NoError(t, err)
	assert.Equal(t, "p-faker", got.Games[0].ActivePlayers[roster.PinKey("home", roster.Mid)])

	// A schedule re-sync overwrites everything except the pins.
	require.NoError(t, store.UpsertMatch(demoMatch("M1")))

	got, err = store.GetMatch("M1")
	require.NoError(t, err)
	assert.Equal(t, "p-faker", got.Games[0].ActivePlayers[roster.PinKey("home", roster.Mid)])
}

func TestPinPlayerMissingTargets(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	err := store.PinPlayer("missing", "g1", "home", roster.Mid, "p1")
	assert.ErrorIs(t, err, league.ErrNotFound)

	require.NoError(t, store.UpsertMatch(demoMatch("M1")))
	err = store.PinPlayer("M1", "g9", "home", roster.Mid, "p1")
	assert.ErrorIs(t, err, league.ErrNotFound)
}

func TestApplyLive(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(demoMatch("M1")))
	require.NoError(t, store.PinPlayer("M1", "g1", "home", roster.Mid, "p-faker"))

	applied, err := store.ApplyLive("M1", league.StatusLive, 1, 0, []league.Game{
		{ID: "g1", Position: 1, Finished: true, WinnerID: "t1"},
		{ID: "g2", Position: 2},
	})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := store.GetMatch("M1")
	require.NoError(t, err)
	assert.Equal(t, league.StatusLive, got.Status)
	assert.Equal(t, 1, got.Home.Score)
	assert.True(t, got.Games[0].Finished)
	assert.Equal(t, "t1", got.Games[0].WinnerID)
	// Live merges keep the admin pins.
	assert.Equal(t, "p-faker", got.Games[0].ActivePlayers[roster.PinKey("home", roster.Mid)])

	// Live data for a match the schedule sync never created is dropped.
	applied, err = store.ApplyLive("unknown", league.StatusLive, 0, 0, nil)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestUpsertAndGetTeam(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	team := &league.Team{
		ID:   "t1",
		Name: "T1",
		Code: "T1",
		Year: 2026,
		Players: []league.PlayerDetail{
			{ID: "p-faker", Name: "Faker", Role: "MID", Active: true, Starter: true},
		},
	}
	require.NoError(t, store.UpsertTeam(team))

	got, err := store.GetTeam("t1")
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year)
	require.Len(t, got.Players, 1)
	assert.Equal(t, "Faker", got.Players[0].Name)

	_, err = store.GetTeam("missing")
	assert.ErrorIs(t, err, league.ErrNotFound)

	teams, err := store.GetAllTeams()
	require.NoError(t, err)
	assert.Len(t, teams, 1)
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertMatch(demoMatch("M1")))
	require.NoError(t, store.UpsertMatch(demoMatch("M2")))
	require.NoError(t, store.UpsertTeam(&league.Team{ID: "t1", Name: "T1"}))

	store.ClearMatch("M1")
	all, err := store.GetAllMatches()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	store.Clear()
	all, err = store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, all)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM teams").Scan(&count))
	assert.Zero(t, count)
}
