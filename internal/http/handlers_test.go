package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmpark86/fanscore/internal/comment"
	"github.com/jmpark86/fanscore/internal/config"
	"github.com/jmpark86/fanscore/internal/database"
	server "github.com/jmpark86/fanscore/internal/http"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/jmpark86/fanscore/internal/metrics"
	"github.com/jmpark86/fanscore/internal/notifier"
	"github.com/jmpark86/fanscore/internal/pandascore"
	"github.com/jmpark86/fanscore/internal/pubsub"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/jmpark86/fanscore/internal/roster"
	"github.com/jmpark86/fanscore/internal/syncer"
	"github.com/jmpark86/fanscore/internal/user"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server   *server.Server
	store    league.LeagueStore
	ratings  rating.RatingStore
	comments comment.CommentStore
	users    user.UserStore
	schedule *pandascore.MockClient
	live     *livefeed.MockClient
	pubsub   *pubsub.MockPubSubClient
}

func setupServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	env := &testEnv{
		schedule: pandascore.NewMockClient(),
		live:     livefeed.NewMockClient(),
		pubsub:   pubsub.NewMock("test-project"),
	}
	env.store = league.New(db)
	env.ratings = rating.New(db)
	env.comments = comment.New(db, env.ratings)
	env.users = user.New(db)
	statusStore := syncer.NewStatusStore(db)
	counters := metrics.New(db)

	registry := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(registry)
	metricsHandler := metrics.NewMetricsHandler(registry)

	sync := syncer.New(env.store, env.schedule, env.live, statusStore, metricsSvc, counters, notifier.NewMock(), env.pubsub, config.LeagueConfig{ID: "293", Name: "LCK"})

	env.server = server.NewServer(
		env.store, env.ratings, env.comments, env.users,
		sync, statusStore, counters, metricsSvc, metricsHandler,
		config.Config{}, env.pubsub,
	)

	require.NoError(t, env.users.Upsert("admin-1", "Admin", user.RoleAdmin))
	require.NoError(t, env.users.Upsert("fan-1", "Fan", user.RoleFan))

	teardown := func() {
		dbTeardown()
		db.Close()
	}
	return env, teardown
}

func (e *testEnv) do(t *testing.T, method, target, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rr := httptest.NewRecorder()
	e.server.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func seedMatch(t *testing.T, env *testEnv, id string) {
	t.Helper()
	require.NoError(t, env.store.UpsertMatch(&league.Match{
		ID:     id,
		League: "LCK",
		Season: "Summer 2026",
		Date:   "2026-08-29 17:00",
		Status: league.StatusFinished,
		Home:   league.TeamSide{ID: "t1", Name: "T1", Code: "T1", Score: 2},
		Away:   league.TeamSide{ID: "gen", Name: "Gen.G", Code: "GEN", Score: 1},
		Games:  []league.Game{{ID: "g1", Position: 1, Finished: true, WinnerID: "t1"}},
	}))
}

func TestHealthCheck(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()

	rr := env.do(t, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()

	// No identity at all.
	rr := env.do(t, "GET", "/schedule-sync", "", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "admin role required", body["error"])

	// A plain fan is rejected too; the role table is checked server-side.
	rr = env.do(t, "GET", "/schedule-sync", "fan-1", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, "GET", "/schedule-sync", "admin-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestScheduleSyncEndpoint(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()

	env.schedule.GetScheduleFunc = func(leagueID, fromDate string) ([]pandascore.ScheduleMatch, error) {
		return []pandascore.ScheduleMatch{{
			ID:      100,
			Status:  "not_started",
			BeginAt: "2026-08-30T08:00:00Z",
			League:  pandascore.League{Name: "LCK"},
			Opponents: []pandascore.Opponent{
				{Opponent: &pandascore.TeamStub{ID: 1, Name: "T1"}},
				{Opponent: &pandascore.TeamStub{ID: 2, Name: "Gen.G"}},
			},
		}}, nil
	}

	rr := env.do(t, "GET", "/schedule-sync", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, float64(1), body["matches"])

	match, err := env.store.GetMatch("100")
	require.NoError(t, err)
	assert.Equal(t, "T1", match.Home.Name)
}

func TestSyncEndpointModes(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()

	env.schedule.SearchTeamsFunc = func(query string) ([]pandascore.TeamDetail, error) {
		return []pandascore.TeamDetail{{ID: 1, Name: "T1", Acronym: "T1", Location: "KR"}}, nil
	}
	env.schedule.GetTeamFunc = func(teamID string) (pandascore.TeamDetail, error) {
		return pandascore.TeamDetail{
			ID:      1,
			Name:    "T1",
			Acronym: "T1",
			Players: []pandascore.Player{{ID: 10, Name: "Faker", Role: "mid", Active: true}},
		}, nil
	}

	rr := env.do(t, "GET", "/sync?mode=sync_team&id=T1", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["players_count"])

	rr = env.do(t, "GET", "/sync?mode=inspect&inspectId=100&inspectType=match", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{}`, rr.Body.String())

	rr = env.do(t, "GET", "/sync?mode=bogus", "admin-1", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLiveSyncEndpoint(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "100")

	env.live.GetLiveMatchesFunc = func(leagueID, from, to string) ([]livefeed.LiveMatch, error) {
		return []livefeed.LiveMatch{{
			MatchID: "100",
			Status:  "live",
			Home:    livefeed.SideResult{Score: 1},
			Away:    livefeed.SideResult{Score: 0},
		}}, nil
	}

	rr := env.do(t, "GET", "/live-sync", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, float64(1), body["updated"])
}

func TestSubmitRating(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")

	rr := env.do(t, "POST", "/rate", "fan-1", map[string]any{
		"match_id": "M1", "game_id": "g1", "entity": "Faker", "score": 8.5,
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	stats := body["stats"].(map[string]any)["Faker"].(map[string]any)
	assert.Equal(t, 8.5, stats["average"])

	// A stats-updated event per write.
	require.Len(t, env.pubsub.SendMessageCalls, 1)

	// Missing identity.
	rr = env.do(t, "POST", "/rate", "", map[string]any{"match_id": "M1", "entity": "Faker", "score": 8})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// Unknown match.
	rr = env.do(t, "POST", "/rate", "fan-1", map[string]any{"match_id": "nope", "game_id": "g1", "entity": "Faker", "score": 8})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	// Off-grid score.
	rr = env.do(t, "POST", "/rate", "fan-1", map[string]any{"match_id": "M1", "game_id": "g1", "entity": "Faker", "score": 8.3})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSubmitRatingCardAndGetUserRating(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")

	rr := env.do(t, "POST", "/rate-card", "fan-1", map[string]any{
		"match_id": "M1",
		"game_id":  "g1",
		"scores": map[string]float64{
			"Faker":               9.0,
			"Keria":               8.0,
			rating.FunScoreEntity: 9.5,
		},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, float64(3), body["submitted"])

	rr = env.do(t, "GET", "/rating?matchId=M1", "fan-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	scores := body["rating"].(map[string]any)["g1"].(map[string]any)
	assert.Equal(t, 9.0, scores["Faker"])
}

func TestGetMatchWithStats(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")
	require.NoError(t, env.ratings.Submit("fan-1", "M1", "g1", "Faker", 8.0))

	rr := env.do(t, "GET", "/match?matchId=M1&gameId=g1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "M1", body["match"].(map[string]any)["id"])
	assert.Contains(t, body["stats"].(map[string]any), "Faker")

	rr = env.do(t, "GET", "/match?matchId=missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCommentLifecycle(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")

	// Commenting before rating is rejected and writes nothing.
	rr := env.do(t, "POST", "/comment", "fan-1", map[string]any{
		"match_id": "M1", "game_id": "g1", "player_name": "Faker", "content": "rigged",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	require.NoError(t, env.ratings.Submit("fan-1", "M1", "g1", "Faker", 8.0))

	rr = env.do(t, "POST", "/comment", "fan-1", map[string]any{
		"match_id": "M1", "game_id": "g1", "player_name": "Faker", "content": "clean game",
	})
	require.Equal(t, http.StatusOK, rr.Code)
	commentID := decode(t, rr)["comment"].(map[string]any)["id"].(string)

	// Someone else likes it, then unlikes it.
	rr = env.do(t, "POST", "/comment/like?commentId="+commentID, "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(1), decode(t, rr)["comment"].(map[string]any)["likes"])

	rr = env.do(t, "POST", "/comment/like?commentId="+commentID, "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, float64(0), decode(t, rr)["comment"].(map[string]any)["likes"])

	// Only the author can delete.
	rr = env.do(t, "POST", "/comment/delete?commentId="+commentID, "admin-1", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = env.do(t, "POST", "/comment/delete?commentId="+commentID, "fan-1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListComments(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")

	require.NoError(t, env.ratings.Submit("fan-1", "M1", "g1", "Faker", 8.0))
	c, err := env.comments.Upsert("fan-1", "M1", "g1", "Faker", "nice")
	require.NoError(t, err)
	_, err = env.comments.ToggleLike(c.ID, "admin-1")
	require.NoError(t, err)

	rr := env.do(t, "GET", "/comments?matchId=M1&gameId=g1&playerName=Faker&page=1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Len(t, body["best"], 1)
}

func TestPinAndMatchLive(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")

	require.NoError(t, env.store.UpsertTeam(&league.Team{
		ID:   "t1",
		Name: "T1",
		Code: "T1",
		Year: 2026,
		Players: []league.PlayerDetail{
			{ID: "p-faker", Name: "Faker", Role: string(roster.Mid), Active: true, Starter: true},
			{ID: "p-backup", Name: "Backup", Role: string(roster.Mid), Active: true},
		},
	}))

	rr := env.do(t, "GET", "/match-live?matchId=M1&gameId=g1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "2:1", body["score"])
	assert.Equal(t, "T1 vs Gen.G", body["title"])

	home := body["teams"].(map[string]any)["home"].(map[string]any)
	players := home["players"].([]any)
	require.Len(t, players, 1)
	assert.Equal(t, "Faker", players[0].(map[string]any)["name"])

	// Pinning the backup swaps the representative for that game.
	rr = env.do(t, "GET", "/pin?matchId=M1&gameId=g1&side=home&position=mid&playerId=p-backup", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "GET", "/match-live?matchId=M1&gameId=g1", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decode(t, rr)
	home = body["teams"].(map[string]any)["home"].(map[string]any)
	players = home["players"].([]any)
	require.Len(t, players, 1)
	assert.Equal(t, "Backup", players[0].(map[string]any)["name"])
}

func TestSyncStatusEndpoint(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()

	env.schedule.GetScheduleFunc = func(leagueID, fromDate string) ([]pandascore.ScheduleMatch, error) {
		return nil, nil
	}
	rr := env.do(t, "GET", "/schedule-sync", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = env.do(t, "GET", "/sync-status", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	jobs := body["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, syncer.JobScheduleSync, jobs[0].(map[string]any)["provider"])
}

func TestClearEndpoint(t *testing.T) {
	env, teardown := setupServer(t)
	defer teardown()
	seedMatch(t, env, "M1")
	seedMatch(t, env, "M2")

	rr := env.do(t, "GET", "/clear?matchId=M1", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	all, err := env.store.GetAllMatches()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	rr = env.do(t, "GET", "/clear", "admin-1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	all, err = env.store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, all)
}
