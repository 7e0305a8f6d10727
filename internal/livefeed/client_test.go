package livefeed_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLiveMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/matches", r.URL.Path)
		assert.Equal(t, "api-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "293", r.URL.Query().Get("league"))
		assert.Equal(t, "2026-08-30", r.URL.Query().Get("from"))
		assert.Equal(t, "2026-08-31", r.URL.Query().Get("to"))

		w.Write([]byte(`[
			{
				"match_id": "100",
				"league": "LCK",
				"status": "live",
				"home": {"team_id": "1", "name": "T1", "code": "T1", "score": 1},
				"away": {"team_id": "2", "name": "Gen.G", "code": "GEN", "score": 0},
				"games": [{"game_id": "g1", "position": 1, "finished": true, "winner_id": "1"}]
			}
		]`))
	}))
	defer server.Close()

	client := livefeed.NewClient("api-key", server.URL)
	matches, err := client.GetLiveMatches("293", "2026-08-30", "2026-08-31")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "100", matches[0].MatchID)
	assert.Equal(t, 1, matches[0].Home.Score)
	require.Len(t, matches[0].Games, 1)
	assert.True(t, matches[0].Games[0].Finished)
}

func TestGetRoster(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/1/roster", r.URL.Path)
		w.Write([]byte(`[{"id": "10", "name": "Faker", "role": "mid", "active": true, "starter": true}]`))
	}))
	defer server.Close()

	client := livefeed.NewClient("api-key", server.URL)
	roster, err := client.GetRoster("1")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.True(t, roster[0].Starter)
}

func TestFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error": "maintenance"}`))
	}))
	defer server.Close()

	client := livefeed.NewClient("api-key", server.URL)
	_, err := client.GetLiveMatches("293", "2026-08-30", "2026-08-31")
	require.Error(t, err)

	var fetchErr *livefeed.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
	assert.Contains(t, fetchErr.Body, "maintenance")
}
