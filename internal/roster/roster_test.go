package roster_test

import (
	"testing"

	"github.com/jmpark86/fanscore/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	testCases := []struct {
		role     string
		expected roster.Position
	}{
		{"top", roster.Top},
		{"TOP", roster.Top},
		{"toplaner", roster.Top},
		{"jungle", roster.Jgl},
		{"jun", roster.Jgl},
		{"jgl", roster.Jgl},
		{"mid", roster.Mid},
		{"midlaner", roster.Mid},
		{"adc", roster.Adc},
		{"bot", roster.Adc},
		{"bottom", roster.Adc},
		{"marksman", roster.Adc},
		{"carry", roster.Adc},
		{"support", roster.Sup},
		{"sup", roster.Sup},
		{"coach", roster.Sub},
		{"", roster.Sub},
	}

	for _, tc := range testCases {
		t.Run(tc.role, func(t *testing.T) {
			assert.Equal(t, tc.expected, roster.NormalizeRole(tc.role))
		})
	}
}

func TestPickTeam(t *testing.T) {
	candidates := []roster.Candidate{
		{ID: "1", Name: "T1", Acronym: "T1", Country: "KR"},
		{ID: "2", Name: "T1 Academy", Acronym: "T1A", Country: "KR"},
		{ID: "3", Name: "Team One", Acronym: "ONE", Country: "BR"},
	}

	// Exact name match wins.
	picked, err := roster.PickTeam("T1", candidates, "KR")
	require.NoError(t, err)
	assert.Equal(t, "1", picked.ID)

	// Exact acronym match.
	picked, err = roster.PickTeam("T1A", candidates, "KR")
	require.NoError(t, err)
	assert.Equal(t, "2", picked.ID)

	// Country filter when nothing matches exactly.
	foreign := []roster.Candidate{
		{ID: "10", Name: "Cloud Gaming", Country: "US"},
		{ID: "11", Name: "Cloud Esports", Country: "KR"},
	}
	picked, err = roster.PickTeam("cloud", foreign, "KR")
	require.NoError(t, err)
	assert.Equal(t, "11", picked.ID)

	_, err = roster.PickTeam("anything", nil, "KR")
	assert.Error(t, err)
}

func TestBuildLineupOrdering(t *testing.T) {
	entries := []roster.Entry{
		{ID: "b", Name: "Bench Mid", Position: roster.Mid, Active: true},
		{ID: "s", Name: "Starter Mid", Position: roster.Mid, Active: true, Starter: true},
		{ID: "r", Name: "Retired Mid", Position: roster.Mid},
	}

	lineup := roster.BuildLineup(entries)
	bucket := lineup[roster.Mid]
	require.Len(t, bucket, 3)
	assert.Equal(t, "s", bucket[0].ID)
	assert.Equal(t, "b", bucket[1].ID)
	assert.Equal(t, "r", bucket[2].ID)
}

func TestRepresentativeHonorsPin(t *testing.T) {
	lineup := roster.BuildLineup([]roster.Entry{
		{ID: "starter", Name: "Starter", Position: roster.Mid, Active: true, Starter: true},
		{ID: "backup", Name: "Backup", Position: roster.Mid, Active: true},
	})

	entry, ok := lineup.Representative(roster.Mid, "home", nil)
	require.True(t, ok)
	assert.Equal(t, "starter", entry.ID)

	pinned := map[string]string{roster.PinKey("home", roster.Mid): "backup"}
	entry, ok = lineup.Representative(roster.Mid, "home", pinned)
	require.True(t, ok)
	assert.Equal(t, "backup", entry.ID)

	// A pin naming a player outside the bucket falls back to the default.
	stale := map[string]string{roster.PinKey("home", roster.Mid): "gone"}
	entry, ok = lineup.Representative(roster.Mid, "home", stale)
	require.True(t, ok)
	assert.Equal(t, "starter", entry.ID)

	_, ok = lineup.Representative(roster.Top, "home", nil)
	assert.False(t, ok)
}

func TestPinKey(t *testing.T) {
	assert.Equal(t, "pinned_home_MID", roster.PinKey("home", roster.Mid))
	assert.Equal(t, "pinned_away_TOP", roster.PinKey("AWAY", roster.Top))
}
