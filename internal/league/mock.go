package league

import (
	"sync"

	"github.com/jmpark86/fanscore/internal/roster"
)

// MockStore is an in-memory LeagueStore for tests that do not need SQL.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	Matches map[string]*Match
	Teams   map[string]*Team

	// Spies
	UpsertMatchCalls []string
	UpsertTeamCalls  []string
	ApplyLiveCalls   []string
	PinPlayerCalls   []string
}

// NewMockStore creates a new in-memory mock.
func NewMockStore() *MockStore {
	return &MockStore{
		Matches: make(map[string]*Match),
		Teams:   make(map[string]*Team),
	}
}

func (m *MockStore) UpsertMatch(match *Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match.ID)
	m.Matches[match.ID] = match
	return nil
}

func (m *MockStore) UpsertMatches(matches []*Match) error {
	for _, match := range matches {
		if err := m.UpsertMatch(match); err != nil {
			return err
		}
	}
	return nil
}

func (m *MockStore) GetMatch(matchID string) (*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.Matches[matchID]
	if !ok {
		return nil, ErrNotFound
	}
	return match, nil
}

func (m *MockStore) GetAllMatches() ([]*Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matches []*Match
	for _, match := range m.Matches {
		matches = append(matches, match)
	}
	return matches, nil
}

func (m *MockStore) ApplyLive(matchID string, status MatchStatus, homeScore, awayScore int, games []Game) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplyLiveCalls = append(m.ApplyLiveCalls, matchID)
	match, ok := m.Matches[matchID]
	if !ok {
		return false, nil
	}
	match.Status = status
	match.Home.Score = homeScore
	match.Away.Score = awayScore
	match.Games = games
	return true, nil
}

func (m *MockStore) PinPlayer(matchID, gameID, side string, pos roster.Position, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PinPlayerCalls = append(m.PinPlayerCalls, matchID)
	match, ok := m.Matches[matchID]
	if !ok {
		return ErrNotFound
	}
	for i := range match.Games {
		if match.Games[i].ID == gameID {
			if match.Games[i].ActivePlayers == nil {
				match.Games[i].ActivePlayers = make(map[string]string)
			}
			match.Games[i].ActivePlayers[roster.PinKey(side, pos)] = playerID
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStore) UpsertTeam(team *Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertTeamCalls = append(m.UpsertTeamCalls, team.ID)
	m.Teams[team.ID] = team
	return nil
}

func (m *MockStore) GetTeam(teamID string) (*Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	team, ok := m.Teams[teamID]
	if !ok {
		return nil, ErrNotFound
	}
	return team, nil
}

func (m *MockStore) GetAllTeams() ([]*Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var teams []*Team
	for _, team := range m.Teams {
		teams = append(teams, team)
	}
	return teams, nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Matches = make(map[string]*Match)
	m.Teams = make(map[string]*Team)
}

func (m *MockStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Matches, matchID)
}
