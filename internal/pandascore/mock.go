package pandascore

import (
	"encoding/json"
	"sync"
)

// MockClient is a mock implementation of the PandaScoreClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetScheduleFunc func(leagueID string, fromDate string) ([]ScheduleMatch, error)
	SearchTeamsFunc func(query string) ([]TeamDetail, error)
	GetTeamFunc     func(teamID string) (TeamDetail, error)
	GetTeamRawFunc  func(teamID string) (json.RawMessage, error)
	GetMatchRawFunc func(matchID string) (json.RawMessage, error)

	// Call records
	GetScheduleCalls []string
	SearchTeamsCalls []string
	GetTeamCalls     []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScheduleCalls = nil
	m.SearchTeamsCalls = nil
	m.GetTeamCalls = nil
}

func (m *MockClient) GetSchedule(leagueID string, fromDate string) ([]ScheduleMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetScheduleCalls = append(m.GetScheduleCalls, leagueID)
	if m.GetScheduleFunc != nil {
		return m.GetScheduleFunc(leagueID, fromDate)
	}
	return []ScheduleMatch{}, nil
}

func (m *MockClient) SearchTeams(query string) ([]TeamDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchTeamsCalls = append(m.SearchTeamsCalls, query)
	if m.SearchTeamsFunc != nil {
		return m.SearchTeamsFunc(query)
	}
	return []TeamDetail{}, nil
}

func (m *MockClient) GetTeam(teamID string) (TeamDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTeamCalls = append(m.GetTeamCalls, teamID)
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return TeamDetail{}, nil
}

func (m *MockClient) GetTeamRaw(teamID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetTeamRawFunc != nil {
		return m.GetTeamRawFunc(teamID)
	}
	return json.RawMessage(`{}`), nil
}

func (m *MockClient) GetMatchRaw(matchID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchRawFunc != nil {
		return m.GetMatchRawFunc(matchID)
	}
	return json.RawMessage(`{}`), nil
}
