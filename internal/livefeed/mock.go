package livefeed

import "sync"

// MockClient is a mock implementation of the LiveFeedClient interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	GetLiveMatchesFunc func(leagueID string, from string, to string) ([]LiveMatch, error)
	GetRosterFunc      func(teamID string) ([]RosterPlayer, error)

	// Call records
	GetLiveMatchesCalls []string
	GetRosterCalls      []string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLiveMatchesCalls = nil
	m.GetRosterCalls = nil
}

func (m *MockClient) GetLiveMatches(leagueID string, from string, to string) ([]LiveMatch, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLiveMatchesCalls = append(m.GetLiveMatchesCalls, leagueID)
	if m.GetLiveMatchesFunc != nil {
		return m.GetLiveMatchesFunc(leagueID, from, to)
	}
	return []LiveMatch{}, nil
}

func (m *MockClient) GetRoster(teamID string) ([]RosterPlayer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetRosterCalls = append(m.GetRosterCalls, teamID)
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc(teamID)
	}
	return []RosterPlayer{}, nil
}
