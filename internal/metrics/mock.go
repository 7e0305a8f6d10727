package metrics

import "sync"

// MockMetrics is a no-op Metrics implementation that records calls for tests.
// It is safe for concurrent use.
type MockMetrics struct {
	mu sync.Mutex

	SyncRunCalls      []string
	ProviderCallCalls []string
	RatingsSubmitted  int
	CommentsWritten   int
}

// NewMock creates a new mock Metrics.
func NewMock() *MockMetrics {
	return &MockMetrics{}
}

func (m *MockMetrics) IncSyncRuns(job string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SyncRunCalls = append(m.SyncRunCalls, job)
}

func (m *MockMetrics) IncProviderCalls(provider string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProviderCallCalls = append(m.ProviderCallCalls, provider)
}

func (m *MockMetrics) IncRatingsSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatingsSubmitted++
}

func (m *MockMetrics) IncCommentsWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CommentsWritten++
}

func (m *MockMetrics) ObserveSyncDuration(job string, duration float64) {}

func (m *MockMetrics) SetStartupTime(duration float64) {}
