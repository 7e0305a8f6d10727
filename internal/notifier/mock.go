package notifier

import "sync"

// MockNotifier records notification calls for tests. It is safe for
// concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	SendSyncSummaryFunc func(summary SyncSummary, dryRun bool) error
	SendSyncFailureFunc func(job string, runErr error, dryRun bool) error

	SummaryCalls []SyncSummary
	FailureCalls []string
}

// NewMock creates a new mock Notifier.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryCalls = nil
	m.FailureCalls = nil
}

func (m *MockNotifier) SendSyncSummary(summary SyncSummary, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummaryCalls = append(m.SummaryCalls, summary)
	if m.SendSyncSummaryFunc != nil {
		return m.SendSyncSummaryFunc(summary, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendSyncFailure(job string, runErr error, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FailureCalls = append(m.FailureCalls, job)
	if m.SendSyncFailureFunc != nil {
		return m.SendSyncFailureFunc(job, runErr, dryRun)
	}
	return nil
}
