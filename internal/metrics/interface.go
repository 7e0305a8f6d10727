package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSyncRuns(job string)
	IncProviderCalls(provider string)
	IncRatingsSubmitted()
	IncCommentsWritten()
	ObserveSyncDuration(job string, duration float64)
	SetStartupTime(duration float64)
}

// MetricsStore persists call counters across restarts. The admin status
// endpoint reads these alongside the sync_status row.
type MetricsStore interface {
	Increment(key string)
	Get(key string) int64
	GetAll() (map[string]int64, error)
}
