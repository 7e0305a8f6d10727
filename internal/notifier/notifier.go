package notifier

// SyncSummary describes one finished sync run for the ops channel.
type SyncSummary struct {
	Job      string
	RunID    string
	Count    int
	Updated  int
	Skipped  int
	Duration float64 // seconds
	Result   string
}

// Notifier defines a high-level interface for reporting sync runs to the
// admin/ops channel. This decouples the sync jobs from the specific
// notification provider (e.g., Slack).
type Notifier interface {
	SendSyncSummary(summary SyncSummary, dryRun bool) error
	SendSyncFailure(job string, runErr error, dryRun bool) error
}
