package syncer

import (
	"database/sql"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// SyncStatus is the admin-facing status row per provider/job: last run id,
// last sync timestamp, call counter and last result string.
type SyncStatus struct {
	Provider   string `json:"provider"`
	LastRunID  string `json:"last_run_id"`
	LastSyncTS int64  `json:"last_sync_ts"`
	Calls      int64  `json:"calls"`
	LastResult string `json:"last_result"`
}

// StatusStore persists per-job sync status for admin monitoring.
type StatusStore interface {
	RecordRun(provider, runID, result string) error
	Get(provider string) (*SyncStatus, error)
	GetAll() ([]SyncStatus, error)
}

type statusStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewStatusStore creates a new StatusStore.
func NewStatusStore(db *sql.DB) StatusStore {
	return &statusStore{
		db: db,
	}
}

// RecordRun upserts the status row for a job, bumping its call counter.
func (s *statusStore) RecordRun(provider, runID, result string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO sync_status (provider, last_run_id, last_sync_ts, calls, last_result)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(provider) DO UPDATE SET
			last_run_id = excluded.last_run_id,
			last_sync_ts = excluded.last_sync_ts,
			calls = calls + 1,
			last_result = excluded.last_result;
	`, provider, runID, time.Now().Unix(), result)
	if err != nil {
		log.Error("Failed to record sync run", "error", err, "provider", provider)
	}
	return err
}

func (s *statusStore) Get(provider string) (*SyncStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st SyncStatus
	err := s.db.QueryRow(`
		SELECT provider, COALESCE(last_run_id, ''), last_sync_ts, calls, COALESCE(last_result, '')
		FROM sync_status WHERE provider = ?
	`, provider).Scan(&st.Provider, &st.LastRunID, &st.LastSyncTS, &st.Calls, &st.LastResult)
	if err == sql.ErrNoRows {
		return &SyncStatus{Provider: provider}, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *statusStore) GetAll() ([]SyncStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT provider, COALESCE(last_run_id, ''), last_sync_ts, calls, COALESCE(last_result, '')
		FROM sync_status ORDER BY provider
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all []SyncStatus
	for rows.Next() {
		var st SyncStatus
		if err := rows.Scan(&st.Provider, &st.LastRunID, &st.LastSyncTS, &st.Calls, &st.LastResult); err != nil {
			return nil, err
		}
		all = append(all, st)
	}
	return all, rows.Err()
}
