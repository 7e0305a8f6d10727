package syncer

import (
	"time"

	"github.com/jmpark86/fanscore/internal/config"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/jmpark86/fanscore/internal/metrics"
	"github.com/jmpark86/fanscore/internal/notifier"
	"github.com/jmpark86/fanscore/internal/pandascore"
	"github.com/jmpark86/fanscore/internal/pubsub"
)

// Job names recorded in metrics and the sync status rows.
const (
	JobScheduleSync = "schedule-sync"
	JobLiveSync     = "live-sync"
	JobTeamSync     = "team-sync"
)

// Syncer pulls from the two providers, reconciles identities and upserts
// into the document store.
type Syncer struct {
	store    league.LeagueStore
	schedule pandascore.PandaScoreClient
	live     livefeed.LiveFeedClient
	status   StatusStore
	metrics  metrics.Metrics
	counters metrics.MetricsStore
	notifier notifier.Notifier
	pubsub   pubsub.PubSubClient
	league   config.LeagueConfig
	loc      *time.Location
}

// Result summarizes one schedule-sync run.
type Result struct {
	RunID   string `json:"run_id"`
	Count   int    `json:"count"`
	Written int    `json:"written"`
	Skipped int    `json:"skipped"`
	Message string `json:"message"`
}

// TeamSyncResult is the outcome of a single-team sync.
type TeamSyncResult struct {
	Team         *league.Team `json:"team"`
	PlayersCount int          `json:"players_count"`
	Year         int          `json:"year"`
}
