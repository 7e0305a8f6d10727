package syncer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jmpark86/fanscore/internal/config"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/jmpark86/fanscore/internal/metrics"
	"github.com/jmpark86/fanscore/internal/notifier"
	"github.com/jmpark86/fanscore/internal/pandascore"
	"github.com/jmpark86/fanscore/internal/pubsub"
	"github.com/jmpark86/fanscore/internal/roster"
)

// New creates a new Syncer. All sync windows are computed in Korea Standard
// Time; LCK kickoff days are KST days regardless of where the service runs.
func New(
	store league.LeagueStore,
	schedule pandascore.PandaScoreClient,
	live livefeed.LiveFeedClient,
	status StatusStore,
	metricsSvc metrics.Metrics,
	counters metrics.MetricsStore,
	notif notifier.Notifier,
	ps pubsub.PubSubClient,
	leagueCfg config.LeagueConfig,
) *Syncer {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		log.Fatalf("Failed to load KST location: %v", err)
	}
	return &Syncer{
		store:    store,
		schedule: schedule,
		live:     live,
		status:   status,
		metrics:  metricsSvc,
		counters: counters,
		notifier: notif,
		pubsub:   ps,
		league:   leagueCfg,
		loc:      loc,
	}
}

// kstToday returns the start of "today" in KST.
func (s *Syncer) kstToday() time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// SyncSchedule pulls the upcoming schedule and upserts it. Matches with an
// undetermined opponent are skipped with a warning; the rest of the batch
// still lands. Re-running with identical upstream data converges to the
// same state.
func (s *Syncer) SyncSchedule(dryRun bool) (Result, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.metrics.IncSyncRuns(JobScheduleSync)
	s.metrics.IncProviderCalls("pandascore")
	s.counters.Increment("pandascore_calls")

	from := s.kstToday().UTC().Format(time.RFC3339)
	upstream, err := s.schedule.GetSchedule(s.league.ID, from)
	if err != nil {
		s.recordFailure(JobScheduleSync, runID, err, dryRun)
		return Result{RunID: runID}, err
	}

	var (
		toUpsert []*league.Match
		skipped  int
	)
	for _, m := range upstream {
		match, ok := adaptScheduleMatch(m, s.loc)
		if !ok {
			skipped++
			continue
		}
		toUpsert = append(toUpsert, match)
	}

	if len(toUpsert) > 0 && !dryRun {
		if err := s.store.UpsertMatches(toUpsert); err != nil {
			s.recordFailure(JobScheduleSync, runID, err, dryRun)
			return Result{RunID: runID}, err
		}
	}

	result := Result{
		RunID:   runID,
		Count:   len(upstream),
		Written: len(toUpsert),
		Skipped: skipped,
		Message: fmt.Sprintf("upserted %d of %d matches (%d skipped)", len(toUpsert), len(upstream), skipped),
	}
	s.finishRun(JobScheduleSync, runID, result.Message, start, result, dryRun)
	return result, nil
}

// SyncLive merges today's live scores into the stored matches and publishes
// a change event per updated match. Live data for matches the schedule sync
// has not created yet is dropped.
func (s *Syncer) SyncLive(dryRun bool) (int, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.metrics.IncSyncRuns(JobLiveSync)
	s.metrics.IncProviderCalls("livefeed")
	s.counters.Increment("livefeed_calls")

	today := s.kstToday()
	from := today.Format("2006-01-02")
	to := today.AddDate(0, 0, 1).Format("2006-01-02")

	upstream, err := s.live.GetLiveMatches(s.league.ID, from, to)
	if err != nil {
		s.recordFailure(JobLiveSync, runID, err, dryRun)
		return 0, err
	}

	updated := 0
	for _, m := range upstream {
		if dryRun {
			log.Info("[Dry Run] Would apply live state", "matchID", m.MatchID, "status", m.Status)
			continue
		}
		applied, err := s.store.ApplyLive(m.MatchID, adaptLiveStatus(m.Status), m.Home.Score, m.Away.Score, adaptLiveGames(m.Games))
		if err != nil {
			log.Error("Failed to apply live state", "error", err, "matchID", m.MatchID)
			continue
		}
		if !applied {
			log.Debug("Dropping live data for unknown match", "matchID", m.MatchID)
			continue
		}
		updated++
		if err := s.pubsub.SendMessage(pubsub.EventMatchUpdated, pubsub.MatchEvent{MatchID: m.MatchID, Reason: "live-sync"}); err != nil {
			log.Error("Failed to publish match-updated event", "error", err, "matchID", m.MatchID)
		}
	}

	message := fmt.Sprintf("updated %d of %d live matches", updated, len(upstream))
	s.finishRun(JobLiveSync, runID, message, start, Result{RunID: runID, Count: len(upstream), Written: updated}, dryRun)
	return updated, nil
}

// SyncTeam resolves one team by id or name against the schedule provider,
// enriches the roster from the live provider on a best-effort basis, and
// upserts the team-year record.
func (s *Syncer) SyncTeam(idOrName string, dryRun bool) (*TeamSyncResult, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.metrics.IncSyncRuns(JobTeamSync)
	s.metrics.IncProviderCalls("pandascore")
	s.counters.Increment("pandascore_calls")

	candidates, err := s.schedule.SearchTeams(idOrName)
	if err != nil {
		s.recordFailure(JobTeamSync, runID, err, dryRun)
		return nil, err
	}

	picks := make([]roster.Candidate, len(candidates))
	for i, c := range candidates {
		picks[i] = roster.Candidate{
			ID:      strconv.FormatInt(c.ID, 10),
			Name:    c.Name,
			Acronym: c.Acronym,
			Country: c.Location,
		}
	}
	picked, err := roster.PickTeam(idOrName, picks, "KR")
	if err != nil {
		s.recordFailure(JobTeamSync, runID, err, dryRun)
		return nil, err
	}

	detail, err := s.schedule.GetTeam(picked.ID)
	if err != nil {
		s.recordFailure(JobTeamSync, runID, err, dryRun)
		return nil, err
	}

	// Roster details from the live provider are best-effort: a failure here
	// downgrades to "save what we have".
	var liveRoster []livefeed.RosterPlayer
	s.metrics.IncProviderCalls("livefeed")
	s.counters.Increment("livefeed_calls")
	liveRoster, err = s.live.GetRoster(picked.ID)
	if err != nil {
		log.Warn("Roster detail fetch failed; saving basic roster only", "error", err, "teamID", picked.ID)
		liveRoster = nil
	}

	year := time.Now().In(s.loc).Year()
	team := &league.Team{
		ID:      picked.ID,
		Name:    detail.Name,
		Code:    detail.Acronym,
		Year:    year,
		Logo:    detail.ImageURL,
		Players: adaptRoster(detail.Players, liveRoster),
	}

	if !dryRun {
		if err := s.store.UpsertTeam(team); err != nil {
			s.recordFailure(JobTeamSync, runID, err, dryRun)
			return nil, err
		}
	}

	message := fmt.Sprintf("synced team %s with %d players", team.Name, len(team.Players))
	s.finishRun(JobTeamSync, runID, message, start, Result{RunID: runID, Count: 1, Written: len(team.Players)}, dryRun)
	return &TeamSyncResult{Team: team, PlayersCount: len(team.Players), Year: year}, nil
}

// Inspect returns the raw provider JSON for a match or team, untouched.
func (s *Syncer) Inspect(inspectType, id string) (json.RawMessage, error) {
	s.metrics.IncProviderCalls("pandascore")
	s.counters.Increment("pandascore_calls")
	switch inspectType {
	case "match":
		return s.schedule.GetMatchRaw(id)
	case "team":
		return s.schedule.GetTeamRaw(id)
	default:
		return nil, fmt.Errorf("unknown inspect type %q", inspectType)
	}
}

func (s *Syncer) finishRun(job, runID, message string, start time.Time, result Result, dryRun bool) {
	duration := time.Since(start).Seconds()
	s.metrics.ObserveSyncDuration(job, duration)
	if !dryRun {
		if err := s.status.RecordRun(job, runID, message); err != nil {
			log.Error("Failed to record sync status", "error", err, "job", job)
		}
	}
	if err := s.notifier.SendSyncSummary(notifier.SyncSummary{
		Job:      job,
		RunID:    runID,
		Count:    result.Count,
		Updated:  result.Written,
		Skipped:  result.Skipped,
		Duration: duration,
		Result:   message,
	}, dryRun); err != nil {
		log.Error("Failed to send sync summary", "error", err, "job", job)
	}
	log.Info("Sync run finished", "job", job, "runID", runID, "result", message, "duration_s", duration)
}

func (s *Syncer) recordFailure(job, runID string, runErr error, dryRun bool) {
	if !dryRun {
		if err := s.status.RecordRun(job, runID, "error: "+runErr.Error()); err != nil {
			log.Error("Failed to record sync failure", "error", err, "job", job)
		}
	}
	if err := s.notifier.SendSyncFailure(job, runErr, dryRun); err != nil {
		log.Error("Failed to send sync failure alert", "error", err, "job", job)
	}
	log.Error("Sync run failed", "job", job, "runID", runID, "error", runErr)
}
