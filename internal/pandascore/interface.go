package pandascore

import "encoding/json"

// PandaScoreClient defines the outbound calls made against the schedule provider.
type PandaScoreClient interface {
	GetSchedule(leagueID string, fromDate string) ([]ScheduleMatch, error)
	SearchTeams(query string) ([]TeamDetail, error)
	GetTeam(teamID string) (TeamDetail, error)
	// Raw passthroughs for the admin inspect mode.
	GetTeamRaw(teamID string) (json.RawMessage, error)
	GetMatchRaw(matchID string) (json.RawMessage, error)
}
