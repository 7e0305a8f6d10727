package league

import "github.com/jmpark86/fanscore/internal/roster"

// LeagueStore defines the interface for interacting with match and team data.
type LeagueStore interface {
	UpsertMatch(match *Match) error
	UpsertMatches(matches []*Match) error
	GetMatch(matchID string) (*Match, error)
	GetAllMatches() ([]*Match, error)
	ApplyLive(matchID string, status MatchStatus, homeScore, awayScore int, games []Game) (bool, error)
	PinPlayer(matchID, gameID, side string, pos roster.Position, playerID string) error
	UpsertTeam(team *Team) error
	GetTeam(teamID string) (*Team, error)
	GetAllTeams() ([]*Team, error)
	Clear()
	ClearMatch(matchID string)
}
