package league

import (
	"database/sql"
	"sync"
)

// store handles all database operations for matches and teams.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

const (
	StatusScheduled MatchStatus = "SCHEDULED"
	StatusLive      MatchStatus = "LIVE"
	StatusFinished  MatchStatus = "FINISHED"
)

// TeamSide is one side of a match.
type TeamSide struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Code  string `json:"code"`
	Logo  string `json:"logo"`
	Score int    `json:"score"`
}

// Game is one sub-game within a best-of-N series. ActivePlayers holds the
// admin pins, keyed "pinned_{side}_{position}" -> player id.
type Game struct {
	ID            string            `json:"id"`
	Position      int               `json:"position"`
	Finished      bool              `json:"finished"`
	WinnerID      string            `json:"winner_id,omitempty"`
	ActivePlayers map[string]string `json:"active_players,omitempty"`
}

// Match is one scheduled or played game-series. Date is a KST local-time
// string formatted so that lexicographic order is chronological order.
type Match struct {
	ID     string      `json:"id"`
	League string      `json:"league"`
	Season string      `json:"season"`
	Date   string      `json:"date"`
	Status MatchStatus `json:"status"`
	Home   TeamSide    `json:"home"`
	Away   TeamSide    `json:"away"`
	Games  []Game      `json:"games"`
}

// PlayerDetail is one roster entry of a team.
type PlayerDetail struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Image   string `json:"image,omitempty"`
	Active  bool   `json:"active"`
	Starter bool   `json:"starter"`
}

// Team is a team-year record with its roster.
type Team struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Code    string         `json:"code"`
	Year    int            `json:"year"`
	Logo    string         `json:"logo"`
	Players []PlayerDetail `json:"players"`
}
