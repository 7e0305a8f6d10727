package livefeed

import "fmt"

// FetchError is returned for any non-2xx provider response.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("livefeed: unexpected status %d: %s", e.Status, e.Body)
}

// LiveMatch is one match record from the live-score endpoint, filtered by
// league and date range upstream.
type LiveMatch struct {
	MatchID string     `json:"match_id"`
	League  string     `json:"league_id"`
	Status  string     `json:"status"` // scheduled | live | finished
	BeginAt string     `json:"begin_at"`
	Home    SideResult `json:"home"`
	Away    SideResult `json:"away"`
	Games   []LiveGame `json:"games"`
}

// SideResult is one side's identity and running series score.
type SideResult struct {
	TeamID string `json:"team_id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Score  int    `json:"score"`
}

// LiveGame is one sub-game's live state.
type LiveGame struct {
	GameID   string `json:"game_id"`
	Position int    `json:"position"`
	Finished bool   `json:"finished"`
	WinnerID string `json:"winner_id"`
}

// RosterPlayer is a roster entry from the live provider. Role strings are
// free text; Starter marks the designated first-choice player for a position.
type RosterPlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Image   string `json:"image"`
	Active  bool   `json:"active"`
	Starter bool   `json:"starter"`
}
