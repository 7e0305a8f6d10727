package pandascore

import "fmt"

// FetchError is returned for any non-2xx provider response. It carries the
// HTTP status and a truncated copy of the response body for the admin alert.
type FetchError struct {
	Status int
	Body   string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("pandascore: unexpected status %d: %s", e.Status, e.Body)
}

// Opponent is one side of a scheduled match. Matches that are still
// "to be determined" come back with a nil Opponent.
type Opponent struct {
	Opponent *TeamStub `json:"opponent"`
	Type     string    `json:"type"`
}

// TeamStub is the short team record embedded in schedule responses.
type TeamStub struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Acronym  string `json:"acronym"`
	ImageURL string `json:"image_url"`
	Location string `json:"location"`
}

// GameResult is one sub-game of a best-of-N series.
type GameResult struct {
	ID       int64  `json:"id"`
	Position int    `json:"position"`
	Finished bool   `json:"finished"`
	Winner   Winner `json:"winner"`
}

type Winner struct {
	ID int64 `json:"id"`
}

// SideScore is the series score for one team.
type SideScore struct {
	TeamID int64 `json:"team_id"`
	Score  int   `json:"score"`
}

// ScheduleMatch is one match record from the schedule endpoint.
type ScheduleMatch struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Status    string       `json:"status"` // not_started | running | finished
	BeginAt   string       `json:"begin_at"`
	League    League       `json:"league"`
	Serie     Serie        `json:"serie"`
	Opponents []Opponent   `json:"opponents"`
	Games     []GameResult `json:"games"`
	Results   []SideScore  `json:"results"`
}

type League struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Serie struct {
	FullName string `json:"full_name"`
	Year     int    `json:"year"`
}

// TeamDetail is the full team record including its roster.
type TeamDetail struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Acronym  string   `json:"acronym"`
	ImageURL string   `json:"image_url"`
	Location string   `json:"location"`
	Players  []Player `json:"players"`
}

// Player is a roster entry. Role is free text and inconsistent between
// records ("jungle", "jgl", "sup", ...); callers normalize it.
type Player struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
	Active   bool   `json:"active"`
}
