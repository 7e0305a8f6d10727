package syncer

import (
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/jmpark86/fanscore/internal/pandascore"
	"github.com/jmpark86/fanscore/internal/roster"
)

// matchDateLayout formats kickoff times as KST local strings whose
// lexicographic order is chronological order.
const matchDateLayout = "2006-01-02 15:04"

// adaptScheduleMatch converts one schedule-provider record into the
// canonical Match. Raw provider JSON never crosses this boundary. Matches
// with an undetermined opponent are rejected entirely (ok == false).
func adaptScheduleMatch(m pandascore.ScheduleMatch, loc *time.Location) (*league.Match, bool) {
	if len(m.Opponents) < 2 || m.Opponents[0].Opponent == nil || m.Opponents[1].Opponent == nil {
		log.Warn("Skipping match with undetermined opponent", "matchID", m.ID, "name", m.Name)
		return nil, false
	}

	date := ""
	if m.BeginAt != "" {
		t, err := time.Parse(time.RFC3339, m.BeginAt)
		if err != nil {
			log.Warn("Failed to parse begin_at; keeping raw value", "matchID", m.ID, "begin_at", m.BeginAt)
			date = m.BeginAt
		} else {
			date = t.In(loc).Format(matchDateLayout)
		}
	}

	match := &league.Match{
		ID:     strconv.FormatInt(m.ID, 10),
		League: m.League.Name,
		Season: m.Serie.FullName,
		Date:   date,
		Status: adaptScheduleStatus(m.Status),
		Home:   adaptTeamStub(m.Opponents[0].Opponent),
		Away:   adaptTeamStub(m.Opponents[1].Opponent),
	}

	for _, r := range m.Results {
		switch strconv.FormatInt(r.TeamID, 10) {
		case match.Home.ID:
			match.Home.Score = r.Score
		case match.Away.ID:
			match.Away.Score = r.Score
		}
	}

	for _, g := range m.Games {
		game := league.Game{
			ID:       strconv.FormatInt(g.ID, 10),
			Position: g.Position,
			Finished: g.Finished,
		}
		if g.Winner.ID != 0 {
			game.WinnerID = strconv.FormatInt(g.Winner.ID, 10)
		}
		match.Games = append(match.Games, game)
	}
	return match, true
}

func adaptTeamStub(t *pandascore.TeamStub) league.TeamSide {
	return league.TeamSide{
		ID:   strconv.FormatInt(t.ID, 10),
		Name: t.Name,
		Code: t.Acronym,
		Logo: t.ImageURL,
	}
}

func adaptScheduleStatus(status string) league.MatchStatus {
	switch status {
	case "running":
		return league.StatusLive
	case "finished":
		return league.StatusFinished
	default:
		return league.StatusScheduled
	}
}

func adaptLiveStatus(status string) league.MatchStatus {
	switch status {
	case "live":
		return league.StatusLive
	case "finished":
		return league.StatusFinished
	default:
		return league.StatusScheduled
	}
}

// adaptLiveGames converts live-feed game states into canonical games.
func adaptLiveGames(games []livefeed.LiveGame) []league.Game {
	var out []league.Game
	for _, g := range games {
		out = append(out, league.Game{
			ID:       g.GameID,
			Position: g.Position,
			Finished: g.Finished,
			WinnerID: g.WinnerID,
		})
	}
	return out
}

// adaptRoster normalizes provider roles into position-ordered player
// details, starters first within each bucket, SUB bucket last.
func adaptRoster(players []pandascore.Player, details []livefeed.RosterPlayer) []league.PlayerDetail {
	// The live provider's starter/active flags win when both know a player.
	flags := make(map[string]livefeed.RosterPlayer, len(details))
	for _, d := range details {
		flags[d.Name] = d
	}

	var entries []roster.Entry
	for _, p := range players {
		e := roster.Entry{
			ID:       strconv.FormatInt(p.ID, 10),
			Name:     p.Name,
			Position: roster.NormalizeRole(p.Role),
			Image:    p.ImageURL,
			Active:   p.Active,
		}
		if d, ok := flags[p.Name]; ok {
			e.Starter = d.Starter
			e.Active = d.Active
			if e.Image == "" {
				e.Image = d.Image
			}
		}
		entries = append(entries, e)
	}

	lineup := roster.BuildLineup(entries)

	var out []league.PlayerDetail
	appendBucket := func(pos roster.Position) {
		for _, e := range lineup[pos] {
			out = append(out, league.PlayerDetail{
				ID:      e.ID,
				Name:    e.Name,
				Role:    string(pos),
				Image:   e.Image,
				Active:  e.Active,
				Starter: e.Starter,
			})
		}
	}
	for _, pos := range roster.PositionOrder {
		appendBucket(pos)
	}
	appendBucket(roster.Sub)
	return out
}
