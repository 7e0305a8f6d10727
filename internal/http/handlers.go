package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/jmpark86/fanscore/internal/roster"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// ListMatchesHandler returns every stored match. Dates are lexicographically
// sortable, so clients can order the list without parsing timestamps.
func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to list matches", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"matches": matches,
			"count":   len(matches),
		})
	}
}

// GetMatchHandler returns one match together with its rating aggregates for
// the requested game (whole-match aggregates when gameId is omitted).
func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchId")
		if matchID == "" {
			respondError(w, http.StatusBadRequest, "matchId is required", "")
			return
		}
		gameID := r.URL.Query().Get("gameId")

		match, err := s.Store.GetMatch(matchID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				respondError(w, http.StatusNotFound, "match not found", matchID)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to load match", err.Error())
			return
		}

		stats, err := s.Ratings.GetStats(matchID, gameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load stats", err.Error())
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"match": match,
			"stats": stats,
		})
	}
}

// livePlayer is one lineup slot in the match-live view.
type livePlayer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Image    string  `json:"image,omitempty"`
	Average  float64 `json:"average"`
	Count    int     `json:"count"`
}

type liveSide struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Code    string       `json:"code"`
	Logo    string       `json:"logo"`
	Players []livePlayer `json:"players"`
}

// MatchLiveHandler builds the live scoreboard view: series score, plus one
// representative player per position per side, honoring admin pins for the
// requested game and folding in the current rating averages.
func (s *Server) MatchLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchId")
		if matchID == "" {
			respondError(w, http.StatusBadRequest, "matchId is required", "")
			return
		}
		gameID := r.URL.Query().Get("gameId")

		match, err := s.Store.GetMatch(matchID)
		if err != nil {
			if errors.Is(err, league.ErrNotFound) {
				respondError(w, http.StatusNotFound, "match not found", matchID)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to load match", err.Error())
			return
		}

		var pinned map[string]string
		for _, g := range match.Games {
			if g.ID == gameID {
				pinned = g.ActivePlayers
				break
			}
		}

		stats, err := s.Ratings.GetStats(matchID, gameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load stats", err.Error())
			return
		}

		home := s.buildLiveSide(match.Home, "home", pinned, stats)
		away := s.buildLiveSide(match.Away, "away", pinned, stats)

		respondJSON(w, http.StatusOK, map[string]any{
			"id":    match.ID,
			"title": fmt.Sprintf("%s vs %s", match.Home.Name, match.Away.Name),
			"date":  match.Date,
			"score": fmt.Sprintf("%d:%d", match.Home.Score, match.Away.Score),
			"teams": map[string]liveSide{
				"home": home,
				"away": away,
			},
		})
	}
}

func (s *Server) buildLiveSide(side league.TeamSide, sideName string, pinned map[string]string, stats map[string]rating.EntityStats) liveSide {
	out := liveSide{
		ID:   side.ID,
		Name: side.Name,
		Code: side.Code,
		Logo: side.Logo,
	}

	team, err := s.Store.GetTeam(side.ID)
	if err != nil {
		// A side without a synced team still renders, just without a lineup.
		if !errors.Is(err, league.ErrNotFound) {
			log.Error("Failed to load team for live view", "error", err, "teamID", side.ID)
		}
		return out
	}

	entries := make([]roster.Entry, 0, len(team.Players))
	for _, p := range team.Players {
		entries = append(entries, roster.Entry{
			ID:       p.ID,
			Name:     p.Name,
			Position: roster.NormalizeRole(p.Role),
			Image:    p.Image,
			Active:   p.Active,
			Starter:  p.Starter,
		})
	}
	lineup := roster.BuildLineup(entries)

	for _, pos := range roster.PositionOrder {
		entry, ok := lineup.Representative(pos, sideName, pinned)
		if !ok {
			continue
		}
		st := stats[entry.Name]
		out.Players = append(out.Players, livePlayer{
			ID:       entry.ID,
			Name:     entry.Name,
			Position: string(pos),
			Image:    entry.Image,
			Average:  st.Average,
			Count:    st.Count,
		})
	}
	return out
}
