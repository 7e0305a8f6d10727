package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/pubsub"
	"github.com/jmpark86/fanscore/internal/rating"
)

type submitRatingRequest struct {
	MatchID string  `json:"match_id"`
	GameID  string  `json:"game_id"`
	Entity  string  `json:"entity"`
	Score   float64 `json:"score"`
}

type submitCardRequest struct {
	MatchID string             `json:"match_id"`
	GameID  string             `json:"game_id"`
	Scores  map[string]float64 `json:"scores"`
}

// SubmitRatingHandler records one score for one rateable entity. Edits by
// the same user replace the previous score without double counting.
func (s *Server) SubmitRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}

		var req submitRatingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.MatchID == "" || req.Entity == "" {
			respondError(w, http.StatusBadRequest, "match_id and entity are required", "")
			return
		}

		if err := s.Ratings.Submit(userID, req.MatchID, req.GameID, req.Entity, req.Score); err != nil {
			s.respondRatingError(w, err)
			return
		}
		s.afterRatingWrite(req.MatchID, req.GameID)

		stats, err := s.Ratings.GetStats(req.MatchID, req.GameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load stats", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"stats":   stats,
		})
	}
}

// SubmitRatingCardHandler records a whole rating card in one transaction,
// including the whole-match fun score under its reserved entity key.
func (s *Server) SubmitRatingCardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}

		var req submitCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.MatchID == "" || len(req.Scores) == 0 {
			respondError(w, http.StatusBadRequest, "match_id and at least one score are required", "")
			return
		}

		if err := s.Ratings.SubmitBatch(userID, req.MatchID, req.GameID, req.Scores); err != nil {
			s.respondRatingError(w, err)
			return
		}
		s.afterRatingWrite(req.MatchID, req.GameID)

		stats, err := s.Ratings.GetStats(req.MatchID, req.GameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load stats", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"submitted": len(req.Scores),
			"stats":     stats,
		})
	}
}

// GetUserRatingHandler returns the caller's own scores for one match,
// nested by game, so the client can pre-fill an edit form.
func (s *Server) GetUserRatingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}
		matchID := r.URL.Query().Get("matchId")
		if matchID == "" {
			respondError(w, http.StatusBadRequest, "matchId is required", "")
			return
		}

		ur, err := s.Ratings.GetUserRating(userID, matchID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load rating", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"match_id": matchID,
			"rating":   ur,
		})
	}
}

func (s *Server) respondRatingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, rating.ErrMatchNotFound):
		respondError(w, http.StatusNotFound, "match not found", err.Error())
	case errors.Is(err, rating.ErrInvalidScore):
		respondError(w, http.StatusBadRequest, "invalid score", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "failed to submit rating", err.Error())
	}
}

func (s *Server) afterRatingWrite(matchID, gameID string) {
	s.Metrics.IncRatingsSubmitted()
	if err := s.pubsub.SendMessage(pubsub.EventStatsUpdated, pubsub.MatchEvent{MatchID: matchID, GameID: gameID, Reason: "rating"}); err != nil {
		log.Error("Failed to publish stats-updated event", "error", err, "matchID", matchID)
	}
}
