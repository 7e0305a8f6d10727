package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/jmpark86/fanscore/internal/comment"
)

type upsertCommentRequest struct {
	MatchID    string `json:"match_id"`
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	Content    string `json:"content"`
}

// UpsertCommentHandler writes or replaces the caller's review for one
// (match, game, player) tuple. A prior rating for that exact tuple is
// required; without one nothing is written.
func (s *Server) UpsertCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}

		var req upsertCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		if req.MatchID == "" || req.PlayerName == "" || req.Content == "" {
			respondError(w, http.StatusBadRequest, "match_id, player_name and content are required", "")
			return
		}

		c, err := s.Comments.Upsert(userID, req.MatchID, req.GameID, req.PlayerName, req.Content)
		if err != nil {
			if errors.Is(err, comment.ErrNoRating) {
				respondError(w, http.StatusBadRequest, "rating required before commenting", err.Error())
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to save comment", err.Error())
			return
		}
		s.Metrics.IncCommentsWritten()
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"comment": c,
		})
	}
}

// LikeCommentHandler toggles the caller's like on a comment. Liking twice
// returns to the unliked state.
func (s *Server) LikeCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}
		commentID := r.URL.Query().Get("commentId")
		if commentID == "" {
			respondError(w, http.StatusBadRequest, "commentId is required", "")
			return
		}

		c, err := s.Comments.ToggleLike(commentID, userID)
		if err != nil {
			if errors.Is(err, comment.ErrNotFound) {
				respondError(w, http.StatusNotFound, "comment not found", commentID)
				return
			}
			respondError(w, http.StatusInternalServerError, "failed to toggle like", err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"comment": c,
		})
	}
}

func (s *Server) DeleteCommentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := userIDFromRequest(r)
		if userID == "" {
			respondError(w, http.StatusUnauthorized, "user identity required", "")
			return
		}
		commentID := r.URL.Query().Get("commentId")
		if commentID == "" {
			respondError(w, http.StatusBadRequest, "commentId is required", "")
			return
		}

		if err := s.Comments.Delete(commentID, userID); err != nil {
			switch {
			case errors.Is(err, comment.ErrNotFound):
				respondError(w, http.StatusNotFound, "comment not found", commentID)
			case errors.Is(err, comment.ErrNotAuthor):
				respondError(w, http.StatusForbidden, "only the author can delete a comment", "")
			default:
				respondError(w, http.StatusInternalServerError, "failed to delete comment", err.Error())
			}
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// ListCommentsHandler returns the best comments (top liked) plus a paged
// recent list excluding them. page=N returns the first N pages worth.
func (s *Server) ListCommentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		matchID := q.Get("matchId")
		playerName := q.Get("playerName")
		if matchID == "" || playerName == "" {
			respondError(w, http.StatusBadRequest, "matchId and playerName are required", "")
			return
		}
		gameID := q.Get("gameId")

		page := 1
		if p := q.Get("page"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil || n < 1 {
				respondError(w, http.StatusBadRequest, "page must be a positive integer", p)
				return
			}
			page = n
		}

		best, err := s.Comments.Best(matchID, gameID, playerName)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load comments", err.Error())
			return
		}
		recent, err := s.Comments.Recent(matchID, gameID, playerName, page)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "failed to load comments", err.Error())
			return
		}

		respondJSON(w, http.StatusOK, map[string]any{
			"best":      best,
			"recent":    recent,
			"page":      page,
			"page_size": comment.PageSize,
		})
	}
}
