package comment

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new CommentStore. The rating reader enforces the
// rate-before-review precondition.
func New(db *sql.DB, ratings RatingReader) CommentStore {
	return &store{
		db:      db,
		ratings: ratings,
	}
}

// CommentID derives the deterministic document id, so repeated upserts for
// the same (match, game, player, user) replace rather than duplicate.
func CommentID(matchID, gameID, playerName, userID string) string {
	return strings.Join([]string{matchID, gameID, playerName, userID}, "_")
}

// Upsert writes or replaces the user's review. The author must already hold
// a non-zero rating for the exact key; otherwise this is a validation
// failure and nothing is written. The rating copied onto the comment is the
// author's score at submission time.
func (s *store) Upsert(userID, matchID, gameID, playerName, content string) (*Comment, error) {
	score, ok, err := s.ratings.GetScore(userID, matchID, gameID, playerName)
	if err != nil {
		return nil, err
	}
	if !ok || score == 0 {
		return nil, fmt.Errorf("%s on %s: %w", userID, playerName, ErrNoRating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Unix()
	id := CommentID(matchID, gameID, playerName, userID)

	_, err = s.db.Exec(`
		INSERT INTO comments (id, match_id, game_id, player_name, user_id, content, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			rating = excluded.rating,
			updated_at = excluded.updated_at;
	`, id, matchID, gameID, playerName, userID, content, score, now, now)
	if err != nil {
		return nil, err
	}
	log.Info("Comment upserted", "id", id)
	return s.getLocked(id)
}

// ToggleLike is an idempotent toggle: a second like by the same user undoes
// the first, returning likes and likedBy to their prior values.
func (s *store) ToggleLike(commentID, userID string) (*Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}

	var likedByJSON string
	err = tx.QueryRow("SELECT liked_by_json FROM comments WHERE id = ?", commentID).Scan(&likedByJSON)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return nil, ErrNotFound
	}
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	var likedBy []string
	if err := json.Unmarshal([]byte(likedByJSON), &likedBy); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to unmarshal liked_by_json: %w", err)
	}

	found := false
	for i, id := range likedBy {
		if id == userID {
			likedBy = append(likedBy[:i], likedBy[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		likedBy = append(likedBy, userID)
	}

	updatedJSON, err := json.Marshal(likedBy)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	_, err = tx.Exec("UPDATE comments SET likes = ?, liked_by_json = ? WHERE id = ?", len(likedBy), string(updatedJSON), commentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.getLocked(commentID)
}

// Delete removes a comment; only the author may do so. The check lives here,
// not in the client.
func (s *store) Delete(commentID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var authorID string
	err := s.db.QueryRow("SELECT user_id FROM comments WHERE id = ?", commentID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if authorID != requesterID {
		return ErrNotAuthor
	}

	_, err = s.db.Exec("DELETE FROM comments WHERE id = ?", commentID)
	if err == nil {
		log.Info("Comment deleted", "id", commentID)
	}
	return err
}

// Best returns the top comments by likes among those with at least one like.
func (s *store) Best(matchID, gameID, playerName string) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, match_id, game_id, player_name, user_id, content, rating, likes, liked_by_json, created_at, updated_at
		FROM comments
		WHERE match_id = ? AND game_id = ? AND player_name = ? AND likes > 0
		ORDER BY likes DESC, created_at DESC
		LIMIT ?
	`, matchID, gameID, playerName, BestLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

// Recent returns the non-best comments newest first. The limit grows by
// PageSize per "load more": page 1 returns 5, page 2 returns 10, and so on.
func (s *store) Recent(matchID, gameID, playerName string, page int) ([]Comment, error) {
	if page < 1 {
		page = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, match_id, game_id, player_name, user_id, content, rating, likes, liked_by_json, created_at, updated_at
		FROM comments
		WHERE match_id = ? AND game_id = ? AND player_name = ?
		  AND id NOT IN (
			SELECT id FROM comments
			WHERE match_id = ? AND game_id = ? AND player_name = ? AND likes > 0
			ORDER BY likes DESC, created_at DESC
			LIMIT ?
		  )
		ORDER BY created_at DESC
		LIMIT ?
	`, matchID, gameID, playerName, matchID, gameID, playerName, BestLimit, PageSize*page)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComments(rows)
}

func (s *store) getLocked(commentID string) (*Comment, error) {
	row := s.db.QueryRow(`
		SELECT id, match_id, game_id, player_name, user_id, content, rating, likes, liked_by_json, created_at, updated_at
		FROM comments WHERE id = ?
	`, commentID)
	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func scanComment(scanner interface{ Scan(...any) error }) (*Comment, error) {
	var c Comment
	var likedByJSON string
	err := scanner.Scan(
		&c.ID, &c.MatchID, &c.GameID, &c.PlayerName, &c.UserID,
		&c.Content, &c.Rating, &c.Likes, &likedByJSON, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(likedByJSON), &c.LikedBy); err != nil {
		log.Error("Failed to unmarshal liked_by_json", "error", err, "commentID", c.ID)
		c.LikedBy = []string{}
	}
	return &c, nil
}

func scanComments(rows *sql.Rows) ([]Comment, error) {
	var comments []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *c)
	}
	return comments, rows.Err()
}
