package rating

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new RatingStore.
func New(db *sql.DB) RatingStore {
	return &store{
		db: db,
	}
}

// validScore checks the [0,10] half-point grid.
func validScore(score float64) bool {
	if score < 0 || score > 10 {
		return false
	}
	doubled := score * 2
	return math.Abs(doubled-math.Round(doubled)) < 1e-9
}

// Submit folds one user's score for one entity into the running aggregate.
// The rating row and the stats row are written in the same transaction: a
// resubmission shifts the sum by new-old and leaves the count unchanged, a
// first submission adds to both. Concurrent submissions are serialized by
// the store mutex, so each one sees a consistent prior state.
func (s *store) Submit(userID, matchID, gameID, entity string, score float64) error {
	if !validScore(score) {
		return ErrInvalidScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := s.applyScoreTx(tx, userID, matchID, gameID, entity, score); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Rating submitted", "userID", userID, "matchID", matchID, "gameID", gameID, "entity", entity, "score", score)
	return nil
}

// SubmitBatch applies a whole-card submission: every entity on the card,
// including the reserved fun-score pseudo-entity, inside one transaction.
// Either every score lands or none does.
func (s *store) SubmitBatch(userID, matchID, gameID string, scores map[string]float64) error {
	for _, score := range scores {
		if !validScore(score) {
			return ErrInvalidScore
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	// Deterministic order keeps replays byte-identical.
	entities := make([]string, 0, len(scores))
	for entity := range scores {
		entities = append(entities, entity)
	}
	sort.Strings(entities)

	for _, entity := range entities {
		if err := s.applyScoreTx(tx, userID, matchID, gameID, entity, scores[entity]); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Rating card submitted", "userID", userID, "matchID", matchID, "gameID", gameID, "entities", len(entities))
	return nil
}

// applyScoreTx is the read-modify-write at the heart of the aggregate: read
// the user's previous score and the current stats row, apply the edit or
// first-submission path, write both rows back.
func (s *store) applyScoreTx(tx *sql.Tx, userID, matchID, gameID, entity string, score float64) error {
	var exists bool
	if err := tx.QueryRow("SELECT EXISTS(SELECT 1 FROM matches WHERE id = ?)", matchID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("match %s: %w", matchID, ErrMatchNotFound)
	}

	var oldScore float64
	hadPrevious := true
	err := tx.QueryRow(`
		SELECT score FROM ratings WHERE user_id = ? AND match_id = ? AND game_id = ? AND entity = ?
	`, userID, matchID, gameID, entity).Scan(&oldScore)
	if err == sql.ErrNoRows {
		hadPrevious = false
	} else if err != nil {
		return err
	}

	var (
		sum   float64
		count int
	)
	err = tx.QueryRow(`
		SELECT score_sum, score_count FROM rating_stats WHERE match_id = ? AND game_id = ? AND entity = ?
	`, matchID, gameID, entity).Scan(&sum, &count)
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	if hadPrevious {
		sum = sum - oldScore + score
	} else {
		sum += score
		count++
	}

	if _, err := tx.Exec(`
		INSERT INTO rating_stats (match_id, game_id, entity, score_sum, score_count)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(match_id, game_id, entity) DO UPDATE SET
			score_sum = excluded.score_sum,
			score_count = excluded.score_count;
	`, matchID, gameID, entity, sum, count); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO ratings (user_id, match_id, game_id, entity, score, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, match_id, game_id, entity) DO UPDATE SET
			score = excluded.score,
			updated_at = excluded.updated_at;
	`, userID, matchID, gameID, entity, score, time.Now().Unix())
	return err
}

// GetStats returns the aggregates for one (match, game), averages guarded
// against a zero count.
func (s *store) GetStats(matchID, gameID string) (map[string]EntityStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT entity, score_sum, score_count FROM rating_stats WHERE match_id = ? AND game_id = ?
	`, matchID, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]EntityStats)
	for rows.Next() {
		var (
			entity string
			es     EntityStats
		)
		if err := rows.Scan(&entity, &es.Sum, &es.Count); err != nil {
			return nil, err
		}
		if es.Count > 0 {
			es.Average = es.Sum / float64(es.Count)
		}
		stats[entity] = es
	}
	return stats, rows.Err()
}

// GetUserRating returns the user's rating document for a match, nested by game.
func (s *store) GetUserRating(userID, matchID string) (UserRating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT game_id, entity, score FROM ratings WHERE user_id = ? AND match_id = ?
	`, userID, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doc := make(UserRating)
	for rows.Next() {
		var (
			gameID, entity string
			score          float64
		)
		if err := rows.Scan(&gameID, &entity, &score); err != nil {
			return nil, err
		}
		if doc[gameID] == nil {
			doc[gameID] = make(map[string]float64)
		}
		doc[gameID][entity] = score
	}
	return doc, rows.Err()
}

// GetScore returns the user's current score for one exact key, if any.
func (s *store) GetScore(userID, matchID, gameID, entity string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var score float64
	err := s.db.QueryRow(`
		SELECT score FROM ratings WHERE user_id = ? AND match_id = ? AND game_id = ? AND entity = ?
	`, userID, matchID, gameID, entity).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}
