package comment

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNoRating rejects a comment upsert when the author holds no rating for
// the exact (match, game, player) key. Nothing is written.
var ErrNoRating = errors.New("a rating is required before commenting")

// ErrNotAuthor rejects a delete by anyone but the comment's author.
var ErrNotAuthor = errors.New("only the author can delete a comment")

// ErrNotFound is returned when a comment id does not exist.
var ErrNotFound = errors.New("comment not found")

// PageSize is the base page size of the recent-comments listing; each
// "load more" extends the limit by the same amount.
const PageSize = 5

// BestLimit caps the "best" listing.
const BestLimit = 3

// RatingReader is the slice of the rating store the comment precondition needs.
type RatingReader interface {
	GetScore(userID, matchID, gameID, entity string) (float64, bool, error)
}

// store handles all database operations for comments.
type store struct {
	db      *sql.DB
	ratings RatingReader
	mu      sync.RWMutex
}

// Comment is one user's free-text review of a player's game, identity-keyed
// so a user has at most one per (match, game, player).
type Comment struct {
	ID         string   `json:"id"`
	MatchID    string   `json:"match_id"`
	GameID     string   `json:"game_id"`
	PlayerName string   `json:"player_name"`
	UserID     string   `json:"user_id"`
	Content    string   `json:"content"`
	Rating     float64  `json:"rating"`
	Likes      int      `json:"likes"`
	LikedBy    []string `json:"liked_by"`
	CreatedAt  int64    `json:"created_at"`
	UpdatedAt  int64    `json:"updated_at"`
}
