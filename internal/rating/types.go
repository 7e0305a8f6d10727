package rating

import (
	"database/sql"
	"errors"
	"sync"
)

// FunScoreEntity is the reserved pseudo-entity for the whole-match "fun
// score". It is rated like a player but tied to no roster entry.
const FunScoreEntity = "match_fun_score"

// ErrMatchNotFound aborts a submission whose target match is missing at
// transaction time. No partial writes occur.
var ErrMatchNotFound = errors.New("match not found")

// ErrInvalidScore rejects scores outside [0,10] or off the half-point grid.
var ErrInvalidScore = errors.New("score must be between 0 and 10 in steps of 0.5")

// store handles all database operations for ratings and their aggregates.
// The mutex serializes aggregate mutations: every submission is a
// read-modify-write against the stats row, so writers take the lock for the
// whole transaction.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// EntityStats is the running aggregate for one rateable entity.
type EntityStats struct {
	Sum     float64 `json:"sum"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// UserRating is one user's submitted scores for one match, nested by game.
// The empty-string game key holds whole-match entities such as the fun score.
type UserRating map[string]map[string]float64
