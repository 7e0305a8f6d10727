package rating

// RatingStore defines the interface for submitting ratings and reading aggregates.
type RatingStore interface {
	Submit(userID, matchID, gameID, entity string, score float64) error
	SubmitBatch(userID, matchID, gameID string, scores map[string]float64) error
	GetStats(matchID, gameID string) (map[string]EntityStats, error)
	GetUserRating(userID, matchID string) (UserRating, error)
	GetScore(userID, matchID, gameID, entity string) (float64, bool, error)
}
