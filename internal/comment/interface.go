package comment

// CommentStore defines the interface for the comment/review collection.
type CommentStore interface {
	Upsert(userID, matchID, gameID, playerName, content string) (*Comment, error)
	ToggleLike(commentID, userID string) (*Comment, error)
	Delete(commentID, requesterID string) error
	Best(matchID, gameID, playerName string) ([]Comment, error)
	Recent(matchID, gameID, playerName string, page int) ([]Comment, error)
}
