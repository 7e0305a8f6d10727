package livefeed

// LiveFeedClient defines the outbound calls made against the live-score provider.
type LiveFeedClient interface {
	GetLiveMatches(leagueID string, from string, to string) ([]LiveMatch, error)
	GetRoster(teamID string) ([]RosterPlayer, error)
}
