package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. The
// presentation layer subscribes to these to re-render on document changes.
type EventType string

const (
	EventMatchUpdated EventType = "match-updated"
	EventStatsUpdated EventType = "stats-updated"
)

// MatchEvent is the payload published when a match document changes.
type MatchEvent struct {
	MatchID string `msgpack:"match_id"`
	GameID  string `msgpack:"game_id,omitempty"`
	Reason  string `msgpack:"reason"`
}
