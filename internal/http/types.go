package http

import (
	"net/http"

	"github.com/jmpark86/fanscore/internal/comment"
	"github.com/jmpark86/fanscore/internal/config"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/metrics"
	"github.com/jmpark86/fanscore/internal/pubsub"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/jmpark86/fanscore/internal/syncer"
	"github.com/jmpark86/fanscore/internal/user"
)

type Server struct {
	Store          league.LeagueStore
	Ratings        rating.RatingStore
	Comments       comment.CommentStore
	Users          user.UserStore
	Syncer         *syncer.Syncer
	Status         syncer.StatusStore
	Counters       metrics.MetricsStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// errorEnvelope is the JSON error shape for every failure response.
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
