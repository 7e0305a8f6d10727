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

func NewServer(
	store league.LeagueStore,
	ratings rating.RatingStore,
	comments comment.CommentStore,
	users user.UserStore,
	sync *syncer.Syncer,
	status syncer.StatusStore,
	counters metrics.MetricsStore,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
	ps pubsub.PubSubClient,
) *Server {
	server := &Server{
		Store:          store,
		Ratings:        ratings,
		Comments:       comments,
		Users:          users,
		Syncer:         sync,
		Status:         status,
		Counters:       counters,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         ps,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Admin routes additionally check the server-side role table.
	admin := func(h http.Handler) http.Handler {
		return Chain(h, paramsMiddleware, s.adminMiddleware)
	}

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	// Admin/sync surface.
	s.Router.Handle("/sync", admin(s.SyncHandler()))
	s.Router.Handle("/schedule-sync", admin(s.ScheduleSyncHandler()))
	s.Router.Handle("/live-sync", admin(s.LiveSyncHandler()))
	s.Router.Handle("/sync-status", admin(s.SyncStatusHandler()))
	s.Router.Handle("/clear", admin(s.ClearStoreHandler()))
	s.Router.Handle("/pin", admin(s.PinPlayerHandler()))

	// Fan-facing surface.
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("/match", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("/match-live", Chain(s.MatchLiveHandler(), paramsMiddleware))
	s.Router.Handle("/rate", Chain(s.SubmitRatingHandler(), paramsMiddleware))
	s.Router.Handle("/rate-card", Chain(s.SubmitRatingCardHandler(), paramsMiddleware))
	s.Router.Handle("/rating", Chain(s.GetUserRatingHandler(), paramsMiddleware))
	s.Router.Handle("/comment", Chain(s.UpsertCommentHandler(), paramsMiddleware))
	s.Router.Handle("/comment/like", Chain(s.LikeCommentHandler(), paramsMiddleware))
	s.Router.Handle("/comment/delete", Chain(s.DeleteCommentHandler(), paramsMiddleware))
	s.Router.Handle("/comments", Chain(s.ListCommentsHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
