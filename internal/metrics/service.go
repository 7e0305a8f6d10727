package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service implements Metrics on top of Prometheus collectors.
type Service struct {
	SyncRuns           *prometheus.CounterVec
	ProviderCalls      *prometheus.CounterVec
	RatingsSubmitted   prometheus.Counter
	CommentsWritten    prometheus.Counter
	SyncDuration       *prometheus.HistogramVec
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SyncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanscore_sync_runs_total",
			Help: "The total number of sync job runs, by job.",
		}, []string{"job"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fanscore_provider_calls_total",
			Help: "The total number of outbound provider API calls, by provider.",
		}, []string{"provider"}),
		RatingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fanscore_ratings_submitted_total",
			Help: "The total number of rating submissions folded into an aggregate.",
		}),
		CommentsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fanscore_comments_written_total",
			Help: "The total number of comment upserts.",
		}),
		SyncDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fanscore_sync_duration_seconds",
			Help:    "The duration of sync job runs, by job.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"job"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fanscore_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SyncRuns,
		s.ProviderCalls,
		s.RatingsSubmitted,
		s.CommentsWritten,
		s.SyncDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSyncRuns(job string) {
	s.SyncRuns.WithLabelValues(job).Inc()
}

func (s *Service) IncProviderCalls(provider string) {
	s.ProviderCalls.WithLabelValues(provider).Inc()
}

func (s *Service) IncRatingsSubmitted() {
	s.RatingsSubmitted.Inc()
}

func (s *Service) IncCommentsWritten() {
	s.CommentsWritten.Inc()
}

func (s *Service) ObserveSyncDuration(job string, duration float64) {
	s.SyncDuration.WithLabelValues(job).Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
