package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/comment"
	"github.com/jmpark86/fanscore/internal/config"
	"github.com/jmpark86/fanscore/internal/database"
	server "github.com/jmpark86/fanscore/internal/http"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/livefeed"
	"github.com/jmpark86/fanscore/internal/metrics"
	"github.com/jmpark86/fanscore/internal/notifier/slack"
	"github.com/jmpark86/fanscore/internal/pandascore"
	"github.com/jmpark86/fanscore/internal/pubsub"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/jmpark86/fanscore/internal/syncer"
	"github.com/jmpark86/fanscore/internal/user"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	leagueStore := league.New(db)
	ratingStore := rating.New(db)
	commentStore := comment.New(db, ratingStore)
	userStore := user.New(db)
	statusStore := syncer.NewStatusStore(db)
	counterStore := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	scheduleClient := pandascore.NewClient(cfg.PandaScore.Token, cfg.PandaScore.BaseURL)
	liveClient := livefeed.NewClient(cfg.LiveFeed.Token, cfg.LiveFeed.BaseURL)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID)
	ps := pubsub.New(cfg.ProjectID)
	sync := syncer.New(leagueStore, scheduleClient, liveClient, statusStore, metricsSvc, counterStore, notifier, ps, cfg.League)

	s := server.NewServer(
		leagueStore,
		ratingStore,
		commentStore,
		userStore,
		sync,
		statusStore,
		counterStore,
		metricsSvc,
		metricsHandler,
		cfg,
		ps,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
