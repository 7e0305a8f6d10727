package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional env var with a default.
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		League: LeagueConfig{
			ID:   getEnvOr("LEAGUE_ID", "293"),
			Name: getEnvOr("LEAGUE_NAME", "LCK"),
		},
		PandaScore: PandaScoreConfig{
			Token:   getEnv("PANDASCORE_TOKEN"),
			BaseURL: getEnvOr("PANDASCORE_BASE_URL", "https://api.pandascore.co"),
		},
		LiveFeed: LiveFeedConfig{
			Token:   getEnv("LIVEFEED_TOKEN"),
			BaseURL: getEnvOr("LIVEFEED_BASE_URL", "https://esports.livefeed.io/v2"),
		},
		Slack: SlackConfig{
			Token:     getEnv("SLACK_BOT_TOKEN"),
			ChannelID: getEnv("SLACK_CHANNEL_ID"),
		},
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		ProjectID:  getEnv("GCP_PROJECT"),
		MatchTopic: getEnvOr("MATCH_TOPIC", "match-updated"),
	}
	return cfg
}
