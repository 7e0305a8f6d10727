package config

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	League        LeagueConfig
	PandaScore    PandaScoreConfig
	LiveFeed      LiveFeedConfig
	Slack         SlackConfig
	Turso         TursoConfig
	ProjectID     string
	MatchTopic    string
}

// LeagueConfig identifies which league the service tracks upstream.
type LeagueConfig struct {
	ID   string
	Name string
}

type PandaScoreConfig struct {
	Token   string
	BaseURL string
}

type LiveFeedConfig struct {
	Token   string
	BaseURL string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
