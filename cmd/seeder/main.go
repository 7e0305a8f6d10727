package main

import (
	"encoding/json"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/jmpark86/fanscore/internal/comment"
	"github.com/jmpark86/fanscore/internal/database"
	"github.com/jmpark86/fanscore/internal/league"
	"github.com/jmpark86/fanscore/internal/rating"
	"github.com/jmpark86/fanscore/internal/user"
)

// Seeds a local database with a demo team, a finished match and two users
// (one fan, one admin) so the fan-facing surface can be exercised without
// hitting the real providers.
func main() {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "fanscore.db"
	}
	migrationsDir := os.Getenv("MIGRATIONS_DIR")
	if migrationsDir == "" {
		migrationsDir = "migrations"
	}

	db, teardown, err := database.InitDB(dbName, "", "", migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	users := user.New(db)
	if err := users.Upsert("seed-fan", "Seed Fan", user.RoleFan); err != nil {
		log.Fatalf("Failed to seed fan user: %s", err)
	}
	if err := users.Upsert("seed-admin", "Seed Admin", user.RoleAdmin); err != nil {
		log.Fatalf("Failed to seed admin user: %s", err)
	}
	log.Info("Ensured demo users exist.")

	store := league.New(db)
	team := &league.Team{
		ID:   "t1-demo",
		Name: "T1",
		Code: "T1",
		Year: 2026,
		Players: []league.PlayerDetail{
			{ID: "p-doran", Name: "Doran", Role: "top", Active: true, Starter: true},
			{ID: "p-oner", Name: "Oner", Role: "jungle", Active: true, Starter: true},
			{ID: "p-faker", Name: "Faker", Role: "mid", Active: true, Starter: true},
			{ID: "p-gumayusi", Name: "Gumayusi", Role: "adc", Active: true, Starter: true},
			{ID: "p-keria", Name: "Keria", Role: "support", Active: true, Starter: true},
		},
	}
	if err := store.UpsertTeam(team); err != nil {
		log.Fatalf("Failed to seed team: %s", err)
	}

	match := &league.Match{
		ID:     "demo-match-1",
		League: "LCK",
		Season: "Summer 2026",
		Date:   "2026-08-29 17:00",
		Status: league.StatusFinished,
		Home:   league.TeamSide{ID: "t1-demo", Name: "T1", Code: "T1", Score: 2},
		Away:   league.TeamSide{ID: "geng-demo", Name: "Gen.G", Code: "GEN", Score: 1},
		Games: []league.Game{
			{ID: "g1", Position: 1, Finished: true, WinnerID: "t1-demo"},
			{ID: "g2", Position: 2, Finished: true, WinnerID: "geng-demo"},
			{ID: "g3", Position: 3, Finished: true, WinnerID: "t1-demo"},
		},
	}
	if err := store.UpsertMatch(match); err != nil {
		log.Fatalf("Failed to seed match: %s", err)
	}
	log.Info("Ensured demo match exists.", "matchID", match.ID)

	ratings := rating.New(db)
	if err := ratings.SubmitBatch("seed-fan", match.ID, "g1", map[string]float64{
		"Faker":               9.5,
		"Oner":                8.0,
		rating.FunScoreEntity: 9.0,
	}); err != nil {
		log.Fatalf("Failed to seed ratings: %s", err)
	}

	comments := comment.New(db, ratings)
	if _, err := comments.Upsert("seed-fan", match.ID, "g1", "Faker", "Unkillable demon king."); err != nil {
		log.Fatalf("Failed to seed comment: %s", err)
	}

	seeded, _ := json.Marshal(map[string]any{"users": 2, "teams": 1, "matches": 1})
	log.Info("Seeding complete", "summary", string(seeded))
}
