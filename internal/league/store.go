package league

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jmpark86/fanscore/internal/roster"
)

// ErrNotFound is returned when a match or team does not exist in the store.
var ErrNotFound = errors.New("not found")

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// UpsertMatch inserts a new match or merges into an existing one. Fields not
// supplied by the sync source keep their stored values; admin pins on
// sub-games survive a re-sync.
func (s *store) UpsertMatch(match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := s.upsertMatchTx(tx, match); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// UpsertMatches writes a batch of matches in one transaction.
func (s *store) UpsertMatches(matches []*Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := s.upsertMatchTx(tx, match); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) upsertMatchTx(tx *sql.Tx, match *Match) error {
	// Carry over pins from the stored games so a re-sync never clobbers them.
	var existingGames sql.NullString
	err := tx.QueryRow("SELECT games_json FROM matches WHERE id = ?", match.ID).Scan(&existingGames)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if existingGames.Valid && existingGames.String != "" {
		var stored []Game
		if err := json.Unmarshal([]byte(existingGames.String), &stored); err != nil {
			log.Error("Failed to unmarshal stored games_json", "error", err, "matchID", match.ID)
		} else {
			mergeGamePins(match.Games, stored)
		}
	}

	gamesJSON, err := json.Marshal(match.Games)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO matches (id, league, season, date, status, home_id, home_name, home_code, home_logo, home_score, away_id, away_name, away_code, away_logo, away_score, games_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			league = excluded.league,
			season = excluded.season,
			date = excluded.date,
			status = excluded.status,
			home_id = excluded.home_id,
			home_name = excluded.home_name,
			home_code = excluded.home_code,
			home_logo = excluded.home_logo,
			home_score = excluded.home_score,
			away_id = excluded.away_id,
			away_name = excluded.away_name,
			away_code = excluded.away_code,
			away_logo = excluded.away_logo,
			away_score = excluded.away_score,
			games_json = excluded.games_json;
	`, match.ID, match.League, match.Season, match.Date, match.Status,
		match.Home.ID, match.Home.Name, match.Home.Code, match.Home.Logo, match.Home.Score,
		match.Away.ID, match.Away.Name, match.Away.Code, match.Away.Logo, match.Away.Score,
		string(gamesJSON))
	return err
}

// mergeGamePins copies ActivePlayers from stored games onto incoming games
// that do not carry their own pins. Games are matched by id.
func mergeGamePins(incoming []Game, stored []Game) {
	pins := make(map[string]map[string]string)
	for _, g := range stored {
		if len(g.ActivePlayers) > 0 {
			pins[g.ID] = g.ActivePlayers
		}
	}
	for i := range incoming {
		if incoming[i].ActivePlayers == nil {
			if p, ok := pins[incoming[i].ID]; ok {
				incoming[i].ActivePlayers = p
			}
		}
	}
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(matchID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, league, season, date, status, home_id, home_name, home_code, home_logo, home_score, away_id, away_name, away_code, away_logo, away_score, games_json
		FROM matches WHERE id = ?
	`, matchID)
	match, err := scanMatch(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return match, err
}

// GetAllMatches retrieves all matches ordered by kickoff date. The date
// column is a KST local-time string that sorts lexicographically.
func (s *store) GetAllMatches() ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, league, season, date, status, home_id, home_name, home_code, home_logo, home_score, away_id, away_name, away_code, away_logo, away_score, games_json
		FROM matches ORDER BY date DESC
	`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var match Match
	var gamesJSON sql.NullString

	err := scanner.Scan(
		&match.ID, &match.League, &match.Season, &match.Date, &match.Status,
		&match.Home.ID, &match.Home.Name, &match.Home.Code, &match.Home.Logo, &match.Home.Score,
		&match.Away.ID, &match.Away.Name, &match.Away.Code, &match.Away.Logo, &match.Away.Score,
		&gamesJSON,
	)
	if err != nil {
		return nil, err
	}

	if gamesJSON.Valid && gamesJSON.String != "" {
		if err := json.Unmarshal([]byte(gamesJSON.String), &match.Games); err != nil {
			log.Error("Failed to unmarshal games_json", "error", err, "matchID", match.ID)
		}
	} else {
		match.Games = []Game{}
	}
	return &match, nil
}

// ApplyLive merges live score/state data into an existing match, touching
// only the fields the live provider owns. Returns false when the match is
// not in the store; live data for unknown matches is dropped by the caller.
func (s *store) ApplyLive(matchID string, status MatchStatus, homeScore, awayScore int, games []Game) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}

	var gamesJSON sql.NullString
	err = tx.QueryRow("SELECT games_json FROM matches WHERE id = ?", matchID).Scan(&gamesJSON)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return false, nil
	}
	if err != nil {
		tx.Rollback()
		return false, err
	}

	var stored []Game
	if gamesJSON.Valid && gamesJSON.String != "" {
		if err := json.Unmarshal([]byte(gamesJSON.String), &stored); err != nil {
			log.Error("Failed to unmarshal stored games_json", "error", err, "matchID", matchID)
			stored = nil
		}
	}
	merged := mergeLiveGames(stored, games)
	mergedJSON, err := json.Marshal(merged)
	if err != nil {
		tx.Rollback()
		return false, err
	}

	_, err = tx.Exec(`
		UPDATE matches SET status = ?, home_score = ?, away_score = ?, games_json = ? WHERE id = ?
	`, status, homeScore, awayScore, string(mergedJSON), matchID)
	if err != nil {
		tx.Rollback()
		return false, err
	}
	return true, tx.Commit()
}

// mergeLiveGames updates per-game live state in place, preserving pins and
// keeping stored games the live feed did not mention.
func mergeLiveGames(stored []Game, live []Game) []Game {
	byID := make(map[string]int, len(stored))
	for i, g := range stored {
		byID[g.ID] = i
	}
	for _, lg := range live {
		if i, ok := byID[lg.ID]; ok {
			stored[i].Finished = lg.Finished
			stored[i].WinnerID = lg.WinnerID
			stored[i].Position = lg.Position
		} else {
			stored = append(stored, lg)
		}
	}
	return stored
}

// PinPlayer fixes which roster candidate is the active player for a
// position on one side of a specific sub-game.
func (s *store) PinPlayer(matchID, gameID, side string, pos roster.Position, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var gamesJSON sql.NullString
	err = tx.QueryRow("SELECT games_json FROM matches WHERE id = ?", matchID).Scan(&gamesJSON)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	var games []Game
	if gamesJSON.Valid && gamesJSON.String != "" {
		if err := json.Unmarshal([]byte(gamesJSON.String), &games); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to unmarshal games_json: %w", err)
		}
	}

	found := false
	for i := range games {
		if games[i].ID == gameID {
			if games[i].ActivePlayers == nil {
				games[i].ActivePlayers = make(map[string]string)
			}
			games[i].ActivePlayers[roster.PinKey(side, pos)] = playerID
			found = true
			break
		}
	}
	if !found {
		tx.Rollback()
		return fmt.Errorf("game %s in match %s: %w", gameID, matchID, ErrNotFound)
	}

	updatedJSON, err := json.Marshal(games)
	if err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec("UPDATE matches SET games_json = ? WHERE id = ?", string(updatedJSON), matchID); err != nil {
		tx.Rollback()
		return err
	}
	log.Info("Pinned active player", "matchID", matchID, "gameID", gameID, "side", side, "position", pos, "playerID", playerID)
	return tx.Commit()
}

// UpsertTeam inserts a new team-year record or merges into an existing one.
// Later-loaded roster data overwrites earlier data, never appends.
func (s *store) UpsertTeam(team *Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	playersJSON, err := json.Marshal(team.Players)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, code, year, logo, players_json)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			code = excluded.code,
			year = excluded.year,
			logo = excluded.logo,
			players_json = excluded.players_json;
	`, team.ID, team.Name, team.Code, team.Year, team.Logo, string(playersJSON))
	return err
}

// GetTeam retrieves a single team by id.
func (s *store) GetTeam(teamID string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, code, year, logo, players_json FROM teams WHERE id = ?", teamID)
	team, err := scanTeam(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return team, err
}

// GetAllTeams retrieves all teams ordered by name.
func (s *store) GetAllTeams() ([]*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, code, year, logo, players_json FROM teams ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func scanTeam(scanner interface{ Scan(...any) error }) (*Team, error) {
	var team Team
	var code, logo, playersJSON sql.NullString

	if err := scanner.Scan(&team.ID, &team.Name, &code, &team.Year, &logo, &playersJSON); err != nil {
		return nil, err
	}
	team.Code = code.String
	team.Logo = logo.String

	if playersJSON.Valid && playersJSON.String != "" {
		if err := json.Unmarshal([]byte(playersJSON.String), &team.Players); err != nil {
			log.Error("Failed to unmarshal players_json", "error", err, "teamID", team.ID)
		}
	} else {
		team.Players = []PlayerDetail{}
	}
	return &team, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"comments", "ratings", "rating_stats", "matches", "teams"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}
