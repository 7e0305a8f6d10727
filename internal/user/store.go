// Package user holds the server-side role table. Authorization is checked
// per request against this table; there is no client-visible admin list.
package user

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

const (
	RoleFan   = "fan"
	RoleAdmin = "admin"
)

// UserStore defines the role lookups the HTTP layer needs.
type UserStore interface {
	Upsert(userID, name, role string) error
	GetRole(userID string) (string, error)
	IsAdmin(userID string) bool
}

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new UserStore.
func New(db *sql.DB) UserStore {
	return &store{
		db: db,
	}
}

func (s *store) Upsert(userID, name, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO users (id, name, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role;
	`, userID, name, role)
	return err
}

// GetRole returns the stored role; unknown users are plain fans.
func (s *store) GetRole(userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var role string
	err := s.db.QueryRow("SELECT role FROM users WHERE id = ?", userID).Scan(&role)
	if err == sql.ErrNoRows {
		return RoleFan, nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *store) IsAdmin(userID string) bool {
	role, err := s.GetRole(userID)
	if err != nil {
		log.Error("Failed to look up user role", "error", err, "userID", userID)
		return false
	}
	return role == RoleAdmin
}
