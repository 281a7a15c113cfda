// Package store persists per-task duration records in SQLite. A record tracks
// when a task key was first and last observed in a day's pull requests and how
// many business days that span covers.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// dateLayout is the calendar-date format used everywhere in the store.
// Dates are plain UTC calendar days with no time component.
const dateLayout = "2006-01-02"

var (
	// ErrNotFound means a task key has no record. Callers treat this as
	// "day one", not as a failure.
	ErrNotFound = errors.New("task record not found")

	// ErrInvalidDate means a stored or supplied date failed calendar parsing.
	ErrInvalidDate = errors.New("invalid date")
)

// Store manages the SQLite database holding task duration records.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
	mu     sync.Mutex
}

// New opens (or creates) the SQLite database and runs migrations.
func New(dbPath string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	s.logger.Info().Str("path", dbPath).Msg("store initialized")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (s *Store) Ping() error {
	return s.db.Ping()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS task_durations (
		task_key            TEXT PRIMARY KEY,
		first_seen_date     TEXT NOT NULL,
		last_seen_date      TEXT NOT NULL,
		total_business_days INTEGER NOT NULL DEFAULT 1,
		created_at          INTEGER NOT NULL,
		updated_at          INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_task_durations_last_seen ON task_durations(last_seen_date);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create task_durations table: %w", err)
	}
	return nil
}
