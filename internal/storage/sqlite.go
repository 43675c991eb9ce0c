// Package storage provides SQLite-based persistence for replay journals.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hopper/internal/replay"
)

// ErrNotFound is returned when no journal has the requested ID.
var ErrNotFound = errors.New("storage: journal not found")

// Store manages the SQLite database connection for journal persistence.
type Store struct {
	db *sql.DB
}

// JournalInfo summarizes a stored journal without its events.
type JournalInfo struct {
	ID        string
	Seed      int64
	Width     float64
	Height    float64
	Ticks     int
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS journals (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			width REAL NOT NULL,
			height REAL NOT NULL,
			config TEXT NOT NULL,
			events TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journals_created ON journals(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveJournal stores j, replacing any journal with the same ID.
func (s *Store) SaveJournal(j replay.Journal) error {
	events, err := json.Marshal(j.Events)
	if err != nil {
		return fmt.Errorf("storage: cannot encode events: %w", err)
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO journals (id, seed, width, height, config, events, ticks, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Seed, j.Width, j.Height, j.Config, string(events), j.Ticks(),
		j.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save journal: %w", err)
	}
	return nil
}

// ListJournals returns the most recent journals, newest first.
func (s *Store) ListJournals(limit int) ([]JournalInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, seed, width, height, ticks, created_at
		 FROM journals
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query journals: %w", err)
	}
	defer rows.Close()

	var infos []JournalInfo
	for rows.Next() {
		var info JournalInfo
		var createdAt string
		if err := rows.Scan(&info.ID, &info.Seed, &info.Width, &info.Height, &info.Ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan journal: %w", err)
		}
		info.CreatedAt = parseTime(createdAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: error iterating journals: %w", err)
	}

	return infos, nil
}

// LoadJournal returns the journal with the given ID, or ErrNotFound.
func (s *Store) LoadJournal(id string) (replay.Journal, error) {
	var j replay.Journal
	var events, createdAt string

	err := s.db.QueryRow(
		`SELECT id, seed, width, height, config, events, created_at
		 FROM journals
		 WHERE id = ?`,
		id,
	).Scan(&j.ID, &j.Seed, &j.Width, &j.Height, &j.Config, &events, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return j, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return j, fmt.Errorf("storage: cannot query journal: %w", err)
	}

	if err := json.Unmarshal([]byte(events), &j.Events); err != nil {
		return j, fmt.Errorf("storage: journal %s: cannot decode events: %w", id, err)
	}
	j.CreatedAt = parseTime(createdAt)

	return j, nil
}

// DeleteJournal removes the journal with the given ID.
func (s *Store) DeleteJournal(id string) error {
	res, err := s.db.Exec("DELETE FROM journals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete journal: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func parseTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return t
}
