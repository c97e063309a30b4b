package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

const (
	keyBestScore = "best_score"
	keyMuted     = "muted"
)

// SQLite stores preferences in a single-table key-value schema.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the settings database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create settings table: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) set(key, value string) error {
	const stmt = `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`
	if _, err := s.db.Exec(stmt, key, value); err != nil {
		return fmt.Errorf("write setting %s: %w", key, err)
	}
	return nil
}

// BestScore returns the stored best score, or 0 when absent or malformed.
func (s *SQLite) BestScore() (int, error) {
	value, ok, err := s.get(keyBestScore)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	best, err := strconv.Atoi(value)
	if err != nil || best < 0 {
		return 0, nil
	}
	return best, nil
}

func (s *SQLite) SetBestScore(score int) error {
	return s.set(keyBestScore, strconv.Itoa(score))
}

// Muted returns the stored mute flag; anything but "1" means unmuted.
func (s *SQLite) Muted() (bool, error) {
	value, ok, err := s.get(keyMuted)
	if err != nil {
		return false, err
	}
	return ok && value == "1", nil
}

func (s *SQLite) SetMuted(muted bool) error {
	value := "0"
	if muted {
		value = "1"
	}
	return s.set(keyMuted, value)
}
