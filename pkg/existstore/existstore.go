// Package existstore persists title-existence knowledge in a SQLite
// database, so repeated runs against the same wiki do not re-learn which
// pages exist. It implements title.Registry.
package existstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yaklabco/gowikitext/pkg/title"
)

// Store is a SQLite-backed existence registry. Safe for concurrent use;
// database/sql serializes access.
type Store struct {
	db *sql.DB
}

var _ title.Registry = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS titles (
	key        TEXT PRIMARY KEY,
	present    INTEGER NOT NULL,
	checked_at TEXT NOT NULL
);
`

// Open opens or creates the store at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("existstore: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("existstore: initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Lookup reports whether key's existence is recorded, and if so what it is.
func (s *Store) Lookup(key string) (exists, known bool, err error) {
	var present int
	err = s.db.QueryRow("SELECT present FROM titles WHERE key = ?", key).Scan(&present)
	switch {
	case err == sql.ErrNoRows:
		return false, false, nil
	case err != nil:
		return false, false, fmt.Errorf("existstore: lookup %q: %w", key, err)
	}
	return present != 0, true, nil
}

// Record stores whether key exists, replacing any earlier record.
func (s *Store) Record(key string, exists bool) error {
	present := 0
	if exists {
		present = 1
	}
	_, err := s.db.Exec(
		"INSERT INTO titles (key, present, checked_at) VALUES (?, ?, ?) "+
			"ON CONFLICT(key) DO UPDATE SET present = excluded.present, checked_at = excluded.checked_at",
		key, present, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("existstore: record %q: %w", key, err)
	}
	return nil
}

// Remove drops key's record.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM titles WHERE key = ?", key); err != nil {
		return fmt.Errorf("existstore: remove %q: %w", key, err)
	}
	return nil
}

// Len reports the number of recorded titles.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM titles").Scan(&n); err != nil {
		return 0, fmt.Errorf("existstore: count: %w", err)
	}
	return n, nil
}

// Known implements title.Registry. Database errors read as unknown.
func (s *Store) Known(key string) (bool, bool) {
	exists, known, err := s.Lookup(key)
	if err != nil {
		return false, false
	}
	return exists, known
}

// SetKnown implements title.Registry, dropping any storage error. Callers
// that need the error use Record directly.
func (s *Store) SetKnown(key string, exists bool) {
	_ = s.Record(key, exists)
}

// Forget implements title.Registry, dropping any storage error.
func (s *Store) Forget(key string) {
	_ = s.Remove(key)
}
