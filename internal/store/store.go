// Package store is the device-local key-value store, the desktop stand-in
// for a mobile platform's async storage. Values live in a small SQLite
// database so concurrent mq processes share one source of truth.
package store

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Well-known keys.
const (
	KeyAuthToken = "auth_token"
	KeyInstallID = "install_id"
)

const dbFileName = "mq.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS mq_kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at INTEGER NOT NULL
);
`

// Store is an open handle to the key-value database.
type Store struct {
	conn *sql.DB
	dir  string
}

// DBPath returns the database path inside dir.
func DBPath(dir string) string {
	return filepath.Join(dir, dbFileName)
}

// Open opens (creating if needed) the key-value store under dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	conn, err := sql.Open("sqlite", DBPath(dir))
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Store{conn: conn, dir: dir}, nil
}

// Dir returns the directory the store lives in.
func (s *Store) Dir() string {
	return s.dir
}

// Get reads a value. The second return is false when the key is absent.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.conn.QueryRow("SELECT value FROM mq_kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set writes a value, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO mq_kv (key, value, updated_at) VALUES (?, ?, strftime('%s','now'))",
		key, value,
	)
	return err
}

// Remove deletes a key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	_, err := s.conn.Exec("DELETE FROM mq_kv WHERE key = ?", key)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.conn.Close()
}
