// Package envelope provides read-only access to an Apple Mail envelope
// database: a proprietary SQLite message index whose table layout varies
// between Mail versions. Nothing in this package assumes a fixed schema;
// callers discover the live column set first and build queries against it.
package envelope

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a short-lived read-only connection to an envelope database.
// Each tool invocation opens its own Store and closes it before returning;
// connections are never shared or pooled, since Mail may be writing to the
// file concurrently and we must never hold a lock.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the envelope database read-only. The mode=ro URI forbids both
// writes and creating the file when it is absent.
func Open(path string) (*Store, error) {
	dsn := "file:" + path + "?mode=ro"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open envelope database: %w", err)
	}

	// sql.Open is lazy; ping so an unreadable file fails here.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open envelope database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// quoteIdent quotes a table or column name for direct inclusion in SQL.
// Identifiers cannot be bound as parameters; callers must only pass names
// read back from the live catalog, never caller input.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
