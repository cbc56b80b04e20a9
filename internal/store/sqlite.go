package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the SQLite connection with initialization logic.
type DB struct {
	*sql.DB
}

// Open creates or opens the SQLite database at the given path, runs schema
// initialization, and configures WAL mode for concurrent reads.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite handles one writer at a time

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  seq INTEGER NOT NULL,
  timestamp TEXT NOT NULL,
  type TEXT NOT NULL,
  title TEXT NOT NULL,
  content TEXT NOT NULL,
  metadata TEXT
);

CREATE INDEX IF NOT EXISTS idx_entries_seq ON entries(seq);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// runMigrations applies incremental schema changes. Each migration is
// idempotent so it is safe to call on every database open.
func runMigrations(db *sql.DB) error {
	// --- Migration v1: key/value table for settings and UI state ---
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}

	// --- Migration v2: type index for category counts ---
	hasTypeIndex, err := indexExists(db, "idx_entries_type")
	if err != nil {
		return fmt.Errorf("check type index: %w", err)
	}
	if !hasTypeIndex {
		if _, err := db.Exec(`CREATE INDEX idx_entries_type ON entries(type)`); err != nil {
			return fmt.Errorf("run migration v2: %w", err)
		}
	}

	return nil
}

// EntryCount returns the total number of entries in the database.
func (db *DB) EntryCount() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// indexExists checks sqlite_master for a named index. It closes the rows
// cursor before returning, avoiding deadlocks with MaxOpenConns(1).
func indexExists(db *sql.DB, name string) (bool, error) {
	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type = 'index' AND name = ?`, name)
	if err != nil {
		return false, err
	}
	found := rows.Next()
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return found, nil
}
