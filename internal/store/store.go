package store

import (
	"database/sql"
	"fmt"
	"io"
	"log"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database holding progress and match history
type DB struct {
	conn *sql.DB
	log  *log.Logger
}

// Open opens (or creates) the database at path and migrates it.
// A nil logger discards output.
func Open(path string, logger *log.Logger) (*DB, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}

	db := &DB{conn: conn, log: logger}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS results (
		match_id TEXT PRIMARY KEY,
		profile TEXT NOT NULL DEFAULT '',
		mode TEXT NOT NULL,
		difficulty TEXT NOT NULL DEFAULT '',
		stage INTEGER NOT NULL DEFAULT 0,
		won INTEGER NOT NULL DEFAULT 0,
		passed INTEGER NOT NULL DEFAULT 0,
		left_score INTEGER NOT NULL DEFAULT 0,
		right_score INTEGER NOT NULL DEFAULT 0,
		duration REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_results_profile ON results(profile);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		db.log.Printf("[DB] migration error: %v", err)
		return fmt.Errorf("migrate: %w", err)
	}
	db.log.Println("[DB] schema ready")
	return nil
}

// Get returns the raw value for key, or nil if absent
func (db *DB) Get(key string) ([]byte, error) {
	var value []byte
	err := db.conn.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value
func (db *DB) Set(key string, value []byte) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
