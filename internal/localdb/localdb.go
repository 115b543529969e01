// Package localdb is the embedded SQLite store used when no PostgreSQL
// database is configured.
package localdb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
);

CREATE TABLE IF NOT EXISTS games (
	id           TEXT PRIMARY KEY,
	mode         TEXT NOT NULL,
	name         TEXT NOT NULL,
	score        INTEGER NOT NULL,
	wave         INTEGER NOT NULL DEFAULT 0,
	correct_hits INTEGER NOT NULL DEFAULT 0,
	wrong_hits   INTEGER NOT NULL DEFAULT 0,
	completed    BOOLEAN NOT NULL DEFAULT 0,
	played_at    TIMESTAMP NOT NULL
);`

// DB implements kv.Store and the game archive on SQLite.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer avoids SQLITE_BUSY under concurrent sessions.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping() error {
	return db.conn.Ping()
}

func (db *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := db.conn.Get(&value, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}
	return value, true, nil
}

func (db *DB) Set(key string, value []byte) error {
	_, err := db.conn.Exec("INSERT OR REPLACE INTO kv (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (db *DB) Delete(key string) error {
	if _, err := db.conn.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (db *DB) Keys() ([]string, error) {
	var keys []string
	if err := db.conn.Select(&keys, "SELECT key FROM kv ORDER BY key"); err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}
