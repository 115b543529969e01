package db

import (
	"database/sql"
	"errors"
	"fmt"
)

func (d *DB) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := d.conn.QueryRow(`SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("getting %s: %w", key, err)
	}
	return value, true, nil
}

func (d *DB) Set(key string, value []byte) error {
	_, err := d.conn.Exec(`
		INSERT INTO kv (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

func (d *DB) Delete(key string) error {
	if _, err := d.conn.Exec(`DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

func (d *DB) Keys() ([]string, error) {
	rows, err := d.conn.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
