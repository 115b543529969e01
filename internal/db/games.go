package db

import (
	"fmt"

	"primehunt/internal/game"
)

func (d *DB) BatchRecordGames(records []game.Record) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO games (id, mode, name, score, wave, correct_hits, wrong_hits, completed, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.ID, r.Mode, r.Name, r.Score, r.Wave, r.CorrectHits, r.WrongHits, r.Completed, r.PlayedAt); err != nil {
			return fmt.Errorf("recording game in batch: %w", err)
		}
	}

	return tx.Commit()
}

// RecentGames lists the newest archived games. An empty mode matches all.
func (d *DB) RecentGames(mode string, limit int) ([]game.Record, error) {
	rows, err := d.conn.Query(`
		SELECT id, mode, name, score, wave, correct_hits, wrong_hits, completed, played_at
		FROM games
		WHERE $1::text = '' OR mode = $1
		ORDER BY played_at DESC
		LIMIT $2
	`, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	var list []game.Record
	for rows.Next() {
		var r game.Record
		if err := rows.Scan(&r.ID, &r.Mode, &r.Name, &r.Score, &r.Wave, &r.CorrectHits, &r.WrongHits, &r.Completed, &r.PlayedAt); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		list = append(list, r)
	}
	return list, rows.Err()
}

func (d *DB) Summaries() ([]game.Summary, error) {
	rows, err := d.conn.Query(`
		SELECT mode, COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		FROM games
		GROUP BY mode
		ORDER BY mode
	`)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var list []game.Summary
	for rows.Next() {
		var s game.Summary
		if err := rows.Scan(&s.Mode, &s.Games, &s.BestScore, &s.AvgScore); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (d *DB) ClearGames() error {
	if _, err := d.conn.Exec(`DELETE FROM games`); err != nil {
		return fmt.Errorf("clearing games: %w", err)
	}
	return nil
}
