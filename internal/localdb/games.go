package localdb

import (
	"fmt"

	"primehunt/internal/game"
)

func (db *DB) BatchRecordGames(records []game.Record) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, r := range records {
		_, err := tx.NamedExec(`INSERT OR IGNORE INTO games
			(id, mode, name, score, wave, correct_hits, wrong_hits, completed, played_at)
			VALUES (:id, :mode, :name, :score, :wave, :correct_hits, :wrong_hits, :completed, :played_at)`, r)
		if err != nil {
			return fmt.Errorf("recording game in batch: %w", err)
		}
	}
	return tx.Commit()
}

// RecentGames lists the newest archived games. An empty mode matches all.
func (db *DB) RecentGames(mode string, limit int) ([]game.Record, error) {
	var list []game.Record
	err := db.conn.Select(&list, `SELECT id, mode, name, score, wave, correct_hits, wrong_hits, completed, played_at
		FROM games
		WHERE ? = '' OR mode = ?
		ORDER BY played_at DESC
		LIMIT ?`, mode, mode, limit)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	return list, nil
}

func (db *DB) Summaries() ([]game.Summary, error) {
	var list []game.Summary
	err := db.conn.Select(&list, `SELECT mode, COUNT(*) AS games,
		COALESCE(MAX(score), 0) AS best_score, COALESCE(AVG(score), 0.0) AS avg_score
		FROM games
		GROUP BY mode
		ORDER BY mode`)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	return list, nil
}

func (db *DB) ClearGames() error {
	if _, err := db.conn.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("clearing games: %w", err)
	}
	return nil
}
