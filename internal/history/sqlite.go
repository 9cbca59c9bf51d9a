package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// sqliteService appends hand records to a local sqlite database,
// grounded on auth.sqlite.go's SQLiteManager: same driver, same
// PRAGMA bootstrap, same ensure-schema-on-open pattern.
type sqliteService struct {
	db *sql.DB
}

func newSQLiteService(path string) (Service, error) {
	if path == "" {
		return nil, fmt.Errorf("history: sqlite mode requires a database path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: mkdir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy_timeout: %w", err)
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set journal_mode: %w", err)
	}
	if err := ensureHandHistorySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &sqliteService{db: db}, nil
}

func ensureHandHistorySchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS hand_history (
			game_id     TEXT NOT NULL,
			hand_number INTEGER NOT NULL,
			maker       TEXT NOT NULL,
			alone       INTEGER NOT NULL,
			trump       TEXT NOT NULL,
			tricks_a    INTEGER NOT NULL,
			tricks_b    INTEGER NOT NULL,
			score_a     INTEGER NOT NULL,
			score_b     INTEGER NOT NULL,
			ended_at_ms INTEGER NOT NULL,
			PRIMARY KEY (game_id, hand_number)
		)
	`)
	if err != nil {
		return fmt.Errorf("history: ensure schema: %w", err)
	}
	return nil
}

func (s *sqliteService) RecordHand(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO hand_history
			(game_id, hand_number, maker, alone, trump, tricks_a, tricks_b, score_a, score_b, ended_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, string(r.GameId), r.HandNumber, r.Maker, r.Alone, r.Trump, r.TricksA, r.TricksB, r.ScoreA, r.ScoreB, r.EndedAtMs)
	if err != nil {
		return fmt.Errorf("history: insert hand record: %w", err)
	}
	return nil
}

func (s *sqliteService) Close() error { return s.db.Close() }
