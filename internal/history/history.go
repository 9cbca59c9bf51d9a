// Package history implements the hand history recorder, a supplemental
// ambient feature independent of the core snapshot/checkpoint system:
// it appends one row per completed hand so operators can audit or
// replay scoring after the fact. Grounded on ledger.Service's
// mode-switch factory (NewServiceFromEnv) and auth.sqlite.go's schema
// bootstrap, both generalized from authMode-keyed storage selection to
// this package's own HandHistoryMode.
package history

import (
	"context"

	"funeuchre/internal/config"
	"funeuchre/internal/euchre"
	"funeuchre/internal/ids"
)

// Record is one completed hand, captured once its last trick leaves the
// engine in PhaseScore and before scoreHand awards the hand's points, so
// ScoreA/ScoreB are the game scores going into this hand.
type Record struct {
	GameId      ids.GameId
	HandNumber  int
	Maker       string
	Alone       bool
	Trump       string
	TricksA     int
	TricksB     int
	ScoreA      int
	ScoreB      int
	EndedAtMs   int64
}

// Service records completed hands. The noop implementation is used
// whenever HAND_HISTORY_MODE is disabled, so callers never need to
// branch on whether recording is turned on.
type Service interface {
	RecordHand(ctx context.Context, r Record) error
	Close() error
}

// NewFromConfig selects the recorder implementation for cfg's
// HandHistoryMode, mirroring ledger.NewServiceFromEnv's mode switch.
func NewFromConfig(cfg config.Config) (Service, error) {
	switch cfg.HandHistoryMode {
	case config.HandHistorySQLite:
		return newSQLiteService(cfg.HandHistoryPath)
	default:
		return noopService{}, nil
	}
}

type noopService struct{}

func (noopService) RecordHand(context.Context, Record) error { return nil }
func (noopService) Close() error                              { return nil }

// RecordFromState builds a Record from a hand whose last trick has been
// played (s.Phase == euchre.PhaseScore, before scoreHand runs and before
// the next deal overwrites Maker/Trump for the following hand).
func RecordFromState(gameId ids.GameId, s euchre.State, endedAtMs int64) Record {
	r := Record{
		GameId:     gameId,
		HandNumber: s.HandNumber,
		Alone:      s.Alone,
		TricksA:    s.TricksWon.TeamA,
		TricksB:    s.TricksWon.TeamB,
		ScoreA:     s.Scores.TeamA,
		ScoreB:     s.Scores.TeamB,
		EndedAtMs:  endedAtMs,
	}
	if s.Maker != nil {
		r.Maker = s.Maker.String()
	}
	if s.Trump != nil {
		r.Trump = s.Trump.String()
	}
	return r
}
