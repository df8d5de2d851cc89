package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunRecord describes one finished run.
type RunRecord struct {
	RunID     string
	Board     string
	Score     int
	Bonuses   int
	Blocks    int
	Theme     string
	Seed      int64
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveRun records a finished run and adds its score to the board.
// A missing RunID is filled with a new UUID. Returns the stored run ID.
func (s *Store) SaveRun(run RunRecord) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(run.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.RunID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, board, score, bonuses, blocks, theme, seed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Board, run.Score, run.Bonuses, run.Blocks, run.Theme, run.Seed,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	if _, err := tx.Exec("INSERT INTO scores (board, score) VALUES (?, ?)", run.Board, run.Score); err != nil {
		return "", fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(
		`SELECT run_id, board, score, bonuses, blocks, theme, seed, duration_ms, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns retrieves the most recent runs on a board, newest first.
// An empty board lists runs from every board.
func (s *Store) RecentRuns(board string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT run_id, board, score, bonuses, blocks, theme, seed, duration_ms, created_at
		 FROM runs
		 WHERE ? = '' OR board = ?
		 ORDER BY rowid DESC
		 LIMIT ?`,
		board, board, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var run RunRecord
	var durationMs int64
	var createdAt any
	err := row.Scan(
		&run.RunID,
		&run.Board,
		&run.Score,
		&run.Bonuses,
		&run.Blocks,
		&run.Theme,
		&run.Seed,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	run.Duration = time.Duration(durationMs) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}
