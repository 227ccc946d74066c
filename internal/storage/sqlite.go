// Package storage provides SQLite-based persistence for run and solve history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for history persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished playthrough of a level.
type RunRecord struct {
	ID          int64
	AttemptID   string // Groups the runs of one level session
	LevelID     string
	Outcome     string // "won" or "lost"
	Cause       string // Loss cause, empty on a win
	Step        int
	MovesPlayed int
	Moves       string // Queued moves as letter codes
	CreatedAt   time.Time
}

// SolveRecord is one auto-solver invocation.
type SolveRecord struct {
	ID        int64
	AttemptID string
	LevelID   string
	Seed      int64
	Found     bool
	Path      string // Letter codes, empty when nothing was found
	Explored  int
	Duration  time.Duration
	CreatedAt time.Time
}

// LevelStats contains aggregated history for one level.
type LevelStats struct {
	LevelID     string
	Runs        int
	Wins        int
	BestMoves   int // Fewest moves in a winning run, 0 if never won
	Solves      int
	SolvesFound int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL,
			level_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			cause TEXT NOT NULL DEFAULT '',
			step INTEGER NOT NULL,
			moves_played INTEGER NOT NULL,
			moves TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_attempt_id ON runs(attempt_id);

		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL DEFAULT '',
			level_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			found INTEGER NOT NULL,
			path TEXT NOT NULL DEFAULT '',
			explored INTEGER NOT NULL,
			duration_us INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_level_id ON solves(level_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (attempt_id, level_id, outcome, cause, step, moves_played, moves)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.AttemptID, r.LevelID, r.Outcome, r.Cause, r.Step, r.MovesPlayed, r.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveSolve records a solver invocation. Returns the ID of the inserted record.
func (s *Store) SaveSolve(r SolveRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO solves (attempt_id, level_id, seed, found, path, explored, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.AttemptID, r.LevelID, r.Seed, r.Found, r.Path, r.Explored, r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
// An empty levelID returns runs of every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, attempt_id, level_id, outcome, cause, step, moves_played, moves, created_at
		 FROM runs
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.AttemptID, &r.LevelID, &r.Outcome, &r.Cause,
			&r.Step, &r.MovesPlayed, &r.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecentSolves retrieves the most recent solver invocations, newest first.
// An empty levelID returns solves of every level.
func (s *Store) RecentSolves(levelID string, limit int) ([]SolveRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, attempt_id, level_id, seed, found, path, explored, duration_us, created_at
		 FROM solves
		 WHERE ? = '' OR level_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	var solves []SolveRecord
	for rows.Next() {
		var r SolveRecord
		var durationUs int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.AttemptID, &r.LevelID, &r.Seed, &r.Found, &r.Path,
			&r.Explored, &durationUs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationUs) * time.Microsecond
		r.CreatedAt = parseTime(createdAt)
		solves = append(solves, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return solves, nil
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'won'), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'won' THEN moves_played END), 0),
		        MAX(created_at)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Wins, &stats.BestMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(found), 0) FROM solves WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Solves, &stats.SolvesFound)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get solve stats: %w", err)
	}

	return stats, nil
}

// PlayedLevels returns the IDs of every level with recorded runs or solves.
func (s *Store) PlayedLevels() ([]string, error) {
	rows, err := s.db.Query(
		`SELECT level_id FROM runs
		 UNION
		 SELECT level_id FROM solves
		 ORDER BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// ClearLevel deletes all history for the given level.
func (s *Store) ClearLevel(levelID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE level_id = ?", levelID); err != nil {
		return errors.Join(fmt.Errorf("storage: cannot clear runs: %w", err), tx.Rollback())
	}
	if _, err := tx.Exec("DELETE FROM solves WHERE level_id = ?", levelID); err != nil {
		return errors.Join(fmt.Errorf("storage: cannot clear solves: %w", err), tx.Rollback())
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
