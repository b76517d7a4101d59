// Package history keeps an append-only SQLite ledger of generation runs:
// seed, outcome, wall-clock duration, and how many times the engine
// backtracked. It follows the same sql.Open("sqlite", "file:...") +
// modernc.org/sqlite driver pattern as the teacher pack's SQLite reader,
// adapted from read-only querying to a small append/list writer.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/google/uuid"
)

// Run is one recorded attempt at generating a grid.
type Run struct {
	Id            string
	Seed          uint32
	Accepted      bool
	Duration      time.Duration
	BacktrackCount int
	CreatedAt     time.Time
}

// Store wraps a SQLite-backed run ledger.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the runs table exists.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: opening database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	seed            INTEGER NOT NULL,
	accepted        INTEGER NOT NULL,
	duration_ms     INTEGER NOT NULL,
	backtrack_count INTEGER NOT NULL,
	created_at      DATETIME NOT NULL
)`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("history: creating schema: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record appends a completed run to the ledger, assigning it a fresh UUID.
func (s *Store) Record(seed uint32, accepted bool, duration time.Duration, backtrackCount int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO runs (id, seed, accepted, duration_ms, backtrack_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, seed, accepted, duration.Milliseconds(), backtrackCount, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("history: recording run: %w", err)
	}
	return id, nil
}

// Recent returns the n most recently recorded runs, newest first.
func (s *Store) Recent(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, seed, accepted, duration_ms, backtrack_count, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: querying runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var durationMs int64
		var accepted int
		if err := rows.Scan(&r.Id, &r.Seed, &accepted, &durationMs, &r.BacktrackCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scanning run: %w", err)
		}
		r.Accepted = accepted != 0
		r.Duration = time.Duration(durationMs) * time.Millisecond
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterating runs: %w", err)
	}
	return out, nil
}

// AcceptedRate returns the fraction of runs that were accepted, or 0 if
// runs is empty.
func AcceptedRate(runs []Run) float64 {
	if len(runs) == 0 {
		return 0
	}
	accepted := 0
	for _, r := range runs {
		if r.Accepted {
			accepted++
		}
	}
	return float64(accepted) / float64(len(runs))
}
