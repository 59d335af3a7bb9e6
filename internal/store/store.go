// Package store implements the run cache and audit log of SPEC_FULL.md §3:
// a small `database/sql` wrapper, adapted from the teacher's
// internal/database.DBModule connection-and-query shape, that records one
// row per executed run and lets a caller skip re-running an identical
// (program, public inputs) pair. modernc.org/sqlite is used instead of the
// teacher's four other SQL drivers because it needs no cgo, which matters
// for a library meant to be embedded in a prover pipeline.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// RunRecord is one completed run's audit trail (spec.md §8 determinism:
// identical program+public-input hashes should always reproduce the same
// constraint/variable counts and outputs).
type RunRecord struct {
	ID              string
	ProgramHash     string
	PublicInputHash string
	NumConstraints  int
	NumVariables    int
	Outputs         string // JSON-encoded output values
	CreatedAt       time.Time
}

// RunStore records and looks up run audit rows.
type RunStore interface {
	Record(ctx context.Context, rec RunRecord) error
	Lookup(ctx context.Context, programHash, publicInputHash string) (RunRecord, bool, error)
	Close() error
}

// SQLiteStore is the modernc.org/sqlite-backed RunStore.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) a SQLite-backed run store at path.
// path may be ":memory:" for an ephemeral store, as the teacher's
// DatabaseModule allows via its sqlite3 DSN convention.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writes; avoid pool contention
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	program_hash      TEXT NOT NULL,
	public_input_hash TEXT NOT NULL,
	num_constraints   INTEGER NOT NULL,
	num_variables     INTEGER NOT NULL,
	outputs           TEXT NOT NULL,
	created_at        DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_lookup ON runs(program_hash, public_input_hash, created_at);
`
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// Record inserts one run's audit row.
func (s *SQLiteStore) Record(ctx context.Context, rec RunRecord) error {
	const stmt = `INSERT INTO runs
		(id, program_hash, public_input_hash, num_constraints, num_variables, outputs, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, stmt,
		rec.ID, rec.ProgramHash, rec.PublicInputHash, rec.NumConstraints, rec.NumVariables, rec.Outputs, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("store: record run %s: %w", rec.ID, err)
	}
	return nil
}

// Lookup returns the most recent run recorded under the given program and
// public-input hash pair, if any.
func (s *SQLiteStore) Lookup(ctx context.Context, programHash, publicInputHash string) (RunRecord, bool, error) {
	const query = `SELECT id, program_hash, public_input_hash, num_constraints, num_variables, outputs, created_at
		FROM runs WHERE program_hash = ? AND public_input_hash = ?
		ORDER BY created_at DESC LIMIT 1`
	row := s.db.QueryRowContext(ctx, query, programHash, publicInputHash)
	var rec RunRecord
	if err := row.Scan(&rec.ID, &rec.ProgramHash, &rec.PublicInputHash, &rec.NumConstraints, &rec.NumVariables, &rec.Outputs, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, false, nil
		}
		return RunRecord{}, false, fmt.Errorf("store: lookup %s/%s: %w", programHash, publicInputHash, err)
	}
	return rec, true, nil
}

// Close closes the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
