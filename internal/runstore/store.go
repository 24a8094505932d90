// Package runstore keeps a history of planning runs in a sqlite file.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bartolsthoorn/chipnet/internal/milp"
	"github.com/bartolsthoorn/chipnet/internal/network"
	"github.com/bartolsthoorn/chipnet/internal/scenario"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	scenario        TEXT NOT NULL,
	kind            TEXT NOT NULL,
	status          TEXT NOT NULL,
	objective       REAL NOT NULL,
	mip_gap         REAL NOT NULL,
	num_variables   INTEGER NOT NULL,
	num_constraints INTEGER NOT NULL,
	open_json       TEXT NOT NULL,
	summary_json    TEXT NOT NULL,
	started_at      TEXT NOT NULL,
	duration_ns     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_started_at ON runs (started_at);
CREATE TABLE IF NOT EXISTS assignments (
	run_id TEXT NOT NULL REFERENCES runs (id) ON DELETE CASCADE,
	name   TEXT NOT NULL,
	value  REAL NOT NULL,
	PRIMARY KEY (run_id, name)
);
`

type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("runstore: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("runstore: open %s: %w", path, err)
	}
	// One connection serialises writers from concurrent solves.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: pragma: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("runstore: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records an outcome and its assignments.
func (s *Store) Save(ctx context.Context, o *network.Outcome) (err error) {
	openJSON, err := json.Marshal(o.Open)
	if err != nil {
		return fmt.Errorf("runstore: encode open: %w", err)
	}
	summaryJSON, err := json.Marshal(o.Summary)
	if err != nil {
		return fmt.Errorf("runstore: encode summary: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("runstore: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, scenario, kind, status, objective, mip_gap, num_variables, num_constraints, open_json, summary_json, started_at, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.Scenario, string(o.Kind), o.Status, o.Objective, o.MIPGap,
		o.Variables, o.Constraints, string(openJSON), string(summaryJSON),
		o.StartedAt.UTC().Format(timeLayout), int64(o.Duration))
	if err != nil {
		return fmt.Errorf("runstore: insert run %s: %w", o.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO assignments (run_id, name, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("runstore: prepare: %w", err)
	}
	defer stmt.Close()
	for _, a := range o.Assignments {
		if _, err = stmt.ExecContext(ctx, o.RunID, a.Name, a.Value); err != nil {
			return fmt.Errorf("runstore: insert assignment %s: %w", a.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("runstore: commit: %w", err)
	}
	return nil
}

// timeLayout is fixed-width so started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = `id, scenario, kind, status, objective, mip_gap, num_variables, num_constraints, open_json, summary_json, started_at, duration_ns`

// List returns the most recent runs first, without assignments. A limit of
// zero or less returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]*network.Outcome, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("runstore: list: %w", err)
	}
	defer rows.Close()

	var out []*network.Outcome
	for rows.Next() {
		o, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runstore: list: %w", err)
	}
	return out, nil
}

// Get returns one run with its assignments sorted by name.
func (s *Store) Get(ctx context.Context, id string) (*network.Outcome, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	o, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM assignments WHERE run_id = ? ORDER BY name`, id)
	if err != nil {
		return nil, fmt.Errorf("runstore: assignments: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var a milp.Assignment
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("runstore: scan assignment: %w", err)
		}
		o.Assignments = append(o.Assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runstore: assignments: %w", err)
	}
	return o, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*network.Outcome, error) {
	var (
		o           network.Outcome
		kind        string
		openJSON    string
		summaryJSON string
		startedAt   string
		durationNS  int64
	)
	err := sc.Scan(&o.RunID, &o.Scenario, &kind, &o.Status, &o.Objective, &o.MIPGap,
		&o.Variables, &o.Constraints, &openJSON, &summaryJSON, &startedAt, &durationNS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("runstore: scan run: %w", err)
	}

	o.Kind = scenario.Kind(kind)
	o.Duration = time.Duration(durationNS)
	if o.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return nil, fmt.Errorf("runstore: run %s started_at: %w", o.RunID, err)
	}
	if err := json.Unmarshal([]byte(openJSON), &o.Open); err != nil {
		return nil, fmt.Errorf("runstore: run %s open: %w", o.RunID, err)
	}
	if err := json.Unmarshal([]byte(summaryJSON), &o.Summary); err != nil {
		return nil, fmt.Errorf("runstore: run %s summary: %w", o.RunID, err)
	}
	return &o, nil
}
