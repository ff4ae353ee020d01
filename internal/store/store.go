// Package store persists simulated EVA runs, their per-minute
// snapshots, and named mission plans in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/astronaut"
	"github.com/vitaly-chibrikov/astronaut-eva-simulation/internal/logbook"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	plan_name    TEXT,
	sequence     TEXT NOT NULL,
	minutes      INTEGER NOT NULL,
	summary_json TEXT,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id      TEXT NOT NULL,
	minute      INTEGER NOT NULL,
	task        TEXT NOT NULL,
	values_json TEXT NOT NULL,
	PRIMARY KEY (run_id, minute),
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS mission_plans (
	name       TEXT PRIMARY KEY,
	sequence   TEXT NOT NULL,
	created_at TEXT NOT NULL
);
`
// #endregion schema

// #region store-struct
// Store manages run history in SQLite.
type Store struct {
	db *sql.DB
}

// Run is one row of the runs table.
type Run struct {
	RunID       string
	PlanName    string
	Sequence    string
	Minutes     int
	SummaryJSON string
	CreatedAt   time.Time
}

// Snapshot is one persisted minute: the task label plus every variable
// value, mission_elapsed_time included.
type Snapshot struct {
	Minute int
	Task   string
	Values map[string]float64
}
// #endregion store-struct

// #region constructor
// New opens the SQLite database and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for read-only tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion constructor

// #region save-run
// SaveRun persists a completed run and all of its per-minute snapshots
// atomically, returning the stored run row with a fresh UUID.
func (s *Store) SaveRun(planName string, tl logbook.Timeline, summaryJSON string) (Run, error) {
	run := Run{
		RunID:       uuid.New().String(),
		PlanName:    planName,
		Sequence:    tl.Sequence(),
		Minutes:     tl.Minutes(),
		SummaryJSON: summaryJSON,
		CreatedAt:   time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Run{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (run_id, plan_name, sequence, minutes, summary_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.RunID, nullIfEmpty(run.PlanName), run.Sequence, run.Minutes,
		nullIfEmpty(run.SummaryJSON), run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	for _, e := range tl.Entries {
		values := snapshotValues(e.State)
		blob, err := json.Marshal(values)
		if err != nil {
			return Run{}, fmt.Errorf("marshal minute %d: %w", e.Minute, err)
		}
		_, err = tx.Exec(
			`INSERT INTO snapshots (run_id, minute, task, values_json) VALUES (?, ?, ?, ?)`,
			run.RunID, e.Minute, e.Code, string(blob),
		)
		if err != nil {
			return Run{}, fmt.Errorf("insert minute %d: %w", e.Minute, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

func snapshotValues(st astronaut.State) map[string]float64 {
	values := make(map[string]float64, len(astronaut.Vars())+1)
	for _, v := range astronaut.Vars() {
		values[string(v)] = st.Value(v)
	}
	values["mission_elapsed_time"] = st.MissionElapsedTime
	return values
}
// #endregion save-run

// #region read-runs
// GetRun retrieves one run by ID.
func (s *Store) GetRun(runID string) (Run, error) {
	var run Run
	var planName, summaryJSON sql.NullString
	var createdStr string

	err := s.db.QueryRow(
		`SELECT run_id, plan_name, sequence, minutes, summary_json, created_at
		 FROM runs WHERE run_id = ?`, runID,
	).Scan(&run.RunID, &planName, &run.Sequence, &run.Minutes, &summaryJSON, &createdStr)
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", runID, err)
	}

	if planName.Valid {
		run.PlanName = planName.String
	}
	if summaryJSON.Valid {
		run.SummaryJSON = summaryJSON.String
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, plan_name, sequence, minutes, summary_json, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var planName, summaryJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&run.RunID, &planName, &run.Sequence, &run.Minutes, &summaryJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if planName.Valid {
			run.PlanName = planName.String
		}
		if summaryJSON.Valid {
			run.SummaryJSON = summaryJSON.String
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Snapshots returns every persisted minute of a run in order.
func (s *Store) Snapshots(runID string) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT minute, task, values_json FROM snapshots
		 WHERE run_id = ? ORDER BY minute ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var blob string
		if err := rows.Scan(&snap.Minute, &snap.Task, &blob); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(blob), &snap.Values); err != nil {
			return nil, fmt.Errorf("unmarshal minute %d: %w", snap.Minute, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
// #endregion read-runs

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
