// Package simdb persists scenario telemetry: one row per run, plus the pose
// and command-event streams observed while the run executed. The simulation
// core never reads from the store; it is an optional observer attached by
// the CLI.
package simdb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the telemetry database at path and ensures the
// baseline schema exists.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sim_runs (
			run_id               TEXT PRIMARY KEY,
			label                TEXT,
			started_unix_nanos   BIGINT,
			finished_unix_nanos  BIGINT,
			command_count        BIGINT,
			failure_count        BIGINT
		);
		CREATE TABLE IF NOT EXISTS sim_poses (
			pose_id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT,
			ts_unix_nanos        BIGINT,
			x                    DOUBLE,
			y                    DOUBLE,
			z                    DOUBLE,
			posture              TEXT,
			gripper              TEXT,
			FOREIGN KEY(run_id) REFERENCES sim_runs(run_id)
		);
		CREATE TABLE IF NOT EXISTS sim_events (
			event_id             INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id               TEXT,
			ts_unix_nanos        BIGINT,
			command              TEXT,
			outcome              TEXT,
			detail               TEXT,
			FOREIGN KEY(run_id) REFERENCES sim_runs(run_id)
		);
		CREATE INDEX IF NOT EXISTS idx_sim_poses_run ON sim_poses(run_id, ts_unix_nanos);
		CREATE INDEX IF NOT EXISTS idx_sim_events_run ON sim_events(run_id, ts_unix_nanos);
	`)
	if err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db}, nil
}
