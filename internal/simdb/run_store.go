package simdb

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/robosim/internal/sim"
)

// RunStore defines the interface for run telemetry persistence.
type RunStore interface {
	InsertRun(run *Run) error
	FinishRun(runID string, finishedNanos int64, commandCount, failureCount int) error
	InsertPose(runID string, pose sim.PosePoint) error
	InsertEvent(event *CommandEvent) error
	GetRun(runID string) (*Run, error)
	GetPoses(runID string, limit int) ([]*PoseRow, error)
	GetEvents(runID string, limit int) ([]*CommandEvent, error)
}

// Run is one recorded scenario execution.
type Run struct {
	RunID             string
	Label             string
	StartedUnixNanos  int64
	FinishedUnixNanos int64
	CommandCount      int
	FailureCount      int
}

// NewRun creates a run row with a fresh ID.
func NewRun(label string, startedNanos int64) *Run {
	return &Run{
		RunID:            uuid.NewString(),
		Label:            label,
		StartedUnixNanos: startedNanos,
	}
}

// PoseRow is a single persisted pose observation.
type PoseRow struct {
	RunID       string
	TSUnixNanos int64
	X, Y, Z     float64
	Posture     string
	Gripper     string
}

// CommandEvent records one executed command and its outcome.
type CommandEvent struct {
	RunID       string
	TSUnixNanos int64
	Command     string
	Outcome     string // "ok", "clipped", or the error kind
	Detail      string
}

// InsertRun inserts a new run row.
func (db *DB) InsertRun(run *Run) error {
	_, err := db.Exec(`
		INSERT INTO sim_runs (run_id, label, started_unix_nanos, finished_unix_nanos, command_count, failure_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.RunID, run.Label, run.StartedUnixNanos, run.FinishedUnixNanos, run.CommandCount, run.FailureCount)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the end of a run and its command tallies.
func (db *DB) FinishRun(runID string, finishedNanos int64, commandCount, failureCount int) error {
	result, err := db.Exec(`
		UPDATE sim_runs
		SET finished_unix_nanos = ?, command_count = ?, failure_count = ?
		WHERE run_id = ?
	`, finishedNanos, commandCount, failureCount, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("finish run: run %s not found", runID)
	}
	return nil
}

// InsertPose persists one committed pose for a run.
func (db *DB) InsertPose(runID string, pose sim.PosePoint) error {
	_, err := db.Exec(`
		INSERT INTO sim_poses (run_id, ts_unix_nanos, x, y, z, posture, gripper)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, pose.UnixNanos, pose.Position.X, pose.Position.Y, pose.Position.Z,
		string(pose.Posture), string(pose.Gripper))
	if err != nil {
		return fmt.Errorf("insert pose: %w", err)
	}
	return nil
}

// InsertEvent persists one command event for a run.
func (db *DB) InsertEvent(event *CommandEvent) error {
	_, err := db.Exec(`
		INSERT INTO sim_events (run_id, ts_unix_nanos, command, outcome, detail)
		VALUES (?, ?, ?, ?, ?)
	`, event.RunID, event.TSUnixNanos, event.Command, event.Outcome, event.Detail)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetRun returns a run by ID, or an error if not found.
func (db *DB) GetRun(runID string) (*Run, error) {
	run := &Run{}
	err := db.QueryRow(`
		SELECT run_id, label, started_unix_nanos, finished_unix_nanos, command_count, failure_count
		FROM sim_runs WHERE run_id = ?
	`, runID).Scan(&run.RunID, &run.Label, &run.StartedUnixNanos,
		&run.FinishedUnixNanos, &run.CommandCount, &run.FailureCount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// GetPoses returns up to limit poses for a run in time order.
// A limit of 0 or less returns all poses.
func (db *DB) GetPoses(runID string, limit int) ([]*PoseRow, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := db.Query(`
		SELECT run_id, ts_unix_nanos, x, y, z, posture, gripper
		FROM sim_poses WHERE run_id = ?
		ORDER BY ts_unix_nanos ASC, pose_id ASC
		LIMIT ?
	`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("get poses: %w", err)
	}
	defer rows.Close()

	poses := make([]*PoseRow, 0)
	for rows.Next() {
		p := &PoseRow{}
		if err := rows.Scan(&p.RunID, &p.TSUnixNanos, &p.X, &p.Y, &p.Z, &p.Posture, &p.Gripper); err != nil {
			return nil, fmt.Errorf("scan pose: %w", err)
		}
		poses = append(poses, p)
	}
	return poses, rows.Err()
}

// GetEvents returns up to limit command events for a run in time order.
// A limit of 0 or less returns all events.
func (db *DB) GetEvents(runID string, limit int) ([]*CommandEvent, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.Query(`
		SELECT run_id, ts_unix_nanos, command, outcome, detail
		FROM sim_events WHERE run_id = ?
		ORDER BY ts_unix_nanos ASC, event_id ASC
		LIMIT ?
	`, runID, limit)
	if err != nil {
		return nil, fmt.Errorf("get events: %w", err)
	}
	defer rows.Close()

	events := make([]*CommandEvent, 0)
	for rows.Next() {
		e := &CommandEvent{}
		if err := rows.Scan(&e.RunID, &e.TSUnixNanos, &e.Command, &e.Outcome, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
