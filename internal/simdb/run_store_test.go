package simdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/robosim/internal/sim"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "telemetry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunLifecycle(t *testing.T) {
	db := newTestDB(t)

	started := time.Now().UnixNano()
	run := NewRun("navigation demo", started)
	require.NotEmpty(t, run.RunID)
	require.NoError(t, db.InsertRun(run))

	finished := started + int64(time.Second)
	require.NoError(t, db.FinishRun(run.RunID, finished, 5, 1))

	got, err := db.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, "navigation demo", got.Label)
	assert.Equal(t, started, got.StartedUnixNanos)
	assert.Equal(t, finished, got.FinishedUnixNanos)
	assert.Equal(t, 5, got.CommandCount)
	assert.Equal(t, 1, got.FailureCount)
}

func TestFinishRun_Missing(t *testing.T) {
	db := newTestDB(t)
	err := db.FinishRun("no-such-run", time.Now().UnixNano(), 0, 0)
	assert.Error(t, err)
}

func TestGetRun_Missing(t *testing.T) {
	db := newTestDB(t)
	_, err := db.GetRun("no-such-run")
	assert.Error(t, err)
}

func TestPoseRoundTrip(t *testing.T) {
	db := newTestDB(t)

	run := NewRun("poses", time.Now().UnixNano())
	require.NoError(t, db.InsertRun(run))

	poses := []sim.PosePoint{
		{Position: sim.Vec3{}, Posture: sim.PostureStanding, Gripper: sim.GripperOpen, UnixNanos: 100},
		{Position: sim.Vec3{Y: 1}, Posture: sim.PostureWalking, Gripper: sim.GripperOpen, UnixNanos: 200},
		{Position: sim.Vec3{X: 1, Y: 1, Z: 0.5}, Posture: sim.PostureWalking, Gripper: sim.GripperHolding, UnixNanos: 300},
	}
	for _, p := range poses {
		require.NoError(t, db.InsertPose(run.RunID, p))
	}

	got, err := db.GetPoses(run.RunID, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, 1.0, got[2].X)
	assert.Equal(t, 1.0, got[2].Y)
	assert.Equal(t, 0.5, got[2].Z)
	assert.Equal(t, string(sim.PostureWalking), got[2].Posture)
	assert.Equal(t, string(sim.GripperHolding), got[2].Gripper)

	// Time ordering and limit
	limited, err := db.GetPoses(run.RunID, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, int64(100), limited[0].TSUnixNanos)
	assert.Equal(t, int64(200), limited[1].TSUnixNanos)
}

func TestEventRoundTrip(t *testing.T) {
	db := newTestDB(t)

	run := NewRun("events", time.Now().UnixNano())
	require.NoError(t, db.InsertRun(run))

	events := []*CommandEvent{
		{RunID: run.RunID, TSUnixNanos: 10, Command: "move forward 1", Outcome: "ok"},
		{RunID: run.RunID, TSUnixNanos: 20, Command: "move right 100", Outcome: "boundary_violation", Detail: "candidate exceeds limit"},
		{RunID: run.RunID, TSUnixNanos: 30, Command: "arm 3 0 0", Outcome: "clipped", Detail: "stopped short of obstacle"},
	}
	for _, e := range events {
		require.NoError(t, db.InsertEvent(e))
	}

	got, err := db.GetEvents(run.RunID, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "move forward 1", got[0].Command)
	assert.Equal(t, "boundary_violation", got[1].Outcome)
	assert.Equal(t, "clipped", got[2].Outcome)

	// Events from other runs are not returned.
	other := NewRun("other", time.Now().UnixNano())
	require.NoError(t, db.InsertRun(other))
	got, err = db.GetEvents(other.RunID, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRunStoreInterface(t *testing.T) {
	// *DB must satisfy RunStore.
	var _ RunStore = newTestDB(t)
}
