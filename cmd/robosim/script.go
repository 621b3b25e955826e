package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/robosim/internal/sim"
	"github.com/banshee-data/robosim/internal/simdb"
)

// Outcome strings recorded per command event.
const (
	OutcomeOK      = "ok"
	OutcomeClipped = "clipped"
)

// runner executes a command script against a robot, optionally recording
// command events and the resulting pose history to a RunStore.
type runner struct {
	robot    *sim.Robot
	registry *sim.ObstacleRegistry
	sensor   sim.Sensor
	noisy    *sim.NoisySensor
	estCfg   sim.EstimatorConfig

	store simdb.RunStore // nil disables recording
	run   *simdb.Run

	commands int
	failures int
}

// execute runs one script line. The returned outcome is one of the Outcome*
// constants or an error kind; err is non-nil only for failed commands.
func (r *runner) execute(line string) (outcome, detail string, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return OutcomeOK, "", nil
	}

	switch fields[0] {
	case "move":
		if len(fields) != 3 {
			return "", "", fmt.Errorf("usage: move <direction> <distance>")
		}
		dir, err := sim.ParseDirection(fields[1])
		if err != nil {
			return "", "", err
		}
		dist, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return "", "", fmt.Errorf("bad distance %q: %w", fields[2], err)
		}
		return r.outcome(r.robot.Move(dir, dist))

	case "diagonal":
		delta, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		return r.outcome(r.robot.MoveDiagonal(delta))

	case "set-position":
		p, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		return r.outcome(r.robot.SetPosition(p))

	case "walk":
		if len(fields) != 2 {
			return "", "", fmt.Errorf("usage: walk <distance>")
		}
		dist, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "", "", fmt.Errorf("bad distance %q: %w", fields[1], err)
		}
		return r.outcome(r.robot.WalkForward(dist))

	case "circle":
		if len(fields) != 3 {
			return "", "", fmt.Errorf("usage: circle <clockwise|counter-clockwise> <radius>")
		}
		rotation, err := sim.ParseRotation(fields[1])
		if err != nil {
			return "", "", err
		}
		radius, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return "", "", fmt.Errorf("bad radius %q: %w", fields[2], err)
		}
		return r.outcome(r.robot.MoveInCircle(rotation, radius))

	case "start-walking":
		return r.outcome(r.robot.StartWalking())
	case "stop-walking":
		return r.outcome(r.robot.StopWalking())
	case "crouch":
		return r.outcome(r.robot.Crouch())
	case "stand":
		return r.outcome(r.robot.StandUp())

	case "pick":
		return r.outcome(r.robot.PickUpObject())

	case "place":
		target, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		return r.outcome(r.robot.MoveObjectTo(target))

	case "arm":
		target, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		motion, err := r.robot.MoveArmTo(target)
		if err != nil {
			return r.outcome(err)
		}
		if motion.Clipped {
			return OutcomeClipped, fmt.Sprintf("stopped at %v", motion.Final), nil
		}
		return OutcomeOK, "", nil

	case "block":
		return r.outcome(r.robot.BlockGripper())
	case "unblock":
		return r.outcome(r.robot.UnblockGripper())

	case "obstacle":
		p, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		obs := r.registry.Add(p)
		return OutcomeOK, fmt.Sprintf("obstacle %s at %v", obs.ObstacleID, obs.Position), nil

	case "scan":
		if len(fields) != 5 {
			return "", "", fmt.Errorf("usage: scan <range> <x> <y> <z>")
		}
		rng, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return "", "", fmt.Errorf("bad range %q: %w", fields[1], err)
		}
		object, err := parseVec(fields[2:])
		if err != nil {
			return "", "", err
		}
		detected := sim.Scan(rng, object, r.robot.Position())
		return OutcomeOK, fmt.Sprintf("detected=%v", detected), nil

	case "detect":
		// Like scan, but with the configured sensor range.
		object, err := parseVec(fields[1:])
		if err != nil {
			return "", "", err
		}
		detected := r.sensor.Detects(object, r.robot.Position())
		return OutcomeOK, fmt.Sprintf("detected=%v", detected), nil

	case "estimate":
		if len(fields) != 5 {
			return "", "", fmt.Errorf("usage: estimate <updates> <x> <y> <z>")
		}
		updates, err := strconv.Atoi(fields[1])
		if err != nil || updates < 1 {
			return "", "", fmt.Errorf("bad update count %q", fields[1])
		}
		truth, err := parseVec(fields[2:])
		if err != nil {
			return "", "", err
		}
		est := sim.NewEstimator(r.robot.Position(), r.estCfg)
		for i := 0; i < updates; i++ {
			est.Update(r.noisy.ReadPosition(truth))
		}
		return OutcomeOK, fmt.Sprintf("estimate=%v after %d updates", est.Estimate(), est.Updates()), nil
	}

	return "", "", fmt.Errorf("unknown command %q", fields[0])
}

// outcome maps a command result to an event outcome string.
func (r *runner) outcome(err error) (string, string, error) {
	if err == nil {
		return OutcomeOK, "", nil
	}
	return errorKind(err), err.Error(), err
}

// errorKind maps command errors to stable outcome identifiers.
func errorKind(err error) string {
	switch {
	case errors.Is(err, sim.ErrBoundaryViolation):
		return "boundary_violation"
	case errors.Is(err, sim.ErrGripperBlocked):
		return "gripper_blocked"
	case errors.Is(err, sim.ErrGripperHolding):
		return "gripper_holding"
	case errors.Is(err, sim.ErrNothingHeld):
		return "nothing_held"
	case errors.Is(err, sim.ErrInvalidPosture):
		return "invalid_posture"
	case errors.Is(err, sim.ErrInvalidDistance):
		return "invalid_distance"
	}
	return "error"
}

// parseVec parses exactly three float fields into a Vec3.
func parseVec(fields []string) (sim.Vec3, error) {
	if len(fields) != 3 {
		return sim.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var out [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return sim.Vec3{}, fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		out[i] = v
	}
	return sim.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}

// runScript executes every command in the script. Lines starting with '#'
// and blank lines are skipped. Failed commands are counted and logged but do
// not abort the run; the scenario decides what a failure means.
func (r *runner) runScript(script io.Reader, logf func(format string, v ...any)) error {
	scanner := bufio.NewScanner(script)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		outcome, detail, err := r.execute(line)
		r.commands++
		if err != nil {
			r.failures++
			logf("line %d: %s -> %s (%v)", lineNo, line, outcome, err)
		} else if detail != "" {
			logf("line %d: %s -> %s (%s)", lineNo, line, outcome, detail)
		} else {
			logf("line %d: %s -> %s", lineNo, line, outcome)
		}

		if r.store != nil && r.run != nil {
			event := &simdb.CommandEvent{
				RunID:       r.run.RunID,
				TSUnixNanos: time.Now().UnixNano(),
				Command:     line,
				Outcome:     outcome,
				Detail:      detail,
			}
			if err := r.store.InsertEvent(event); err != nil {
				return fmt.Errorf("record event: %w", err)
			}
		}
	}
	return scanner.Err()
}

// recordHistory persists the robot's committed pose history.
func (r *runner) recordHistory() error {
	if r.store == nil || r.run == nil {
		return nil
	}
	for _, pose := range r.robot.History() {
		if err := r.store.InsertPose(r.run.RunID, pose); err != nil {
			return fmt.Errorf("record pose: %w", err)
		}
	}
	return nil
}
