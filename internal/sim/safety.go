package sim

import (
	"fmt"
	"math"
)

// SafetyChecker validates proposed motions before they are committed. It
// applies two independent rules: a symmetric cubic boundary on candidate
// positions and a nearest-obstacle stop for arm paths. The registry may be
// nil, in which case arm paths are never clipped.
type SafetyChecker struct {
	limit     float64
	clearance float64
	registry  *ObstacleRegistry
}

// NewSafetyChecker creates a checker with the given boundary half-extent,
// obstacle clearance, and obstacle registry (nil for none).
func NewSafetyChecker(limit, clearance float64, registry *ObstacleRegistry) *SafetyChecker {
	return &SafetyChecker{
		limit:     limit,
		clearance: clearance,
		registry:  registry,
	}
}

// Limit returns the boundary half-extent in metres.
func (s *SafetyChecker) Limit() float64 {
	return s.limit
}

// Clearance returns the obstacle stop-short distance in metres.
func (s *SafetyChecker) Clearance() float64 {
	return s.clearance
}

// CheckBoundary validates a candidate position against the boundary rule.
// Every axis magnitude must be within the limit, and all components must be
// finite. Returns ErrBoundaryViolation (wrapped with the offending position)
// on violation.
func (s *SafetyChecker) CheckBoundary(candidate Vec3) error {
	if !candidate.IsFinite() {
		return fmt.Errorf("non-finite candidate %v: %w", candidate, ErrBoundaryViolation)
	}
	if math.Abs(candidate.X) > s.limit ||
		math.Abs(candidate.Y) > s.limit ||
		math.Abs(candidate.Z) > s.limit {
		return fmt.Errorf("candidate %v exceeds limit ±%.3f: %w", candidate, s.limit, ErrBoundaryViolation)
	}
	return nil
}

// ArmMotion is the outcome of applying the obstacle-stop rule to an arm path.
// Clipped motion is not a failure; the caller commits Final either way.
type ArmMotion struct {
	Final     Vec3
	Clipped   bool
	BlockedBy *Obstacle
}

// ClipArmPath applies the obstacle-stop rule to a straight arm path from
// start to target. If any registered obstacle lies on or within the
// clearance of the path before the target, the motion stops clearance short
// of the obstacle nearest to start; farther obstacles are irrelevant once a
// nearer one halts motion. With no blocking obstacle the target is reached
// unmodified.
func (s *SafetyChecker) ClipArmPath(start, target Vec3) ArmMotion {
	motion := ArmMotion{Final: target}
	if s.registry == nil {
		return motion
	}

	path := target.Sub(start)
	length := path.Magnitude()
	if length == 0 {
		return motion
	}
	unit := path.Scale(1 / length)

	// Find the blocking obstacle with the smallest along-path distance.
	nearest := math.Inf(1)
	for _, obs := range s.registry.Obstacles() {
		offset := obs.Position.Sub(start)
		along := offset.Dot(unit)
		if along < 0 || along > length {
			continue // behind the start or beyond the target
		}
		perp := offset.Sub(unit.Scale(along)).Magnitude()
		if perp > s.clearance {
			continue
		}
		if along < nearest {
			nearest = along
			o := obs
			motion.BlockedBy = &o
		}
	}

	if motion.BlockedBy == nil {
		return motion
	}

	// Stop just short of the nearest blocking obstacle. A blocker closer
	// than the clearance itself pins the arm at its start.
	stop := nearest - s.clearance
	if stop < 0 {
		stop = 0
	}
	motion.Final = start.Add(unit.Scale(stop))
	motion.Clipped = true
	return motion
}
