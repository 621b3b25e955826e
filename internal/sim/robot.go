package sim

import (
	"fmt"
	"math"
	"sync"

	"github.com/banshee-data/robosim/internal/timeutil"
)

// Posture represents the robot's locomotion mode.
type Posture string

const (
	PostureStanding Posture = "standing" // Default posture, all moves legal
	PostureWalking  Posture = "walking"  // Gait active, walk commands legal
	PostureCrouched Posture = "crouched" // Chest on the ground, Z pinned to 0
)

// GripperState represents manipulator availability.
type GripperState string

const (
	GripperOpen    GripperState = "open"    // Free to pick
	GripperHolding GripperState = "holding" // Object attached
	GripperBlocked GripperState = "blocked" // Unavailable until unblocked
)

// Direction is an axis-aligned movement direction in the robot frame.
// Forward/backward move along Y, right/left along X, up/down along Z.
type Direction string

const (
	DirForward  Direction = "forward"
	DirBackward Direction = "backward"
	DirLeft     Direction = "left"
	DirRight    Direction = "right"
	DirUp       Direction = "up"
	DirDown     Direction = "down"
)

// ParseDirection converts a direction keyword to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirForward, DirBackward, DirLeft, DirRight, DirUp, DirDown:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Rotation is the traversal order of a circular path.
type Rotation string

const (
	RotationClockwise        Rotation = "clockwise"
	RotationCounterClockwise Rotation = "counter-clockwise"
)

// ParseRotation converts a rotation keyword to a Rotation.
func ParseRotation(s string) (Rotation, error) {
	switch Rotation(s) {
	case RotationClockwise, RotationCounterClockwise:
		return Rotation(s), nil
	}
	return "", fmt.Errorf("unknown rotation %q", s)
}

// CrouchGroundZ is the Z coordinate the base is pinned to while crouched.
const CrouchGroundZ = 0.0

// PosePoint is a single committed pose in the robot's history.
type PosePoint struct {
	Position  Vec3
	Posture   Posture
	Gripper   GripperState
	UnixNanos int64
}

// Robot is the authoritative owner of simulated robot state: base position,
// arm position, posture, gripper, and any carried object. Every
// position-changing operation is routed through the SafetyChecker before it
// is committed; a failed operation leaves all state unchanged.
type Robot struct {
	position    Vec3
	armPosition Vec3
	posture     Posture
	gripper     GripperState
	carried     *Vec3 // non-nil exactly while gripper == GripperHolding
	safety      *SafetyChecker
	config      Config
	clock       timeutil.Clock

	// History of committed poses
	history []PosePoint

	mu sync.RWMutex
}

// NewRobot creates a standing robot at start with an open gripper. The
// registry may be nil when no obstacles are in play. The start position is
// itself subject to the boundary rule.
func NewRobot(start Vec3, config Config, registry *ObstacleRegistry) (*Robot, error) {
	return NewRobotWithGripper(start, config, registry, GripperOpen)
}

// NewRobotWithGripper creates a robot with an explicit initial gripper
// state. Only open and blocked are legal at construction; a holding gripper
// with no carried object would violate the state invariant.
func NewRobotWithGripper(start Vec3, config Config, registry *ObstacleRegistry, gripper GripperState) (*Robot, error) {
	if gripper != GripperOpen && gripper != GripperBlocked {
		return nil, fmt.Errorf("initial gripper state must be open or blocked, got %q", gripper)
	}

	safety := NewSafetyChecker(config.BoundaryLimit, config.ObstacleClearance, registry)
	if err := safety.CheckBoundary(start); err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}

	r := &Robot{
		position:    start,
		armPosition: start,
		posture:     PostureStanding,
		gripper:     gripper,
		safety:      safety,
		config:      config,
		clock:       timeutil.RealClock{},
		history:     make([]PosePoint, 0),
	}
	r.appendHistory()
	return r, nil
}

// Position returns the robot's base position.
func (r *Robot) Position() Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.position
}

// ArmPosition returns the manipulator position.
func (r *Robot) ArmPosition() Vec3 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.armPosition
}

// Posture returns the current posture.
func (r *Robot) Posture() Posture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.posture
}

// Gripper returns the current gripper state.
func (r *Robot) Gripper() GripperState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.gripper
}

// CarriedObject returns the carried object's position and whether one is
// held.
func (r *Robot) CarriedObject() (Vec3, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.carried == nil {
		return Vec3{}, false
	}
	return *r.carried, true
}

// History returns a copy of the committed pose history.
func (r *Robot) History() []PosePoint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PosePoint, len(r.history))
	copy(out, r.history)
	return out
}

// Config returns the robot's configuration.
func (r *Robot) Config() Config {
	return r.config
}

// SetClock replaces the robot's clock. Pose history timestamps come from
// this clock; tests use a mock to get deterministic histories.
func (r *Robot) SetClock(clock timeutil.Clock) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = clock
}

// appendHistory records the current pose. Caller must hold the write lock.
func (r *Robot) appendHistory() {
	r.history = append(r.history, PosePoint{
		Position:  r.position,
		Posture:   r.posture,
		Gripper:   r.gripper,
		UnixNanos: r.clock.Now().UnixNano(),
	})
}

// commitPosition moves the base to candidate. The arm and any carried
// object are rigidly attached and shift by the same delta. Caller must hold
// the write lock and have passed the boundary check.
func (r *Robot) commitPosition(candidate Vec3) {
	delta := candidate.Sub(r.position)
	r.position = candidate
	r.armPosition = r.armPosition.Add(delta)
	if r.carried != nil {
		*r.carried = r.carried.Add(delta)
	}
	r.appendHistory()
}

// Move translates the base by distance along an axis-aligned direction.
// Forward/backward adjust Y, right/left adjust +X/-X, up/down adjust Z.
func (r *Robot) Move(direction Direction, distance float64) error {
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDistance, distance)
	}

	var delta Vec3
	switch direction {
	case DirForward:
		delta = Vec3{Y: distance}
	case DirBackward:
		delta = Vec3{Y: -distance}
	case DirRight:
		delta = Vec3{X: distance}
	case DirLeft:
		delta = Vec3{X: -distance}
	case DirUp:
		delta = Vec3{Z: distance}
	case DirDown:
		delta = Vec3{Z: -distance}
	default:
		return fmt.Errorf("unknown direction %q", direction)
	}

	return r.MoveDiagonal(delta)
}

// MoveDiagonal translates the base by an arbitrary displacement vector.
func (r *Robot) MoveDiagonal(delta Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate := r.position.Add(delta)
	if err := r.safety.CheckBoundary(candidate); err != nil {
		return err
	}
	r.commitPosition(candidate)
	return nil
}

// SetPosition teleports the base to an absolute position, still subject to
// the boundary rule.
func (r *Robot) SetPosition(position Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.safety.CheckBoundary(position); err != nil {
		return err
	}
	r.commitPosition(position)
	return nil
}

// WalkForward advances the base along +Y. Legal only while walking.
func (r *Robot) WalkForward(distance float64) error {
	if r.Posture() != PostureWalking {
		return fmt.Errorf("walk requires walking posture, currently %s: %w", r.Posture(), ErrInvalidPosture)
	}
	return r.Move(DirForward, distance)
}

// MoveInCircle traces a closed circular path of CircleSegments discrete
// steps in the XY plane and returns to the exact starting position. The
// rotation controls traversal order only; net displacement is zero. If any
// waypoint violates the boundary the whole operation fails and the robot
// does not move.
func (r *Robot) MoveInCircle(rotation Rotation, radius float64) error {
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return fmt.Errorf("%w: radius %v", ErrInvalidDistance, radius)
	}
	if rotation != RotationClockwise && rotation != RotationCounterClockwise {
		return fmt.Errorf("unknown rotation %q", rotation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	start := r.position
	segments := r.config.CircleSegments
	if segments < 4 {
		segments = DefaultCircleSegments
	}

	// Circle through start, centred one radius along +X. The start sits at
	// angle π from the centre.
	center := start.Add(Vec3{X: radius})
	sign := 1.0
	if rotation == RotationClockwise {
		sign = -1.0
	}

	waypoints := make([]Vec3, segments)
	for i := 1; i <= segments; i++ {
		if i == segments {
			// Snap the closing step to the exact start rather than
			// accumulating floating error.
			waypoints[i-1] = start
			break
		}
		theta := math.Pi + sign*2*math.Pi*float64(i)/float64(segments)
		waypoints[i-1] = Vec3{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
			Z: start.Z,
		}
	}

	// Validate the whole path before committing any step.
	for _, wp := range waypoints {
		if err := r.safety.CheckBoundary(wp); err != nil {
			return err
		}
	}
	for _, wp := range waypoints {
		r.commitPosition(wp)
	}
	return nil
}

// StartWalking transitions standing → walking.
func (r *Robot) StartWalking() error {
	return r.setPosture(PostureStanding, PostureWalking)
}

// StopWalking transitions walking → standing.
func (r *Robot) StopWalking() error {
	return r.setPosture(PostureWalking, PostureStanding)
}

// StandUp transitions crouched → standing.
func (r *Robot) StandUp() error {
	return r.setPosture(PostureCrouched, PostureStanding)
}

// setPosture performs a checked posture transition.
func (r *Robot) setPosture(from, to Posture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.posture != from {
		return fmt.Errorf("cannot change posture %s → %s while %s: %w", from, to, r.posture, ErrInvalidPosture)
	}
	r.posture = to
	r.appendHistory()
	return nil
}

// Crouch lowers the robot until its chest touches the ground: the posture
// becomes crouched and the base Z is pinned to CrouchGroundZ regardless of
// prior height. Legal only from standing.
func (r *Robot) Crouch() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.posture != PostureStanding {
		return fmt.Errorf("crouch requires standing posture, currently %s: %w", r.posture, ErrInvalidPosture)
	}

	candidate := r.position
	candidate.Z = CrouchGroundZ
	if err := r.safety.CheckBoundary(candidate); err != nil {
		return err
	}
	r.posture = PostureCrouched
	r.commitPosition(candidate)
	return nil
}

// PickUpObject grips a sensed object at the manipulator's current position.
// Succeeds only with an open gripper.
func (r *Robot) PickUpObject() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.gripper {
	case GripperBlocked:
		return ErrGripperBlocked
	case GripperHolding:
		return ErrGripperHolding
	}

	attached := r.armPosition
	r.carried = &attached
	r.gripper = GripperHolding
	r.appendHistory()
	return nil
}

// MoveObjectTo moves the robot and its carried object together so the
// object's final position equals target exactly. Requires a held object.
// Both the resulting base position and the target are subject to the
// boundary rule.
func (r *Robot) MoveObjectTo(target Vec3) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gripper != GripperHolding || r.carried == nil {
		return ErrNothingHeld
	}

	delta := target.Sub(*r.carried)
	candidate := r.position.Add(delta)
	if err := r.safety.CheckBoundary(target); err != nil {
		return err
	}
	if err := r.safety.CheckBoundary(candidate); err != nil {
		return err
	}

	r.commitPosition(candidate)
	// Pin object and arm to the requested target exactly; the rigid delta
	// shift above can carry rounding.
	*r.carried = target
	r.armPosition = target
	return nil
}

// MoveArmTo moves the manipulator toward target without moving the base.
// The motion is subject to the obstacle-stop rule: it is clipped just short
// of the nearest blocking obstacle on the path. Clipping is reported in the
// returned ArmMotion and is not a failure.
func (r *Robot) MoveArmTo(target Vec3) (ArmMotion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !target.IsFinite() {
		return ArmMotion{Final: r.armPosition}, fmt.Errorf("non-finite arm target %v: %w", target, ErrBoundaryViolation)
	}

	motion := r.safety.ClipArmPath(r.armPosition, target)
	r.armPosition = motion.Final
	if r.carried != nil {
		*r.carried = motion.Final
	}
	r.appendHistory()
	return motion, nil
}

// BlockGripper marks the gripper unavailable. Refused while holding.
func (r *Robot) BlockGripper() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gripper == GripperHolding {
		return ErrGripperHolding
	}
	r.gripper = GripperBlocked
	return nil
}

// UnblockGripper returns a blocked gripper to open. A no-op otherwise.
func (r *Robot) UnblockGripper() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gripper == GripperBlocked {
		r.gripper = GripperOpen
	}
	return nil
}
