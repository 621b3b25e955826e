package sim

import "errors"

// Outcome kinds returned by robot commands. All of them are local,
// recoverable results; a failed command leaves robot state unchanged.
var (
	// ErrBoundaryViolation is returned when a candidate position exceeds
	// the configured boundary limit on any axis.
	ErrBoundaryViolation = errors.New("candidate position outside boundary")

	// ErrGripperBlocked is returned when a pick is attempted while the
	// gripper is blocked.
	ErrGripperBlocked = errors.New("gripper is blocked")

	// ErrGripperHolding is returned when an operation needs a free gripper
	// but an object is already held.
	ErrGripperHolding = errors.New("gripper is already holding an object")

	// ErrNothingHeld is returned when an object move is attempted with an
	// empty gripper.
	ErrNothingHeld = errors.New("no object held")

	// ErrInvalidPosture is returned when an operation is not legal in the
	// robot's current posture.
	ErrInvalidPosture = errors.New("operation not legal in current posture")

	// ErrInvalidDistance is returned when a movement distance is negative
	// or not finite.
	ErrInvalidDistance = errors.New("movement distance must be finite and non-negative")
)
