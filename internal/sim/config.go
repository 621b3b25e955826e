package sim

// Constants for simulation configuration
const (
	// DefaultBoundaryLimit is the symmetric cube half-extent (metres)
	// applied to robot and arm positions.
	DefaultBoundaryLimit = 5.0
	// DefaultObstacleClearance is how far short of a blocking obstacle the
	// arm stops (metres).
	DefaultObstacleClearance = 0.1
	// DefaultCircleSegments is the number of discrete steps used to trace
	// a circular path.
	DefaultCircleSegments = 16
	// DefaultSensorNoiseSigma is the standard deviation of simulated
	// sensor noise (metres).
	DefaultSensorNoiseSigma = 0.05
)

// Config holds tuning parameters for a simulated robot and its collaborators.
type Config struct {
	BoundaryLimit     float64 // Cube half-extent for legal positions (metres)
	ObstacleClearance float64 // Arm stop-short distance from obstacles (metres)
	CircleSegments    int     // Discrete steps per circular path
	SensorNoiseSigma  float64 // Gaussian sensor noise (σ, metres)
	Estimator         EstimatorConfig
}

// DefaultConfig returns default simulation configuration.
func DefaultConfig() Config {
	return Config{
		BoundaryLimit:     DefaultBoundaryLimit,
		ObstacleClearance: DefaultObstacleClearance,
		CircleSegments:    DefaultCircleSegments,
		SensorNoiseSigma:  DefaultSensorNoiseSigma,
		Estimator:         DefaultEstimatorConfig(),
	}
}
