package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/robosim/internal/sim"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/sim.defaults.json"

// TuningConfig represents the root configuration for simulation tuning
// parameters. Fields omitted from the JSON file retain their defaults, so
// partial configs are safe.
type TuningConfig struct {
	// Safety params
	BoundaryLimit     *float64 `json:"boundary_limit,omitempty"`
	ObstacleClearance *float64 `json:"obstacle_clearance,omitempty"`

	// Path params
	CircleSegments *int `json:"circle_segments,omitempty"`

	// Sensor params
	SensorRange      *float64 `json:"sensor_range,omitempty"`
	SensorNoiseSigma *float64 `json:"sensor_noise_sigma,omitempty"`
	SensorSeed       *uint64  `json:"sensor_seed,omitempty"`

	// Estimator params (optional)
	ProcessNoise           *float64 `json:"process_noise,omitempty"`
	MeasurementNoise       *float64 `json:"measurement_noise,omitempty"`
	InitialErrorCovariance *float64 `json:"initial_error_covariance,omitempty"`

	// Telemetry params
	RecordTelemetry *bool `json:"record_telemetry,omitempty"`
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the
// max file size.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from
// DefaultConfigPath. It searches for the file in the current directory and
// common parent directories. Panics if the file cannot be loaded, intended
// for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.BoundaryLimit != nil && *c.BoundaryLimit <= 0 {
		return fmt.Errorf("boundary_limit must be positive, got %f", *c.BoundaryLimit)
	}
	if c.ObstacleClearance != nil && *c.ObstacleClearance < 0 {
		return fmt.Errorf("obstacle_clearance must be non-negative, got %f", *c.ObstacleClearance)
	}
	if c.CircleSegments != nil && *c.CircleSegments < 4 {
		return fmt.Errorf("circle_segments must be at least 4, got %d", *c.CircleSegments)
	}
	if c.SensorRange != nil && *c.SensorRange < 0 {
		return fmt.Errorf("sensor_range must be non-negative, got %f", *c.SensorRange)
	}
	if c.SensorNoiseSigma != nil && *c.SensorNoiseSigma < 0 {
		return fmt.Errorf("sensor_noise_sigma must be non-negative, got %f", *c.SensorNoiseSigma)
	}
	if c.ProcessNoise != nil && *c.ProcessNoise <= 0 {
		return fmt.Errorf("process_noise must be positive, got %f", *c.ProcessNoise)
	}
	if c.MeasurementNoise != nil && *c.MeasurementNoise <= 0 {
		return fmt.Errorf("measurement_noise must be positive, got %f", *c.MeasurementNoise)
	}
	if c.InitialErrorCovariance != nil && *c.InitialErrorCovariance <= 0 {
		return fmt.Errorf("initial_error_covariance must be positive, got %f", *c.InitialErrorCovariance)
	}
	return nil
}

// GetBoundaryLimit returns the boundary_limit value or the default.
func (c *TuningConfig) GetBoundaryLimit() float64 {
	if c.BoundaryLimit == nil {
		return sim.DefaultBoundaryLimit
	}
	return *c.BoundaryLimit
}

// GetObstacleClearance returns the obstacle_clearance value or the default.
func (c *TuningConfig) GetObstacleClearance() float64 {
	if c.ObstacleClearance == nil {
		return sim.DefaultObstacleClearance
	}
	return *c.ObstacleClearance
}

// GetCircleSegments returns the circle_segments value or the default.
func (c *TuningConfig) GetCircleSegments() int {
	if c.CircleSegments == nil {
		return sim.DefaultCircleSegments
	}
	return *c.CircleSegments
}

// GetSensorRange returns the sensor_range value or the default.
func (c *TuningConfig) GetSensorRange() float64 {
	if c.SensorRange == nil {
		return 5.0
	}
	return *c.SensorRange
}

// GetSensorNoiseSigma returns the sensor_noise_sigma value or the default.
func (c *TuningConfig) GetSensorNoiseSigma() float64 {
	if c.SensorNoiseSigma == nil {
		return sim.DefaultSensorNoiseSigma
	}
	return *c.SensorNoiseSigma
}

// GetSensorSeed returns the sensor_seed value or the default.
func (c *TuningConfig) GetSensorSeed() uint64 {
	if c.SensorSeed == nil {
		return 1
	}
	return *c.SensorSeed
}

// GetProcessNoise returns the process_noise value or the default.
func (c *TuningConfig) GetProcessNoise() float64 {
	if c.ProcessNoise == nil {
		return 1e-5
	}
	return *c.ProcessNoise
}

// GetMeasurementNoise returns the measurement_noise value or the default.
func (c *TuningConfig) GetMeasurementNoise() float64 {
	if c.MeasurementNoise == nil {
		return 1e-2
	}
	return *c.MeasurementNoise
}

// GetInitialErrorCovariance returns the initial_error_covariance value or
// the default.
func (c *TuningConfig) GetInitialErrorCovariance() float64 {
	if c.InitialErrorCovariance == nil {
		return 1.0
	}
	return *c.InitialErrorCovariance
}

// GetRecordTelemetry returns the record_telemetry value or the default.
func (c *TuningConfig) GetRecordTelemetry() bool {
	if c.RecordTelemetry == nil {
		return false // default: telemetry recording disabled
	}
	return *c.RecordTelemetry
}

// SimConfig assembles a sim.Config from the tuning values.
func (c *TuningConfig) SimConfig() sim.Config {
	return sim.Config{
		BoundaryLimit:     c.GetBoundaryLimit(),
		ObstacleClearance: c.GetObstacleClearance(),
		CircleSegments:    c.GetCircleSegments(),
		SensorNoiseSigma:  c.GetSensorNoiseSigma(),
		Estimator: sim.EstimatorConfig{
			ProcessNoise:           c.GetProcessNoise(),
			MeasurementNoise:       c.GetMeasurementNoise(),
			InitialErrorCovariance: c.GetInitialErrorCovariance(),
		},
	}
}
