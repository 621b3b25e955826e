package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmptyTuningConfigDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	// Getter methods fall back to defaults when fields are unset.
	if cfg.GetBoundaryLimit() != 5.0 {
		t.Errorf("GetBoundaryLimit() = %f, want 5.0", cfg.GetBoundaryLimit())
	}
	if cfg.GetObstacleClearance() != 0.1 {
		t.Errorf("GetObstacleClearance() = %f, want 0.1", cfg.GetObstacleClearance())
	}
	if cfg.GetCircleSegments() != 16 {
		t.Errorf("GetCircleSegments() = %d, want 16", cfg.GetCircleSegments())
	}
	if cfg.GetSensorRange() != 5.0 {
		t.Errorf("GetSensorRange() = %f, want 5.0", cfg.GetSensorRange())
	}
	if cfg.GetProcessNoise() != 1e-5 {
		t.Errorf("GetProcessNoise() = %v, want 1e-5", cfg.GetProcessNoise())
	}
	if cfg.GetMeasurementNoise() != 1e-2 {
		t.Errorf("GetMeasurementNoise() = %v, want 1e-2", cfg.GetMeasurementNoise())
	}
	if cfg.GetInitialErrorCovariance() != 1.0 {
		t.Errorf("GetInitialErrorCovariance() = %v, want 1.0", cfg.GetInitialErrorCovariance())
	}
	if cfg.GetRecordTelemetry() != false {
		t.Errorf("GetRecordTelemetry() = %v, want false", cfg.GetRecordTelemetry())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	// Partial config: omitted fields keep their defaults.
	testJSON := `{
  "boundary_limit": 10,
  "circle_segments": 32,
  "measurement_noise": 0.05,
  "record_telemetry": true
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetBoundaryLimit() != 10 {
		t.Errorf("GetBoundaryLimit() = %f, want 10", cfg.GetBoundaryLimit())
	}
	if cfg.GetCircleSegments() != 32 {
		t.Errorf("GetCircleSegments() = %d, want 32", cfg.GetCircleSegments())
	}
	if cfg.GetMeasurementNoise() != 0.05 {
		t.Errorf("GetMeasurementNoise() = %v, want 0.05", cfg.GetMeasurementNoise())
	}
	if !cfg.GetRecordTelemetry() {
		t.Error("GetRecordTelemetry() = false, want true")
	}
	// Omitted field retains its default.
	if cfg.GetObstacleClearance() != 0.1 {
		t.Errorf("GetObstacleClearance() = %f, want default 0.1", cfg.GetObstacleClearance())
	}
}

func TestLoadTuningConfig_Invalid(t *testing.T) {
	tmpDir := t.TempDir()

	cases := []struct {
		name string
		file string
		body string
	}{
		{"wrong extension", "config.yaml", `{}`},
		{"bad json", "bad.json", `{not json`},
		{"negative boundary", "neg.json", `{"boundary_limit": -1}`},
		{"too few segments", "seg.json", `{"circle_segments": 2}`},
		{"negative clearance", "clr.json", `{"obstacle_clearance": -0.5}`},
		{"zero measurement noise", "mn.json", `{"measurement_noise": 0}`},
	}

	for _, tc := range cases {
		path := filepath.Join(tmpDir, tc.file)
		if err := os.WriteFile(path, []byte(tc.body), 0644); err != nil {
			t.Fatalf("%s: write: %v", tc.name, err)
		}
		if _, err := LoadTuningConfig(path); err == nil {
			t.Errorf("%s: expected load to fail", tc.name)
		}
	}

	// Missing file
	if _, err := LoadTuningConfig(filepath.Join(tmpDir, "missing.json")); err == nil {
		t.Error("expected load of missing file to fail")
	}
}

func TestSimConfigAssembly(t *testing.T) {
	limit := 3.0
	segments := 8
	cfg := &TuningConfig{
		BoundaryLimit:  &limit,
		CircleSegments: &segments,
	}

	sc := cfg.SimConfig()
	if sc.BoundaryLimit != 3.0 {
		t.Errorf("BoundaryLimit = %f, want 3.0", sc.BoundaryLimit)
	}
	if sc.CircleSegments != 8 {
		t.Errorf("CircleSegments = %d, want 8", sc.CircleSegments)
	}
	if sc.Estimator.ProcessNoise != 1e-5 {
		t.Errorf("Estimator.ProcessNoise = %v, want default 1e-5", sc.Estimator.ProcessNoise)
	}
}
