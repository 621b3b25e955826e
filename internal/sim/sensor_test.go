package sim

import (
	"math"
	"testing"
)

func TestScan_RangeBoundaryInclusive(t *testing.T) {
	robot := Vec3{}

	cases := []struct {
		name     string
		rng      float64
		object   Vec3
		detected bool
	}{
		{"well inside", 5.0, Vec3{X: 1}, true},
		{"exactly at range", 0.5, Vec3{X: 0.5}, true},
		{"just beyond", 0.5, Vec3{X: 0.5001}, false},
		{"far beyond", 2.0, Vec3{X: 0, Y: 10, Z: 0}, false},
		{"at robot position", 0, Vec3{}, true},
		{"diagonal at range", 5.0, Vec3{X: 3, Y: 4}, true},
	}

	for _, tc := range cases {
		if got := Scan(tc.rng, tc.object, robot); got != tc.detected {
			t.Errorf("%s: Scan(%v, %v) = %v, want %v", tc.name, tc.rng, tc.object, got, tc.detected)
		}
	}
}

func TestSensor_Detects(t *testing.T) {
	s := Sensor{Range: 3.0}
	robot := Vec3{X: 1, Y: 1, Z: 0}

	if !s.Detects(Vec3{X: 1, Y: 4, Z: 0}, robot) {
		t.Error("expected detection exactly at range")
	}
	if s.Detects(Vec3{X: 1, Y: 4.01, Z: 0}, robot) {
		t.Error("did not expect detection beyond range")
	}
}

func TestNoisySensor_ZeroSigmaIsExact(t *testing.T) {
	s := NewNoisySensor(0, 1)
	if got := s.Read(3.5); got != 3.5 {
		t.Errorf("expected exact reading with zero noise, got %v", got)
	}
	truth := Vec3{X: 1, Y: 2, Z: 3}
	if got := s.ReadPosition(truth); got != truth {
		t.Errorf("expected exact position with zero noise, got %v", got)
	}
}

func TestNoisySensor_Reproducible(t *testing.T) {
	a := NewNoisySensor(0.2, 99)
	b := NewNoisySensor(0.2, 99)

	for i := 0; i < 10; i++ {
		if a.Read(1) != b.Read(1) {
			t.Fatal("same seed must produce identical readings")
		}
	}
}

func TestNoisySensor_NoiseIsCentred(t *testing.T) {
	s := NewNoisySensor(0.1, 5)

	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		sum += s.Read(10)
	}
	mean := sum / n
	if math.Abs(mean-10) > 0.02 {
		t.Errorf("expected readings centred on 10, mean %v", mean)
	}
}
