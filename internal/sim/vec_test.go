package sim

import (
	"math"
	"testing"
)

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: -1, Y: 0.5, Z: 2}

	sum := a.Add(b)
	if sum != (Vec3{X: 0, Y: 2.5, Z: 5}) {
		t.Errorf("Add: got %v", sum)
	}

	diff := a.Sub(b)
	if diff != (Vec3{X: 2, Y: 1.5, Z: 1}) {
		t.Errorf("Sub: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled != (Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale: got %v", scaled)
	}

	// Arithmetic must not mutate the receiver.
	if a != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestVec3_Magnitude(t *testing.T) {
	v := Vec3{X: 3, Y: 4, Z: 0}
	if got := v.Magnitude(); got != 5 {
		t.Errorf("expected magnitude 5, got %v", got)
	}
	if got := (Vec3{}).Magnitude(); got != 0 {
		t.Errorf("expected zero magnitude, got %v", got)
	}
}

func TestVec3_DistanceTo(t *testing.T) {
	a := Vec3{X: 1, Y: 1, Z: 1}
	b := Vec3{X: 1, Y: 1, Z: 1}
	if d := a.DistanceTo(b); d != 0 {
		t.Errorf("expected zero distance, got %v", d)
	}

	c := Vec3{X: 1, Y: 5, Z: 1}
	if d := a.DistanceTo(c); d != 4 {
		t.Errorf("expected distance 4, got %v", d)
	}

	// Distance is symmetric.
	if c.DistanceTo(a) != a.DistanceTo(c) {
		t.Error("distance is not symmetric")
	}
}

func TestVec3_Dot(t *testing.T) {
	a := Vec3{X: 1, Y: 0, Z: 0}
	b := Vec3{X: 0, Y: 1, Z: 0}
	if got := a.Dot(b); got != 0 {
		t.Errorf("orthogonal dot: expected 0, got %v", got)
	}
	if got := a.Dot(a); got != 1 {
		t.Errorf("unit dot: expected 1, got %v", got)
	}
}

func TestVec3_ApproxEqual(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 1.005, Y: 1.995, Z: 3.009}

	if !a.ApproxEqual(b, FilterEpsilon) {
		t.Error("expected approx equality at filter epsilon")
	}
	if a.ApproxEqual(b, ExactEpsilon) {
		t.Error("did not expect approx equality at exact epsilon")
	}
	// Per-axis comparison: one bad axis fails even when magnitude is close.
	c := Vec3{X: 1, Y: 2, Z: 3.02}
	if a.ApproxEqual(c, FilterEpsilon) {
		t.Error("expected Z axis to break approx equality")
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !(Vec3{X: 1, Y: 2, Z: 3}).IsFinite() {
		t.Error("finite vector reported non-finite")
	}
	if (Vec3{X: math.NaN()}).IsFinite() {
		t.Error("NaN vector reported finite")
	}
	if (Vec3{Z: math.Inf(-1)}).IsFinite() {
		t.Error("Inf vector reported finite")
	}
}
