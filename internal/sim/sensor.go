package sim

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Scan reports whether an object at objectPos is detectable from robotPos
// with the given sensor range. The boundary is inclusive: an object exactly
// at range counts as detected.
func Scan(sensorRange float64, objectPos, robotPos Vec3) bool {
	return robotPos.DistanceTo(objectPos) <= sensorRange
}

// Sensor is a range-bounded object detector.
type Sensor struct {
	Range float64 // Detection range (metres)
}

// Detects reports whether the sensor at robotPos detects an object at
// objectPos.
func (s Sensor) Detects(objectPos, robotPos Vec3) bool {
	return Scan(s.Range, objectPos, robotPos)
}

// NoisySensor produces position readings corrupted by zero-mean Gaussian
// noise, seeded for reproducible scenarios.
type NoisySensor struct {
	noise distuv.Normal
}

// NewNoisySensor creates a sensor with the given noise standard deviation
// (metres) and deterministic seed.
func NewNoisySensor(sigma float64, seed uint64) *NoisySensor {
	return &NoisySensor{
		noise: distuv.Normal{
			Mu:    0,
			Sigma: sigma,
			Src:   rand.NewPCG(seed, seed),
		},
	}
}

// Read returns a single noisy reading of trueValue.
func (s *NoisySensor) Read(trueValue float64) float64 {
	return trueValue + s.noise.Rand()
}

// ReadPosition returns a noisy reading of a true position, with independent
// noise per axis.
func (s *NoisySensor) ReadPosition(truePos Vec3) Vec3 {
	return Vec3{
		X: truePos.X + s.noise.Rand(),
		Y: truePos.Y + s.noise.Rand(),
		Z: truePos.Z + s.noise.Rand(),
	}
}
