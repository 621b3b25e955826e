package sim

// EstimatorConfig holds tuning parameters for the position estimator.
type EstimatorConfig struct {
	ProcessNoise           float64 // Process noise added each predict step (σ²)
	MeasurementNoise       float64 // Measurement noise (σ²)
	InitialErrorCovariance float64 // Error covariance at construction
}

// DefaultEstimatorConfig returns default estimator configuration.
func DefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		ProcessNoise:           1e-5,
		MeasurementNoise:       1e-2,
		InitialErrorCovariance: 1.0,
	}
}

// axisFilter is a scalar Kalman filter over a static-position model.
type axisFilter struct {
	estimate float64
	errCov   float64
}

// update runs one predict/correct cycle against measurement z with process
// noise q and measurement noise r, returning the new estimate.
func (f *axisFilter) update(z, q, r float64) float64 {
	// Predict: estimate unchanged, uncertainty grows.
	f.errCov += q

	// Correct with the Kalman gain.
	gain := f.errCov / (f.errCov + r)
	f.estimate += gain * (z - f.estimate)
	f.errCov *= 1 - gain

	return f.estimate
}

// Estimator is a recursive position estimator: an independent scalar Kalman
// filter per axis, with no cross-axis covariance. Repeated updates with
// noisy measurements centred on a true position drive the estimate toward
// that position.
type Estimator struct {
	config  EstimatorConfig
	x, y, z axisFilter
	updates int
}

// NewEstimator creates an estimator with the given initial estimate.
func NewEstimator(initial Vec3, config EstimatorConfig) *Estimator {
	e := &Estimator{config: config}
	e.x = axisFilter{estimate: initial.X, errCov: config.InitialErrorCovariance}
	e.y = axisFilter{estimate: initial.Y, errCov: config.InitialErrorCovariance}
	e.z = axisFilter{estimate: initial.Z, errCov: config.InitialErrorCovariance}
	return e
}

// Update incorporates one noisy position measurement and returns the
// refined estimate.
func (e *Estimator) Update(measurement Vec3) Vec3 {
	q, r := e.config.ProcessNoise, e.config.MeasurementNoise
	e.x.update(measurement.X, q, r)
	e.y.update(measurement.Y, q, r)
	e.z.update(measurement.Z, q, r)
	e.updates++
	return e.Estimate()
}

// Estimate returns the current best position estimate.
func (e *Estimator) Estimate() Vec3 {
	return Vec3{X: e.x.estimate, Y: e.y.estimate, Z: e.z.estimate}
}

// ErrorCovariance returns the per-axis error covariance.
func (e *Estimator) ErrorCovariance() Vec3 {
	return Vec3{X: e.x.errCov, Y: e.y.errCov, Z: e.z.errCov}
}

// Updates returns the number of measurements incorporated so far.
func (e *Estimator) Updates() int {
	return e.updates
}
