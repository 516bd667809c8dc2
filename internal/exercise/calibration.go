package exercise

// CalibrationPhase is the readiness of an exercise's baseline.
type CalibrationPhase string

const (
	Uncalibrated CalibrationPhase = "uncalibrated"
	Calibrating  CalibrationPhase = "calibrating"
	Calibrated   CalibrationPhase = "calibrated"
)

// Calibration is the per-exercise baseline state. For jumps BaselineY is
// the ground-level ankle height; pull-ups store no numeric baseline (their
// readiness is a per-frame angle gate) and only report the phase.
//
// Calibration that never completes is not an error: it is a persistent
// "not ready" state with advisory feedback as the only side effect.
type Calibration struct {
	Phase      CalibrationPhase
	FramesSeen int
	BaselineY  float64
}

// Ready reports whether rep detection may be trusted.
func (c Calibration) Ready() bool {
	return c.Phase == Calibrated
}
