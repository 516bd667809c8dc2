package exercise

// Thresholds hold the tuned detection constants for all exercises. The
// defaults were arrived at empirically, not analytically, so they are
// configuration rather than invariants.
type Thresholds struct {
	PullUp PullUpThresholds `json:"pullup"`
	Jump   JumpThresholds   `json:"jump"`
}

// PullUpThresholds are the pull-up state machine's angle gates, in degrees.
type PullUpThresholds struct {
	// FlexedAngle: both elbows below this enters the Up phase.
	FlexedAngle float64 `json:"flexed_angle"`

	// CompleteAngle: both elbows above this back in the Down phase
	// completes the rep.
	CompleteAngle float64 `json:"complete_angle"`

	// ExtendedAngle: full extension. An elbow still below this at rep
	// completion records partial bottom range of motion.
	ExtendedAngle float64 `json:"extended_angle"`

	// ReadyAngle: both elbows above this marks the hang position; rep
	// detection is not trusted until it has been seen once.
	ReadyAngle float64 `json:"ready_angle"`

	// AsymmetryDelta: left/right elbow difference beyond this records
	// the asymmetry issue.
	AsymmetryDelta float64 `json:"asymmetry_delta"`
}

// JumpThresholds are the jump state machine's gates. Heights and
// tolerances are in image pixels, angles in degrees.
type JumpThresholds struct {
	// MinHeight: ankle displacement must exceed this to leave the ground.
	MinHeight float64 `json:"min_height"`

	// LandingTolerance: displacement back within this of baseline lands.
	LandingTolerance float64 `json:"landing_tolerance"`

	// KneeExtensionAngle: knees must also exceed this to leave the
	// ground. The conjunction with MinHeight is the walking guard.
	KneeExtensionAngle float64 `json:"knee_extension_angle"`

	// StiffKneeAngle: knees at or above this on the landing frame record
	// a stiff landing.
	StiffKneeAngle float64 `json:"stiff_knee_angle"`

	// KneeAsymmetryDelta: left/right knee difference beyond this on the
	// landing frame records the asymmetry issue.
	KneeAsymmetryDelta float64 `json:"knee_asymmetry_delta"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PullUp: PullUpThresholds{
			FlexedAngle:    90,
			CompleteAngle:  150,
			ExtendedAngle:  160,
			ReadyAngle:     140,
			AsymmetryDelta: 25,
		},
		Jump: JumpThresholds{
			MinHeight:          30,
			LandingTolerance:   10,
			KneeExtensionAngle: 150,
			StiffKneeAngle:     170,
			KneeAsymmetryDelta: 25,
		},
	}
}
