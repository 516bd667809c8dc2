// Package exercise implements the per-exercise rep state machines.
//
// Each supported exercise is a Detector: a small finite-state machine fed
// one frame at a time. Detectors hold state across frames but share nothing
// with each other; the session controller constructs a fresh detector
// whenever the active exercise changes.
package exercise

import (
	"fmt"

	"github.com/abelbrown/formcoach/internal/pose"
)

// Kind identifies a supported exercise. Closed set: every switch over Kind
// must handle all values plus an error default.
type Kind string

const (
	KindPullUp Kind = "pullup"
	KindJump   Kind = "jump"
)

// Valid reports whether k names a supported exercise.
func (k Kind) Valid() bool {
	switch k {
	case KindPullUp, KindJump:
		return true
	}
	return false
}

// RepState is the current phase of the rep cycle. Each exercise uses
// exactly two of these; no third state is reachable for a given kind.
type RepState string

const (
	// Pull-up states.
	StateDown RepState = "down"
	StateUp   RepState = "up"

	// Jump states.
	StateGrounded RepState = "grounded"
	StateAirborne RepState = "airborne"
)

// Issue is a named form defect detected on a single completed rep.
type Issue string

const (
	IssueAsymmetry     Issue = "asymmetry"
	IssuePartialTop    Issue = "partial_top_rom"
	IssuePartialBottom Issue = "partial_bottom_rom"
	IssueStiffLanding  Issue = "stiff_landing"
)

// Step is the outcome of feeding one frame to a Detector.
type Step struct {
	// RepCompleted is true when this frame closed a full rep cycle.
	RepCompleted bool

	// Issues are the form defects for the completed rep. Empty unless
	// RepCompleted.
	Issues []Issue

	// PeakHeight is the maximum vertical displacement reached during the
	// rep, in pixels. Jump only; zero for other exercises.
	PeakHeight float64

	// Advisory is calibration/readiness guidance. Non-empty only while the
	// detector is not yet ready to count reps.
	Advisory string

	// Dropped is true when the frame was unusable (missing or
	// low-confidence joints) and state was held unchanged.
	Dropped bool

	// Angles echoes the joint angles measured this frame, keyed by joint
	// name. Populated only for confidence-valid frames; consumed by the
	// debug overlay.
	Angles map[pose.Joint]float64
}

// Detector is the shared contract of the per-exercise state machines.
// Step is total for any input: a nil or low-confidence frame holds state
// and reports Dropped rather than failing.
type Detector interface {
	Kind() Kind
	State() RepState
	Calibration() Calibration
	Step(f *pose.Frame) Step
}

// New constructs a fresh detector for the given kind.
func New(kind Kind, t Thresholds) (Detector, error) {
	switch kind {
	case KindPullUp:
		return NewPullUp(t.PullUp), nil
	case KindJump:
		return NewJump(t.Jump), nil
	default:
		return nil, fmt.Errorf("unknown exercise kind %q", kind)
	}
}

// addIssue appends issue to issues unless already present. Issues are a
// set per rep: the same defect never counts twice.
func addIssue(issues []Issue, issue Issue) []Issue {
	for _, have := range issues {
		if have == issue {
			return issues
		}
	}
	return append(issues, issue)
}
