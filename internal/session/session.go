// Package session owns the per-exercise engine state and exposes the
// frame-driven contract consumed by the rest of the application.
package session

import (
	"github.com/abelbrown/formcoach/internal/exercise"
	"github.com/abelbrown/formcoach/internal/pose"
	"github.com/abelbrown/formcoach/internal/scoring"
)

// Output is what one processed frame yields. Zero value means "nothing
// happened this frame".
type Output struct {
	// RepDelta is 1 when this frame completed a rep, else 0.
	RepDelta int

	// Score is the completed rep's score. Valid only when RepDelta > 0.
	Score int

	// Issues are the completed rep's form defects. Valid only when
	// RepDelta > 0.
	Issues []exercise.Issue

	// Average is the rolling average over the last five rep scores.
	Average float64

	// Feedback is a short coaching phrase or advisory to surface this
	// frame. Empty when the throttle suppressed output or there was
	// nothing to say.
	Feedback string

	// AudioPulse is true when a newly detected issue should trigger the
	// short audio cue.
	AudioPulse bool

	// Debug echoes raw state and angles when the debug flag is set.
	Debug *DebugInfo
}

// DebugInfo is the raw introspection payload for the debug display.
// Purely observational.
type DebugInfo struct {
	State       exercise.RepState
	Calibration exercise.CalibrationPhase
	Angles      map[pose.Joint]float64
}

// state is the full per-exercise session state. Replaced wholesale, never
// partially mutated, whenever the exercise kind changes.
type state struct {
	kind       exercise.Kind
	detector   exercise.Detector
	window     *scoring.Window
	repCount   int
	lastIssues map[exercise.Issue]bool
	calibrated bool // last observed calibration readiness, for edge logging
}

// adviceResult is the eventual outcome of one fire-and-forget advice call,
// tagged with the generation it belongs to.
type adviceResult struct {
	generation uint64
	text       string
	fallback   bool // true when the text came from the canned table
}
