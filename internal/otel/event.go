// Package otel provides structured observability for the rep engine.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and background drain
// goroutine. An optional RingBuffer keeps the most recent events in memory
// for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Frame events
	KindFrameMissing EventKind = "frame.missing"
	KindFrameDrop    EventKind = "frame.drop"

	// Calibration events
	KindCalibStart EventKind = "calib.start"
	KindCalibReady EventKind = "calib.ready"

	// Rep events
	KindRepComplete EventKind = "rep.complete"
	KindScoreUpdate EventKind = "score.update"

	// Advice events
	KindAdviceRequest   EventKind = "advice.request"
	KindAdviceOK        EventKind = "advice.ok"
	KindAdviceError     EventKind = "advice.error"
	KindAdviceFallback  EventKind = "advice.fallback"
	KindAdviceStale     EventKind = "advice.stale"
	KindAdviceThrottled EventKind = "advice.throttled"
	KindAudioPulse      EventKind = "audio.pulse"

	// Session events
	KindExerciseSwitch EventKind = "session.exercise"
	KindWorkoutActive  EventKind = "session.active"

	// Store events
	KindStoreError EventKind = "store.error"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // component: "session", "advice", "store", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire run
	Exercise  string         `json:"exercise,omitempty"`
	Rep       int            `json:"rep,omitempty"`
	Score     int            `json:"score,omitempty"`
	Issues    []string       `json:"issues,omitempty"`
	Dur       time.Duration  `json:"-"`                // not serialized directly
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`   // free text
	Extra     map[string]any `json:"extra,omitempty"` // escape hatch for unusual fields
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
