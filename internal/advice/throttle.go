package advice

import "time"

// Default intervals. The advice cooldown protects the rate-limited phrase
// service and the user's attention; the pulse debounce is the much faster
// gate on the audio "issue pulse" cue.
const (
	DefaultCooldown      = 4 * time.Second
	DefaultPulseDebounce = 500 * time.Millisecond
)

// Throttle is a deadline-based cooldown gate. The caller passes the
// current time into Allow, so behavior is deterministic under test — no
// wall-clock waits, no timers to leak. A call that arrives inside the
// cooldown is dropped outright, never deferred or queued.
//
// Not goroutine-safe: owned by the single frame-processing path.
type Throttle struct {
	interval time.Duration
	next     time.Time // zero means the first call is always allowed
}

// NewThrottle creates a throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether a call may fire at now, and if so starts the next
// cooldown.
func (t *Throttle) Allow(now time.Time) bool {
	if now.Before(t.next) {
		return false
	}
	t.next = now.Add(t.interval)
	return true
}

// Active reports whether the cooldown is in effect at now, without
// consuming an allowance.
func (t *Throttle) Active(now time.Time) bool {
	return now.Before(t.next)
}

// Reset clears the cooldown so the next call is allowed immediately.
func (t *Throttle) Reset() {
	t.next = time.Time{}
}
