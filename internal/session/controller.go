package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abelbrown/formcoach/internal/advice"
	"github.com/abelbrown/formcoach/internal/config"
	"github.com/abelbrown/formcoach/internal/exercise"
	"github.com/abelbrown/formcoach/internal/otel"
	"github.com/abelbrown/formcoach/internal/pose"
	"github.com/abelbrown/formcoach/internal/scoring"
)

const comp = "session"

// missingFrameAdvisory is emitted (throttled) when no pose was detected.
const missingFrameAdvisory = "step back into view so the camera can see you"

// resultChanSize bounds buffered advice results. Results beyond this are
// dropped, never blocked on.
const resultChanSize = 8

// Controller owns the per-exercise engine state and drives it one frame at
// a time. Invoked strictly serially by an external ticker; no internal
// mutable state is shared across goroutines. The only asynchronous work is
// the advice call, whose goroutine communicates back exclusively through
// the results channel, filtered by generation on the frame path.
type Controller struct {
	cfg      *config.Config
	provider advice.Provider // network phrase service; nil when unconfigured
	canned   *advice.CannedProvider
	obs      *otel.Logger
	now      func() time.Time
	debug    bool

	st       *state
	throttle *advice.Throttle
	pulse    *advice.Throttle
	active   bool

	// generation advances on every exercise switch; in-flight advice
	// results carrying an older generation are discarded (stale guard).
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	results    chan adviceResult
}

// New creates a controller. provider may be nil (canned phrases only);
// obs may be nil (observability disabled).
func New(cfg *config.Config, provider advice.Provider, obs *otel.Logger) *Controller {
	if obs == nil {
		obs = otel.NewNullLogger()
	}
	return &Controller{
		cfg:      cfg,
		provider: provider,
		canned:   advice.NewCannedProvider(),
		obs:      obs,
		now:      time.Now,
		results:  make(chan adviceResult, resultChanSize),
	}
}

// SetClock overrides the controller's clock. Test hook.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// SetDebug toggles the raw angle/state echo on Output.
func (c *Controller) SetDebug(on bool) {
	c.debug = on
}

// SetExercise discards all prior session state and constructs a fresh one
// for kind: rep count, calibration, rolling window, issue memory and
// cooldown timers all reset. A rep in progress is silently discarded.
// Calling it twice in a row yields the same fresh state as calling it once.
func (c *Controller) SetExercise(kind exercise.Kind) error {
	detector, err := exercise.New(kind, c.cfg.Thresholds)
	if err != nil {
		return err
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.generation++

	c.st = &state{
		kind:       kind,
		detector:   detector,
		window:     scoring.NewWindow(scoring.WindowSize),
		lastIssues: make(map[exercise.Issue]bool),
	}
	c.throttle = advice.NewThrottle(c.cfg.Advice.Cooldown())
	c.pulse = advice.NewThrottle(c.cfg.Advice.PulseDebounce())

	c.obs.Emit(otel.Event{
		Level:    otel.LevelInfo,
		Kind:     otel.KindExerciseSwitch,
		Comp:     comp,
		Exercise: string(kind),
	})
	c.obs.Emit(otel.Event{
		Level:    otel.LevelDebug,
		Kind:     otel.KindCalibStart,
		Comp:     comp,
		Exercise: string(kind),
	})
	return nil
}

// SetWorkoutActive gates whether transitions and scoring are live. While
// inactive only calibration and readiness messaging run.
func (c *Controller) SetWorkoutActive(active bool) {
	c.active = active
	c.obs.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindWorkoutActive,
		Comp:  comp,
		Msg:   fmt.Sprintf("active=%v", active),
	})
}

// Close cancels any in-flight advice call. Further results are ignored.
func (c *Controller) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Exercise returns the active exercise kind, or "" before SetExercise.
func (c *Controller) Exercise() exercise.Kind {
	if c.st == nil {
		return ""
	}
	return c.st.kind
}

// RepCount returns the completed reps for the current session.
func (c *Controller) RepCount() int {
	if c.st == nil {
		return 0
	}
	return c.st.repCount
}

// Average returns the rolling average over the last five rep scores.
func (c *Controller) Average() float64 {
	if c.st == nil {
		return 100
	}
	return c.st.window.Average()
}

// State returns the current rep state, or "" before SetExercise.
func (c *Controller) State() exercise.RepState {
	if c.st == nil {
		return ""
	}
	return c.st.detector.State()
}

// ProcessFrame feeds one frame (or nil for "no pose detected") through the
// engine and returns everything the caller should surface this tick.
// Never blocks on the network and never fails: every degraded path ends in
// "no feedback this frame" or a canned phrase.
func (c *Controller) ProcessFrame(f *pose.Frame) Output {
	var out Output
	if c.st == nil {
		return out
	}

	now := c.now()
	out.Average = c.st.window.Average()

	// Surface at most one arrived advice result per frame. Results from a
	// previous session generation are stale and dropped.
	select {
	case res := <-c.results:
		if res.generation == c.generation {
			out.Feedback = res.text
			kind := otel.KindAdviceOK
			if res.fallback {
				kind = otel.KindAdviceFallback
			}
			c.obs.Emit(otel.Event{Level: otel.LevelInfo, Kind: kind, Comp: comp, Msg: res.text})
		} else {
			c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAdviceStale, Comp: comp})
		}
	default:
	}

	if f == nil {
		c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFrameMissing, Comp: comp})
		if out.Feedback == "" && c.throttle.Allow(now) {
			out.Feedback = missingFrameAdvisory
		}
		return out
	}

	// Pre-workout with calibration done: hold state, nothing to report.
	if !c.active && c.st.detector.Calibration().Ready() {
		return out
	}

	wasCalibrating := !c.st.calibrated
	st := c.st.detector.Step(f)

	if c.debug {
		out.Debug = &DebugInfo{
			State:       c.st.detector.State(),
			Calibration: c.st.detector.Calibration().Phase,
			Angles:      st.Angles,
		}
	}

	if st.Dropped {
		c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindFrameDrop, Comp: comp, Exercise: string(c.st.kind)})
	}

	if wasCalibrating && c.st.detector.Calibration().Ready() {
		c.st.calibrated = true
		c.obs.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindCalibReady, Comp: comp, Exercise: string(c.st.kind)})
	}

	if st.Advisory != "" && out.Feedback == "" && c.throttle.Allow(now) {
		out.Feedback = st.Advisory
	}

	if !c.active || !st.RepCompleted {
		return out
	}

	// Rep completed: score it, refresh the rolling average, and decide
	// what feedback may fire.
	c.st.repCount++
	score := scoring.ScoreRep(c.st.kind, st.Issues)
	c.st.window.Push(scoring.Record{Time: now, Score: score})

	out.RepDelta = 1
	out.Score = score
	out.Issues = st.Issues
	out.Average = c.st.window.Average()

	c.obs.Emit(otel.Event{
		Level:    otel.LevelInfo,
		Kind:     otel.KindRepComplete,
		Comp:     comp,
		Exercise: string(c.st.kind),
		Rep:      c.st.repCount,
		Score:    score,
		Issues:   issueStrings(st.Issues),
	})

	// The audio pulse fires only for an issue the previous rep did not
	// already have, on its own fast debounce, independent of the network
	// cooldown.
	newIssue := false
	for _, issue := range st.Issues {
		if !c.st.lastIssues[issue] {
			newIssue = true
			break
		}
	}
	if newIssue && c.pulse.Allow(now) {
		out.AudioPulse = true
		c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAudioPulse, Comp: comp})
	}

	// Skip the phrase entirely when every issue this rep was already
	// called out on the previous one; the user has heard it.
	repeated := len(st.Issues) > 0 && !newIssue
	if !repeated {
		if c.throttle.Allow(now) {
			c.requestAdvice(score, st.Issues, &out)
		} else {
			c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAdviceThrottled, Comp: comp})
		}
	}

	c.st.lastIssues = make(map[exercise.Issue]bool, len(st.Issues))
	for _, issue := range st.Issues {
		c.st.lastIssues[issue] = true
	}

	return out
}

// requestAdvice fires the best-effort phrase request. When the network
// provider is absent or unavailable the canned phrase is emitted
// synchronously; otherwise the call runs in its own goroutine and its
// result surfaces on a later frame, tagged with the current generation.
func (c *Controller) requestAdvice(score int, issues []exercise.Issue, out *Output) {
	req := advice.Request{
		Exercise:    string(c.st.kind),
		Personality: c.cfg.Advice.Personality,
		RepCount:    c.st.repCount,
		Score:       score,
		Issues:      issueStrings(issues),
	}

	if c.provider == nil || !c.provider.Available() {
		text, _ := c.canned.Generate(context.Background(), req)
		if out.Feedback == "" {
			out.Feedback = text
		}
		c.obs.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindAdviceFallback, Comp: comp, Msg: text})
		return
	}

	c.obs.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindAdviceRequest, Comp: comp})

	generation := c.generation
	ctx := c.ctx
	provider := c.provider
	canned := c.canned
	obs := c.obs

	go func() {
		text, err := provider.Generate(ctx, req)
		fallback := false
		if err != nil {
			obs.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindAdviceError, Comp: "advice", Err: err.Error()})
			text, _ = canned.Generate(context.Background(), req)
			fallback = true
		}

		select {
		case c.results <- adviceResult{generation: generation, text: text, fallback: fallback}:
		default:
			// Results channel full; this phrase is simply lost.
		}
	}()
}

func issueStrings(issues []exercise.Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = string(issue)
	}
	return out
}
