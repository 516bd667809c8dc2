package exercise

import (
	"math"
	"testing"

	"github.com/abelbrown/formcoach/internal/pose"
)

// legFrame builds a two-leg pose with the ankles at exactly ankleY and the
// given knee angles. The knee sits 50px above each ankle and the hip is
// placed by rotating the knee-to-ankle ray, so the measured knee angle is
// exact and displacement math stays integral.
func legFrame(ankleY, leftDeg, rightDeg, conf float64) *pose.Frame {
	build := func(x, deg float64) (h, k, a pose.Keypoint) {
		rad := deg * math.Pi / 180
		ky := ankleY - 50
		hx := x + 50*math.Sin(rad)
		hy := ky + 50*math.Cos(rad)
		h = pose.Keypoint{X: hx, Y: hy, Confidence: conf}
		k = pose.Keypoint{X: x, Y: ky, Confidence: conf}
		a = pose.Keypoint{X: x, Y: ankleY, Confidence: conf}
		return
	}

	lh, lk, la := build(85, leftDeg)
	rh, rk, ra := build(115, rightDeg)
	lh.Name, lk.Name, la.Name = pose.LeftHip, pose.LeftKnee, pose.LeftAnkle
	rh.Name, rk.Name, ra.Name = pose.RightHip, pose.RightKnee, pose.RightAnkle

	return &pose.Frame{Keypoints: []pose.Keypoint{
		lh, rh, lk, rk, la, ra,
	}}
}

const groundY = 400.0

func newCalibratedJump(t *testing.T) *Jump {
	t.Helper()
	j := NewJump(DefaultThresholds().Jump)
	st := j.Step(legFrame(groundY, 165, 165, 0.9))
	if st.Dropped {
		t.Fatal("calibration frame dropped")
	}
	if !j.Calibration().Ready() {
		t.Fatal("not calibrated after usable standing frame")
	}
	return j
}

func TestJumpCalibrationFirstSightingWins(t *testing.T) {
	j := NewJump(DefaultThresholds().Jump)

	// Unusable ankles: stay calibrating, advise the user.
	st := j.Step(legFrame(groundY, 165, 165, 0.2))
	if !st.Dropped || st.Advisory == "" {
		t.Errorf("low-confidence calibration frame: dropped=%v advisory=%q", st.Dropped, st.Advisory)
	}
	if j.Calibration().Phase != Calibrating {
		t.Errorf("phase = %s, want calibrating", j.Calibration().Phase)
	}

	j.Step(legFrame(groundY, 165, 165, 0.9))
	if got := j.Calibration().BaselineY; got != groundY {
		t.Fatalf("baseline = %f, want %f", got, groundY)
	}

	// Later standing frames must not move the baseline.
	j.Step(legFrame(groundY+4, 165, 165, 0.9))
	if got := j.Calibration().BaselineY; got != groundY {
		t.Errorf("baseline moved to %f after calibration", got)
	}
}

func TestJumpNilFrameDuringCalibration(t *testing.T) {
	j := NewJump(DefaultThresholds().Jump)
	st := j.Step(nil)
	if !st.Dropped {
		t.Error("nil frame must be dropped")
	}
	if j.Calibration().Ready() {
		t.Error("nil frame must not calibrate")
	}
}

func TestJumpGoodRep(t *testing.T) {
	j := newCalibratedJump(t)

	// Airborne: 40px of lift with extended knees.
	j.Step(legFrame(groundY-40, 165, 165, 0.9))
	if j.State() != StateAirborne {
		t.Fatalf("state = %s, want airborne", j.State())
	}

	// Peak of the arc.
	j.Step(legFrame(groundY-60, 170, 170, 0.9))

	// Soft-knee landing back near ground level.
	st := j.Step(legFrame(groundY-2, 140, 140, 0.9))
	if !st.RepCompleted {
		t.Fatal("expected rep completion on landing")
	}
	if len(st.Issues) != 0 {
		t.Errorf("issues = %v, want none", st.Issues)
	}
	if st.PeakHeight != 60 {
		t.Errorf("peak = %f, want 60", st.PeakHeight)
	}
	if j.State() != StateGrounded {
		t.Errorf("state = %s, want grounded", j.State())
	}
}

func TestJumpWalkingGuard(t *testing.T) {
	j := newCalibratedJump(t)

	// Enough lift but bent knees: a step up, not a jump.
	j.Step(legFrame(groundY-35, 140, 140, 0.9))
	if j.State() != StateGrounded {
		t.Errorf("bent-knee lift: state = %s, want grounded", j.State())
	}

	// Extended knees but too little lift: a heel raise.
	j.Step(legFrame(groundY-15, 170, 170, 0.9))
	if j.State() != StateGrounded {
		t.Errorf("small lift: state = %s, want grounded", j.State())
	}
}

func TestJumpStiffLanding(t *testing.T) {
	j := newCalibratedJump(t)

	j.Step(legFrame(groundY-40, 165, 165, 0.9))
	st := j.Step(legFrame(groundY-2, 175, 175, 0.9))
	if !st.RepCompleted {
		t.Fatal("expected rep completion")
	}
	if len(st.Issues) != 1 || st.Issues[0] != IssueStiffLanding {
		t.Errorf("issues = %v, want [%s]", st.Issues, IssueStiffLanding)
	}
}

func TestJumpKneeAsymmetryOnLanding(t *testing.T) {
	j := newCalibratedJump(t)

	j.Step(legFrame(groundY-40, 165, 165, 0.9))
	// 30° left/right knee difference on touchdown.
	st := j.Step(legFrame(groundY-2, 130, 160, 0.9))
	if !st.RepCompleted {
		t.Fatal("expected rep completion")
	}
	found := false
	for _, issue := range st.Issues {
		if issue == IssueAsymmetry {
			found = true
		}
	}
	if !found {
		t.Errorf("issues = %v, want %s recorded", st.Issues, IssueAsymmetry)
	}
}

func TestJumpDroppedFrameHoldsAirborne(t *testing.T) {
	j := newCalibratedJump(t)

	j.Step(legFrame(groundY-40, 165, 165, 0.9))
	st := j.Step(legFrame(groundY-2, 140, 140, 0.2))
	if !st.Dropped {
		t.Error("expected dropped frame")
	}
	if st.RepCompleted {
		t.Error("rep completed on a low-confidence frame")
	}
	if j.State() != StateAirborne {
		t.Errorf("state = %s, want airborne (held)", j.State())
	}

	if st := j.Step(legFrame(groundY-2, 140, 140, 0.9)); !st.RepCompleted {
		t.Error("expected rep completion once confidence recovers")
	}
}

func TestDetectorFactory(t *testing.T) {
	for _, kind := range []Kind{KindPullUp, KindJump} {
		d, err := New(kind, DefaultThresholds())
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		if d.Kind() != kind {
			t.Errorf("Kind() = %s, want %s", d.Kind(), kind)
		}
	}

	if _, err := New("situp", DefaultThresholds()); err == nil {
		t.Error("expected error for unknown kind")
	}
}
