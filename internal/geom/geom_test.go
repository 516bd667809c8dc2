package geom

import (
	"math"
	"testing"

	"github.com/abelbrown/formcoach/internal/pose"
)

func pt(x, y float64) pose.Keypoint {
	return pose.Keypoint{X: x, Y: y, Confidence: 1}
}

func TestJointAngleRightAngle(t *testing.T) {
	// b at origin, a straight up, c straight right
	got := JointAngle(pt(0, -1), pt(0, 0), pt(1, 0))
	if math.Abs(got-90) > 1e-9 {
		t.Errorf("JointAngle = %f, want 90", got)
	}
}

func TestJointAngleCollinear(t *testing.T) {
	// a-b-c on a straight line: fully extended joint
	got := JointAngle(pt(0, -1), pt(0, 0), pt(0, 1))
	if math.Abs(got-180) > 1e-9 {
		t.Errorf("JointAngle = %f, want 180", got)
	}

	// a and c on the same side: fully flexed
	got = JointAngle(pt(0, -1), pt(0, 0), pt(0, -2))
	if math.Abs(got) > 1e-9 {
		t.Errorf("JointAngle = %f, want 0", got)
	}
}

func TestJointAngleRangeAndSymmetry(t *testing.T) {
	// Sweep a around the vertex; angle must stay in [0,180] and be
	// invariant under swapping the two rays.
	b := pt(3, 4)
	c := pt(7, 4)
	for deg := 0; deg < 360; deg += 7 {
		rad := float64(deg) * math.Pi / 180
		a := pt(3+2*math.Cos(rad), 4+2*math.Sin(rad))

		got := JointAngle(a, b, c)
		if got < 0 || got > 180 {
			t.Fatalf("JointAngle(%d°) = %f, out of [0,180]", deg, got)
		}

		swapped := JointAngle(c, b, a)
		if math.Abs(got-swapped) > 1e-9 {
			t.Fatalf("JointAngle not symmetric at %d°: %f vs %f", deg, got, swapped)
		}
	}
}

func TestJointAngleNearDegenerate(t *testing.T) {
	// Nearly collinear rays must not blow up numerically.
	got := JointAngle(pt(-1000, 0.0001), pt(0, 0), pt(1000, 0))
	if got < 179 || got > 180 {
		t.Errorf("near-180 angle = %f", got)
	}

	got = JointAngle(pt(1000, 0.0001), pt(0, 0), pt(1000, 0))
	if got > 1 {
		t.Errorf("near-0 angle = %f", got)
	}
}

func TestVerticalDisplacement(t *testing.T) {
	// Image y decreases upward: a joint above baseline is positive.
	if got := VerticalDisplacement(350, 400); got != 50 {
		t.Errorf("displacement = %f, want 50", got)
	}
	if got := VerticalDisplacement(420, 400); got != -20 {
		t.Errorf("displacement = %f, want -20", got)
	}
}

func TestSymmetryDelta(t *testing.T) {
	if got := SymmetryDelta(170, 140); got != 30 {
		t.Errorf("delta = %f, want 30", got)
	}
	if got := SymmetryDelta(140, 170); got != 30 {
		t.Errorf("delta = %f, want 30 (order independent)", got)
	}
}
