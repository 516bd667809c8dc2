package exercise

import (
	"github.com/abelbrown/formcoach/internal/geom"
	"github.com/abelbrown/formcoach/internal/pose"
)

// jumpCalibrationJoints must be usable to establish ground level.
var jumpCalibrationJoints = []pose.Joint{pose.LeftAnkle, pose.RightAnkle}

// jumpJoints are required for every jump transition.
var jumpJoints = []pose.Joint{
	pose.LeftHip, pose.RightHip,
	pose.LeftKnee, pose.RightKnee,
	pose.LeftAnkle, pose.RightAnkle,
}

const jumpAdvisory = "stand fully in view so ground level can be calibrated"

// Jump detects jump reps from ankle displacement gated by knee extension.
//
// Ground level is calibrated from the first frame with both ankles usable
// (first sighting wins; no averaging window). Grounded -> Airborne requires
// displacement above the minimum height AND knees past the extension
// angle — the conjunction keeps ordinary walking and weight shifts from
// firing. Airborne -> Grounded when displacement returns within the landing
// tolerance, completing the rep; nearly straight knees on that frame record
// a stiff landing.
type Jump struct {
	t       JumpThresholds
	state   RepState
	calib   Calibration
	peak    float64
	pending []Issue
}

// NewJump creates a jump detector in the Grounded state, uncalibrated.
func NewJump(t JumpThresholds) *Jump {
	return &Jump{t: t, state: StateGrounded}
}

func (j *Jump) Kind() Kind               { return KindJump }
func (j *Jump) State() RepState          { return j.state }
func (j *Jump) Calibration() Calibration { return j.calib }

// Step feeds one frame to the state machine. No transition out of
// Grounded is considered until calibration completes.
func (j *Jump) Step(f *pose.Frame) Step {
	if !j.calib.Ready() {
		return j.calibrate(f)
	}

	if !f.AllUsable(pose.MinDetectionConfidence, jumpJoints...) {
		return Step{Dropped: true}
	}

	disp := geom.VerticalDisplacement(j.meanAnkleY(f), j.calib.BaselineY)
	leftKnee, rightKnee := j.kneeAngles(f)
	knee := (leftKnee + rightKnee) / 2

	st := Step{Angles: map[pose.Joint]float64{
		pose.LeftKnee:  leftKnee,
		pose.RightKnee: rightKnee,
	}}

	switch j.state {
	case StateGrounded:
		if disp > j.t.MinHeight && knee > j.t.KneeExtensionAngle {
			j.state = StateAirborne
			j.peak = disp
		}

	case StateAirborne:
		if disp > j.peak {
			j.peak = disp
		}
		if disp < j.t.LandingTolerance {
			j.state = StateGrounded
			if knee >= j.t.StiffKneeAngle {
				j.pending = addIssue(j.pending, IssueStiffLanding)
			}
			if geom.SymmetryDelta(leftKnee, rightKnee) > j.t.KneeAsymmetryDelta {
				j.pending = addIssue(j.pending, IssueAsymmetry)
			}

			st.RepCompleted = true
			st.Issues = j.pending
			st.PeakHeight = j.peak
			j.pending = nil
			j.peak = 0
		}
	}

	return st
}

// calibrate establishes ground level from the first usable sighting of
// both ankles. Frames that never become usable just keep the detector in
// the calibrating phase; that is a state, not an error.
func (j *Jump) calibrate(f *pose.Frame) Step {
	j.calib.Phase = Calibrating
	j.calib.FramesSeen++

	if !f.AllUsable(pose.MinDetectionConfidence, jumpCalibrationJoints...) {
		return Step{Dropped: true, Advisory: jumpAdvisory}
	}

	j.calib.BaselineY = j.meanAnkleY(f)
	j.calib.Phase = Calibrated
	return Step{}
}

func (j *Jump) meanAnkleY(f *pose.Frame) float64 {
	la, _ := f.Get(pose.LeftAnkle)
	ra, _ := f.Get(pose.RightAnkle)
	return (la.Y + ra.Y) / 2
}

// kneeAngles returns the hip-knee-ankle angle for each leg.
func (j *Jump) kneeAngles(f *pose.Frame) (left, right float64) {
	lh, _ := f.Get(pose.LeftHip)
	lk, _ := f.Get(pose.LeftKnee)
	la, _ := f.Get(pose.LeftAnkle)
	rh, _ := f.Get(pose.RightHip)
	rk, _ := f.Get(pose.RightKnee)
	ra, _ := f.Get(pose.RightAnkle)
	return geom.JointAngle(lh, lk, la), geom.JointAngle(rh, rk, ra)
}
