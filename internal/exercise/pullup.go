package exercise

import (
	"github.com/abelbrown/formcoach/internal/geom"
	"github.com/abelbrown/formcoach/internal/pose"
)

// pullUpJoints are required for every pull-up transition. If any drops
// below detection confidence the frame is dropped and state holds.
var pullUpJoints = []pose.Joint{
	pose.LeftShoulder, pose.RightShoulder,
	pose.LeftElbow, pose.RightElbow,
	pose.LeftWrist, pose.RightWrist,
}

const pullUpAdvisory = "hang from the bar with your arms fully extended to start"

// PullUp detects pull-up reps from elbow angles.
//
// Down -> Up when both elbows flex below the flexed threshold; at that
// moment the chin must be above both wrists or partial top range of motion
// is recorded. Up -> Down when both elbows open past the completion
// threshold, which completes the rep; an elbow still short of full
// extension at that frame records partial bottom range of motion. Elbow
// asymmetry is checked at both transitions.
//
// There is no stored baseline: readiness is inferred per frame from both
// elbows exceeding the ready angle (near-full extension) and latched.
type PullUp struct {
	t       PullUpThresholds
	state   RepState
	ready   bool
	pending []Issue
}

// NewPullUp creates a pull-up detector in the Down state, not yet ready.
func NewPullUp(t PullUpThresholds) *PullUp {
	return &PullUp{t: t, state: StateDown}
}

func (p *PullUp) Kind() Kind     { return KindPullUp }
func (p *PullUp) State() RepState { return p.state }

// Calibration reports the readiness gate as a calibration phase so the
// controller treats all exercises uniformly.
func (p *PullUp) Calibration() Calibration {
	if p.ready {
		return Calibration{Phase: Calibrated}
	}
	return Calibration{Phase: Calibrating}
}

// Step feeds one frame to the state machine.
func (p *PullUp) Step(f *pose.Frame) Step {
	if !f.AllUsable(pose.MinDetectionConfidence, pullUpJoints...) {
		st := Step{Dropped: true}
		if !p.ready {
			st.Advisory = pullUpAdvisory
		}
		return st
	}

	left, right := p.elbowAngles(f)
	st := Step{Angles: map[pose.Joint]float64{
		pose.LeftElbow:  left,
		pose.RightElbow: right,
	}}

	if !p.ready {
		if left >= p.t.ReadyAngle && right >= p.t.ReadyAngle {
			p.ready = true
		} else {
			st.Advisory = pullUpAdvisory
			return st
		}
	}

	switch p.state {
	case StateDown:
		if left < p.t.FlexedAngle && right < p.t.FlexedAngle {
			p.state = StateUp
			if !p.chinAboveWrists(f) {
				p.pending = addIssue(p.pending, IssuePartialTop)
			}
			p.checkAsymmetry(left, right)
		}

	case StateUp:
		if left > p.t.CompleteAngle && right > p.t.CompleteAngle {
			p.state = StateDown
			if left < p.t.ExtendedAngle || right < p.t.ExtendedAngle {
				p.pending = addIssue(p.pending, IssuePartialBottom)
			}
			p.checkAsymmetry(left, right)

			st.RepCompleted = true
			st.Issues = p.pending
			p.pending = nil
		}
	}

	return st
}

func (p *PullUp) checkAsymmetry(left, right float64) {
	if geom.SymmetryDelta(left, right) > p.t.AsymmetryDelta {
		p.pending = addIssue(p.pending, IssueAsymmetry)
	}
}

// elbowAngles returns the shoulder-elbow-wrist angle for each arm.
func (p *PullUp) elbowAngles(f *pose.Frame) (left, right float64) {
	ls, _ := f.Get(pose.LeftShoulder)
	le, _ := f.Get(pose.LeftElbow)
	lw, _ := f.Get(pose.LeftWrist)
	rs, _ := f.Get(pose.RightShoulder)
	re, _ := f.Get(pose.RightElbow)
	rw, _ := f.Get(pose.RightWrist)
	return geom.JointAngle(ls, le, lw), geom.JointAngle(rs, re, rw)
}

// chinAboveWrists checks the top of the range of motion: the nose must sit
// above both wrists (smaller image y). If the nose is not usable this
// frame the check passes; a missing joint never manufactures an issue.
func (p *PullUp) chinAboveWrists(f *pose.Frame) bool {
	nose, ok := f.Get(pose.Nose)
	if !ok || !nose.Usable(pose.MinDetectionConfidence) {
		return true
	}
	lw, _ := f.Get(pose.LeftWrist)
	rw, _ := f.Get(pose.RightWrist)
	return nose.Y < lw.Y && nose.Y < rw.Y
}
