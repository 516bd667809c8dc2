// Package pose defines the skeletal keypoint data model consumed by the
// rep-detection engine. Keypoints are produced by an external pose-inference
// component; this package only names, validates and decodes them.
package pose

// Joint identifies a named anatomical keypoint. The vocabulary matches the
// 17-point output of the common browser pose models.
type Joint string

const (
	Nose          Joint = "nose"
	LeftEye       Joint = "left_eye"
	RightEye      Joint = "right_eye"
	LeftEar       Joint = "left_ear"
	RightEar      Joint = "right_ear"
	LeftShoulder  Joint = "left_shoulder"
	RightShoulder Joint = "right_shoulder"
	LeftElbow     Joint = "left_elbow"
	RightElbow    Joint = "right_elbow"
	LeftWrist     Joint = "left_wrist"
	RightWrist    Joint = "right_wrist"
	LeftHip       Joint = "left_hip"
	RightHip      Joint = "right_hip"
	LeftKnee      Joint = "left_knee"
	RightKnee     Joint = "right_knee"
	LeftAnkle     Joint = "left_ankle"
	RightAnkle    Joint = "right_ankle"
)

// Confidence thresholds. A keypoint below MinDetectionConfidence is
// "temporarily unusable" for state-machine decisions; MinRenderConfidence
// is the stricter bar for rendering-grade output such as the debug overlay.
const (
	MinDetectionConfidence = 0.4
	MinRenderConfidence    = 0.5
)

// Keypoint is one joint's 2D position for a single frame.
// Image coordinates: y decreases upward.
type Keypoint struct {
	Name       Joint   `json:"name"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Confidence float64 `json:"confidence"`
}

// Usable reports whether the keypoint clears the given confidence bar.
func (k Keypoint) Usable(min float64) bool {
	return k.Confidence >= min
}

// Frame is the set of keypoints detected at one instant. A nil *Frame is a
// valid input meaning "no pose detected" (occlusion), not an error.
type Frame struct {
	Keypoints []Keypoint `json:"keypoints"`
}

// Get returns the named keypoint, if present in the frame.
func (f *Frame) Get(j Joint) (Keypoint, bool) {
	if f == nil {
		return Keypoint{}, false
	}
	for _, k := range f.Keypoints {
		if k.Name == j {
			return k, true
		}
	}
	return Keypoint{}, false
}

// Usable reports whether the named joint is present with confidence >= min.
func (f *Frame) Usable(j Joint, min float64) bool {
	k, ok := f.Get(j)
	return ok && k.Usable(min)
}

// AllUsable reports whether every listed joint clears the confidence bar.
func (f *Frame) AllUsable(min float64, joints ...Joint) bool {
	for _, j := range joints {
		if !f.Usable(j, min) {
			return false
		}
	}
	return true
}
