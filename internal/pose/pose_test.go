package pose

import (
	"io"
	"strings"
	"testing"
)

func TestFrameGet(t *testing.T) {
	f := &Frame{Keypoints: []Keypoint{
		{Name: Nose, X: 100, Y: 50, Confidence: 0.9},
		{Name: LeftWrist, X: 80, Y: 180, Confidence: 0.3},
	}}

	kp, ok := f.Get(Nose)
	if !ok || kp.X != 100 {
		t.Errorf("Get(Nose) = %+v, %v", kp, ok)
	}
	if _, ok := f.Get(RightAnkle); ok {
		t.Error("Get for an absent joint should report false")
	}

	var nilFrame *Frame
	if _, ok := nilFrame.Get(Nose); ok {
		t.Error("Get on a nil frame should report false")
	}
}

func TestFrameUsable(t *testing.T) {
	f := &Frame{Keypoints: []Keypoint{
		{Name: Nose, Confidence: 0.9},
		{Name: LeftWrist, Confidence: 0.3},
	}}

	if !f.Usable(Nose, MinDetectionConfidence) {
		t.Error("high-confidence joint should be usable")
	}
	if f.Usable(LeftWrist, MinDetectionConfidence) {
		t.Error("low-confidence joint should not be usable")
	}
	if f.Usable(RightAnkle, MinDetectionConfidence) {
		t.Error("absent joint should not be usable")
	}

	if f.AllUsable(MinDetectionConfidence, Nose) != true {
		t.Error("AllUsable over usable joints should pass")
	}
	if f.AllUsable(MinDetectionConfidence, Nose, LeftWrist) {
		t.Error("AllUsable should fail when any joint misses the bar")
	}

	var nilFrame *Frame
	if nilFrame.AllUsable(MinDetectionConfidence, Nose) {
		t.Error("AllUsable on a nil frame should fail")
	}
}

func TestSourceReadsStream(t *testing.T) {
	stream := `{"keypoints":[{"name":"nose","x":100,"y":50,"confidence":0.9}]}

null
{"keypoints":[]}
`
	src := NewSource(strings.NewReader(stream))

	f, err := src.Next()
	if err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if f == nil || len(f.Keypoints) != 1 || f.Keypoints[0].Name != Nose {
		t.Errorf("frame 1 = %+v", f)
	}

	// Blank lines are skipped; "null" is a detected dropout, not an error.
	f, err = src.Next()
	if err != nil {
		t.Fatalf("frame 2: %v", err)
	}
	if f != nil {
		t.Errorf("frame 2 = %+v, want nil (no pose)", f)
	}

	f, err = src.Next()
	if err != nil {
		t.Fatalf("frame 3: %v", err)
	}
	if f == nil || len(f.Keypoints) != 0 {
		t.Errorf("frame 3 = %+v", f)
	}

	if _, err = src.Next(); err != io.EOF {
		t.Errorf("end of stream err = %v, want io.EOF", err)
	}
}

func TestSourceBadLine(t *testing.T) {
	src := NewSource(strings.NewReader("{not json}\n"))
	if _, err := src.Next(); err == nil {
		t.Error("expected decode error for malformed line")
	}
}
