// Command posegen emits synthetic keypoint streams (JSONL, one frame per
// line) for demos and manual testing of the rep engine. The poses are
// geometrically plausible, not anatomically realistic: what matters is the
// joint angles and displacements the engine actually measures.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/abelbrown/formcoach/internal/pose"
)

func main() {
	exerciseFlag := flag.String("exercise", "pullup", "stream to generate: pullup or jump")
	reps := flag.Int("reps", 5, "number of reps to generate")
	dropouts := flag.Bool("dropouts", false, "inject occasional null frames (no pose detected)")
	flag.Parse()

	enc := json.NewEncoder(os.Stdout)

	var frames []*pose.Frame
	switch *exerciseFlag {
	case "pullup":
		frames = pullUpStream(*reps)
	case "jump":
		frames = jumpStream(*reps)
	default:
		log.Fatalf("unknown exercise %q", *exerciseFlag)
	}

	for i, f := range frames {
		if *dropouts && i%37 == 36 {
			fmt.Println("null")
			continue
		}
		if err := enc.Encode(f); err != nil {
			log.Fatalf("encode frame: %v", err)
		}
	}
}

// kp builds a high-confidence keypoint.
func kp(name pose.Joint, x, y float64) pose.Keypoint {
	return pose.Keypoint{Name: name, X: x, Y: y, Confidence: 0.9}
}

// armFrame builds a two-arm pose with the given elbow angle on both sides
// and the nose at noseY. Wrist position is derived by rotating the
// elbow-to-shoulder ray by the desired angle.
func armFrame(elbowDeg, noseY float64) *pose.Frame {
	rad := elbowDeg * math.Pi / 180
	build := func(shoulderX float64) (s, e, w pose.Keypoint) {
		sx, sy := shoulderX, 140.0
		ex, ey := shoulderX, 200.0
		// elbow->shoulder is (0,-60); rotate by elbowDeg for the wrist ray
		wx := ex + 60*math.Sin(rad)
		wy := ey - 60*math.Cos(rad)
		return kp("", sx, sy), kp("", ex, ey), kp("", wx, wy)
	}

	ls, le, lw := build(80)
	rs, re, rw := build(120)
	ls.Name, le.Name, lw.Name = pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist
	rs.Name, re.Name, rw.Name = pose.RightShoulder, pose.RightElbow, pose.RightWrist

	return &pose.Frame{Keypoints: []pose.Keypoint{
		kp(pose.Nose, 100, noseY),
		ls, rs, le, re, lw, rw,
	}}
}

// pullUpStream scripts: a few ready frames at near-full extension, then
// per rep a descent to 80° with the chin above the wrists and a return to
// 170°.
func pullUpStream(reps int) []*pose.Frame {
	var frames []*pose.Frame

	for i := 0; i < 5; i++ {
		frames = append(frames, armFrame(170, 260))
	}

	for r := 0; r < reps; r++ {
		for _, deg := range []float64{150, 120, 95, 80} {
			noseY := 260.0
			if deg < 90 {
				noseY = 150 // chin above the wrists at the top
			}
			frames = append(frames, armFrame(deg, noseY))
		}
		for _, deg := range []float64{110, 140, 170} {
			frames = append(frames, armFrame(deg, 260))
		}
	}

	return frames
}

// legFrame builds a two-leg pose with ankles lifted by disp pixels above
// the 400px baseline and the given knee angle on both sides.
func legFrame(disp, kneeDeg float64) *pose.Frame {
	rad := kneeDeg * math.Pi / 180
	build := func(hipX float64) (h, k, a pose.Keypoint) {
		ky := 350 - disp
		kx := hipX
		// knee->ankle is 50px; rotate from the knee->hip ray by kneeDeg
		ax := kx + 50*math.Sin(rad)
		ay := ky - 50*math.Cos(rad)
		return kp("", hipX, ky-50), kp("", kx, ky), kp("", ax, ay)
	}

	lh, lk, la := build(85)
	rh, rk, ra := build(115)
	lh.Name, lk.Name, la.Name = pose.LeftHip, pose.LeftKnee, pose.LeftAnkle
	rh.Name, rk.Name, ra.Name = pose.RightHip, pose.RightKnee, pose.RightAnkle

	return &pose.Frame{Keypoints: []pose.Keypoint{
		lh, rh, lk, rk, la, ra,
	}}
}

// jumpStream scripts: standing frames for calibration, then per rep a
// takeoff with extended knees, an airborne arc, and a soft-knee landing.
func jumpStream(reps int) []*pose.Frame {
	var frames []*pose.Frame

	for i := 0; i < 5; i++ {
		frames = append(frames, legFrame(0, 165))
	}

	for r := 0; r < reps; r++ {
		frames = append(frames, legFrame(10, 140)) // crouch
		for _, disp := range []float64{35, 50, 60, 50, 35, 15} {
			frames = append(frames, legFrame(disp, 170))
		}
		frames = append(frames, legFrame(5, 140)) // bent-knee landing
		frames = append(frames, legFrame(0, 160))
	}

	return frames
}
