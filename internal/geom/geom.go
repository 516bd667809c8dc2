// Package geom provides the pure geometry used by the rep state machines:
// joint angles, vertical displacement, and left/right symmetry.
package geom

import (
	"math"

	"github.com/abelbrown/formcoach/internal/pose"
)

// JointAngle returns the angle in degrees at vertex b formed by the rays
// b->a and b->c. Computed via atan2 of the cross and dot products, which is
// numerically stable near 0 and 180 degrees. Result is in [0, 180] and is
// symmetric under swapping a and c. Degenerate input (a or c coincident
// with b) yields 0.
func JointAngle(a, b, c pose.Keypoint) float64 {
	bax := a.X - b.X
	bay := a.Y - b.Y
	bcx := c.X - b.X
	bcy := c.Y - b.Y

	cross := bax*bcy - bay*bcx
	dot := bax*bcx + bay*bcy

	rad := math.Atan2(math.Abs(cross), dot)
	return rad * 180 / math.Pi
}

// VerticalDisplacement returns how far a joint has risen above baseline,
// in image pixels. Image y decreases upward, so a positive result means
// the joint is above the baseline.
func VerticalDisplacement(currentY, baselineY float64) float64 {
	return baselineY - currentY
}

// SymmetryDelta returns the absolute difference between the left and right
// side angles. Used by scoring; never a primary transition condition.
func SymmetryDelta(left, right float64) float64 {
	return math.Abs(left - right)
}
