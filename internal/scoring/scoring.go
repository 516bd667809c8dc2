// Package scoring converts detected form issues into per-rep scores and
// maintains the bounded rolling average.
package scoring

import (
	"time"

	"github.com/abelbrown/formcoach/internal/exercise"
)

// Deductions are flat and non-stacking: each issue subtracts its listed
// amount once per rep.
var pullUpDeductions = map[exercise.Issue]int{
	exercise.IssueAsymmetry:     30,
	exercise.IssuePartialTop:    25,
	exercise.IssuePartialBottom: 25,
}

var jumpDeductions = map[exercise.Issue]int{
	exercise.IssueStiffLanding: 30,
	exercise.IssueAsymmetry:    20,
}

// Deduction returns the penalty for an issue under the given exercise's
// table. Issues missing from the table deduct nothing.
func Deduction(kind exercise.Kind, issue exercise.Issue) int {
	switch kind {
	case exercise.KindPullUp:
		return pullUpDeductions[issue]
	case exercise.KindJump:
		return jumpDeductions[issue]
	default:
		return 0
	}
}

// ScoreRep scores one completed rep: start at 100, subtract each issue's
// deduction, clamp to [0, 100].
func ScoreRep(kind exercise.Kind, issues []exercise.Issue) int {
	score := 100
	for _, issue := range issues {
		score -= Deduction(kind, issue)
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Record is one scored rep. Records live only in the rolling window; this
// package never persists them.
type Record struct {
	Time  time.Time
	Score int
}
