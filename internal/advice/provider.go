// Package advice produces the short coaching phrases emitted alongside rep
// events: an external phrase-generation service when reachable, canned
// phrases when not, all behind a deadline-based throttle.
package advice

import (
	"context"
)

// Request is the payload for one feedback phrase.
type Request struct {
	Exercise    string   `json:"exercise"`
	Personality string   `json:"personality"` // tone selector, e.g. "encouraging", "drill_sergeant"
	RepCount    int      `json:"rep_count"`
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
}

// PrimaryIssue returns the first issue, or "general" when the rep was
// clean. Keys the canned fallback table.
func (r Request) PrimaryIssue() string {
	if len(r.Issues) > 0 {
		return r.Issues[0]
	}
	return "general"
}

// Provider generates feedback text. Treated as unreliable: any error from
// Generate routes the caller to the canned fallback, never to the user.
type Provider interface {
	// Name returns the provider name for logging (e.g. "coach-api", "canned").
	Name() string

	// Available returns true if the provider is configured and ready.
	Available() bool

	// Generate returns a short feedback phrase for the request.
	Generate(ctx context.Context, req Request) (string, error)
}
