package advice

import (
	"context"
	"math/rand"
)

// cannedPhrases is the local fallback table, keyed by primary issue.
// "general" serves any rep whose issue has no entry of its own.
var cannedPhrases = map[string][]string{
	"asymmetry": {
		"Keep both sides moving together.",
		"One side is working harder than the other — even it out.",
		"Pull evenly with both arms.",
	},
	"partial_top_rom": {
		"Get your chin over the bar.",
		"A little higher at the top next time.",
		"Finish the pull — all the way up.",
	},
	"partial_bottom_rom": {
		"Let your arms fully extend at the bottom.",
		"Full hang between reps.",
		"Stretch it out at the bottom before the next pull.",
	},
	"stiff_landing": {
		"Bend your knees when you land.",
		"Soft landings — absorb it with your legs.",
		"Land like a cat, not a plank.",
	},
	"general": {
		"Nice rep, keep it going.",
		"Good form — stay consistent.",
		"That's it. Same again.",
		"Strong work.",
	},
}

// CannedProvider serves phrases from the local table. Always available;
// the terminal fallback when the network provider cannot deliver.
type CannedProvider struct {
	// rng allows deterministic selection in tests. Nil uses the global
	// math/rand source.
	rng *rand.Rand
}

// NewCannedProvider creates the local fallback provider.
func NewCannedProvider() *CannedProvider {
	return &CannedProvider{}
}

// NewCannedProviderWithRand creates a provider with a fixed random source.
func NewCannedProviderWithRand(rng *rand.Rand) *CannedProvider {
	return &CannedProvider{rng: rng}
}

// Name returns the provider identifier for logging.
func (p *CannedProvider) Name() string { return "canned" }

// Available always returns true.
func (p *CannedProvider) Available() bool { return true }

// Generate picks a phrase uniformly at random from the table entry for the
// request's primary issue, falling back to "general". Never fails.
func (p *CannedProvider) Generate(_ context.Context, req Request) (string, error) {
	return p.pick(req.PrimaryIssue()), nil
}

func (p *CannedProvider) pick(key string) string {
	phrases, ok := cannedPhrases[key]
	if !ok || len(phrases) == 0 {
		phrases = cannedPhrases["general"]
	}
	if p.rng != nil {
		return phrases[p.rng.Intn(len(phrases))]
	}
	return phrases[rand.Intn(len(phrases))]
}
