package inference

import (
	"fmt"

	"github.com/ashita-ai/shinrai/annotation"
)

// Strategy selects how conflicting assertions are resolved.
type Strategy string

const (
	// StrategyHighest picks the assertion with the highest confidence,
	// ties broken by input order.
	StrategyHighest Strategy = "highest"
	// StrategyWeightedVote groups assertions by value, combines each
	// group via noisy-OR, and picks the strongest group's best
	// representative carrying the group score.
	StrategyWeightedVote Strategy = "weighted_vote"
	// StrategyRecency prefers the most recently extracted assertion,
	// with confidence as tiebreaker.
	StrategyRecency Strategy = "recency"
)

// Assertion is one candidate statement of a property value.
type Assertion struct {
	Value       any
	Confidence  *float64
	ExtractedAt string
	Source      string
}

// Resolution is the auditable outcome of conflict resolution.
type Resolution struct {
	Winner      Assertion
	WinnerIndex int
	Strategy    Strategy
	Candidates  []Assertion
	Scores      []float64
	Reason      string
}

// ResolveConflict selects a winner among conflicting assertions. Every
// assertion must carry a confidence; recency additionally uses
// ExtractedAt, treating a missing timestamp as oldest.
func ResolveConflict(assertions []Assertion, strategy Strategy) (Resolution, error) {
	if len(assertions) == 0 {
		return Resolution{}, fmt.Errorf("%w: assertions must be non-empty", ErrArgument)
	}

	scores := make([]float64, len(assertions))
	for i, a := range assertions {
		if a.Confidence == nil {
			return Resolution{}, fmt.Errorf("%w: assertion %d (%v) is missing a confidence", ErrLookup, i, a.Value)
		}
		if err := validateConfidence(*a.Confidence); err != nil {
			return Resolution{}, err
		}
		scores[i] = *a.Confidence
	}

	switch strategy {
	case StrategyHighest:
		return resolveHighest(assertions, scores), nil
	case StrategyWeightedVote:
		return resolveWeightedVote(assertions, scores), nil
	case StrategyRecency:
		return resolveRecency(assertions, scores), nil
	}
	return Resolution{}, fmt.Errorf(
		"%w: unknown strategy %q, expected one of: highest, weighted_vote, recency",
		ErrArgument, strategy)
}

func resolveHighest(assertions []Assertion, scores []float64) Resolution {
	best := 0
	for i := 1; i < len(assertions); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return Resolution{
		Winner:      assertions[best],
		WinnerIndex: best,
		Strategy:    StrategyHighest,
		Candidates:  assertions,
		Scores:      scores,
		Reason:      fmt.Sprintf("highest confidence: %.4f", scores[best]),
	}
}

func resolveWeightedVote(assertions []Assertion, scores []float64) Resolution {
	// Group indices by bare value; values are JSON-shaped, so grouping
	// compares deeply rather than hashing.
	var groups [][]int
	for i, a := range assertions {
		placed := false
		for g, members := range groups {
			if annotation.BareEqual(assertions[members[0]].Value, a.Value) {
				groups[g] = append(members, i)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []int{i})
		}
	}

	bestGroup, bestCombined := 0, -1.0
	for g, members := range groups {
		groupScores := make([]float64, len(members))
		for i, idx := range members {
			groupScores[i] = scores[idx]
		}
		combined := groupScores[0]
		if len(groupScores) > 1 {
			combined = noisyOr(groupScores)
		}
		if combined > bestCombined {
			bestGroup, bestCombined = g, combined
		}
	}

	// The winning group's strongest individual represents it, carrying
	// the combined score.
	members := groups[bestGroup]
	bestIdx := members[0]
	for _, idx := range members[1:] {
		if scores[idx] > scores[bestIdx] {
			bestIdx = idx
		}
	}
	winner := assertions[bestIdx]
	combined := bestCombined
	winner.Confidence = &combined

	return Resolution{
		Winner:      winner,
		WinnerIndex: bestIdx,
		Strategy:    StrategyWeightedVote,
		Candidates:  assertions,
		Scores:      scores,
		Reason: fmt.Sprintf("value %v supported by %d source(s) with combined noisy-OR confidence: %.4f",
			winner.Value, len(members), bestCombined),
	}
}

func resolveRecency(assertions []Assertion, scores []float64) Resolution {
	best := 0
	for i := 1; i < len(assertions); i++ {
		switch {
		case assertions[i].ExtractedAt > assertions[best].ExtractedAt:
			best = i
		case assertions[i].ExtractedAt == assertions[best].ExtractedAt && scores[i] > scores[best]:
			best = i
		}
	}
	extractedAt := assertions[best].ExtractedAt
	if extractedAt == "" {
		extractedAt = "N/A"
	}
	return Resolution{
		Winner:      assertions[best],
		WinnerIndex: best,
		Strategy:    StrategyRecency,
		Candidates:  assertions,
		Scores:      scores,
		Reason: fmt.Sprintf("most recent assertion (extractedAt=%s) with confidence %.4f",
			extractedAt, scores[best]),
	}
}
