package subjective

import "fmt"

// DefaultRobustThreshold is the discord score above which RobustFuse
// considers a source adversarial.
const DefaultRobustThreshold = 0.5

// RobustOption configures RobustFuse.
type RobustOption func(*robustOptions)

type robustOptions struct {
	threshold   float64
	maxRemovals int // -1 means ⌊n/2⌋
}

// WithThreshold overrides the discord threshold (default
// DefaultRobustThreshold). Must be in [0, 1].
func WithThreshold(threshold float64) RobustOption {
	return func(o *robustOptions) { o.threshold = threshold }
}

// WithMaxRemovals caps how many sources may be discarded. The default
// is ⌊n/2⌋, so a majority is never removed.
func WithMaxRemovals(n int) RobustOption {
	return func(o *robustOptions) { o.maxRemovals = n }
}

// RobustFuse is a byzantine-resistant cumulative fusion. It iteratively
// removes the source with the highest mean pairwise conflict against
// the remaining sources ("discord score") while that score exceeds the
// threshold and the removal budget allows, then cumulative-fuses the
// survivors.
//
// The returned indices refer to positions in the original slice, in
// removal order. With n ≤ 2 nothing is ever removed.
func RobustFuse(opinions []Opinion, opts ...RobustOption) (Opinion, []int, error) {
	if len(opinions) == 0 {
		return Opinion{}, nil, fmt.Errorf("%w: robust fusion requires at least one opinion", ErrArgument)
	}

	options := robustOptions{threshold: DefaultRobustThreshold, maxRemovals: -1}
	for _, opt := range opts {
		opt(&options)
	}
	if options.threshold < 0 || options.threshold > 1 {
		return Opinion{}, nil, fmt.Errorf("%w: threshold must be in [0, 1], got %v", ErrArgument, options.threshold)
	}
	maxRemovals := options.maxRemovals
	if maxRemovals < 0 {
		maxRemovals = len(opinions) / 2
	}

	// survivors maps current working set back to original positions.
	survivors := make([]int, len(opinions))
	for i := range survivors {
		survivors[i] = i
	}
	removed := []int{}

	for len(survivors) > 2 && len(removed) < maxRemovals {
		worst, score := highestDiscord(opinions, survivors)
		if score <= options.threshold {
			break
		}
		removed = append(removed, survivors[worst])
		survivors = append(survivors[:worst], survivors[worst+1:]...)
	}

	kept := make([]Opinion, len(survivors))
	for i, idx := range survivors {
		kept[i] = opinions[idx]
	}
	fused, err := CumulativeFuse(kept...)
	if err != nil {
		return Opinion{}, nil, err
	}
	return fused, removed, nil
}

// highestDiscord returns the position (within survivors) and discord
// score of the source most in conflict with the rest.
func highestDiscord(opinions []Opinion, survivors []int) (int, float64) {
	worst, worstScore := 0, -1.0
	for i, oi := range survivors {
		total := 0.0
		for j, oj := range survivors {
			if i == j {
				continue
			}
			total += PairwiseConflict(opinions[oi], opinions[oj])
		}
		score := total / float64(len(survivors)-1)
		if score > worstScore {
			worst, worstScore = i, score
		}
	}
	return worst, worstScore
}
