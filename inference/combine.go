package inference

import "fmt"

// CombineMethod selects how independent assertions of the same fact
// are combined.
type CombineMethod string

const (
	// CombineAverage is the arithmetic mean.
	CombineAverage CombineMethod = "average"
	// CombineMax is optimistic: the highest score.
	CombineMax CombineMethod = "max"
	// CombineNoisyOr is 1 − ∏(1 − pᵢ): the probability at least one
	// independent source is correct. Commutative and monotone in the
	// number of sources.
	CombineNoisyOr CombineMethod = "noisy_or"
	// CombineDempsterShafer applies Dempster's rule of combination to
	// the BPAs m({True}) = pᵢ, m(Θ) = 1 − pᵢ; associative under a
	// left fold.
	CombineDempsterShafer CombineMethod = "dempster_shafer"
)

// Combine merges confidence scores from multiple sources asserting the
// same fact.
func Combine(scores []float64, method CombineMethod) (PropagationResult, error) {
	if len(scores) == 0 {
		return PropagationResult{}, fmt.Errorf("%w: scores must contain at least one value", ErrArgument)
	}
	for _, s := range scores {
		if err := validateConfidence(s); err != nil {
			return PropagationResult{}, err
		}
	}

	var score float64
	switch method {
	case CombineAverage:
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		score = sum / float64(len(scores))
	case CombineMax:
		score = scores[0]
		for _, s := range scores[1:] {
			if s > score {
				score = s
			}
		}
	case CombineNoisyOr:
		score = noisyOr(scores)
	case CombineDempsterShafer:
		score = dempsterShafer(scores)
	default:
		return PropagationResult{}, fmt.Errorf(
			"%w: unknown combination method %q, expected one of: average, max, noisy_or, dempster_shafer",
			ErrArgument, method)
	}

	return PropagationResult{
		Score:       score,
		Method:      string(method),
		InputScores: append([]float64{}, scores...),
	}, nil
}

func noisyOr(scores []float64) float64 {
	complement := 1.0
	for _, p := range scores {
		complement *= 1.0 - p
	}
	return 1.0 - complement
}

// dempsterShafer folds pairwise. With no disbelief mass in the BPAs
// the conflict term is zero and normalization is a formality, kept for
// numerical hygiene.
func dempsterShafer(scores []float64) float64 {
	belief := scores[0]
	uncertainty := 1.0 - scores[0]

	for _, p := range scores[1:] {
		b2, u2 := p, 1.0-p
		newBelief := belief*b2 + belief*u2 + uncertainty*b2
		newUncertainty := uncertainty * u2

		total := newBelief + newUncertainty
		if total == 0 {
			belief, uncertainty = 0, 1
			continue
		}
		belief = newBelief / total
		uncertainty = newUncertainty / total
	}
	return belief
}
