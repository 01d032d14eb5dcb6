// Package inference provides scalar confidence propagation through
// inference chains, multi-source combination, and confidence-aware
// conflict resolution: the scalar counterpart of the opinion algebra,
// kept for adapters that only speak @confidence. The bridge functions
// lift scalar workflows onto the full algebra and back.
package inference

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrArgument reports empty input or an unknown method/strategy.
	ErrArgument = errors.New("inference: invalid argument")

	// ErrLookup reports a missing property or confidence annotation.
	ErrLookup = errors.New("inference: not found")
)

// ChainMethod selects how confidence propagates along a chain.
type ChainMethod string

const (
	// ChainMultiply is the straight product ∏cᵢ. Conservative, but
	// over-penalizes long chains.
	ChainMultiply ChainMethod = "multiply"
	// ChainBayesian treats each score as a likelihood ratio and sums
	// log-odds from a uniform prior.
	ChainBayesian ChainMethod = "bayesian"
	// ChainMin is the weakest link.
	ChainMin ChainMethod = "min"
	// ChainDampened is (∏cᵢ)^(1/√n), attenuating the product collapse.
	ChainDampened ChainMethod = "dampened"
)

// logOddsGuard keeps bayesian updates away from log(0) and log(∞).
const logOddsGuard = 1e-4

// PropagationResult is the outcome of a propagation or combination.
type PropagationResult struct {
	Score       float64
	Method      string
	InputScores []float64
	// Trail names the property path when the result came from a graph
	// walk.
	Trail []string
}

// Propagate combines the confidence of each step of an inference chain
// into the confidence of the conclusion.
func Propagate(chain []float64, method ChainMethod) (PropagationResult, error) {
	if len(chain) == 0 {
		return PropagationResult{}, fmt.Errorf("%w: chain must contain at least one confidence score", ErrArgument)
	}
	for _, s := range chain {
		if err := validateConfidence(s); err != nil {
			return PropagationResult{}, err
		}
	}

	var score float64
	switch method {
	case ChainMultiply:
		score = product(chain)
	case ChainBayesian:
		score = chainBayesian(chain)
	case ChainMin:
		score = chain[0]
		for _, s := range chain[1:] {
			score = math.Min(score, s)
		}
	case ChainDampened:
		score = chainDampened(chain)
	default:
		return PropagationResult{}, fmt.Errorf(
			"%w: unknown propagation method %q, expected one of: multiply, bayesian, min, dampened",
			ErrArgument, method)
	}

	return PropagationResult{
		Score:       score,
		Method:      string(method),
		InputScores: append([]float64{}, chain...),
	}, nil
}

func product(scores []float64) float64 {
	result := 1.0
	for _, s := range scores {
		result *= s
	}
	return result
}

// chainBayesian sums log-odds from a uniform prior, clamping each score
// into [guard, 1−guard] so certain scores stay finite.
func chainBayesian(scores []float64) float64 {
	logOdds := 0.0
	for _, c := range scores {
		safe := math.Max(logOddsGuard, math.Min(c, 1.0-logOddsGuard))
		logOdds += math.Log(safe / (1.0 - safe))
	}
	odds := math.Exp(logOdds)
	return odds / (1.0 + odds)
}

func chainDampened(scores []float64) float64 {
	p := product(scores)
	if p == 0 {
		return 0
	}
	return math.Pow(p, 1.0/math.Sqrt(float64(len(scores))))
}

func validateConfidence(c float64) error {
	if math.IsNaN(c) || c < 0 || c > 1 {
		return fmt.Errorf("%w: confidence must be in [0, 1], got %v", ErrArgument, c)
	}
	return nil
}
