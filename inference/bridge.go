package inference

import (
	"fmt"

	"github.com/ashita-ai/shinrai/subjective"
)

// FusionKind selects the algebra operator used when lifting scalar
// scores to opinions.
type FusionKind string

const (
	// FusionCumulative treats sources as independent.
	FusionCumulative FusionKind = "cumulative"
	// FusionAveraging treats sources as correlated.
	FusionAveraging FusionKind = "averaging"
)

// CombineOpinions lifts scalar confidence scores to opinions, fuses
// them, and returns the full opinion: the uncertainty-preserving
// upgrade of Combine.
//
// With uncertainty 0 and cumulative fusion, each score p maps to
// (b=p, d=0, u=1−p): "not confident" reads as "uncertain", not
// "disbelieving", the natural interpretation for model outputs. With
// uncertainty > 0, scores map through subjective.FromConfidence.
func CombineOpinions(scores []float64, uncertainty float64, fusion FusionKind, baseRate float64) (subjective.Opinion, error) {
	if len(scores) == 0 {
		return subjective.Opinion{}, fmt.Errorf("%w: scores must contain at least one value", ErrArgument)
	}
	for _, s := range scores {
		if err := validateConfidence(s); err != nil {
			return subjective.Opinion{}, err
		}
	}

	opinions := make([]subjective.Opinion, len(scores))
	for i, p := range scores {
		var err error
		if fusion == FusionCumulative && uncertainty == 0 {
			opinions[i], err = subjective.New(p, 0, 1.0-p, baseRate)
		} else {
			opinions[i], err = subjective.FromConfidence(p, uncertainty, baseRate)
		}
		if err != nil {
			return subjective.Opinion{}, err
		}
	}

	switch fusion {
	case FusionCumulative:
		return subjective.CumulativeFuse(opinions...)
	case FusionAveraging:
		return subjective.AveragingFuse(opinions...)
	}
	return subjective.Opinion{}, fmt.Errorf("%w: unknown fusion kind %q", ErrArgument, fusion)
}

// PropagateOpinions propagates a confidence chain via iterated trust
// discount. With dogmatic trust (trustUncertainty 0) and base rate 0
// the projected probability equals the multiply chain exactly: the
// scalar method is the 1D shadow of this operator.
func PropagateOpinions(chain []float64, trustUncertainty, baseRate float64) (subjective.Opinion, error) {
	if len(chain) == 0 {
		return subjective.Opinion{}, fmt.Errorf("%w: chain must contain at least one score", ErrArgument)
	}
	for _, s := range chain {
		if err := validateConfidence(s); err != nil {
			return subjective.Opinion{}, err
		}
	}

	// The propagated assertion: absolute belief.
	current, err := subjective.New(1, 0, 0, baseRate)
	if err != nil {
		return subjective.Opinion{}, err
	}

	// Innermost link first.
	for i := len(chain) - 1; i >= 0; i-- {
		var trust subjective.Opinion
		if trustUncertainty == 0 {
			trust, err = subjective.New(chain[i], 1.0-chain[i], 0, subjective.DefaultBaseRate)
		} else {
			trust, err = subjective.FromConfidence(chain[i], trustUncertainty, subjective.DefaultBaseRate)
		}
		if err != nil {
			return subjective.Opinion{}, err
		}
		current = subjective.TrustDiscount(trust, current)
	}
	return current, nil
}

// ResolveWithOpinions resolves a conflict and enriches the winner with
// a full opinion for downstream uncertainty-aware processing.
func ResolveWithOpinions(assertions []Assertion, strategy Strategy) (Resolution, *subjective.Opinion, error) {
	resolution, err := ResolveConflict(assertions, strategy)
	if err != nil {
		return Resolution{}, nil, err
	}
	confidence := subjective.DefaultBaseRate
	if resolution.Winner.Confidence != nil {
		confidence = *resolution.Winner.Confidence
	}
	opinion, err := subjective.FromConfidence(confidence, 0, subjective.DefaultBaseRate)
	if err != nil {
		return Resolution{}, nil, err
	}
	return resolution, &opinion, nil
}
