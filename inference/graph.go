package inference

import (
	"fmt"

	"github.com/ashita-ai/shinrai/annotation"
)

// PropagateGraph propagates confidence along a property chain of a
// node: the confidence annotation at each step feeds Propagate. A step
// whose value carries no confidence contributes full confidence: the
// link exists but adds no uncertainty. A missing property fails with
// ErrLookup.
func PropagateGraph(n annotation.Node, propertyChain []string, method ChainMethod) (PropagationResult, error) {
	if len(propertyChain) == 0 {
		return PropagationResult{}, fmt.Errorf("%w: property chain must contain at least one property", ErrArgument)
	}

	scores := make([]float64, 0, len(propertyChain))
	trail := make([]string, 0, len(propertyChain))
	for _, prop := range propertyChain {
		value, ok := n.Get(prop)
		if !ok {
			return PropagationResult{}, fmt.Errorf("%w: property %q not found in node %q", ErrLookup, prop, n.ID)
		}
		score, ok := value.ConfidenceScore()
		if !ok {
			score = 1.0
		}
		scores = append(scores, score)
		trail = append(trail, prop)
	}

	result, err := Propagate(scores, method)
	if err != nil {
		return PropagationResult{}, err
	}
	result.Trail = trail
	return result, nil
}
