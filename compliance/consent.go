package compliance

import "fmt"

// Conditions are the six conditions of valid consent. All six must be
// assessed; a zero-value (all-zero) opinion is treated as unset.
type Conditions struct {
	FreelyGiven     Opinion
	Specific        Opinion
	Informed        Opinion
	Unambiguous     Opinion
	Demonstrable    Opinion
	Distinguishable Opinion
}

// ConsentValidity composes the six consent conditions into a single
// validity opinion via the jurisdictional meet. Every condition must be
// set: partial assessments are rejected rather than silently treated
// as vacuous.
//
// Independence assumption: the six conditions may be positively
// correlated in practice, biasing the result toward optimism.
func ConsentValidity(c Conditions) (Opinion, error) {
	all := []Opinion{
		c.FreelyGiven, c.Specific, c.Informed,
		c.Unambiguous, c.Demonstrable, c.Distinguishable,
	}
	names := []string{
		"freelyGiven", "specific", "informed",
		"unambiguous", "demonstrable", "distinguishable",
	}
	for i, op := range all {
		if op == (Opinion{}) {
			return Opinion{}, fmt.Errorf("%w: consent validity requires all six conditions, %s is unset",
				ErrArgument, names[i])
		}
	}
	return Meet(all...)
}

// ConsentValidityOf is the positional form of ConsentValidity: exactly
// six condition opinions in the order freelyGiven, specific, informed,
// unambiguous, demonstrable, distinguishable.
func ConsentValidityOf(conditions ...Opinion) (Opinion, error) {
	if len(conditions) != 6 {
		return Opinion{}, fmt.Errorf("%w: consent validity requires exactly six condition opinions, got %d",
			ErrArgument, len(conditions))
	}
	return Meet(conditions...)
}
