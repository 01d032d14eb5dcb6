// Package compliance reinterprets the subjective-logic opinion algebra
// for regulatory assessment: belief reads as lawfulness, disbelief as
// violation. It adds the operators that have no subjective-logic
// counterpart: jurisdictional meet, derivation-chain propagation,
// six-condition consent, withdrawal override, expiry / review-due /
// regulatory-change triggers, erasure scope, and residual
// contamination, together with an assessment lifecycle state machine.
//
// Each operator documents its independence assumption and the direction
// its result is biased when that assumption fails: meet, propagation,
// and consent underestimate violation under positive correlation
// (non-conservative), while erasure scope and residual contamination
// overestimate risk (conservative).
package compliance

import (
	"errors"
	"fmt"

	"github.com/ashita-ai/shinrai/subjective"
)

// ErrArgument reports an invalid argument to a compliance operator.
var ErrArgument = errors.New("compliance: invalid argument")

// Opinion is a compliance opinion ω = (l, v, u, a): structurally a
// subjective opinion whose belief mass is read as evidence of
// lawfulness and whose disbelief mass as evidence of violation.
//
// Every subjective-logic operator accepts the embedded base opinion;
// From lifts a base opinion into the compliance domain.
type Opinion struct {
	subjective.Opinion
}

// New validates and builds a compliance opinion from domain parameters.
func New(lawfulness, violation, uncertainty, baseRate float64) (Opinion, error) {
	base, err := subjective.New(lawfulness, violation, uncertainty, baseRate)
	if err != nil {
		return Opinion{}, err
	}
	return Opinion{base}, nil
}

// From lifts a base subjective opinion into the compliance domain.
func From(o subjective.Opinion) Opinion { return Opinion{o} }

// Vacuous is the no-evidence compliance opinion (0, 0, 1, baseRate),
// the epistemically correct default for an unassessed obligation.
func Vacuous(baseRate float64) Opinion {
	return Opinion{subjective.Vacuous(baseRate)}
}

// Lawfulness is the evidence of compliance (alias for belief).
func (o Opinion) Lawfulness() float64 { return o.Belief }

// Violation is the evidence of violation (alias for disbelief).
func (o Opinion) Violation() float64 { return o.Disbelief }

// String renders the opinion in compliance notation.
func (o Opinion) String() string {
	return fmt.Sprintf("ComplianceOpinion(l=%.4f, v=%.4f, u=%.4f, a=%.4f)",
		o.Lawfulness(), o.Violation(), o.Uncertainty, o.BaseRate)
}
