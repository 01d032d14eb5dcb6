package compliance

import (
	"fmt"

	"github.com/ashita-ai/shinrai/subjective"
)

// WithdrawalOverride models consent withdrawal as proposition
// replacement: before the withdrawal time the compliance-relevant
// question is "was valid consent given?"; from the withdrawal time on
// it becomes "has processing ceased?". No fusion operator applies:
// the two opinions are about different propositions, so the assessment
// simply switches at t_w. Deliberately non-commutative with the other
// operators: event order matters.
func WithdrawalOverride(consent, withdrawal Opinion, assessmentTime, withdrawalTime float64) Opinion {
	if assessmentTime < withdrawalTime {
		return consent
	}
	return withdrawal
}

// ExpiryTrigger converts lawfulness to violation once a deadline has
// passed. Post-trigger, with residual factor γ:
//
//	l' = γ·l
//	v' = v + (1−γ)·l
//	u' = u
//
// The transfer goes to violation, not uncertainty: an expired deadline
// is a known fact, not missing evidence. γ = 0 is hard expiry; γ = 1 is
// no immediate effect. Pre-trigger the opinion is unchanged.
func ExpiryTrigger(o Opinion, assessmentTime, triggerTime, residualFactor float64) (Opinion, error) {
	if residualFactor < 0 || residualFactor > 1 {
		return Opinion{}, fmt.Errorf("%w: residual factor must be in [0, 1], got %v", ErrArgument, residualFactor)
	}
	if assessmentTime < triggerTime {
		return o, nil
	}
	l := o.Lawfulness()
	return New(
		residualFactor*l,
		o.Violation()+(1.0-residualFactor)*l,
		o.Uncertainty,
		o.BaseRate,
	)
}

// ReviewDueTrigger accelerates decay toward vacuity once a mandatory
// review has been missed. Unlike expiry the mass moves to uncertainty,
// not violation: a missed review means current evidence is lacking, not
// that the situation is known to be non-compliant. Pre-trigger the
// opinion is unchanged; post-trigger it decays exponentially with the
// accelerated half-life over the time since the trigger.
func ReviewDueTrigger(o Opinion, assessmentTime, triggerTime, acceleratedHalfLife float64) (Opinion, error) {
	if assessmentTime < triggerTime {
		return o, nil
	}
	decayed, err := subjective.DecayOpinion(o.Opinion, assessmentTime-triggerTime, acceleratedHalfLife, nil)
	if err != nil {
		return Opinion{}, err
	}
	return From(decayed), nil
}

// RegulatoryChangeTrigger replaces the compliance opinion with a fresh
// assessment under a changed legal framework, with the same
// proposition-replacement semantics as WithdrawalOverride. Trigger
// ordering is non-commutative by design.
func RegulatoryChangeTrigger(o Opinion, assessmentTime, triggerTime float64, newOpinion Opinion) Opinion {
	if assessmentTime < triggerTime {
		return o
	}
	return newOpinion
}
