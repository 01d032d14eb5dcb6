package compliance

import "fmt"

// ErasureScope composes per-node erasure completeness opinions over an
// erasure scope into a single opinion via the jurisdictional meet:
// complete erasure requires every node in scope to be erased. The
// composite belief is the product of per-node beliefs, so completeness
// degrades exponentially with scope size, and a perfectly erased node
// (e = 1) contributes no degradation.
//
// Independence assumption: conservative, overestimating risk under
// positive correlation (the opposite bias to Meet on compliance).
func ErasureScope(perNode ...Opinion) (Opinion, error) {
	if len(perNode) == 0 {
		return Opinion{}, fmt.Errorf("%w: erasure scope requires at least one opinion", ErrArgument)
	}
	return Meet(perNode...)
}

// ResidualContamination is the disjunctive risk that personal data
// persists at a node given the erasure opinions of the node and its
// ancestors ω_i = (e_i, ē_i, u_i, a_i), where e_i is erasure evidence
// and ē_i persistence evidence:
//
//	r  = 1 − ∏(1 − ē_i)   contamination risk       → violation
//	r̄  = ∏ e_i            clean probability        → lawfulness
//	u  = ∏(1 − ē_i) − ∏ e_i                        → uncertainty
//
// r + r̄ + u = 1 with all components non-negative, and r is monotone
// non-decreasing as the ancestor set grows. Every ancestor contributes
// equally regardless of derivation distance. The base rate is the mean
// of the inputs. Conservative under positive correlation.
func ResidualContamination(ancestors ...Opinion) (Opinion, error) {
	if len(ancestors) == 0 {
		return Opinion{}, fmt.Errorf("%w: residual contamination requires at least one opinion", ErrArgument)
	}

	prodClean := 1.0 // ∏(1 − ē_i)
	prodErased := 1.0
	baseRate := 0.0
	for _, op := range ancestors {
		prodClean *= 1.0 - op.Violation()
		prodErased *= op.Lawfulness()
		baseRate += op.BaseRate
	}
	baseRate /= float64(len(ancestors))

	risk := 1.0 - prodClean
	uncertainty := prodClean - prodErased
	if risk < 0 {
		risk = 0
	}
	if uncertainty < 0 {
		uncertainty = 0
	}

	return New(prodErased, risk, uncertainty, baseRate)
}
