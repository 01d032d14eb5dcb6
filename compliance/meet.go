package compliance

import "fmt"

// Meet is the n-ary jurisdictional meet: the conjunction of compliance
// requirements across jurisdictions. Pairwise:
//
//	l = l₁·l₂
//	v = v₁ + v₂ − v₁·v₂
//	u = (1−v₁)(1−v₂) − l₁·l₂
//	a = a₁·a₂
//
// Lawfulness is conjunctive (all requirements must hold); violation is
// disjunctive (any violation suffices). The n-ary form is a left fold;
// this operator is associative, forming a bounded commutative monoid
// with identity (1, 0, 0, 1) and annihilator (0, 1, 0, 0).
//
// Independence assumption: jurisdictions are assessed independently.
// Under positive correlation the result underestimates violation
// (non-conservative).
func Meet(opinions ...Opinion) (Opinion, error) {
	if len(opinions) == 0 {
		return Opinion{}, fmt.Errorf("%w: jurisdictional meet requires at least one opinion", ErrArgument)
	}
	result := opinions[0]
	for _, op := range opinions[1:] {
		result = meetPair(result, op)
	}
	return result, nil
}

func meetPair(w1, w2 Opinion) Opinion {
	l1, v1 := w1.Lawfulness(), w1.Violation()
	l2, v2 := w2.Lawfulness(), w2.Violation()

	l := l1 * l2
	v := v1 + v2 - v1*v2
	// (1−v₁)(1−v₂) − l₁·l₂ expanded with 1 − vᵢ = lᵢ + uᵢ: a sum of
	// non-negative products, so the identity (1, 0, 0, 1) returns the
	// other operand's uncertainty exactly instead of a cancelled difference.
	u := l1*w2.Uncertainty + w1.Uncertainty*l2 + w1.Uncertainty*w2.Uncertainty
	a := w1.BaseRate * w2.BaseRate

	if u < 0 {
		u = 0
	}
	out, _ := New(l, v, u, a)
	return out
}

// Propagate derives the compliance of a dataset produced from source
// through one derivation step: the three-way meet of the source
// compliance ω_S, the derivation process trust τ, and the purpose
// compatibility π. Process lawfulness and purpose limitation are kept
// as separate operands because they are distinct obligations.
//
// Independence assumption as for Meet (non-conservative under positive
// correlation).
func Propagate(source, derivationTrust, purposeCompat Opinion) Opinion {
	out, _ := Meet(source, derivationTrust, purposeCompat)
	return out
}
