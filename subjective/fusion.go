package subjective

import "fmt"

// CumulativeFuse combines independent evidence sources (Jøsang 2016,
// §12.3). Evidence adds up, so uncertainty never increases:
//
//	κ = u_A + u_B − u_A·u_B
//	b = (b_A·u_B + b_B·u_A) / κ
//	d = (d_A·u_B + d_B·u_A) / κ
//	u = u_A·u_B / κ
//
// When both operands are dogmatic the formula is indeterminate; the
// limit with equal relative dogmatism is the simple average. The fused
// base rate is the average of the operands' base rates.
//
// The n-ary form is a left fold; cumulative fusion is commutative and
// associative, with the vacuous opinion as identity.
func CumulativeFuse(opinions ...Opinion) (Opinion, error) {
	if len(opinions) == 0 {
		return Opinion{}, fmt.Errorf("%w: cumulative fusion requires at least one opinion", ErrArgument)
	}
	result := opinions[0]
	for _, op := range opinions[1:] {
		result = cumulativeFusePair(result, op)
	}
	return result, nil
}

func cumulativeFusePair(a, b Opinion) Opinion {
	uA, uB := a.Uncertainty, b.Uncertainty
	baseRate := (a.BaseRate + b.BaseRate) / 2.0

	// Dogmatic limit: equal weight γ_A = γ_B = ½.
	if uA == 0 && uB == 0 {
		return newClamped(
			(a.Belief+b.Belief)/2.0,
			(a.Disbelief+b.Disbelief)/2.0,
			0,
			baseRate,
		)
	}

	kappa := uA + uB - uA*uB // > 0 when at least one u > 0
	return newClamped(
		(a.Belief*uB+b.Belief*uA)/kappa,
		(a.Disbelief*uB+b.Disbelief*uA)/kappa,
		uA*uB/kappa,
		baseRate,
	)
}

// AveragingFuse combines dependent or correlated sources (Jøsang 2016,
// §12.5), avoiding the double-counting that cumulative fusion would
// introduce. It is commutative and idempotent but NOT associative for
// n ≥ 3, so the n-ary case uses the simultaneous formula:
//
//	U_i = ∏_{j≠i} u_j
//	κ   = Σ U_i
//	b   = Σ b_i·U_i / κ
//	d   = Σ d_i·U_i / κ
//	u   = n·∏ u_i / κ
//
// κ = 0 occurs when two or more opinions are dogmatic; the limit is the
// simple average over the dogmatic subset (dogmatic sources have
// unbounded relative evidence weight, so the rest vanish).
// n = 2 keeps the pairwise closed form, which agrees with the n-ary
// limit on dogmatic input.
func AveragingFuse(opinions ...Opinion) (Opinion, error) {
	switch len(opinions) {
	case 0:
		return Opinion{}, fmt.Errorf("%w: averaging fusion requires at least one opinion", ErrArgument)
	case 1:
		return opinions[0], nil
	case 2:
		return averagingFusePair(opinions[0], opinions[1]), nil
	}
	return averagingFuseNary(opinions), nil
}

func averagingFusePair(a, b Opinion) Opinion {
	uA, uB := a.Uncertainty, b.Uncertainty
	baseRate := (a.BaseRate + b.BaseRate) / 2.0

	kappa := uA + uB
	if kappa == 0 {
		return newClamped(
			(a.Belief+b.Belief)/2.0,
			(a.Disbelief+b.Disbelief)/2.0,
			0,
			baseRate,
		)
	}
	return newClamped(
		(a.Belief*uB+b.Belief*uA)/kappa,
		(a.Disbelief*uB+b.Disbelief*uA)/kappa,
		2.0*uA*uB/kappa,
		baseRate,
	)
}

func averagingFuseNary(opinions []Opinion) Opinion {
	n := len(opinions)

	fullProduct := 1.0
	for _, op := range opinions {
		fullProduct *= op.Uncertainty
	}

	// U_i = ∏_{j≠i} u_j. Dividing fullProduct by u_i is unsafe when
	// u_i = 0, so that case recomputes the partial product directly.
	capitalU := make([]float64, n)
	kappa := 0.0
	for i, op := range opinions {
		if op.Uncertainty != 0 {
			capitalU[i] = fullProduct / op.Uncertainty
		} else {
			product := 1.0
			for j, other := range opinions {
				if j != i {
					product *= other.Uncertainty
				}
			}
			capitalU[i] = product
		}
		kappa += capitalU[i]
	}

	baseRate := 0.0
	for _, op := range opinions {
		baseRate += op.BaseRate
	}
	baseRate /= float64(n)

	if kappa == 0 {
		// κ = 0 requires at least two dogmatic opinions. Their relative
		// evidence weight diverges, so the limit averages the dogmatic
		// subset only.
		var b, d float64
		count := 0
		for _, op := range opinions {
			if op.Uncertainty == 0 {
				b += op.Belief
				d += op.Disbelief
				count++
			}
		}
		if count == 0 {
			for _, op := range opinions {
				b += op.Belief
				d += op.Disbelief
			}
			count = n
		}
		return newClamped(b/float64(count), d/float64(count), 0, baseRate)
	}

	var b, d float64
	for i, op := range opinions {
		b += op.Belief * capitalU[i]
		d += op.Disbelief * capitalU[i]
	}
	return newClamped(b/kappa, d/kappa, float64(n)*fullProduct/kappa, baseRate)
}
