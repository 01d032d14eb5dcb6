package subjective

// Deduce performs conditional reasoning under uncertainty (Jøsang 2016,
// Def. 12.6): the subjective-logic lift of the law of total
// probability. Given an opinion about antecedent x and conditional
// opinions about y given x and given ¬x, each component of ω_y is
//
//	c_y = b_x·c_{y|x} + d_x·c_{y|¬x} + u_x·(a_x·c_{y|x} + (1−a_x)·c_{y|¬x})
//
// and the base rate is a_y = a_x·P(y|x) + (1−a_x)·P(y|¬x).
// With all inputs dogmatic this reduces exactly to total probability.
func Deduce(x, yGivenX, yGivenNotX Opinion) Opinion {
	bx, dx, ux, ax := x.Belief, x.Disbelief, x.Uncertainty, x.BaseRate
	axBar := 1.0 - ax

	component := func(cx, cnx float64) float64 {
		return bx*cx + dx*cnx + ux*(ax*cx+axBar*cnx)
	}

	return newClamped(
		component(yGivenX.Belief, yGivenNotX.Belief),
		component(yGivenX.Disbelief, yGivenNotX.Disbelief),
		component(yGivenX.Uncertainty, yGivenNotX.Uncertainty),
		ax*yGivenX.P()+axBar*yGivenNotX.P(),
	)
}
