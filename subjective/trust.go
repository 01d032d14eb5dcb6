package subjective

// TrustDiscount propagates an opinion through a trust relationship
// (Jøsang 2016, §14.3). If A trusts B with opinion ω_AB and B holds
// ω_Bx about x, A's derived opinion about x is
//
//	b = b_AB·b_Bx
//	d = b_AB·d_Bx
//	u = d_AB + u_AB + b_AB·u_Bx
//
// Full trust (b_AB = 1) adopts B's opinion unchanged; zero trust
// yields a vacuous result. The base rate of the proposition is kept.
func TrustDiscount(trust, opinion Opinion) Opinion {
	bt := trust.Belief
	return newClamped(
		bt*opinion.Belief,
		bt*opinion.Disbelief,
		trust.Disbelief+trust.Uncertainty+bt*opinion.Uncertainty,
		opinion.BaseRate,
	)
}
