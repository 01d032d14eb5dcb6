package subjective

import "math"

// PairwiseConflict is Jøsang's binary conflict measure
// con(A, B) = b_A·d_B + d_A·b_B. It is symmetric, lies in [0, 1], is 0
// when either opinion is vacuous, and reaches 1 only between a full
// believer and a full disbeliever.
func PairwiseConflict(a, b Opinion) float64 {
	return a.Belief*b.Disbelief + a.Disbelief*b.Belief
}

// ConflictMetric measures the internal conflict of a single opinion:
// 1 − |b − d| − u. It is 0 at dogmatism toward either pole and at
// vacuity, and 1 only at the maximally balanced opinion b = d = ½.
// Unlike uncertainty, it distinguishes "no evidence" from "equal
// opposing evidence".
func ConflictMetric(o Opinion) float64 {
	return clamp01(1.0 - math.Abs(o.Belief-o.Disbelief) - o.Uncertainty)
}
