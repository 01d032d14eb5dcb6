package subjective

import (
	"fmt"
	"math"
)

// DecayFunc maps elapsed time and a half-life to a retention factor in
// [0, 1]. The factor scales belief and disbelief; the freed mass moves
// to uncertainty.
type DecayFunc func(elapsed, halfLife float64) float64

// ExponentialDecay is λ(t, τ) = 2^(−t/τ): half the evidence mass
// remains after each half-life.
func ExponentialDecay(elapsed, halfLife float64) float64 {
	return math.Exp2(-elapsed / halfLife)
}

// LinearDecay is λ(t, τ) = max(0, 1 − t/(2τ)): linear fade reaching
// zero at twice the half-life.
func LinearDecay(elapsed, halfLife float64) float64 {
	return math.Max(0, 1.0-elapsed/(2.0*halfLife))
}

// StepDecay is λ(t, τ) = 1 for t < τ, else 0: evidence is either fresh
// or completely stale.
func StepDecay(elapsed, halfLife float64) float64 {
	if elapsed < halfLife {
		return 1
	}
	return 0
}

// DecayOpinion ages an opinion by elapsed time:
//
//	b' = λ·b, d' = λ·d, u' = 1 − λ·(b + d)
//
// with λ = fn(elapsed, halfLife). The b:d ratio is preserved, the sum
// b' + d' + u' = 1 holds in closed form, uncertainty is monotone
// non-decreasing in elapsed, and the projected probability drifts
// toward the base rate. A factor of exactly 1 (for example zero elapsed
// time) returns o unchanged. A nil fn uses ExponentialDecay.
//
// The returned factor is validated on every call: a custom DecayFunc
// producing a value outside [0, 1] is rejected with ErrArgument.
func DecayOpinion(o Opinion, elapsed, halfLife float64, fn DecayFunc) (Opinion, error) {
	if elapsed < 0 || math.IsNaN(elapsed) {
		return Opinion{}, fmt.Errorf("%w: elapsed must be non-negative, got %v", ErrArgument, elapsed)
	}
	if halfLife <= 0 || math.IsNaN(halfLife) {
		return Opinion{}, fmt.Errorf("%w: halfLife must be positive, got %v", ErrArgument, halfLife)
	}
	if fn == nil {
		fn = ExponentialDecay
	}
	factor := fn(elapsed, halfLife)
	if math.IsNaN(factor) || factor < 0 || factor > 1 {
		return Opinion{}, fmt.Errorf("%w: decay factor must be in [0, 1], got %v", ErrArgument, factor)
	}
	if factor == 1 {
		return o, nil
	}
	return newClamped(
		factor*o.Belief,
		factor*o.Disbelief,
		1.0-factor*(o.Belief+o.Disbelief),
		o.BaseRate,
	), nil
}
