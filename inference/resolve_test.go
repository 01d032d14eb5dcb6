package inference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/shinrai/annotation"
	"github.com/ashita-ai/shinrai/subjective"
)

func conf(c float64) *float64 { return &c }

func TestResolveConflict_Highest(t *testing.T) {
	assertions := []Assertion{
		{Value: "Engineer", Confidence: conf(0.9)},
		{Value: "Manager", Confidence: conf(0.85)},
	}
	got, err := ResolveConflict(assertions, StrategyHighest)
	require.NoError(t, err)
	assert.Equal(t, "Engineer", got.Winner.Value)
	assert.Equal(t, 0, got.WinnerIndex)
	assert.Contains(t, got.Reason, "0.9000")
}

func TestResolveConflict_HighestTiesByOrder(t *testing.T) {
	assertions := []Assertion{
		{Value: "first", Confidence: conf(0.8)},
		{Value: "second", Confidence: conf(0.8)},
	}
	got, err := ResolveConflict(assertions, StrategyHighest)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Winner.Value)
}

func TestResolveConflict_WeightedVote(t *testing.T) {
	// Two moderate agreeing sources outvote one strong lone source.
	assertions := []Assertion{
		{Value: "Alice", Confidence: conf(0.7)},
		{Value: "A. Smith", Confidence: conf(0.9)},
		{Value: "Alice", Confidence: conf(0.8)},
	}
	got, err := ResolveConflict(assertions, StrategyWeightedVote)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Winner.Value)
	// Group score = noisy-OR(0.7, 0.8) = 0.94, carried by the
	// strongest group member.
	require.NotNil(t, got.Winner.Confidence)
	assert.InDelta(t, 0.94, *got.Winner.Confidence, 1e-12)
	assert.Equal(t, 2, got.WinnerIndex)
}

func TestResolveConflict_WeightedVoteSingletonGroups(t *testing.T) {
	assertions := []Assertion{
		{Value: "x", Confidence: conf(0.6)},
		{Value: "y", Confidence: conf(0.7)},
	}
	got, err := ResolveConflict(assertions, StrategyWeightedVote)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Winner.Value)
	assert.InDelta(t, 0.7, *got.Winner.Confidence, 1e-12)
}

func TestResolveConflict_Recency(t *testing.T) {
	assertions := []Assertion{
		{Value: "old", Confidence: conf(0.99), ExtractedAt: "2024-01-01T00:00:00Z"},
		{Value: "new", Confidence: conf(0.5), ExtractedAt: "2025-06-01T00:00:00Z"},
	}
	got, err := ResolveConflict(assertions, StrategyRecency)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Winner.Value)
}

func TestResolveConflict_RecencyConfidenceTiebreak(t *testing.T) {
	assertions := []Assertion{
		{Value: "weak", Confidence: conf(0.4), ExtractedAt: "2025-06-01T00:00:00Z"},
		{Value: "strong", Confidence: conf(0.9), ExtractedAt: "2025-06-01T00:00:00Z"},
	}
	got, err := ResolveConflict(assertions, StrategyRecency)
	require.NoError(t, err)
	assert.Equal(t, "strong", got.Winner.Value)
}

func TestResolveConflict_Errors(t *testing.T) {
	_, err := ResolveConflict(nil, StrategyHighest)
	assert.ErrorIs(t, err, ErrArgument)

	_, err = ResolveConflict([]Assertion{{Value: "x"}}, StrategyHighest)
	assert.ErrorIs(t, err, ErrLookup)

	_, err = ResolveConflict([]Assertion{{Value: "x", Confidence: conf(0.5)}}, Strategy("coin-flip"))
	assert.ErrorIs(t, err, ErrArgument)
}

func TestPropagateGraph(t *testing.T) {
	n := annotation.NewNode("ex:doc")
	n.Set("sourceFact", annotation.Scalar("X").WithConfidence(0.9))
	n.Set("inferred", annotation.Scalar("Y").WithConfidence(0.8))

	got, err := PropagateGraph(n, []string{"sourceFact", "inferred"}, ChainMultiply)
	require.NoError(t, err)
	assert.InDelta(t, 0.72, got.Score, 1e-12)
	assert.Equal(t, []string{"sourceFact", "inferred"}, got.Trail)
}

func TestPropagateGraph_UnannotatedLinkIsFullConfidence(t *testing.T) {
	n := annotation.NewNode("ex:doc")
	n.Set("a", annotation.Scalar("X").WithConfidence(0.6))
	n.Set("b", annotation.Scalar("Y"))

	got, err := PropagateGraph(n, []string{"a", "b"}, ChainMultiply)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got.Score, 1e-12)
}

func TestPropagateGraph_MissingProperty(t *testing.T) {
	n := annotation.NewNode("ex:doc")
	n.Set("a", annotation.Scalar("X").WithConfidence(0.6))

	_, err := PropagateGraph(n, []string{"a", "missing"}, ChainMultiply)
	assert.ErrorIs(t, err, ErrLookup)
}

func TestCombineOpinions_CumulativeNaturalMapping(t *testing.T) {
	got, err := CombineOpinions([]float64{0.9, 0.7}, 0, FusionCumulative, subjective.DefaultBaseRate)
	require.NoError(t, err)
	assertOk := got.Belief > 0.9 // two agreeing sources reinforce
	assert.True(t, assertOk, "fused belief %v should exceed both inputs", got.Belief)
	assert.Less(t, got.Uncertainty, 0.1, "fusion reduces uncertainty below either source")
}

func TestCombineOpinions_Averaging(t *testing.T) {
	got, err := CombineOpinions([]float64{0.8, 0.8}, 0.2, FusionAveraging, subjective.DefaultBaseRate)
	require.NoError(t, err)
	expected, err := subjective.FromConfidence(0.8, 0.2, subjective.DefaultBaseRate)
	require.NoError(t, err)
	// Averaging fusion is idempotent on identical sources.
	assert.InDelta(t, expected.Belief, got.Belief, 1e-12)
	assert.InDelta(t, expected.Uncertainty, got.Uncertainty, 1e-12)
}

func TestPropagateOpinions_MultiplyEquivalence(t *testing.T) {
	chain := []float64{0.9, 0.8, 0.7}
	op, err := PropagateOpinions(chain, 0, 0)
	require.NoError(t, err)

	scalar, err := Propagate(chain, ChainMultiply)
	require.NoError(t, err)
	assert.InDelta(t, scalar.Score, op.Confidence(), 1e-12,
		"dogmatic trust discount reproduces the multiply chain")
}

func TestResolveWithOpinions(t *testing.T) {
	assertions := []Assertion{
		{Value: "Engineer", Confidence: conf(0.9)},
		{Value: "Manager", Confidence: conf(0.5)},
	}
	resolution, opinion, err := ResolveWithOpinions(assertions, StrategyHighest)
	require.NoError(t, err)
	require.NotNil(t, opinion)
	assert.Equal(t, "Engineer", resolution.Winner.Value)
	assert.InDelta(t, 0.9, opinion.P(), 1e-12)
}
