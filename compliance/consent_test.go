package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strongCondition(t *testing.T) Opinion {
	t.Helper()
	return mustCompliance(t, 0.9, 0.05, 0.05, 0.9)
}

func TestConsentValidity_AllSix(t *testing.T) {
	c := Conditions{
		FreelyGiven:     strongCondition(t),
		Specific:        strongCondition(t),
		Informed:        strongCondition(t),
		Unambiguous:     strongCondition(t),
		Demonstrable:    strongCondition(t),
		Distinguishable: strongCondition(t),
	}
	got, err := ConsentValidity(c)
	require.NoError(t, err)
	assertValidCompliance(t, got)

	// Six-way conjunction of lawfulness.
	expected := 1.0
	for i := 0; i < 6; i++ {
		expected *= 0.9
	}
	assert.InDelta(t, expected, got.Lawfulness(), 1e-12)
}

func TestConsentValidity_UnsetConditionRejected(t *testing.T) {
	c := Conditions{
		FreelyGiven:  strongCondition(t),
		Specific:     strongCondition(t),
		Informed:     strongCondition(t),
		Unambiguous:  strongCondition(t),
		Demonstrable: strongCondition(t),
		// Distinguishable left unset.
	}
	_, err := ConsentValidity(c)
	require.ErrorIs(t, err, ErrArgument)
	assert.Contains(t, err.Error(), "distinguishable")
}

func TestConsentValidity_OneWeakConditionDominates(t *testing.T) {
	weak := mustCompliance(t, 0.2, 0.6, 0.2, 0.3)
	c := Conditions{
		FreelyGiven:     strongCondition(t),
		Specific:        strongCondition(t),
		Informed:        strongCondition(t),
		Unambiguous:     strongCondition(t),
		Demonstrable:    strongCondition(t),
		Distinguishable: weak,
	}
	got, err := ConsentValidity(c)
	require.NoError(t, err)
	assert.Less(t, got.Lawfulness(), 0.2)
	assert.Greater(t, got.Violation(), 0.6)
}

func TestConsentValidityOf_ArityEnforced(t *testing.T) {
	_, err := ConsentValidityOf(strongCondition(t), strongCondition(t))
	assert.ErrorIs(t, err, ErrArgument)

	_, err = ConsentValidityOf()
	assert.ErrorIs(t, err, ErrArgument)
}

func TestConsentValidityOf_MatchesStructForm(t *testing.T) {
	ops := make([]Opinion, 6)
	for i := range ops {
		ops[i] = strongCondition(t)
	}
	positional, err := ConsentValidityOf(ops...)
	require.NoError(t, err)

	structured, err := ConsentValidity(Conditions{
		FreelyGiven:     ops[0],
		Specific:        ops[1],
		Informed:        ops[2],
		Unambiguous:     ops[3],
		Demonstrable:    ops[4],
		Distinguishable: ops[5],
	})
	require.NoError(t, err)
	assert.True(t, positional.Equal(structured.Opinion))
}
