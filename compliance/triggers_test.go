package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashita-ai/shinrai/subjective"
)

func TestWithdrawalOverride_Boundary(t *testing.T) {
	consent := mustCompliance(t, 0.9, 0.05, 0.05, 0.9)
	withdrawal := mustCompliance(t, 0.3, 0.5, 0.2, 0.4)

	before := WithdrawalOverride(consent, withdrawal, 99, 100)
	assert.True(t, consent.Equal(before.Opinion))

	at := WithdrawalOverride(consent, withdrawal, 100, 100)
	assert.True(t, withdrawal.Equal(at.Opinion))

	after := WithdrawalOverride(consent, withdrawal, 200, 100)
	assert.True(t, withdrawal.Equal(after.Opinion))
}

func TestExpiryTrigger_PreTriggerUnchanged(t *testing.T) {
	o := mustCompliance(t, 0.8, 0.1, 0.1, 0.7)
	got, err := ExpiryTrigger(o, 50, 100, 0)
	require.NoError(t, err)
	assert.True(t, o.Equal(got.Opinion))
}

func TestExpiryTrigger_HardExpiry(t *testing.T) {
	// γ=0: l'=0, v'=v+l, u'=u.
	o := mustCompliance(t, 0.8, 0.1, 0.1, 0.7)
	got, err := ExpiryTrigger(o, 150, 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got.Lawfulness())
	assert.InDelta(t, 0.9, got.Violation(), 1e-12)
	assert.InDelta(t, 0.1, got.Uncertainty, 1e-12)
	assertValidCompliance(t, got)
}

func TestExpiryTrigger_Residual(t *testing.T) {
	o := mustCompliance(t, 0.6, 0.2, 0.2, 0.5)
	got, err := ExpiryTrigger(o, 150, 100, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.15, got.Lawfulness(), 1e-12)
	assert.InDelta(t, 0.2+0.75*0.6, got.Violation(), 1e-12)
	assert.InDelta(t, 0.2, got.Uncertainty, 1e-12, "expiry never moves mass to uncertainty")
}

func TestExpiryTrigger_FullResidualNoEffect(t *testing.T) {
	o := mustCompliance(t, 0.6, 0.2, 0.2, 0.5)
	got, err := ExpiryTrigger(o, 150, 100, 1)
	require.NoError(t, err)
	assert.True(t, o.Equal(got.Opinion))
}

func TestExpiryTrigger_RejectsBadResidual(t *testing.T) {
	o := mustCompliance(t, 0.6, 0.2, 0.2, 0.5)
	_, err := ExpiryTrigger(o, 150, 100, 1.5)
	assert.ErrorIs(t, err, ErrArgument)
}

func TestReviewDueTrigger_PreTriggerIdentity(t *testing.T) {
	o := mustCompliance(t, 0.7, 0.2, 0.1, 0.6)
	got, err := ReviewDueTrigger(o, 99, 100, 10)
	require.NoError(t, err)
	assert.True(t, o.Equal(got.Opinion))
}

func TestReviewDueTrigger_PostTriggerEqualsAcceleratedDecay(t *testing.T) {
	o := mustCompliance(t, 0.7, 0.2, 0.1, 0.6)
	got, err := ReviewDueTrigger(o, 120, 100, 10)
	require.NoError(t, err)

	expected, err := subjective.DecayOpinion(o.Opinion, 20, 10, nil)
	require.NoError(t, err)
	assert.True(t, expected.Equal(got.Opinion))
	assert.Greater(t, got.Uncertainty, o.Uncertainty, "missed review moves toward vacuity")
}

func TestReviewDueTrigger_RejectsBadHalfLife(t *testing.T) {
	o := mustCompliance(t, 0.7, 0.2, 0.1, 0.6)
	_, err := ReviewDueTrigger(o, 120, 100, 0)
	assert.ErrorIs(t, err, subjective.ErrArgument)
}

func TestRegulatoryChangeTrigger(t *testing.T) {
	current := mustCompliance(t, 0.9, 0.05, 0.05, 0.9)
	reassessed := mustCompliance(t, 0.4, 0.3, 0.3, 0.5)

	before := RegulatoryChangeTrigger(current, 50, 100, reassessed)
	assert.True(t, current.Equal(before.Opinion))

	after := RegulatoryChangeTrigger(current, 100, 100, reassessed)
	assert.True(t, reassessed.Equal(after.Opinion))
}
