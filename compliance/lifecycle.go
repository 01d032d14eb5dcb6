package compliance

import (
	"fmt"

	"github.com/google/uuid"
)

// State is the lifecycle state of a single compliance assessment.
type State string

const (
	// StateVacuous is an assessment with no evidence yet.
	StateVacuous State = "vacuous"
	// StateEvidenced is an assessment backed by evidence, no trigger fired.
	StateEvidenced State = "evidenced"
	// StateExpired means the expiry trigger fired.
	StateExpired State = "expired"
	// StateUnderReview means the review-due trigger fired.
	StateUnderReview State = "under-review"
	// StateWithdrawn means consent was withdrawn.
	StateWithdrawn State = "withdrawn"
	// StateRegulatoryChanged means the legal framework changed.
	StateRegulatoryChanged State = "regulatory-changed"
)

// terminal reports whether a state absorbs further triggers.
func (s State) terminal() bool {
	switch s {
	case StateExpired, StateUnderReview, StateWithdrawn, StateRegulatoryChanged:
		return true
	}
	return false
}

// Assessment is the lifecycle of one compliance assessment. It starts
// vacuous or evidenced and accepts at most one regulatory trigger;
// trigger states are absorbing within the assessment. Composition
// across assessments is the caller's job via Meet.
type Assessment struct {
	// ID identifies the assessment in audit output and review schedules.
	ID uuid.UUID

	base  Opinion
	state State

	triggerTime float64
	// trigger parameters; which set is meaningful depends on state.
	residualFactor      float64
	acceleratedHalfLife float64
	replacement         Opinion
}

// NewAssessment starts an assessment lifecycle from a base opinion.
func NewAssessment(base Opinion) *Assessment {
	state := StateEvidenced
	if base.IsVacuous() {
		state = StateVacuous
	}
	return &Assessment{ID: uuid.New(), base: base, state: state}
}

// State is the current lifecycle state.
func (a *Assessment) State() State { return a.state }

// Base is the underlying pre-trigger opinion.
func (a *Assessment) Base() Opinion { return a.base }

func (a *Assessment) guard(trigger string) error {
	if a.state.terminal() {
		return fmt.Errorf("%w: cannot apply %s trigger, assessment is already %s",
			ErrArgument, trigger, a.state)
	}
	return nil
}

// Expire records the expiry trigger: from triggerTime on, lawfulness
// converts to violation with residual factor γ.
func (a *Assessment) Expire(triggerTime, residualFactor float64) error {
	if err := a.guard("expiry"); err != nil {
		return err
	}
	if residualFactor < 0 || residualFactor > 1 {
		return fmt.Errorf("%w: residual factor must be in [0, 1], got %v", ErrArgument, residualFactor)
	}
	a.state = StateExpired
	a.triggerTime = triggerTime
	a.residualFactor = residualFactor
	return nil
}

// MarkReviewDue records the review-due trigger: from triggerTime on the
// opinion decays with the accelerated half-life.
func (a *Assessment) MarkReviewDue(triggerTime, acceleratedHalfLife float64) error {
	if err := a.guard("review-due"); err != nil {
		return err
	}
	if acceleratedHalfLife <= 0 {
		return fmt.Errorf("%w: accelerated half-life must be positive, got %v", ErrArgument, acceleratedHalfLife)
	}
	a.state = StateUnderReview
	a.triggerTime = triggerTime
	a.acceleratedHalfLife = acceleratedHalfLife
	return nil
}

// Withdraw records consent withdrawal with the withdrawal
// implementation opinion.
func (a *Assessment) Withdraw(triggerTime float64, withdrawal Opinion) error {
	if err := a.guard("withdrawal"); err != nil {
		return err
	}
	a.state = StateWithdrawn
	a.triggerTime = triggerTime
	a.replacement = withdrawal
	return nil
}

// ApplyRegulatoryChange records a regulatory-change replacement opinion.
func (a *Assessment) ApplyRegulatoryChange(triggerTime float64, newOpinion Opinion) error {
	if err := a.guard("regulatory-change"); err != nil {
		return err
	}
	a.state = StateRegulatoryChanged
	a.triggerTime = triggerTime
	a.replacement = newOpinion
	return nil
}

// At evaluates the assessment's opinion at the given time, applying the
// recorded trigger operator when the time is at or past the trigger.
func (a *Assessment) At(assessmentTime float64) (Opinion, error) {
	switch a.state {
	case StateVacuous, StateEvidenced:
		return a.base, nil
	case StateExpired:
		return ExpiryTrigger(a.base, assessmentTime, a.triggerTime, a.residualFactor)
	case StateUnderReview:
		return ReviewDueTrigger(a.base, assessmentTime, a.triggerTime, a.acceleratedHalfLife)
	case StateWithdrawn:
		return WithdrawalOverride(a.base, a.replacement, assessmentTime, a.triggerTime), nil
	case StateRegulatoryChanged:
		return RegulatoryChangeTrigger(a.base, assessmentTime, a.triggerTime, a.replacement), nil
	}
	return Opinion{}, fmt.Errorf("%w: unknown assessment state %q", ErrArgument, a.state)
}

// Compose evaluates several assessments at a common time and combines
// them with the jurisdictional meet.
func Compose(assessmentTime float64, assessments ...*Assessment) (Opinion, error) {
	if len(assessments) == 0 {
		return Opinion{}, fmt.Errorf("%w: composition requires at least one assessment", ErrArgument)
	}
	opinions := make([]Opinion, len(assessments))
	for i, a := range assessments {
		op, err := a.At(assessmentTime)
		if err != nil {
			return Opinion{}, err
		}
		opinions[i] = op
	}
	return Meet(opinions...)
}
