package compliance

import "github.com/google/uuid"

// Step is one derivation step in a provenance chain: the trust in the
// derivation process, the purpose-compatibility assessment, and the
// time the step occurred.
type Step struct {
	Trust     Opinion
	Purpose   Opinion
	Timestamp float64
}

// Chain is an append-only provenance record of a dataset's derivation
// history. The chain itself is the audit artifact; the algebraic
// result is a computed summary that can be re-verified from it.
type Chain struct {
	// ID identifies the chain in audit output.
	ID uuid.UUID

	// Source is the compliance opinion of the original dataset.
	Source Opinion

	// SourceTimestamp is the time of the source assessment.
	SourceTimestamp float64

	steps []Step
}

// NewChain starts a provenance chain from a source assessment.
func NewChain(source Opinion, sourceTimestamp float64) *Chain {
	return &Chain{ID: uuid.New(), Source: source, SourceTimestamp: sourceTimestamp}
}

// AddStep appends a derivation step. Steps are never removed or
// reordered.
func (c *Chain) AddStep(trust, purpose Opinion, timestamp float64) {
	c.steps = append(c.steps, Step{Trust: trust, Purpose: purpose, Timestamp: timestamp})
}

// Steps returns a copy of the recorded derivation steps in order.
func (c *Chain) Steps() []Step {
	out := make([]Step, len(c.steps))
	copy(out, c.steps)
	return out
}

// Compute folds the chain into the derived compliance opinion by
// applying Propagate to each step in order, starting from the source.
func (c *Chain) Compute() Opinion {
	current := c.Source
	for _, step := range c.steps {
		current = Propagate(current, step.Trust, step.Purpose)
	}
	return current
}
