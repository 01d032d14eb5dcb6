// Package lineage defines the narrow provider interfaces the
// compliance algebra needs from external lineage and review-schedule
// infrastructure, in-memory reference implementations for tests and
// prototyping, and the composition functions that bridge providers to
// the erasure and review operators.
package lineage

import (
	"errors"

	"github.com/ashita-ai/shinrai/compliance"
)

// ErrEmptyScope reports an erasure scope with every node exempt.
var ErrEmptyScope = errors.New("lineage: empty erasure scope")

// Provider exposes a dataset lineage DAG with per-node erasure
// assessments. Implementations back this with real lineage
// infrastructure; Descendants and Ancestors are transitive closures.
type Provider interface {
	// Descendants returns all datasets transitively derived from id.
	Descendants(id string) []string

	// Ancestors returns all datasets id was transitively derived from.
	Ancestors(id string) []string

	// ErasureOpinion returns the erasure completeness opinion for a
	// node, defaulting to vacuous when the node is unknown: no
	// evidence of erasure or persistence.
	ErasureOpinion(id string) compliance.Opinion

	// ExemptNodes returns the ids exempt from erasure.
	ExemptNodes() []string
}

// ReviewScheduleProvider exposes per-assessment review scheduling and
// decay parameters.
type ReviewScheduleProvider interface {
	// ReviewDue returns the review-due time for an assessment; ok is
	// false when no review is scheduled.
	ReviewDue(assessmentID string) (dueTime float64, ok bool)

	// HalfLife returns the assessment's normal decay half-life.
	HalfLife(assessmentID string) float64

	// AcceleratedHalfLife returns the post-trigger half-life, shorter
	// than HalfLife to model faster uncertainty growth after a missed
	// review.
	AcceleratedHalfLife(assessmentID string) float64
}
