package lineage

import (
	"fmt"
	"sort"

	"github.com/ashita-ai/shinrai/compliance"
)

// ErasureScopeAssessment computes the composite erasure completeness
// for an erasure request rooted at sourceID: the scope is
// {source} ∪ descendants − exempt, per-node opinions are gathered in
// sorted id order, and the algebra composes them. Fails when every
// node in scope is exempt.
func ErasureScopeAssessment(sourceID string, provider Provider) (compliance.Opinion, error) {
	exempt := map[string]bool{}
	for _, id := range provider.ExemptNodes() {
		exempt[id] = true
	}

	scope := []string{}
	if !exempt[sourceID] {
		scope = append(scope, sourceID)
	}
	for _, id := range provider.Descendants(sourceID) {
		if !exempt[id] && id != sourceID {
			scope = append(scope, id)
		}
	}
	sort.Strings(scope)

	if len(scope) == 0 {
		return compliance.Opinion{}, fmt.Errorf(
			"%w: erasure of %q: all nodes are exempt, no assessment possible", ErrEmptyScope, sourceID)
	}

	opinions := make([]compliance.Opinion, len(scope))
	for i, id := range scope {
		opinions[i] = provider.ErasureOpinion(id)
	}
	return compliance.ErasureScope(opinions...)
}

// ContaminationRisk computes the residual contamination risk at a
// node: the ancestor set plus the node itself, deliberately NOT
// filtered by exemption: an exempt ancestor that retains data still
// contributes contamination risk.
func ContaminationRisk(nodeID string, provider Provider) (compliance.Opinion, error) {
	set := map[string]bool{nodeID: true}
	for _, id := range provider.Ancestors(nodeID) {
		set[id] = true
	}
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	opinions := make([]compliance.Opinion, len(ids))
	for i, id := range ids {
		opinions[i] = provider.ErasureOpinion(id)
	}
	return compliance.ResidualContamination(opinions...)
}

// ReviewDueAssessment applies the review-due trigger when the schedule
// has a due time for the assessment; with no scheduled review the
// opinion is returned unchanged.
func ReviewDueAssessment(op compliance.Opinion, assessmentID string, assessmentTime float64, schedule ReviewScheduleProvider) (compliance.Opinion, error) {
	dueTime, ok := schedule.ReviewDue(assessmentID)
	if !ok {
		return op, nil
	}
	return compliance.ReviewDueTrigger(op, assessmentTime, dueTime, schedule.AcceleratedHalfLife(assessmentID))
}
