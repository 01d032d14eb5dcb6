package lineage

import (
	"sort"

	"github.com/ashita-ai/shinrai/compliance"
	"github.com/ashita-ai/shinrai/subjective"
)

// MemoryGraph is an in-memory lineage DAG, the reference Provider.
// Closures are computed on demand with breadth-first traversal and
// returned in sorted order for determinism. Not safe for concurrent
// mutation; build the graph, then share it read-only.
type MemoryGraph struct {
	children map[string]map[string]bool
	parents  map[string]map[string]bool
	opinions map[string]compliance.Opinion
	exempt   map[string]string // id → reason
}

// NewMemoryGraph returns an empty lineage graph.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		children: map[string]map[string]bool{},
		parents:  map[string]map[string]bool{},
		opinions: map[string]compliance.Opinion{},
		exempt:   map[string]string{},
	}
}

// AddEdge records that child was derived from parent.
func (g *MemoryGraph) AddEdge(parent, child string) {
	addEdge(g.children, parent, child)
	addEdge(g.parents, child, parent)
	// Both endpoints exist even when they have no further edges.
	ensure(g.children, child)
	ensure(g.parents, parent)
}

func addEdge(adjacency map[string]map[string]bool, from, to string) {
	ensure(adjacency, from)[to] = true
}

func ensure(adjacency map[string]map[string]bool, id string) map[string]bool {
	if adjacency[id] == nil {
		adjacency[id] = map[string]bool{}
	}
	return adjacency[id]
}

// SetErasureOpinion records a node's erasure completeness assessment.
func (g *MemoryGraph) SetErasureOpinion(id string, op compliance.Opinion) {
	g.opinions[id] = op
}

// AddExempt marks a node exempt from erasure with a reason.
func (g *MemoryGraph) AddExempt(id, reason string) {
	g.exempt[id] = reason
}

// ExemptReason returns the recorded exemption reason, if any.
func (g *MemoryGraph) ExemptReason(id string) (string, bool) {
	reason, ok := g.exempt[id]
	return reason, ok
}

// Descendants returns the transitive closure of derivation children.
func (g *MemoryGraph) Descendants(id string) []string {
	return g.closure(g.children, id)
}

// Ancestors returns the transitive closure of derivation parents.
func (g *MemoryGraph) Ancestors(id string) []string {
	return g.closure(g.parents, id)
}

func (g *MemoryGraph) closure(adjacency map[string]map[string]bool, id string) []string {
	visited := map[string]bool{}
	queue := make([]string, 0, len(adjacency[id]))
	for next := range adjacency[id] {
		queue = append(queue, next)
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if visited[node] {
			continue
		}
		visited[node] = true

		var frontier []string
		for next := range adjacency[node] {
			if !visited[next] {
				frontier = append(frontier, next)
			}
		}
		sort.Strings(frontier)
		queue = append(queue, frontier...)
	}

	out := make([]string, 0, len(visited))
	for node := range visited {
		out = append(out, node)
	}
	sort.Strings(out)
	return out
}

// ErasureOpinion returns the recorded opinion, or vacuous when unknown.
func (g *MemoryGraph) ErasureOpinion(id string) compliance.Opinion {
	if op, ok := g.opinions[id]; ok {
		return op
	}
	return compliance.Vacuous(subjective.DefaultBaseRate)
}

// ExemptNodes returns the exempt ids in sorted order.
func (g *MemoryGraph) ExemptNodes() []string {
	out := make([]string, 0, len(g.exempt))
	for id := range g.exempt {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Scope computes the erasure scope {source} ∪ descendants − exempt, in
// sorted order.
func (g *MemoryGraph) Scope(sourceID string) []string {
	exempt := map[string]bool{}
	for _, id := range g.ExemptNodes() {
		exempt[id] = true
	}
	scope := []string{}
	if !exempt[sourceID] {
		scope = append(scope, sourceID)
	}
	for _, id := range g.Descendants(sourceID) {
		if !exempt[id] {
			scope = append(scope, id)
		}
	}
	sort.Strings(scope)
	return scope
}

// defaultAccelFactor divides the normal half-life to derive the
// post-trigger accelerated half-life when none is set explicitly.
const defaultAccelFactor = 4.0

// MemorySchedule is an in-memory review schedule, the reference
// ReviewScheduleProvider.
type MemorySchedule struct {
	defaultHalfLife float64
	reviewDue       map[string]float64
	halfLives       map[string]float64
	accelHalfLives  map[string]float64
}

// NewMemorySchedule returns a schedule whose unset assessments use the
// given default half-life.
func NewMemorySchedule(defaultHalfLife float64) *MemorySchedule {
	return &MemorySchedule{
		defaultHalfLife: defaultHalfLife,
		reviewDue:       map[string]float64{},
		halfLives:       map[string]float64{},
		accelHalfLives:  map[string]float64{},
	}
}

// SetReviewDue schedules a review for an assessment.
func (s *MemorySchedule) SetReviewDue(assessmentID string, dueTime float64) {
	s.reviewDue[assessmentID] = dueTime
}

// SetHalfLife overrides the normal half-life for an assessment.
func (s *MemorySchedule) SetHalfLife(assessmentID string, halfLife float64) {
	s.halfLives[assessmentID] = halfLife
}

// SetAcceleratedHalfLife overrides the post-trigger half-life.
func (s *MemorySchedule) SetAcceleratedHalfLife(assessmentID string, halfLife float64) {
	s.accelHalfLives[assessmentID] = halfLife
}

// ReviewDue implements ReviewScheduleProvider.
func (s *MemorySchedule) ReviewDue(assessmentID string) (float64, bool) {
	due, ok := s.reviewDue[assessmentID]
	return due, ok
}

// HalfLife implements ReviewScheduleProvider.
func (s *MemorySchedule) HalfLife(assessmentID string) float64 {
	if hl, ok := s.halfLives[assessmentID]; ok {
		return hl
	}
	return s.defaultHalfLife
}

// AcceleratedHalfLife implements ReviewScheduleProvider, defaulting to
// HalfLife divided by four.
func (s *MemorySchedule) AcceleratedHalfLife(assessmentID string) float64 {
	if hl, ok := s.accelHalfLives[assessmentID]; ok {
		return hl
	}
	return s.HalfLife(assessmentID) / defaultAccelFactor
}
