// Package merge aligns annotated graph documents from multiple
// sources, boosts confidence where they agree, resolves conflicts with
// confidence-aware strategies, and emits an auditable report of every
// decision it made.
package merge

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/ashita-ai/shinrai/annotation"
	"github.com/ashita-ai/shinrai/inference"
)

// ErrArgument reports invalid merge input.
var ErrArgument = errors.New("merge: invalid argument")

// Strategy selects how conflicting property values are resolved.
// Highest, weighted-vote, and recency delegate to the inference
// resolver; union keeps every conflicting value as a sequence.
type Strategy string

const (
	StrategyHighest      Strategy = "highest"
	StrategyWeightedVote Strategy = "weighted_vote"
	StrategyRecency      Strategy = "recency"
	StrategyUnion        Strategy = "union"
)

// Combination selects how agreeing sources' confidences are combined.
type Combination string

const (
	CombinationNoisyOr Combination = "noisy_or"
	CombinationAverage Combination = "average"
	CombinationMax     Combination = "max"
)

// defaultConflictConfidence is assumed for a candidate that carries no
// confidence annotation, so merge never fails on data shape.
const defaultConflictConfidence = 0.5

// Conflict records one property disagreement and its resolution.
type Conflict struct {
	NodeID     string
	Property   string
	Candidates [][]annotation.Value
	Resolution string
	// Winner is the bare winning value, or a slice of bares for union.
	Winner any
}

// Report is the audit trail of one merge run.
type Report struct {
	// ID identifies this merge run in audit output.
	ID uuid.UUID

	NodesMerged          int
	PropertiesAgreed     int
	PropertiesConflicted int
	PropertiesUnion      int
	SourceCount          int
	Conflicts            []Conflict
}

// Options configure a merge run.
type Options struct {
	// Strategy defaults to StrategyHighest.
	Strategy Strategy
	// Combination defaults to CombinationNoisyOr.
	Combination Combination
}

func (o *Options) normalize() error {
	if o.Strategy == "" {
		o.Strategy = StrategyHighest
	}
	if o.Combination == "" {
		o.Combination = CombinationNoisyOr
	}
	switch o.Strategy {
	case StrategyHighest, StrategyWeightedVote, StrategyRecency, StrategyUnion:
	default:
		return fmt.Errorf("%w: unknown conflict strategy %q", ErrArgument, o.Strategy)
	}
	switch o.Combination {
	case CombinationNoisyOr, CombinationAverage, CombinationMax:
	default:
		return fmt.Errorf("%w: unknown confidence combination %q", ErrArgument, o.Combination)
	}
	return nil
}

// Merge merges two or more documents.
//
// Nodes are bucketed by id; nodes without an id pass through unchanged
// as anonymous nodes. Within a bucket, types are unioned and each
// property is copied through, agreement-combined, or
// conflict-resolved. The first non-nil context encountered is kept.
func Merge(docs []annotation.Document, opts Options) (annotation.Document, Report, error) {
	if len(docs) < 2 {
		return annotation.Document{}, Report{}, fmt.Errorf(
			"%w: merge requires at least 2 documents, got %d", ErrArgument, len(docs))
	}
	if err := opts.normalize(); err != nil {
		return annotation.Document{}, Report{}, err
	}

	report := Report{ID: uuid.New(), SourceCount: len(docs)}

	// Bucket nodes by id, preserving first-seen order.
	var order []string
	buckets := map[string][]annotation.Node{}
	var anonymous []annotation.Node
	var context any

	for _, doc := range docs {
		if context == nil && doc.Context != nil {
			context = doc.Context
		}
		for _, node := range doc.Nodes {
			if node.ID == "" {
				anonymous = append(anonymous, node.Clone())
				continue
			}
			if _, seen := buckets[node.ID]; !seen {
				order = append(order, node.ID)
			}
			buckets[node.ID] = append(buckets[node.ID], node)
		}
	}

	merged := make([]annotation.Node, 0, len(order)+len(anonymous))
	for _, id := range order {
		node, err := mergeNodeGroup(id, buckets[id], opts, &report)
		if err != nil {
			return annotation.Document{}, Report{}, err
		}
		merged = append(merged, node)
		report.NodesMerged++
	}
	merged = append(merged, anonymous...)

	return annotation.Document{Context: context, Nodes: merged, GraphForm: true}, report, nil
}

func mergeNodeGroup(id string, nodes []annotation.Node, opts Options, report *Report) (annotation.Node, error) {
	out := annotation.NewNode(id)
	out.Types = unionTypes(nodes)

	props := map[string]bool{}
	for _, n := range nodes {
		for name := range n.Properties {
			props[name] = true
		}
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		var contributions [][]annotation.Value
		for _, n := range nodes {
			if vals, ok := n.Properties[name]; ok && len(vals) > 0 {
				contributions = append(contributions, vals)
			}
		}
		if len(contributions) == 0 {
			continue
		}
		if len(contributions) == 1 {
			out.Properties[name] = cloneValues(contributions[0])
			report.PropertiesAgreed++
			continue
		}

		if allBareEqual(contributions) {
			out.Properties[name] = combineAgreed(contributions, opts.Combination)
			report.PropertiesAgreed++
			continue
		}

		if opts.Strategy == StrategyUnion {
			var all []annotation.Value
			var bares []any
			for _, c := range contributions {
				all = append(all, cloneValues(c)...)
				bares = append(bares, annotation.BareOf(c))
			}
			out.Properties[name] = all
			report.PropertiesUnion++
			report.PropertiesConflicted++
			report.Conflicts = append(report.Conflicts, Conflict{
				NodeID:     id,
				Property:   name,
				Candidates: contributions,
				Resolution: "union (all kept)",
				Winner:     bares,
			})
			continue
		}

		winner, err := resolveConflict(contributions, opts.Strategy)
		if err != nil {
			return annotation.Node{}, err
		}
		out.Properties[name] = winner
		report.PropertiesConflicted++
		report.Conflicts = append(report.Conflicts, Conflict{
			NodeID:     id,
			Property:   name,
			Candidates: contributions,
			Resolution: string(opts.Strategy),
			Winner:     annotation.BareOf(winner),
		})
	}

	return out, nil
}

func unionTypes(nodes []annotation.Node) []string {
	set := map[string]bool{}
	for _, n := range nodes {
		for _, t := range n.Types {
			set[t] = true
		}
	}
	if len(set) == 0 {
		return nil
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func cloneValues(values []annotation.Value) []annotation.Value {
	out := make([]annotation.Value, len(values))
	for i, v := range values {
		out[i] = v.Clone()
	}
	return out
}

func allBareEqual(contributions [][]annotation.Value) bool {
	first := annotation.BareOf(contributions[0])
	for _, c := range contributions[1:] {
		if !annotation.BareEqual(first, annotation.BareOf(c)) {
			return false
		}
	}
	return true
}

// combineAgreed keeps the richest (highest-confidence) contribution and
// replaces its confidence with the combined score. With fewer than two
// confidence-bearing contributions there is nothing to combine, so the
// richest contribution is returned unchanged.
func combineAgreed(contributions [][]annotation.Value, method Combination) []annotation.Value {
	var scores []float64
	best := contributions[0]
	bestScore := -1.0

	for _, c := range contributions {
		score, ok := contributionConfidence(c)
		if !ok {
			continue
		}
		scores = append(scores, score)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	result := cloneValues(best)
	if len(scores) < 2 {
		return result
	}

	combined, err := inference.Combine(scores, inference.CombineMethod(method))
	if err != nil {
		return result
	}
	if len(result) == 1 {
		rounded := roundTo(combined.Score, 10)
		result[0].Confidence = &rounded
		result[0].Opinion = nil
	}
	return result
}

// contributionConfidence resolves the confidence of a single-valued
// contribution; multi-valued contributions carry no single score.
func contributionConfidence(c []annotation.Value) (float64, bool) {
	if len(c) != 1 {
		return 0, false
	}
	return c[0].ConfidenceScore()
}

func resolveConflict(contributions [][]annotation.Value, strategy Strategy) ([]annotation.Value, error) {
	assertions := make([]inference.Assertion, len(contributions))
	for i, c := range contributions {
		confidence := defaultConflictConfidence
		if score, ok := contributionConfidence(c); ok {
			confidence = score
		}
		conf := confidence
		assertion := inference.Assertion{
			Value:      annotation.BareOf(c),
			Confidence: &conf,
		}
		if len(c) == 1 {
			assertion.ExtractedAt = c[0].ExtractedAt
			assertion.Source = c[0].Source
		}
		assertions[i] = assertion
	}

	resolution, err := inference.ResolveConflict(assertions, inference.Strategy(strategy))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgument, err)
	}

	winner := cloneValues(contributions[resolution.WinnerIndex])
	if len(winner) == 1 && resolution.Winner.Confidence != nil {
		c := *resolution.Winner.Confidence
		winner[0].Confidence = &c
	}
	return winner, nil
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
