package temporal

import (
	"sort"

	"github.com/ashita-ai/shinrai/annotation"
)

// Change is one difference between two snapshots. Whole-node changes
// set Node and leave Property empty; property-level changes set the
// value fields relevant to their kind.
type Change struct {
	NodeID   string
	Property string

	// Node is set for whole-node appearances/disappearances.
	Node *annotation.Node

	// Value is set for added/removed properties.
	Value []annotation.Value

	// ValueAtT1 and ValueAtT2 are set for modified properties.
	ValueAtT1 []annotation.Value
	ValueAtT2 []annotation.Value

	// Bare is the shared bare value of an unchanged property.
	Bare any
}

// DiffResult classifies what changed between two points in time.
type DiffResult struct {
	Added     []Change
	Removed   []Change
	Modified  []Change
	Unchanged []Change
}

// Diff snapshots the graph at t1 and t2 via QueryAtTime, aligns nodes
// by id, and classifies each property as added, removed, modified, or
// unchanged by bare-value comparison. Nodes without ids cannot be
// aligned and are skipped.
func Diff(nodes []annotation.Node, t1, t2 string) (DiffResult, error) {
	snap1, err := QueryAtTime(nodes, t1, "")
	if err != nil {
		return DiffResult{}, err
	}
	snap2, err := QueryAtTime(nodes, t2, "")
	if err != nil {
		return DiffResult{}, err
	}

	byID1 := indexByID(snap1)
	byID2 := indexByID(snap2)

	ids := map[string]bool{}
	for id := range byID1 {
		ids[id] = true
	}
	for id := range byID2 {
		ids[id] = true
	}
	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	var result DiffResult
	for _, id := range sorted {
		n1, ok1 := byID1[id]
		n2, ok2 := byID2[id]

		switch {
		case !ok1:
			node := n2
			result.Added = append(result.Added, Change{NodeID: id, Node: &node})
		case !ok2:
			node := n1
			result.Removed = append(result.Removed, Change{NodeID: id, Node: &node})
		default:
			diffNodeProperties(id, n1, n2, &result)
		}
	}
	return result, nil
}

func diffNodeProperties(id string, n1, n2 annotation.Node, result *DiffResult) {
	names := map[string]bool{}
	for name := range n1.Properties {
		names[name] = true
	}
	for name := range n2.Properties {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		v1, ok1 := n1.Properties[name]
		v2, ok2 := n2.Properties[name]

		switch {
		case !ok1:
			result.Added = append(result.Added, Change{NodeID: id, Property: name, Value: v2})
		case !ok2:
			result.Removed = append(result.Removed, Change{NodeID: id, Property: name, Value: v1})
		case annotation.BareEqual(annotation.BareOf(v1), annotation.BareOf(v2)):
			result.Unchanged = append(result.Unchanged, Change{
				NodeID: id, Property: name, Bare: annotation.BareOf(v1),
			})
		default:
			result.Modified = append(result.Modified, Change{
				NodeID: id, Property: name, ValueAtT1: v1, ValueAtT2: v2,
			})
		}
	}
}

func indexByID(nodes []annotation.Node) map[string]annotation.Node {
	index := map[string]annotation.Node{}
	for _, n := range nodes {
		if n.ID != "" {
			index[n.ID] = n
		}
	}
	return index
}
