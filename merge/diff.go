package merge

import (
	"sort"

	"github.com/ashita-ai/shinrai/annotation"
)

// NodeChange records a node present on only one side of a diff.
type NodeChange struct {
	NodeID string
	Node   annotation.Node
}

// PropertyChange records a per-property difference between two
// documents sharing a node id.
type PropertyChange struct {
	NodeID   string
	Property string

	// Value is set for added/removed entries.
	Value []annotation.Value

	// ValueA and ValueB are set for modified entries.
	ValueA []annotation.Value
	ValueB []annotation.Value

	// Bare is the shared bare value of an unchanged entry, with the
	// per-side confidences when either side carries one.
	Bare        any
	ConfidenceA *float64
	ConfidenceB *float64
}

// DiffResult is a semantic diff between two documents: nodes and
// properties are compared by bare value, ignoring annotations.
type DiffResult struct {
	AddedNodes   []NodeChange
	RemovedNodes []NodeChange

	Added     []PropertyChange
	Removed   []PropertyChange
	Modified  []PropertyChange
	Unchanged []PropertyChange
}

// Diff compares two documents node-by-node. Anonymous nodes are not
// aligned (they have no identity to align on) and are ignored.
func Diff(a, b annotation.Document) DiffResult {
	nodesA := indexByID(a.Nodes)
	nodesB := indexByID(b.Nodes)

	var result DiffResult

	for _, id := range sortedIDs(nodesB) {
		if _, ok := nodesA[id]; !ok {
			result.AddedNodes = append(result.AddedNodes, NodeChange{NodeID: id, Node: nodesB[id]})
		}
	}
	for _, id := range sortedIDs(nodesA) {
		if _, ok := nodesB[id]; !ok {
			result.RemovedNodes = append(result.RemovedNodes, NodeChange{NodeID: id, Node: nodesA[id]})
		}
	}

	for _, id := range sortedIDs(nodesA) {
		nodeB, ok := nodesB[id]
		if !ok {
			continue
		}
		nodeA := nodesA[id]
		diffProperties(id, nodeA, nodeB, &result)
	}

	return result
}

func diffProperties(id string, a, b annotation.Node, result *DiffResult) {
	names := map[string]bool{}
	for name := range a.Properties {
		names[name] = true
	}
	for name := range b.Properties {
		names[name] = true
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	for _, name := range sorted {
		valsA, okA := a.Properties[name]
		valsB, okB := b.Properties[name]

		switch {
		case !okA:
			result.Added = append(result.Added, PropertyChange{NodeID: id, Property: name, Value: valsB})
		case !okB:
			result.Removed = append(result.Removed, PropertyChange{NodeID: id, Property: name, Value: valsA})
		case annotation.BareEqual(annotation.BareOf(valsA), annotation.BareOf(valsB)):
			entry := PropertyChange{NodeID: id, Property: name, Bare: annotation.BareOf(valsA)}
			if len(valsA) == 1 {
				if c, ok := valsA[0].ConfidenceScore(); ok {
					entry.ConfidenceA = &c
				}
			}
			if len(valsB) == 1 {
				if c, ok := valsB[0].ConfidenceScore(); ok {
					entry.ConfidenceB = &c
				}
			}
			result.Unchanged = append(result.Unchanged, entry)
		default:
			result.Modified = append(result.Modified, PropertyChange{
				NodeID: id, Property: name, ValueA: valsA, ValueB: valsB,
			})
		}
	}
}

func indexByID(nodes []annotation.Node) map[string]annotation.Node {
	index := map[string]annotation.Node{}
	for _, n := range nodes {
		if n.ID != "" {
			// Last write wins for duplicate ids within one document.
			index[n.ID] = n
		}
	}
	return index
}

func sortedIDs(index map[string]annotation.Node) []string {
	ids := make([]string, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
