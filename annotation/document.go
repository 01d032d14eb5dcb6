package annotation

import "sort"

// Node is a graph node: an optional opaque id, one or more type
// tokens, and named properties. A property holds one value or an
// ordered sequence; list order is preserved through merge and queries.
type Node struct {
	ID         string
	Types      []string
	Properties map[string][]Value
}

// NewNode builds an empty node with the given id.
func NewNode(id string) Node {
	return Node{ID: id, Properties: map[string][]Value{}}
}

// Set assigns a property to a single value.
func (n *Node) Set(property string, v Value) {
	if n.Properties == nil {
		n.Properties = map[string][]Value{}
	}
	n.Properties[property] = []Value{v}
}

// Add appends a value to a property, making it multi-valued.
func (n *Node) Add(property string, v Value) {
	if n.Properties == nil {
		n.Properties = map[string][]Value{}
	}
	n.Properties[property] = append(n.Properties[property], v)
}

// Get returns the property's first value. The second result is false
// when the property is absent or empty.
func (n Node) Get(property string) (Value, bool) {
	vals := n.Properties[property]
	if len(vals) == 0 {
		return Value{}, false
	}
	return vals[0], true
}

// PropertyNames returns the node's property names in sorted order, for
// deterministic iteration.
func (n Node) PropertyNames() []string {
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone deep-copies the node.
func (n Node) Clone() Node {
	out := Node{ID: n.ID}
	if n.Types != nil {
		out.Types = append([]string{}, n.Types...)
	}
	if n.Properties != nil {
		out.Properties = make(map[string][]Value, len(n.Properties))
		for name, vals := range n.Properties {
			copied := make([]Value, len(vals))
			for i, v := range vals {
				copied[i] = v.Clone()
			}
			out.Properties[name] = copied
		}
	}
	return out
}

// Document is a graph document: either a single node or an ordered
// node sequence (the "@graph" form), plus an optional shared context
// that the core treats as opaque.
type Document struct {
	// Context is carried through untouched; the core never interprets it.
	Context any

	// Nodes are the document's nodes in order.
	Nodes []Node

	// GraphForm records whether the document used an explicit "@graph"
	// sequence, so serialization round-trips the original shape.
	GraphForm bool
}

// FromNode wraps a single node as a document.
func FromNode(n Node) Document {
	return Document{Nodes: []Node{n}}
}

// FromNodes builds an explicit "@graph" document.
func FromNodes(nodes ...Node) Document {
	return Document{Nodes: nodes, GraphForm: true}
}

// Clone deep-copies the document. The opaque context is shared.
func (d Document) Clone() Document {
	out := Document{Context: d.Context, GraphForm: d.GraphForm}
	out.Nodes = make([]Node, len(d.Nodes))
	for i, n := range d.Nodes {
		out.Nodes[i] = n.Clone()
	}
	return out
}
