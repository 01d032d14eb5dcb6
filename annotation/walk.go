package annotation

// Annotated is one entry yielded by a walk: a node's property value
// that carries at least one recognized annotation.
type Annotated struct {
	NodeID   string
	Property string
	Value    Value
}

// Walk yields the node's annotated property values in deterministic
// order (sorted property names, list order within a property). Values
// with no annotation from the key set are skipped; a nil key set means
// DefaultKeys.
func Walk(n Node, keys KeySet) []Annotated {
	var out []Annotated
	for _, name := range n.PropertyNames() {
		for _, v := range n.Properties[name] {
			if v.Annotated(keys) {
				out = append(out, Annotated{NodeID: n.ID, Property: name, Value: v})
			}
		}
	}
	return out
}

// WalkDocument walks every node of a document in document order.
func WalkDocument(d Document, keys KeySet) []Annotated {
	var out []Annotated
	for _, n := range d.Nodes {
		out = append(out, Walk(n, keys)...)
	}
	return out
}
