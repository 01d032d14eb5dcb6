package annotation

import (
	"encoding/json"
	"fmt"

	"github.com/ashita-ai/shinrai/subjective"
)

// The wire shape is the adapter-agnostic annotated-value form:
// documents are {"@context"?, "@graph"? | node fields}, nodes are
// {"@id"?, "@type"?, property: value-or-sequence}, and values are bare
// scalars or {"@value": …, annotations…}. Node references appear as
// {"@id": …}.

// MarshalJSON emits the bare payload for annotation-free values and
// the {"@value": …} object form otherwise. Adapter-supplied extra
// annotations force the object form even when unrecognized.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Annotated(nil) && len(v.Extra) == 0 {
		return json.Marshal(payloadToJSON(v.Value))
	}
	return json.Marshal(v.toMap())
}

// UnmarshalJSON accepts a bare scalar, a node reference, or the
// annotated object form.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := valueFromJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func (v Value) toMap() map[string]any {
	m := map[string]any{KeyValue: payloadToJSON(v.Value)}
	if v.Confidence != nil {
		m[KeyConfidence] = *v.Confidence
	}
	if v.Opinion != nil {
		m[KeyOpinion] = *v.Opinion
	}
	if v.Source != "" {
		m[KeySource] = v.Source
	}
	if v.ExtractedAt != "" {
		m[KeyExtractedAt] = v.ExtractedAt
	}
	if v.Method != "" {
		m[KeyMethod] = v.Method
	}
	if v.HumanVerified != nil {
		m[KeyHumanVerified] = *v.HumanVerified
	}
	if v.ValidFrom != "" {
		m[KeyValidFrom] = v.ValidFrom
	}
	if v.ValidUntil != "" {
		m[KeyValidUntil] = v.ValidUntil
	}
	if v.AsOf != "" {
		m[KeyAsOf] = v.AsOf
	}
	for k, extra := range v.Extra {
		m[k] = extra
	}
	return m
}

func payloadToJSON(payload any) any {
	if ref, ok := payload.(Ref); ok {
		return map[string]any{"@id": string(ref)}
	}
	return payload
}

func valueFromJSON(data []byte) (Value, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not an object: bare scalar payload.
		var scalar any
		if err := json.Unmarshal(data, &scalar); err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return Value{Value: scalar}, nil
	}

	if _, hasValue := raw[KeyValue]; !hasValue {
		// A node reference.
		if idRaw, ok := raw["@id"]; ok {
			var id string
			if err := json.Unmarshal(idRaw, &id); err != nil {
				return Value{}, fmt.Errorf("%w: @id must be a string: %v", ErrParse, err)
			}
			return Value{Value: Ref(id)}, nil
		}
		// An object payload with no annotation envelope.
		var obj any
		if err := json.Unmarshal(data, &obj); err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return Value{Value: obj}, nil
	}

	v := Value{}
	for key, msg := range raw {
		var err error
		switch key {
		case KeyValue:
			var payload any
			if err = json.Unmarshal(msg, &payload); err == nil {
				if m, ok := payload.(map[string]any); ok {
					if id, ok := m["@id"].(string); ok && len(m) == 1 {
						payload = Ref(id)
					}
				}
				v.Value = payload
			}
		case KeyConfidence:
			var c float64
			if err = json.Unmarshal(msg, &c); err == nil {
				v.Confidence = &c
			}
		case KeyOpinion:
			var o subjective.Opinion
			if err = json.Unmarshal(msg, &o); err == nil {
				v.Opinion = &o
			}
		case KeySource:
			err = json.Unmarshal(msg, &v.Source)
		case KeyExtractedAt:
			err = json.Unmarshal(msg, &v.ExtractedAt)
		case KeyMethod:
			err = json.Unmarshal(msg, &v.Method)
		case KeyHumanVerified:
			var h bool
			if err = json.Unmarshal(msg, &h); err == nil {
				v.HumanVerified = &h
			}
		case KeyValidFrom:
			err = json.Unmarshal(msg, &v.ValidFrom)
		case KeyValidUntil:
			err = json.Unmarshal(msg, &v.ValidUntil)
		case KeyAsOf:
			err = json.Unmarshal(msg, &v.AsOf)
		default:
			var extra any
			if err = json.Unmarshal(msg, &extra); err == nil {
				if v.Extra == nil {
					v.Extra = map[string]any{}
				}
				v.Extra[key] = extra
			}
		}
		if err != nil {
			return Value{}, fmt.Errorf("%w: key %q: %v", ErrParse, key, err)
		}
	}
	return v, nil
}

func valuesFromJSON(data []byte) ([]Value, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err == nil {
		values := make([]Value, len(items))
		for i, item := range items {
			v, err := valueFromJSON(item)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}
	v, err := valueFromJSON(data)
	if err != nil {
		return nil, err
	}
	return []Value{v}, nil
}

// MarshalJSON emits {"@id"?, "@type"?, properties…}. Single-valued
// properties marshal as the value itself, multi-valued as an array.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toMap())
}

func (n Node) toMap() map[string]any {
	m := map[string]any{}
	if n.ID != "" {
		m["@id"] = n.ID
	}
	switch len(n.Types) {
	case 0:
	case 1:
		m["@type"] = n.Types[0]
	default:
		m["@type"] = n.Types
	}
	for name, vals := range n.Properties {
		if len(vals) == 1 {
			m[name] = vals[0]
		} else {
			m[name] = vals
		}
	}
	return m
}

// UnmarshalJSON parses a node object. A node-level "@context" is
// dropped; context is document-level.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: node must be an object: %v", ErrParse, err)
	}
	parsed, err := nodeFromRaw(raw)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func nodeFromRaw(raw map[string]json.RawMessage) (Node, error) {
	n := Node{Properties: map[string][]Value{}}
	for key, msg := range raw {
		switch key {
		case "@context":
			// Document-level concern; ignored on nodes.
		case "@id":
			if err := json.Unmarshal(msg, &n.ID); err != nil {
				return Node{}, fmt.Errorf("%w: @id must be a string: %v", ErrParse, err)
			}
		case "@type":
			var single string
			if err := json.Unmarshal(msg, &single); err == nil {
				n.Types = []string{single}
				continue
			}
			if err := json.Unmarshal(msg, &n.Types); err != nil {
				return Node{}, fmt.Errorf("%w: @type must be a string or string array: %v", ErrParse, err)
			}
		default:
			values, err := valuesFromJSON(msg)
			if err != nil {
				return Node{}, fmt.Errorf("%w: property %q: %v", ErrParse, key, err)
			}
			n.Properties[key] = values
		}
	}
	return n, nil
}

// MarshalJSON emits the "@graph" form when the document was built from
// a sequence, the inline single-node form otherwise.
func (d Document) MarshalJSON() ([]byte, error) {
	m := map[string]any{}
	if d.Context != nil {
		m["@context"] = d.Context
	}
	if d.GraphForm || len(d.Nodes) != 1 {
		m["@graph"] = d.Nodes
		return json.Marshal(m)
	}
	for k, v := range d.Nodes[0].toMap() {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON parses either document shape.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: document must be an object: %v", ErrParse, err)
	}

	out := Document{}
	if ctx, ok := raw["@context"]; ok {
		if err := json.Unmarshal(ctx, &out.Context); err != nil {
			return fmt.Errorf("%w: @context: %v", ErrParse, err)
		}
		delete(raw, "@context")
	}

	if graph, ok := raw["@graph"]; ok {
		out.GraphForm = true
		var nodes []Node
		if err := json.Unmarshal(graph, &nodes); err != nil {
			// A "@graph" holding a single object.
			var single Node
			if err := json.Unmarshal(graph, &single); err != nil {
				return fmt.Errorf("%w: @graph: %v", ErrParse, err)
			}
			nodes = []Node{single}
		}
		out.Nodes = nodes
		*d = out
		return nil
	}

	if len(raw) > 0 {
		node, err := nodeFromRaw(raw)
		if err != nil {
			return err
		}
		out.Nodes = []Node{node}
	}
	*d = out
	return nil
}
