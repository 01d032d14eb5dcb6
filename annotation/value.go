package annotation

import (
	"errors"
	"reflect"

	"github.com/ashita-ai/shinrai/subjective"
)

// ErrParse reports an unparseable document or value.
var ErrParse = errors.New("annotation: parse error")

// Ref is a reference to another node by id. Bare-value comparison
// treats a reference as its id.
type Ref string

// Value is an annotated property value: a scalar (or node reference)
// plus whatever annotations the producing adapter attached. A Value
// with no annotations round-trips as the bare scalar.
type Value struct {
	// Value is the scalar payload or a Ref to another node.
	Value any

	// Confidence is a scalar confidence in [0, 1], when asserted.
	Confidence *float64

	// Opinion is the full subjective-logic annotation, when asserted.
	// When both Confidence and Opinion are authoritative they must be
	// consistent: P(opinion) = confidence.
	Opinion *subjective.Opinion

	Source      string
	ExtractedAt string
	Method      string

	HumanVerified *bool

	ValidFrom  string
	ValidUntil string
	AsOf       string

	// Extra holds the remaining recognized annotation keys (the
	// compliance vocabulary) and any adapter-supplied annotations,
	// keyed by their wire name.
	Extra map[string]any
}

// Scalar wraps a plain value with no annotations.
func Scalar(v any) Value { return Value{Value: v} }

// WithConfidence attaches a scalar confidence, returning a copy.
func (v Value) WithConfidence(c float64) Value {
	v.Confidence = &c
	return v
}

// WithOpinion attaches an opinion annotation, returning a copy.
func (v Value) WithOpinion(o subjective.Opinion) Value {
	v.Opinion = &o
	return v
}

// Bare strips annotations, leaving the comparable payload. A node
// reference compares by its id.
func (v Value) Bare() any { return v.Value }

// ConfidenceScore resolves the scalar confidence of the value: the
// explicit @confidence when present, otherwise the opinion's projected
// probability. The second result is false when neither is asserted.
func (v Value) ConfidenceScore() (float64, bool) {
	if v.Confidence != nil {
		return *v.Confidence, true
	}
	if v.Opinion != nil {
		return v.Opinion.P(), true
	}
	return 0, false
}

// Annotated reports whether the value carries at least one annotation
// from the given key set. A nil set means DefaultKeys.
func (v Value) Annotated(keys KeySet) bool {
	if keys == nil {
		keys = DefaultKeys()
	}
	switch {
	case keys[KeyConfidence] && v.Confidence != nil,
		keys[KeyOpinion] && v.Opinion != nil,
		keys[KeySource] && v.Source != "",
		keys[KeyExtractedAt] && v.ExtractedAt != "",
		keys[KeyMethod] && v.Method != "",
		keys[KeyHumanVerified] && v.HumanVerified != nil,
		keys[KeyValidFrom] && v.ValidFrom != "",
		keys[KeyValidUntil] && v.ValidUntil != "",
		keys[KeyAsOf] && v.AsOf != "":
		return true
	}
	for k := range v.Extra {
		if keys[k] {
			return true
		}
	}
	return false
}

// Clone returns a deep-enough copy: the Extra map is copied, the
// payload is shared (payloads are treated as immutable).
func (v Value) Clone() Value {
	out := v
	if v.Confidence != nil {
		c := *v.Confidence
		out.Confidence = &c
	}
	if v.Opinion != nil {
		o := *v.Opinion
		out.Opinion = &o
	}
	if v.HumanVerified != nil {
		h := *v.HumanVerified
		out.HumanVerified = &h
	}
	if v.Extra != nil {
		out.Extra = make(map[string]any, len(v.Extra))
		for k, val := range v.Extra {
			out.Extra[k] = val
		}
	}
	return out
}

// BareEqual compares two bare payloads. Payloads are JSON-shaped
// (scalars, refs, nested slices/maps), so deep equality applies.
func BareEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// bareOf collapses a property contribution to its comparable form: the
// single bare value, or the slice of bares for a multi-valued property.
func bareOf(values []Value) any {
	if len(values) == 1 {
		return values[0].Bare()
	}
	bares := make([]any, len(values))
	for i, v := range values {
		bares[i] = v.Bare()
	}
	return bares
}

// BareOf exposes the contribution-level bare form used by merge and
// diff: multi-valued properties compare as ordered slices.
func BareOf(values []Value) any { return bareOf(values) }
