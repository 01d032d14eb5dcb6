// Package temporal adds time-aware assertions over annotated graphs:
// validity windows on values, point-in-time queries, and snapshot
// diffs. Timestamps are strict ISO-8601 strings; windows are inclusive
// at both ends.
package temporal

import (
	"errors"
	"fmt"
	"time"

	"github.com/ashita-ai/shinrai/annotation"
	"github.com/ashita-ai/shinrai/internal/timeparse"
)

var (
	// ErrArgument reports an invalid temporal qualifier combination.
	ErrArgument = errors.New("temporal: invalid argument")

	// ErrParse reports an unparseable timestamp.
	ErrParse = errors.New("temporal: parse error")
)

// Qualifiers are the temporal annotations attachable to a value.
type Qualifiers struct {
	// ValidFrom is when the assertion becomes true.
	ValidFrom string
	// ValidUntil is when the assertion ceases to be true.
	ValidUntil string
	// AsOf is when the assertion was observed to hold.
	AsOf string
}

// AddTemporal attaches temporal qualifiers to a value, returning a
// copy. At least one qualifier is required; all supplied timestamps
// must parse, and ValidFrom must not be after ValidUntil.
func AddTemporal(v annotation.Value, q Qualifiers) (annotation.Value, error) {
	if q.ValidFrom == "" && q.ValidUntil == "" && q.AsOf == "" {
		return annotation.Value{}, fmt.Errorf("%w: at least one temporal qualifier must be provided", ErrArgument)
	}

	var from, until time.Time
	var err error
	if q.ValidFrom != "" {
		if from, err = timeparse.Parse(q.ValidFrom); err != nil {
			return annotation.Value{}, fmt.Errorf("%w: validFrom: %v", ErrParse, err)
		}
	}
	if q.ValidUntil != "" {
		if until, err = timeparse.Parse(q.ValidUntil); err != nil {
			return annotation.Value{}, fmt.Errorf("%w: validUntil: %v", ErrParse, err)
		}
	}
	if q.AsOf != "" {
		if _, err = timeparse.Parse(q.AsOf); err != nil {
			return annotation.Value{}, fmt.Errorf("%w: asOf: %v", ErrParse, err)
		}
	}
	if q.ValidFrom != "" && q.ValidUntil != "" && from.After(until) {
		return annotation.Value{}, fmt.Errorf("%w: validFrom (%s) must not be after validUntil (%s)",
			ErrArgument, q.ValidFrom, q.ValidUntil)
	}

	out := v.Clone()
	if q.ValidFrom != "" {
		out.ValidFrom = q.ValidFrom
	}
	if q.ValidUntil != "" {
		out.ValidUntil = q.ValidUntil
	}
	if q.AsOf != "" {
		out.AsOf = q.AsOf
	}
	return out, nil
}

// QueryAtTime returns the nodes whose data is valid at the given
// timestamp. Values with no temporal bounds are always valid;
// multi-valued properties are filtered element-wise. When propertyName
// is non-empty, only that property is filtered and all others pass
// through; a node can therefore survive on pass-through properties
// alone even when the targeted property has no valid values at the
// queried time; this is intentional. Nodes with no surviving data are
// omitted.
func QueryAtTime(nodes []annotation.Node, timestamp, propertyName string) ([]annotation.Node, error) {
	ts, err := timeparse.Parse(timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	var result []annotation.Node
	for _, node := range nodes {
		filtered, keep, err := filterNodeAtTime(node, ts, propertyName)
		if err != nil {
			return nil, err
		}
		if keep {
			result = append(result, filtered)
		}
	}
	return result, nil
}

func filterNodeAtTime(node annotation.Node, ts time.Time, propertyName string) (annotation.Node, bool, error) {
	out := annotation.Node{ID: node.ID, Types: node.Types, Properties: map[string][]annotation.Value{}}
	hasData := false

	for _, name := range node.PropertyNames() {
		values := node.Properties[name]

		if propertyName != "" && name != propertyName {
			out.Properties[name] = values
			hasData = true
			continue
		}

		var kept []annotation.Value
		for _, v := range values {
			valid, err := validAt(v, ts)
			if err != nil {
				return annotation.Node{}, false, err
			}
			if valid {
				kept = append(kept, v)
			}
		}
		if len(kept) > 0 {
			out.Properties[name] = kept
			hasData = true
		}
	}

	return out, hasData, nil
}

func validAt(v annotation.Value, ts time.Time) (bool, error) {
	if v.ValidFrom == "" && v.ValidUntil == "" {
		return true, nil
	}
	if v.ValidFrom != "" {
		from, err := timeparse.Parse(v.ValidFrom)
		if err != nil {
			return false, fmt.Errorf("%w: validFrom: %v", ErrParse, err)
		}
		if ts.Before(from) {
			return false, nil
		}
	}
	if v.ValidUntil != "" {
		until, err := timeparse.Parse(v.ValidUntil)
		if err != nil {
			return false, fmt.Errorf("%w: validUntil: %v", ErrParse, err)
		}
		if ts.After(until) {
			return false, nil
		}
	}
	return true, nil
}
