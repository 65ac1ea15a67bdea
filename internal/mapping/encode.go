// internal/mapping/encode.go
package mapping

import (
	"fmt"

	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Encode: domain record -> persistence entity.
 *
 * For every declared domain field, look up its entry and produce the
 * corresponding entity field: direct copy, forward transform, or recursion
 * into a nested description. Pure and synchronous; no I/O, no retained
 * references to the records it processes.
 *
 * Field-presence policy: absent (or nil) domain fields produce no entity
 * field at all, never a null placeholder. Domain fields with no entry
 * cannot exist on a valid record of the declared type, but if present they
 * are never copied, so unmapped domain data cannot leak into storage.
 *
 * Sequence policy: order and length are preserved; an empty input sequence
 * yields an empty output sequence, which is distinct from an absent one.
 *
 * Termination: construction guarantees nested descriptions are acyclic and
 * within MaxNestingDepth, so the recursion is bounded.
 */

// Encode converts a domain record into a persistence entity according to
// the description. Detached records simply omit the identity field; Encode
// never synthesizes an identity value.
func (d *Description) Encode(rec types.Record) (types.Record, error) {
	entity := make(types.Record, len(d.entries))

	for field, entry := range d.entries {
		value, ok := rec[field]
		if !ok || value == nil {
			continue
		}

		out, err := encodeValue(entry, value)
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", field, err)
		}
		entity[entry.target] = out
	}

	return entity, nil
}

// encodeValue applies one entry's forward direction to a present value.
func encodeValue(entry Entry, value any) (any, error) {
	switch entry.kind {
	case kindDirect:
		return value, nil

	case kindScalar:
		return entry.forward(value)

	case kindArray:
		items, ok := asList(value)
		if !ok {
			return nil, conversionErr("sequence", value)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := entry.forward(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	case kindNested:
		nested, ok := asRecord(value)
		if !ok {
			return nil, conversionErr("record", value)
		}
		return entry.nested.Encode(nested)

	case kindObjectArray:
		items, ok := asList(value)
		if !ok {
			return nil, conversionErr("record sequence", value)
		}
		out := make([]any, len(items))
		for i, item := range items {
			nested, ok := asRecord(item)
			if !ok {
				return nil, fmt.Errorf("element %d: %w", i, conversionErr("record", item))
			}
			v, err := entry.nested.Encode(nested)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = v
		}
		return out, nil

	default:
		return nil, fmt.Errorf("entry kind %d: %w", entry.kind, types.ErrConversion)
	}
}

// asRecord accepts the named Record type and the bare map shape produced
// by encoding/json.
func asRecord(value any) (types.Record, bool) {
	switch v := value.(type) {
	case types.Record:
		return v, true
	default:
		return nil, false
	}
}

// asList accepts []any as produced by encoding/json and []Record as
// composed by hand in domain code.
func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []types.Record:
		out := make([]any, len(v))
		for i, r := range v {
			out[i] = r
		}
		return out, true
	default:
		return nil, false
	}
}
