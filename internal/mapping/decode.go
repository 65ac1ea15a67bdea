// internal/mapping/decode.go
package mapping

import (
	"fmt"

	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Decode: persistence entity -> domain record.
 *
 * The exact mirror of Encode: for every declared domain field, read the
 * entry's target key from the entity and apply the inverse direction,
 * recursing symmetrically into nested descriptions.
 *
 * Entity fields with no mapping entry are ignored, not rejected: the
 * storage side may grow columns or document keys the domain does not know
 * about yet, and decoding must keep working.
 *
 * Absent (or nil) entity fields stay absent on the domain record, matching
 * the Encode presence policy, so decode(encode(x)) == x field for field.
 */

// Decode converts a persistence entity back into a domain record according
// to the description.
func (d *Description) Decode(entity types.Record) (types.Record, error) {
	rec := make(types.Record, len(d.entries))

	for field, entry := range d.entries {
		value, ok := entity[entry.target]
		if !ok || value == nil {
			continue
		}

		out, err := decodeValue(entry, value)
		if err != nil {
			return nil, fmt.Errorf("decode %q: %w", field, err)
		}
		rec[field] = out
	}

	return rec, nil
}

// decodeValue applies one entry's inverse direction to a present value.
func decodeValue(entry Entry, value any) (any, error) {
	switch entry.kind {
	case kindDirect:
		return value, nil

	case kindScalar:
		return entry.inverse(value)

	case kindArray:
		items, ok := asList(value)
		if !ok {
			return nil, conversionErr("sequence", value)
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := entry.inverse(item)
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
		return entry.nested.Decode(nested)

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
			v, err := entry.nested.Decode(nested)
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
