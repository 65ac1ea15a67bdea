package mapping

import (
	"fmt"

	"github.com/solatis/mapkeeper/internal/types"
)

// EncodeFilter translates a partial domain record used as a query filter
// into entity keys. Only directly-mapped fields are accepted: a filter on a
// transformed field would have to guarantee the forward function agrees
// with the storage technology's equality semantics, which the core cannot
// promise, so those fields fail with ErrUnsupportedFilter instead of
// silently matching nothing.
func (d *Description) EncodeFilter(filter types.Record) (types.Record, error) {
	out := make(types.Record, len(filter))

	for field, value := range filter {
		entry, ok := d.entries[field]
		if !ok {
			return nil, fmt.Errorf("filter field %q: %w", field, types.ErrMissingEntry)
		}
		if entry.kind != kindDirect {
			return nil, fmt.Errorf("filter field %q: %w", field, types.ErrUnsupportedFilter)
		}
		out[entry.target] = value
	}

	return out, nil
}

// EncodeID converts a string domain identity into the entity's native
// identity value via the identity entry's forward transform.
func (d *Description) EncodeID(id string) (any, error) {
	if d.idField == "" {
		return nil, fmt.Errorf("description has no identity field: %w", types.ErrMissingEntry)
	}
	native, err := d.entries[d.idField].forward(id)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}
	return native, nil
}

// DecodeID converts a native identity value back into the string domain
// identity via the identity entry's inverse transform.
func (d *Description) DecodeID(native any) (string, error) {
	if d.idField == "" {
		return "", fmt.Errorf("description has no identity field: %w", types.ErrMissingEntry)
	}
	v, err := d.entries[d.idField].inverse(native)
	if err != nil {
		return "", fmt.Errorf("decode identity: %w", err)
	}
	s, ok := v.(string)
	if !ok {
		return "", conversionErr("string id", v)
	}
	return s, nil
}
