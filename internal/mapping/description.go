// internal/mapping/description.go

// Package mapping implements the declarative, bidirectional mapping core:
// transform primitives, mapping descriptions, and the recursive
// encode/decode engine that converts domain records to persistence entities
// and back.
package mapping

import (
	"fmt"

	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Mapping description construction and validation.
 *
 * A Description is the per-field table that tells the engine, for every
 * declared domain field, how to reach its entity counterpart: direct
 * rename, scalar transform, element-wise array transform, or a recursively
 * applied nested description.
 *
 * Construction workflow:
 *   1. Check declared field count against limits
 *   2. Every declared field has an entry; every entry names a declared field
 *   3. No two entries share a target key (ambiguity is rejected, not tie-broken)
 *   4. The identity field's entry is a scalar transform
 *   5. Nested descriptions are acyclic and within MaxNestingDepth
 *
 * Why construction-time validation: a missing or ambiguous entry is a
 * configuration bug. Failing in New moves detection to composition time,
 * so Encode/Decode never discover configuration problems mid-flight.
 *
 * Why a closed tagged variant: entries are dispatched on an explicit kind
 * rather than shape-sniffing, so every switch over entry kinds is
 * exhaustive and a new kind cannot be half-supported silently.
 *
 * Descriptions are immutable after New and safe for concurrent use; the
 * engine holds no state across calls.
 */

// entryKind discriminates the five mapping entry variants.
type entryKind int

const (
	kindDirect entryKind = iota
	kindScalar
	kindArray
	kindNested
	kindObjectArray
)

// Entry describes how one domain field reaches its entity counterpart.
// Construct with Direct, Scalar, Array, Nested, or ObjectArray; the zero
// Entry is invalid and rejected by New.
type Entry struct {
	kind     entryKind
	target   string
	forward  TransformFunc
	inverse  TransformFunc
	nested   *Description
	resolved bool // distinguishes constructed entries from zero values
}

// Direct maps a domain field to an entity key with the value unchanged.
func Direct(target string) Entry {
	return Entry{kind: kindDirect, target: target, resolved: true}
}

// Scalar maps a domain field through a forward/inverse transform pair.
// The pair must be true inverses for the round-trip law to hold.
func Scalar(target string, forward, inverse TransformFunc) Entry {
	return Entry{kind: kindScalar, target: target, forward: forward, inverse: inverse, resolved: true}
}

// Array maps a sequence field by applying the transform pair to each
// element, preserving order and length.
func Array(target string, forward, inverse TransformFunc) Entry {
	return Entry{kind: kindArray, target: target, forward: forward, inverse: inverse, resolved: true}
}

// Nested maps a single nested record through its own description. The
// nested description is a value constructed bottom-up and passed in; a
// description never references itself.
func Nested(target string, desc *Description) Entry {
	return Entry{kind: kindNested, target: target, nested: desc, resolved: true}
}

// ObjectArray maps a sequence of nested records, applying the nested
// description to each element independently.
func ObjectArray(target string, desc *Description) Entry {
	return Entry{kind: kindObjectArray, target: target, nested: desc, resolved: true}
}

// Target returns the entity key this entry writes to.
func (e Entry) Target() string { return e.target }

// Description is an immutable per-field mapping table for one
// (attached domain type, persistence entity) pair.
type Description struct {
	idField string
	entries map[string]Entry
}

// New validates and constructs a mapping description.
//
// fields declares every domain field of the attached type, identity field
// included. idField names the identity field; its entry must be a scalar
// transform between the string ID and the native identity representation.
// Pass idField == "" for nested descriptions, which carry no identity.
func New(idField string, fields []string, entries map[string]Entry) (*Description, error) {
	if len(fields) > types.MaxFields {
		return nil, fmt.Errorf("%d fields: %w", len(fields), types.ErrTooManyFields)
	}

	declared := make(map[string]bool, len(fields))
	for _, f := range fields {
		declared[f] = true
	}

	// Absence of an entry for a declared field is a configuration error,
	// not a runtime default.
	for _, f := range fields {
		e, ok := entries[f]
		if !ok || !e.resolved {
			return nil, fmt.Errorf("field %q: %w", f, types.ErrMissingEntry)
		}
	}
	for f := range entries {
		if !declared[f] {
			return nil, fmt.Errorf("field %q: %w", f, types.ErrUnknownEntry)
		}
	}

	// Two entries writing the same entity key would make Decode ambiguous.
	targets := make(map[string]string, len(entries))
	for f, e := range entries {
		if prev, ok := targets[e.target]; ok {
			return nil, fmt.Errorf("fields %q and %q both map to %q: %w", prev, f, e.target, types.ErrDuplicateTarget)
		}
		targets[e.target] = f
	}

	if idField != "" {
		e, ok := entries[idField]
		if !ok {
			return nil, fmt.Errorf("identity field %q: %w", idField, types.ErrMissingEntry)
		}
		if e.kind != kindScalar {
			return nil, fmt.Errorf("identity field %q: %w", idField, types.ErrNotScalarID)
		}
	}

	d := &Description{idField: idField, entries: cloneEntries(entries)}
	if err := checkAcyclic(d, make(map[*Description]bool), 0); err != nil {
		return nil, err
	}
	return d, nil
}

// MustNew is New for statically-known descriptions composed at startup,
// where a configuration error is fatal.
func MustNew(idField string, fields []string, entries map[string]Entry) *Description {
	d, err := New(idField, fields, entries)
	if err != nil {
		panic(err)
	}
	return d
}

// IDField returns the domain name of the identity field, or "" for nested
// descriptions.
func (d *Description) IDField() string { return d.idField }

// IDTarget returns the entity key the identity field maps to, or "" for
// nested descriptions.
func (d *Description) IDTarget() string {
	if d.idField == "" {
		return ""
	}
	return d.entries[d.idField].target
}

// Fields returns the declared domain field names in unspecified order.
func (d *Description) Fields() []string {
	fields := make([]string, 0, len(d.entries))
	for f := range d.entries {
		fields = append(fields, f)
	}
	return fields
}

// cloneEntries copies the entry table so the description cannot be mutated
// through the caller's map after construction.
func cloneEntries(entries map[string]Entry) map[string]Entry {
	out := make(map[string]Entry, len(entries))
	for f, e := range entries {
		out[f] = e
	}
	return out
}

// checkAcyclic walks nested descriptions, rejecting pointer cycles and
// nesting deeper than MaxNestingDepth. Descriptions are built bottom-up as
// values, so a cycle can only appear through deliberate pointer aliasing,
// but it would make Encode recurse forever.
func checkAcyclic(d *Description, seen map[*Description]bool, depth int) error {
	if depth > types.MaxNestingDepth {
		return types.ErrTooDeep
	}
	if seen[d] {
		return types.ErrCyclicMapping
	}
	seen[d] = true
	defer delete(seen, d)

	for f, e := range d.entries {
		if e.nested == nil {
			continue
		}
		if err := checkAcyclic(e.nested, seen, depth+1); err != nil {
			return fmt.Errorf("field %q: %w", f, err)
		}
	}
	return nil
}
