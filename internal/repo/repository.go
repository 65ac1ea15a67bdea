// Package repo defines the repository contract: CRUD expressed purely in
// domain-model terms, with storage delegated to a collaborator and the
// mapping engine translating at the boundary.
package repo

import (
	"context"

	"github.com/solatis/mapkeeper/internal/types"
)

// Filter is a partial domain record used as a findOne predicate. Keys are
// domain field names; only directly-mapped fields may appear (the mapped
// repository rejects transform-backed fields with ErrUnsupportedFilter).
type Filter = types.Record

// Patch is a partial domain record used as an update. Keys are domain
// field names; absent fields are left untouched in storage. The identity
// field is ignored if present; identity is immutable once assigned.
type Patch = types.Record

// Repository is the narrow persistence contract for one domain concept.
// D is the detached type (no identity, not yet persisted); A is the
// attached type (detached plus a string identity assigned by storage).
//
// Operations suspend only at the storage boundary; the mapping step is
// synchronous. Cancellation is delegated to the collaborator through ctx.
type Repository[D, A any] interface {
	// Create persists a detached object, letting storage assign identity,
	// and returns the attached result.
	Create(ctx context.Context, d D) (A, error)

	// FindOne returns the first object matching the filter, or ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (A, error)

	// Update applies a partial update to the object with the given identity
	// and returns the updated attached object, or ErrNotFound.
	Update(ctx context.Context, id string, patch Patch) (A, error)

	// Delete removes the object with the given identity, or ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// Store is the collaborator interface required from storage adapters. It
// speaks entity-shaped records and native identity values; the core never
// inspects a native identity beyond converting it to and from the string
// domain identity via the mapping description.
//
// Adapters return ErrNotFound for missing targets and may wrap their own
// driver errors freely; the mapped repository tags everything else with
// ErrPersistence without interpreting the cause.
type Store interface {
	// Insert persists an entity and returns it with the native identity set.
	Insert(ctx context.Context, entity types.Record) (types.Record, error)

	// FindOne returns the first entity matching the entity-shaped filter.
	FindOne(ctx context.Context, filter types.Record) (types.Record, error)

	// UpdateByID merges a partial entity into the entity with the given
	// native identity and returns the merged result.
	UpdateByID(ctx context.Context, nativeID any, patch types.Record) (types.Record, error)

	// DeleteByID removes the entity with the given native identity.
	DeleteByID(ctx context.Context, nativeID any) error
}

// Binding converts between a typed domain model and its record shape.
// Both directions are explicit, compile-time-checked functions written per
// domain concept; no reflection or structural subtyping is involved.
type Binding[D, A any] struct {
	// Detached lowers a detached value to a domain record with no identity
	// field.
	Detached func(d D) types.Record

	// Attached raises a domain record carrying an identity field to the
	// attached type.
	Attached func(rec types.Record) (A, error)
}
