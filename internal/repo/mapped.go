package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/solatis/mapkeeper/internal/mapping"
	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Mapped repository.
 *
 * The only concrete binding between a mapping description and a storage
 * collaborator. Every operation is the same sandwich: encode the domain
 * side through the description, delegate to the Store, decode the result
 * back to the domain side.
 *
 * Error policy: ErrNotFound from the collaborator passes through unchanged
 * (a normal outcome, not a failure). Any other collaborator error is
 * wrapped with ErrPersistence, cause intact. Conversion failures from the
 * engine propagate as-is; they are configuration or caller bugs and no
 * retry is attempted here or anywhere below.
 */

// Mapped is a Repository implementation that translates between domain
// records and entities using one immutable mapping description.
type Mapped[D, A any] struct {
	desc    *mapping.Description
	store   Store
	binding Binding[D, A]
}

// NewMapped binds a mapping description to a storage collaborator.
func NewMapped[D, A any](desc *mapping.Description, store Store, binding Binding[D, A]) (*Mapped[D, A], error) {
	if desc == nil {
		return nil, fmt.Errorf("desc cannot be nil")
	}
	if desc.IDField() == "" {
		return nil, fmt.Errorf("description has no identity field: %w", types.ErrMissingEntry)
	}
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if binding.Detached == nil || binding.Attached == nil {
		return nil, fmt.Errorf("binding must provide both directions")
	}
	return &Mapped[D, A]{desc: desc, store: store, binding: binding}, nil
}

// Create encodes the detached object (no identity is read or written),
// delegates insertion, and decodes the persisted entity, which now carries
// the storage-assigned identity.
func (r *Mapped[D, A]) Create(ctx context.Context, d D) (A, error) {
	var zero A

	entity, err := r.desc.Encode(r.binding.Detached(d))
	if err != nil {
		return zero, err
	}

	persisted, err := r.store.Insert(ctx, entity)
	if err != nil {
		return zero, persistence("insert", err)
	}

	return r.attached(persisted)
}

// FindOne translates the filter through the per-field mapping (directly
// mapped fields only), delegates the query, and decodes at most one result.
func (r *Mapped[D, A]) FindOne(ctx context.Context, filter Filter) (A, error) {
	var zero A

	entityFilter, err := r.desc.EncodeFilter(filter)
	if err != nil {
		return zero, err
	}

	entity, err := r.store.FindOne(ctx, entityFilter)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return zero, err
		}
		return zero, persistence("find", err)
	}

	return r.attached(entity)
}

// Update encodes the partial update through the same per-field rules and
// delegates by native identity. The identity field itself is dropped from
// the patch; identity is immutable once assigned.
func (r *Mapped[D, A]) Update(ctx context.Context, id string, patch Patch) (A, error) {
	var zero A

	nativeID, err := r.desc.EncodeID(id)
	if err != nil {
		return zero, err
	}

	if _, ok := patch[r.desc.IDField()]; ok {
		trimmed := make(types.Record, len(patch))
		for f, v := range patch {
			if f != r.desc.IDField() {
				trimmed[f] = v
			}
		}
		patch = trimmed
	}

	entityPatch, err := r.desc.Encode(patch)
	if err != nil {
		return zero, err
	}

	entity, err := r.store.UpdateByID(ctx, nativeID, entityPatch)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return zero, err
		}
		return zero, persistence("update", err)
	}

	return r.attached(entity)
}

// Delete delegates removal by native identity.
func (r *Mapped[D, A]) Delete(ctx context.Context, id string) error {
	nativeID, err := r.desc.EncodeID(id)
	if err != nil {
		return err
	}

	if err := r.store.DeleteByID(ctx, nativeID); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return err
		}
		return persistence("delete", err)
	}
	return nil
}

// attached decodes an entity and raises it to the attached type.
func (r *Mapped[D, A]) attached(entity types.Record) (A, error) {
	var zero A

	rec, err := r.desc.Decode(entity)
	if err != nil {
		return zero, err
	}
	a, err := r.binding.Attached(rec)
	if err != nil {
		return zero, err
	}
	return a, nil
}

// persistence tags a collaborator failure without interpreting its cause.
func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, types.ErrPersistence, err)
}
