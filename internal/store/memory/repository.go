package memory

import (
	"context"
	"fmt"

	"github.com/solatis/mapkeeper/internal/repo"
	"github.com/solatis/mapkeeper/internal/types"
)

// Repository adapts a Store to the typed repository contract. Records pass
// through the binding only; there is no mapping description and no entity
// shape, which is exactly what makes it useful as a test double.
type Repository[D, A any] struct {
	store   *Store
	binding repo.Binding[D, A]
}

// NewRepository wraps a store with typed conversions.
func NewRepository[D, A any](store *Store, binding repo.Binding[D, A]) (*Repository[D, A], error) {
	if store == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if binding.Detached == nil || binding.Attached == nil {
		return nil, fmt.Errorf("binding must provide both directions")
	}
	return &Repository[D, A]{store: store, binding: binding}, nil
}

// Create inserts the detached object and returns it with the assigned
// identity.
func (r *Repository[D, A]) Create(ctx context.Context, d D) (A, error) {
	var zero A
	rec, err := r.store.Insert(ctx, r.binding.Detached(d))
	if err != nil {
		return zero, err
	}
	return r.binding.Attached(rec)
}

// FindOne returns the first matching object in insertion order.
func (r *Repository[D, A]) FindOne(ctx context.Context, filter repo.Filter) (A, error) {
	var zero A
	rec, err := r.store.FindOne(ctx, filter)
	if err != nil {
		return zero, err
	}
	return r.binding.Attached(rec)
}

// Update merges the patch into the identified object.
func (r *Repository[D, A]) Update(ctx context.Context, id string, patch repo.Patch) (A, error) {
	var zero A
	rec, err := r.store.UpdateByID(ctx, id, types.Record(patch))
	if err != nil {
		return zero, err
	}
	return r.binding.Attached(rec)
}

// Delete removes the identified object.
func (r *Repository[D, A]) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, id)
}
