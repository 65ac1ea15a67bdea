// Package memory provides a process-local mock collaborator: an ordered
// collection of attached domain records with the four repository
// operations applied directly on domain-shaped data. No mapping engine is
// involved, which makes it the natural double for unit-testing business
// logic independent of any mapping description.
package memory

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/solatis/mapkeeper/internal/types"
)

// Store holds attached domain records in insertion order. String
// identities are assigned on insert (UUIDv7, so identity order matches
// insertion order). Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	recs []types.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Insert copies the record, assigns a fresh string identity, and appends
// it to the collection.
func (s *Store) Insert(_ context.Context, rec types.Record) (types.Record, error) {
	stored := clone(rec)
	stored["id"] = types.NewID()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, stored)
	return clone(stored), nil
}

// FindOne returns the first record, in insertion order, whose fields equal
// every filter field. Returns ErrNotFound when nothing matches.
func (s *Store) FindOne(_ context.Context, filter types.Record) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.recs {
		if matches(rec, filter) {
			return clone(rec), nil
		}
	}
	return nil, fmt.Errorf("no record matches filter: %w", types.ErrNotFound)
}

// UpdateByID merges the patch into the record with the given identity and
// returns the merged record. The identity field cannot be patched.
func (s *Store) UpdateByID(_ context.Context, id string, patch types.Record) (types.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.recs {
		if rec["id"] != id {
			continue
		}
		for f, v := range patch {
			if f == "id" {
				continue
			}
			rec[f] = v
		}
		return clone(rec), nil
	}
	return nil, fmt.Errorf("id %q: %w", id, types.ErrNotFound)
}

// DeleteByID removes the record with the given identity, preserving the
// order of the remaining records.
func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.recs {
		if rec["id"] == id {
			s.recs = append(s.recs[:i], s.recs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("id %q: %w", id, types.ErrNotFound)
}

// Len reports how many records the store holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recs)
}

// matches checks that every filter field equals the record's field.
// Equality is deep: directly-mapped fields can hold slices and nested
// records, and those must compare without panicking on == for
// non-comparable dynamic types.
func matches(rec, filter types.Record) bool {
	for f, want := range filter {
		got, ok := rec[f]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

// clone shallow-copies a record so callers never share map storage with
// the collection.
func clone(rec types.Record) types.Record {
	out := make(types.Record, len(rec))
	for f, v := range rec {
		out[f] = v
	}
	return out
}
