// Package sqldoc is a document-over-SQL storage adapter: entities are
// persisted as JSON bodies in a documents table, one logical collection
// per repository, with an int64 native identity assigned by the database.
//
// The adapter implements the repo.Store collaborator contract and knows
// nothing about domain models; it accepts and produces entity-shaped
// records exactly as the mapping engine emits them.
package sqldoc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/solatis/mapkeeper/internal/core/db"
	"github.com/solatis/mapkeeper/internal/types"
)

/*
 * Storage layout.
 *
 * documents(id, collection, body): id is the native identity (int64,
 * auto-assigned), body is the JSON-marshalled entity without its identity
 * field. The identity lives only in the id column and is joined back into
 * the record at read time, so the column and the body can never disagree.
 *
 * Filtering: FindOne scans the collection in id order and matches the
 * filter in-process. This keeps the adapter portable across SQLite and
 * PostgreSQL without per-driver JSON path SQL; collections this adapter
 * serves are repository-sized, not analytical.
 *
 * JSON type fidelity: numbers come back as float64 and dates as strings.
 * That is the entity's native shape; mapping descriptions that need exact
 * domain types route those fields through scalar transforms (RFC3339,
 * Int64String) rather than direct entries.
 */

// Store persists one collection of entities. Implements repo.Store with
// int64 native identities.
type Store struct {
	queries    *db.Queries
	collection string
	idField    string
}

// New returns a store for the named collection. idField is the entity key
// that carries the native identity (the mapping description's IDTarget).
func New(queries *db.Queries, collection, idField string) (*Store, error) {
	if queries == nil {
		return nil, fmt.Errorf("queries cannot be nil")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection cannot be empty")
	}
	if idField == "" {
		return nil, fmt.Errorf("idField cannot be empty")
	}
	return &Store{queries: queries, collection: collection, idField: idField}, nil
}

// Insert persists the entity and returns it with the native identity set.
// Any identity value already present on the entity is discarded; identity
// assignment belongs to the database.
func (s *Store) Insert(ctx context.Context, entity types.Record) (types.Record, error) {
	body, err := s.marshalBody(entity)
	if err != nil {
		return nil, err
	}

	var id int64
	if err := s.queries.Get(ctx, "insert-document", &id, s.collection, body); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return s.fetch(ctx, id)
}

// FindOne returns the first entity in the collection, in identity order,
// whose fields equal every filter field.
func (s *Store) FindOne(ctx context.Context, filter types.Record) (types.Record, error) {
	var rows []struct {
		ID   int64  `db:"id"`
		Body []byte `db:"body"`
	}
	if err := s.queries.Select(ctx, "list-documents", &rows, s.collection); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	for _, row := range rows {
		entity, err := s.unmarshalBody(row.ID, row.Body)
		if err != nil {
			return nil, err
		}
		if matches(entity, filter) {
			return entity, nil
		}
	}
	return nil, fmt.Errorf("no document matches filter: %w", types.ErrNotFound)
}

// UpdateByID merges the partial entity into the stored body and returns
// the merged entity. The identity field cannot be patched.
func (s *Store) UpdateByID(ctx context.Context, nativeID any, patch types.Record) (types.Record, error) {
	id, err := asID(nativeID)
	if err != nil {
		return nil, err
	}

	entity, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	for f, v := range patch {
		if f == s.idField {
			continue
		}
		entity[f] = v
	}

	body, err := s.marshalBody(entity)
	if err != nil {
		return nil, err
	}
	if _, err := s.queries.Exec(ctx, "update-document", body, s.collection, id); err != nil {
		return nil, fmt.Errorf("update document %d: %w", id, err)
	}

	// Re-read rather than trust the merge: the JSON round-trip is the
	// entity's native shape and callers must see exactly what storage holds.
	return s.fetch(ctx, id)
}

// DeleteByID removes the entity with the given native identity.
func (s *Store) DeleteByID(ctx context.Context, nativeID any) error {
	id, err := asID(nativeID)
	if err != nil {
		return err
	}

	res, err := s.queries.Exec(ctx, "delete-document", s.collection, id)
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("document %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// fetch reads one document and joins the identity back into the record.
func (s *Store) fetch(ctx context.Context, id int64) (types.Record, error) {
	var body []byte
	if err := s.queries.Get(ctx, "get-document", &body, s.collection, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %d: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("get document %d: %w", id, err)
	}
	return s.unmarshalBody(id, body)
}

// marshalBody serializes the entity without its identity field. Returned
// as a string so lib/pq binds it as text (inferred jsonb) rather than bytea.
func (s *Store) marshalBody(entity types.Record) (string, error) {
	body := make(types.Record, len(entity))
	for f, v := range entity {
		if f == s.idField {
			continue
		}
		body[f] = v
	}
	out, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal entity: %w", err)
	}
	return string(out), nil
}

// unmarshalBody deserializes a stored body and sets the identity field.
func (s *Store) unmarshalBody(id int64, body []byte) (types.Record, error) {
	var entity types.Record
	if err := json.Unmarshal(body, &entity); err != nil {
		return nil, fmt.Errorf("unmarshal document %d: %w", id, err)
	}
	if entity == nil {
		entity = types.Record{}
	}
	entity[s.idField] = id
	return entity, nil
}

// asID narrows an opaque native identity to int64.
func asID(nativeID any) (int64, error) {
	switch v := nativeID.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("native identity must be int64, got %T: %w", nativeID, types.ErrConversion)
	}
}
