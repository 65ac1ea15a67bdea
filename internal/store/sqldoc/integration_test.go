package sqldoc

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/solatis/mapkeeper/internal/mapping"
	"github.com/solatis/mapkeeper/internal/repo"
	"github.com/solatis/mapkeeper/internal/types"
)

// End-to-end: a typed repository bound to a mapping description, persisting
// through the document store into real SQLite and back.

type Car struct {
	Name             string
	Best             bool
	YearOfProduction int64
	Sold             *time.Time
}

type StoredCar struct {
	ID string
	Car
}

func carDescription(t *testing.T) *mapping.Description {
	t.Helper()

	idFwd, idInv := mapping.Int64String()
	soldFwd, soldInv := mapping.RFC3339()

	d, err := mapping.New("id",
		[]string{"id", "name", "best", "yearOfProduction", "sold"},
		map[string]mapping.Entry{
			"id":               mapping.Scalar("_id", idFwd, idInv),
			"name":             mapping.Direct("name"),
			"best":             mapping.Direct("best_of_all"),
			"yearOfProduction": mapping.Direct("yearOfProduction"),
			"sold":             mapping.Scalar("sold", soldFwd, soldInv),
		})
	if err != nil {
		t.Fatalf("mapping.New() error = %v, want nil", err)
	}
	return d
}

func carBinding() repo.Binding[Car, StoredCar] {
	return repo.Binding[Car, StoredCar]{
		Detached: func(c Car) types.Record {
			rec := types.Record{
				"name":             c.Name,
				"best":             c.Best,
				"yearOfProduction": c.YearOfProduction,
			}
			if c.Sold != nil {
				rec["sold"] = *c.Sold
			}
			return rec
		},
		Attached: func(rec types.Record) (StoredCar, error) {
			var sc StoredCar
			id, ok := rec["id"].(string)
			if !ok {
				return sc, fmt.Errorf("record has no string identity: %w", types.ErrConversion)
			}
			sc.ID = id
			sc.Name, _ = rec["name"].(string)
			sc.Best, _ = rec["best"].(bool)
			// Direct numeric fields come back from JSON storage as float64.
			switch y := rec["yearOfProduction"].(type) {
			case int64:
				sc.YearOfProduction = y
			case float64:
				sc.YearOfProduction = int64(y)
			}
			if sold, ok := rec["sold"].(time.Time); ok {
				sc.Sold = &sold
			}
			return sc, nil
		},
	}
}

func TestMappedRepository_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	r, err := repo.NewMapped(carDescription(t), store, carBinding())
	if err != nil {
		t.Fatalf("NewMapped() error = %v, want nil", err)
	}

	sold := time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)
	created, err := r.Create(ctx, Car{Name: "Toyota", Best: true, YearOfProduction: 2010, Sold: &sold})
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}

	// Identity is a string on the domain side, database-assigned underneath.
	if _, err := strconv.ParseInt(created.ID, 10, 64); err != nil {
		t.Fatalf("ID = %q, want decimal string identity", created.ID)
	}
	if created.Name != "Toyota" || !created.Best || created.YearOfProduction != 2010 {
		t.Errorf("created = %+v, want input fields preserved", created)
	}
	if created.Sold == nil || !created.Sold.Equal(sold) {
		t.Errorf("Sold = %v, want %v survives JSON storage", created.Sold, sold)
	}

	found, err := r.FindOne(ctx, repo.Filter{"best": true})
	if err != nil {
		t.Fatalf("FindOne() error = %v, want nil", err)
	}
	if found.ID != created.ID {
		t.Errorf("found %q, want %q", found.ID, created.ID)
	}

	updated, err := r.Update(ctx, created.ID, repo.Patch{"name": "Toyota Corolla"})
	if err != nil {
		t.Fatalf("Update() error = %v, want nil", err)
	}
	if updated.Name != "Toyota Corolla" {
		t.Errorf("Name = %q, want patched value", updated.Name)
	}
	if updated.YearOfProduction != 2010 || !updated.Best {
		t.Errorf("updated = %+v, want unpatched fields preserved", updated)
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	if _, err := r.FindOne(ctx, repo.Filter{"best": true}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("FindOne() after delete error = %v, want ErrNotFound", err)
	}
	if _, err := r.Update(ctx, created.ID, repo.Patch{"best": false}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("Update() after delete error = %v, want ErrNotFound", err)
	}
}
