package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/solatis/mapkeeper/internal/repo"
	"github.com/solatis/mapkeeper/internal/types"
)

// The typed wrapper exercises the repository contract without any mapping
// description: business logic can be tested against it and later pointed
// at a mapped repository unchanged.

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
			if y, ok := rec["yearOfProduction"].(int64); ok {
				sc.YearOfProduction = y
			}
			if sold, ok := rec["sold"].(time.Time); ok {
				sc.Sold = &sold
			}
			return sc, nil
		},
	}
}

// The repository wrapper must satisfy the contract.
var _ repo.Repository[Car, StoredCar] = (*Repository[Car, StoredCar])(nil)

func TestRepository_EndToEnd(t *testing.T) {
	ctx := context.Background()

	r, err := NewRepository(New(), carBinding())
	if err != nil {
		t.Fatalf("NewRepository() error = %v, want nil", err)
	}

	sold := time.Date(2023, 1, 6, 0, 0, 0, 0, time.UTC)
	created, err := r.Create(ctx, Car{Name: "Toyota", Best: true, YearOfProduction: 2010, Sold: &sold})
	if err != nil {
		t.Fatalf("Create() error = %v, want nil", err)
	}
	if created.ID == "" {
		t.Fatal("Create() assigned no identity")
	}
	if created.Name != "Toyota" || !created.Best || created.YearOfProduction != 2010 {
		t.Errorf("created = %+v, want input fields preserved", created)
	}
	if created.Sold == nil || !created.Sold.Equal(sold) {
		t.Errorf("Sold = %v, want %v", created.Sold, sold)
	}

	found, err := r.FindOne(ctx, repo.Filter{"name": "Toyota"})
	if err != nil {
		t.Fatalf("FindOne() error = %v, want nil", err)
	}
	if found.ID != created.ID {
		t.Errorf("found %q, want %q", found.ID, created.ID)
	}

	updated, err := r.Update(ctx, created.ID, repo.Patch{"best": false})
	if err != nil {
		t.Fatalf("Update() error = %v, want nil", err)
	}
	if updated.Best {
		t.Error("Best = true, want patched false")
	}

	if err := r.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v, want nil", err)
	}
	if _, err := r.FindOne(ctx, repo.Filter{"name": "Toyota"}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("FindOne() after delete error = %v, want ErrNotFound", err)
	}
}
