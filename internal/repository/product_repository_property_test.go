package repository

import (
	"context"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func clearProducts(t testing.TB) {
	t.Helper()
	if _, err := testDB.Exec("DELETE FROM products"); err != nil {
		t.Fatalf("Failed to clear products table: %v", err)
	}
}

func TestProperty_ProductInsertPreservesAttributes(t *testing.T) {
	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("inserting and listing a product preserves all attributes", prop.ForAll(
		func(name string, unitPrice int64, quantity int64) bool {
			ctx := context.Background()
			clearProducts(t)

			rec := ProductRecord{Name: name, UnitPrice: unitPrice, Quantity: quantity}
			if err := repo.Insert(ctx, rec); err != nil {
				t.Logf("FAIL: Failed to insert product: %v", err)
				return false
			}

			products, err := repo.List(ctx, OrderByCreatedDesc)
			if err != nil {
				t.Logf("FAIL: Failed to list products: %v", err)
				return false
			}

			if len(products) != 1 {
				t.Logf("FAIL: Expected exactly one row, got %d", len(products))
				return false
			}

			got := products[0]
			if got.ID == 0 {
				t.Logf("FAIL: Store did not assign an id")
				return false
			}
			if got.Name != name {
				t.Logf("FAIL: Name mismatch. Expected %q, got %q", name, got.Name)
				return false
			}
			if got.UnitPrice != unitPrice {
				t.Logf("FAIL: UnitPrice mismatch. Expected %d, got %d", unitPrice, got.UnitPrice)
				return false
			}
			if got.Quantity != quantity {
				t.Logf("FAIL: Quantity mismatch. Expected %d, got %d", quantity, got.Quantity)
				return false
			}
			if got.CreatedAt.IsZero() {
				t.Logf("FAIL: CreatedAt is zero")
				return false
			}

			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{1,50}`), // name
		gen.Int64Range(0, 100_000_000),       // unit price
		gen.Int64Range(0, 10_000),            // quantity
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ProductUpdateAffectsExactlyOneRow(t *testing.T) {
	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("updating by id modifies that row and creates no new rows", prop.ForAll(
		func(name string, newName string, unitPrice int64, quantity int64) bool {
			ctx := context.Background()
			clearProducts(t)

			if err := repo.Insert(ctx, ProductRecord{Name: name, UnitPrice: 100, Quantity: 1}); err != nil {
				t.Logf("FAIL: Failed to insert target product: %v", err)
				return false
			}
			if err := repo.Insert(ctx, ProductRecord{Name: "bystander", UnitPrice: 5, Quantity: 5}); err != nil {
				t.Logf("FAIL: Failed to insert bystander product: %v", err)
				return false
			}

			before, err := repo.List(ctx, OrderByCreatedDesc)
			if err != nil {
				t.Logf("FAIL: Failed to list products: %v", err)
				return false
			}

			var targetID int64
			for _, p := range before {
				if p.Name == name {
					targetID = p.ID
				}
			}
			if targetID == 0 {
				t.Logf("FAIL: Target product not found after insert")
				return false
			}

			rec := ProductRecord{Name: newName, UnitPrice: unitPrice, Quantity: quantity}
			if err := repo.Update(ctx, targetID, rec); err != nil {
				t.Logf("FAIL: Failed to update product: %v", err)
				return false
			}

			after, err := repo.List(ctx, OrderByCreatedDesc)
			if err != nil {
				t.Logf("FAIL: Failed to list products: %v", err)
				return false
			}

			if len(after) != len(before) {
				t.Logf("FAIL: Row count changed from %d to %d", len(before), len(after))
				return false
			}

			updated, err := repo.FindByID(ctx, targetID)
			if err != nil {
				t.Logf("FAIL: Failed to find updated product: %v", err)
				return false
			}

			return updated.Name == newName &&
				updated.UnitPrice == unitPrice &&
				updated.Quantity == quantity
		},
		gen.RegexMatch(`[A-Za-z]{3,20}`),
		gen.RegexMatch(`[A-Za-z0-9 ]{1,50}`),
		gen.Int64Range(0, 100_000_000),
		gen.Int64Range(0, 10_000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ProductDeleteRemovesRow(t *testing.T) {
	repo := NewProductRepository(testDB)

	properties := gopter.NewProperties(nil)

	properties.Property("a deleted id is absent from the refreshed row set", prop.ForAll(
		func(name string) bool {
			ctx := context.Background()
			clearProducts(t)

			if err := repo.Insert(ctx, ProductRecord{Name: name, UnitPrice: 1, Quantity: 1}); err != nil {
				t.Logf("FAIL: Failed to insert product: %v", err)
				return false
			}

			products, err := repo.List(ctx, OrderByCreatedDesc)
			if err != nil || len(products) != 1 {
				t.Logf("FAIL: Expected one row, got %d (err: %v)", len(products), err)
				return false
			}

			id := products[0].ID
			if err := repo.Delete(ctx, id); err != nil {
				t.Logf("FAIL: Failed to delete product: %v", err)
				return false
			}

			_, err = repo.FindByID(ctx, id)
			if err != ErrProductNotFound {
				t.Logf("FAIL: Expected ErrProductNotFound after deletion, got: %v", err)
				return false
			}

			remaining, err := repo.List(ctx, OrderByCreatedDesc)
			if err != nil {
				t.Logf("FAIL: Failed to list products: %v", err)
				return false
			}

			return len(remaining) == 0
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{1,50}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProductRepository_ListOrderByNameAscending(t *testing.T) {
	repo := NewProductRepository(testDB)
	ctx := context.Background()
	clearProducts(t)

	names := []string{"Mouse", "Keyboard", "Laptop", "Charger"}
	for _, name := range names {
		if err := repo.Insert(ctx, ProductRecord{Name: name, UnitPrice: 1000, Quantity: 1}); err != nil {
			t.Fatalf("Failed to insert product %q: %v", name, err)
		}
	}

	products, err := repo.List(ctx, OrderByNameAsc)
	if err != nil {
		t.Fatalf("Failed to list products: %v", err)
	}

	if len(products) != len(names) {
		t.Fatalf("Expected %d rows, got %d", len(names), len(products))
	}

	got := make([]string, len(products))
	for i, p := range products {
		got[i] = p.Name
	}

	if !sort.StringsAreSorted(got) {
		t.Errorf("Expected names in ascending order, got %v", got)
	}

	clearProducts(t)
}

func TestProductRepository_UpdateMissingRow(t *testing.T) {
	repo := NewProductRepository(testDB)

	err := repo.Update(context.Background(), 999_999, ProductRecord{Name: "ghost"})
	if err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestProductRepository_DeleteMissingRow(t *testing.T) {
	repo := NewProductRepository(testDB)

	err := repo.Delete(context.Background(), 999_999)
	if err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}
