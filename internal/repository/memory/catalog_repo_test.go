package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/shopspring/decimal"
)

func product(id int64, name string) domain.Product {
	return *domain.NewProduct(id, name, "", decimal.RequireFromString("10.00"), "")
}

func TestInsertAndQueryPreservesOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()

	if err := repo.InsertProducts(ctx, []domain.Product{product(2, "b"), product(1, "a")}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.QueryProducts(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected products: %+v", got)
	}
}

func TestQueryEmptyReturnsNonNil(t *testing.T) {
	repo := NewCatalogRepo()

	products, err := repo.QueryProducts(context.Background())
	if err != nil || products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", products, err)
	}

	stores, err := repo.QueryStores(context.Background())
	if err != nil || stores == nil || len(stores) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", stores, err)
	}
}

func TestInsertAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()

	if err := repo.InsertProducts(ctx, []domain.Product{product(5, "a"), product(0, "b"), product(0, "c")}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, _ := repo.QueryProducts(ctx)
	want := []int64{5, 6, 7}
	for i, p := range got {
		if p.ID != want[i] {
			t.Fatalf("product %d: expected id %d, got %d", i, want[i], p.ID)
		}
	}
}

func TestInsertDuplicateLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()

	if err := repo.InsertProducts(ctx, []domain.Product{product(1, "a")}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	err := repo.InsertProducts(ctx, []domain.Product{product(2, "b"), product(1, "dup")})
	if !errors.Is(err, e.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	got, _ := repo.QueryProducts(ctx)
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("store changed after failed insert: %+v", got)
	}
}

func TestInsertStoresRejectsInvalidState(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()

	err := repo.InsertStores(ctx, []domain.StoreInfo{*domain.NewStoreInfo(1, "Store", "Seattle", "WAS", "")})
	if !errors.Is(err, e.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	stores, _ := repo.QueryStores(ctx)
	if len(stores) != 0 {
		t.Fatalf("expected no stores, got %d", len(stores))
	}
}

func TestQueryReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()
	_ = repo.InsertProducts(ctx, []domain.Product{product(1, "a")})

	got, _ := repo.QueryProducts(ctx)
	got[0].Name = "mutated"

	again, _ := repo.QueryProducts(ctx)
	if again[0].Name != "a" {
		t.Fatalf("query result aliases internal state")
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()
	boom := errors.New("boom")

	err := repo.WithinTx(ctx, func(ctx context.Context) error {
		if err := repo.InsertProducts(ctx, []domain.Product{product(1, "a")}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, _ := repo.QueryProducts(ctx)
	if len(got) != 0 {
		t.Fatalf("expected rollback, got %d products", len(got))
	}
}

func TestWithinTxNested(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepo()

	err := repo.WithinTx(ctx, func(ctx context.Context) error {
		return repo.WithinTx(ctx, func(ctx context.Context) error {
			return repo.InsertProducts(ctx, []domain.Product{product(1, "a")})
		})
	})
	if err != nil {
		t.Fatalf("nested tx: %v", err)
	}

	got, _ := repo.QueryProducts(ctx)
	if len(got) != 1 {
		t.Fatalf("expected 1 product, got %d", len(got))
	}
}
