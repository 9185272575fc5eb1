package pgdb

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/shopspring/decimal"
)

const testPort = 15433

// newRepo поднимает встроенный PostgreSQL на время теста.
func newRepo(t *testing.T) *CatalogRepo {
	t.Helper()

	if testing.Short() || os.Getenv("STOREFRONT_PG_TESTS") != "1" {
		t.Skip("set STOREFRONT_PG_TESTS=1 to run PostgreSQL tests")
	}

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		Port(testPort).
		Database("storefront").
		Username("storefront").
		Password("storefront").
		RuntimePath(t.TempDir()))
	if err := pg.Start(); err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Stop() })

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.PGDBCfg{
		Host:     "localhost",
		Port:     "15433",
		User:     "storefront",
		Password: "storefront",
		DBName:   "storefront",
		SSLMode:  "disable",
		MaxConns: 4,
	}, "test", logger.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(db.Close)

	repo := NewCatalogRepo(db, converter.NewProductConverterImpl(), converter.NewStoreInfoConverterImpl(), logger.NewNop())
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	// повторная инициализация не должна ничего менять
	if err := repo.Initialize(ctx); err != nil {
		t.Fatalf("second initialize: %v", err)
	}

	return repo
}

func product(id int64, name, price string) domain.Product {
	return *domain.NewProduct(id, name, "desc", decimal.RequireFromString(price), "img.png")
}

func TestCatalogRepo(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		products, err := repo.QueryProducts(ctx)
		if err != nil || products == nil || len(products) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v, %v", products, err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		in := []domain.Product{product(2, "Hiking Poles", "24.99"), product(1, "Solar Powered Flashlight", "19.99")}
		if err := repo.InsertProducts(ctx, in); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := repo.QueryProducts(ctx)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(got) != 2 || got[0].ID != 1 || got[0].Price.String() != "19.99" {
			t.Fatalf("unexpected products: %+v", got)
		}
	})

	t.Run("identity follows explicit ids", func(t *testing.T) {
		if err := repo.InsertProducts(ctx, []domain.Product{product(0, "Assigned", "5")}); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, _ := repo.QueryProducts(ctx)
		if got[len(got)-1].ID != 3 {
			t.Fatalf("expected assigned id 3, got %d", got[len(got)-1].ID)
		}
	})

	t.Run("duplicate id is atomic", func(t *testing.T) {
		before, _ := repo.QueryProducts(ctx)

		err := repo.InsertProducts(ctx, []domain.Product{product(10, "new", "1"), product(1, "dup", "1")})
		if !errors.Is(err, e.ErrConstraintViolation) {
			t.Fatalf("expected ErrConstraintViolation, got %v", err)
		}

		after, _ := repo.QueryProducts(ctx)
		if len(after) != len(before) {
			t.Fatalf("failed insert changed the store: %d -> %d", len(before), len(after))
		}
	})

	t.Run("stores round trip", func(t *testing.T) {
		want := *domain.NewStoreInfo(1, "Outdoor Store", "Seattle", "WA", "9am - 5pm")
		if err := repo.InsertStores(ctx, []domain.StoreInfo{want}); err != nil {
			t.Fatalf("insert: %v", err)
		}

		got, err := repo.QueryStores(ctx)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(got) != 1 || got[0] != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	})

	t.Run("transaction rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.WithinTx(ctx, func(ctx context.Context) error {
			if err := repo.InsertStores(ctx, []domain.StoreInfo{*domain.NewStoreInfo(2, "s", "c", "OR", "")}); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		got, _ := repo.QueryStores(ctx)
		if len(got) != 1 {
			t.Fatalf("expected rollback, got %d stores", len(got))
		}
	})
}
