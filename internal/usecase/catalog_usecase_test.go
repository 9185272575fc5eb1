package usecase

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// failingRepo имитирует недоступное хранилище.
type failingRepo struct {
	err error
}

func (f *failingRepo) Initialize(context.Context) error { return f.err }
func (f *failingRepo) InsertProducts(context.Context, []domain.Product) error {
	return f.err
}
func (f *failingRepo) InsertStores(context.Context, []domain.StoreInfo) error {
	return f.err
}
func (f *failingRepo) QueryProducts(context.Context) ([]domain.Product, error) {
	return nil, f.err
}
func (f *failingRepo) QueryStores(context.Context) ([]domain.StoreInfo, error) {
	return nil, f.err
}
func (f *failingRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func seededCatalog(t *testing.T) *CatalogUseCase {
	t.Helper()

	repo := memory.NewCatalogRepo()
	if _, err := NewSeedUC(repo, logger.NewNop()).Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return NewCatalogUC(repo, logger.NewNop())
}

func TestGetProductsEmptyBeforeSeed(t *testing.T) {
	uc := NewCatalogUC(memory.NewCatalogRepo(), logger.NewNop())

	products, err := uc.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", products)
	}

	stores, err := uc.GetStores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stores == nil || len(stores) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", stores)
	}
}

func TestGetProductsAfterSeed(t *testing.T) {
	uc := seededCatalog(t)

	products, err := uc.GetProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 9 {
		t.Fatalf("expected 9 products, got %d", len(products))
	}

	first := products[0]
	if first.ID != 1 || first.Name != "Solar Powered Flashlight" || first.Price.String() != "19.99" ||
		first.ImageURL != "product1.png" {
		t.Fatalf("unexpected first product: %+v", first)
	}
}

func TestGetStoresAfterSeed(t *testing.T) {
	uc := seededCatalog(t)

	stores, err := uc.GetStores(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stores) != 9 {
		t.Fatalf("expected 9 stores, got %d", len(stores))
	}

	want := *domain.NewStoreInfo(1, "Outdoor Store", "Seattle", "WA", "9am - 5pm")
	if stores[0] != want {
		t.Fatalf("expected %+v, got %+v", want, stores[0])
	}
}

func TestAsyncMatchesSync(t *testing.T) {
	ctx := context.Background()
	uc := seededCatalog(t)

	products, _ := uc.GetProducts(ctx)
	res, ok := <-uc.GetProductsAsync(ctx)
	if !ok || res.Err != nil {
		t.Fatalf("async products failed: %v", res.Err)
	}
	if !reflect.DeepEqual(products, res.Value) {
		t.Fatalf("async products differ from sync")
	}

	stores, _ := uc.GetStores(ctx)
	sres := <-uc.GetStoresAsync(ctx)
	if sres.Err != nil {
		t.Fatalf("async stores failed: %v", sres.Err)
	}
	if !reflect.DeepEqual(stores, sres.Value) {
		t.Fatalf("async stores differ from sync")
	}
}

func TestAsyncChannelClosesAfterResult(t *testing.T) {
	uc := seededCatalog(t)

	ch := uc.GetStoresAsync(context.Background())
	<-ch
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed after single result")
	}
}

func TestStorageUnavailablePropagates(t *testing.T) {
	cause := e.Unavailable("dial", errors.New("connection refused"))
	uc := NewCatalogUC(&failingRepo{err: cause}, logger.NewNop())

	if _, err := uc.GetProducts(context.Background()); !errors.Is(err, e.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}
	if _, err := uc.GetStores(context.Background()); !errors.Is(err, e.ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	res := <-uc.GetProductsAsync(context.Background())
	if !errors.Is(res.Err, e.ErrStorageUnavailable) {
		t.Fatalf("expected async ErrStorageUnavailable, got %v", res.Err)
	}
}

func TestConcurrentReads(t *testing.T) {
	ctx := context.Background()
	uc := seededCatalog(t)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			products, err := uc.GetProducts(ctx)
			if err == nil && len(products) != 9 {
				err = errors.New("incomplete products")
			}
			errs <- err
		}()
		go func() {
			defer wg.Done()
			stores, err := uc.GetStores(ctx)
			if err == nil && len(stores) != 9 {
				err = errors.New("incomplete stores")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent read failed: %v", err)
		}
	}
}
