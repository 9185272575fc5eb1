package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogUC — единственная точка доступа презентационного слоя к каталогу.
type CatalogUC interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetStores(ctx context.Context) ([]domain.StoreInfo, error)

	GetProductsAsync(ctx context.Context) <-chan Result[[]domain.Product]
	GetStoresAsync(ctx context.Context) <-chan Result[[]domain.StoreInfo]
}

type SeedUC interface {
	Seed(ctx context.Context) (*SeedRes, error)
}
