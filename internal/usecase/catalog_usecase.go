package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// CatalogUseCase отдает каталог презентационному слою.
// Кэша нет: каждый вызов заново читает хранилище.
type CatalogUseCase struct {
	catalogRepo CatalogRepository
	logger      logger.Logger
}

func NewCatalogUC(catalogRepo CatalogRepository, logger logger.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetProducts возвращает все товары. Пустой каталог — не ошибка.
func (c *CatalogUseCase) GetProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "CatalogUseCase.GetProducts"

	products, err := c.catalogRepo.QueryProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

// GetStores возвращает все магазины. Пустой каталог — не ошибка.
func (c *CatalogUseCase) GetStores(ctx context.Context) ([]domain.StoreInfo, error) {
	const op = "CatalogUseCase.GetStores"

	stores, err := c.catalogRepo.QueryStores(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if stores == nil {
		stores = []domain.StoreInfo{}
	}

	return stores, nil
}

// GetProductsAsync не блокирует вызывающего: канал отдает ровно один результат и закрывается.
func (c *CatalogUseCase) GetProductsAsync(ctx context.Context) <-chan Result[[]domain.Product] {
	return async(ctx, c.GetProducts)
}

// GetStoresAsync — асинхронная форма GetStores.
func (c *CatalogUseCase) GetStoresAsync(ctx context.Context) <-chan Result[[]domain.StoreInfo] {
	return async(ctx, c.GetStores)
}

func async[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		value, err := fn(ctx)
		out <- NewResult(value, err)
	}()

	return out
}
