package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/internal/domain"
)

// CatalogRepository — хранилище обеих коллекций каталога.
// Каждая реализация проверяет ограничения схемы при записи и
// берет собственное соединение на каждый вызов.
type CatalogRepository interface {
	// Initialize создает структуры хранения, если их нет. Идемпотентен.
	Initialize(ctx context.Context) error

	InsertProducts(ctx context.Context, products []domain.Product) error
	InsertStores(ctx context.Context, stores []domain.StoreInfo) error

	QueryProducts(ctx context.Context) ([]domain.Product, error)
	QueryStores(ctx context.Context) ([]domain.StoreInfo, error)

	Transactor
}

// Transactor выполняет fn в одной транзакции. Вызовы хранилища с
// переданным в fn контекстом участвуют в этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
