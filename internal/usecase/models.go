package usecase

import "github.com/DRSN-tech/storefront/internal/domain"

// Result — результат асинхронного чтения каталога.
type Result[T any] struct {
	Value T
	Err   error
}

// SeedCatalog — фиксированный набор данных начального заполнения.
type SeedCatalog struct {
	Products []domain.Product
	Stores   []domain.StoreInfo
}

// SeedRes описывает итог вызова Seed.
type SeedRes struct {
	Seeded   bool
	Products int
	Stores   int
}

func NewResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

func NewSeedRes(seeded bool, products, stores int) *SeedRes {
	return &SeedRes{
		Seeded:   seeded,
		Products: products,
		Stores:   stores,
	}
}
