package usecase

import (
	"context"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// SeedUseCase заполняет пустое хранилище базовым каталогом.
type SeedUseCase struct {
	catalogRepo CatalogRepository
	catalog     func() *SeedCatalog
	logger      logger.Logger
}

func NewSeedUC(catalogRepo CatalogRepository, logger logger.Logger) *SeedUseCase {
	return NewSeedUCWithCatalog(catalogRepo, DefaultSeedCatalog, logger)
}

// NewSeedUCWithCatalog позволяет подменить набор данных (используется в тестах).
func NewSeedUCWithCatalog(catalogRepo CatalogRepository, catalog func() *SeedCatalog, logger logger.Logger) *SeedUseCase {
	return &SeedUseCase{
		catalogRepo: catalogRepo,
		catalog:     catalog,
		logger:      logger,
	}
}

// Seed идемпотентен: если в хранилище уже есть товары, ничего не пишет.
// Товары и магазины записываются в одной транзакции, частичного каталога не остается.
// Любая ошибка записи фатальна для старта приложения.
func (s *SeedUseCase) Seed(ctx context.Context) (*SeedRes, error) {
	const op = "SeedUseCase.Seed"

	existing, err := s.catalogRepo.QueryProducts(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if len(existing) > 0 {
		s.logger.Infof("catalog already seeded, products: %d", len(existing))
		return NewSeedRes(false, 0, 0), nil
	}

	catalog := s.catalog()
	err = s.catalogRepo.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.catalogRepo.InsertProducts(ctx, catalog.Products); err != nil {
			return err
		}

		return s.catalogRepo.InsertStores(ctx, catalog.Stores)
	})
	if err != nil {
		s.logger.Errorf(err, "failed to seed catalog")
		return nil, e.Wrap(op, err)
	}

	s.logger.Infof("catalog seeded, products: %d, stores: %d", len(catalog.Products), len(catalog.Stores))
	return NewSeedRes(true, len(catalog.Products), len(catalog.Stores)), nil
}
