// Package memory — хранилище каталога в памяти процесса. Повторяет контракт
// production-хранилищ и используется как тестовый двойник.
package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/constraint"
)

type txKey struct{}

type state struct {
	products []domain.Product
	stores   []domain.StoreInfo
}

// CatalogRepo хранит обе коллекции в срезах в порядке вставки.
type CatalogRepo struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data state
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{}
}

func (r *CatalogRepo) Initialize(_ context.Context) error {
	return nil
}

// InsertProducts добавляет пакет атомарно: при нарушении любого правила хранилище не меняется.
func (r *CatalogRepo) InsertProducts(_ context.Context, products []domain.Product) error {
	if err := constraint.CheckProducts(products); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[int64]struct{}, len(r.data.products))
	var maxID int64
	for _, p := range r.data.products {
		existing[p.ID] = struct{}{}
		maxID = max(maxID, p.ID)
	}
	for _, p := range products {
		if _, ok := existing[p.ID]; ok && p.ID != 0 {
			return constraint.DuplicateID(domain.KindProduct, p.ID)
		}
		maxID = max(maxID, p.ID)
	}

	for _, p := range products {
		if p.ID == 0 {
			maxID++
			p.ID = maxID
		}
		r.data.products = append(r.data.products, p)
	}

	return nil
}

// InsertStores добавляет пакет атомарно.
func (r *CatalogRepo) InsertStores(_ context.Context, stores []domain.StoreInfo) error {
	if err := constraint.CheckStores(stores); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing := make(map[int64]struct{}, len(r.data.stores))
	var maxID int64
	for _, s := range r.data.stores {
		existing[s.ID] = struct{}{}
		maxID = max(maxID, s.ID)
	}
	for _, s := range stores {
		if _, ok := existing[s.ID]; ok && s.ID != 0 {
			return constraint.DuplicateID(domain.KindStoreInfo, s.ID)
		}
		maxID = max(maxID, s.ID)
	}

	for _, s := range stores {
		if s.ID == 0 {
			maxID++
			s.ID = maxID
		}
		r.data.stores = append(r.data.stores, s)
	}

	return nil
}

// QueryProducts возвращает копию коллекции товаров.
func (r *CatalogRepo) QueryProducts(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.Product{}, r.data.products...), nil
}

// QueryStores возвращает копию коллекции магазинов.
func (r *CatalogRepo) QueryStores(_ context.Context) ([]domain.StoreInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]domain.StoreInfo{}, r.data.stores...), nil
}

// WithinTx сериализует транзакции и откатывает состояние, если fn вернула ошибку.
// Читатели вне транзакции могут видеть промежуточное состояние.
func (r *CatalogRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.RLock()
	snapshot := state{
		products: append([]domain.Product{}, r.data.products...),
		stores:   append([]domain.StoreInfo{}, r.data.stores...),
	}
	r.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, struct{}{})); err != nil {
		r.mu.Lock()
		r.data = snapshot
		r.mu.Unlock()
		return err
	}

	return nil
}
