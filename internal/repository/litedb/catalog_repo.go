// Package litedb — хранилище каталога поверх встроенного SQLite.
package litedb

import (
	"context"
	"database/sql"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/constraint"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/sqlite"
	"github.com/DRSN-tech/storefront/pkg/tr"
	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

const (
	productTable = "product"
	storeTable   = "store_info"
)

// runner — общее подмножество *sql.Conn и *sql.Tx.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CatalogRepo реализует хранилище каталога поверх SQLite.
// Каждый вызов вне транзакции берет отдельное соединение из пула и возвращает его.
type CatalogRepo struct {
	db      *sqlite.Database
	builder sq.StatementBuilderType
	logger  logger.Logger
}

func NewCatalogRepo(db *sqlite.Database, logger logger.Logger) *CatalogRepo {
	return &CatalogRepo{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Question),
		logger:  logger,
	}
}

// Initialize применяет миграции схемы. Повторный вызов безопасен.
func (r *CatalogRepo) Initialize(ctx context.Context) error {
	const op = "litedb.CatalogRepo.Initialize"

	if err := r.db.RunMigrations(ctx, r.logger); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// InsertProducts вставляет товары построчно в одной транзакции.
// Нулевой ID отдается на назначение движку.
func (r *CatalogRepo) InsertProducts(ctx context.Context, products []domain.Product) error {
	const op = "litedb.CatalogRepo.InsertProducts"

	if err := constraint.CheckProducts(products); err != nil {
		return e.Wrap(op, err)
	}

	return r.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := tr.SQLTxFromCtx(ctx)
		if err != nil {
			return e.Wrap(op, err)
		}

		for _, p := range products {
			query, args, err := r.builder.Insert(productTable).
				SetMap(productRow(&p)).
				ToSql()
			if err != nil {
				return e.Wrap(op, err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return mapErr(op, domain.KindProduct, err)
			}
		}

		return nil
	})
}

// InsertStores вставляет магазины построчно в одной транзакции.
func (r *CatalogRepo) InsertStores(ctx context.Context, stores []domain.StoreInfo) error {
	const op = "litedb.CatalogRepo.InsertStores"

	if err := constraint.CheckStores(stores); err != nil {
		return e.Wrap(op, err)
	}

	return r.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := tr.SQLTxFromCtx(ctx)
		if err != nil {
			return e.Wrap(op, err)
		}

		for _, s := range stores {
			query, args, err := r.builder.Insert(storeTable).
				SetMap(storeRow(&s)).
				ToSql()
			if err != nil {
				return e.Wrap(op, err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return mapErr(op, domain.KindStoreInfo, err)
			}
		}

		return nil
	})
}

// QueryProducts возвращает все товары в порядке идентификаторов.
func (r *CatalogRepo) QueryProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "litedb.CatalogRepo.QueryProducts"

	query, args, err := r.builder.
		Select("id", "name", "description", "price", "image_url").
		From(productTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]domain.Product, 0)
	err = r.withRunner(ctx, func(run runner) error {
		rows, err := run.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				p     domain.Product
				price string
			)
			if err := rows.Scan(&p.ID, &p.Name, &p.Description, &price, &p.ImageURL); err != nil {
				return err
			}

			if p.Price, err = decimal.NewFromString(price); err != nil {
				return err
			}

			result = append(result, p)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, e.Unavailable(op, err)
	}

	return result, nil
}

// QueryStores возвращает все магазины в порядке идентификаторов.
func (r *CatalogRepo) QueryStores(ctx context.Context) ([]domain.StoreInfo, error) {
	const op = "litedb.CatalogRepo.QueryStores"

	query, args, err := r.builder.
		Select("id", "name", "city", "state", "hours").
		From(storeTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]domain.StoreInfo, 0)
	err = r.withRunner(ctx, func(run runner) error {
		rows, err := run.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s domain.StoreInfo
			if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.State, &s.Hours); err != nil {
				return err
			}

			result = append(result, s)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, e.Unavailable(op, err)
	}

	return result, nil
}

// WithinTx выполняет fn в транзакции. Если транзакция уже есть в контексте, fn
// присоединяется к ней, а фиксацию выполняет внешний вызов.
func (r *CatalogRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "litedb.CatalogRepo.WithinTx"

	if tr.InTx(ctx) {
		return fn(ctx)
	}

	tx, err := r.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return e.Unavailable(op, err)
	}

	if err := fn(tr.WithTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Warnf("rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return e.Unavailable(op, err)
	}

	return nil
}

// withRunner выполняет fn на транзакции из контекста либо на отдельном соединении,
// которое освобождается сразу после fn.
func (r *CatalogRepo) withRunner(ctx context.Context, fn func(run runner) error) error {
	if tx, err := tr.SQLTxFromCtx(ctx); err == nil {
		return fn(tx)
	}

	conn, err := r.db.DB.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(conn)
}

func productRow(p *domain.Product) map[string]any {
	row := map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.StringFixed(constraint.PriceScale),
		"image_url":   p.ImageURL,
	}
	if p.ID != 0 {
		row["id"] = p.ID
	}

	return row
}

func storeRow(s *domain.StoreInfo) map[string]any {
	row := map[string]any{
		"name":  s.Name,
		"city":  s.City,
		"state": s.State,
		"hours": s.Hours,
	}
	if s.ID != 0 {
		row["id"] = s.ID
	}

	return row
}

func mapErr(op string, kind domain.EntityKind, err error) error {
	if sqlite.IsConstraintErr(err) {
		return e.Wrap(op, e.Violation("%s: %v", kind, err))
	}

	return e.Unavailable(op, err)
}
