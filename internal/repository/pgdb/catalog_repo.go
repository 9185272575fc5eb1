package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/constraint"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/DRSN-tech/storefront/pkg/tr"
	sq "github.com/Masterminds/squirrel"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	productTable = "product"
	storeTable   = "store_info"
)

// runner — общее подмножество *pgxpool.Conn и pgx.Tx.
type runner interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// CatalogRepo реализует хранилище каталога поверх PostgreSQL.
type CatalogRepo struct {
	db        *postgres.PgDatabase
	pool      *pgxpool.Pool
	builder   sq.StatementBuilderType
	prConv    converter.ProductConverter
	storeConv converter.StoreInfoConverter
	logger    logger.Logger
}

func NewCatalogRepo(
	db *postgres.PgDatabase,
	prConv converter.ProductConverter,
	storeConv converter.StoreInfoConverter,
	logger logger.Logger,
) *CatalogRepo {
	return &CatalogRepo{
		db:        db,
		pool:      db.Pool,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		prConv:    prConv,
		storeConv: storeConv,
		logger:    logger,
	}
}

// Initialize применяет миграции схемы. Повторный вызов безопасен.
func (c *CatalogRepo) Initialize(ctx context.Context) error {
	const op = "pgdb.CatalogRepo.Initialize"

	if err := c.db.RunMigrations(ctx, c.logger); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// InsertProducts вставляет товары построчно в одной транзакции.
// После вставки с явными ID последовательность identity сдвигается за максимум.
func (c *CatalogRepo) InsertProducts(ctx context.Context, products []domain.Product) error {
	const op = "pgdb.CatalogRepo.InsertProducts"

	if err := constraint.CheckProducts(products); err != nil {
		return e.Wrap(op, err)
	}

	return c.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := tr.TxFromCtx(ctx)
		if err != nil {
			return e.Wrap(op, err)
		}

		for i := range products {
			model := c.prConv.ToModel(&products[i])
			row := map[string]any{
				"name":        model.Name,
				"description": model.Description,
				"price":       model.Price,
				"image_url":   model.ImageURL,
			}
			if model.ID != 0 {
				row["id"] = model.ID
			}

			if err := c.insert(ctx, tx, productTable, row); err != nil {
				return mapErr(op, domain.KindProduct, err)
			}
		}

		if err := c.syncIdentity(ctx, tx, productTable); err != nil {
			return e.Unavailable(op, err)
		}

		return nil
	})
}

// InsertStores вставляет магазины построчно в одной транзакции.
func (c *CatalogRepo) InsertStores(ctx context.Context, stores []domain.StoreInfo) error {
	const op = "pgdb.CatalogRepo.InsertStores"

	if err := constraint.CheckStores(stores); err != nil {
		return e.Wrap(op, err)
	}

	return c.WithinTx(ctx, func(ctx context.Context) error {
		tx, err := tr.TxFromCtx(ctx)
		if err != nil {
			return e.Wrap(op, err)
		}

		for i := range stores {
			model := c.storeConv.ToModel(&stores[i])
			row := map[string]any{
				"name":  model.Name,
				"city":  model.City,
				"state": model.State,
				"hours": model.Hours,
			}
			if model.ID != 0 {
				row["id"] = model.ID
			}

			if err := c.insert(ctx, tx, storeTable, row); err != nil {
				return mapErr(op, domain.KindStoreInfo, err)
			}
		}

		if err := c.syncIdentity(ctx, tx, storeTable); err != nil {
			return e.Unavailable(op, err)
		}

		return nil
	})
}

// QueryProducts возвращает все товары в порядке идентификаторов.
func (c *CatalogRepo) QueryProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "pgdb.CatalogRepo.QueryProducts"

	query, args, err := c.builder.
		Select("id", "name", "description", "price::text", "image_url").
		From(productTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]domain.Product, 0)
	err = c.withRunner(ctx, func(run runner) error {
		rows, err := run.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var model converter.ProductModel
			if err := rows.Scan(&model.ID, &model.Name, &model.Description, &model.Price, &model.ImageURL); err != nil {
				return err
			}

			product, err := c.prConv.ToEntity(&model)
			if err != nil {
				return err
			}

			result = append(result, *product)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, e.Unavailable(op, err)
	}

	return result, nil
}

// QueryStores возвращает все магазины в порядке идентификаторов.
func (c *CatalogRepo) QueryStores(ctx context.Context) ([]domain.StoreInfo, error) {
	const op = "pgdb.CatalogRepo.QueryStores"

	query, args, err := c.builder.
		Select("id", "name", "city", "state", "hours").
		From(storeTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	result := make([]domain.StoreInfo, 0)
	err = c.withRunner(ctx, func(run runner) error {
		rows, err := run.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var model converter.StoreInfoModel
			if err := rows.Scan(&model.ID, &model.Name, &model.City, &model.State, &model.Hours); err != nil {
				return err
			}

			result = append(result, *c.storeConv.ToEntity(&model))
		}

		return rows.Err()
	})
	if err != nil {
		return nil, e.Unavailable(op, err)
	}

	return result, nil
}

// WithinTx выполняет fn в транзакции PostgreSQL. Вложенный вызов присоединяется
// к уже открытой транзакции.
func (c *CatalogRepo) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "pgdb.CatalogRepo.WithinTx"

	if tr.InTx(ctx) {
		return fn(ctx)
	}

	txCtx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, c.pool)
	if err != nil {
		return e.Unavailable(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции
	defer func() {
		if err != nil && tx.IsActive() {
			if rbErr := tx.Rollback(txCtx); rbErr != nil {
				c.logger.Warnf("rollback failed: %v", rbErr)
			}
		}
	}()

	if err = fn(tr.WithTx(txCtx, tx.Transaction())); err != nil {
		return err
	}

	if err = tx.Commit(txCtx); err != nil {
		return e.Unavailable(op, err)
	}

	return nil
}

// withRunner выполняет fn на транзакции из контекста либо на соединении,
// взятом из пула только на время fn.
func (c *CatalogRepo) withRunner(ctx context.Context, fn func(run runner) error) error {
	if tx, err := tr.TxFromCtx(ctx); err == nil {
		return fn(tx)
	}

	conn, err := c.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

func (c *CatalogRepo) insert(ctx context.Context, run runner, table string, row map[string]any) error {
	query, args, err := c.builder.Insert(table).SetMap(row).ToSql()
	if err != nil {
		return err
	}

	_, err = run.Exec(ctx, query, args...)
	return err
}

// syncIdentity выставляет последовательность identity на MAX(id)+1.
func (c *CatalogRepo) syncIdentity(ctx context.Context, run runner, table string) error {
	query := fmt.Sprintf(
		"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %[1]s",
		table,
	)

	_, err := run.Exec(ctx, query)
	return err
}

func mapErr(op string, kind domain.EntityKind, err error) error {
	if postgres.IsConstraintErr(err) {
		return e.Wrap(op, e.Violation("%s: %v", kind, err))
	}

	return e.Unavailable(op, err)
}
