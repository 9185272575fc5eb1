// Package sqlite открывает файловую базу SQLite (modernc.org/sqlite, без cgo)
// и применяет встроенные миграции схемы каталога.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	migsqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const driverName = "sqlite"

// Database инкапсулирует пул соединений к файлу SQLite.
type Database struct {
	DB   *sql.DB
	Path string
}

// Open открывает базу в режиме WAL и проверяет соединение.
func Open(ctx context.Context, cfg *cfg.SQLiteCfg) (*Database, error) {
	const op = "sqlite.Open"

	if cfg.Path == "" {
		return nil, e.Wrap(op, fmt.Errorf("database path is required"))
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_txlock=immediate",
		cfg.Path,
	)

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, e.Unavailable(op, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, e.Unavailable(op, err)
	}

	return &Database{DB: db, Path: cfg.Path}, nil
}

func (d *Database) Ping(ctx context.Context) error {
	if err := d.DB.PingContext(ctx); err != nil {
		return e.Unavailable("sqlite.Ping", err)
	}

	return nil
}

// Close закрывает пул соединений.
func (d *Database) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}

	return nil
}

// RunMigrations применяет ожидающие миграции. Повторный вызов ничего не меняет.
func (d *Database) RunMigrations(_ context.Context, logger logger.Logger) error {
	const op = "sqlite.RunMigrations"

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return e.Wrap(op, err)
	}

	driver, err := migsqlite.WithInstance(d.DB, &migsqlite.Config{})
	if err != nil {
		return e.Unavailable(op, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return e.Wrap(op, err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debugf("sqlite schema is up to date")
			return nil
		}
		return e.Unavailable(op, err)
	}

	logger.Infof("sqlite migrations applied successfully, path: %s", d.Path)
	return nil
}

// IsConstraintErr сообщает, что движок отклонил запись из-за ограничения схемы
// (PRIMARY KEY, UNIQUE, CHECK, NOT NULL).
func IsConstraintErr(err error) bool {
	var serr *msqlite.Error
	if !errors.As(err, &serr) {
		return false
	}

	return serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}
