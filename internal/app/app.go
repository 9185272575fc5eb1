package app

import (
	"context"
	"errors"
	"net/http"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	v1Http "github.com/DRSN-tech/storefront/internal/delivery/v1/http"
	"github.com/DRSN-tech/storefront/internal/repository/litedb"
	"github.com/DRSN-tech/storefront/internal/repository/memory"
	"github.com/DRSN-tech/storefront/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/closer"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/DRSN-tech/storefront/pkg/postgres"
	"github.com/DRSN-tech/storefront/pkg/sqlite"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App связывает хранилище, сценарии и HTTP-сервер.
type App struct {
	cfg       *config.Config
	logger    logger.Logger
	repo      usecase.CatalogRepository
	catalogUC usecase.CatalogUC
	seedUC    usecase.SeedUC
	closer    *closer.Closer
}

// NewApp открывает хранилище, выбранное в конфигурации. Схема не создается до Migrate.
func NewApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	cl := closer.NewCloser(0)

	repo, err := initStorage(ctx, cfg, log, cl)
	if err != nil {
		log.Errorf(err, "failed to initialize storage")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &App{
		cfg:       cfg,
		logger:    log,
		repo:      repo,
		catalogUC: usecase.NewCatalogUC(repo, log),
		seedUC:    usecase.NewSeedUC(repo, log),
		closer:    cl,
	}, nil
}

func initStorage(ctx context.Context, cfg *config.Config, log logger.Logger, cl *closer.Closer) (usecase.CatalogRepository, error) {
	switch cfg.Db.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, &cfg.Db.SQLiteCfg)
		if err != nil {
			return nil, err
		}
		cl.AddCloser("sqlite", db.Close)

		log.Infof("using sqlite storage, path: %s", cfg.Db.Path)
		return litedb.NewCatalogRepo(db, log), nil

	case config.DriverPostgres:
		db, err := postgres.Connect(ctx, &cfg.Db.PGDBCfg, cfg.App.Env, log)
		if err != nil {
			return nil, err
		}
		cl.AddCloser("postgres", func() error {
			db.Close()
			return nil
		})

		log.Infof("using postgres storage, host: %s, db: %s", cfg.Db.Host, cfg.Db.DBName)
		return pgdb.NewCatalogRepo(db, pgdbConv.NewProductConverterImpl(), pgdbConv.NewStoreInfoConverterImpl(), log), nil

	case config.DriverMemory:
		log.Warnf("using in-memory storage, data is lost on exit")
		return memory.NewCatalogRepo(), nil

	default:
		return nil, e.Wrap(cfg.Db.Driver, e.ErrUnknownDriver)
	}
}

// Migrate создает структуры хранения, если их нет.
func (a *App) Migrate(ctx context.Context) error {
	if err := a.repo.Initialize(ctx); err != nil {
		a.logger.Errorf(err, "failed to run migrations")
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Seed создает схему и заполняет пустое хранилище базовым каталогом.
func (a *App) Seed(ctx context.Context) (*usecase.SeedRes, error) {
	if err := a.Migrate(ctx); err != nil {
		return nil, err
	}

	res, err := a.seedUC.Seed(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return res, nil
}

// Handler собирает HTTP-маршруты приложения.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	v1Http.NewRouter(r, v1Http.NewMetrics(), a.logger).Init(a.catalogUC)

	return r
}

// Run инициализирует и при необходимости заполняет хранилище до открытия порта,
// затем обслуживает запросы до отмены ctx. Ресурсы закрываются в любом случае.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	if a.cfg.Seed.Enabled {
		if _, err := a.Seed(ctx); err != nil {
			a.logger.Errorf(err, "failed to seed catalog")
			return err
		}
	} else if err := a.Migrate(ctx); err != nil {
		return err
	}

	httpSrv := v1Http.NewServer(a.Handler(), a.cfg.Http)
	a.closer.Add("http server", httpSrv.Stop)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// === Ожидание сигнала или ошибки ===
	select {
	case err := <-errCh:
		a.logger.Errorf(err, "HTTP server fatal error")
		return e.Wrap(whereami.WhereAmI(), err)
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	return nil
}

// Close освобождает ресурсы приложения без запуска сервера (команды migrate и seed).
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Http.ShutdownTimeout)
	defer cancel()

	return a.closer.Close(ctx)
}

// === Graceful shutdown ===
func (a *App) shutdown() {
	if err := a.Close(); err != nil {
		a.logger.Errorf(err, "shutdown error")
		return
	}

	a.logger.Infof("Application shutdown complete")
}
