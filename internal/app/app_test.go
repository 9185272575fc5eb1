package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	config "github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Db.Driver = driver
	cfg.Db.Path = filepath.Join(t.TempDir(), "storefront.db")
	cfg.Http.Port = "0"
	cfg.Http.ShutdownTimeout = time.Second

	return cfg
}

func TestSeedIsIdempotentAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)

	for i := 0; i < 3; i++ {
		app, err := NewApp(ctx, cfg, logger.NewNop())
		if err != nil {
			t.Fatalf("new app #%d: %v", i, err)
		}

		res, err := app.Seed(ctx)
		if err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
		if res.Seeded != (i == 0) {
			t.Fatalf("seed #%d: unexpected seeded=%v", i, res.Seeded)
		}

		products, err := app.catalogUC.GetProducts(ctx)
		if err != nil || len(products) != 9 {
			t.Fatalf("run #%d: expected 9 products, got %d (%v)", i, len(products), err)
		}

		if err := app.Close(); err != nil {
			t.Fatalf("close #%d: %v", i, err)
		}
	}
}

func TestHandlerServesSeededCatalog(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, testConfig(t, config.DriverMemory), logger.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })

	if _, err := app.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/api/v1/stores")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var stores []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&stores); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stores) != 9 || stores[0]["name"] != "Outdoor Store" {
		t.Fatalf("unexpected stores: %v", stores)
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t, config.DriverMemory), logger.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig(t, "mongo")

	if _, err := NewApp(context.Background(), cfg, logger.NewNop()); !errors.Is(err, e.ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
