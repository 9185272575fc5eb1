package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Db.Driver != DriverSQLite || cfg.Db.Path != "storefront.db" {
		t.Fatalf("unexpected db defaults: %+v", cfg.Db)
	}
	if cfg.Http.Port != "8080" || cfg.Http.ReadTimeout != 5*time.Second {
		t.Fatalf("unexpected http defaults: %+v", cfg.Http)
	}
	if !cfg.Seed.Enabled {
		t.Fatal("seeding must be enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STOREFRONT_HTTP_PORT", "9090")
	t.Setenv("STOREFRONT_HTTP_WRITE_TIMEOUT", "30s")
	t.Setenv("STOREFRONT_APP_LOG_LEVEL", "debug")
	t.Setenv("STOREFRONT_DB_PATH", "/tmp/catalog.db")
	t.Setenv("STOREFRONT_DB_MAX_OPEN_CONNS", "8")
	t.Setenv("STOREFRONT_SEED_ENABLED", "false")

	cfg, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Http.Port != "9090" || cfg.Http.WriteTimeout != 30*time.Second {
		t.Fatalf("http not loaded: %+v", cfg.Http)
	}
	if cfg.Http.ReadTimeout != 5*time.Second {
		t.Fatalf("unset field lost its default: %v", cfg.Http.ReadTimeout)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("expected debug, got %q", cfg.App.LogLevel)
	}
	if cfg.Db.Path != "/tmp/catalog.db" || cfg.Db.MaxOpenConns != 8 {
		t.Fatalf("db not loaded: %+v", cfg.Db.SQLiteCfg)
	}
	if cfg.Seed.Enabled {
		t.Fatal("expected seeding disabled")
	}
}

func TestLoadPostgresRequiresCredentials(t *testing.T) {
	t.Setenv("STOREFRONT_DB_DRIVER", "postgres")

	_, err := Load(logger.NewNop())
	if !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Fatalf("expected ErrIncorrectEnvVariable, got %v", err)
	}

	t.Setenv("STOREFRONT_DB_USER", "storefront")
	t.Setenv("STOREFRONT_DB_PASSWORD", "secret")
	t.Setenv("STOREFRONT_DB_NAME", "catalog")

	cfg, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Db.DBName != "catalog" || cfg.Db.Host != "localhost" {
		t.Fatalf("unexpected postgres config: %+v", cfg.Db.PGDBCfg)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STOREFRONT_DB_DRIVER", "mongo")

	if _, err := Load(logger.NewNop()); !errors.Is(err, e.ErrIncorrectEnvVariable) {
		t.Fatalf("expected ErrIncorrectEnvVariable, got %v", err)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"STOREFRONT_DB_SSL_MODE":           "db.ssl_mode",
		"STOREFRONT_HTTP_PORT":             "http.port",
		"STOREFRONT_APP_LOG_FORMAT":        "app.log_format",
		"STOREFRONT_SEED_ENABLED":          "seed.enabled",
		"STOREFRONT_HTTP_SHUTDOWN_TIMEOUT": "http.shutdown_timeout",
	}

	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}
