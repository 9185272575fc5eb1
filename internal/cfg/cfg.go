package cfg

import (
	"fmt"
	"strings"
	"time"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/jimlawless/whereami"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix — префикс всех переменных окружения приложения.
const EnvPrefix = "STOREFRONT_"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	EnvLocal = "local"
)

type Config struct {
	App  *AppCfg     `koanf:"app" validate:"required"`
	Http *HTTPConfig `koanf:"http" validate:"required"`
	Db   *DBCfg      `koanf:"db" validate:"required"`
	Seed *SeedCfg    `koanf:"seed" validate:"required"`
}

type AppCfg struct {
	Env       string `koanf:"env" validate:"required"`
	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`
}

type HTTPConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"min=1ms"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"min=1ms"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"min=1ms"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"min=1ms"`
}

// DBCfg выбирает реализацию хранилища и содержит параметры всех движков.
// Обязательность полей PostgreSQL проверяется только для driver=postgres.
type DBCfg struct {
	Driver    string `koanf:"driver" validate:"oneof=sqlite postgres memory"`
	SQLiteCfg `koanf:",squash"`
	PGDBCfg   `koanf:",squash" validate:"-"`
}

type SQLiteCfg struct {
	Path            string        `koanf:"path" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type PGDBCfg struct {
	Host     string `koanf:"host" validate:"required"`
	Port     string `koanf:"port" validate:"required,numeric"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	DBName   string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `koanf:"max_conns" validate:"min=1"`
}

type SeedCfg struct {
	Enabled bool `koanf:"enabled"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	return &Config{
		App: &AppCfg{
			Env:       "production",
			LogLevel:  "info",
			LogFormat: "json",
		},
		Http: &HTTPConfig{
			Port:            "8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Db: &DBCfg{
			Driver: DriverSQLite,
			SQLiteCfg: SQLiteCfg{
				Path:         "storefront.db",
				MaxOpenConns: 4,
				MaxIdleConns: 4,
			},
			PGDBCfg: PGDBCfg{
				Host:     "localhost",
				Port:     "5432",
				SSLMode:  "disable",
				MaxConns: 10,
			},
		},
		Seed: &SeedCfg{
			Enabled: true,
		},
	}
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
// Переменные вида STOREFRONT_DB_SSL_MODE попадают в ключ db.ssl_mode.
func Load(log logger.Logger) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		log.Errorf(err, "failed to read environment")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		log.Errorf(err, "failed to decode config")
		return nil, e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %w", e.ErrIncorrectEnvVariable, err))
	}

	if err := cfg.Validate(); err != nil {
		log.Errorf(err, "invalid config")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return cfg, nil
}

// Validate проверяет значения и обязательные для выбранного драйвера поля.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", e.ErrIncorrectEnvVariable, err)
	}

	if c.Db.Driver == DriverPostgres {
		if err := validate.Struct(&c.Db.PGDBCfg); err != nil {
			return fmt.Errorf("%w: %w", e.ErrIncorrectEnvVariable, err)
		}
	}

	return nil
}

// envKey переводит имя переменной в ключ koanf: APP_LOG_LEVEL -> app.log_level.
// Первый сегмент — секция, остаток — имя поля.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}
