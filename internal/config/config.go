package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	JobStoreMongo  = "mongo"
	JobStoreMemory = "memory"
)

type Config struct {
	App      AppConfig
	Mongo    MongoConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	NATS     NATSConfig
	Log      LogConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME, required"`
	Environment string `env:"APP_ENV, required"`
	HTTPPort    string `env:"HTTP_PORT, required"`
	JobStore    string `env:"JOB_STORE, default=mongo"`

	WSAllowedOrigins []string `env:"WS_ALLOWED_ORIGINS"`
}

type MongoConfig struct {
	URI      string        `env:"MONGO_URI"`
	Database string        `env:"MONGO_DATABASE, default=jobboard"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT, default=10s"`
}

type DatabaseConfig struct {
	DBHost     string `env:"DB_HOST, default=localhost"`
	DBPort     string `env:"DB_PORT, default=5432"`
	DBName     string `env:"DB_NAME, default=jobboard"`
	DBUser     string `env:"DB_USER, default=postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE, default=disable"`

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT, default=5s"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS, default=10"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK_PERIOD"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.DBHost),
		strings.TrimSpace(c.DBPort),
		strings.TrimSpace(c.DBUser),
		c.DBPassword,
		strings.TrimSpace(c.DBName),
		strings.TrimSpace(c.DBSSLMode),
	)
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type JWTConfig struct {
	AccessSecret     string        `env:"JWT_ACCESS_SECRET, required"`
	RefreshSecret    string        `env:"JWT_REFRESH_SECRET, required"`
	AccessExpiresIn  time.Duration `env:"JWT_ACCESS_EXPIRES_IN, default=15m"`
	RefreshExpiresIn time.Duration `env:"JWT_REFRESH_EXPIRES_IN, default=168h"`
}

type NATSConfig struct {
	URL         string        `env:"NATS_URL"`
	ConnTimeout time.Duration `env:"NATS_CONN_TIMEOUT, default=5s"`
}

func (c NATSConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Format string `env:"LOG_FORMAT, default=json"`
}

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variables")
	ErrInvalidJobStore    = errors.New("invalid JOB_STORE")
)

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		if errors.Is(err, envconfig.ErrMissingRequired) {
			return Config{}, fmt.Errorf("%w: %v", ErrMissingRequiredEnv, err)
		}
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.App.JobStore {
	case JobStoreMongo:
		if strings.TrimSpace(c.Mongo.URI) == "" {
			return fmt.Errorf("%w: MONGO_URI", ErrMissingRequiredEnv)
		}
	case JobStoreMemory:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidJobStore, c.App.JobStore)
	}
	return nil
}
