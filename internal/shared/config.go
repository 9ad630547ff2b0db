package shared

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Catalog source kinds accepted by CATALOG_SOURCE.
const (
	SourceFile  = "file"
	SourceHTTP  = "http"
	SourceRedis = "redis"
	SourceMySQL = "mysql"
)

// Ingest sink kinds accepted by INGEST_SINKS.
const (
	SinkMySQL = "mysql"
	SinkRedis = "redis"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":3000"`
	MetricsAddr string `env:"METRICS_ADDR"`

	Source      string `env:"CATALOG_SOURCE" envDefault:"file"`
	CatalogFile string `env:"CATALOG_FILE" envDefault:"countries.json"`
	CatalogURL  string `env:"CATALOG_URL"`
	RedisKey    string `env:"CATALOG_REDIS_KEY" envDefault:"catalog:countries"`
	UpstreamRPS int    `env:"UPSTREAM_RPS" envDefault:"5"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	MySQLDSN  string `env:"MYSQL_DSN" envDefault:"root:root@tcp(localhost:3306)/catalog?parseTime=true&charset=utf8mb4&loc=UTC"`

	LoadTimeout    time.Duration `env:"LOAD_TIMEOUT" envDefault:"30s"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	IngestSource string   `env:"INGEST_SOURCE" envDefault:"http"`
	Workers      int      `env:"INGEST_WORKERS" envDefault:"8"`
	Sinks        []string `env:"INGEST_SINKS" envDefault:"mysql,redis" envSeparator:","`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	switch c.Source {
	case SourceFile, SourceHTTP, SourceRedis, SourceMySQL:
	default:
		return fmt.Errorf("CATALOG_SOURCE: unknown source %q", c.Source)
	}
	if c.IngestSource != SourceFile && c.IngestSource != SourceHTTP {
		return fmt.Errorf("INGEST_SOURCE: must be %s or %s, got %q", SourceFile, SourceHTTP, c.IngestSource)
	}
	for _, s := range c.Sinks {
		if s != SinkMySQL && s != SinkRedis {
			return fmt.Errorf("INGEST_SINKS: unknown sink %q", s)
		}
	}
	if c.LoadTimeout <= 0 {
		return fmt.Errorf("LOAD_TIMEOUT must be positive")
	}
	return nil
}

// HasSink reports whether the ingestor should write to kind.
func (c Config) HasSink(kind string) bool {
	for _, s := range c.Sinks {
		if s == kind {
			return true
		}
	}
	return false
}
