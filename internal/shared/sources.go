package shared

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/go-sql-driver/mysql"

	redisad "country_catalog/internal/adapters/redis"
	"country_catalog/internal/adapters/restcountries"
	"country_catalog/internal/domain"
	"country_catalog/internal/storage/file"
	mysqlrepo "country_catalog/internal/storage/mysql"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSource builds the catalog source named by kind. The returned closer
// releases any connection the source holds.
func OpenSource(ctx context.Context, c Config, kind string) (domain.CatalogSource, io.Closer, error) {
	switch kind {
	case SourceFile:
		return file.New(c.CatalogFile), nopCloser{}, nil
	case SourceHTTP:
		url := c.CatalogURL
		if url == "" {
			url = restcountries.DefaultURL
		}
		cl, err := restcountries.New(url, c.UpstreamRPS)
		if err != nil {
			return nil, nil, err
		}
		return cl, nopCloser{}, nil
	case SourceRedis:
		s := redisad.New(c.RedisAddr, c.RedisPass, c.RedisDB, c.RedisKey)
		return s, s, nil
	case SourceMySQL:
		db, err := OpenMySQL(ctx, c.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return mysqlrepo.New(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q", kind)
	}
}

func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}
	return db, nil
}
