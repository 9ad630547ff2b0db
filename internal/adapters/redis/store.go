package redisad

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/domain"
)

// Store keeps the whole catalog document under a single key. It serves as
// a catalog source for the API and as a document sink for the ingestor.
type Store struct {
	c   *redis.Client
	key string
}

func New(addr, pass string, db int, key string) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), key: key}
}

func (r *Store) Name() string { return "redis:" + r.key }

func (r *Store) Fetch(ctx context.Context) ([]byte, error) {
	v, err := r.c.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.ObserveStore("redis", "miss")
		return nil, fmt.Errorf("key %q: %w", r.key, domain.ErrNotFound)
	}
	if err != nil {
		observability.ObserveStore("redis", "error")
		return nil, err
	}
	observability.ObserveStore("redis", "read")
	return v, nil
}

// PutDocument replaces the stored document; it never expires.
func (r *Store) PutDocument(ctx context.Context, doc []byte) error {
	if err := r.c.Set(ctx, r.key, doc, 0).Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return err
	}
	observability.ObserveStore("redis", "write")
	return nil
}

func (r *Store) Close() error { return r.c.Close() }
