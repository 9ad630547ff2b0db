package shared_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country_catalog/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, shared.SourceFile, c.Source)
	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, 30*time.Second, c.LoadTimeout)
	assert.Equal(t, []string{"*"}, c.CORSOrigins)
	assert.True(t, c.HasSink(shared.SinkMySQL))
	assert.True(t, c.HasSink(shared.SinkRedis))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "redis")
	t.Setenv("INGEST_SINKS", "redis")
	t.Setenv("LOAD_TIMEOUT", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	c, err := shared.Load()
	require.NoError(t, err)
	assert.Equal(t, shared.SourceRedis, c.Source)
	assert.False(t, c.HasSink(shared.SinkMySQL))
	assert.Equal(t, 5*time.Second, c.LoadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSOrigins)
}

func TestLoad_RejectsUnknownSource(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "ftp")
	_, err := shared.Load()
	assert.ErrorContains(t, err, "CATALOG_SOURCE")
}

func TestLoad_RejectsUnknownSink(t *testing.T) {
	t.Setenv("INGEST_SINKS", "mysql,s3")
	_, err := shared.Load()
	assert.ErrorContains(t, err, "INGEST_SINKS")
}

func TestLoad_RejectsUnknownIngestSource(t *testing.T) {
	t.Setenv("INGEST_SOURCE", "redis")
	_, err := shared.Load()
	assert.ErrorContains(t, err, "INGEST_SOURCE")
}

func TestHasSink(t *testing.T) {
	c := shared.Config{IngestSource: "bogus", Sinks: []string{shared.SinkRedis}}
	assert.True(t, c.HasSink(shared.SinkRedis))
	assert.False(t, c.HasSink(shared.SinkMySQL))
	assert.False(t, shared.Config{}.HasSink(shared.SinkRedis))
}

func TestOpenSource(t *testing.T) {
	mr := miniredis.RunT(t)
	c := shared.Config{CatalogFile: "countries.json", RedisAddr: mr.Addr(), RedisKey: "k", UpstreamRPS: 1}
	ctx := context.Background()

	for kind, want := range map[string]string{
		shared.SourceFile:  "file:countries.json",
		shared.SourceRedis: "redis:k",
	} {
		src, closer, err := shared.OpenSource(ctx, c, kind)
		require.NoError(t, err, kind)
		assert.Equal(t, want, src.Name())
		assert.NoError(t, closer.Close())
	}

	src, _, err := shared.OpenSource(ctx, c, shared.SourceHTTP)
	require.NoError(t, err)
	assert.Contains(t, src.Name(), "restcountries.com")

	_, _, err = shared.OpenSource(ctx, c, "ftp")
	assert.Error(t, err)
}
