package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/domain"
	"country_catalog/internal/shared"
)

// freeAddr returns a loopback address nothing is listening on.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func fileConfig(t *testing.T, path string) shared.Config {
	t.Helper()
	return shared.Config{
		Source:         shared.SourceFile,
		CatalogFile:    path,
		HTTPAddr:       freeAddr(t),
		LoadTimeout:    time.Second,
		RequestTimeout: time.Second,
	}
}

func TestRun_LoadFailureNeverListens(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "countries.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"cca2":`), 0o600))

	for name, path := range map[string]string{
		"missing":   filepath.Join(t.TempDir(), "absent.json"),
		"malformed": bad,
	} {
		t.Run(name, func(t *testing.T) {
			cfg := fileConfig(t, path)

			err := run(context.Background(), cfg)
			var le *domain.LoadError
			require.ErrorAs(t, err, &le)

			_, dialErr := net.DialTimeout("tcp", cfg.HTTPAddr, 200*time.Millisecond)
			assert.Error(t, dialErr, "listener must not be open after a failed load")
		})
	}
}

func TestBuildServer_ServesLoadedCatalog(t *testing.T) {
	cfg := fileConfig(t, "../../testdata/countries.json")

	srv, err := buildServer(context.Background(), cfg, observability.InitRegistry())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/countries/FR", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := fileConfig(t, "../../testdata/countries.json")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	require.Eventually(t, func() bool {
		c, err := net.DialTimeout("tcp", cfg.HTTPAddr, 100*time.Millisecond)
		if err != nil {
			return false
		}
		_ = c.Close()
		return true
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
