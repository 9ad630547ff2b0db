package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"country_catalog/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("redis", "read")
	observability.SetRecordsLoaded(250)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, want := range []string{
		"catalog_http_requests_total",
		"catalog_store_events_total",
		"catalog_records_loaded 250",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	l := observability.NewLogger("prod", "not-a-level")
	if got := l.GetLevel().String(); got != "info" {
		t.Fatalf("expected info level, got %s", got)
	}
	l = observability.NewLogger("dev", "debug")
	if got := l.GetLevel().String(); got != "debug" {
		t.Fatalf("expected debug level, got %s", got)
	}
}
