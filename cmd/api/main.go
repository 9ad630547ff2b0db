package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	server "country_catalog/internal/adapters/http_server"
	"country_catalog/internal/adapters/observability"
	"country_catalog/internal/app"
	"country_catalog/internal/shared"
	"country_catalog/internal/storage/memory"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("api failed")
	}
}

// run loads the catalog, then serves until ctx is done. A failed load
// returns before any listener is created.
func run(ctx context.Context, cfg shared.Config) error {
	reg := observability.InitRegistry()

	httpSrv, err := buildServer(ctx, cfg, reg)
	if err != nil {
		return err
	}
	observability.Serve(cfg.MetricsAddr, reg)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

// buildServer loads the catalog and wires the router. It never listens.
func buildServer(ctx context.Context, cfg shared.Config, reg *prometheus.Registry) (*http.Server, error) {
	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	src, closer, err := shared.OpenSource(loadCtx, cfg, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("open catalog source %s: %w", cfg.Source, err)
	}
	store, err := memory.Load(loadCtx, src)
	_ = closer.Close()
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", src.Name()).Int("records", store.Len()).Msg("catalog loaded")

	srv := server.New(server.Options{RequestTimeout: cfg.RequestTimeout, CORSOrigins: cfg.CORSOrigins})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: app.NewQueryService(store)})

	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}, nil
}
