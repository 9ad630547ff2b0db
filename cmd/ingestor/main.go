package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"country_catalog/internal/adapters/observability"
	redisad "country_catalog/internal/adapters/redis"
	"country_catalog/internal/app"
	"country_catalog/internal/domain"
	"country_catalog/internal/shared"
	mysqlrepo "country_catalog/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg)
	stop()
	if err != nil {
		log.Fatal().Err(err).Msg("ingestion failed")
	}
}

func run(ctx context.Context, cfg shared.Config) error {
	src, closer, err := shared.OpenSource(ctx, cfg, cfg.IngestSource)
	if err != nil {
		return fmt.Errorf("open ingest source: %w", err)
	}
	defer closer.Close()

	log.Info().
		Str("source", src.Name()).
		Strs("sinks", cfg.Sinks).
		Int("workers", cfg.Workers).
		Msg("ingestor starting")

	// 2) sinks; nil interfaces disable a sink
	var records domain.RecordWriter
	var docs domain.DocumentWriter

	if cfg.HasSink(shared.SinkMySQL) {
		db, err := shared.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return fmt.Errorf("mysql unavailable: %w", err)
		}
		defer db.Close()
		log.Info().Msg("db ping ok")
		records = mysqlrepo.New(db)
	}
	if cfg.HasSink(shared.SinkRedis) {
		rs := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisKey)
		defer rs.Close()
		docs = rs
	}

	// 3) ingest
	ing := app.NewIngestionService(src, records, docs, cfg.Workers)
	rep, err := ing.Ingest(ctx)
	log.Info().
		Int("total", rep.Total).
		Int("skipped", rep.Skipped).
		Int("written", rep.Written).
		Int("failed", rep.Failed).
		Msg("ingestion completed")
	return err
}
