package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zoobzio/capitan"

	"github.com/couchcryptid/metar-etl/internal/adapter/cache"
	"github.com/couchcryptid/metar-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/metar-etl/internal/adapter/kafka"
	mqttadapter "github.com/couchcryptid/metar-etl/internal/adapter/mqtt"
	"github.com/couchcryptid/metar-etl/internal/codec"
	"github.com/couchcryptid/metar-etl/internal/config"
	"github.com/couchcryptid/metar-etl/internal/domain"
	"github.com/couchcryptid/metar-etl/internal/observability"
	"github.com/couchcryptid/metar-etl/internal/pipeline"
)

// source is a batch extractor that owns a connection.
type source interface {
	pipeline.BatchExtractor
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	signalLog := pipeline.LogSignals(logger)

	reader, err := newSource(cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to connect source", "source", cfg.Source, "error", err)
		os.Exit(1)
	}

	// Feeds republish the same report every cycle until the next one is issued.
	decoder := domain.MetarDecoder
	if cfg.DecodeCacheSize > 0 {
		decoder = cache.NewCachedDecoder(decoder, cfg.DecodeCacheSize, metrics)
		logger.Info("decode cache enabled", "size", cfg.DecodeCacheSize)
	}

	outCodec, err := codec.ForFormat(cfg.OutputFormat)
	if err != nil {
		logger.Error("invalid output format", "error", err)
		os.Exit(1)
	}

	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(decoder, outCodec, metrics, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, decoder, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	logger.Info("metar etl started",
		"source", cfg.Source,
		"sink_topic", cfg.KafkaSinkTopic,
		"output_format", outCodec.ContentType(),
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("source close error", "source", cfg.Source, "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	signalLog.Close()
	capitan.Shutdown()

	logger.Info("shutdown complete")
}

func newSource(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (source, error) {
	switch cfg.Source {
	case config.SourceMQTT:
		r := mqttadapter.NewReader(cfg, metrics, logger)
		if err := r.Connect(); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return kafkaadapter.NewReader(cfg, logger), nil
	}
}
