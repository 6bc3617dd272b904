// cmd/gateway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prediction-gateway/internal/common/config"
	"prediction-gateway/internal/common/logger"
	"prediction-gateway/internal/common/observability"
	"prediction-gateway/internal/gateway"
	"prediction-gateway/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zapBoot := logger.New("info", "console")
		zapBoot.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting prediction gateway...",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// Fail fast before serving traffic: an incomplete scoring configuration
	// means every /predict would fail anyway.
	if problems := cfg.Problems(); len(problems) > 0 {
		for _, p := range problems {
			zapLog.Error("configuration error", zap.String("problem", p))
		}
		zapLog.Fatal("invalid configuration, refusing to start")
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing := observability.NewTracing(cfg.App.Name, cfg.Tracing.JaegerURL)
	defer tracing.Shutdown()

	schemaOpts := []gateway.SchemaOption{}
	if cfg.Features.DefaultsSatisfyPresence {
		schemaOpts = append(schemaOpts, gateway.WithDefaultsSatisfyPresence())
	}
	schema := gateway.NewFeatureSchema(cfg.Features.Names, cfg.Features.Defaults, schemaOpts...)

	invoker := gateway.NewInvoker(cfg.Model.EndpointURL, cfg.Model.AuthToken, cfg.Model.Timeout(), log)
	gw := gateway.New(schema, invoker, log, gateway.WithTracing(tracing))

	srv := server.New(cfg, gw, obs, log)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: srv.Handler(),
	}

	go func() {
		zapLog.Info("HTTP server listening",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("modelEndpoint", cfg.Model.EndpointURL),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Prediction gateway stopped gracefully")
}
