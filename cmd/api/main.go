package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pulsewatch/internal/auth"
	"pulsewatch/internal/config"
	"pulsewatch/internal/handler"
	"pulsewatch/internal/logger"
	"pulsewatch/internal/metrics"
	"pulsewatch/internal/observability"
	"pulsewatch/internal/router"
	"pulsewatch/internal/service"
	"pulsewatch/internal/storage"
)

const serviceName = "pulsewatch-api"

func main() {
	l := logger.NewJSONLogger()
	slog.SetDefault(l)

	metrics.Init()

	if err := godotenv.Load(); err != nil {
		l.Debug("no .env file loaded", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		l.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()

	if cfg.OTLPEndpoint != "" {
		tracerShutdown, err := observability.SetupTracing(ctx, serviceName, cfg.OTLPEndpoint, l)
		if err != nil {
			l.Error("failed to initialize tracing", slog.Any("error", err))
			os.Exit(1)
		}
		defer tracerShutdown()
	}

	verifier, err := auth.NewVerifier(cfg.JWTPublicKey)
	if err != nil {
		l.Error("failed to load JWT public key", slog.Any("error", err))
		os.Exit(1)
	}

	dbPool, err := storage.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		l.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbPool.Close()

	store, err := storage.NewPostgresStorage(ctx, dbPool)
	if err != nil {
		l.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}

	monitorSvc := service.NewMonitorService(store, l)
	healthSvc := service.NewHealthService(store, l)

	// One-time guarded init keeps validator creation off the request path.
	validator, err := monitorSvc.EnsureLocalValidator(ctx)
	if err != nil {
		l.Error("failed to ensure local validator", slog.Any("error", err))
		os.Exit(1)
	}
	l.Info("local validator ready", slog.String("id", validator.ID))

	websiteHandler := handler.NewWebsiteHandler(monitorSvc, l)
	healthHandler := handler.NewHealthHandler(healthSvc, l)

	r := router.NewRouter(websiteHandler, healthHandler, verifier)
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		l.Info("server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error("failed to start server", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	l.Info("shutting down server...")

	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxTimeout); err != nil {
		l.Error("shutdown failed", slog.Any("error", err))
	} else {
		l.Info("server exited cleanly")
	}
}
