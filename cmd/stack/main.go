package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"stack/internal/config"
	"stack/internal/core"
	"stack/internal/forecast"
	apphttp "stack/internal/http"
	"stack/internal/kvstore"
	"stack/internal/ledger"
	applog "stack/internal/log"
	"stack/internal/services"
	"stack/internal/snapshot"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := kvstore.Open(ctx, kvstore.Config{
		Type:         kvstore.BackendType(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		PostgresURL:  cfg.PostgresURL,
	})
	if err != nil {
		logger.Error("Failed to initialize autosave store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer store.Close()

	snaps, err := snapshot.NewManager(cfg.SnapshotsDir)
	if err != nil {
		logger.Error("Failed to initialize snapshot manager", applog.FieldError, err, "dir", cfg.SnapshotsDir)
		os.Exit(1)
	}

	cadence, err := forecast.NewCadence(cfg.PaycheckStart(), cfg.PaycheckInterval())
	if err != nil {
		logger.Error("Invalid paycheck cadence", applog.FieldError, err)
		os.Exit(1)
	}

	threshold, err := core.ParseAmount(cfg.LowBalanceThreshold)
	if err != nil {
		logger.Error("Invalid low balance threshold", applog.FieldError, err, "value", cfg.LowBalanceThreshold)
		os.Exit(1)
	}

	tracker := services.NewTracker(
		ledger.New(),
		store,
		snaps,
		cadence,
		threshold,
		logger.WithComponent(applog.ComponentTracker),
	)
	tracker.Load(ctx)

	srv := apphttp.NewServer(":"+cfg.Port, tracker)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting stack server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
		case <-gctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
