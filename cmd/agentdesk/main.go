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

	"go.uber.org/zap"

	"github.com/kailas-cloud/agentdesk/internal/config"
	"github.com/kailas-cloud/agentdesk/internal/db"
	dbRedis "github.com/kailas-cloud/agentdesk/internal/db/redis"
	logpkg "github.com/kailas-cloud/agentdesk/internal/logger"
	"github.com/kailas-cloud/agentdesk/internal/metrics"
	settingsrepo "github.com/kailas-cloud/agentdesk/internal/repository/settings"
	chiTransport "github.com/kailas-cloud/agentdesk/internal/transport/chi"
	healthuc "github.com/kailas-cloud/agentdesk/internal/usecase/health"
	settingsuc "github.com/kailas-cloud/agentdesk/internal/usecase/settings"
	"github.com/kailas-cloud/agentdesk/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, logpkg.Options{
		Level:   cfg.Logging.Level,
		Service: "agentdesk",
		Version: version.Version,
	})
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting agentdesk API server",
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Strings("storage_addrs", cfg.Storage.Addrs),
		zap.Bool("auth_enabled", len(cfg.Auth.APIKeys) > 0),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSettingsMetrics()

	ctx := context.Background()

	// Snapshot store is optional: the memory driver keeps settings in-process only.
	var (
		store db.Store
		repo  settingsuc.Repository
	)
	if cfg.Storage.Persistent() {
		store, err = openStore(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to open settings storage", zap.Error(err))
		}
		defer store.Close()
		logger.Info("Connected to database")

		snapshots := settingsrepo.New(store, cfg.Storage.KeyPrefix)
		logger.Info("Settings snapshots enabled", zap.String("key", snapshots.Key()))
		repo = snapshots
	}

	settingsSvc := settingsuc.New(settingsuc.NewStore(), repo, logger)
	if err := settingsSvc.Restore(ctx); err != nil {
		logger.Fatal("Failed to restore settings", zap.Error(err))
	}

	// Pass a nil interface, not a typed nil pointer, when there is no database.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(settingsSvc, pinger)

	server := chiTransport.NewServer(settingsSvc, healthSvc, logger)
	handler := chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openStore connects to Redis or Valkey and waits until it answers PING.
// Both drivers speak the same protocol for the snapshot commands.
func openStore(ctx context.Context, cfg config.StorageConfig) (db.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
	}
	return store, nil
}
