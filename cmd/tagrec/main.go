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

	"github.com/kailas-cloud/tagrec/internal/config"
	"github.com/kailas-cloud/tagrec/internal/domain/strategy"
	logpkg "github.com/kailas-cloud/tagrec/internal/logger"
	"github.com/kailas-cloud/tagrec/internal/metrics"
	"github.com/kailas-cloud/tagrec/internal/repository/backend"
	snapshotrepo "github.com/kailas-cloud/tagrec/internal/repository/snapshot"
	"github.com/kailas-cloud/tagrec/internal/scheduler"
	chiTransport "github.com/kailas-cloud/tagrec/internal/transport/chi"
	"github.com/kailas-cloud/tagrec/internal/usecase/health"
	"github.com/kailas-cloud/tagrec/internal/usecase/modelbuild"
	"github.com/kailas-cloud/tagrec/internal/usecase/profile"
	"github.com/kailas-cloud/tagrec/internal/usecase/scoring"
	"github.com/kailas-cloud/tagrec/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tagrec API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("profile_strategy", cfg.Model.ProfileStrategy),
	)

	ctx := context.Background()

	store, err := backend.Open(ctx, cfg.Database, cfg.Storage.KeyPrefix)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register model metrics explicitly (no init())
	metrics.RegisterModelMetrics()

	// Model lifecycle
	var snapshots modelbuild.SnapshotStore
	if cfg.Model.SnapshotEnabled() {
		snapshots = snapshotrepo.New(store.KV, cfg.Storage.KeyPrefix, metrics.SnapshotCacheTotal, logger)
	}
	builder := modelbuild.NewBuilder(store.Tags, cfg.Model.BuildWorkers, logger)
	manager := modelbuild.NewManager(builder, snapshots, logger)

	// A failed first build leaves the API up; scoring answers 503 until a rebuild succeeds.
	if meta, err := manager.Warm(ctx); err != nil {
		logger.Error("Initial model build failed", zap.Error(err))
	} else {
		logger.Info("Model ready",
			zap.Int("version", meta.Version),
			zap.Int("items", meta.ItemCount),
			zap.Int("tags", meta.TagCount),
		)
	}

	strat, err := strategy.Parse(cfg.Model.ProfileStrategy)
	if err != nil {
		logger.Fatal("Invalid profile strategy", zap.Error(err))
	}
	profiles, err := profile.New(strat, cfg.Model.RatingThreshold)
	if err != nil {
		logger.Fatal("Failed to create profile builder", zap.Error(err))
	}
	scoringSvc := scoring.New(store.Ratings, manager, profiles, strat)
	healthSvc := health.New(store, manager)

	sched := scheduler.New(manager, logger).
		WithTimeout(time.Duration(cfg.Model.RebuildTimeout) * time.Second)
	if err := sched.Schedule(cfg.Model.RebuildCron); err != nil {
		logger.Fatal("Invalid rebuild schedule", zap.Error(err))
	}
	sched.Start()

	server := chiTransport.NewServer(scoringSvc, manager, healthSvc, logger).
		WithMaxCandidates(cfg.HTTP.MaxCandidates)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chiTransport.NewRouter(server, cfg.Auth.APIKeys, logger),
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
	sched.Stop(shutdownCtx)

	logger.Info("Server stopped gracefully")
}
