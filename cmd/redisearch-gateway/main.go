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

	"github.com/kailas-cloud/redisearch/internal/config"
	"github.com/kailas-cloud/redisearch/internal/db"
	"github.com/kailas-cloud/redisearch/internal/db/instrumented"
	dbRedis "github.com/kailas-cloud/redisearch/internal/db/redis"
	"github.com/kailas-cloud/redisearch/internal/index"
	logpkg "github.com/kailas-cloud/redisearch/internal/logger"
	"github.com/kailas-cloud/redisearch/internal/metrics"
	chiTransport "github.com/kailas-cloud/redisearch/internal/transport/chi"
	"github.com/kailas-cloud/redisearch/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting redisearch gateway",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Int("indexes", len(cfg.Indexes)),
	)

	redisStore, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	var store db.Store = redisStore
	var recorder index.Recorder
	metrics.RegisterHTTPMetrics()
	if cfg.Metrics.Enabled {
		metrics.RegisterEngineMetrics()
		store = instrumented.New(redisStore, logger)
		recorder = metrics.ReindexRecorder{}
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	serializers, err := declareIndexes(ctx, cfg, store, redisStore, recorder, logger)
	if err != nil {
		logger.Fatal("Failed to declare indexes", zap.Error(err))
	}

	server := chiTransport.NewServer(index.Default, store, chiTransport.Config{
		DefaultLimit:       cfg.Search.DefaultLimit,
		MaxLimit:           cfg.Search.MaxLimit,
		SpellcheckDistance: cfg.Search.SpellcheckDistance,
		APIKeys:            cfg.Auth.APIKeys,
		Serializers:        serializers,
	}, logger)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      server.Routes(),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
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
