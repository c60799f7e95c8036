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

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/config"
	dbRedis "github.com/kailas-cloud/jobdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/jobdex/internal/logger"
	"github.com/kailas-cloud/jobdex/internal/metrics"
	jobrepo "github.com/kailas-cloud/jobdex/internal/repository/job"
	chiTransport "github.com/kailas-cloud/jobdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/jobdex/internal/usecase/health"
	jobuc "github.com/kailas-cloud/jobdex/internal/usecase/job"
	"github.com/kailas-cloud/jobdex/internal/version"
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

	logger.Info("Starting jobdex API server",
		zap.String("version", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("search_addrs", cfg.Search.Addrs),
		zap.String("search_index", cfg.Search.Index),
	)

	storeCfg := dbRedis.Config{
		Addrs:       cfg.Search.Addrs,
		Username:    cfg.Search.Username,
		Password:    cfg.Search.Password,
		DB:          cfg.Search.DB,
		DialTimeout: time.Duration(cfg.Search.DialTimeoutSec) * time.Second,
	}

	// The engine being down is not fatal: the store dials again on first use.
	store, err := dbRedis.NewStore(storeCfg)
	if err != nil {
		logger.Warn("Search engine unreachable at startup, connecting lazily", zap.Error(err))
		store, err = dbRedis.NewLazyStore(storeCfg)
		if err != nil {
			logger.Fatal("Failed to create search store", zap.Error(err))
		}
	}
	defer store.Close()

	metrics.RegisterSearchMetrics()

	repo := jobrepo.New(store, cfg.Search.Index, cfg.Search.KeyPrefix).
		WithDecodeFailures(metrics.DecodeFailuresTotal)
	jobSvc := jobuc.New(repo).
		WithPagination(cfg.Pagination.DefaultPageSize, cfg.Pagination.MaxPageSize)
	healthSvc := healthuc.New(store, repo).WithEnsurer(repo)

	ctx := context.Background()
	readiness := time.Duration(cfg.Search.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, readiness); err != nil {
		logger.Warn("Search engine not ready, index will be ensured on first use", zap.Error(err))
	} else if err := jobSvc.EnsureIndex(ctx); err != nil {
		logger.Warn("Failed to ensure index at startup", zap.Error(err))
	} else {
		logger.Info("Search index ready", zap.String("index", cfg.Search.Index))
	}

	server := chiTransport.NewServer(jobuc.NewInstrumented(jobSvc), healthSvc).
		WithInfo(cfg.API.Title, cfg.API.DocsURL)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Request-ID", "Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware())
	chiTransport.Handler(server, chiTransport.ServerOptions{
		BaseRouter:       r,
		WriteMiddlewares: []func(http.Handler) http.Handler{chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys)},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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
