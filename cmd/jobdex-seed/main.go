// Command jobdex-seed loads job postings from a JSON file into the search index.
//
// Usage:
//
//	jobdex-seed -file jobs.json [-recreate] [-batch-size 100]
//
// The file holds a JSON array of creation payloads, the same shape POST /jobs
// accepts. Connection settings come from the config for ENV (default: local).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobdex/internal/config"
	dbRedis "github.com/kailas-cloud/jobdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/jobdex/internal/logger"
	jobrepo "github.com/kailas-cloud/jobdex/internal/repository/job"
	jobuc "github.com/kailas-cloud/jobdex/internal/usecase/job"
)

type options struct {
	file      string
	recreate  bool
	batchSize int
}

func parseFlags() options {
	opts := options{}
	flag.StringVar(&opts.file, "file", "", "path to a JSON array of job payloads")
	flag.BoolVar(&opts.recreate, "recreate", false, "drop and rebuild the index before loading")
	flag.IntVar(&opts.batchSize, "batch-size", 100, "payloads per batch")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()
	if opts.file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	if err := run(ctx, cfg, opts); err != nil {
		logger.Error("Seed failed", zap.Error(err))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, opts options) error {
	log := logpkg.FromContext(ctx)

	drafts, err := readDraftsFile(opts.file)
	if err != nil {
		return err
	}
	log.Info("Loaded payloads", zap.String("file", opts.file), zap.Int("count", len(drafts)))

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:       cfg.Search.Addrs,
		Username:    cfg.Search.Username,
		Password:    cfg.Search.Password,
		DB:          cfg.Search.DB,
		DialTimeout: time.Duration(cfg.Search.DialTimeoutSec) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("connect search engine: %w", err)
	}
	defer store.Close()

	repo := jobrepo.New(store, cfg.Search.Index, cfg.Search.KeyPrefix)
	if opts.recreate {
		if err := repo.RecreateIndex(ctx); err != nil {
			return fmt.Errorf("recreate index: %w", err)
		}
		log.Info("Index recreated", zap.String("index", cfg.Search.Index))
	}

	created, failed := seed(ctx, jobuc.New(repo), drafts, opts.batchSize)
	log.Info("Seed finished", zap.Int("created", created), zap.Int("failed", failed))
	if failed > 0 {
		return fmt.Errorf("%d of %d payloads failed", failed, len(drafts))
	}
	return nil
}
