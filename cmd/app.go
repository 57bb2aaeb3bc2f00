package cmd

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/seo-boostpro/backend/config"
	"github.com/seo-boostpro/backend/extractor"
	"github.com/seo-boostpro/backend/jobs"
	"github.com/seo-boostpro/backend/llm"
	"github.com/seo-boostpro/backend/logging"
	"github.com/seo-boostpro/backend/optimizer"
	"github.com/seo-boostpro/backend/pagespeed"
	"github.com/seo-boostpro/backend/stats"
)

// app holds the wired services shared by serve and audit
type app struct {
	cfg         *config.Config
	logger      zerolog.Logger
	storage     *stats.Storage
	fetcher     *extractor.Fetcher
	service     *optimizer.Service
	memoryStore *jobs.MemoryStore
	redis       *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	envLoaded := config.LoadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty)
	if !envLoaded {
		logger.Info().Msg("No .env file found, using environment variables")
	}

	storage, err := stats.NewStorage(cfg.DataDir, stats.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats storage: %w", err)
	}

	a := &app{cfg: cfg, logger: logger, storage: storage}

	a.fetcher = extractor.NewFetcher(
		extractor.WithTimeout(cfg.Fetch.Timeout),
		extractor.WithUserAgent(cfg.Fetch.UserAgent),
		extractor.WithMaxLinkChecks(cfg.Fetch.MaxLinkChecks),
		extractor.WithLinkChecking(cfg.Fetch.CheckLinks),
		extractor.WithCacheRecorder(storage),
		extractor.WithLogger(logger),
	)

	psClient, err := pagespeed.New(ctx, cfg.PageSpeed.APIKey, cfg.PageSpeed.Timeout)
	if err != nil {
		a.close()
		return nil, err
	}

	store, err := a.jobStore(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	opts := []optimizer.Option{
		optimizer.WithFetcher(a.fetcher),
		optimizer.WithPageSpeed(psClient),
		optimizer.WithJobStore(store),
		optimizer.WithRecorder(storage),
		optimizer.WithLogger(logger),
		optimizer.WithCompareLimit(cfg.CompareLimit),
		optimizer.WithJobTimeout(cfg.JobTimeout),
	}
	if cfg.AIEnabled() {
		opts = append(opts, optimizer.WithGenerator(
			llm.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout),
		))
		logger.Info().Str("model", cfg.OpenAI.Model).Msg("AI generation enabled")
	} else {
		logger.Info().Msg("No OpenAI key configured, using rule-based generation")
	}
	a.service = optimizer.New(opts...)

	return a, nil
}

func (a *app) jobStore(ctx context.Context) (jobs.Store, error) {
	if a.cfg.Redis.Addr == "" {
		a.memoryStore = jobs.NewMemoryStore(a.cfg.JobTTL)
		return a.memoryStore, nil
	}

	a.redis = jobs.NewRedisClient(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
	store := jobs.NewRedisStore(a.redis, a.cfg.JobTTL)
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis unavailable at %s: %w", a.cfg.Redis.Addr, err)
	}
	a.logger.Info().Str("addr", a.cfg.Redis.Addr).Msg("Using Redis job store")
	return store, nil
}

// maintain runs periodic cache and statistics cleanup
func (a *app) maintain() {
	removedLinks := a.fetcher.Cleanup()
	removedJobs := 0
	if a.memoryStore != nil {
		removedJobs = a.memoryStore.Cleanup()
	}
	a.storage.Cleanup(a.cfg.RetainMonths)
	a.logger.Debug().Int("links", removedLinks).Int("jobs", removedJobs).Msg("maintenance finished")
}

// close waits for background jobs and flushes statistics
func (a *app) close() {
	if a.service != nil {
		a.service.Wait()
	}
	if err := a.storage.Shutdown(); err != nil {
		a.logger.Error().Err(err).Msg("failed to flush statistics")
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
