// Package app wires configuration, the local store, provider clients, and
// the services the CLI commands call.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/fikri/scorehub/external/apifootball"
	"github.com/fikri/scorehub/external/espnfeed"
	"github.com/fikri/scorehub/internal/cache"
	"github.com/fikri/scorehub/internal/config"
	"github.com/fikri/scorehub/internal/domain/catalog"
	"github.com/fikri/scorehub/internal/platform/kvstore"
	"github.com/fikri/scorehub/internal/platform/logging"
	"github.com/fikri/scorehub/internal/platform/resilience"
	"github.com/fikri/scorehub/internal/quota"
	"github.com/fikri/scorehub/internal/source"
	"github.com/fikri/scorehub/internal/usecase"
)

type App struct {
	Config   config.Config
	Logger   *logging.Logger
	KV       kvstore.KV
	Cache    *cache.Store
	Quota    *quota.Tracker
	Settings *usecase.SettingsService
	Resolver *usecase.ResolverService
	Snapshot *usecase.SnapshotService
	Warmer   *usecase.WarmService

	closer io.Closer
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}

	var kv kvstore.KV
	var closer io.Closer
	if cfg.StorePath == "" {
		logger.Debug("no store path configured, state will not survive this run")
		kv = kvstore.NewMemory()
	} else {
		store, err := kvstore.Open(ctx, cfg.StorePath)
		if err != nil {
			return nil, fmt.Errorf("open store at %s: %w", cfg.StorePath, err)
		}
		kv = store
		closer = store
	}

	cacheStore := cache.NewStore(kv, cfg.CacheTTL, logger)
	tracker := quota.NewTracker(kv, logger)
	settings := usecase.NewSettingsService(kv, cacheStore, logger)

	// The saved credential wins; the environment key covers first runs and CI.
	credential := func(ctx context.Context) string {
		if key := settings.Credential(ctx); key != "" {
			return key
		}
		return cfg.PrimaryKey
	}

	primaryClient := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.PrimaryBaseURL,
		Credential: credential,
		Timeout:    cfg.PrimaryTimeout,
		MaxRetries: cfg.PrimaryMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.PrimaryCircuitEnabled,
			FailureThreshold: cfg.PrimaryCircuitFailures,
			OpenTimeout:      cfg.PrimaryCircuitOpenFor,
			HalfOpenMaxReq:   cfg.PrimaryCircuitHalfOpenMax,
		},
	})
	secondaryClient := espnfeed.NewClient(espnfeed.ClientConfig{
		BaseURL:           cfg.SecondaryBaseURL,
		Timeout:           cfg.SecondaryTimeout,
		RequestsPerSecond: cfg.SecondaryRPS,
		Logger:            logger,
	})

	sources := []usecase.Source{
		source.NewPrimary(primaryClient, tracker, credential, logger),
		source.NewSecondary(secondaryClient, logger),
		source.NewCurated(source.NewGenerator(cfg.MockSeed)),
	}

	resolver := usecase.NewResolverService(cacheStore, tracker, sources, logger)
	snapshot := usecase.NewSnapshotService(resolver, cacheStore, logger)
	warmer := usecase.NewWarmService(resolver, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		KV:       kv,
		Cache:    cacheStore,
		Quota:    tracker,
		Settings: settings,
		Resolver: resolver,
		Snapshot: snapshot,
		Warmer:   warmer,
		closer:   closer,
	}, nil
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
