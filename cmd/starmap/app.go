package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"starmap/internal/galaxy"
	"starmap/internal/metrics"
	"starmap/internal/persistence"
	"starmap/internal/shared/config"
	"starmap/internal/storage"
	"starmap/internal/system"
	"starmap/internal/worker"
)

// app holds everything the commands share once configuration is loaded
type app struct {
	cfg       *config.Config
	seed      uint64
	logger    *slog.Logger
	collector *metrics.Collector
	service   *galaxy.Service
	repo      *storage.Repository
	close     func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("Starting starmap", "seed", seed, "storage", cfg.Storage.Backend)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	generator := system.NewGenerator()
	generator.MinPlanets = cfg.Generation.MinPlanets
	generator.MaxPlanets = cfg.Generation.MaxPlanets
	generator.MaxDraws = cfg.Generation.MaxDraws

	w := worker.New(generator, worker.Config{
		AttemptTimeout: cfg.Generation.AttemptTimeout,
		MaxAttempts:    cfg.Generation.MaxAttempts,
	}, seed, collector, logger)

	placement := rand.New(rand.NewPCG(seed, seed>>1|1))
	service := galaxy.NewService(galaxy.NewGenerator(w, placement, cfg.Generation.EagerScan, logger), w, logger)

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	return &app{
		cfg:       cfg,
		seed:      seed,
		logger:    logger,
		collector: collector,
		service:   service,
		repo:      storage.NewRepository(store, logger),
		close:     closeStore,
	}, nil
}

func (a *app) params() galaxy.Params {
	return galaxy.Params{
		Count:                a.cfg.Galaxy.SystemCount,
		ConnectionsPerSystem: a.cfg.Galaxy.ConnectionsPerSystem,
		Jitter:               a.cfg.Galaxy.Jitter,
		Radius:               a.cfg.Galaxy.Radius,
	}
}

// loadOrGenerate returns the galaxy stored under key, generating a new one
// when nothing is stored there. A corrupt payload is an error unless
// regenerateOnCorrupt is set.
func (a *app) loadOrGenerate(ctx context.Context, key string, regenerateOnCorrupt bool) (*galaxy.Galaxy, error) {
	logger := a.logger.With("component", "app", "operation", "load_or_generate", "key", key)

	g, err := a.repo.LoadGalaxy(ctx, key)
	switch {
	case err == nil:
		return g, nil
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("No saved galaxy, generating a new one")
	case errors.Is(err, persistence.ErrCorrupt) && regenerateOnCorrupt:
		logger.Warn("Saved galaxy is corrupt, generating a new one", "error", err)
	case errors.Is(err, persistence.ErrCorrupt):
		return nil, fmt.Errorf("%s cannot be loaded (pass --regenerate-on-corrupt to replace it): %w", key, err)
	default:
		return nil, err
	}

	return a.service.CreateGalaxy(ctx, a.params())
}
