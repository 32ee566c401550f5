package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"starmap/internal/galaxy"
	"starmap/internal/persistence"
)

// Repository reads and writes whole galaxies through a Store
type Repository struct {
	store  Store
	logger *slog.Logger
}

func NewRepository(store Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, logger: logger}
}

// LoadGalaxy returns the galaxy stored under key. An absent key yields an
// error matching ErrNotFound; an unreadable payload one matching
// persistence.ErrCorrupt.
func (r *Repository) LoadGalaxy(ctx context.Context, key string) (*galaxy.Galaxy, error) {
	logger := r.logger.With("component", "galaxy_repository", "operation", "load", "key", key)

	payload, err := r.store.Load(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Debug("No saved galaxy")
		}
		return nil, err
	}

	g, err := persistence.Decode(payload)
	if err != nil {
		logger.Warn("Saved galaxy is corrupt", "error", err)
		return nil, fmt.Errorf("failed to decode galaxy %s: %w", key, err)
	}

	logger.Info("Galaxy loaded", "systems", g.Len(), "scanned", g.ScannedCount())
	return g, nil
}

func (r *Repository) SaveGalaxy(ctx context.Context, key string, g *galaxy.Galaxy) error {
	logger := r.logger.With("component", "galaxy_repository", "operation", "save", "key", key)

	payload, err := persistence.Encode(g)
	if err != nil {
		return err
	}

	if err := r.store.Save(ctx, key, payload); err != nil {
		logger.Error("Failed to save galaxy", "error", err)
		return err
	}

	logger.Info("Galaxy saved", "systems", g.Len(), "size_bytes", len(payload))
	return nil
}

func (r *Repository) Exists(ctx context.Context, key string) (bool, error) {
	return r.store.Exists(ctx, key)
}
