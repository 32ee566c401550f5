package storage

import (
	"context"
	"fmt"
	"log/slog"

	"starmap/internal/shared/config"
	"starmap/internal/shared/database"
	"starmap/internal/shared/redis"
)

// Open connects the backend selected by cfg.Storage.Backend. The returned
// close function releases its connections.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func() error, error) {
	logger = logger.With("component", "storage", "operation", "open", "backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.StorageBackendFile:
		logger.Debug("Using file storage")
		return NewFileStore(logger), func() error { return nil }, nil

	case config.StorageBackendPostgres:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return NewPostgresStore(db, logger), db.Close, nil

	case config.StorageBackendRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client, cfg.Redis.KeyPrefix, logger), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
