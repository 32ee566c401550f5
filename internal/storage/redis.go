package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisPrefix = "starmap:galaxy:"

type RedisStore struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

func NewRedisStore(client redis.Cmdable, prefix string, logger *slog.Logger) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Save(ctx context.Context, name string, payload []byte) error {
	if err := s.client.Set(ctx, s.key(name), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to save galaxy %s: %w", name, err)
	}

	s.logger.Debug("Galaxy written",
		"component", "redis_store",
		"operation", "save",
		"key", s.key(name),
		"size_bytes", len(payload),
	)
	return nil
}

func (s *RedisStore) Load(ctx context.Context, name string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load galaxy %s: %w", name, err)
	}
	return payload, nil
}

func (s *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check galaxy %s: %w", name, err)
	}
	return n > 0, nil
}
