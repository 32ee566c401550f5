package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"starmap/internal/shared/database"
)

type PostgresStore struct {
	db     database.Executor
	logger *slog.Logger
}

func NewPostgresStore(db database.Executor, logger *slog.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

func (s *PostgresStore) Save(ctx context.Context, name string, payload []byte) error {
	logger := s.logger.With("component", "postgres_store", "operation", "save", "name", name)

	query := `
		INSERT INTO galaxies (name, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := s.db.ExecContext(ctx, query, name, payload); err != nil {
		return fmt.Errorf("failed to save galaxy %s: %w", name, err)
	}

	logger.Debug("Galaxy written", "size_bytes", len(payload))
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM galaxies WHERE name = $1", name).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load galaxy %s: %w", name, err)
	}
	return payload, nil
}

func (s *PostgresStore) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM galaxies WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check galaxy %s: %w", name, err)
	}
	return exists, nil
}
