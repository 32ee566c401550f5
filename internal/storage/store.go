package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no galaxy is stored under a key
var ErrNotFound = errors.New("galaxy not found")

// Store keeps encoded galaxy payloads by key. For files the key is a path;
// for the database and Redis backends it is the galaxy name.
type Store interface {
	Save(ctx context.Context, key string, payload []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
}
