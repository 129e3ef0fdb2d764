package store

import (
	"context"
	"errors"
)

var (
	// ErrKeyNotFound is returned by Get when the key has never been written.
	ErrKeyNotFound = errors.New("store: key not found")
	// ErrInvalidConfig is returned when a backend is constructed with bad settings.
	ErrInvalidConfig = errors.New("store: invalid configuration")
)

// Store is the opaque string key-value port every service persists through.
// Values are whole documents; callers read, mutate in memory and write back.
// There are no transactions and no multi-key atomicity.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}
