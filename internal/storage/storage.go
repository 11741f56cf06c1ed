// Package storage provides the key-value persistence layer the plan
// repository is built on. Values are opaque strings; callers own the
// serialization format.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key doesn't exist.
var ErrNotFound = errors.New("not found")

// Store is a flat key-value store. No transactions, no expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Close() error
}
