// Package metadata stores small key/value records in the CLI's local
// database. The session's bearer tokens live here.
package metadata

import (
	"context"
)

// Repository is a durable key/value slot. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
