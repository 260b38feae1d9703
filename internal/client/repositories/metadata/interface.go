// Package metadata is the durable key/value store behind the persisted
// session. Values are opaque bytes; callers choose the encoding.
package metadata

import (
	"context"
)

// Repository stores small values by key. Get returns (nil, nil) for a
// missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
