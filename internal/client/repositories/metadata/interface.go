// Package metadata is the local key/value table of the client database.
// It backs the persistent credential store.
package metadata

import (
	"context"
)

// Repository stores opaque byte values by string key.
// Get returns (nil, nil) for a missing key; Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
