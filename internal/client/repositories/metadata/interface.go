// Package metadata is the client's persistent key-value store: a single
// SQLite table of opaque values keyed by name. It survives restarts and is
// read synchronously when the session starts.
package metadata

import (
	"context"
)

// Repository stores opaque values by key. Get reports absence with
// ok == false rather than an error.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}
