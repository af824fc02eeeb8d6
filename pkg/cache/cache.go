// Package cache stores computed layouts and community assignments.
//
// # Backends
//
//   - [FileCache]: sharded JSON files under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the server
//   - [NullCache]: stores nothing, for --no-cache and tests
//
// All backends implement [Cache]. Keys come from a [Keyer] so that every
// input that changes a result also changes its key.
//
// Only reproducible results are cached: a layout computed with a random
// seed differs on every run and is never stored.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ClustersTTL = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
