// Package cache provides a small byte cache used by the font downloader.
//
// Downloaded font files are kept in the user's font directories; the cache
// additionally stores the raw HTTP responses so that a cleared font directory
// can be repopulated without network access. Entries carry an optional TTL.
package cache

import (
	"context"
	"time"
)

// Cache stores raw bytes under string keys with optional expiration.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and still fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
