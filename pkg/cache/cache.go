// Package cache stores rendered chart artifacts between CLI runs.
//
// Rendering a chart is cheap, but rasterizing it through rsvg-convert is
// not. The CLI keys each produced artifact by a hash of the row data and
// chart options so unchanged invocations are served from disk.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores a value with the given time-to-live. A ttl of zero means
	// the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey builds the cache key for one rendered artifact: the chart
// content hash (rows plus options) combined with the output format.
func ArtifactKey(chartHash, format string) string {
	return hashKey("artifact", chartHash, format)
}
