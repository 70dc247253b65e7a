package common

import (
	"strings"
	"time"

	"khola-chithi/engine/internal/constants"
	"khola-chithi/engine/internal/metrics"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// GetOrSet retrieves a value from cache, or loads it using the loader function if not found
	GetOrSet(key string, duration time.Duration, loader func() (any, error)) (interface{}, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// cacheKeyPrefix maps a cache key to its known prefix for metric labels.
// Session ids and similar high-cardinality suffixes must not become labels.
func cacheKeyPrefix(key string) string {
	for _, p := range []constants.CachePrefix{
		constants.CachePrefixAdCatalog,
		constants.CachePrefixSettings,
		constants.CachePrefixSession,
	} {
		if strings.HasPrefix(key, string(p)) {
			return string(p)
		}
	}
	return "other"
}

func recordCacheHit(key string) {
	metrics.Default().CacheHitsTotal.WithLabelValues(cacheKeyPrefix(key)).Inc()
}

func recordCacheMiss(key string) {
	metrics.Default().CacheMissesTotal.WithLabelValues(cacheKeyPrefix(key)).Inc()
}
