// Package domain holds the core types of the turret resolver: cache entries, settings and
// the sentinel values exchanged with the resolver service.
package domain

import "time"

const (
	// NotFound is the reply the resolver service sends for an unknown query.
	// It is also cached after retries are exhausted.
	NotFound = "NOT_FOUND"

	// UncachedQuery is returned when live resolution is disabled and the cache misses.
	UncachedQuery = "uncached_query"

	// ResolveFailed is returned when every attempt failed and no default path is configured.
	ResolveFailed = "Unable to parse query"
)

// CacheEntry is a resolved query as held by the cache and the snapshot.
type CacheEntry struct {
	ResolvedPath string `json:"resolved_path"`
	Timestamp    int64  `json:"timestamp"`
}

// NewCacheEntry stamps path with the given resolution time.
func NewCacheEntry(path string, at time.Time) CacheEntry {
	return CacheEntry{ResolvedPath: path, Timestamp: at.Unix()}
}

// IsNotFound reports whether the entry records a confirmed miss.
func (e CacheEntry) IsNotFound() bool {
	return e.ResolvedPath == NotFound
}

// ResolvedAt returns the resolution time of the entry.
func (e CacheEntry) ResolvedAt() time.Time {
	return time.Unix(e.Timestamp, 0)
}
