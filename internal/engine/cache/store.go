// Package cache implements the concurrent query cache of the resolver engine.
package cache

import (
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
	"go.trai.ch/zerr"
)

const shardCount = 64

type shard struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
}

// Store maps queries to cache entries.
// Keys are spread over independently locked shards so callers only contend on the shard
// holding their key. Entries are stored by value, so a reader always sees a whole entry.
type Store struct {
	shards [shardCount]shard
	log    ports.Logger
}

// NewStore creates an empty Store. Snapshot failures are reported to log.
func NewStore(log ports.Logger) *Store {
	s := &Store{log: log}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]domain.CacheEntry)
	}
	return s
}

func (s *Store) shardFor(query string) *shard {
	return &s.shards[xxhash.Sum64String(query)%shardCount]
}

// Lookup returns the entry cached for query.
func (s *Store) Lookup(query string) (domain.CacheEntry, bool) {
	sh := s.shardFor(query)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	entry, ok := sh.entries[query]
	return entry, ok
}

// Insert caches entry for query unless the query is already cached.
// It reports whether the entry was stored.
func (s *Store) Insert(query string, entry domain.CacheEntry) bool {
	sh := s.shardFor(query)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, exists := sh.entries[query]; exists {
		return false
	}
	sh.entries[query] = entry
	return true
}

// Clear removes every entry. Persisted snapshots are not touched.
func (s *Store) Clear() {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		clear(sh.entries)
		sh.mu.Unlock()
	}
}

// Len returns the number of cached queries.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}

// Entries returns a copy of the cache content.
func (s *Store) Entries() map[string]domain.CacheEntry {
	out := make(map[string]domain.CacheEntry, s.Len())
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for query, entry := range sh.entries {
			out[query] = entry
		}
		sh.mu.RUnlock()
	}
	return out
}

// LoadFrom populates the store from a persisted snapshot.
// Entries already present are kept. It returns false when there is no usable snapshot,
// in which case the store is left as it was.
func (s *Store) LoadFrom(snapshots ports.SnapshotStore) bool {
	entries, err := snapshots.Load()
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			s.log.Debug("no snapshot present on disk")
		} else {
			s.log.Error(zerr.Wrap(err, "snapshot load skipped"))
		}
		return false
	}

	for query, entry := range entries {
		s.Insert(query, entry)
	}
	return true
}

// SaveTo writes the full cache content to the snapshot store.
// Failures are logged and reported as false, never panicking.
func (s *Store) SaveTo(snapshots ports.SnapshotStore) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(zerr.With(domain.ErrSnapshotWriteFailed, "panic", r))
			ok = false
		}
	}()

	if err := snapshots.Save(s.Entries()); err != nil {
		s.log.Error(zerr.Wrap(err, "snapshot save failed"))
		return false
	}
	return true
}
