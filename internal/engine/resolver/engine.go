// Package resolver implements the resolution engine: a layered query cache in front of a
// bounded, retrying request/reply exchange with the remote resolver service.
package resolver

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
	"go.trai.ch/turret/internal/engine/cache"
)

// Engine resolves asset queries to filesystem paths.
// It is safe for concurrent use; only the cache is shared between callers.
type Engine struct {
	settings  domain.Settings
	transport ports.Transport
	snapshots ports.SnapshotStore
	log       ports.Logger
	cache     *cache.Store
	now       func() time.Time

	closeOnce sync.Once
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to stamp cache entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine. When the settings ask for it, the snapshot is loaded before the
// engine is returned, so it is complete before any concurrent resolution starts.
func New(
	settings domain.Settings,
	transport ports.Transport,
	snapshots ports.SnapshotStore,
	log ports.Logger,
	opts ...Option,
) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		settings:  settings,
		transport: transport,
		snapshots: snapshots,
		log:       log,
		cache:     cache.NewStore(log),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logf(e.log.Info, "created resolver (cache queries: %t, cache to disk: %t, read-only cache: %t, live resolves: %t)",
		settings.CacheQueries, settings.SavesSnapshot(), settings.ReadOnlyCache(), settings.AllowLiveResolves)

	if settings.LoadsSnapshot() && settings.CacheQueries {
		loaded := e.cache.LoadFrom(snapshots)
		e.logf(e.log.Info, "loading cache from %s: %t", settings.SnapshotPath(), loaded)
		if loaded {
			e.logf(e.log.Info, "cache holds %d queries", e.cache.Len())
		}
	}

	return e, nil
}

// Settings returns the settings the engine was built with.
func (e *Engine) Settings() domain.Settings {
	return e.settings
}

// Resolve returns the filesystem path for query.
// It never fails: unresolvable queries yield the configured default path or a sentinel.
func (e *Engine) Resolve(query string) string {
	return e.ResolveOutcome(query).Path
}

// ResolveExists reports whether query resolves to a real path.
// A default path returned for a blocked or failed query does not count.
func (e *Engine) ResolveExists(query string) bool {
	return e.ResolveOutcome(query).Exists()
}

// MatchesSchema reports whether path is an asset query.
func (e *Engine) MatchesSchema(path string) bool {
	return domain.MatchesSchema(path)
}

// ClearCache drops every cached query. The snapshot on disk is left alone until Close.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.logf(e.log.Info, "cache cleared")
}

// CachedQueries returns a copy of the cache content.
func (e *Engine) CachedQueries() map[string]domain.CacheEntry {
	return e.cache.Entries()
}

// Close flushes the cache to the snapshot when disk caching is enabled.
// Failures are logged; Close never panics and only acts once.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		if !e.settings.SavesSnapshot() || !e.settings.CacheQueries {
			return
		}
		if e.cache.SaveTo(e.snapshots) {
			e.logf(e.log.Info, "saved cache to %s", e.settings.SnapshotPath())
		}
	})
}

// ResolveOutcome resolves query and reports how the value was obtained.
func (e *Engine) ResolveOutcome(query string) domain.Resolution {
	decorated := domain.DecorateQuery(query, e.settings.Platform)

	for i := range e.settings.Retries {
		if i > 0 {
			e.logf(e.log.Debug, "retrying query %s: attempt %d of %d", decorated, i+1, e.settings.Retries)
		}

		if res, ok := e.fromCache(decorated); ok {
			return res
		}

		att := e.attempt(decorated)
		switch att.Kind {
		case domain.AttemptSuccess:
			return e.accept(decorated, att.Path)
		case domain.AttemptPermanentMiss:
			e.logf(e.log.Debug, "query %s not sent: %s", decorated, att.Reason)
			return domain.Resolution{Path: e.settings.FallbackOr(domain.UncachedQuery), Outcome: domain.OutcomeBlocked}
		case domain.AttemptTransient:
			e.logf(e.log.Warn, "query %s attempt %d failed: %s", decorated, i+1, att.Reason)
		}
	}

	return e.exhausted(decorated)
}

func (e *Engine) fromCache(query string) (domain.Resolution, bool) {
	if !e.settings.CacheQueries {
		return domain.Resolution{}, false
	}

	entry, ok := e.cache.Lookup(query)
	if !ok {
		return domain.Resolution{}, false
	}

	e.logf(e.log.Debug, "cached response for %s: %s", query, entry.ResolvedPath)
	if entry.IsNotFound() {
		return domain.Resolution{Path: e.settings.FallbackOr(domain.ResolveFailed), Outcome: domain.OutcomeMiss}, true
	}
	return domain.Resolution{Path: entry.ResolvedPath, Outcome: domain.OutcomeCacheHit}, true
}

// attempt performs one network round-trip and classifies the reply.
func (e *Engine) attempt(query string) domain.Attempt {
	if !e.settings.AllowLiveResolves {
		return domain.PermanentMiss("live resolution disabled")
	}

	reply, status := e.transport.Send(context.Background(), e.settings.Address(), []byte(query), e.settings.Timeout)
	if status != domain.SendOK {
		return domain.Transient(status.String())
	}

	path := string(reply)
	switch {
	case path == domain.NotFound:
		return domain.Transient("resolver answered " + domain.NotFound)
	case !domain.IsAbsolutePath(path):
		return domain.Transient(fmt.Sprintf("malformed reply %q", path))
	default:
		return domain.Success(path)
	}
}

// accept caches a live reply. When another caller cached the query first, its value wins
// and is returned so every caller observes the same resolution.
func (e *Engine) accept(query, path string) domain.Resolution {
	e.logf(e.log.Info, "received query response: %s | %s", query, path)

	if e.settings.CacheQueries && !e.cache.Insert(query, domain.NewCacheEntry(path, e.now())) {
		if entry, ok := e.cache.Lookup(query); ok && !entry.IsNotFound() {
			path = entry.ResolvedPath
		}
	}
	return domain.Resolution{Path: path, Outcome: domain.OutcomeResolved}
}

func (e *Engine) exhausted(query string) domain.Resolution {
	e.logf(e.log.Warn, "unable to resolve %s after %d attempts", query, e.settings.Retries)

	if e.settings.CacheQueries {
		e.cache.Insert(query, domain.NewCacheEntry(domain.NotFound, e.now()))
	}
	return domain.Resolution{Path: e.settings.FallbackOr(domain.ResolveFailed), Outcome: domain.OutcomeMiss}
}

func (e *Engine) logf(sink func(string), format string, args ...any) {
	sink(e.settings.Identity.ClientID + " resolver " + fmt.Sprintf(format, args...))
}
