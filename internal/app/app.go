// Package app implements the application layer for turret.
package app

import (
	"context"
	"errors"
	"runtime"

	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports"
	"go.trai.ch/turret/internal/engine/resolver"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	engine    *resolver.Engine
	snapshots ports.SnapshotStore
	workers   int
}

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(engine *resolver.Engine, snapshots ports.SnapshotStore) *App {
	return &App{
		engine:    engine,
		snapshots: snapshots,
		workers:   runtime.NumCPU(),
	}
}

// WithWorkers sets how many queries ResolveAll resolves at once.
func (a *App) WithWorkers(n int) *App {
	if n > 0 {
		a.workers = n
	}
	return a
}

// Result pairs a query with its resolution.
type Result struct {
	Query string
	domain.Resolution
}

// ResolveAll resolves queries concurrently and returns the results in input order.
// The engine blocks per attempt, so callers get parallelism from the worker limit here.
// Cancelling ctx stops queries that have not started yet.
func (a *App) ResolveAll(ctx context.Context, queries []string) ([]Result, error) {
	if len(queries) == 0 {
		return nil, domain.ErrNoQueries
	}

	results := make([]Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i, query := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Query: query, Resolution: a.engine.ResolveOutcome(query)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "resolution interrupted")
	}
	return results, nil
}

// Exists reports whether query resolves to a real path.
func (a *App) Exists(query string) bool {
	return a.engine.ResolveExists(query)
}

// Matches reports whether path is an asset query.
func (a *App) Matches(path string) bool {
	return a.engine.MatchesSchema(path)
}

// ClearCache drops the in-memory cache.
func (a *App) ClearCache() {
	a.engine.ClearCache()
}

// SnapshotPath returns where this client's snapshot lives.
func (a *App) SnapshotPath() string {
	return a.engine.Settings().SnapshotPath()
}

// Snapshot returns the persisted entries. A missing snapshot yields an empty map.
func (a *App) Snapshot() (map[string]domain.CacheEntry, error) {
	entries, err := a.snapshots.Load()
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return map[string]domain.CacheEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

// Close flushes the engine cache to disk when configured.
func (a *App) Close() {
	a.engine.Close()
}
