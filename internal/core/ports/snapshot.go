package ports

import "go.trai.ch/turret/internal/core/domain"

// SnapshotStore persists the query cache as an opaque blob.
//
//go:generate go run go.uber.org/mock/mockgen -source=snapshot.go -destination=mocks/mock_snapshot.go -package=mocks
type SnapshotStore interface {
	// Load returns the persisted entries.
	// It returns domain.ErrSnapshotNotFound when nothing has been saved yet.
	Load() (map[string]domain.CacheEntry, error)

	// Save replaces the persisted entries.
	Save(entries map[string]domain.CacheEntry) error
}
