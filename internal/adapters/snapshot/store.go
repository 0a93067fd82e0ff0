// Package snapshot persists the resolver cache to a flat JSON file.
package snapshot

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/zerr"
)

const formatVersion = 1

// fileFormat is the on-disk layout of a snapshot.
type fileFormat struct {
	Version int                          `json:"version"`
	Queries map[string]domain.CacheEntry `json:"queries"`
}

// FileStore implements ports.SnapshotStore on a single file.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: filepath.Clean(path)}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted entries.
func (s *FileStore) Load() (map[string]domain.CacheEntry, error) {
	//nolint:gosec // Path is cleaned and provided by trusted settings
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return map[string]domain.CacheEntry{}, nil
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSnapshotUnmarshalFailed.Error()), "path", s.path)
	}
	if file.Version != formatVersion {
		return nil, zerr.With(domain.ErrSnapshotUnmarshalFailed, "version", file.Version)
	}
	if file.Queries == nil {
		file.Queries = map[string]domain.CacheEntry{}
	}

	return file.Queries, nil
}

// Save replaces the file content with entries.
// Data goes to a temporary file in the same directory first and is renamed into place,
// so an interrupted save leaves the previous snapshot readable.
func (s *FileStore) Save(entries map[string]domain.CacheEntry) error {
	data, err := json.MarshalIndent(fileFormat{Version: formatVersion, Queries: entries}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotCreateFailed.Error()), "dir", dir)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return s.writeFailed(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return s.writeFailed(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return s.writeFailed(err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return s.writeFailed(err)
	}

	return nil
}

func (s *FileStore) writeFailed(err error) error {
	return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", s.path)
}
