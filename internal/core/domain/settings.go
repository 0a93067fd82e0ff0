package domain

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/zerr"
)

// Log output formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

const (
	// DefaultServerHost is the resolver service host used when none is configured.
	DefaultServerHost = "localhost"
	// DefaultServerPort is the resolver service port used when none is configured.
	DefaultServerPort = 5555
	// DefaultTimeout bounds a single query attempt.
	DefaultTimeout = 60 * time.Second
	// DefaultRetries is the number of attempts made before giving up.
	DefaultRetries = 50
	// DefaultClientID names the client when the host tool does not.
	DefaultClientID = "default"
	// SnapshotExt is the file extension of persisted snapshots.
	SnapshotExt = ".turretcache"
)

// ClientIdentity scopes one engine instance.
type ClientIdentity struct {
	ClientID  string
	SessionID string
}

// Settings is the immutable configuration of one resolver engine.
type Settings struct {
	Identity ClientIdentity

	ServerHost string
	ServerPort int
	Timeout    time.Duration
	Retries    int

	// CacheQueries enables the in-memory query cache.
	CacheQueries bool
	// AllowLiveResolves permits network round-trips on cache misses.
	AllowLiveResolves bool
	// CacheToDisk loads the snapshot at start and saves it at close.
	CacheToDisk bool
	// CacheDir is where derived snapshot files live.
	CacheDir string
	// FixedSnapshotPath selects read-only cache mode: the snapshot is loaded and never saved.
	FixedSnapshotPath string
	// DefaultPath is returned instead of a sentinel when a query cannot be resolved.
	DefaultPath string
	// Platform is appended to every query as a qualifier.
	Platform string

	LogEnabled bool
	LogLevel   string
	// LogFormat is "text" or "json".
	LogFormat  string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Identity:          ClientIdentity{ClientID: DefaultClientID},
		ServerHost:        DefaultServerHost,
		ServerPort:        DefaultServerPort,
		Timeout:           DefaultTimeout,
		Retries:           DefaultRetries,
		CacheQueries:      true,
		AllowLiveResolves: true,
		CacheDir:          filepath.Join(os.TempDir(), "turret"),
		LogEnabled:        true,
		LogLevel:          "info",
		LogFormat:         LogFormatText,
	}
}

// Validate checks the settings for values the engine cannot work with.
func (s Settings) Validate() error {
	var err error
	switch {
	case s.Identity.ClientID == "":
		err = ErrMissingClientID
	case s.Timeout <= 0:
		err = zerr.With(zerr.Wrap(ErrInvalidTimeout, ""), "timeout", s.Timeout.String())
	case s.Retries <= 0:
		err = zerr.With(zerr.Wrap(ErrInvalidRetries, ""), "retries", s.Retries)
	}
	if err != nil {
		// Both the category and the specific sentinel stay matchable with errors.Is.
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// Address returns the ZeroMQ endpoint of the resolver service.
func (s Settings) Address() string {
	return "tcp://" + net.JoinHostPort(s.ServerHost, strconv.Itoa(s.ServerPort))
}

// ReadOnlyCache reports whether the engine serves from a fixed snapshot.
func (s Settings) ReadOnlyCache() bool {
	return s.FixedSnapshotPath != ""
}

// SnapshotPath returns the snapshot file for this client and session.
func (s Settings) SnapshotPath() string {
	if s.FixedSnapshotPath != "" {
		return s.FixedSnapshotPath
	}
	name := s.Identity.ClientID + "_" + s.Identity.SessionID + SnapshotExt
	return filepath.Join(s.CacheDir, name)
}

// LoadsSnapshot reports whether a snapshot is read at construction.
func (s Settings) LoadsSnapshot() bool {
	return s.ReadOnlyCache() || s.CacheToDisk
}

// SavesSnapshot reports whether the snapshot is written at close.
func (s Settings) SavesSnapshot() bool {
	return s.CacheToDisk && !s.ReadOnlyCache()
}

// FallbackOr returns the default path when one is configured, otherwise sentinel.
func (s Settings) FallbackOr(sentinel string) string {
	if s.DefaultPath != "" {
		return s.DefaultPath
	}
	return sentinel
}
