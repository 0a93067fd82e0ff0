// Package config builds the resolver settings from defaults, an optional YAML file and the
// environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variable names. Per-client variables are built with ClientEnv.
const (
	EnvConfig       = "TURRET_CONFIG"
	EnvClientID     = "TURRET_CLIENT_ID"
	EnvServerHost   = "TURRET_SERVER_IP"
	EnvServerPort   = "TURRET_SERVER_PORT"
	EnvTimeout      = "TURRET_TIMEOUT"
	EnvRetries      = "TURRET_RETRIES"
	EnvSessionID    = "TURRET_SESSION_ID"
	EnvCacheDir     = "TURRET_CACHE_DIR"
	EnvCacheQueries = "TURRET_CACHE_QUERIES"
	EnvPlatform     = "TURRET_PLATFORM"
	EnvLog          = "TURRET_LOG"
	EnvLogLevel     = "TURRET_LOG_LEVEL"
	EnvLogFormat    = "TURRET_LOG_FORMAT"

	SuffixCacheToDisk       = "CACHE_TO_DISK"
	SuffixCacheLocation     = "CACHE_LOCATION"
	SuffixAllowLiveResolves = "ALLOW_LIVE_RESOLVES"
	SuffixDefaultPath       = "DEFAULT_PATH"
)

// LookupFunc reads one environment variable.
type LookupFunc func(key string) (string, bool)

// Loader implements ports.SettingsLoader.
type Loader struct {
	lookup LookupFunc
}

// NewLoader creates a Loader reading the process environment.
func NewLoader() *Loader {
	return NewLoaderWithLookup(os.LookupEnv)
}

// NewLoaderWithLookup creates a Loader reading variables through lookup.
func NewLoaderWithLookup(lookup LookupFunc) *Loader {
	return &Loader{lookup: lookup}
}

// ClientEnv returns the per-client variable name for suffix,
// e.g. ClientEnv("maya", SuffixCacheToDisk) is TURRET_MAYA_CACHE_TO_DISK.
func ClientEnv(clientID, suffix string) string {
	return "TURRET_" + envToken(clientID) + "_" + suffix
}

// ClientID returns the client id named by TURRET_CLIENT_ID, or the default.
func (l *Loader) ClientID() string {
	if v, ok := l.lookup(EnvClientID); ok && v != "" {
		return v
	}
	return domain.DefaultClientID
}

// Load builds and validates the settings for clientID.
func (l *Loader) Load(clientID string) (domain.Settings, error) {
	s := domain.DefaultSettings()
	if clientID != "" {
		s.Identity.ClientID = clientID
	}

	if path, ok := l.lookup(EnvConfig); ok && path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return domain.Settings{}, err
		}
		applyFile(&s, file)
	}

	if err := l.applyEnv(&s); err != nil {
		return domain.Settings{}, err
	}

	if err := s.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// LoadFile reads a Turretfile from path.
func LoadFile(path string) (*Turretfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Turretfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return &file, nil
}

func applyFile(s *domain.Settings, f *Turretfile) {
	if f.Server.Host != "" {
		s.ServerHost = f.Server.Host
	}
	if f.Server.Port != 0 {
		s.ServerPort = f.Server.Port
	}
	if f.Server.TimeoutMs != 0 {
		s.Timeout = time.Duration(f.Server.TimeoutMs) * time.Millisecond
	}
	if f.Server.Retries != 0 {
		s.Retries = f.Server.Retries
	}
	if f.Session != "" {
		s.Identity.SessionID = f.Session
	}
	if f.Platform != "" {
		s.Platform = f.Platform
	}
	if f.Cache.Queries != nil {
		s.CacheQueries = *f.Cache.Queries
	}
	if f.Cache.Dir != "" {
		s.CacheDir = f.Cache.Dir
	}
	if f.Log.Enabled != nil {
		s.LogEnabled = *f.Log.Enabled
	}
	if f.Log.Level != "" {
		s.LogLevel = f.Log.Level
	}
	if f.Log.Format != "" {
		s.LogFormat = f.Log.Format
	}

	client, ok := f.Clients[s.Identity.ClientID]
	if !ok {
		return
	}
	if client.CacheToDisk != nil {
		s.CacheToDisk = *client.CacheToDisk
	}
	if client.CacheLocation != "" {
		s.FixedSnapshotPath = client.CacheLocation
	}
	if client.AllowLiveResolves != nil {
		s.AllowLiveResolves = *client.AllowLiveResolves
	}
	if client.DefaultPath != "" {
		s.DefaultPath = client.DefaultPath
	}
}

func (l *Loader) applyEnv(s *domain.Settings) error {
	id := s.Identity.ClientID

	l.str(EnvServerHost, &s.ServerHost)
	l.str(EnvSessionID, &s.Identity.SessionID)
	l.str(EnvCacheDir, &s.CacheDir)
	l.str(EnvPlatform, &s.Platform)
	l.str(EnvLogLevel, &s.LogLevel)
	l.str(EnvLogFormat, &s.LogFormat)
	l.str(ClientEnv(id, SuffixCacheLocation), &s.FixedSnapshotPath)
	l.str(ClientEnv(id, SuffixDefaultPath), &s.DefaultPath)

	if err := l.integer(EnvServerPort, &s.ServerPort); err != nil {
		return err
	}
	if err := l.integer(EnvRetries, &s.Retries); err != nil {
		return err
	}

	var timeoutMs int
	if err := l.integer(EnvTimeout, &timeoutMs); err != nil {
		return err
	}
	if timeoutMs != 0 {
		s.Timeout = time.Duration(timeoutMs) * time.Millisecond
	}

	for key, dst := range map[string]*bool{
		EnvCacheQueries:                        &s.CacheQueries,
		EnvLog:                                 &s.LogEnabled,
		ClientEnv(id, SuffixCacheToDisk):       &s.CacheToDisk,
		ClientEnv(id, SuffixAllowLiveResolves): &s.AllowLiveResolves,
	} {
		if err := l.boolean(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) str(key string, dst *string) {
	if v, ok := l.lookup(key); ok && v != "" {
		*dst = v
	}
}

func (l *Loader) integer(key string, dst *int) error {
	v, ok := l.lookup(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrInvalidEnvValue.Error()), "key", key), "value", v)
	}
	*dst = n
	return nil
}

// boolean accepts strconv.ParseBool values and, like the host tools that set these
// variables, treats any other value starting with '1' as true.
func (l *Loader) boolean(key string, dst *bool) error {
	v, ok := l.lookup(key)
	if !ok || v == "" {
		return nil
	}
	v = strings.TrimSpace(v)
	if b, err := strconv.ParseBool(v); err == nil {
		*dst = b
		return nil
	}
	switch strings.ToLower(v) {
	case "yes", "on":
		*dst = true
		return nil
	case "no", "off":
		*dst = false
		return nil
	}
	if strings.HasPrefix(v, "1") {
		*dst = true
		return nil
	}
	return zerr.With(zerr.With(domain.ErrInvalidEnvValue, "key", key), "value", v)
}

func envToken(clientID string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			return r
		default:
			return '_'
		}
	}, clientID)
}
