package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/turret/internal/core/domain"
)

func TestMatchesSchema(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"tank:/foo/bar", true},
		{"tank://foo", true},
		{"tank:", true},
		{"/foo/bar", false},
		{"TANK:/foo", false},
		{" tank:/foo", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.MatchesSchema(tt.path))
		})
	}
}

func TestDecorateQuery(t *testing.T) {
	assert.Equal(t, "tank:/a?v=1", domain.DecorateQuery("tank:/a?v=1", ""))
	assert.Equal(t, "tank:/a?v=1&platform=linux", domain.DecorateQuery("tank:/a?v=1", "linux"))
}

func TestIsAbsolutePath(t *testing.T) {
	assert.True(t, domain.IsAbsolutePath("/projects/show/asset.usd"))
	assert.True(t, domain.IsAbsolutePath(`C:\projects\asset.usd`))
	assert.True(t, domain.IsAbsolutePath("c:/projects/asset.usd"))
	assert.True(t, domain.IsAbsolutePath(`\\server\share\asset.usd`))
	assert.False(t, domain.IsAbsolutePath("relative/asset.usd"))
	assert.False(t, domain.IsAbsolutePath(domain.NotFound))
	assert.False(t, domain.IsAbsolutePath(domain.ResolveFailed))
	assert.False(t, domain.IsAbsolutePath("C:"))
}

func TestCacheEntry(t *testing.T) {
	at := time.Unix(1700000000, 0)
	entry := domain.NewCacheEntry("/a/b", at)

	assert.Equal(t, int64(1700000000), entry.Timestamp)
	assert.True(t, entry.ResolvedAt().Equal(at))
	assert.False(t, entry.IsNotFound())
	assert.True(t, domain.NewCacheEntry(domain.NotFound, at).IsNotFound())
}

func TestResolution_Exists(t *testing.T) {
	assert.True(t, domain.Resolution{Path: "/a", Outcome: domain.OutcomeResolved}.Exists())
	assert.True(t, domain.Resolution{Path: "/a", Outcome: domain.OutcomeCacheHit}.Exists())
	assert.False(t, domain.Resolution{Path: domain.NotFound, Outcome: domain.OutcomeCacheHit}.Exists())
	assert.False(t, domain.Resolution{Path: "/default", Outcome: domain.OutcomeMiss}.Exists())
	assert.False(t, domain.Resolution{Path: domain.UncachedQuery, Outcome: domain.OutcomeBlocked}.Exists())
}

func TestSendStatus_String(t *testing.T) {
	assert.Equal(t, "ok", domain.SendOK.String())
	assert.Equal(t, "timeout", domain.SendTimeout.String())
	assert.Equal(t, "transport error", domain.SendTransportError.String())
	assert.Equal(t, "unknown", domain.SendStatus(42).String())
}

func TestSettings_Validate(t *testing.T) {
	require.NoError(t, domain.DefaultSettings().Validate())

	s := domain.DefaultSettings()
	s.Identity.ClientID = ""
	err := s.Validate()
	require.ErrorContains(t, err, "client id must not be empty")
	assert.ErrorIs(t, err, domain.ErrMissingClientID)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	s = domain.DefaultSettings()
	s.Timeout = 0
	err = s.Validate()
	require.ErrorContains(t, err, "timeout must be positive")
	assert.ErrorIs(t, err, domain.ErrInvalidTimeout)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)

	s = domain.DefaultSettings()
	s.Retries = -1
	err = s.Validate()
	require.ErrorContains(t, err, "retries must be positive")
	assert.ErrorIs(t, err, domain.ErrInvalidRetries)
	assert.ErrorIs(t, err, domain.ErrInvalidSettings)
}

func TestSettings_Address(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, "tcp://localhost:5555", s.Address())

	s.ServerHost = "::1"
	s.ServerPort = 6000
	assert.Equal(t, "tcp://[::1]:6000", s.Address())
}

func TestSettings_SnapshotPath(t *testing.T) {
	s := domain.DefaultSettings()
	s.CacheDir = "/var/cache/turret"
	s.Identity = domain.ClientIdentity{ClientID: "maya", SessionID: "abc"}

	assert.Equal(t, filepath.Join("/var/cache/turret", "maya_abc.turretcache"), s.SnapshotPath())
	assert.False(t, s.LoadsSnapshot())
	assert.False(t, s.SavesSnapshot())

	s.CacheToDisk = true
	assert.True(t, s.LoadsSnapshot())
	assert.True(t, s.SavesSnapshot())

	s.FixedSnapshotPath = "/fixed/cache.turretcache"
	assert.Equal(t, "/fixed/cache.turretcache", s.SnapshotPath())
	assert.True(t, s.ReadOnlyCache())
	assert.True(t, s.LoadsSnapshot())
	assert.False(t, s.SavesSnapshot())
}

func TestSettings_FallbackOr(t *testing.T) {
	s := domain.DefaultSettings()
	assert.Equal(t, domain.UncachedQuery, s.FallbackOr(domain.UncachedQuery))

	s.DefaultPath = "/placeholder.usd"
	assert.Equal(t, "/placeholder.usd", s.FallbackOr(domain.UncachedQuery))
}
