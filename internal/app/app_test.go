package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/turret/internal/app"
	"go.trai.ch/turret/internal/core/domain"
	"go.trai.ch/turret/internal/core/ports/mocks"
	"go.trai.ch/turret/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func newApp(t *testing.T) (*app.App, *mocks.MockTransport, *mocks.MockSnapshotStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	snapshots := mocks.NewMockSnapshotStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	s := domain.DefaultSettings()
	s.Identity = domain.ClientIdentity{ClientID: "cli", SessionID: "t"}
	s.Retries = 2
	s.Timeout = 10 * time.Millisecond

	engine, err := resolver.New(s, transport, snapshots, log)
	require.NoError(t, err)
	return app.New(engine, snapshots).WithWorkers(4), transport, snapshots
}

func TestApp_ResolveAll(t *testing.T) {
	a, transport, _ := newApp(t)

	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, payload []byte, _ time.Duration) ([]byte, domain.SendStatus) {
			q := string(payload)
			if strings.HasSuffix(q, "missing") {
				return []byte(domain.NotFound), domain.SendOK
			}
			return []byte("/mnt/" + strings.TrimPrefix(q, "tank:/")), domain.SendOK
		}).AnyTimes()

	results, err := a.ResolveAll(context.Background(), []string{"tank:/a", "tank:/b", "tank:/missing"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "tank:/a", results[0].Query)
	assert.Equal(t, "/mnt/a", results[0].Path)
	assert.Equal(t, "/mnt/b", results[1].Path)
	assert.Equal(t, domain.ResolveFailed, results[2].Path)
	assert.False(t, results[2].Exists())
}

func TestApp_ResolveAllNoQueries(t *testing.T) {
	a, _, _ := newApp(t)

	_, err := a.ResolveAll(context.Background(), nil)
	assert.True(t, errors.Is(err, domain.ErrNoQueries))
}

func TestApp_ResolveAllCancelled(t *testing.T) {
	a, transport, _ := newApp(t)
	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.ResolveAll(ctx, []string{"tank:/a"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestApp_ExistsAndMatches(t *testing.T) {
	a, transport, _ := newApp(t)
	transport.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("/mnt/a"), domain.SendOK)

	assert.True(t, a.Exists("tank:/a"))
	assert.True(t, a.Matches("tank:/a"))
	assert.False(t, a.Matches("/mnt/a"))
}

func TestApp_Snapshot(t *testing.T) {
	a, _, snapshots := newApp(t)

	snapshots.EXPECT().Load().Return(nil, domain.ErrSnapshotNotFound)
	entries, err := a.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, entries)

	snapshots.EXPECT().Load().Return(nil, domain.ErrSnapshotReadFailed)
	_, err = a.Snapshot()
	require.Error(t, err)

	snapshots.EXPECT().Load().Return(map[string]domain.CacheEntry{"tank:/a": {ResolvedPath: "/a"}}, nil)
	entries, err = a.Snapshot()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestApp_SnapshotPath(t *testing.T) {
	a, _, _ := newApp(t)
	assert.True(t, strings.HasSuffix(a.SnapshotPath(), "cli_t.turretcache"))
}
