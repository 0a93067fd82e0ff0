package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/turret/cmd/turret/commands"
	"go.trai.ch/turret/internal/app"
	"go.trai.ch/turret/internal/build"
	"go.trai.ch/turret/internal/core/domain"
)

type fakeApp struct {
	paths    map[string]string
	snapshot map[string]domain.CacheEntry
	snapErr  error
	cleared  bool
	resolved [][]string
}

func (f *fakeApp) ResolveAll(_ context.Context, queries []string) ([]app.Result, error) {
	f.resolved = append(f.resolved, queries)
	out := make([]app.Result, len(queries))
	for i, q := range queries {
		path, ok := f.paths[q]
		if !ok {
			out[i] = app.Result{Query: q, Resolution: domain.Resolution{Path: domain.ResolveFailed, Outcome: domain.OutcomeMiss}}
			continue
		}
		out[i] = app.Result{Query: q, Resolution: domain.Resolution{Path: path, Outcome: domain.OutcomeResolved}}
	}
	return out, nil
}

func (f *fakeApp) Exists(query string) bool {
	_, ok := f.paths[query]
	return ok
}

func (f *fakeApp) Matches(path string) bool {
	return domain.MatchesSchema(path)
}

func (f *fakeApp) ClearCache() {
	f.cleared = true
}

func (f *fakeApp) SnapshotPath() string {
	return "/tmp/turret/default_s.turretcache"
}

func (f *fakeApp) Snapshot() (map[string]domain.CacheEntry, error) {
	return f.snapshot, f.snapErr
}

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	var out bytes.Buffer
	cli.SetOutput(&out, &out)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return out.String(), err
}

func TestResolve(t *testing.T) {
	a := &fakeApp{paths: map[string]string{"tank:/a": "/mnt/a.usd"}}

	out, err := execute(t, a, "resolve", "tank:/a", "tank:/b")
	require.NoError(t, err)
	assert.Equal(t, "tank:/a -> /mnt/a.usd\ntank:/b -> "+domain.ResolveFailed+"\n", out)
	assert.Equal(t, [][]string{{"tank:/a", "tank:/b"}}, a.resolved)
}

func TestResolve_PathOnly(t *testing.T) {
	a := &fakeApp{paths: map[string]string{"tank:/a": "/mnt/a.usd"}}

	out, err := execute(t, a, "resolve", "-p", "tank:/a")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/a.usd\n", out)
}

func TestResolve_NoArgsShowsHelp(t *testing.T) {
	a := &fakeApp{}

	out, err := execute(t, a, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Empty(t, a.resolved)
}

func TestExists(t *testing.T) {
	a := &fakeApp{paths: map[string]string{"tank:/a": "/mnt/a.usd"}}

	out, err := execute(t, a, "exists", "tank:/a")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = execute(t, a, "exists", "tank:/nope")
	assert.True(t, errors.Is(err, domain.ErrQueryNotFound))
	assert.Equal(t, "false\n", out)
}

func TestMatch(t *testing.T) {
	out, err := execute(t, &fakeApp{}, "match", "tank:/foo/bar", "/foo/bar", "tank://foo")
	require.NoError(t, err)
	assert.Equal(t, "tank:/foo/bar true\n/foo/bar false\ntank://foo true\n", out)
}

func TestCacheList(t *testing.T) {
	a := &fakeApp{snapshot: map[string]domain.CacheEntry{
		"tank:/b": {ResolvedPath: "/b", Timestamp: 0},
		"tank:/a": {ResolvedPath: "/a", Timestamp: 0},
	}}

	out, err := execute(t, a, "cache", "list")
	require.NoError(t, err)
	assert.Equal(t,
		"# /tmp/turret/default_s.turretcache (2 queries)\n"+
			"tank:/a -> /a (1970-01-01T00:00:00Z)\n"+
			"tank:/b -> /b (1970-01-01T00:00:00Z)\n",
		out)
}

func TestCacheList_Error(t *testing.T) {
	_, err := execute(t, &fakeApp{snapErr: domain.ErrSnapshotReadFailed}, "cache", "list")
	assert.True(t, errors.Is(err, domain.ErrSnapshotReadFailed))
}

func TestCacheClear(t *testing.T) {
	a := &fakeApp{}

	out, err := execute(t, a, "cache", "clear")
	require.NoError(t, err)
	assert.True(t, a.cleared)
	assert.Equal(t, "cache cleared\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, &fakeApp{}, "version")
	require.NoError(t, err)
	assert.Equal(t, build.Version+"\n", out)
}
