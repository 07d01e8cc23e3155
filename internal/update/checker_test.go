package update

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
)

func init() {
	color.NoColor = true
}

type fakeFetcher struct {
	latest string
	err    error
	calls  int
}

func (f *fakeFetcher) LatestRelease(context.Context) (string, error) {
	f.calls++
	return f.latest, f.err
}

func newChecker(t *testing.T, current string, fetcher ReleaseFetcher) *Checker {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return NewChecker(current, fetcher, filepath.Join(t.TempDir(), "cache", "last_update_check.json"), trans)
}

func TestInstallModule(t *testing.T) {
	t.Run("should name the installed binary after the tool", func(t *testing.T) {
		pkg, version, ok := strings.Cut(InstallModule, "@")

		require.True(t, ok)
		assert.Equal(t, "latest", version)
		assert.Equal(t, RepoName, path.Base(pkg))
		assert.Equal(t, "github.com/"+RepoOwner+"/"+RepoName+"/cmd/"+RepoName, pkg)
	})

	t.Run("should point at an existing main package", func(t *testing.T) {
		rel := strings.TrimPrefix(strings.TrimSuffix(InstallModule, "@latest"), "github.com/"+RepoOwner+"/"+RepoName+"/")

		assert.FileExists(t, filepath.Join("..", "..", filepath.FromSlash(rel), "main.go"))
	})
}

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		name     string
		current  string
		latest   string
		expected bool
	}{
		{name: "should detect a patch update", current: "v1.0.0", latest: "v1.0.1", expected: true},
		{name: "should detect a minor update", current: "v1.0.0", latest: "v1.1.0", expected: true},
		{name: "should detect a major update", current: "v1.0.0", latest: "v2.0.0", expected: true},
		{name: "should ignore the same version", current: "v1.0.0", latest: "v1.0.0", expected: false},
		{name: "should ignore an older release", current: "v1.5.0", latest: "v1.4.9", expected: false},
		{name: "should accept versions without v", current: "1.0.0", latest: "1.0.1", expected: true},
		{name: "should treat different invalid versions as an update", current: "dev", latest: "v1.0.0", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUpdateAvailable(tt.current, tt.latest))
		})
	}
}

func TestChecker_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("should fetch and cache the latest release", func(t *testing.T) {
		fetcher := &fakeFetcher{latest: "v1.3.0"}
		c := newChecker(t, "1.2.0", fetcher)

		first, err := c.Latest(ctx)
		require.NoError(t, err)
		second, err := c.Latest(ctx)
		require.NoError(t, err)

		assert.Equal(t, "v1.3.0", first)
		assert.Equal(t, "v1.3.0", second)
		assert.Equal(t, 1, fetcher.calls)
		assert.FileExists(t, c.cachePath)
	})

	t.Run("should refetch once the cache is stale", func(t *testing.T) {
		fetcher := &fakeFetcher{latest: "v1.3.0"}
		c := newChecker(t, "1.2.0", fetcher)
		now := time.Now()
		c.now = func() time.Time { return now }

		_, err := c.Latest(ctx)
		require.NoError(t, err)

		c.now = func() time.Time { return now.Add(25 * time.Hour) }
		fetcher.latest = "v1.4.0"
		latest, err := c.Latest(ctx)

		require.NoError(t, err)
		assert.Equal(t, "v1.4.0", latest)
		assert.Equal(t, 2, fetcher.calls)
	})

	t.Run("should ignore a corrupt cache", func(t *testing.T) {
		fetcher := &fakeFetcher{latest: "v2.0.0"}
		c := newChecker(t, "1.2.0", fetcher)
		require.NoError(t, os.MkdirAll(filepath.Dir(c.cachePath), 0755))
		require.NoError(t, os.WriteFile(c.cachePath, []byte("{"), 0644))

		latest, err := c.Latest(ctx)

		require.NoError(t, err)
		assert.Equal(t, "v2.0.0", latest)
	})
}

func TestChecker_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("should print a notice when a newer release exists", func(t *testing.T) {
		var out bytes.Buffer
		c := newChecker(t, "1.2.0", &fakeFetcher{latest: "v1.3.0"})

		c.Check(ctx, &out)

		assert.Contains(t, out.String(), "v1.3.0")
		assert.Contains(t, out.String(), InstallCommand)
	})

	t.Run("should stay quiet when up to date", func(t *testing.T) {
		var out bytes.Buffer
		c := newChecker(t, "1.3.0", &fakeFetcher{latest: "v1.3.0"})

		c.Check(ctx, &out)

		assert.Empty(t, out.String())
	})

	t.Run("should stay quiet when the lookup fails", func(t *testing.T) {
		var out bytes.Buffer
		c := newChecker(t, "1.2.0", &fakeFetcher{err: stderrors.New("rate limited")})

		c.Check(ctx, &out)

		assert.Empty(t, out.String())
	})

	t.Run("should skip the lookup when disabled", func(t *testing.T) {
		t.Setenv(DisableEnv, "1")
		var out bytes.Buffer
		fetcher := &fakeFetcher{latest: "v9.0.0"}
		c := newChecker(t, "1.2.0", fetcher)

		c.Check(ctx, &out)

		assert.Empty(t, out.String())
		assert.Zero(t, fetcher.calls)
	})
}
