package update

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v80/github"
	"github.com/thomas-vilte/husky-installer/internal/errors"
	"github.com/thomas-vilte/husky-installer/internal/i18n"
	"github.com/thomas-vilte/husky-installer/internal/logger"
	"github.com/thomas-vilte/husky-installer/internal/ui"
	"golang.org/x/mod/semver"
)

const (
	// DisableEnv turns the update check off when set to any value.
	DisableEnv = "HUSKY_INSTALLER_DISABLE_UPDATE_CHECK"

	RepoOwner = "thomas-vilte"
	RepoName  = "husky-installer"

	// InstallModule is the go install target for the latest release.
	InstallModule  = "github.com/" + RepoOwner + "/" + RepoName + "/cmd/" + RepoName + "@latest"
	InstallCommand = "go install " + InstallModule

	cacheTTL     = 24 * time.Hour
	fetchTimeout = 2 * time.Second
)

// ReleaseFetcher returns the tag of the latest published release.
type ReleaseFetcher interface {
	LatestRelease(ctx context.Context) (string, error)
}

type githubFetcher struct {
	client      *github.Client
	owner, repo string
}

func NewGitHubFetcher(owner, repo string) ReleaseFetcher {
	return &githubFetcher{client: github.NewClient(nil), owner: owner, repo: repo}
}

func (f *githubFetcher) LatestRelease(ctx context.Context) (string, error) {
	release, _, err := f.client.Repositories.GetLatestRelease(ctx, f.owner, f.repo)
	if err != nil {
		return "", errors.ErrUpdateCheck.WithError(err)
	}
	return release.GetTagName(), nil
}

// Cache remembers the last lookup so the network is hit at most once a day.
type Cache struct {
	LastCheck   time.Time `json:"last_check"`
	LatestKnown string    `json:"latest_known"`
}

type Checker struct {
	current   string
	fetcher   ReleaseFetcher
	cachePath string
	trans     *i18n.Translations
	now       func() time.Time
}

func NewChecker(current string, fetcher ReleaseFetcher, cachePath string, trans *i18n.Translations) *Checker {
	return &Checker{
		current:   current,
		fetcher:   fetcher,
		cachePath: cachePath,
		trans:     trans,
		now:       time.Now,
	}
}

// DefaultCachePath returns ~/.husky-installer/last_update_check.json.
func DefaultCachePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".husky-installer", "last_update_check.json"), nil
}

// Latest returns the newest known release, from the cache when it is fresh.
func (c *Checker) Latest(ctx context.Context) (string, error) {
	if cache, err := c.loadCache(); err == nil && c.now().Sub(cache.LastCheck) < cacheTTL {
		logger.Debug(ctx, "update check served from cache", "latest", cache.LatestKnown)
		return cache.LatestKnown, nil
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	latest, err := c.fetcher.LatestRelease(ctx)
	if err != nil {
		return "", err
	}

	if err := c.saveCache(Cache{LastCheck: c.now(), LatestKnown: latest}); err != nil {
		logger.Debug(ctx, "could not save update cache", "error", err)
	}
	return latest, nil
}

// Check writes a notice to w when a newer release exists. Failures are only
// logged: the check must never get in the way of the command.
func (c *Checker) Check(ctx context.Context, w io.Writer) {
	if os.Getenv(DisableEnv) != "" {
		return
	}

	latest, err := c.Latest(ctx)
	if err != nil {
		logger.Debug(ctx, "update check failed", "error", err)
		return
	}
	if latest == "" || !IsUpdateAvailable(c.current, latest) {
		return
	}

	ui.PrintNote(w, c.trans.GetMessage("update.title", 0, nil), strings.Join([]string{
		c.trans.GetMessage("update.available", 0, map[string]interface{}{
			"Current": c.current,
			"Latest":  ui.Success.Sprint(latest),
		}),
		c.trans.GetMessage("update.command", 0, map[string]interface{}{
			"Command": ui.Code.Sprint(InstallCommand),
		}),
	}, "\n"))
}

// IsUpdateAvailable compares versions with or without a leading "v". When
// either is not valid semver any difference counts as an update.
func IsUpdateAvailable(current, latest string) bool {
	if !strings.HasPrefix(current, "v") {
		current = "v" + current
	}
	if !strings.HasPrefix(latest, "v") {
		latest = "v" + latest
	}

	if !semver.IsValid(current) || !semver.IsValid(latest) {
		return current != latest
	}

	return semver.Compare(latest, current) > 0
}

func (c *Checker) loadCache() (Cache, error) {
	data, err := os.ReadFile(c.cachePath)
	if err != nil {
		return Cache{}, err
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return Cache{}, err
	}
	return cache, nil
}

func (c *Checker) saveCache(cache Cache) error {
	if c.cachePath == "" {
		return fmt.Errorf("cache path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.cachePath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.cachePath, data, 0644)
}
