package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/internal/cache"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

type fakeBrowser struct {
	html  string
	err   error
	calls int
	url   string
}

func (f *fakeBrowser) PageHTML(_ context.Context, url string) (string, error) {
	f.calls++
	f.url = url
	return f.html, f.err
}

func TestFetchTargets(t *testing.T) {
	browser := &fakeBrowser{html: leaderboardPage}
	scraper := NewScraper(WithBrowser(browser), WithURL("https://example.test/leaderboard"))

	targets, err := scraper.FetchTargets(context.Background())
	require.NoError(t, err)

	assert.Len(t, targets, 2)
	assert.Equal(t, "https://example.test/leaderboard", browser.url)
}

func TestFetchTargetsCaches(t *testing.T) {
	browser := &fakeBrowser{html: leaderboardPage}
	store := cache.New(t.TempDir(), 0)
	scraper := NewScraper(WithBrowser(browser), WithCache(store))

	first, err := scraper.FetchTargets(context.Background())
	require.NoError(t, err)
	second, err := scraper.FetchTargets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, browser.calls)
	assert.FileExists(t, store.Path(constants.LeaderboardCacheName))
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ModelName, second[0].ModelName)
	assert.Equal(t, first[0].Fields.Keys(), second[0].Fields.Keys())

	_, err = NewScraper(WithBrowser(browser), WithCache(store), WithRefresh(true)).FetchTargets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, browser.calls)
}

func TestFetchTargetsParseFailure(t *testing.T) {
	store := cache.New(t.TempDir(), 0)
	scraper := NewScraper(WithBrowser(&fakeBrowser{html: "<p>no table</p>"}), WithCache(store))

	_, err := scraper.FetchTargets(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsScrapeError(err))
	assert.ErrorIs(t, err, ErrTableNotFound)
	assert.NoFileExists(t, store.Path(constants.LeaderboardCacheName))
}

func TestFetchTargetsBrowserFailure(t *testing.T) {
	boom := errors.NewScrapeError("launch", "u", errors.New("no chromium"))
	_, err := NewScraper(WithBrowser(&fakeBrowser{err: boom})).FetchTargets(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFetchTargetsMissingModelColumn(t *testing.T) {
	page := `<table><thead><tr><th>g</th></tr><tr><th>Name</th></tr></thead><tbody><tr><td>x</td></tr></tbody></table>`
	_, err := NewScraper(WithBrowser(&fakeBrowser{html: page})).FetchTargets(context.Background())
	assert.ErrorIs(t, err, ErrMissingJoinColumn)
}
