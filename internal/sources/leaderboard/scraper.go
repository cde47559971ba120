// Package leaderboard scrapes the Artificial Analysis model leaderboard
// into target listings.
package leaderboard

import (
	"context"

	"github.com/agentstation/freerank/internal/cache"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/logging"
)

// SourceName identifies the leaderboard in logs and errors.
const SourceName = "artificial_analysis"

// Scraper loads the leaderboard table from the cache or a browser.
type Scraper struct {
	URL     string
	browser Browser
	cache   *cache.Store
	refresh bool
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithURL overrides the leaderboard page.
func WithURL(url string) Option {
	return func(s *Scraper) {
		if url != "" {
			s.URL = url
		}
	}
}

// WithBrowser replaces the page renderer.
func WithBrowser(b Browser) Option {
	return func(s *Scraper) { s.browser = b }
}

// WithCache stores the parsed table in store.
func WithCache(store *cache.Store) Option {
	return func(s *Scraper) { s.cache = store }
}

// WithRefresh skips cache reads. Fresh tables are still cached.
func WithRefresh(refresh bool) Option {
	return func(s *Scraper) { s.refresh = refresh }
}

// NewScraper creates a leaderboard scraper. Without WithBrowser it uses a
// RodBrowser with the default binary lookup.
func NewScraper(opts ...Option) *Scraper {
	s := &Scraper{URL: constants.LeaderboardURL}
	for _, opt := range opts {
		opt(s)
	}
	if s.browser == nil {
		s.browser = NewRodBrowser("")
	}
	return s
}

// FetchTargets returns the leaderboard rows as target listings.
func (s *Scraper) FetchTargets(ctx context.Context) ([]listings.Target, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}
	targets, err := table.Listings()
	if err != nil {
		return nil, errors.NewScrapeError("join column", s.URL, err)
	}
	return targets, nil
}

// Table returns the parsed leaderboard, from the cache when allowed.
func (s *Scraper) Table(ctx context.Context) (*Table, error) {
	ctx = logging.WithSource(ctx, SourceName)
	logger := logging.FromContext(ctx)

	if s.cache != nil && !s.refresh {
		var cached Table
		ok, err := s.cache.Load(constants.LeaderboardCacheName, &cached)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Debug().Str("path", s.cache.Path(constants.LeaderboardCacheName)).Msg("Using cached leaderboard")
			return &cached, nil
		}
	}

	logger.Info().Str("url", s.URL).Msg("Scraping leaderboard")
	doc, err := s.browser.PageHTML(ctx, s.URL)
	if err != nil {
		return nil, err
	}

	table, err := ParseTable(doc)
	if err != nil {
		return nil, errors.NewScrapeError("parse", s.URL, err)
	}
	if table.Skipped > 0 {
		logger.Warn().Int("skipped", table.Skipped).Msg("Dropped leaderboard rows with mismatched cell counts")
	}
	logger.Info().
		Int("rows", len(table.Rows)).
		Int("columns", len(table.Headers)).
		Msg("Scraped leaderboard")

	if s.cache != nil {
		if err := s.cache.Save(constants.LeaderboardCacheName, table); err != nil {
			return nil, err
		}
	}
	return table, nil
}
