package freerank

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/similarity"
)

// Option is a function that configures a Freerank instance.
type Option func(*config) error

// config holds the settings New builds a pipeline from.
type config struct {
	sources SourceFetcher
	targets TargetFetcher

	aliasesFile string
	aliases     aliases.Table

	scorer similarity.Scorer
	logger *zerolog.Logger
	clock  func() time.Time
	hooks  []MatchHook

	cacheDir  string
	cacheTTL  time.Duration
	refresh   bool
	noCache   bool
	apiKey    string
	sourceURL string
	targetURL string
	browser   string
}

func defaultConfig() *config {
	return &config{
		aliasesFile: constants.DefaultAliasesFile,
		scorer:      similarity.Default,
		clock:       time.Now,
		cacheDir:    constants.DefaultCacheDir,
		sourceURL:   constants.OpenRouterModelsURL,
		targetURL:   constants.LeaderboardURL,
	}
}

// WithSourceFetcher replaces the OpenRouter feed client.
func WithSourceFetcher(f SourceFetcher) Option {
	return func(c *config) error {
		if f == nil {
			return errors.NewValidationError("source_fetcher", nil, "cannot be nil")
		}
		c.sources = f
		return nil
	}
}

// WithTargetFetcher replaces the leaderboard scraper.
func WithTargetFetcher(f TargetFetcher) Option {
	return func(c *config) error {
		if f == nil {
			return errors.NewValidationError("target_fetcher", nil, "cannot be nil")
		}
		c.targets = f
		return nil
	}
}

// WithAliasesFile loads the alias table from path on every run.
// A missing file means no aliases.
func WithAliasesFile(path string) Option {
	return func(c *config) error {
		c.aliasesFile = path
		return nil
	}
}

// WithAliases uses table instead of reading an aliases file.
func WithAliases(table aliases.Table) Option {
	return func(c *config) error {
		c.aliases = table
		return nil
	}
}

// WithScorer replaces the fuzzy similarity scorer.
func WithScorer(s similarity.Scorer) Option {
	return func(c *config) error {
		if s == nil {
			return errors.NewValidationError("scorer", nil, "cannot be nil")
		}
		c.scorer = s
		return nil
	}
}

// WithCacheDir sets the directory fetched data is cached in.
func WithCacheDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("cache_dir", dir, "cannot be empty")
		}
		c.cacheDir = dir
		return nil
	}
}

// WithCacheTTL expires cached data after ttl. Zero keeps it forever.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) error {
		if ttl < 0 {
			return errors.NewValidationError("cache_ttl", ttl, "cannot be negative")
		}
		c.cacheTTL = ttl
		return nil
	}
}

// WithRefresh ignores cached data and fetches everything again.
func WithRefresh(refresh bool) Option {
	return func(c *config) error {
		c.refresh = refresh
		return nil
	}
}

// WithoutCache disables reading and writing the cache.
func WithoutCache() Option {
	return func(c *config) error {
		c.noCache = true
		return nil
	}
}

// WithAPIKey authenticates OpenRouter requests.
func WithAPIKey(key string) Option {
	return func(c *config) error {
		c.apiKey = key
		return nil
	}
}

// WithSourceURL overrides the OpenRouter models endpoint.
func WithSourceURL(url string) Option {
	return func(c *config) error {
		if url != "" {
			c.sourceURL = url
		}
		return nil
	}
}

// WithTargetURL overrides the leaderboard page.
func WithTargetURL(url string) Option {
	return func(c *config) error {
		if url != "" {
			c.targetURL = url
		}
		return nil
	}
}

// WithBrowserBin sets the Chromium binary used to scrape the leaderboard.
func WithBrowserBin(path string) Option {
	return func(c *config) error {
		c.browser = path
		return nil
	}
}

// WithLogger sets the logger runs log to.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) error {
		if now == nil {
			return errors.NewValidationError("clock", nil, "cannot be nil")
		}
		c.clock = now
		return nil
	}
}

// WithMatchHook registers fn to be called for every match result.
func WithMatchHook(fn MatchHook) Option {
	return func(c *config) error {
		if fn != nil {
			c.hooks = append(c.hooks, fn)
		}
		return nil
	}
}
