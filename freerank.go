// Package freerank ranks the free models on OpenRouter by joining them with
// the Artificial Analysis leaderboard.
//
// A run fetches both sides, binds each free model to at most one leaderboard
// row (alias, then normalized name, then fuzzy name) and assembles the
// merged rows into a report table:
//
//	fr, err := freerank.New(freerank.WithAliasesFile("model_aliases.json"))
//	if err != nil {
//		return err
//	}
//	result, err := fr.Reconcile(ctx)
//	if err != nil {
//		return err
//	}
//	return fr.Publish(result, freerank.PublishOptions{})
package freerank

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/freerank/internal/cache"
	"github.com/agentstation/freerank/internal/sources/leaderboard"
	"github.com/agentstation/freerank/internal/sources/openrouter"
	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/logging"
	"github.com/agentstation/freerank/pkg/match"
	"github.com/agentstation/freerank/pkg/merge"
	"github.com/agentstation/freerank/pkg/report"
)

// SourceFetcher returns the source listings, the free OpenRouter models.
type SourceFetcher interface {
	FetchSources(ctx context.Context) ([]listings.Source, error)
}

// TargetFetcher returns the target listings, the leaderboard rows.
type TargetFetcher interface {
	FetchTargets(ctx context.Context) ([]listings.Target, error)
}

// Freerank runs the match pipeline and publishes its reports.
type Freerank interface {
	// Reconcile fetches both sides, matches, merges and assembles the report table.
	Reconcile(ctx context.Context) (*Result, error)

	// Publish writes the Markdown and HTML reports for a result.
	Publish(result *Result, opts PublishOptions) error
}

// Result is the outcome of one run.
type Result struct {
	RunID       string                 `json:"run_id" yaml:"run_id"`
	Sources     []listings.Source      `json:"-" yaml:"-"`
	Targets     []listings.Target      `json:"-" yaml:"-"`
	Matches     []listings.MatchResult `json:"-" yaml:"-"`
	Rows        []*listings.Fields     `json:"rows" yaml:"rows"`
	Table       report.Table           `json:"-" yaml:"-"`
	Stats       match.Stats            `json:"stats" yaml:"stats"`
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
}

// freerank is the internal implementation of the Freerank interface.
type freerank struct {
	config *config
	cache  *cache.Store
}

// New creates a Freerank with the given options. Fetchers not supplied are
// built from the cache, URL and credential options.
func New(opts ...Option) (Freerank, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if cfg.logger == nil {
		cfg.logger = logging.Default()
	}

	fr := &freerank{config: cfg}
	if !cfg.noCache {
		fr.cache = cache.New(cfg.cacheDir, cfg.cacheTTL)
	}

	if cfg.sources == nil {
		cfg.sources = openrouter.NewClient(
			openrouter.WithURL(cfg.sourceURL),
			openrouter.WithAPIKey(cfg.apiKey),
			openrouter.WithCache(fr.cache),
			openrouter.WithRefresh(cfg.refresh),
		)
	}
	if cfg.targets == nil {
		cfg.targets = leaderboard.NewScraper(
			leaderboard.WithURL(cfg.targetURL),
			leaderboard.WithBrowser(leaderboard.NewRodBrowser(cfg.browser)),
			leaderboard.WithCache(fr.cache),
			leaderboard.WithRefresh(cfg.refresh),
		)
	}
	return fr, nil
}

// Reconcile implements Freerank.
func (f *freerank) Reconcile(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(logging.WithLogger(ctx, f.config.logger), runID)
	logger := logging.FromContext(ctx)
	start := time.Now()

	table, err := f.aliases()
	if err != nil {
		return nil, err
	}

	sources, targets, err := f.fetch(logging.WithStage(ctx, "fetch"))
	if err != nil {
		logger.Error().Err(err).Msg("Fetch failed")
		return nil, err
	}

	matcher := match.New(targets, table,
		match.WithScorer(f.config.scorer),
		match.WithLogger(logger),
	)
	results := matcher.MatchAll(sources)
	triggerMatches(f.config.hooks, results)
	logUnmatched(logging.WithStage(ctx, "match"), results)

	rows := merge.MergeAll(results)
	stats := match.Summarize(results)

	logger.Info().
		Int("sources", len(sources)).
		Int("targets", len(targets)).
		Int("alias", stats.Alias).
		Int("exact", stats.Exact).
		Int("fuzzy", stats.Fuzzy).
		Int("unmatched", stats.Unmatched).
		Dur("elapsed", time.Since(start)).
		Msg("Reconciled free models")

	return &Result{
		RunID:       runID,
		Sources:     sources,
		Targets:     targets,
		Matches:     results,
		Rows:        rows,
		Table:       report.Assemble(rows),
		Stats:       stats,
		GeneratedAt: f.config.clock().UTC(),
	}, nil
}

// aliases returns the configured alias table.
func (f *freerank) aliases() (aliases.Table, error) {
	if f.config.aliases != nil {
		return f.config.aliases, nil
	}
	if f.config.aliasesFile == "" {
		return aliases.Table{}, nil
	}
	return aliases.Load(f.config.aliasesFile)
}

// fetch loads both sides concurrently. Either failure cancels the other
// and discards any partial result.
func (f *freerank) fetch(ctx context.Context) ([]listings.Source, []listings.Target, error) {
	var (
		sources []listings.Source
		targets []listings.Target
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := f.config.sources.FetchSources(gctx)
		if err != nil {
			return err
		}
		sources = s
		return nil
	})
	g.Go(func() error {
		t, err := f.config.targets.FetchTargets(gctx)
		if err != nil {
			return err
		}
		targets = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logging.FromContext(ctx).Debug().Int("sources", len(sources)).Int("targets", len(targets)).Msg("Fetched listings")
	return sources, targets, nil
}

// logUnmatched reports each free model left without a leaderboard row under
// its own listing id, the key an alias entry needs.
func logUnmatched(ctx context.Context, results []listings.MatchResult) {
	for _, r := range results {
		if r.Matched() {
			continue
		}
		logging.FromContext(logging.WithListing(ctx, r.Source.ID)).Info().
			Str("name", r.Source.Name).
			Msg("No leaderboard row, add an alias to bind it")
	}
}
