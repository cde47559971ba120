// Package match links source listings to leaderboard listings.
//
// Each source listing runs through an ordered cascade and stops at the first
// step that binds:
//
//  1. alias: the curated alias table names a target that exists in the catalog
//  2. exact_normalized: the normalized source name equals a normalized target name
//  3. fuzzy: the best token-sort similarity reaches FuzzyThreshold
//
// Anything left is unmatched. The cascade is a pure function of the catalog,
// the alias table and the source listing, and never fails.
package match

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/logging"
	"github.com/agentstation/freerank/pkg/normalize"
	"github.com/agentstation/freerank/pkg/similarity"
)

// FuzzyThreshold is the minimum similarity for a fuzzy bind. It favors
// precision: a missed match is acceptable, a wrong one is not.
const FuzzyThreshold = 90

// Matcher holds a target catalog prepared for matching. It is safe for
// concurrent use once built because nothing mutates it after New.
type Matcher struct {
	targets []listings.Target
	aliases aliases.Table
	scorer  similarity.Scorer
	logger  *zerolog.Logger

	// first maps an exact model name to its first position in targets.
	first map[string]int
	// normalized maps a normalized name to the model name that produced it,
	// the empty key included. On collisions the later target wins.
	normalized map[string]string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithScorer replaces the similarity used by the fuzzy step.
func WithScorer(s similarity.Scorer) Option {
	return func(m *Matcher) {
		if s != nil {
			m.scorer = s
		}
	}
}

// WithLogger sets the logger used for per-listing debug output.
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New prepares targets for matching. The normalized index is built once here,
// not per source listing.
func New(targets []listings.Target, table aliases.Table, opts ...Option) *Matcher {
	m := &Matcher{
		targets:    targets,
		aliases:    table,
		scorer:     similarity.Default,
		logger:     logging.NewNopLogger(),
		first:      make(map[string]int, len(targets)),
		normalized: make(map[string]string, len(targets)),
	}
	for _, opt := range opts {
		opt(m)
	}

	for i, t := range targets {
		if _, seen := m.first[t.ModelName]; !seen {
			m.first[t.ModelName] = i
		}
		key := normalize.Normalize(t.ModelName)
		if prev, ok := m.normalized[key]; ok && prev != t.ModelName {
			m.logger.Debug().
				Str("key", key).
				Str("previous", prev).
				Str("current", t.ModelName).
				Msg("Normalized name collision, keeping the later target")
		}
		m.normalized[key] = t.ModelName
	}

	return m
}

// Match runs the cascade for one source listing.
func (m *Matcher) Match(src listings.Source) listings.MatchResult {
	if t, ok := m.byAlias(src.ID); ok {
		return m.bind(src, t, listings.KindAlias, 0)
	}
	if t, ok := m.byNormalizedName(src.Name); ok {
		return m.bind(src, t, listings.KindExactNormalized, 0)
	}
	if t, score, ok := m.byFuzzyName(src.Name); ok {
		return m.bind(src, t, listings.KindFuzzy, score)
	}

	m.logger.Debug().Str("listing_id", src.ID).Str("name", src.Name).Msg("No match")
	return listings.MatchResult{Source: src, Kind: listings.KindUnmatched}
}

// MatchAll matches every source listing, one result per input, in input order.
func (m *Matcher) MatchAll(sources []listings.Source) []listings.MatchResult {
	results := make([]listings.MatchResult, len(sources))
	for i, src := range sources {
		results[i] = m.Match(src)
	}
	return results
}

// lookup returns the first target with exactly this model name.
func (m *Matcher) lookup(name string) (*listings.Target, bool) {
	i, ok := m.first[name]
	if !ok {
		return nil, false
	}
	return &m.targets[i], true
}

func (m *Matcher) byAlias(sourceID string) (*listings.Target, bool) {
	name, ok := m.aliases.Resolve(sourceID)
	if !ok {
		return nil, false
	}
	t, ok := m.lookup(name)
	if !ok {
		m.logger.Debug().
			Str("listing_id", sourceID).
			Str("alias", name).
			Msg("Alias target not in catalog, falling through")
	}
	return t, ok
}

func (m *Matcher) byNormalizedName(name string) (*listings.Target, bool) {
	// An empty key is a key like any other: a name made only of noise
	// tokens binds to a target that is also only noise.
	modelName, ok := m.normalized[normalize.Normalize(name)]
	if !ok {
		return nil, false
	}
	return m.lookup(modelName)
}

// byFuzzyName scores name against every target. Ties keep the earliest target.
func (m *Matcher) byFuzzyName(name string) (*listings.Target, int, bool) {
	best, bestScore := -1, -1
	for i := range m.targets {
		if s := m.scorer.Score(name, m.targets[i].ModelName); s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 || bestScore < FuzzyThreshold {
		return nil, 0, false
	}
	return &m.targets[best], bestScore, true
}

func (m *Matcher) bind(src listings.Source, t *listings.Target, kind listings.MatchKind, score int) listings.MatchResult {
	m.logger.Debug().
		Str("listing_id", src.ID).
		Str("target", t.ModelName).
		Str("kind", string(kind)).
		Int("score", score).
		Msg("Matched")
	return listings.MatchResult{Source: src, Target: t, Kind: kind, Score: score}
}
