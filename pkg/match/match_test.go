package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/pkg/aliases"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/logging"
	"github.com/agentstation/freerank/pkg/similarity"
)

func target(name string, fields ...string) listings.Target {
	f := listings.NewFields(len(fields)/2 + 1)
	f.Set("Model", name)
	for i := 0; i+1 < len(fields); i += 2 {
		f.Set(fields[i], fields[i+1])
	}
	return listings.Target{ModelName: name, Fields: f}
}

func source(id, name string) listings.Source {
	return listings.Source{ID: id, Name: name}
}

// fixedScorer returns the score registered for a target name, 0 otherwise.
func fixedScorer(scores map[string]int) similarity.Scorer {
	return similarity.ScorerFunc(func(_, b string) int { return scores[b] })
}

func TestAliasWinsRegardlessOfName(t *testing.T) {
	targets := []listings.Target{target("Anything"), target("Acme Model X")}
	m := New(targets, aliases.Table{"m1": "Acme Model X"})

	got := m.Match(source("m1", "anything"))

	require.Equal(t, listings.KindAlias, got.Kind)
	require.NotNil(t, got.Target)
	assert.Equal(t, "Acme Model X", got.Target.ModelName)
	assert.Equal(t, "alias", got.Label())
}

func TestMissingAliasTargetFallsThrough(t *testing.T) {
	targets := []listings.Target{target("Llama 4 Scout")}
	m := New(targets, aliases.Table{"meta/llama-4-scout": "Llama 4 Scout (retired)"})

	got := m.Match(source("meta/llama-4-scout", "Meta: Llama 4 Scout"))

	assert.Equal(t, listings.KindExactNormalized, got.Kind)
	assert.Equal(t, "Llama 4 Scout", got.Target.ModelName)
}

func TestAliasIsNotNormalized(t *testing.T) {
	targets := []listings.Target{target("Acme Model X")}
	m := New(targets, aliases.Table{"m1": "acme model x"}, WithScorer(fixedScorer(nil)))

	got := m.Match(source("m1", "zzz"))
	assert.Equal(t, listings.KindUnmatched, got.Kind)
}

func TestExactNormalized(t *testing.T) {
	targets := []listings.Target{target("Gemini 2.5 Flash"), target("Llama 4 Scout")}
	m := New(targets, nil)

	got := m.Match(source("meta-llama/llama-4-scout:free", "Llama-4-Scout"))

	assert.Equal(t, listings.KindExactNormalized, got.Kind)
	assert.Equal(t, "Llama 4 Scout", got.Target.ModelName)
	assert.Equal(t, "exact (norm)", got.Label())
}

func TestNormalizedCollisionLaterWins(t *testing.T) {
	targets := []listings.Target{
		target("Gemini 2.5 Pro", "Intelligence", "60"),
		target("Gemini 2.5 Pro (Preview)", "Intelligence", "58"),
	}
	m := New(targets, nil)

	got := m.Match(source("google/gemini-2.5-pro", "Google: Gemini 2.5 Pro"))

	assert.Equal(t, listings.KindExactNormalized, got.Kind)
	assert.Equal(t, "Gemini 2.5 Pro (Preview)", got.Target.ModelName)
}

func TestDuplicateTargetNamesBindFirst(t *testing.T) {
	targets := []listings.Target{
		target("Llama 4 Scout", "TPS", "first"),
		target("Llama 4 Scout", "TPS", "second"),
	}

	t.Run("alias", func(t *testing.T) {
		got := New(targets, aliases.Table{"m": "Llama 4 Scout"}).Match(source("m", ""))
		v, _ := got.Target.Fields.Get("TPS")
		assert.Equal(t, "first", v)
	})

	t.Run("exact", func(t *testing.T) {
		got := New(targets, nil).Match(source("m", "llama-4-scout"))
		v, _ := got.Target.Fields.Get("TPS")
		assert.Equal(t, "first", v)
	})
}

func TestFuzzyThreshold(t *testing.T) {
	targets := []listings.Target{target("DeepSeek V3.1")}

	t.Run("at or above threshold binds", func(t *testing.T) {
		m := New(targets, nil, WithScorer(fixedScorer(map[string]int{"DeepSeek V3.1": 93})))
		got := m.Match(source("deepseek/deepseek-chat-v3.1:free", "DeepSeek v3 point 1 instruct"))

		assert.Equal(t, listings.KindFuzzy, got.Kind)
		assert.Equal(t, 93, got.Score)
		assert.Equal(t, "fuzzy (93)", got.Label())
		assert.Equal(t, "DeepSeek V3.1", got.Target.ModelName)
	})

	t.Run("exactly threshold binds", func(t *testing.T) {
		m := New(targets, nil, WithScorer(fixedScorer(map[string]int{"DeepSeek V3.1": FuzzyThreshold})))
		assert.Equal(t, listings.KindFuzzy, m.Match(source("x", "something else")).Kind)
	})

	t.Run("below threshold is unmatched", func(t *testing.T) {
		m := New(targets, nil, WithScorer(fixedScorer(map[string]int{"DeepSeek V3.1": 85})))
		got := m.Match(source("x", "DeepSeek v3 point 1 instruct"))

		assert.Equal(t, listings.KindUnmatched, got.Kind)
		assert.Nil(t, got.Target)
		assert.Zero(t, got.Score)
	})
}

func TestFuzzyTiesKeepFirstOccurrence(t *testing.T) {
	targets := []listings.Target{target("A"), target("B"), target("C")}
	m := New(targets, nil, WithScorer(fixedScorer(map[string]int{"A": 91, "B": 95, "C": 95})))

	got := m.Match(source("x", "query"))
	assert.Equal(t, "B", got.Target.ModelName)
	assert.Equal(t, 95, got.Score)
}

func TestFuzzyWithDefaultScorer(t *testing.T) {
	targets := []listings.Target{target("Llama 3.3 Instruct 70B"), target("GPT-4o")}
	m := New(targets, nil)

	// Normalization drops "instruct" and the tier markers on both sides.
	got := m.Match(source("meta-llama/llama-3.3-70b-instruct:free", "Llama 3.3 70B Instruct (free) v2"))
	assert.Equal(t, listings.KindExactNormalized, got.Kind)

	// Reordered tokens defeat the exact step but score 100 on token sort.
	got = m.Match(source("x", "Instruct 70B Llama 3.3"))
	require.Equal(t, listings.KindFuzzy, got.Kind)
	assert.Equal(t, 100, got.Score)
	assert.Equal(t, "Llama 3.3 Instruct 70B", got.Target.ModelName)

	got = m.Match(source("x", "Claude Opus 4"))
	assert.Equal(t, listings.KindUnmatched, got.Kind)
}

func TestFuzzyBindsLongerTargetName(t *testing.T) {
	tests := []struct {
		source, target string
		score          int
	}{
		{source: "Devstral Small 2505", target: "Devstral Small 2505 May", score: 90},
		{source: "Gemini 2.5 Flash Lite", target: "Gemini 2.5 Flash Lite Sep", score: 91},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			m := New([]listings.Target{target(tt.target)}, nil)

			got := m.Match(source("x", tt.source))
			require.Equal(t, listings.KindFuzzy, got.Kind)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.target, got.Target.ModelName)
		})
	}
}

func TestEmptyCatalogIsUnmatched(t *testing.T) {
	m := New(nil, aliases.Table{"m1": "Acme Model X"})

	sources := []listings.Source{source("m1", "Acme Model X"), source("m2", ""), source("m3", "Llama 4")}
	results := m.MatchAll(sources)

	require.Len(t, results, len(sources))
	for i, r := range results {
		assert.Equal(t, listings.KindUnmatched, r.Kind)
		assert.Nil(t, r.Target)
		assert.Equal(t, sources[i], r.Source)
	}
}

func TestMatchAllPreservesOrder(t *testing.T) {
	targets := []listings.Target{target("Llama 4 Scout"), target("Gemini 2.5 Pro")}
	m := New(targets, aliases.Table{"c": "Gemini 2.5 Pro"})

	sources := []listings.Source{
		source("a", "Unknown Model"),
		source("b", "Llama-4-Scout"),
		source("c", "whatever"),
		source("a", "Unknown Model"),
	}
	results := m.MatchAll(sources)

	require.Len(t, results, 4)
	for i := range sources {
		assert.Equal(t, sources[i], results[i].Source)
	}
	assert.Equal(t, []listings.MatchKind{
		listings.KindUnmatched,
		listings.KindExactNormalized,
		listings.KindAlias,
		listings.KindUnmatched,
	}, []listings.MatchKind{results[0].Kind, results[1].Kind, results[2].Kind, results[3].Kind})
	assert.Empty(t, m.MatchAll(nil))
}

// Names that normalize to "" share the empty key, so "Free" binds to a
// "(free)" target through the exact step, not the fuzzy one.
func TestEmptyNormalizedNamesMatchExactly(t *testing.T) {
	targets := []listings.Target{target("Llama 4 Scout"), target("(free)")}
	m := New(targets, nil, WithScorer(fixedScorer(nil)))

	got := m.Match(source("x", "Free"))
	assert.Equal(t, listings.KindExactNormalized, got.Kind)
	require.NotNil(t, got.Target)
	assert.Equal(t, "(free)", got.Target.ModelName)

	got = m.Match(source("y", ""))
	assert.Equal(t, listings.KindExactNormalized, got.Kind)

	m = New([]listings.Target{target("Llama 4 Scout")}, nil, WithScorer(fixedScorer(nil)))
	assert.Equal(t, listings.KindUnmatched, m.Match(source("x", "Free")).Kind)
}

func TestMatcherLogsCollisions(t *testing.T) {
	tl := logging.NewTestLogger(t)
	New([]listings.Target{target("Qwen3 Coder"), target("Qwen3")}, nil, WithLogger(tl.Logger))
	tl.AssertContains(t, "Normalized name collision")
}

func TestSummarize(t *testing.T) {
	results := []listings.MatchResult{
		{Kind: listings.KindAlias},
		{Kind: listings.KindExactNormalized},
		{Kind: listings.KindExactNormalized},
		{Kind: listings.KindFuzzy, Score: 92},
		{Kind: listings.KindUnmatched},
	}
	s := Summarize(results)
	assert.Equal(t, Stats{Total: 5, Alias: 1, Exact: 2, Fuzzy: 1, Unmatched: 1}, s)
	assert.Equal(t, 4, s.Matched())
}
