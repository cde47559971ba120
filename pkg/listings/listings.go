// Package listings defines the records that flow through a reconciliation
// run: source listings from the API feed, target listings from the scraped
// leaderboard, and the match results that link them.
package listings

import "fmt"

// Source is one model from the API feed. It is immutable once fetched.
type Source struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	ContextLength *int64  `json:"context_length,omitempty" yaml:"context_length,omitempty"`
	Description   *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Target is one leaderboard row. ModelName is the join key; Fields holds every
// scraped column in header order, the join key column included.
type Target struct {
	ModelName string  `json:"model_name" yaml:"model_name"`
	Fields    *Fields `json:"fields" yaml:"fields"`
}

// MatchKind records how a source listing was linked to a target listing.
type MatchKind string

// Match kinds, in cascade order.
const (
	KindAlias           MatchKind = "alias"
	KindExactNormalized MatchKind = "exact_normalized"
	KindFuzzy           MatchKind = "fuzzy"
	KindUnmatched       MatchKind = "unmatched"
)

// MatchResult is the outcome of matching one source listing. Target is nil
// when Kind is KindUnmatched. Score is only meaningful for KindFuzzy.
type MatchResult struct {
	Source Source    `json:"source" yaml:"source"`
	Target *Target   `json:"target,omitempty" yaml:"target,omitempty"`
	Kind   MatchKind `json:"kind" yaml:"kind"`
	Score  int       `json:"score,omitempty" yaml:"score,omitempty"`
}

// Matched reports whether the result is bound to a target.
func (r MatchResult) Matched() bool {
	return r.Kind != KindUnmatched && r.Target != nil
}

// Label is the human-readable match status shown in reports.
func (r MatchResult) Label() string {
	switch r.Kind {
	case KindAlias:
		return "alias"
	case KindExactNormalized:
		return "exact (norm)"
	case KindFuzzy:
		return fmt.Sprintf("fuzzy (%d)", r.Score)
	default:
		return "unmatched"
	}
}
