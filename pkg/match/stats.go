package match

import "github.com/agentstation/freerank/pkg/listings"

// Stats counts match results by kind.
type Stats struct {
	Total     int `json:"total" yaml:"total"`
	Alias     int `json:"alias" yaml:"alias"`
	Exact     int `json:"exact_normalized" yaml:"exact_normalized"`
	Fuzzy     int `json:"fuzzy" yaml:"fuzzy"`
	Unmatched int `json:"unmatched" yaml:"unmatched"`
}

// Matched returns the number of results bound to a target.
func (s Stats) Matched() int {
	return s.Alias + s.Exact + s.Fuzzy
}

// Summarize counts results by kind.
func Summarize(results []listings.MatchResult) Stats {
	s := Stats{Total: len(results)}
	for _, r := range results {
		switch r.Kind {
		case listings.KindAlias:
			s.Alias++
		case listings.KindExactNormalized:
			s.Exact++
		case listings.KindFuzzy:
			s.Fuzzy++
		default:
			s.Unmatched++
		}
	}
	return s
}
