// Package similarity provides the token-order-insensitive string similarity
// used by the fuzzy step of the match cascade. Scores run from 0 to 100.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Scorer rates how similar two names are on a 0..100 scale. Implementations
// must be symmetric under token reordering of either argument.
type Scorer interface {
	Score(a, b string) int
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(a, b string) int

// Score implements Scorer.
func (f ScorerFunc) Score(a, b string) int {
	return f(a, b)
}

// Default is the scorer used when none is configured.
var Default Scorer = ScorerFunc(TokenSortRatio)

// TokenSortRatio compares a and b after lowercasing, replacing anything that
// is not a letter, digit or underscore by a space, and sorting the resulting
// tokens. The score is the indel ratio of the two sorted strings,
// 2*LCS/(len(a)+len(b)), rounded half to even. Either side empty after
// preprocessing scores 0.
func TokenSortRatio(a, b string) int {
	sa, sb := sortedTokens(a), sortedTokens(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	return int(math.RoundToEven(100 * IndelRatio(sa, sb)))
}

// IndelRatio is the normalized similarity of a and b when only insertions
// and deletions are allowed. A substitution costs 2, so the distance is
// len(a)+len(b)-2*LCS.
func IndelRatio(a, b []rune) float64 {
	return levenshtein.RatioForStrings(a, b, levenshtein.DefaultOptions)
}

// sortedTokens lowercases s, splits it on anything but letters, digits and
// underscores and joins the sorted tokens with single spaces.
func sortedTokens(s string) []rune {
	tokens := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	sort.Strings(tokens)
	return []rune(strings.Join(tokens, " "))
}
