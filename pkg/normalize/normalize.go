// Package normalize canonicalizes free-text model names into comparable keys.
//
// Provider catalogs prepend vendor labels and append tier or version
// qualifiers inconsistently. Normalize makes "Google: Gemini 2.5 Pro (free)"
// and "Gemini-2.5-Pro" converge on "gemini 2.5 pro" while keeping meaningful
// version numbers such as "2.5".
package normalize

import (
	"regexp"
	"strings"
)

// NoiseTokens are removed as whole words after punctuation is stripped.
// Parenthesised markers like "(free)" have already become bare words by then.
var NoiseTokens = []string{
	// generic version markers
	"v1", "v2", "v3", "v4",
	// instruction and chat tuning
	"instruct", "chat", "it",
	// free tier
	"free",
	// experimental and preview builds
	"experimental", "exp", "preview",
	// capability variants
	"thinking", "think", "coder", "vl",
}

var noisePattern = compileNoise(NoiseTokens)

func compileNoise(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Normalize returns the comparison key for a model name. It never fails and
// is idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(name string) string {
	if name == "" {
		return ""
	}

	name = strings.ToLower(name)

	// Only the first colon splits off the provider label.
	if _, rest, found := strings.Cut(name, ":"); found {
		name = rest
	}

	name = strings.Map(keepOrSpace, name)
	name = noisePattern.ReplaceAllString(name, "")

	return strings.Join(strings.Fields(name), " ")
}

// keepOrSpace keeps lowercase ASCII letters, digits and dots. Everything
// else, whitespace included, becomes a single space.
func keepOrSpace(r rune) rune {
	if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '.' {
		return r
	}
	return ' '
}
