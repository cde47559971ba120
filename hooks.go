package freerank

import "github.com/agentstation/freerank/pkg/listings"

// MatchHook is called once per source listing after matching, in feed order.
type MatchHook func(result listings.MatchResult)

// triggerMatches calls every hook for every result.
func triggerMatches(hooks []MatchHook, results []listings.MatchResult) {
	if len(hooks) == 0 {
		return
	}
	for _, r := range results {
		for _, fn := range hooks {
			fn(r)
		}
	}
}
