package application

import (
	"context"

	"github.com/agentstation/freerank/pkg/listings"
)

// StaticSources is a freerank.SourceFetcher returning fixed listings.
type StaticSources []listings.Source

// FetchSources implements freerank.SourceFetcher.
func (s StaticSources) FetchSources(ctx context.Context) ([]listings.Source, error) {
	return s, ctx.Err()
}

// StaticTargets is a freerank.TargetFetcher returning fixed listings.
type StaticTargets []listings.Target

// FetchTargets implements freerank.TargetFetcher.
func (t StaticTargets) FetchTargets(ctx context.Context) ([]listings.Target, error) {
	return t, ctx.Err()
}
