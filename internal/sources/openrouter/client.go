// Package openrouter fetches the OpenRouter model feed and keeps the
// free models as source listings.
package openrouter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/freerank/internal/cache"
	"github.com/agentstation/freerank/internal/transport"
	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
	"github.com/agentstation/freerank/pkg/listings"
	"github.com/agentstation/freerank/pkg/logging"
)

// SourceName identifies this feed in logs and errors.
const SourceName = "openrouter"

// Client fetches free models from OpenRouter.
type Client struct {
	URL     string
	http    *transport.Client
	cache   *cache.Store
	refresh bool
}

// Option configures a Client.
type Option func(*Client)

// WithURL overrides the models endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.URL = url
		}
	}
}

// WithAPIKey sends apiKey as a bearer token.
func WithAPIKey(apiKey string) Option {
	return func(c *Client) {
		c.http = transport.New(SourceName, &transport.BearerAuth{}, apiKey)
	}
}

// WithCache stores the raw feed in store.
func WithCache(store *cache.Store) Option {
	return func(c *Client) { c.cache = store }
}

// WithRefresh skips cache reads. Fresh responses are still cached.
func WithRefresh(refresh bool) Option {
	return func(c *Client) { c.refresh = refresh }
}

// NewClient creates an OpenRouter feed client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		URL:  constants.OpenRouterModelsURL,
		http: transport.New(SourceName, &transport.NoAuth{}, ""),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSources returns the free models as source listings.
func (c *Client) FetchSources(ctx context.Context) ([]listings.Source, error) {
	logger := logging.FromContext(logging.WithSource(ctx, SourceName))

	raw, err := c.load(ctx, logger)
	if err != nil {
		return nil, err
	}

	var resp ModelsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, errors.WrapParse("json", constants.SourcesCacheName, err)
	}

	sources := FreeSources(resp)
	logger.Info().
		Int("models", len(resp.Data)).
		Int("free", len(sources)).
		Msg("Loaded OpenRouter models")
	return sources, nil
}

// load returns the raw feed body, from the cache when allowed.
func (c *Client) load(ctx context.Context, logger *zerolog.Logger) (json.RawMessage, error) {
	var raw json.RawMessage
	if c.cache != nil && !c.refresh {
		ok, err := c.cache.Load(constants.SourcesCacheName, &raw)
		if err != nil {
			return nil, err
		}
		if ok {
			logger.Debug().Str("path", c.cache.Path(constants.SourcesCacheName)).Msg("Using cached OpenRouter models")
			return raw, nil
		}
	}

	logger.Info().Str("url", c.URL).Msg("Fetching OpenRouter models")
	start := time.Now()

	resp, err := c.http.Get(ctx, c.URL)
	if err != nil {
		return nil, err
	}
	if err := transport.DecodeResponse(resp, &raw, SourceName); err != nil {
		return nil, err
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Int("bytes", len(raw)).Msg("Fetched OpenRouter models")

	if c.cache != nil {
		if err := c.cache.Save(constants.SourcesCacheName, raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}
