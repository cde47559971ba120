// Package transport provides the HTTP client used to fetch upstream feeds.
package transport

import (
	"context"
	"net/http"

	"github.com/agentstation/freerank/pkg/constants"
	"github.com/agentstation/freerank/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http   *http.Client
	auth   Authenticator
	apiKey string
	source string
}

// New creates a transport client for the named source. The authenticator is
// applied only when apiKey is non-empty.
func New(source string, auth Authenticator, apiKey string) *Client {
	if auth == nil {
		auth = &NoAuth{}
	}
	return &Client{
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   auth,
		apiKey: apiKey,
		source: source,
	}
}

// Do performs an HTTP request with authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	if c.apiKey != "" {
		c.auth.Apply(req, c.apiKey)
	}

	req.Header.Set("Accept", "application/json")
	if req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &errors.APIError{
			Source:   c.source,
			Endpoint: req.URL.String(),
			Message:  "request failed",
			Err:      err,
		}
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+url, err)
	}
	return c.Do(ctx, req)
}
