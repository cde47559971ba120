package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/freerank/pkg/errors"
)

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("cache_ttl", "-1h", "must not be negative")
		assert.Equal(t, "validation failed for field cache_ttl: must not be negative", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		rateLimited bool
		unavailable bool
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, rateLimited: true},
		{name: "server error", status: http.StatusBadGateway, unavailable: true},
		{name: "client error", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("openrouter", tt.status, "boom")
			assert.Contains(t, err.Error(), "openrouter")
			assert.Contains(t, err.Error(), fmt.Sprint(tt.status))
			assert.Equal(t, tt.rateLimited, pkgerrors.IsRateLimited(err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsSourceUnavailable(err))
		})
	}

	t.Run("unwraps transport error", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.APIError{Source: "openrouter", Message: "request failed", Err: base}
		assert.Equal(t, "API error from openrouter: request failed", err.Error())
		assert.ErrorIs(t, err, base)
	})
}

func TestScrapeError(t *testing.T) {
	base := errors.New("no table element")
	err := pkgerrors.NewScrapeError("wait", "https://example.test/board", base)

	assert.Equal(t, "scrape failed during wait of https://example.test/board: no table element", err.Error())
	assert.True(t, pkgerrors.IsScrapeError(err))
	assert.ErrorIs(t, err, base)

	noURL := pkgerrors.NewScrapeError("parse", "", base)
	assert.Equal(t, "scrape failed during parse: no table element", noURL.Error())
}

func TestParseError(t *testing.T) {
	base := errors.New("unexpected token")
	err := pkgerrors.NewParseError("yaml", "model_aliases.json", "bad mapping", base)
	assert.Equal(t, "parse error in yaml file model_aliases.json: bad mapping", err.Error())
	assert.ErrorIs(t, err, base)

	noFile := pkgerrors.NewParseError("json", "", "truncated", nil)
	assert.Equal(t, "json parse error: truncated", noFile.Error())
}

func TestIOAndResourceErrors(t *testing.T) {
	base := errors.New("permission denied")

	ioErr := pkgerrors.NewIOError("write", "cache/x.json", base)
	assert.Equal(t, "IO error during write of cache/x.json: permission denied", ioErr.Error())
	assert.ErrorIs(t, ioErr, base)

	resErr := pkgerrors.NewResourceError("fetch", "sources", "", base)
	assert.Equal(t, "failed to fetch sources: permission denied", resErr.Error())

	withID := pkgerrors.NewResourceError("write", "report", "out.md", base)
	assert.Equal(t, "failed to write report out.md: permission denied", withID.Error())
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing key")
	err := pkgerrors.NewConfigError("viper", "cannot read config", base)
	assert.Equal(t, "configuration error in viper: cannot read config", err.Error())
	assert.ErrorIs(t, err, base)
}

func TestWrapHelpers(t *testing.T) {
	require.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	require.NoError(t, pkgerrors.WrapResource("fetch", "sources", "", nil))
	require.NoError(t, pkgerrors.WrapParse("json", "", nil))

	base := errors.New("base")

	var ioErr *pkgerrors.IOError
	require.True(t, errors.As(pkgerrors.WrapIO("read", "x", base), &ioErr))
	assert.Equal(t, "read", ioErr.Operation)

	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(pkgerrors.WrapParse("json", "f", base), &parseErr))
	assert.Equal(t, "base", parseErr.Message)

	var resErr *pkgerrors.ResourceError
	require.True(t, errors.As(pkgerrors.WrapResource("fetch", "leaderboard", "", base), &resErr))
	assert.Equal(t, "leaderboard", resErr.Resource)
}
