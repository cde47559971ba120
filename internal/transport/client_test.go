package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/freerank/pkg/errors"
)

type payload struct {
	Data []string `json:"data"`
}

func TestGetAppliesAuth(t *testing.T) {
	var gotAuth, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"data":["a","b"]}`))
	}))
	defer srv.Close()

	client := New("test", &BearerAuth{}, "secret")
	resp, err := client.Get(context.Background(), srv.URL)
	require.NoError(t, err)

	var got payload
	require.NoError(t, DecodeResponse(resp, &got, "test"))

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, []string{"a", "b"}, got.Data)
}

func TestGetWithoutKeySkipsAuth(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	resp, err := New("test", &BearerAuth{}, "").Get(context.Background(), srv.URL)
	require.NoError(t, err)
	require.NoError(t, DecodeResponse(resp, &payload{}, "test"))

	assert.Empty(t, gotAuth)
}

func TestDecodeResponseErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   "slow down",
			check: func(t *testing.T, err error) {
				var apiErr *errors.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
				assert.Equal(t, "slow down", apiErr.Message)
				assert.NotEmpty(t, apiErr.Endpoint)
				assert.True(t, errors.IsRateLimited(err))
			},
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsSourceUnavailable(err))
				assert.Contains(t, err.Error(), "502")
			},
		},
		{
			name:   "bad json",
			status: http.StatusOK,
			body:   `{"data":`,
			check: func(t *testing.T, err error) {
				var parseErr *errors.ParseError
				assert.True(t, errors.As(err, &parseErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := New("test", nil, "").Get(context.Background(), srv.URL)
			require.NoError(t, err)

			err = DecodeResponse(resp, &payload{}, "test")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestGetCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("test", nil, "").Get(ctx, "http://127.0.0.1:1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New("test", nil, "").Get(context.Background(), url)

	var apiErr *errors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "test", apiErr.Source)
}
