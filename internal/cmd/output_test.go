package cmd

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotweb/internal/domain"
	"spotweb/internal/errors"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []string
		expected domain.Params
		wantErr  bool
	}{
		{"none", nil, nil, false},
		{"single", []string{"market=US"}, domain.Params{"market": "US"}, false},
		{"repeated key becomes list", []string{"ids=a", "ids=b", "ids=c"}, domain.Params{"ids": []string{"a", "b", "c"}}, false},
		{"value keeps equals signs", []string{"q=a=b"}, domain.Params{"q": "a=b"}, false},
		{"empty value", []string{"after="}, domain.Params{"after": ""}, false},
		{"commas are not split", []string{"ids=a,b"}, domain.Params{"ids": "a,b"}, false},
		{"missing equals", []string{"market"}, nil, true},
		{"empty key", []string{"=US"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := parseParams(tt.pairs)
			if tt.wantErr {
				assert.True(t, errors.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestWriteOutput(t *testing.T) {
	data := map[string]any{"name": "R&B", "ids": []any{"a", "b"}}

	var jsonOut bytes.Buffer
	require.NoError(t, writeOutput(&jsonOut, data, OutputJSON))
	assert.JSONEq(t, `{"name":"R&B","ids":["a","b"]}`, jsonOut.String())
	assert.Contains(t, jsonOut.String(), "R&B", "html characters are not escaped")

	var yamlOut bytes.Buffer
	require.NoError(t, writeOutput(&yamlOut, data, OutputYAML))
	assert.Equal(t, "ids:\n  - a\n  - b\nname: R&B\n", yamlOut.String())

	var textOut bytes.Buffer
	require.NoError(t, writeOutput(&textOut, "snapshot-1", OutputYAML))
	assert.Equal(t, "snapshot-1\n", textOut.String())

	var nilOut bytes.Buffer
	require.NoError(t, writeOutput(&nilOut, nil, OutputJSON))
	assert.Empty(t, nilOut.String())
}

func TestValidOutput(t *testing.T) {
	assert.NoError(t, validOutput(OutputJSON))
	assert.NoError(t, validOutput(OutputYAML))
	assert.True(t, errors.IsValidation(validOutput("table")))
}

func TestAPIErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		expected string
	}{
		{"web api envelope", map[string]any{"error": map[string]any{"status": 404.0, "message": "Non existing id"}}, "Non existing id"},
		{"accounts envelope", map[string]any{"error": "invalid_client", "error_description": "Invalid client"}, "invalid_client (Invalid client)"},
		{"accounts without description", map[string]any{"error": "invalid_grant"}, "invalid_grant"},
		{"no error key", map[string]any{"id": "x"}, ""},
		{"text body", "Bad gateway", ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, apiErrorMessage(tt.data))
		})
	}
}

func TestDescribeError(t *testing.T) {
	t.Run("plain error unchanged", func(t *testing.T) {
		plain := stderrors.New("boom")
		assert.Same(t, plain, describeError(plain))
	})

	t.Run("network error names the url", func(t *testing.T) {
		netErr := errors.NewNetworkError("GET", "https://api.spotify.com/v1/me", stderrors.New("dial tcp: connection refused"))
		err := describeError(netErr)
		assert.Equal(t, "could not reach https://api.spotify.com/v1/me: dial tcp: connection refused", err.Error())
		assert.True(t, errors.IsNetwork(err))
	})

	t.Run("canceled request unchanged", func(t *testing.T) {
		canceled := errors.NewNetworkError("GET", "/v1/me", context.Canceled)
		assert.Same(t, error(canceled), describeError(canceled))
	})

	t.Run("not found with api message", func(t *testing.T) {
		err := describeError(errors.NewResponseError("GET", "/v1/albums/x", &errors.ResponseInfo{
			Status: http.StatusNotFound,
			Data:   map[string]any{"error": map[string]any{"message": "Non existing id"}},
		}))
		assert.Equal(t, "Request failed with status code 404: Non existing id", err.Error())
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("rate limited without retry-after", func(t *testing.T) {
		err := describeError(errors.NewResponseError("GET", "/v1/me", &errors.ResponseInfo{
			Status: http.StatusTooManyRequests,
		}))
		assert.Equal(t, "Request failed with status code 429", err.Error())
		assert.True(t, errors.IsRateLimited(err))
	})
}

func TestErrorHint(t *testing.T) {
	response := func(status int) error {
		return errors.NewResponseError("GET", "https://api.spotify.com/v1/me", &errors.ResponseInfo{Status: status})
	}

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"expired token", response(http.StatusUnauthorized), "--token"},
		{"forbidden", response(http.StatusForbidden), "scope"},
		{"not found", response(http.StatusNotFound), "request path"},
		{"rate limited", response(http.StatusTooManyRequests), "does not retry"},
		{"network", errors.NewNetworkError("GET", "https://api.spotify.com/v1/me", stderrors.New("dial tcp")), "base_url"},
		{"authentication", errors.NewAuthenticationError("https://accounts.spotify.com/api/token", "client_credentials", "id", stderrors.New("denied")), "client_secret"},
		{"configuration", errors.NewConfigurationError("config_path", "/x", "failed to read config file", nil), "config show"},
		{"validation", errors.NewValidationError("param", "x", "key=value", "bad"), "--help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, errorHint(tt.err), tt.contains)
		})
	}

	assert.Empty(t, errorHint(response(http.StatusBadRequest)), "a 400 response is not a local usage error")
	assert.Empty(t, errorHint(response(http.StatusBadGateway)))
	assert.Empty(t, errorHint(stderrors.New("plain")))
}
