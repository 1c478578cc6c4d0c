package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spotweb/internal/errors"
	"spotweb/internal/testutil"
)

func TestRunToken_RequiresClientCredentials(t *testing.T) {
	setupTestApp(t, testConfig(), &testutil.Transport{})

	cmd, out := newTestCommand()
	err := runToken(cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, out.String())
}

func TestRunToken_ClientCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"app-token","token_type":"bearer","expires_in":3600}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.Token = ""
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "client-secret"
	cfg.TokenURL = server.URL
	setupTestApp(t, cfg, &testutil.Transport{})

	cmd, out := newTestCommand()
	require.NoError(t, runToken(cmd, nil))
	assert.Equal(t, "app-token\n", out.String())
}

func TestRunToken_RejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.ClientID = "client-id"
	cfg.ClientSecret = "wrong"
	cfg.TokenURL = server.URL
	setupTestApp(t, cfg, &testutil.Transport{})

	cmd, _ := newTestCommand()
	err := runToken(cmd, nil)
	require.Error(t, err)
	assert.True(t, errors.IsAuthentication(err))
	assert.Contains(t, err.Error(), "invalid_client (Invalid client)")
}
