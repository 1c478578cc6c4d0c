// Package auth obtains access tokens for the Web API.
//
// Tokens are fetched on demand and never cached or refreshed here; a caller
// that needs a new token simply asks again.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"spotweb/internal/domain"
	"spotweb/internal/errors"
)

// DefaultTokenURL is Spotify's accounts service token endpoint.
const DefaultTokenURL = "https://accounts.spotify.com/api/token"

const flowClientCredentials = "client_credentials"

// ClientCredentials fetches app access tokens with the OAuth2 client
// credentials flow.
type ClientCredentials struct {
	config     *clientcredentials.Config
	httpClient *http.Client
	logger     *slog.Logger
}

var _ domain.TokenSource = (*ClientCredentials)(nil)

// NewClientCredentials creates a client credentials token source.
// An empty tokenURL selects DefaultTokenURL; a nil httpClient uses the oauth2 default.
func NewClientCredentials(
	clientID, clientSecret, tokenURL, scopes string,
	httpClient *http.Client,
	logger *slog.Logger,
) *ClientCredentials {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}

	return &ClientCredentials{
		config: &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
			Scopes:       strings.Fields(scopes),
			AuthStyle:    oauth2.AuthStyleInHeader,
		},
		httpClient: httpClient,
		logger:     logger,
	}
}

// Token requests a new access token from the token endpoint.
func (c *ClientCredentials) Token(ctx context.Context) (string, error) {
	if c.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	}

	c.logger.DebugContext(ctx, "Requesting access token",
		"tokenURL", c.config.TokenURL,
		"clientID", c.config.ClientID)

	token, err := c.config.Token(ctx)
	if err != nil {
		return "", errors.NewAuthenticationError(c.config.TokenURL, flowClientCredentials, c.config.ClientID, err)
	}

	c.logger.InfoContext(ctx, "Obtained access token",
		"tokenType", token.TokenType,
		"expiry", token.Expiry)

	return token.AccessToken, nil
}
