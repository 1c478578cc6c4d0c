package app

import (
	"crypto/tls"
	"log/slog"
	"net/http"

	httpadapter "spotweb/internal/adapters/http"
	"spotweb/internal/auth"
	"spotweb/internal/config"
	"spotweb/internal/domain"
)

// TransportFactory creates the network-facing collaborators from runtime config.
type TransportFactory struct {
	logger *slog.Logger
}

// NewTransportFactory creates a new transport factory.
func NewTransportFactory(logger *slog.Logger) *TransportFactory {
	return &TransportFactory{
		logger: logger,
	}
}

// CreateTransport creates the resty-backed Web API transport.
func (tf *TransportFactory) CreateTransport(cfg *config.Config) domain.Transport {
	if cfg.InsecureSkipVerify {
		tf.logger.Warn("TLS certificate verification is disabled")
	}
	return httpadapter.NewAdapter(cfg.Timeout, cfg.InsecureSkipVerify, tf.logger)
}

// CreateTokenSource creates a client credentials token source, or returns nil
// when no client credentials are configured.
func (tf *TransportFactory) CreateTokenSource(cfg *config.Config) domain.TokenSource {
	if !cfg.HasClientCredentials() {
		return nil
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // User-configurable for intercepting proxies
		}
	}

	return auth.NewClientCredentials(cfg.ClientID, cfg.ClientSecret, cfg.TokenURL, "", httpClient, tf.logger)
}
