// Package spotify builds Spotify Web API requests and hands them to a transport.
//
// The package deliberately keeps no state between calls: every request gets a
// freshly built domain.RequestConfig, and whatever the transport returns,
// success or failure, is passed back to the caller as-is.
package spotify

import (
	"context"
	"log/slog"

	"spotweb/internal/domain"
)

// BaseAPIURL is the root of Spotify's Web API.
const BaseAPIURL = "https://api.spotify.com/v1"

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
)

// Builder assembles Web API requests and delegates them to a transport.
// It is safe for concurrent use.
type Builder struct {
	baseURL   string
	transport domain.Transport
	logger    *slog.Logger
}

// NewBuilder creates a Builder that resolves paths against baseURL.
// An empty baseURL falls back to BaseAPIURL.
func NewBuilder(baseURL string, transport domain.Transport, logger *slog.Logger) *Builder {
	if baseURL == "" {
		baseURL = BaseAPIURL
	}
	return &Builder{
		baseURL:   baseURL,
		transport: transport,
		logger:    logger,
	}
}

// BaseURL returns the base URL requests are resolved against.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Build returns the request config for a call without sending it.
// opts may be nil.
func (b *Builder) Build(path, method, token string, opts *domain.RequestOptions) *domain.RequestConfig {
	contentType := domain.DefaultContentType
	if opts != nil && opts.ContentType != "" {
		contentType = opts.ContentType
	}

	config := &domain.RequestConfig{
		BaseURL: b.baseURL,
		URL:     path,
		Method:  method,
		Headers: map[string]string{
			headerAuthorization: "Bearer " + token,
			headerContentType:   contentType,
		},
		ParamsSerializer: SerializeParams,
	}

	if opts != nil {
		if opts.Params != nil {
			config.Params = opts.Params
		}
		if opts.Data != nil {
			config.Data = opts.Data
		}
	}

	return config
}

// Send builds the request, passes it to the transport and returns the
// response data. Transport errors are returned unchanged, including rate
// limit responses; inspecting them is up to the caller.
func (b *Builder) Send(
	ctx context.Context,
	path, method, token string,
	opts *domain.RequestOptions,
) (any, error) {
	config := b.Build(path, method, token, opts)

	b.logger.DebugContext(ctx, "Sending Web API request",
		"method", method,
		"path", path,
		"params", len(config.Params))

	resp, err := b.transport.Do(ctx, config)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}
	return resp.Data, nil
}
