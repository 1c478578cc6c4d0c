package domain

import (
	"context"
	"net/http"
)

// DefaultContentType is sent when a request does not specify its own content type.
const DefaultContentType = "application/json"

// Params maps query parameter names to a scalar or a slice of scalars.
type Params map[string]any

// ParamsSerializer turns a Params mapping into a URL query string (without the leading "?").
type ParamsSerializer func(Params) string

// RequestOptions holds the optional parts of a Web API call.
type RequestOptions struct {
	// ContentType overrides DefaultContentType when non-empty.
	ContentType string
	// Data is the request body. It is handed to the transport untouched.
	Data any
	// Params become the query string.
	Params Params
}

// RequestConfig is the fully resolved descriptor handed to a Transport.
// A new one is built for every call.
type RequestConfig struct {
	BaseURL          string
	URL              string
	Method           string
	Headers          map[string]string
	ParamsSerializer ParamsSerializer
	Params           Params
	Data             any
}

// Response is what a Transport resolves with on success.
type Response struct {
	Data       any
	Status     int
	StatusText string
	Headers    http.Header
}

// Transport performs the actual HTTP exchange for a RequestConfig.
type Transport interface {
	Do(ctx context.Context, config *RequestConfig) (*Response, error)
}

// TransportFunc adapts an ordinary function to the Transport interface.
type TransportFunc func(ctx context.Context, config *RequestConfig) (*Response, error)

// Do calls f(ctx, config).
func (f TransportFunc) Do(ctx context.Context, config *RequestConfig) (*Response, error) {
	return f(ctx, config)
}
