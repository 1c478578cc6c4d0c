// Package http provides the resty-backed transport that performs Web API calls.
package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"spotweb/internal/domain"
	"spotweb/internal/errors"
)

const defaultTimeout = 30 * time.Second

// Adapter is a domain.Transport built on resty.
// It does not retry and does not throttle: every call is a single exchange.
type Adapter struct {
	client *resty.Client
}

var _ domain.Transport = (*Adapter)(nil)

// NewAdapter creates a new HTTP adapter. A zero timeout selects the default of 30s.
func NewAdapter(timeout time.Duration, insecureSkipVerify bool, logger *slog.Logger) *Adapter {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetAllowGetMethodPayload(true).
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: insecureSkipVerify, //nolint:gosec // User-configurable for intercepting proxies
		})

	// Add logging middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return &Adapter{
		client: client,
	}
}

// Do performs the request described by config.
//
// Non-2xx responses are returned as *errors.TransportError carrying the
// status, status text, headers and decoded body. Failures without a response
// are returned as *errors.TransportError with code ERR_NETWORK or ERR_CANCELED.
func (a *Adapter) Do(ctx context.Context, config *domain.RequestConfig) (*domain.Response, error) {
	target := resolveURL(config.BaseURL, config.URL)
	if len(config.Params) > 0 {
		target = appendQuery(target, serialize(config))
	}

	request := a.client.R().
		SetContext(ctx).
		SetHeaders(config.Headers)

	if config.Data != nil {
		body, err := encodeBody(config.Data)
		if err != nil {
			return nil, err
		}
		request.SetBody(body)
	}

	resp, err := request.Execute(config.Method, target)
	if err != nil {
		return nil, errors.NewNetworkError(config.Method, target, err)
	}

	data := decodeBody(resp.Header().Get("Content-Type"), resp.Body())
	if !resp.IsSuccess() {
		return nil, errors.NewResponseError(config.Method, target, &errors.ResponseInfo{
			Status:     resp.StatusCode(),
			StatusText: statusText(resp),
			Headers:    resp.Header(),
			Data:       data,
		})
	}

	return &domain.Response{
		Data:       data,
		Status:     resp.StatusCode(),
		StatusText: statusText(resp),
		Headers:    resp.Header(),
	}, nil
}

// resolveURL joins baseURL and path with exactly one slash. An absolute path
// (scheme or protocol-relative) is used as-is.
func resolveURL(baseURL, path string) string {
	if baseURL == "" || isAbsoluteURL(path) {
		return path
	}
	if path == "" {
		return baseURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

func isAbsoluteURL(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}
	parsed, err := url.Parse(path)
	return err == nil && parsed.IsAbs()
}

// appendQuery adds query to target, dropping any fragment.
func appendQuery(target, query string) string {
	if query == "" {
		return target
	}
	if i := strings.IndexByte(target, '#'); i >= 0 {
		target = target[:i]
	}
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}

func serialize(config *domain.RequestConfig) string {
	if config.ParamsSerializer != nil {
		return config.ParamsSerializer(config.Params)
	}
	return encodeRepeated(config.Params)
}

// encodeRepeated is the usual repeated-key encoding, used when no serializer is set.
func encodeRepeated(params domain.Params) string {
	values := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case []string:
			values[key] = slices.Clone(v)
		case []any:
			for _, item := range v {
				values.Add(key, fmt.Sprint(item))
			}
		case nil:
			values.Set(key, "")
		default:
			values.Set(key, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

// encodeBody passes strings, bytes and readers through and JSON-encodes any
// other value, whatever the Content-Type header says.
func encodeBody(data any) (any, error) {
	switch data.(type) {
	case string, []byte, io.Reader:
		return data, nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return nil, errors.NewValidationError("data", fmt.Sprintf("%T", data), "json",
			fmt.Sprintf("request body cannot be encoded as JSON: %v", err))
	}
	return body, nil
}

// decodeBody returns the parsed value of a JSON body, or the body as a string
// for any other content type or for JSON that does not parse. An empty body
// decodes to nil.
func decodeBody(contentType string, body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if resty.IsJSONType(contentType) {
		var value any
		if err := json.Unmarshal(body, &value); err == nil {
			return value
		}
	}
	return string(body)
}

func statusText(resp *resty.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status(), strconv.Itoa(resp.StatusCode())))
}
