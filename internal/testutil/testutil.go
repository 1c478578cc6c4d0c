// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"context"
	"log/slog"
	"sync"

	"spotweb/internal/domain"
	"spotweb/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Transport is a domain.Transport that records the configs it is given and
// answers every call with Response and Err.
type Transport struct {
	Response *domain.Response
	Err      error

	mu    sync.Mutex
	calls []*domain.RequestConfig
}

// Do records config and returns the canned result.
func (t *Transport) Do(_ context.Context, config *domain.RequestConfig) (*domain.Response, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, config)
	return t.Response, t.Err
}

// Calls returns every config received so far.
func (t *Transport) Calls() []*domain.RequestConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*domain.RequestConfig(nil), t.calls...)
}

// LastCall returns the most recent config, or nil if Do was never called.
func (t *Transport) LastCall() *domain.RequestConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return nil
	}
	return t.calls[len(t.calls)-1]
}
