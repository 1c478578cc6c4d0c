// Package app wires spotweb's dependencies together.
package app

import (
	"context"
	"io"
	"log/slog"

	"spotweb/internal/auth"
	"spotweb/internal/config"
	"spotweb/internal/domain"
	"spotweb/internal/spotify"
)

// App contains all application dependencies.
type App struct {
	// Configuration
	Config     *config.Config
	ConfigRepo domain.ConfigRepository

	// Web API access
	Builder     *spotify.Builder
	TokenSource domain.TokenSource
	Tokens      *auth.Resolver

	// File operations
	FileSystem domain.FileSystemAdapter

	// Logging
	Logger *slog.Logger

	// Options the app was built with
	Options *Options
}

// Options holds settings that come from flags or tests rather than the config file.
type Options struct {
	Verbose     bool
	ConfigPath  string
	LogOutput   io.Writer
	Transport   domain.Transport
	TokenReader domain.TokenReader
}

// Option is a functional option for configuring the App.
type Option func(*Options)

// WithVerbose enables debug logging regardless of the configured level.
func WithVerbose(verbose bool) Option {
	return func(o *Options) {
		o.Verbose = verbose
	}
}

// WithConfigPath overrides the settings file location.
func WithConfigPath(path string) Option {
	return func(o *Options) {
		o.ConfigPath = path
	}
}

// WithLogOutput sends log output to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *Options) {
		o.LogOutput = w
	}
}

// WithTransport replaces the HTTP transport, e.g. with a fake in tests.
func WithTransport(transport domain.Transport) Option {
	return func(o *Options) {
		o.Transport = transport
	}
}

// WithTokenReader replaces the interactive token prompt.
func WithTokenReader(reader domain.TokenReader) Option {
	return func(o *Options) {
		o.TokenReader = reader
	}
}

// NewApp creates a new App from runtime configuration and options.
func NewApp(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return NewAppWithConfig(ctx, cfg, options)
}

// ResolveToken returns the access token to use for the next call.
func (a *App) ResolveToken(ctx context.Context) (string, error) {
	return a.Tokens.Resolve(ctx)
}
