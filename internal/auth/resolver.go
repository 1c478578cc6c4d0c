package auth

import (
	"context"
	"fmt"
	"log/slog"

	"spotweb/internal/domain"
	"spotweb/internal/errors"
)

// Resolver picks the access token for a call: an explicit token first, then
// a token source, then an interactive prompt.
type Resolver struct {
	static string
	source domain.TokenSource
	reader domain.TokenReader
	logger *slog.Logger
}

// NewResolver creates a Resolver. source and reader may be nil.
func NewResolver(static string, source domain.TokenSource, reader domain.TokenReader, logger *slog.Logger) *Resolver {
	return &Resolver{
		static: static,
		source: source,
		reader: reader,
		logger: logger,
	}
}

// Resolve returns the first token available.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	if r.static != "" {
		r.logger.DebugContext(ctx, "Using configured access token")
		return r.static, nil
	}

	if r.source != nil {
		token, err := r.source.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to obtain access token: %w", err)
		}
		return token, nil
	}

	if r.reader != nil && r.reader.IsInteractive() {
		token, err := r.reader.ReadToken(ctx, "Spotify access token: ")
		if err != nil {
			return "", err
		}
		if token != "" {
			return token, nil
		}
	}

	return "", errors.NewValidationError(
		"token",
		"",
		"required",
		"no access token: pass --token, set SPOTWEB_TOKEN, or configure client_id and client_secret",
	)
}
