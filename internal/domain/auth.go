package domain

import "context"

// TokenReader handles secure access token input from users.
type TokenReader interface {
	ReadToken(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}

// TokenSource obtains an access token from an authorization server.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
