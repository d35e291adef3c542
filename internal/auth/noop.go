package auth

import (
	"context"
	"errors"
	"strings"
)

// noopVerifier skips signature verification entirely and treats the bearer
// token as the user ID. Local development and tests only.
type noopVerifier struct{}

func newNoopVerifier(_ Config) Verifier {
	return noopVerifier{}
}

func (noopVerifier) Verify(_ context.Context, token string) (AuthenticatedUser, error) {
	if strings.TrimSpace(token) == "" {
		return AuthenticatedUser{}, errors.New("token must not be empty")
	}
	return AuthenticatedUser{UserID: token, Token: token}, nil
}
