package academysdk

import (
	"context"
	"fmt"
	"sync"

	"github.com/prestige-strategies/academy/pkg/jwtx"
)

// Session performs bearer calls with one backend-issued token. A token whose
// decoded expiry has passed is never sent; the call fails with
// ErrTokenExpired instead. There is no refresh flow.
type Session struct {
	client *SDKClient
	source TokenSource

	mu    sync.RWMutex
	token string
}

// TokenSource supplies the current bearer token on every call, so a Session
// follows logins and logouts of whoever owns the token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Token returns the bearer token without checking expiry.
func (s *Session) Token() string {
	if s.source != nil {
		tok, _ := s.source.Token(context.Background())
		return tok
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Expired reports whether the token's decoded expiry is in the past.
func (s *Session) Expired() bool {
	return jwtx.ExpiredAt(s.Token(), s.client.now())
}

// getValidToken returns the token if it may still be sent.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	var token string
	if s.source != nil {
		tok, err := s.source.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrNoToken, err)
		}
		token = tok
	} else {
		s.mu.RLock()
		token = s.token
		s.mu.RUnlock()
	}

	if token == "" {
		return "", ErrNoToken
	}
	if jwtx.ExpiredAt(token, s.client.now()) {
		return "", ErrTokenExpired
	}
	return token, nil
}
