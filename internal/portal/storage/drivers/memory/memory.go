// Package memory is an in-process storage driver. Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/storage"
)

type Store struct {
	mu       sync.RWMutex
	tokens   map[storage.Principal]string
	attempts map[string]time.Time
}

func NewStore() *Store {
	return &Store{
		tokens:   make(map[storage.Principal]string),
		attempts: make(map[string]time.Time),
	}
}

func (s *Store) Tokens(p storage.Principal) storage.TokenStore { return &tokenSlot{s: s, p: p} }
func (s *Store) Attempts() storage.AttemptGuard               { return (*attemptGuard)(s) }
func (s *Store) Close() error                                 { return nil }

type tokenSlot struct {
	s *Store
	p storage.Principal
}

func (t *tokenSlot) Get(_ context.Context) (string, error) {
	if !t.p.Valid() {
		return "", storage.ErrUnknownPrincipal
	}
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	tok, ok := t.s.tokens[t.p]
	if !ok || tok == "" {
		return "", storage.ErrNoToken
	}
	return tok, nil
}

func (t *tokenSlot) Set(_ context.Context, token string) error {
	if !t.p.Valid() {
		return storage.ErrUnknownPrincipal
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	t.s.tokens[t.p] = token
	return nil
}

func (t *tokenSlot) Clear(_ context.Context) error {
	if !t.p.Valid() {
		return storage.ErrUnknownPrincipal
	}
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	delete(t.s.tokens, t.p)
	return nil
}

type attemptGuard Store

func (g *attemptGuard) LastAttempt(_ context.Context, key string) (time.Time, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	at, ok := g.attempts[key]
	return at, ok, nil
}

func (g *attemptGuard) RecordAttempt(_ context.Context, key string, at time.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attempts[key] = at
	return nil
}
