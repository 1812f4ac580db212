// Package sqlite is the durable storage driver: tokens and attempt
// timestamps survive restarts of the portal.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens dsn and applies migrations.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer keeps in-memory databases coherent across the pool.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dsn: dsn}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Tokens(p storage.Principal) storage.TokenStore {
	return &tokenSlot{db: s.db, p: p}
}

func (s *Store) Attempts() storage.AttemptGuard { return &attemptGuard{db: s.db} }

type tokenSlot struct {
	db *sql.DB
	p  storage.Principal
}

func (t *tokenSlot) Get(ctx context.Context) (string, error) {
	if !t.p.Valid() {
		return "", storage.ErrUnknownPrincipal
	}
	var token string
	err := t.db.QueryRowContext(ctx,
		`SELECT token FROM tokens WHERE storage_key = ?`, t.p.Key(),
	).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && token == "") {
		return "", storage.ErrNoToken
	}
	return token, err
}

func (t *tokenSlot) Set(ctx context.Context, token string) error {
	if !t.p.Valid() {
		return storage.ErrUnknownPrincipal
	}
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO tokens (storage_key, token, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (storage_key) DO UPDATE SET token = excluded.token, updated_at = excluded.updated_at`,
		t.p.Key(), token,
	)
	return err
}

func (t *tokenSlot) Clear(ctx context.Context) error {
	if !t.p.Valid() {
		return storage.ErrUnknownPrincipal
	}
	_, err := t.db.ExecContext(ctx, `DELETE FROM tokens WHERE storage_key = ?`, t.p.Key())
	return err
}

type attemptGuard struct {
	db *sql.DB
}

func (g *attemptGuard) LastAttempt(ctx context.Context, key string) (time.Time, bool, error) {
	var ms int64
	err := g.db.QueryRowContext(ctx,
		`SELECT attempted_at FROM attempts WHERE attempt_key = ?`, key,
	).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms).UTC(), true, nil
}

func (g *attemptGuard) RecordAttempt(ctx context.Context, key string, at time.Time) error {
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO attempts (attempt_key, attempted_at) VALUES (?, ?)
		ON CONFLICT (attempt_key) DO UPDATE SET attempted_at = excluded.attempted_at`,
		key, at.UnixMilli(),
	)
	return err
}
