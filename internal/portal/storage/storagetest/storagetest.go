// Package storagetest holds the behaviour every storage driver must share.
package storagetest

import (
	"context"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/stretchr/testify/require"
)

// Run exercises a fresh store returned by newStore.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty slot reports no token", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Tokens(storage.PrincipalStudent).Get(ctx)
		require.ErrorIs(t, err, storage.ErrNoToken)
	})

	t.Run("set get clear", func(t *testing.T) {
		s := newStore(t)
		slot := s.Tokens(storage.PrincipalAdmin)

		require.NoError(t, slot.Set(ctx, "first"))
		require.NoError(t, slot.Set(ctx, "second"))
		tok, err := slot.Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "second", tok)

		require.NoError(t, slot.Clear(ctx))
		_, err = slot.Get(ctx)
		require.ErrorIs(t, err, storage.ErrNoToken)

		require.NoError(t, slot.Clear(ctx), "clearing an empty slot is fine")
	})

	t.Run("principals never cross read", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Tokens(storage.PrincipalAdmin).Set(ctx, "admin-token"))

		_, err := s.Tokens(storage.PrincipalStudent).Get(ctx)
		require.ErrorIs(t, err, storage.ErrNoToken)

		require.NoError(t, s.Tokens(storage.PrincipalStudent).Set(ctx, "student-token"))
		require.NoError(t, s.Tokens(storage.PrincipalStudent).Clear(ctx))

		tok, err := s.Tokens(storage.PrincipalAdmin).Get(ctx)
		require.NoError(t, err)
		require.Equal(t, "admin-token", tok)
	})

	t.Run("unknown principal", func(t *testing.T) {
		s := newStore(t)
		_, err := s.Tokens("instructor").Get(ctx)
		require.ErrorIs(t, err, storage.ErrUnknownPrincipal)
		require.ErrorIs(t, s.Tokens("instructor").Set(ctx, "x"), storage.ErrUnknownPrincipal)
	})

	t.Run("attempt guard is last write wins", func(t *testing.T) {
		s := newStore(t)
		guard := s.Attempts()
		key := storage.CourseAttemptKey("c1")

		_, ok, err := guard.LastAttempt(ctx, key)
		require.NoError(t, err)
		require.False(t, ok)

		first := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
		second := first.Add(90 * time.Minute)
		require.NoError(t, guard.RecordAttempt(ctx, key, first))
		require.NoError(t, guard.RecordAttempt(ctx, key, second))

		at, ok, err := guard.LastAttempt(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, at.Equal(second))

		_, ok, err = guard.LastAttempt(ctx, storage.JobAttemptKey("c1"))
		require.NoError(t, err)
		require.False(t, ok, "course and job keys are distinct")
	})
}
