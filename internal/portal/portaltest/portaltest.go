// Package portaltest has helpers shared by the portal component tests.
package portaltest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// TokenExpiring returns a signed token whose exp claim is exp. The signature
// is meaningless; clients only ever decode the claim.
func TokenExpiring(t testing.TB, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "portaltest",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("portaltest"))
	require.NoError(t, err)
	return s
}

// Eventually waits for ch to receive or fails after a second.
func Eventually[T any](t testing.TB, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		var zero T
		return zero
	}
}

// Never asserts ch stays silent for a short while.
func Never[T any](t testing.TB, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected event: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}
