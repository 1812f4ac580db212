package jwtx_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestUnverifiedExpiry(t *testing.T) {
	signer, _ := newTestSigner(t, "k")
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	token, err := signer.Sign(jwtx.NewAccessClaims("s", jwtx.PrincipalStudent, "", "", time.Hour, exampleIssuer, issued))
	require.NoError(t, err)

	exp, err := jwtx.UnverifiedExpiry(token)
	require.NoError(t, err)
	require.True(t, exp.Equal(issued.Add(time.Hour)))

	require.True(t, jwtx.ExpiredAt(token, issued.Add(2*time.Hour)))
	require.True(t, jwtx.ExpiredAt(token, issued.Add(time.Hour)))
	require.False(t, jwtx.ExpiredAt(token, issued.Add(30*time.Minute)))
}

func TestUnverifiedExpiryWithoutClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"})
	token, err := tok.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = jwtx.UnverifiedExpiry(token)
	require.ErrorIs(t, err, jwtx.ErrNoExpiry)
	require.False(t, jwtx.ExpiredAt(token, time.Now()))
}

func TestUnverifiedExpiryGarbage(t *testing.T) {
	_, err := jwtx.UnverifiedExpiry("opaque-token")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
	require.True(t, jwtx.ExpiredAt("opaque-token", time.Now()))
}
