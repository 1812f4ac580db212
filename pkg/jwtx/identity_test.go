package jwtx_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testClientID = "1234.apps.googleusercontent.com"

func newRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signIdentity(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(*jwtx.IdentityClaims)) string {
	t.Helper()
	now := time.Now().UTC()
	claims := jwtx.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://accounts.google.com",
			Subject:   "109876543210",
			Audience:  jwt.ClaimStrings{testClientID},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email:         "amina@example.com",
		EmailVerified: true,
		Name:          "Amina Odhiambo",
		Picture:       "https://lh3.example.com/a.png",
	}
	if mutate != nil {
		mutate(&claims)
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestIdentityVerifierWithStaticKeys(t *testing.T) {
	key := newRSAKey(t)
	keys := jwtx.NewKeySet()
	require.NoError(t, keys.Add(jwtx.NewRSAJWK("g1", &key.PublicKey)))

	v, err := jwtx.NewIdentityVerifier(jwtx.IdentityVerifierOptions{Audience: testClientID, Keys: keys})
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("valid credential", func(t *testing.T) {
		claims, err := v.Verify(ctx, signIdentity(t, key, "g1", nil))
		require.NoError(t, err)
		require.Equal(t, "109876543210", claims.Subject)
		require.Equal(t, "amina@example.com", claims.Email)
		require.Equal(t, "Amina Odhiambo", claims.Name)
	})

	t.Run("wrong audience", func(t *testing.T) {
		_, err := v.Verify(ctx, signIdentity(t, key, "g1", func(c *jwtx.IdentityClaims) {
			c.Audience = jwt.ClaimStrings{"someone-else"}
		}))
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := v.Verify(ctx, signIdentity(t, key, "g1", func(c *jwtx.IdentityClaims) {
			c.Issuer = "https://evil.example.com"
		}))
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		_, err := v.Verify(ctx, signIdentity(t, key, "g1", func(c *jwtx.IdentityClaims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		}))
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("unverified email", func(t *testing.T) {
		_, err := v.Verify(ctx, signIdentity(t, key, "g1", func(c *jwtx.IdentityClaims) {
			c.EmailVerified = false
		}))
		require.ErrorIs(t, err, jwtx.ErrEmailNotVerified)
	})

	t.Run("unknown kid", func(t *testing.T) {
		_, err := v.Verify(ctx, signIdentity(t, key, "g2", nil))
		require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify(ctx, "not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestIdentityVerifierFetchesJWKS(t *testing.T) {
	key := newRSAKey(t)
	var hits atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(jwtx.JWKS{Keys: []jwtx.JWK{
			jwtx.NewRSAJWK("rotating", &key.PublicKey),
		}})
	}))
	t.Cleanup(srv.Close)

	v, err := jwtx.NewIdentityVerifier(jwtx.IdentityVerifierOptions{
		Audience: testClientID,
		JWKSURL:  srv.URL,
	})
	require.NoError(t, err)

	for range 3 {
		_, err := v.Verify(context.Background(), signIdentity(t, key, "rotating", nil))
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), hits.Load())

	// An unknown kid inside the refresh interval does not hammer the provider.
	_, err = v.Verify(context.Background(), signIdentity(t, key, "other", nil))
	require.ErrorIs(t, err, jwtx.ErrUnknownKID)
	require.Equal(t, int32(1), hits.Load())
}

func TestNewIdentityVerifierRequiresAudience(t *testing.T) {
	_, err := jwtx.NewIdentityVerifier(jwtx.IdentityVerifierOptions{JWKSURL: "http://x"})
	require.Error(t, err)

	_, err = jwtx.NewIdentityVerifier(jwtx.IdentityVerifierOptions{Audience: testClientID})
	require.Error(t, err)
}
