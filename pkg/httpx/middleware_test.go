package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/pkg/httpx"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestAuthnMiddleware(t *testing.T) {
	const issuer = "academy-test"
	keys, err := jwtx.NewEphemeralKeyRing(issuer)
	require.NoError(t, err)

	sign := func(p jwtx.Principal) string {
		tok, err := keys.Signer.Sign(jwtx.NewAccessClaims("u-1", p, "u@example.com", "", time.Minute, issuer, time.Now().UTC()))
		require.NoError(t, err)
		return tok
	}

	var seen string
	h := httpx.AuthnMiddleware(keys.Verifier, jwtx.PrincipalStudent)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.UserIDFromContext(r.Context())
		claims, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "u@example.com", claims.Email)
		w.WriteHeader(http.StatusNoContent)
	}))

	call := func(authz string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
		if authz != "" {
			req.Header.Set("Authorization", authz)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("student token passes", func(t *testing.T) {
		rec := call("Bearer " + sign(jwtx.PrincipalStudent))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "u-1", seen)
	})

	t.Run("admin token rejected", func(t *testing.T) {
		rec := call("Bearer " + sign(jwtx.PrincipalAdmin))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer "))
		require.Contains(t, rec.Body.String(), `"success":false`)
	})

	t.Run("missing header", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		require.Equal(t, http.StatusUnauthorized, call("Bearer nope").Code)
	})
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		CourseID string `json:"course_id"`
	}

	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		return httpx.DecodeJSON(httptest.NewRecorder(), req, &dst)
	}

	require.NoError(t, decode(`{"course_id":"c1"}`))
	require.Equal(t, "c1", dst.CourseID)
	require.Error(t, decode(`{"course_id":"c1","extra":1}`))
	require.Error(t, decode(`{"course_id":"c1"}{}`))
	require.Error(t, decode(`not json`))
}
