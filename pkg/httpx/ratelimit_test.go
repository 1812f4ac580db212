package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prestige-strategies/academy/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = ip + ":12345"
	return req
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(requestFrom("192.168.1.1")))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := requestFrom("192.168.1.1")
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := requestFrom("192.168.1.1")
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	body := `{"email":" Admin@Example.com ","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	require.Equal(t, "admin@example.com", httpx.JSONFieldKeyExtractor("email")(req))

	// The body is still readable by the handler.
	rest, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	require.JSONEq(t, body, string(rest))

	t.Run("missing field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"id_token":"abc"}`))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})

	t.Run("not json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`email=a`))
		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"alice@example.com"}`))
	req.RemoteAddr = "192.168.1.1:12345"

	key := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor,
		httpx.JSONFieldKeyExtractor("email"),
	)(req)
	require.Equal(t, "192.168.1.1:alice@example.com", key)

	t.Run("skips empty values", func(t *testing.T) {
		key := httpx.CompositeKeyExtractor(":",
			httpx.UserIDKeyExtractor,
			httpx.IPKeyExtractor,
		)(requestFrom("10.0.0.1"))
		require.Equal(t, "10.0.0.1", key)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		limited := httpx.RateLimitByIP(httpx.RateLimitConfig{
			RequestsPerWindow: 3,
			Window:            time.Minute,
			Burst:             3,
		})(okHandler)

		for i := range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d should succeed", i+1)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("192.168.1.1"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Contains(t, rec.Body.String(), `"success":false`)

		// A different client is unaffected.
		rec = httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("192.168.1.2"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("allows request when key extractor returns empty", func(t *testing.T) {
		limited := httpx.RateLimitMiddleware(httpx.RateLimitConfig{
			RequestsPerWindow: 1,
			Window:            time.Minute,
			Burst:             1,
		}, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("192.168.1.1"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("login attempts are keyed by email", func(t *testing.T) {
		limited := httpx.RateLimitByIPAndJSONField(httpx.RateLimitConfig{
			RequestsPerWindow: 1,
			Window:            time.Minute,
			Burst:             1,
		}, "email")(okHandler)

		send := func(email string) int {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"`+email+`"}`))
			req.RemoteAddr = "10.1.1.1:1"
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, req)
			return rec.Code
		}

		require.Equal(t, http.StatusOK, send("a@example.com"))
		require.Equal(t, http.StatusTooManyRequests, send("a@example.com"))
		require.Equal(t, http.StatusOK, send("b@example.com"))
	})
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("no env vars uses defaults", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("UNSET_PROFILE", def))
	})

	t.Run("overrides all parameters", func(t *testing.T) {
		t.Setenv("RATELIMIT_TEST_REQUESTS", "50")
		t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TEST_BURST", "7")

		got := httpx.ParseRateLimitFromEnv("TEST", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7}, got)
	})

	t.Run("invalid and zero values use defaults", func(t *testing.T) {
		t.Setenv("RATELIMIT_BAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_BAD_WINDOW_SEC", "0")
		t.Setenv("RATELIMIT_BAD_BURST", "-3")

		require.Equal(t, def, httpx.ParseRateLimitFromEnv("BAD", def))
	})
}

func TestRateLimitProfiles(t *testing.T) {
	for name, cfg := range map[string]httpx.RateLimitConfig{
		"login":   httpx.LoginLimit,
		"payment": httpx.PaymentLimit,
		"student": httpx.StudentLimit,
		"public":  httpx.PublicLimit,
	} {
		t.Run(name, func(t *testing.T) {
			require.Positive(t, cfg.RequestsPerWindow)
			require.Positive(t, cfg.Window)
			require.Positive(t, cfg.Burst)
		})
	}
	require.Less(t, httpx.LoginLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}
