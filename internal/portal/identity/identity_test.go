package identity_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prestige-strategies/academy/internal/portal/identity"
	"github.com/prestige-strategies/academy/internal/portal/session"
	"github.com/prestige-strategies/academy/internal/portal/storage/drivers/memory"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/stretchr/testify/require"
)

func newStudent(t *testing.T, handler http.HandlerFunc) *session.Student {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/google", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	s := session.NewStudent(academysdk.NewSDKClient(srv.URL), memory.NewStore(), session.Options{})
	s.Initialize(context.Background())
	return s
}

func TestPrompterForwardsCredentialVerbatim(t *testing.T) {
	t.Parallel()

	var got academysdk.IdentityExchangeRequest
	student := newStudent(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(academysdk.AuthResponse[academysdk.StudentUser]{
			Success: true,
			Token:   "tok",
			User:    &academysdk.StudentUser{ID: "s1", Email: "amina@example.com"},
		})
	})

	widget := &identity.StubWidget{}
	p := identity.NewPrompter(widget, student, "google-signin", nil)

	called := 0
	require.NoError(t, p.PromptSignIn(context.Background(), func() { called++ }))
	require.Equal(t, []string{"google-signin"}, widget.Rendered)

	require.True(t, widget.Emit("opaque.credential.value"))
	require.Equal(t, "opaque.credential.value", got.IDToken)
	require.Equal(t, 1, called)
	require.NoError(t, p.Err())
	require.Equal(t, session.StatusSignedIn, student.State().Status)
}

func TestPrompterKeepsRejection(t *testing.T) {
	t.Parallel()

	student := newStudent(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Google sign-in failed"})
	})

	widget := &identity.StubWidget{}
	p := identity.NewPrompter(widget, student, "c", nil)

	called := false
	require.NoError(t, p.PromptSignIn(context.Background(), func() { called = true }))
	widget.Emit("bad")

	require.False(t, called)
	require.Error(t, p.Err())
	require.Equal(t, "Google sign-in failed", p.Message())
	require.Equal(t, session.StatusSignedOut, student.State().Status)
}

func TestPromptWidget(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	w := &identity.PromptWidget{In: strings.NewReader("  cred-123 \n"), Out: &out}

	var got string
	w.OnCredential(func(c string) { got = c })
	require.NoError(t, w.Render("signin"))
	require.Equal(t, "cred-123", got)
	require.Contains(t, out.String(), "[signin]")

	empty := &identity.PromptWidget{In: strings.NewReader("\n"), Out: &out}
	require.ErrorIs(t, empty.Render("signin"), identity.ErrEmptyCredential)
}

func TestStubWidgetWithoutCallback(t *testing.T) {
	require.False(t, (&identity.StubWidget{}).Emit("x"))
}
