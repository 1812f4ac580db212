package academysdk

import (
	"context"
	"net/http"
)

const (
	pathAdminLogin    = "/api/admin/login"
	pathAdminVerify   = "/api/admin/verify"
	pathStudentGoogle = "/api/auth/google"
	pathStudentVerify = "/api/auth/verify"
)

// AdminLogin posts email and password (plus a TOTP code when the backend
// requires one). Rejections come back as *AuthenticationError carrying the
// server's message.
func (c *SDKClient) AdminLogin(ctx context.Context, req AdminLoginRequest) (string, *AdminUser, error) {
	return login[AdminUser](ctx, c, pathAdminLogin, req)
}

// ExchangeIdentity forwards an opaque third-party credential verbatim to the
// exchange endpoint and returns the backend's own token.
func (c *SDKClient) ExchangeIdentity(ctx context.Context, credential string) (string, *StudentUser, error) {
	return login[StudentUser](ctx, c, pathStudentGoogle, IdentityExchangeRequest{IDToken: credential})
}

func login[U any](ctx context.Context, c *SDKClient, path string, payload any) (string, *U, error) {
	body, err := jsonBody(payload)
	if err != nil {
		return "", nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return "", nil, err
	}

	var out AuthResponse[U]
	if err := decodeJSON(resp, &out, "POST "+path); err != nil {
		return "", nil, asAuthError(err)
	}
	if !out.Success || out.Token == "" || out.User == nil {
		msg := out.Error
		if msg == "" {
			msg = out.Message
		}
		if msg == "" {
			msg = "Login failed"
		}
		return "", nil, &AuthenticationError{Message: msg}
	}

	return out.Token, out.User, nil
}

// VerifyAdmin checks the session token against the admin verify endpoint.
func (s *Session) VerifyAdmin(ctx context.Context) (*AdminUser, error) {
	return verify[AdminUser](ctx, s, pathAdminVerify)
}

// VerifyStudent checks the session token against the student verify endpoint.
func (s *Session) VerifyStudent(ctx context.Context) (*StudentUser, error) {
	return verify[StudentUser](ctx, s, pathStudentVerify)
}

func verify[U any](ctx context.Context, s *Session, path string) (*U, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out AuthResponse[U]
	if err := decodeJSON(resp, &out, "GET "+path); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, &AuthenticationError{Message: "Session is no longer valid"}
	}
	return out.User, nil
}
