package session

import (
	"context"

	"github.com/prestige-strategies/academy/internal/portal/storage"
	"github.com/prestige-strategies/academy/pkg/academysdk"
)

// AdminCredential is what the back-office login form collects.
type AdminCredential struct {
	Email    string
	Password string
	// OTPCode is only needed when the backend has TOTP enabled.
	OTPCode string
}

// StudentCredential is the opaque string handed over by the third-party
// sign-in widget. It is forwarded verbatim.
type StudentCredential struct {
	IDToken string
}

type (
	Admin        = Manager[AdminCredential, academysdk.AdminUser]
	Student      = Manager[StudentCredential, academysdk.StudentUser]
	AdminState   = State[academysdk.AdminUser]
	StudentState = State[academysdk.StudentUser]
)

// NewAdmin builds the admin session manager on top of the academy client.
func NewAdmin(client *academysdk.SDKClient, store storage.Store, opts Options) *Admin {
	return NewManager[AdminCredential, academysdk.AdminUser](storage.PrincipalAdmin, store, AdminBackend{Client: client}, opts)
}

// NewStudent builds the student session manager on top of the academy client.
func NewStudent(client *academysdk.SDKClient, store storage.Store, opts Options) *Student {
	return NewManager[StudentCredential, academysdk.StudentUser](storage.PrincipalStudent, store, StudentBackend{Client: client}, opts)
}

// AdminBackend adapts the academy client to Authenticator.
type AdminBackend struct {
	Client *academysdk.SDKClient
}

func (b AdminBackend) Login(ctx context.Context, c AdminCredential) (string, *academysdk.AdminUser, error) {
	return b.Client.AdminLogin(ctx, academysdk.AdminLoginRequest{
		Email:    c.Email,
		Password: c.Password,
		OTPCode:  c.OTPCode,
	})
}

func (b AdminBackend) Verify(ctx context.Context, token string) (*academysdk.AdminUser, error) {
	return b.Client.NewSession(token).VerifyAdmin(ctx)
}

// StudentBackend adapts the academy client to Authenticator.
type StudentBackend struct {
	Client *academysdk.SDKClient
}

func (b StudentBackend) Login(ctx context.Context, c StudentCredential) (string, *academysdk.StudentUser, error) {
	return b.Client.ExchangeIdentity(ctx, c.IDToken)
}

func (b StudentBackend) Verify(ctx context.Context, token string) (*academysdk.StudentUser, error) {
	return b.Client.NewSession(token).VerifyStudent(ctx)
}
