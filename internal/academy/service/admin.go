package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/pquerna/otp/totp"
	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/cryptox"
	"github.com/prestige-strategies/academy/pkg/idx"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

type AdminService struct {
	Store   store.Store
	Tokens  *TokenService
	Metrics *Metrics
}

// EnsureAdmin creates or refreshes the configured back-office account. An
// empty totpSecret turns the second factor off.
func (s *AdminService) EnsureAdmin(ctx context.Context, email, password, totpSecret string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return &ValidationError{Field: "email", Message: "admin email and password are required"}
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	var secret *string
	if totpSecret != "" {
		secret = &totpSecret
	}

	return s.Store.Admins().UpsertAdmin(ctx, domain.Admin{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		TOTPSecret:   secret,
	})
}

// Login checks email and password, and the TOTP code when the admin has a
// secret. Every rejection is ErrInvalidCredentials except a missing code,
// which is ErrOTPRequired so the form can ask for it.
func (s *AdminService) Login(ctx context.Context, email, password, otpCode string) (string, domain.Admin, error) {
	l := slogx.FromContext(ctx)
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.Store.Admins().GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Metrics.Login(string(jwtx.PrincipalAdmin), "rejected")
			return "", domain.Admin{}, ErrInvalidCredentials
		}
		return "", domain.Admin{}, err
	}

	if err := cryptox.VerifyPassword(password, admin.PasswordHash); err != nil {
		l.Info("admin login rejected", slog.String("admin_id", admin.ID))
		s.Metrics.Login(string(jwtx.PrincipalAdmin), "rejected")
		return "", domain.Admin{}, ErrInvalidCredentials
	}

	if admin.TOTPSecret != nil {
		if strings.TrimSpace(otpCode) == "" {
			s.Metrics.Login(string(jwtx.PrincipalAdmin), "otp_required")
			return "", domain.Admin{}, ErrOTPRequired
		}
		if !totp.Validate(strings.TrimSpace(otpCode), *admin.TOTPSecret) {
			l.Info("admin totp rejected", slog.String("admin_id", admin.ID))
			s.Metrics.Login(string(jwtx.PrincipalAdmin), "rejected")
			return "", domain.Admin{}, ErrInvalidCredentials
		}
	}

	token, err := s.Tokens.Issue(admin.ID, jwtx.PrincipalAdmin, admin.Email, "")
	if err != nil {
		return "", domain.Admin{}, err
	}

	s.Metrics.Login(string(jwtx.PrincipalAdmin), "success")
	l.Info("admin signed in", slog.String("admin_id", admin.ID))
	return token, admin, nil
}

// GetAdmin backs the verify endpoint.
func (s *AdminService) GetAdmin(ctx context.Context, id string) (domain.Admin, error) {
	a, err := s.Store.Admins().GetAdminByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Admin{}, ErrNotFound
	}
	return a, err
}
