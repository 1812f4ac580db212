package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/idx"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// IdentityVerifier validates the opaque credential a sign-in widget hands
// the client. *jwtx.IdentityVerifier is the production implementation.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*jwtx.IdentityClaims, error)
}

// DevIdentityVerifier accepts "dev:<email>[:<name>]" credentials. It exists
// for local runs and container tests where no real identity provider is
// reachable, and must never be configured in production.
type DevIdentityVerifier struct{}

const devCredentialPrefix = "dev:"

func (DevIdentityVerifier) Verify(_ context.Context, credential string) (*jwtx.IdentityClaims, error) {
	rest, ok := strings.CutPrefix(credential, devCredentialPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: not a dev credential", jwtx.ErrMalformed)
	}
	email, name, _ := strings.Cut(rest, ":")
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: dev credential needs an email", jwtx.ErrMalformed)
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return &jwtx.IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "dev-" + email},
		Email:            email,
		EmailVerified:    true,
		Name:             name,
	}, nil
}

type StudentService struct {
	Store    store.Store
	Identity IdentityVerifier
	Tokens   *TokenService
	Metrics  *Metrics
}

// Exchange verifies a third-party credential, creates or refreshes the
// student it names and returns a backend token for them.
func (s *StudentService) Exchange(ctx context.Context, credential string) (string, domain.Student, error) {
	l := slogx.FromContext(ctx)

	credential = strings.TrimSpace(credential)
	if credential == "" {
		s.Metrics.Login(string(jwtx.PrincipalStudent), "rejected")
		return "", domain.Student{}, ErrInvalidIdentity
	}

	claims, err := s.Identity.Verify(ctx, credential)
	if err != nil {
		l.Info("identity credential rejected", slog.Any("error", err))
		s.Metrics.Login(string(jwtx.PrincipalStudent), "rejected")
		return "", domain.Student{}, ErrInvalidIdentity
	}
	if claims.Subject == "" || claims.Email == "" {
		s.Metrics.Login(string(jwtx.PrincipalStudent), "rejected")
		return "", domain.Student{}, ErrInvalidIdentity
	}

	var student domain.Student
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Students().GetStudentByGoogleID(ctx, claims.Subject)
		switch {
		case errors.Is(err, store.ErrNotFound):
			student = domain.Student{
				ID:       idx.New().String(),
				GoogleID: claims.Subject,
				Email:    claims.Email,
				Name:     claims.Name,
				Picture:  claims.Picture,
			}
			return tx.Students().CreateStudent(ctx, student)
		case err != nil:
			return err
		}

		existing.Email, existing.Name, existing.Picture = claims.Email, claims.Name, claims.Picture
		existing.UpdatedAt = s.Tokens.now()
		student = existing
		return tx.Students().UpdateProfile(ctx, existing)
	})
	if err != nil {
		return "", domain.Student{}, err
	}

	token, err := s.Tokens.Issue(student.ID, jwtx.PrincipalStudent, student.Email, student.Name)
	if err != nil {
		return "", domain.Student{}, err
	}

	s.Metrics.Login(string(jwtx.PrincipalStudent), "success")
	l.Info("student signed in", slog.String("student_id", student.ID))
	return token, student, nil
}

// GetStudent backs the verify endpoint.
func (s *StudentService) GetStudent(ctx context.Context, id string) (domain.Student, error) {
	st, err := s.Store.Students().GetStudentByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Student{}, ErrNotFound
	}
	return st, err
}
