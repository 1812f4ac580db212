package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of tokens the academy backend issues.
// There is no refresh flow: a student or admin signs in again once it lapses.
const DefaultAccessTokenTTL = 24 * time.Hour

// Principal identifies which of the two independent identity domains a token
// belongs to. Admin tokens are never accepted on student routes and vice versa.
type Principal string

const (
	PrincipalAdmin   Principal = "admin"
	PrincipalStudent Principal = "student"
)

// Claims are the access-token claims issued by the academy backend.
type Claims struct {
	jwt.RegisteredClaims

	Principal Principal `json:"principal"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
}

// NewAccessClaims builds minimally-correct claims.
func NewAccessClaims(
	subject string,
	principal Principal,
	email, name string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{string(principal)},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Principal: principal,
		Email:     email,
		Name:      name,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer is a no-op when expected is empty.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidatePrincipal rejects tokens minted for the other identity domain.
func (c *Claims) ValidatePrincipal(expected Principal) error {
	if c.Principal != expected || !slices.Contains(c.Audience, string(expected)) {
		return ErrPrincipal
	}
	return nil
}

// ValidateTimes checks exp and nbf against now, allowing leeway of clock skew
// in both directions. Tokens the backend mints always carry exp; an absent
// claim is not an error here.
func (c *Claims) ValidateTimes(now time.Time, leeway time.Duration) error {
	if exp := c.ExpiresAt; exp != nil && now.After(exp.Add(leeway)) {
		return ErrExpired
	}
	if nbf := c.NotBefore; nbf != nil && now.Before(nbf.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
