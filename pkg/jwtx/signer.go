package jwtx

import (
	"crypto/ed25519"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prestige-strategies/academy/pkg/cryptox"
)

// Signer mints access tokens. The backend has exactly one, backed by an
// Ed25519 key.
type Signer interface {
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type ed25519Signer struct {
	kid  string
	priv ed25519.PrivateKey
}

// NewEd25519Signer loads a PKCS8 PEM Ed25519 key. Every token it signs
// carries kid in its header.
func NewEd25519Signer(kid string, pemKey []byte) (Signer, error) {
	if kid == "" {
		return nil, fmt.Errorf("jwtx: signer needs a kid")
	}
	priv, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: load signing key: %w", err)
	}
	return &ed25519Signer{kid: kid, priv: priv}, nil
}

func (s *ed25519Signer) KID() string { return s.kid }

func (s *ed25519Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.priv)
}

func (s *ed25519Signer) PublicJWK() JWK {
	return NewEd25519JWK(s.kid, s.priv.Public().(ed25519.PublicKey))
}
