package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks an access token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrNoExpiry    = errors.New("jwtx: token has no exp claim")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrAudience    = errors.New("jwtx: audience mismatch")
	ErrPrincipal   = errors.New("jwtx: principal mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

type accessVerifier struct {
	keys   *KeySet
	issuer string
	parser *jwt.Parser
}

// NewVerifier accepts EdDSA tokens signed by a key in keys and issued by
// issuer. Principal checks are left to the caller.
func NewVerifier(keys *KeySet, issuer string) Verifier {
	return &accessVerifier{
		keys:   keys,
		issuer: issuer,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (v *accessVerifier) Verify(token string) (Claims, error) {
	var claims Claims
	parsed, err := v.parser.ParseWithClaims(token, &claims, v.keyFor)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Claims{}, ErrExpired
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return Claims{}, ErrNoExpiry
	case errors.Is(err, ErrUnknownKID), errors.Is(err, ErrMalformed):
		return Claims{}, err
	case err != nil:
		return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
	case !parsed.Valid:
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateTimes(time.Now(), 0); err != nil {
		return Claims{}, err
	}
	return claims, nil
}

func (v *accessVerifier) keyFor(t *jwt.Token) (any, error) {
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return nil, ErrMalformed
	}
	pub, err := v.keys.Get(kid)
	if err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
	}
	edPub, ok := pub.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("jwtx: key %q is not Ed25519", kid)
	}
	return edPub, nil
}
