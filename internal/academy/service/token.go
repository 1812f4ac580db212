package service

import (
	"time"

	"github.com/prestige-strategies/academy/pkg/jwtx"
)

// TokenService mints the bearer tokens of both principals. There is no
// refresh flow; clients sign in again after TTL.
type TokenService struct {
	Signer jwtx.Signer
	Issuer string
	TTL    time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Issue signs an access token for subject.
func (s *TokenService) Issue(subject string, principal jwtx.Principal, email, name string) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	claims := jwtx.NewAccessClaims(subject, principal, email, name, ttl, s.Issuer, s.now())
	return s.Signer.Sign(claims)
}
