package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UnverifiedExpiry decodes the "exp" claim of token without checking its
// signature. Clients use it to drop stale credentials before sending them.
// ErrNoExpiry is returned when the claim is absent and ErrMalformed when the
// token cannot be decoded at all.
func UnverifiedExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrMalformed
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// ExpiredAt reports whether token's decoded expiry is at or before now.
// Undecodable tokens count as expired; tokens without an expiry do not.
func ExpiredAt(token string, now time.Time) bool {
	exp, err := UnverifiedExpiry(token)
	switch err {
	case nil:
		return !now.Before(exp)
	case ErrNoExpiry:
		return false
	default:
		return true
	}
}
