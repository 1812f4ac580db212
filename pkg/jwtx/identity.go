package jwtx

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleIssuers are the values Google places in the "iss" claim of ID tokens.
var GoogleIssuers = []string{"accounts.google.com", "https://accounts.google.com"}

// GoogleJWKSURL publishes the keys Google signs ID tokens with.
const GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// ErrEmailNotVerified is returned for identity tokens whose email the
// provider has not confirmed.
var ErrEmailNotVerified = errors.New("jwtx: identity email not verified")

// IdentityClaims are the claims of a third-party sign-in credential.
type IdentityClaims struct {
	jwt.RegisteredClaims

	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// IdentityVerifierOptions configures an IdentityVerifier.
type IdentityVerifierOptions struct {
	// Audience is the OAuth client id the credential must be minted for.
	Audience string

	// Issuers lists accepted "iss" values. Defaults to GoogleIssuers.
	Issuers []string

	// JWKSURL is fetched lazily and again whenever an unknown kid shows up.
	// Leave empty to use a fixed KeySet.
	JWKSURL string

	// Keys seeds the verifier. Optional when JWKSURL is set.
	Keys *KeySet

	// RefreshInterval bounds how often the JWKS may be refetched. Defaults to
	// five minutes.
	RefreshInterval time.Duration

	HTTPClient *http.Client
}

// IdentityVerifier validates RS256 ID tokens issued by an external identity
// provider against its published key set.
type IdentityVerifier struct {
	opts IdentityVerifierOptions
	keys *KeySet

	mu          sync.Mutex
	lastRefresh time.Time
}

// NewIdentityVerifier builds a verifier. Audience is required.
func NewIdentityVerifier(opts IdentityVerifierOptions) (*IdentityVerifier, error) {
	if opts.Audience == "" {
		return nil, fmt.Errorf("jwtx: Audience is required")
	}
	if len(opts.Issuers) == 0 {
		opts.Issuers = GoogleIssuers
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = 5 * time.Minute
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	keys := opts.Keys
	if keys == nil {
		if opts.JWKSURL == "" {
			return nil, fmt.Errorf("jwtx: either Keys or JWKSURL is required")
		}
		keys = NewKeySet()
	}

	return &IdentityVerifier{opts: opts, keys: keys}, nil
}

// Verify checks the signature, issuer, audience and expiry of token.
func (v *IdentityVerifier) Verify(ctx context.Context, token string) (*IdentityClaims, error) {
	kid, err := headerKID(token)
	if err != nil {
		return nil, err
	}
	if _, err := v.keys.Get(kid); err != nil {
		if err := v.refresh(ctx); err != nil {
			return nil, err
		}
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.opts.Audience),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.ParseWithClaims(token, &IdentityClaims{}, func(t *jwt.Token) (any, error) {
		pub, err := v.keys.Get(kid)
		if err != nil {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		rsaPub, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, errors.New("jwtx: invalid RSA key type")
		}
		return rsaPub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrAudience
		}
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := parsed.Claims.(*IdentityClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}
	if !slices.Contains(v.opts.Issuers, claims.Issuer) {
		return nil, ErrIssuer
	}
	if claims.Subject == "" {
		return nil, ErrMalformed
	}
	if !claims.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	return claims, nil
}

// refresh refetches the provider JWKS unless it was fetched recently.
func (v *IdentityVerifier) refresh(ctx context.Context) error {
	if v.opts.JWKSURL == "" {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.lastRefresh.IsZero() && time.Since(v.lastRefresh) < v.opts.RefreshInterval {
		return nil
	}

	jwks, err := FetchJWKS(ctx, v.opts.HTTPClient, v.opts.JWKSURL)
	if err != nil {
		return err
	}
	if err := v.keys.Replace(jwks); err != nil {
		return fmt.Errorf("jwtx: load jwks: %w", err)
	}
	v.lastRefresh = time.Now()
	return nil
}

func headerKID(token string) (string, error) {
	t, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", ErrMalformed
	}
	kid, _ := t.Header["kid"].(string)
	if kid == "" {
		return "", ErrMalformed
	}
	return kid, nil
}
