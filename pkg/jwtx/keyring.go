package jwtx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/prestige-strategies/academy/pkg/cryptox"
)

// KeyRing bundles the backend's signing key with the key set and verifier
// that accept tokens it produced.
type KeyRing struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

// NewEphemeralKeyRing generates a fresh Ed25519 key that only lives in
// memory. Every token issued before a restart becomes invalid.
func NewEphemeralKeyRing(issuer string) (*KeyRing, error) {
	pemKey, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, err
	}
	return newKeyRing(issuer, pemKey)
}

// LoadOrCreateKeyRing reads a PKCS8 Ed25519 key from path, generating and
// writing one (0600) when the file does not exist yet.
func LoadOrCreateKeyRing(issuer, path string) (*KeyRing, error) {
	pemKey, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("jwtx: create key dir: %w", err)
			}
		}
		if err := os.WriteFile(path, pemKey, 0o600); err != nil {
			return nil, fmt.Errorf("jwtx: write signing key: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("jwtx: read signing key: %w", err)
	}
	return newKeyRing(issuer, pemKey)
}

func newKeyRing(issuer string, pemKey []byte) (*KeyRing, error) {
	if issuer == "" {
		return nil, fmt.Errorf("jwtx: Issuer is required")
	}

	kid, err := cryptox.Ed25519KeyID(pemKey)
	if err != nil {
		return nil, err
	}

	signer, err := NewEd25519Signer(kid, pemKey)
	if err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.Add(signer.PublicJWK()); err != nil {
		return nil, err
	}

	return &KeyRing{
		Signer:   signer,
		Verifier: NewVerifier(keys, issuer),
		KeySet:   keys,
	}, nil
}
