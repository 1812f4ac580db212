package cryptox

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrNotEd25519 is returned when a PEM block does not hold an Ed25519 key.
var ErrNotEd25519 = errors.New("cryptox: not an Ed25519 private key")

// GenerateEd25519Key returns a fresh Ed25519 private key as PKCS8 PEM, the
// format the backend keeps its signing key in on disk.
func GenerateEd25519Key() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("cryptox: generate Ed25519 key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("cryptox: marshal PKCS8 key: %w", err)
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// ParseEd25519Key decodes a PKCS8 PEM private key.
func ParseEd25519Key(pemKey []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, fmt.Errorf("cryptox: no PEM block found")
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("cryptox: parse PKCS8 key: %w", err)
	}
	priv, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, ErrNotEd25519
	}
	return priv, nil
}

// Ed25519KeyID derives a short, stable key id from the public half of
// pemKey. The same key always gets the same id regardless of PEM encoding.
func Ed25519KeyID(pemKey []byte) (string, error) {
	priv, err := ParseEd25519Key(pemKey)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(priv.Public().(ed25519.PublicKey))
	return hex.EncodeToString(sum[:8]), nil
}
