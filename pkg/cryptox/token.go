package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// Fingerprint returns the unpadded base64url SHA-256 of s. The result is
// always 43 characters, whatever the input length.
func Fingerprint(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
