package jwtx

import (
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet maps kids to public verification keys. The backend keeps its own
// signing key in one and the identity verifier keeps the provider's keys in
// another, replacing them wholesale when the provider rotates.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]any // *rsa.PublicKey | ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]any)}
}

// Add decodes j and registers it under its kid.
func (k *KeySet) Add(j JWK) error {
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}
	k.mu.Lock()
	k.keys[j.Kid] = pub
	k.mu.Unlock()
	return nil
}

// Replace swaps in every key of jwks. On a decode error the set is left
// untouched.
func (k *KeySet) Replace(jwks JWKS) error {
	next := make(map[string]any, len(jwks.Keys))
	for _, j := range jwks.Keys {
		pub, err := j.PublicKey()
		if err != nil {
			return err
		}
		next[j.Kid] = pub
	}

	k.mu.Lock()
	k.keys = next
	k.mu.Unlock()
	return nil
}

func (k *KeySet) Get(kid string) (any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pub, ok := k.keys[kid]; ok {
		return pub, nil
	}
	return nil, ErrNoKey
}

// IsReady reports whether at least one key is loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
