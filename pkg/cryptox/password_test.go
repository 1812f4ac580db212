package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-pepper")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.Contains(t, parts[3], "m=")
			require.NotEmpty(t, parts[4], "salt should not be empty")

			require.NoError(t, VerifyPassword(tt.password, hash))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("samepassword")
	require.NoError(t, err)
	h2, err := HashPassword("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "hashes should differ due to unique salts")
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	require.ErrorIs(t, VerifyPassword("battery staple", hash), ErrPasswordMismatch)
	require.ErrorIs(t, VerifyPassword("Correct horse", hash), ErrPasswordMismatch)
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"too few parts", "$argon2id$v=19$m=1,t=1,p=1"},
		{"wrong algorithm", "$argon2i$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA"},
		{"wrong version", "$argon2id$v=18$m=1,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$nope$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyPassword("pw", tt.hash)
			require.Error(t, err)
			require.NotErrorIs(t, err, ErrPasswordMismatch)
		})
	}
}

func TestPepperPersistsAcrossReloads(t *testing.T) {
	hash, err := HashPassword("pepper-check")
	require.NoError(t, err)

	p1, err := Pepper()
	require.NoError(t, err)

	// Re-pointing at the same file reloads the same pepper from disk.
	pepperMu.Lock()
	path := pepperFile
	pepperMu.Unlock()
	SetPepperPath(path)

	p2, err := Pepper()
	require.NoError(t, err)
	require.Equal(t, p1, p2)
	require.NoError(t, VerifyPassword("pepper-check", hash))
}
