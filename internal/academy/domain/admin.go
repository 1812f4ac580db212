package domain

import "time"

type Admin struct {
	ID           string
	Email        string
	PasswordHash string  // argon2 encoded
	TOTPSecret   *string // base32, nil when the second factor is off
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
