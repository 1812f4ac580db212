package domain

import "time"

// Student is created on first sign-in through the identity provider and
// refreshed on every later exchange.
type Student struct {
	ID        string
	GoogleID  string // "sub" of the identity token
	Email     string
	Name      string
	Picture   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
