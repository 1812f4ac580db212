// Package storage persists the portal's client-side state: one bearer token
// per principal and the "recently attempted" guard timestamps.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoToken is returned by TokenStore.Get when nothing is stored.
	ErrNoToken = errors.New("storage: no token")

	// ErrUnknownPrincipal is returned for a principal other than admin or student.
	ErrUnknownPrincipal = errors.New("storage: unknown principal")
)

// Principal is one of the two independent identity domains.
type Principal string

const (
	PrincipalAdmin   Principal = "admin"
	PrincipalStudent Principal = "student"
)

// Key is the storage key the principal's token lives under.
func (p Principal) Key() string { return string(p) + "_token" }

// Valid reports whether p is admin or student.
func (p Principal) Valid() bool {
	return p == PrincipalAdmin || p == PrincipalStudent
}

// Store is the root of client storage. Drivers (memory, sqlite) implement it.
type Store interface {
	// Tokens returns the token slot for one principal. Slots never share data.
	Tokens(p Principal) TokenStore

	// Attempts returns the advisory "recently attempted" guard.
	Attempts() AttemptGuard

	// Close releases any underlying resources.
	Close() error
}

// TokenStore reads and writes the persisted bearer token of one principal.
type TokenStore interface {
	// Get returns ErrNoToken when the slot is empty.
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// AttemptGuard is a per-key timestamp store used to throttle duplicate
// payment and application submissions. Writes are last-write-wins.
type AttemptGuard interface {
	LastAttempt(ctx context.Context, key string) (time.Time, bool, error)
	RecordAttempt(ctx context.Context, key string, at time.Time) error
}

// CourseAttemptKey is the guard key for a course payment.
func CourseAttemptKey(courseID string) string { return "course:" + courseID }

// JobAttemptKey is the guard key for a job application.
func JobAttemptKey(jobID string) string { return "job:" + jobID }
