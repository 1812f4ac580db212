package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrOTPRequired        = errors.New("otp_required")
	ErrInvalidIdentity    = errors.New("invalid_identity")
	ErrNotFound           = errors.New("not_found")
	ErrNotEnrolled        = errors.New("not_enrolled")
	ErrAlreadyEnrolled    = errors.New("already_enrolled")
	ErrAmountMismatch     = errors.New("amount_mismatch")
	ErrIdempotencyReuse   = errors.New("idempotency_key_reused")
	ErrPaymentDeclined    = errors.New("payment_declined")
)

// ValidationError reports a bad field of an admin or student payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
