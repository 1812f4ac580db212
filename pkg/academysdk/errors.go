package academysdk

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericErrorMessage is shown to users in place of transport details.
const GenericErrorMessage = "Something went wrong. Please try again."

// SignInRequiredMessage is shown when a bearer call has no usable token.
const SignInRequiredMessage = "Please sign in to continue."

var (
	// ErrNoToken is returned by Session calls when no token is held.
	ErrNoToken = errors.New("academysdk: no session token")

	// ErrTokenExpired is returned before any request is sent when the
	// session token's decoded expiry is in the past.
	ErrTokenExpired = errors.New("academysdk: session token expired")
)

// ValidationError is a local input problem. It never reaches the network.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// AuthenticationError means a login or identity exchange was rejected, or a
// bearer call came back 401.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return "authentication failed: " + e.Message
}

// NetworkError means the request failed in transit or came back non-2xx
// without a body we could read a message from.
type NetworkError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError carries a structured error message from the backend.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (HTTP %d): %s", e.StatusCode, e.Message)
}

// UserMessage maps any error from this package to the text a user should
// see. Backend and validation messages pass through verbatim; transport
// failures collapse to GenericErrorMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		valErr  *ValidationError
		authErr *AuthenticationError
		srvErr  *ServerError
	)
	switch {
	case errors.As(err, &valErr):
		return valErr.Message
	case errors.As(err, &authErr) && authErr.Message != "":
		return authErr.Message
	case errors.As(err, &srvErr) && srvErr.Message != "":
		return srvErr.Message
	case errors.Is(err, ErrNoToken), errors.Is(err, ErrTokenExpired):
		return SignInRequiredMessage
	default:
		return GenericErrorMessage
	}
}
