/*
Package academysdk is the HTTP client for the Prestige Academy backend.

# SDKClient vs Session

  - SDKClient performs unauthenticated calls: admin login, student identity
    exchange, catalog reads and health checks.
  - Session wraps one backend-issued bearer token and performs the calls that
    need it: verify, enrollment check, payments, modules and progress.

	client := academysdk.NewSDKClient("https://academy.example.com")

	token, user, err := client.ExchangeIdentity(ctx, credential)
	if err != nil {
		return err
	}

	session := client.NewSession(token)
	enrolled, err := session.CheckEnrollment(ctx, courseID)

There is no refresh flow. Before every bearer call the token's expiry claim is
decoded locally (without verifying the signature); an expired token is never
sent and the call fails with ErrTokenExpired.

# Errors

Every failure maps to one of four kinds:

  - *ValidationError: bad local input, never sent.
  - *AuthenticationError: login or exchange rejected, or a 401/403.
  - *NetworkError: transport failure, or non-2xx without a readable message.
  - *ServerError: non-2xx (or success=false) with a backend message.

UserMessage turns any of them into the text shown to a user. Backend messages
pass through verbatim; transport details never do.

# Payments

InitiatePayment sends a fresh Idempotency-Key per call. When the backend
confirms asynchronously the response carries CheckoutRequestID with status
"pending", and PaymentStatus can be polled until it is terminal.
*/
package academysdk
