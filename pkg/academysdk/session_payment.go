package academysdk

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// IdempotencyKeyHeader carries a per-attempt key so a replayed initiation
// returns the original attempt instead of charging twice.
const IdempotencyKeyHeader = "Idempotency-Key"

// InitiatePayment starts a mobile-money checkout under a fresh idempotency
// key. A response with Success=false comes back as *ServerError with the
// backend's message. Callers that may resubmit the same attempt use
// InitiatePaymentWithKey.
func (s *Session) InitiatePayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	return s.InitiatePaymentWithKey(ctx, uuid.NewString(), req)
}

// InitiatePaymentWithKey is InitiatePayment with a caller-chosen idempotency key.
func (s *Session) InitiatePaymentWithKey(ctx context.Context, key string, req PaymentRequest) (*PaymentResponse, error) {
	body, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/api/payments/initiate", body, map[string]string{
		IdempotencyKeyHeader: key,
	})
	if err != nil {
		return nil, err
	}

	var out PaymentResponse
	if err := decodeJSON(resp, &out, "POST /api/payments/initiate"); err != nil {
		return nil, err
	}
	if !out.Success {
		if err := successOrServerError(SuccessResponse{Error: out.Error, Message: out.Message}, http.StatusOK); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// PaymentStatus polls the state of an asynchronous checkout.
func (s *Session) PaymentStatus(ctx context.Context, checkoutRequestID string) (*PaymentStatusResponse, error) {
	path := "/api/payments/" + url.PathEscape(checkoutRequestID)
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var out PaymentStatusResponse
	if err := decodeJSON(resp, &out, "GET /api/payments"); err != nil {
		return nil, err
	}
	return &out, nil
}
