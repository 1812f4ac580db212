package http

import (
	"errors"
	"net/http"

	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/pkg/academysdk"
	"github.com/prestige-strategies/academy/pkg/httpx"
)

type PaymentHandler struct {
	PaymentService *service.PaymentService
}

// HandleInitiate godoc
//
//	@Summary		Initiate Payment
//	@Description	Starts a mobile-money checkout for a course. A repeated Idempotency-Key returns the original attempt.
//	@Description	When status is pending, poll /api/payments/{checkout_request_id} until it settles.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			Idempotency-Key	header		string						false	"Per-attempt key"
//	@Param			body			body		academysdk.PaymentRequest	true	"course_id, phone_number, amount"
//	@Success		200				{object}	academysdk.PaymentResponse	"success, test_mode, checkout_request_id, status"
//	@Failure		400				{object}	httpx.ErrorBody				"success, error"
//	@Failure		402				{object}	httpx.ErrorBody				"success, error - declined"
//	@Failure		409				{object}	httpx.ErrorBody				"success, error"
//	@Router			/api/payments/initiate [post].
func (h *PaymentHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	var req academysdk.PaymentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CourseID == "" {
		httpx.WriteError(w, http.StatusBadRequest, "course_id is required")
		return
	}

	p, err := h.PaymentService.Initiate(r.Context(), userID(r), r.Header.Get(academysdk.IdempotencyKeyHeader), service.PaymentInput{
		CourseID:    req.CourseID,
		PhoneNumber: req.PhoneNumber,
		Amount:      req.Amount,
	})
	if errors.Is(err, service.ErrPaymentDeclined) {
		httpx.WriteError(w, http.StatusPaymentRequired, p.Message)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.PaymentResponse{
		Success:           true,
		TestMode:          p.TestMode,
		CheckoutRequestID: p.CheckoutRequestID,
		Status:            academysdk.PaymentStatus(p.Status),
		Message:           p.Message,
	})
}

// HandleStatus godoc
//
//	@Summary		Payment Status
//	@Tags			Payments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string								true	"Checkout request ID"
//	@Success		200	{object}	academysdk.PaymentStatusResponse	"checkout_request_id, status, message"
//	@Failure		404	{object}	httpx.ErrorBody						"success, error"
//	@Router			/api/payments/{id} [get].
func (h *PaymentHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	p, err := h.PaymentService.Status(r.Context(), userID(r), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, academysdk.PaymentStatusResponse{
		CheckoutRequestID: p.CheckoutRequestID,
		Status:            academysdk.PaymentStatus(p.Status),
		Message:           p.Message,
	})
}
