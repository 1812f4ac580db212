package service

import (
	"context"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/pkg/idx"
)

// ChargeRequest asks the mobile-money provider to push a payment prompt to
// a phone.
type ChargeRequest struct {
	PaymentID   string
	PhoneNumber string
	Amount      float64
	Currency    string
	Reference   string
}

// ChargeResult is the provider's answer to a charge. A pending result is
// settled later through Confirm.
type ChargeResult struct {
	CheckoutRequestID string
	Status            domain.PaymentStatus
	Message           string
	TestMode          bool
	ConfirmAt         time.Time
}

// Gateway is the payment provider seam. Only a simulated provider ships;
// live provider integration is deliberately left out.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)

	// Confirm resolves a pending checkout whose ConfirmAt has passed.
	Confirm(ctx context.Context, p domain.Payment) (domain.PaymentStatus, string, error)
}

// DeclinedPhone always fails in the simulated gateway.
const DeclinedPhone = "254700000000"

const (
	msgPendingPrompt = "Payment request sent. Check your phone to complete the payment."
	msgTestCompleted = "Test mode: payment simulated successfully."
	msgDeclined      = "The payment was declined. Please try again."
)

// SimulatedGateway settles every charge without talking to a provider.
// With ConfirmDelay zero it answers synchronously; otherwise checkouts stay
// pending for ConfirmDelay, like a real phone prompt.
type SimulatedGateway struct {
	ConfirmDelay time.Duration

	// Now is overridable in tests.
	Now func() time.Time
}

func (g *SimulatedGateway) now() time.Time {
	if g.Now != nil {
		return g.Now().UTC()
	}
	return time.Now().UTC()
}

func (g *SimulatedGateway) Charge(_ context.Context, req ChargeRequest) (ChargeResult, error) {
	res := ChargeResult{
		CheckoutRequestID: "ws_CO_" + idx.New().String(),
		TestMode:          true,
	}

	if g.ConfirmDelay > 0 {
		res.Status = domain.PaymentPending
		res.Message = msgPendingPrompt
		res.ConfirmAt = g.now().Add(g.ConfirmDelay)
		return res, nil
	}

	res.Status, res.Message = g.outcome(req.PhoneNumber)
	return res, nil
}

func (g *SimulatedGateway) Confirm(_ context.Context, p domain.Payment) (domain.PaymentStatus, string, error) {
	status, msg := g.outcome(p.PhoneNumber)
	return status, msg, nil
}

func (g *SimulatedGateway) outcome(phone string) (domain.PaymentStatus, string) {
	if phone == DeclinedPhone {
		return domain.PaymentFailed, msgDeclined
	}
	return domain.PaymentCompleted, msgTestCompleted
}
