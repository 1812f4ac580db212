package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Terminal() bool {
	return s == PaymentCompleted || s == PaymentFailed || s == PaymentCancelled
}

type Payment struct {
	ID                string
	StudentID         string
	CourseID          string
	PhoneNumber       string // normalized, 254XXXXXXXXX
	Amount            float64
	Currency          string
	IdempotencyKey    string // empty when the client sent none
	CheckoutRequestID string
	Status            PaymentStatus
	Message           string
	TestMode          bool
	ConfirmAt         time.Time // when a pending simulated checkout settles
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
