package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/pkg/cryptox"
	"github.com/prestige-strategies/academy/pkg/idx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

var phonePattern = regexp.MustCompile(`^254[71]\d{8}$`)

// NormalizePhone strips whitespace and rewrites a leading 0 or +254 to the
// 254 country code.
func NormalizePhone(raw string) (string, error) {
	p := strings.Join(strings.Fields(raw), "")
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "0") {
		p = "254" + p[1:]
	}
	if !phonePattern.MatchString(p) {
		return "", &ValidationError{
			Field:   "phone_number",
			Message: "Please enter a valid phone number (e.g., 0712345678 or 254712345678)",
		}
	}
	return p, nil
}

// PaymentInput is a student's checkout request.
type PaymentInput struct {
	CourseID    string
	PhoneNumber string
	Amount      float64
}

type PaymentService struct {
	Store   store.Store
	Gateway Gateway
	Metrics *Metrics

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *PaymentService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Initiate charges a student for a published course. A repeated
// idempotency key returns the payment created by the first call instead of
// charging again. A declined charge is returned together with
// ErrPaymentDeclined.
func (s *PaymentService) Initiate(ctx context.Context, studentID, idempotencyKey string, in PaymentInput) (domain.Payment, error) {
	l := slogx.FromContext(ctx)

	phone, err := NormalizePhone(in.PhoneNumber)
	if err != nil {
		return domain.Payment{}, err
	}

	// Client keys are stored as fingerprints so their size and content
	// never reach the database.
	if k := strings.TrimSpace(idempotencyKey); k != "" {
		idempotencyKey = cryptox.Fingerprint(k)
	} else {
		idempotencyKey = ""
	}
	if idempotencyKey != "" {
		if p, ok, err := s.replay(ctx, studentID, idempotencyKey, in.CourseID); ok || err != nil {
			return p, err
		}
	}

	course, err := s.Store.Courses().GetCourse(ctx, in.CourseID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && course.Status != domain.CoursePublished) {
		return domain.Payment{}, ErrNotFound
	}
	if err != nil {
		return domain.Payment{}, err
	}

	if math.Abs(course.Price-in.Amount) > 0.005 {
		return domain.Payment{}, ErrAmountMismatch
	}

	enrolled, err := s.Store.Enrollments().IsEnrolled(ctx, studentID, course.ID)
	if err != nil {
		return domain.Payment{}, err
	}
	if enrolled {
		return domain.Payment{}, ErrAlreadyEnrolled
	}

	p := domain.Payment{
		ID:             idx.New().String(),
		StudentID:      studentID,
		CourseID:       course.ID,
		PhoneNumber:    phone,
		Amount:         course.Price,
		Currency:       course.Currency,
		IdempotencyKey: idempotencyKey,
	}

	res, err := s.Gateway.Charge(ctx, ChargeRequest{
		PaymentID:   p.ID,
		PhoneNumber: phone,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Reference:   course.Title,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("gateway charge: %w", err)
	}

	now := s.now()
	p.CheckoutRequestID = res.CheckoutRequestID
	p.Status = res.Status
	p.Message = res.Message
	p.TestMode = res.TestMode
	p.ConfirmAt = res.ConfirmAt
	if p.ConfirmAt.IsZero() {
		p.ConfirmAt = now
	}
	p.CreatedAt, p.UpdatedAt = now, now

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Payments().CreatePayment(ctx, p); err != nil {
			return err
		}
		if p.Status == domain.PaymentCompleted {
			return enroll(ctx, tx, p)
		}
		return nil
	})
	if errors.Is(err, store.ErrAlreadyExists) && idempotencyKey != "" {
		// Lost a race with a concurrent request carrying the same key.
		if p, ok, err := s.replay(ctx, studentID, idempotencyKey, in.CourseID); ok || err != nil {
			return p, err
		}
	}
	if err != nil {
		return domain.Payment{}, err
	}

	s.Metrics.Payment(string(p.Status))
	l.Info("payment initiated",
		slog.String("payment_id", p.ID),
		slog.String("course_id", p.CourseID),
		slog.String("status", string(p.Status)),
		slog.Bool("test_mode", p.TestMode),
	)

	if p.Status == domain.PaymentFailed {
		return p, ErrPaymentDeclined
	}
	return p, nil
}

func (s *PaymentService) replay(ctx context.Context, studentID, key, courseID string) (domain.Payment, bool, error) {
	p, err := s.Store.Payments().GetPaymentByIdempotencyKey(ctx, studentID, key)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Payment{}, false, nil
	}
	if err != nil {
		return domain.Payment{}, false, err
	}
	if p.CourseID != courseID {
		return domain.Payment{}, true, ErrIdempotencyReuse
	}
	slogx.FromContext(ctx).Info("payment replayed", slog.String("payment_id", p.ID))
	if p.Status == domain.PaymentFailed {
		return p, true, ErrPaymentDeclined
	}
	return p, true, nil
}

// Status returns a student's payment by checkout id, settling it first when
// it is pending and due.
func (s *PaymentService) Status(ctx context.Context, studentID, checkoutRequestID string) (domain.Payment, error) {
	p, err := s.Store.Payments().GetPaymentByCheckoutID(ctx, checkoutRequestID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && p.StudentID != studentID) {
		return domain.Payment{}, ErrNotFound
	}
	if err != nil {
		return domain.Payment{}, err
	}

	if p.Status != domain.PaymentPending || s.now().Before(p.ConfirmAt) {
		return p, nil
	}

	status, msg, err := s.Gateway.Confirm(ctx, p)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("gateway confirm: %w", err)
	}
	if status == domain.PaymentPending {
		return p, nil
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Payments().UpdatePaymentStatus(ctx, p.ID, status, msg); err != nil {
			return err
		}
		if status == domain.PaymentCompleted {
			return enroll(ctx, tx, p)
		}
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Settled by a concurrent poll or expired by housekeeping.
		return s.Store.Payments().GetPaymentByCheckoutID(ctx, checkoutRequestID)
	case err != nil:
		return domain.Payment{}, err
	}

	s.Metrics.Payment(string(status))
	slogx.FromContext(ctx).Info("payment settled",
		slog.String("payment_id", p.ID),
		slog.String("status", string(status)),
	)

	p.Status, p.Message = status, msg
	return p, nil
}

func enroll(ctx context.Context, tx store.Tx, p domain.Payment) error {
	err := tx.Enrollments().CreateEnrollment(ctx, domain.Enrollment{
		ID:         idx.New().String(),
		StudentID:  p.StudentID,
		CourseID:   p.CourseID,
		PaymentID:  p.ID,
		EnrolledAt: time.Now().UTC(),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}
