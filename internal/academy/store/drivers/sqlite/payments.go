package sqlite

import (
	"context"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type paymentsRepo struct {
	q dbtx
}

const paymentColumns = `id, student_id, course_id, phone_number, amount, currency, idempotency_key,
	checkout_request_id, status, message, test_mode, confirm_at, created_at, updated_at`

func scanPayment(row scanner) (domain.Payment, error) {
	var (
		p                           domain.Payment
		confirmAt, created, updated int64
	)
	err := row.Scan(&p.ID, &p.StudentID, &p.CourseID, &p.PhoneNumber, &p.Amount, &p.Currency,
		&p.IdempotencyKey, &p.CheckoutRequestID, &p.Status, &p.Message, &p.TestMode,
		&confirmAt, &created, &updated)
	if err != nil {
		return domain.Payment{}, mapNotFound(err)
	}
	p.ConfirmAt = fromMillis(confirmAt)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

func (r *paymentsRepo) CreatePayment(ctx context.Context, p domain.Payment) error {
	created := toMillis(nowOr(p.CreatedAt))
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.StudentID, p.CourseID, p.PhoneNumber, p.Amount, p.Currency, p.IdempotencyKey,
		p.CheckoutRequestID, string(p.Status), p.Message, p.TestMode,
		toMillis(p.ConfirmAt), created, created,
	)
	return mapConstraint(err)
}

func (r *paymentsRepo) GetPaymentByCheckoutID(ctx context.Context, checkoutRequestID string) (domain.Payment, error) {
	return scanPayment(r.q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE checkout_request_id = ?`, checkoutRequestID))
}

func (r *paymentsRepo) GetPaymentByIdempotencyKey(ctx context.Context, studentID, key string) (domain.Payment, error) {
	return scanPayment(r.q.QueryRowContext(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE student_id = ? AND idempotency_key = ? AND idempotency_key <> ''`,
		studentID, key))
}

func (r *paymentsRepo) UpdatePaymentStatus(
	ctx context.Context,
	id string,
	status domain.PaymentStatus,
	message string,
) error {
	return requireRow(r.q.ExecContext(ctx, `
		UPDATE payments SET status = ?, message = ?, updated_at = ?
		WHERE id = ? AND status = 'pending'`,
		string(status), message, time.Now().UTC().UnixMilli(), id,
	))
}

func (r *paymentsRepo) ExpirePendingPayments(ctx context.Context, cutoff time.Time, message string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE payments SET status = 'cancelled', message = ?, updated_at = ?
		WHERE status = 'pending' AND created_at < ?`,
		message, time.Now().UTC().UnixMilli(), cutoff.UnixMilli(),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
