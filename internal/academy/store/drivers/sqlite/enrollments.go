package sqlite

import (
	"context"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type enrollmentsRepo struct {
	q dbtx
}

func (r *enrollmentsRepo) CreateEnrollment(ctx context.Context, e domain.Enrollment) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO enrollments (id, student_id, course_id, payment_id, enrolled_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.StudentID, e.CourseID, e.PaymentID, toMillis(nowOr(e.EnrolledAt)),
	)
	return mapConstraint(err)
}

func (r *enrollmentsRepo) IsEnrolled(ctx context.Context, studentID, courseID string) (bool, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE student_id = ? AND course_id = ?`,
		studentID, courseID,
	).Scan(&n)
	return n > 0, err
}
