package sqlite

import (
	"context"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type progressRepo struct {
	q dbtx
}

func (r *progressRepo) MarkComplete(ctx context.Context, c domain.ModuleCompletion) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO module_completions (student_id, module_id, course_id, completed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (student_id, module_id) DO NOTHING`,
		c.StudentID, c.ModuleID, c.CourseID, toMillis(nowOr(c.CompletedAt)),
	)
	return err
}

func (r *progressRepo) ListCompleted(ctx context.Context, studentID, courseID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT module_id FROM module_completions
		WHERE student_id = ? AND course_id = ?
		ORDER BY completed_at, module_id`,
		studentID, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
