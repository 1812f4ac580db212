package sqlite

import (
	"context"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type coursesRepo struct {
	q dbtx
}

const courseColumns = `id, title, description, price, currency, thumbnail, category, level,
	duration_hours, status, created_at, updated_at`

func scanCourse(row scanner) (domain.Course, error) {
	var (
		c                domain.Course
		created, updated int64
	)
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Price, &c.Currency, &c.Thumbnail,
		&c.Category, &c.Level, &c.DurationHours, &c.Status, &created, &updated)
	if err != nil {
		return domain.Course{}, mapNotFound(err)
	}
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}

func (r *coursesRepo) GetCourse(ctx context.Context, id string) (domain.Course, error) {
	return scanCourse(r.q.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = ?`, id))
}

func (r *coursesRepo) ListCourses(ctx context.Context, status domain.CourseStatus) ([]domain.Course, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+courseColumns+` FROM courses
		WHERE ? = '' OR status = ?
		ORDER BY created_at DESC, id DESC`,
		string(status), string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *coursesRepo) CreateCourse(ctx context.Context, c domain.Course) error {
	created := toMillis(nowOr(c.CreatedAt))
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Price, c.Currency, c.Thumbnail, c.Category,
		string(c.Level), c.DurationHours, string(c.Status), created, created,
	)
	return mapConstraint(err)
}

func (r *coursesRepo) UpdateCourse(ctx context.Context, c domain.Course) error {
	return requireRow(r.q.ExecContext(ctx, `
		UPDATE courses SET
			title = ?, description = ?, price = ?, currency = ?, thumbnail = ?,
			category = ?, level = ?, duration_hours = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Price, c.Currency, c.Thumbnail, c.Category,
		string(c.Level), c.DurationHours, string(c.Status), toMillis(nowOr(c.UpdatedAt)), c.ID,
	))
}
