package sqlite

import (
	"context"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type modulesRepo struct {
	q dbtx
}

const moduleColumns = `id, course_id, title, description, video_url, order_index, duration_minutes, created_at`

func scanModule(row scanner) (domain.Module, error) {
	var (
		m       domain.Module
		created int64
	)
	err := row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.VideoURL,
		&m.OrderIndex, &m.DurationMinutes, &created)
	if err != nil {
		return domain.Module{}, mapNotFound(err)
	}
	m.CreatedAt = fromMillis(created)
	return m, nil
}

func (r *modulesRepo) GetModule(ctx context.Context, id string) (domain.Module, error) {
	return scanModule(r.q.QueryRowContext(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE id = ?`, id))
}

func (r *modulesRepo) ListModules(ctx context.Context, courseID string) ([]domain.Module, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+moduleColumns+` FROM modules WHERE course_id = ? ORDER BY order_index`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Module
	for rows.Next() {
		m, err := scanModule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *modulesRepo) CountModules(ctx context.Context, courseID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM modules WHERE course_id = ?`, courseID).Scan(&n)
	return n, err
}

func (r *modulesRepo) CreateModule(ctx context.Context, m domain.Module) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO modules (`+moduleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.CourseID, m.Title, m.Description, m.VideoURL,
		m.OrderIndex, m.DurationMinutes, toMillis(nowOr(m.CreatedAt)),
	)
	return mapConstraint(err)
}
