package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type catalogRepo struct {
	q dbtx
}

func (r *catalogRepo) ListJobs(ctx context.Context) ([]domain.Job, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, title, company, location, type, description, posted_at, deadline
		FROM jobs ORDER BY posted_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var (
			j        domain.Job
			posted   int64
			deadline sql.NullInt64
		)
		if err := rows.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Type, &j.Description, &posted, &deadline); err != nil {
			return nil, err
		}
		j.PostedAt = fromMillis(posted)
		j.Deadline = mapNullMillis(deadline)
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *catalogRepo) ListUpcomingEvents(ctx context.Context, now time.Time) ([]domain.Event, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, title, description, location, starts_at, ends_at
		FROM events
		WHERE COALESCE(ends_at, starts_at) >= ?
		ORDER BY starts_at, id`, now.UnixMilli())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e      domain.Event
			starts int64
			ends   sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &starts, &ends); err != nil {
			return nil, err
		}
		e.StartsAt = fromMillis(starts)
		e.EndsAt = mapNullMillis(ends)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *catalogRepo) ListResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, title, description, category, url, created_at
		FROM resources ORDER BY category, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Resource
	for rows.Next() {
		var (
			res     domain.Resource
			created int64
		)
		if err := rows.Scan(&res.ID, &res.Title, &res.Description, &res.Category, &res.URL, &created); err != nil {
			return nil, err
		}
		res.CreatedAt = fromMillis(created)
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *catalogRepo) CreateJob(ctx context.Context, j domain.Job) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO jobs (id, title, company, location, type, description, posted_at, deadline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, j.Company, j.Location, j.Type, j.Description,
		toMillis(nowOr(j.PostedAt)), mapOptionalMillis(j.Deadline),
	)
	return mapConstraint(err)
}

func (r *catalogRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO events (id, title, description, location, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.Location, toMillis(e.StartsAt), mapOptionalMillis(e.EndsAt),
	)
	return mapConstraint(err)
}

func (r *catalogRepo) CreateResource(ctx context.Context, res domain.Resource) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO resources (id, title, description, category, url, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.Title, res.Description, res.Category, res.URL, toMillis(nowOr(res.CreatedAt)),
	)
	return mapConstraint(err)
}
