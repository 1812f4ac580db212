package sqlite

import (
	"context"
	"database/sql"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type studentsRepo struct {
	q dbtx
}

const studentColumns = `id, google_id, email, name, picture, created_at, updated_at`

func scanStudent(row *sql.Row) (domain.Student, error) {
	var (
		s                domain.Student
		created, updated int64
	)
	if err := row.Scan(&s.ID, &s.GoogleID, &s.Email, &s.Name, &s.Picture, &created, &updated); err != nil {
		return domain.Student{}, mapNotFound(err)
	}
	s.CreatedAt = fromMillis(created)
	s.UpdatedAt = fromMillis(updated)
	return s, nil
}

func (r *studentsRepo) GetStudentByID(ctx context.Context, id string) (domain.Student, error) {
	return scanStudent(r.q.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = ?`, id))
}

func (r *studentsRepo) GetStudentByGoogleID(ctx context.Context, googleID string) (domain.Student, error) {
	return scanStudent(r.q.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE google_id = ?`, googleID))
}

func (r *studentsRepo) CreateStudent(ctx context.Context, s domain.Student) error {
	created := toMillis(nowOr(s.CreatedAt))
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO students (id, google_id, email, name, picture, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.GoogleID, s.Email, s.Name, s.Picture, created, created,
	)
	return mapConstraint(err)
}

func (r *studentsRepo) UpdateProfile(ctx context.Context, s domain.Student) error {
	return requireRow(r.q.ExecContext(ctx, `
		UPDATE students SET email = ?, name = ?, picture = ?, updated_at = ? WHERE id = ?`,
		s.Email, s.Name, s.Picture, toMillis(nowOr(s.UpdatedAt)), s.ID,
	))
}
