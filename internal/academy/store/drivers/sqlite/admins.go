package sqlite

import (
	"context"
	"database/sql"

	"github.com/prestige-strategies/academy/internal/academy/domain"
)

type adminsRepo struct {
	q dbtx
}

const adminColumns = `id, email, password_hash, totp_secret, created_at, updated_at`

func scanAdmin(row *sql.Row) (domain.Admin, error) {
	var (
		a                domain.Admin
		secret           sql.NullString
		created, updated int64
	)
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &secret, &created, &updated); err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	a.TOTPSecret = mapNullStringPtr(secret)
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return a, nil
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	return scanAdmin(r.q.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = ?`, email))
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	return scanAdmin(r.q.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = ?`, id))
}

func (r *adminsRepo) UpsertAdmin(ctx context.Context, a domain.Admin) error {
	now := toMillis(nowOr(a.UpdatedAt))
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash, totp_secret, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			password_hash = excluded.password_hash,
			totp_secret   = excluded.totp_secret,
			updated_at    = excluded.updated_at`,
		a.ID, a.Email, a.PasswordHash, mapOptionalString(a.TOTPSecret), toMillis(nowOr(a.CreatedAt)), now,
	)
	return err
}
