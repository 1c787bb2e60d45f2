package users

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

// Upsert inserts or refreshes an admin on login. Role and company scope are
// sticky: they are set by a superadmin, not by the login flow, so the upsert
// only touches identity fields and the login timestamp.
func (r *PGRepo) Upsert(ctx context.Context, admin Admin) (Admin, error) {
	const query = `
INSERT INTO admins (id, email, name, role, company_id, created_at, last_login_at)
VALUES ($1, $2, $3, $4, $5, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  name = EXCLUDED.name,
  last_login_at = now()
RETURNING id, email, name, role, company_id, created_at, last_login_at`
	return scanAdmin(r.DB.QueryRowContext(ctx, query,
		admin.ID,
		admin.Email,
		admin.Name,
		admin.Role,
		admin.CompanyID,
	))
}

func (r *PGRepo) GetByID(ctx context.Context, adminID string) (Admin, error) {
	const query = `
SELECT id, email, name, role, company_id, created_at, last_login_at
FROM admins
WHERE id = $1
LIMIT 1`
	return scanAdmin(r.DB.QueryRowContext(ctx, query, adminID))
}

func (r *PGRepo) Update(ctx context.Context, admin Admin) error {
	const query = `
UPDATE admins
SET role = $1, company_id = $2
WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, admin.Role, admin.CompanyID, admin.ID)
	if err != nil {
		return err
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdmin(row rowScanner) (Admin, error) {
	var admin Admin
	var companyID sql.NullString
	var lastLogin sql.NullTime
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.Name,
		&admin.Role,
		&companyID,
		&admin.CreatedAt,
		&lastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	if companyID.Valid {
		admin.CompanyID = &companyID.String
	}
	if lastLogin.Valid {
		admin.LastLoginAt = &lastLogin.Time
	}
	return admin, nil
}

var _ Repo = (*PGRepo)(nil)
