package companies

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, company Company) error {
	const query = `
INSERT INTO companies (id, name, contact_email, employee_count, top_up_percentage, top_up_weeks, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.DB.ExecContext(ctx, query,
		company.ID,
		company.Name,
		company.ContactEmail,
		company.EmployeeCount,
		company.TopUpPercentage,
		company.TopUpWeeks,
		company.Status,
		company.CreatedAt,
		company.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, companyID string) (Company, error) {
	const query = `
SELECT id, name, contact_email, employee_count, top_up_percentage, top_up_weeks, status, created_at, updated_at
FROM companies
WHERE id = $1
LIMIT 1`
	return scanCompany(r.DB.QueryRowContext(ctx, query, companyID))
}

func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Company, error) {
	const query = `
SELECT id, name, contact_email, employee_count, top_up_percentage, top_up_weeks, status, created_at, updated_at
FROM companies
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, company)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, company Company) error {
	const query = `
UPDATE companies
SET name = $1,
    contact_email = $2,
    employee_count = $3,
    top_up_percentage = $4,
    top_up_weeks = $5,
    status = $6,
    updated_at = $7
WHERE id = $8`
	res, err := r.DB.ExecContext(ctx, query,
		company.Name,
		company.ContactEmail,
		company.EmployeeCount,
		company.TopUpPercentage,
		company.TopUpWeeks,
		company.Status,
		company.UpdatedAt,
		company.ID,
	)
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

func scanCompany(row rowScanner) (Company, error) {
	var company Company
	var topUpPct sql.NullFloat64
	var topUpWeeks sql.NullInt64
	err := row.Scan(
		&company.ID,
		&company.Name,
		&company.ContactEmail,
		&company.EmployeeCount,
		&topUpPct,
		&topUpWeeks,
		&company.Status,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	if topUpPct.Valid {
		v := topUpPct.Float64
		company.TopUpPercentage = &v
	}
	if topUpWeeks.Valid {
		v := int(topUpWeeks.Int64)
		company.TopUpWeeks = &v
	}
	return company, nil
}

var _ Repo = (*PGRepo)(nil)
