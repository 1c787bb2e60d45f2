package employees

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, employee Employee) error {
	const query = `
INSERT INTO employees (id, company_id, name, external_id, department, email, leave_status, leave_start_date, leave_end_date, source_document_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		employee.ID,
		employee.CompanyID,
		employee.Name,
		employee.ExternalID,
		employee.Department,
		employee.Email,
		employee.LeaveStatus,
		employee.LeaveStartDate,
		employee.LeaveEndDate,
		employee.SourceDocumentID,
		employee.CreatedAt,
		employee.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, companyID, employeeID string) (Employee, error) {
	const query = `
SELECT id, company_id, name, external_id, department, email, leave_status, leave_start_date, leave_end_date, source_document_id, created_at, updated_at
FROM employees
WHERE company_id = $1 AND id = $2
LIMIT 1`
	return scanEmployee(r.DB.QueryRowContext(ctx, query, companyID, employeeID))
}

func (r *PGRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]Employee, error) {
	const query = `
SELECT id, company_id, name, external_id, department, email, leave_status, leave_start_date, leave_end_date, source_document_id, created_at, updated_at
FROM employees
WHERE company_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, employee)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, employee Employee) error {
	const query = `
UPDATE employees
SET name = $1,
    external_id = $2,
    department = $3,
    email = $4,
    leave_status = $5,
    leave_start_date = $6,
    leave_end_date = $7,
    updated_at = $8
WHERE company_id = $9 AND id = $10`
	res, err := r.DB.ExecContext(ctx, query,
		employee.Name,
		employee.ExternalID,
		employee.Department,
		employee.Email,
		employee.LeaveStatus,
		employee.LeaveStartDate,
		employee.LeaveEndDate,
		employee.UpdatedAt,
		employee.CompanyID,
		employee.ID,
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

func scanEmployee(row rowScanner) (Employee, error) {
	var employee Employee
	var externalID, department, email, sourceDoc sql.NullString
	var leaveStart, leaveEnd sql.NullTime
	err := row.Scan(
		&employee.ID,
		&employee.CompanyID,
		&employee.Name,
		&externalID,
		&department,
		&email,
		&employee.LeaveStatus,
		&leaveStart,
		&leaveEnd,
		&sourceDoc,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Employee{}, ErrNotFound
		}
		return Employee{}, err
	}
	if externalID.Valid {
		employee.ExternalID = &externalID.String
	}
	if department.Valid {
		employee.Department = &department.String
	}
	if email.Valid {
		employee.Email = &email.String
	}
	if sourceDoc.Valid {
		employee.SourceDocumentID = &sourceDoc.String
	}
	if leaveStart.Valid {
		employee.LeaveStartDate = &leaveStart.Time
	}
	if leaveEnd.Valid {
		employee.LeaveEndDate = &leaveEnd.Time
	}
	return employee, nil
}

var _ Repo = (*PGRepo)(nil)
