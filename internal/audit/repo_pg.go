package audit

import (
	"context"
	"database/sql"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, event Event) error {
	const query = `
INSERT INTO audit_events (id, actor, company_id, action, entity_type, entity_id, detail, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var detail any
	if len(event.Detail) > 0 {
		detail = []byte(event.Detail)
	}
	var companyID any
	if event.CompanyID != "" {
		companyID = event.CompanyID
	}
	_, err := r.DB.ExecContext(ctx, query,
		event.ID,
		event.Actor,
		companyID,
		event.Action,
		event.EntityType,
		event.EntityID,
		detail,
		event.CreatedAt,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, companyID string, limit, offset int) ([]Event, error) {
	query := `
SELECT id, actor, company_id, action, entity_type, entity_id, detail, created_at
FROM audit_events`
	args := []any{}
	if companyID != "" {
		query += `
WHERE company_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
		args = append(args, companyID, limit, offset)
	} else {
		query += `
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var event Event
		var company sql.NullString
		var detail []byte
		if err := rows.Scan(
			&event.ID,
			&event.Actor,
			&company,
			&event.Action,
			&event.EntityType,
			&event.EntityID,
			&detail,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		if company.Valid {
			event.CompanyID = company.String
		}
		if len(detail) > 0 {
			event.Detail = detail
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
