package content

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, item Item) error {
	const query = `
INSERT INTO content_items (id, title, body, category, audience, published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Body,
		item.Category,
		item.Audience,
		item.Published,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	const query = `
SELECT id, title, body, category, audience, published, created_at, updated_at
FROM content_items
WHERE id = $1
LIMIT 1`
	var item Item
	err := r.DB.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.Title,
		&item.Body,
		&item.Category,
		&item.Audience,
		&item.Published,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

func (r *PGRepo) List(ctx context.Context, publishedOnly bool, audience string, limit, offset int) ([]Item, error) {
	query := `
SELECT id, title, body, category, audience, published, created_at, updated_at
FROM content_items
WHERE 1=1`
	args := []any{}
	if publishedOnly {
		query += ` AND published = TRUE`
	}
	if audience != "" {
		args = append(args, audience)
		query += ` AND (audience = $1 OR audience = 'all')`
	}
	args = append(args, limit, offset)
	if audience != "" {
		query += `
ORDER BY updated_at DESC
LIMIT $2 OFFSET $3`
	} else {
		query += `
ORDER BY updated_at DESC
LIMIT $1 OFFSET $2`
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Body,
			&item.Category,
			&item.Audience,
			&item.Published,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PGRepo) Update(ctx context.Context, item Item) error {
	const query = `
UPDATE content_items
SET title = $1, body = $2, category = $3, audience = $4, published = $5, updated_at = $6
WHERE id = $7`
	res, err := r.DB.ExecContext(ctx, query,
		item.Title,
		item.Body,
		item.Category,
		item.Audience,
		item.Published,
		item.UpdatedAt,
		item.ID,
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

func (r *PGRepo) Delete(ctx context.Context, itemID string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM content_items WHERE id = $1`, itemID)
	if err != nil {
		return err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
