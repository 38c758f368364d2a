package postgres

import (
	"context"
	"database/sql"

	"doccms/internal/model"
	"doccms/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Record inserts a journal row.
func (r *ActivityPostgres) Record(ctx context.Context, a *model.Activity) error {
	const q = `
		INSERT INTO activity (id, action, document, username, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, q,
		a.ID,
		a.Action,
		a.Document,
		a.Username,
		a.CreatedAt,
	)
	return err
}

// Recent returns the newest rows first.
func (r *ActivityPostgres) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	const q = `
		SELECT id, action, document, username, created_at
		FROM activity
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(
			&a.ID,
			&a.Action,
			&a.Document,
			&a.Username,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
