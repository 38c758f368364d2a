package repository

import (
	"context"

	"doccms/internal/model"
)

// ActivityRepository persists the activity journal. No business logic here,
// strictly persistence operations.
type ActivityRepository interface {
	// Record inserts one entry. ID and CreatedAt must already be set.
	Record(ctx context.Context, a *model.Activity) error

	// Recent returns at most limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
}

// Nop is used when no database is configured: Record discards entries and
// Recent returns nothing.
type Nop struct{}

var _ ActivityRepository = Nop{}

func (Nop) Record(context.Context, *model.Activity) error { return nil }

func (Nop) Recent(context.Context, int) ([]model.Activity, error) {
	return []model.Activity{}, nil
}
