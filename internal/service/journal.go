package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"doccms/internal/model"
	"doccms/internal/repository"
)

// journal writes activity entries. A failed write is logged and swallowed so
// that the journal can never fail the operation it describes.
type journal struct {
	repo repository.ActivityRepository
	log  zerolog.Logger
}

func (j journal) record(ctx context.Context, action, document, username string) {
	a := &model.Activity{
		ID:        uuid.NewString(),
		Action:    action,
		Document:  document,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := j.repo.Record(ctx, a); err != nil {
		j.log.Warn().
			Err(err).
			Str("component", "activity").
			Str("action", action).
			Str("document", document).
			Msg("activity_record_failed")
	}
}
