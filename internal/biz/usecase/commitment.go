package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
)

// CommitmentUsecase handles the administrative commitment operations.
type CommitmentUsecase struct {
	commitments repo.CommitmentRepo
	calendar    repo.CalendarRepo
	logger      *slog.Logger
	now         func() time.Time
}

// NewCommitmentUsecase creates the administrative usecase.
func NewCommitmentUsecase(commitments repo.CommitmentRepo, calendar repo.CalendarRepo, logger *slog.Logger) *CommitmentUsecase {
	return &CommitmentUsecase{
		commitments: commitments,
		calendar:    calendar,
		logger:      logger,
		now:         time.Now,
	}
}

// ListDueAfter returns commitments due after the given time. A zero
// time defaults to now.
func (uc *CommitmentUsecase) ListDueAfter(ctx context.Context, after time.Time) ([]*domain.CommitmentRecord, error) {
	if after.IsZero() {
		after = uc.now()
	}
	return uc.commitments.FindDueAfter(ctx, after)
}

// DeleteByCommitmentID deletes the record and its calendar event.
// A missing record is a no-op. The record is deleted before the
// calendar event; a calendar failure at that point propagates and
// leaves a dangling event, which callers must expect.
func (uc *CommitmentUsecase) DeleteByCommitmentID(ctx context.Context, id int64) error {
	uc.logger.Info("deleting commitment", slog.Int64("id", id))

	rec, err := uc.commitments.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get commitment %d: %w", id, err)
	}
	if rec == nil {
		uc.logger.Warn("commitment not found", slog.Int64("id", id))
		return nil
	}

	if err := uc.commitments.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete commitment %d: %w", id, err)
	}

	if rec.CalendarEventID != "" {
		if err := uc.calendar.DeleteEvent(ctx, rec.CalendarEventID); err != nil {
			return fmt.Errorf("delete calendar event %s: %w", rec.CalendarEventID, err)
		}
	}

	uc.logger.Info("deleted commitment", slog.Int64("id", id))
	return nil
}
