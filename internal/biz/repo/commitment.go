package repo

import (
	"context"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

// CommitmentRepo is the durable commitment store interface.
type CommitmentRepo interface {
	// Insert persists a new record, assigning ID and CreatedAt.
	// Returns domain.ErrDuplicateCommitment when the uniqueness
	// constraint on (committed_at, participant, description) rejects it.
	Insert(ctx context.Context, rec *domain.CommitmentRecord) error

	// GetByID returns the record, or nil when absent.
	GetByID(ctx context.Context, id int64) (*domain.CommitmentRecord, error)

	// Update persists all mutable fields of an existing record.
	Update(ctx context.Context, rec *domain.CommitmentRecord) error

	// Delete removes the record by id.
	Delete(ctx context.Context, id int64) error

	// FindOpenForParticipant returns the participant's records whose
	// due time is after now, oldest due first.
	FindOpenForParticipant(ctx context.Context, participant string, now time.Time) ([]*domain.CommitmentRecord, error)

	// FindDueAfter returns all records due after t, across participants.
	FindDueAfter(ctx context.Context, t time.Time) ([]*domain.CommitmentRecord, error)

	Close() error
}
