package data

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
)

func newTestCommitmentRepo(t *testing.T) repo.CommitmentRepo {
	t.Helper()
	r, err := NewCommitmentRepo(filepath.Join(t.TempDir(), "commitments.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func sampleRecord(participant, description string, due time.Time) *domain.CommitmentRecord {
	return &domain.CommitmentRecord{
		CommittedAt:     time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC),
		Description:     description,
		Participant:     participant,
		ToBeCompletedAt: due,
		CalendarEventID: "evt-1",
	}
}

func TestCommitmentInsertAssignsID(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	rec := sampleRecord("911234567890", "Send the slides", time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC))
	require.NoError(t, r.Insert(ctx, rec))
	assert.Greater(t, rec.ID, int64(0))
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestCommitmentInsertDuplicateFails(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	due := time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC)
	first := sampleRecord("911234567890", "Send the slides", due)
	require.NoError(t, r.Insert(ctx, first))

	second := sampleRecord("911234567890", "Send the slides", due)
	err := r.Insert(ctx, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicateCommitment))
}

func TestCommitmentSameDescriptionDifferentParticipant(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	due := time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC)
	require.NoError(t, r.Insert(ctx, sampleRecord("911234567890", "Send the slides", due)))
	require.NoError(t, r.Insert(ctx, sampleRecord("919999999999", "Send the slides", due)))
}

func TestCommitmentGetByIDRoundTrip(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	due := time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC)
	rec := sampleRecord("911234567890", "Send the slides", due)
	require.NoError(t, r.Insert(ctx, rec))

	got, err := r.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Send the slides", got.Description)
	assert.Equal(t, "911234567890", got.Participant)
	assert.Equal(t, due, got.ToBeCompletedAt)
	assert.Equal(t, "evt-1", got.CalendarEventID)
	assert.Equal(t, rec.CommittedAt, got.CommittedAt)
}

func TestCommitmentGetByIDAbsent(t *testing.T) {
	r := newTestCommitmentRepo(t)

	got, err := r.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCommitmentZeroDueTimeRoundTrip(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	rec := sampleRecord("911234567890", "Send the slides", time.Time{})
	require.NoError(t, r.Insert(ctx, rec))

	got, err := r.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ToBeCompletedAt.IsZero())
}

func TestCommitmentUpdate(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	rec := sampleRecord("911234567890", "Send the slides", time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC))
	require.NoError(t, r.Insert(ctx, rec))

	rec.Description = "Send the slides by mail"
	rec.ToBeCompletedAt = time.Date(2025, 11, 5, 18, 0, 0, 0, time.UTC)
	rec.CalendarEventID = "evt-2"
	require.NoError(t, r.Update(ctx, rec))

	got, err := r.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Send the slides by mail", got.Description)
	assert.Equal(t, time.Date(2025, 11, 5, 18, 0, 0, 0, time.UTC), got.ToBeCompletedAt)
	assert.Equal(t, "evt-2", got.CalendarEventID)
}

func TestCommitmentDelete(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()

	rec := sampleRecord("911234567890", "Send the slides", time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC))
	require.NoError(t, r.Insert(ctx, rec))
	require.NoError(t, r.Delete(ctx, rec.ID))

	got, err := r.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindOpenForParticipantFiltersByDueAndParticipant(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	overdue := sampleRecord("911234567890", "Old promise", now.Add(-time.Hour))
	open := sampleRecord("911234567890", "Send the slides", now.Add(time.Hour))
	other := sampleRecord("919999999999", "Dinner", now.Add(time.Hour))
	undated := sampleRecord("911234567890", "Sometime", time.Time{})
	for _, rec := range []*domain.CommitmentRecord{overdue, open, other, undated} {
		require.NoError(t, r.Insert(ctx, rec))
	}

	records, err := r.FindOpenForParticipant(ctx, "911234567890", now)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, open.ID, records[0].ID)
}

func TestFindOpenForParticipantOrdersByDueTime(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	later := sampleRecord("911234567890", "Later", now.Add(3*time.Hour))
	sooner := sampleRecord("911234567890", "Sooner", now.Add(time.Hour))
	require.NoError(t, r.Insert(ctx, later))
	require.NoError(t, r.Insert(ctx, sooner))

	records, err := r.FindOpenForParticipant(ctx, "911234567890", now)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Sooner", records[0].Description)
	assert.Equal(t, "Later", records[1].Description)
}

func TestFindDueAfterSpansParticipants(t *testing.T) {
	r := newTestCommitmentRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Insert(ctx, sampleRecord("911234567890", "Send the slides", now.Add(time.Hour))))
	require.NoError(t, r.Insert(ctx, sampleRecord("919999999999", "Dinner", now.Add(2*time.Hour))))
	require.NoError(t, r.Insert(ctx, sampleRecord("911234567890", "Old promise", now.Add(-time.Hour))))

	records, err := r.FindDueAfter(ctx, now)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
