package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
	"github.com/prithvianilk/my-besto-friendo/internal/wideevent"
)

// actionRouter applies a validated CommitmentAction against the store
// and the calendar. State is implicit in the store: a record exists or
// it does not. Calendar calls always run before the store mutation, so
// a calendar failure leaves the store untouched; the reverse gap (a
// calendar event created before an insert fails) is accepted and
// surfaced through the wide event rather than compensated.
type actionRouter struct {
	commitments repo.CommitmentRepo
	calendar    repo.CalendarRepo
}

// Apply routes by action type. Domain failures (missing id, not found,
// duplicate) are recorded and swallowed; capability and persistence
// errors are recorded and returned.
func (r *actionRouter) Apply(ctx context.Context, ec *wideevent.Context, action *domain.CommitmentAction, msg domain.WhatsAppMessage) error {
	switch action.Type {
	case domain.ActionCreate:
		return r.create(ctx, ec, action.Commitment, msg.ParticipantID)
	case domain.ActionChange:
		return r.change(ctx, ec, action)
	case domain.ActionCancel:
		return r.cancel(ctx, ec, action)
	default:
		// Validate() rejects unknown types before routing.
		return fmt.Errorf("unroutable action type %q", action.Type)
	}
}

func (r *actionRouter) create(ctx context.Context, ec *wideevent.Context, c domain.Commitment, participant string) error {
	eventID, err := r.calendar.CreateEvent(ctx, calendarEventFor(c, participant))
	if err != nil {
		fail(ec, fmt.Sprintf("calendar create failed: %v", err))
		return fmt.Errorf("create calendar event: %w", err)
	}

	rec := &domain.CommitmentRecord{
		CommittedAt:     c.CommittedAt,
		Description:     c.Description,
		Participant:     participant,
		ToBeCompletedAt: c.ToBeCompletedAt,
		CalendarEventID: eventID,
	}
	if err := r.commitments.Insert(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateCommitment) {
			fail(ec, "duplicate commitment")
			return nil
		}
		fail(ec, fmt.Sprintf("persist failed: %v", err))
		return fmt.Errorf("insert commitment: %w", err)
	}

	ec.Enrich(TraceKey, CommitmentTrace{
		CommitmentID:    ptr(rec.ID),
		CalendarEventID: ptr(eventID),
		Success:         ptr(true),
	})
	return nil
}

func (r *actionRouter) change(ctx context.Context, ec *wideevent.Context, action *domain.CommitmentAction) error {
	if action.ID == nil {
		fail(ec, "ID is required for CHANGE action")
		return nil
	}

	existing, err := r.commitments.GetByID(ctx, *action.ID)
	if err != nil {
		fail(ec, fmt.Sprintf("lookup failed: %v", err))
		return fmt.Errorf("get commitment %d: %w", *action.ID, err)
	}
	if existing == nil {
		fail(ec, "not found with ID")
		return nil
	}

	c := action.Commitment
	newEventID, err := r.calendar.UpdateEvent(ctx, existing.CalendarEventID, calendarEventFor(c, existing.Participant))
	if err != nil {
		fail(ec, fmt.Sprintf("calendar update failed: %v", err))
		return fmt.Errorf("update calendar event: %w", err)
	}

	existing.CommittedAt = c.CommittedAt
	existing.Description = c.Description
	existing.ToBeCompletedAt = c.ToBeCompletedAt
	existing.CalendarEventID = newEventID
	if err := r.commitments.Update(ctx, existing); err != nil {
		fail(ec, fmt.Sprintf("persist failed: %v", err))
		return fmt.Errorf("update commitment %d: %w", existing.ID, err)
	}

	ec.Enrich(TraceKey, CommitmentTrace{
		CalendarEventID: ptr(newEventID),
		Success:         ptr(true),
	})
	return nil
}

func (r *actionRouter) cancel(ctx context.Context, ec *wideevent.Context, action *domain.CommitmentAction) error {
	if action.ID == nil {
		fail(ec, "ID is required for CANCEL action")
		return nil
	}

	existing, err := r.commitments.GetByID(ctx, *action.ID)
	if err != nil {
		fail(ec, fmt.Sprintf("lookup failed: %v", err))
		return fmt.Errorf("get commitment %d: %w", *action.ID, err)
	}
	if existing == nil {
		fail(ec, "not found with ID")
		return nil
	}

	// Calendar first: a failure here leaves the record in place so a
	// redelivered CANCEL can retry against it.
	if err := r.calendar.DeleteEvent(ctx, existing.CalendarEventID); err != nil {
		fail(ec, fmt.Sprintf("calendar delete failed: %v", err))
		return fmt.Errorf("delete calendar event: %w", err)
	}
	if err := r.commitments.Delete(ctx, existing.ID); err != nil {
		fail(ec, fmt.Sprintf("persist failed: %v", err))
		return fmt.Errorf("delete commitment %d: %w", existing.ID, err)
	}

	ec.Enrich(TraceKey, CommitmentTrace{Success: ptr(true)})
	return nil
}

func calendarEventFor(c domain.Commitment, participant string) domain.CalendarEvent {
	start := c.ToBeCompletedAt
	if start.IsZero() {
		start = c.CommittedAt
	}
	return domain.CalendarEvent{
		Summary:     c.Description,
		Description: fmt.Sprintf("Commitment with %s: %s", participant, c.Description),
		StartTime:   start,
	}
}

func fail(ec *wideevent.Context, reason string) {
	ec.Enrich(TraceKey, CommitmentTrace{
		Success:       ptr(false),
		FailureReason: ptr(reason),
	})
}
