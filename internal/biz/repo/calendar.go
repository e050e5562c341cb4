package repo

import (
	"context"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

// CalendarRepo mirrors commitments into an external calendar.
type CalendarRepo interface {
	// CreateEvent creates the event and returns its id.
	CreateEvent(ctx context.Context, event domain.CalendarEvent) (string, error)

	// UpdateEvent updates an existing event and returns the id under
	// which the event is stored afterwards.
	UpdateEvent(ctx context.Context, eventID string, event domain.CalendarEvent) (string, error)

	// DeleteEvent removes the event.
	DeleteEvent(ctx context.Context, eventID string) error
}
