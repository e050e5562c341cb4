package domain

import "time"

// CalendarEvent is the shape handed to the calendar capability.
type CalendarEvent struct {
	Summary     string
	Description string
	StartTime   time.Time
	EndTime     time.Time
}

// End returns the event end time, defaulting to start + 30 minutes
// when no explicit end was set.
func (e CalendarEvent) End() time.Time {
	if e.EndTime.IsZero() {
		return e.StartTime.Add(30 * time.Minute)
	}
	return e.EndTime
}
