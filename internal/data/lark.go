package data

import (
	"context"
	"fmt"
	"strconv"
	"time"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcalendar "github.com/larksuite/oapi-sdk-go/v3/service/calendar/v4"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
)

// calendarRepo implements the calendar capability on the Lark Calendar
// v4 API.
type calendarRepo struct {
	client     *lark.Client
	calendarID string
	timezone   string
}

// NewCalendarRepo creates the calendar repository.
func NewCalendarRepo(appID, appSecret, calendarID, timezone string) repo.CalendarRepo {
	if timezone == "" {
		timezone = "Asia/Kolkata"
	}
	return &calendarRepo{
		client:     lark.NewClient(appID, appSecret),
		calendarID: calendarID,
		timezone:   timezone,
	}
}

func (r *calendarRepo) CreateEvent(ctx context.Context, event domain.CalendarEvent) (string, error) {
	req := larkcalendar.NewCreateCalendarEventReqBuilder().
		CalendarId(r.calendarID).
		CalendarEvent(r.toLarkEvent(event)).
		Build()

	resp, err := r.client.Calendar.V4.CalendarEvent.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create calendar event failed: %w", err)
	}
	if !resp.Success() {
		return "", fmt.Errorf("create calendar event error: %s", resp.Msg)
	}
	return larkString(resp.Data.Event.EventId), nil
}

func (r *calendarRepo) UpdateEvent(ctx context.Context, eventID string, event domain.CalendarEvent) (string, error) {
	req := larkcalendar.NewPatchCalendarEventReqBuilder().
		CalendarId(r.calendarID).
		EventId(eventID).
		CalendarEvent(r.toLarkEvent(event)).
		Build()

	resp, err := r.client.Calendar.V4.CalendarEvent.Patch(ctx, req)
	if err != nil {
		return "", fmt.Errorf("update calendar event failed: %w", err)
	}
	if !resp.Success() {
		return "", fmt.Errorf("update calendar event error: %s", resp.Msg)
	}
	return larkString(resp.Data.Event.EventId), nil
}

func (r *calendarRepo) DeleteEvent(ctx context.Context, eventID string) error {
	req := larkcalendar.NewDeleteCalendarEventReqBuilder().
		CalendarId(r.calendarID).
		EventId(eventID).
		Build()

	resp, err := r.client.Calendar.V4.CalendarEvent.Delete(ctx, req)
	if err != nil {
		return fmt.Errorf("delete calendar event failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("delete calendar event error: %s", resp.Msg)
	}
	return nil
}

func (r *calendarRepo) toLarkEvent(event domain.CalendarEvent) *larkcalendar.CalendarEvent {
	return larkcalendar.NewCalendarEventBuilder().
		Summary(event.Summary).
		Description(event.Description).
		StartTime(r.timeInfo(event.StartTime)).
		EndTime(r.timeInfo(event.End())).
		Build()
}

func (r *calendarRepo) timeInfo(t time.Time) *larkcalendar.TimeInfo {
	return larkcalendar.NewTimeInfoBuilder().
		Timestamp(strconv.FormatInt(t.Unix(), 10)).
		Timezone(r.timezone).
		Build()
}

func larkString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
