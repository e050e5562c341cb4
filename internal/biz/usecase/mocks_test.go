package usecase

import (
	"context"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

type fakeWindowRepo struct {
	messages map[string][]domain.WhatsAppMessage
}

func newFakeWindowRepo() *fakeWindowRepo {
	return &fakeWindowRepo{messages: make(map[string][]domain.WhatsAppMessage)}
}

func (f *fakeWindowRepo) Add(msg domain.WhatsAppMessage) {
	f.messages[msg.ParticipantID] = append(f.messages[msg.ParticipantID], msg)
}

func (f *fakeWindowRepo) GetMessages(participantID string) []domain.WhatsAppMessage {
	msgs := f.messages[participantID]
	if msgs == nil {
		return []domain.WhatsAppMessage{}
	}
	return msgs
}

func (f *fakeWindowRepo) Clear() {
	f.messages = make(map[string][]domain.WhatsAppMessage)
}

type fakeCommitmentRepo struct {
	records map[int64]*domain.CommitmentRecord
	nextID  int64

	insertErr   error
	getErr      error
	findOpenErr error

	inserted []*domain.CommitmentRecord
	updated  []*domain.CommitmentRecord
	deleted  []int64
}

func newFakeCommitmentRepo() *fakeCommitmentRepo {
	return &fakeCommitmentRepo{records: make(map[int64]*domain.CommitmentRecord), nextID: 1}
}

func (f *fakeCommitmentRepo) Insert(ctx context.Context, rec *domain.CommitmentRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	rec.ID = f.nextID
	f.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	clone := *rec
	f.records[rec.ID] = &clone
	f.inserted = append(f.inserted, &clone)
	return nil
}

func (f *fakeCommitmentRepo) GetByID(ctx context.Context, id int64) (*domain.CommitmentRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	clone := *rec
	return &clone, nil
}

func (f *fakeCommitmentRepo) Update(ctx context.Context, rec *domain.CommitmentRecord) error {
	clone := *rec
	f.records[rec.ID] = &clone
	f.updated = append(f.updated, &clone)
	return nil
}

func (f *fakeCommitmentRepo) Delete(ctx context.Context, id int64) error {
	delete(f.records, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeCommitmentRepo) FindOpenForParticipant(ctx context.Context, participant string, now time.Time) ([]*domain.CommitmentRecord, error) {
	if f.findOpenErr != nil {
		return nil, f.findOpenErr
	}
	var out []*domain.CommitmentRecord
	for _, rec := range f.records {
		if rec.Participant == participant && rec.ToBeCompletedAt.After(now) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCommitmentRepo) FindDueAfter(ctx context.Context, t time.Time) ([]*domain.CommitmentRecord, error) {
	var out []*domain.CommitmentRecord
	for _, rec := range f.records {
		if rec.ToBeCompletedAt.After(t) {
			clone := *rec
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeCommitmentRepo) Close() error { return nil }

type fakeCalendarRepo struct {
	createErr error
	updateErr error
	deleteErr error

	createdEvents []domain.CalendarEvent
	updatedEvents []string
	deletedEvents []string
	nextEventID   string
}

func newFakeCalendarRepo() *fakeCalendarRepo {
	return &fakeCalendarRepo{nextEventID: "evt-1"}
}

func (f *fakeCalendarRepo) CreateEvent(ctx context.Context, event domain.CalendarEvent) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.createdEvents = append(f.createdEvents, event)
	return f.nextEventID, nil
}

func (f *fakeCalendarRepo) UpdateEvent(ctx context.Context, eventID string, event domain.CalendarEvent) (string, error) {
	if f.updateErr != nil {
		return "", f.updateErr
	}
	f.updatedEvents = append(f.updatedEvents, eventID)
	return eventID, nil
}

func (f *fakeCalendarRepo) DeleteEvent(ctx context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedEvents = append(f.deletedEvents, eventID)
	return nil
}

type fakeCompletionRepo struct {
	action  *domain.CommitmentAction
	err     error
	prompts []string
}

func (f *fakeCompletionRepo) Complete(ctx context.Context, prompt string) (*domain.CommitmentAction, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return f.action, nil
}
