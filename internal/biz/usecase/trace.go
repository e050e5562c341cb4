package usecase

import (
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/wideevent"
)

// TraceKey is the wide-event entry under which the commitment pipeline
// accumulates its diagnostics.
const TraceKey = "commitmentManagement"

// CommitmentTrace is a partial view of one resolution cycle. Every step
// of the pipeline enriches the shared wide-event entry with another
// partial; merging lets the newest non-absent field win.
type CommitmentTrace struct {
	Participant           *string            `json:"participant,omitempty"`
	SenderName            *string            `json:"senderName,omitempty"`
	FromMe                *bool              `json:"fromMe,omitempty"`
	MessageContent        *string            `json:"messageContent,omitempty"`
	MessageSentAt         *time.Time         `json:"messageSentAt,omitempty"`
	ReceivedAt            *time.Time         `json:"receivedAt,omitempty"`
	HistorySnapshotSize   *int               `json:"historySnapshotSize,omitempty"`
	OpenCommitmentsSize   *int               `json:"openCommitmentsSize,omitempty"`
	Prompt                *string            `json:"prompt,omitempty"`
	ActionType            *domain.ActionType `json:"actionType,omitempty"`
	CommitmentID          *int64             `json:"commitmentId,omitempty"`
	CommitmentDescription *string            `json:"commitmentDescription,omitempty"`
	CommittedAt           *time.Time         `json:"committedAt,omitempty"`
	ToBeCompletedAt       *time.Time         `json:"toBeCompletedAt,omitempty"`
	CalendarEventID       *string            `json:"calendarEventId,omitempty"`
	Success               *bool              `json:"success,omitempty"`
	FailureReason         *string            `json:"failureReason,omitempty"`
	ValidationErrors      *string            `json:"validationErrors,omitempty"`
}

// Merge combines two partial traces: fields set on other override the
// accumulated ones, absent fields fall back.
func (t CommitmentTrace) Merge(other wideevent.Mergeable) wideevent.Mergeable {
	o, ok := other.(CommitmentTrace)
	if !ok {
		return other
	}
	if o.Participant == nil {
		o.Participant = t.Participant
	}
	if o.SenderName == nil {
		o.SenderName = t.SenderName
	}
	if o.FromMe == nil {
		o.FromMe = t.FromMe
	}
	if o.MessageContent == nil {
		o.MessageContent = t.MessageContent
	}
	if o.MessageSentAt == nil {
		o.MessageSentAt = t.MessageSentAt
	}
	if o.ReceivedAt == nil {
		o.ReceivedAt = t.ReceivedAt
	}
	if o.HistorySnapshotSize == nil {
		o.HistorySnapshotSize = t.HistorySnapshotSize
	}
	if o.OpenCommitmentsSize == nil {
		o.OpenCommitmentsSize = t.OpenCommitmentsSize
	}
	if o.Prompt == nil {
		o.Prompt = t.Prompt
	}
	if o.ActionType == nil {
		o.ActionType = t.ActionType
	}
	if o.CommitmentID == nil {
		o.CommitmentID = t.CommitmentID
	}
	if o.CommitmentDescription == nil {
		o.CommitmentDescription = t.CommitmentDescription
	}
	if o.CommittedAt == nil {
		o.CommittedAt = t.CommittedAt
	}
	if o.ToBeCompletedAt == nil {
		o.ToBeCompletedAt = t.ToBeCompletedAt
	}
	if o.CalendarEventID == nil {
		o.CalendarEventID = t.CalendarEventID
	}
	if o.Success == nil {
		o.Success = t.Success
	}
	if o.FailureReason == nil {
		o.FailureReason = t.FailureReason
	}
	if o.ValidationErrors == nil {
		o.ValidationErrors = t.ValidationErrors
	}
	return o
}

func ptr[T any](v T) *T {
	return &v
}
