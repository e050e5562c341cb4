package domain

import (
	"strings"
	"time"
)

// ActionType is the model's decision for the latest message.
type ActionType string

const (
	ActionCreate ActionType = "CREATE"
	ActionChange ActionType = "CHANGE"
	ActionCancel ActionType = "CANCEL"
)

// Valid reports whether the action type is one of the three known types.
func (t ActionType) Valid() bool {
	switch t {
	case ActionCreate, ActionChange, ActionCancel:
		return true
	}
	return false
}

// Commitment is a detected promise to do something, optionally by a stated time.
// A zero ToBeCompletedAt means no due time was extracted.
type Commitment struct {
	CommittedAt     time.Time
	Description     string
	ToBeCompletedAt time.Time
}

// CommitmentAction is the structured result of one completion call.
// ID references an existing record and is required for CHANGE and CANCEL;
// it must be nil for CREATE.
type CommitmentAction struct {
	Type       ActionType
	Commitment Commitment
	ID         *int64
}

// Validate returns the list of structural violations, empty when the
// action is well-formed enough to route.
func (a *CommitmentAction) Validate() []string {
	var violations []string
	if !a.Type.Valid() {
		violations = append(violations, "type: must be CREATE, CHANGE or CANCEL")
	}
	if a.Commitment.CommittedAt.IsZero() {
		violations = append(violations, "commitment.committedAt: must not be null")
	}
	if strings.TrimSpace(a.Commitment.Description) == "" {
		violations = append(violations, "commitment.description: must not be blank")
	}
	return violations
}

// CommitmentRecord is the durable form of a commitment.
// The tuple (CommittedAt, Participant, Description) is unique at the store level.
type CommitmentRecord struct {
	ID              int64
	CommittedAt     time.Time
	Description     string
	Participant     string
	ToBeCompletedAt time.Time
	CalendarEventID string
	CreatedAt       time.Time
}
