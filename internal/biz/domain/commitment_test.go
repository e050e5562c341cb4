package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActionTypeValid(t *testing.T) {
	assert.True(t, ActionCreate.Valid())
	assert.True(t, ActionChange.Valid())
	assert.True(t, ActionCancel.Valid())
	assert.False(t, ActionType("UPSERT").Valid())
	assert.False(t, ActionType("create").Valid())
	assert.False(t, ActionType("").Valid())
}

func TestCommitmentActionValidate(t *testing.T) {
	valid := CommitmentAction{
		Type: ActionCreate,
		Commitment: Commitment{
			CommittedAt: time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC),
			Description: "Send the slides",
		},
	}
	assert.Empty(t, valid.Validate())

	var empty CommitmentAction
	violations := empty.Validate()
	assert.Len(t, violations, 3)
	assert.Contains(t, violations, "type: must be CREATE, CHANGE or CANCEL")
	assert.Contains(t, violations, "commitment.committedAt: must not be null")
	assert.Contains(t, violations, "commitment.description: must not be blank")

	blankDescription := valid
	blankDescription.Commitment.Description = "   "
	assert.Equal(t, []string{"commitment.description: must not be blank"}, blankDescription.Validate())
}

func TestCalendarEventEndDefaultsToHalfHour(t *testing.T) {
	start := time.Date(2025, 11, 4, 13, 0, 0, 0, time.UTC)

	event := CalendarEvent{StartTime: start}
	assert.Equal(t, start.Add(30*time.Minute), event.End())

	explicit := CalendarEvent{StartTime: start, EndTime: start.Add(time.Hour)}
	assert.Equal(t, start.Add(time.Hour), explicit.End())
}
