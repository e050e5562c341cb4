package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

const messageTimeFormat = "2006-01-02 15:04:05"

// DefaultPromptTemplate is the commitment extraction instruction. It takes
// two arguments: the open-commitments snapshot and the message snapshot,
// in that order.
const DefaultPromptTemplate = `Analyze the following conversation to identify commitments made by the user and determine the appropriate action.

A commitment is a statement where the user explicitly or implicitly promises to:
- Perform a specific action in the future
- Deliver something by a certain time
- Meet someone or attend an event
- Complete a task or responsibility

Examples of commitments:
- "I'll send you the report tomorrow"
- "I can help you with that"
- "Let me get back to you on this"
- "I'll be there at 5pm"

It could also be a reply to an ask for a commitment.
For example:
- "[person 1] Hey, lets meet for sushi tmmrw?"
- "[person 2] Yup, I'm in.

- "[person 1] Can you send the slides?"
- "[person 2] Will send them in an hour.

- "[person 1] Are you coming to the party?"
- "[person 2] Yes, I'll be there.

Here, the second message in each exchange is a commitment.
IMPORTANT: Whenever the message is replied to in a commiting and positive fashion, assume it's a commitment.
Even informal responses like yes, yep, ya, etc are commitments.

Review the conversation and determine the action type for the latest message:

Action Types:
1. CREATE: A new commitment is being made that doesn't modify or cancel an existing one.
   - IMPORTANT: Before using CREATE, check the "Existing Future Commitments" list below.
   - If you find a matching commitment in that list (same participant, similar description, or similar message content), DO NOT use CREATE.
   - Instead, use CHANGE if the commitment is being modified, or CANCEL if it's being withdrawn.
   - Only use CREATE if the commitment is truly new and not found in the existing commitments list.
2. CHANGE: An existing commitment is being modified (e.g., changing the time, date, or details).
   - Examples: "Actually, let's meet at 6pm instead of 5pm", "Can we push that to next week?"
   - You MUST match this with an existing commitment from the "Existing Future Commitments" list below.
3. CANCEL: An existing commitment is being cancelled or withdrawn.
   - Examples: "I can't make it", "Let's cancel that", "Never mind, I won't be able to do that"
   - You MUST match this with an existing commitment from the "Existing Future Commitments" list below.

Existing Future Commitments:
The following are existing commitments that are scheduled to be completed in the future.
- Use these to identify which commitment is being changed or cancelled (for CHANGE/CANCEL actions).
- Check this list BEFORE using CREATE to ensure you're not creating a duplicate commitment.
- If a commitment in the conversation matches one in this list, use CHANGE or CANCEL instead of CREATE.
%s

If a commitment action is found, extract:
- type: One of CREATE, CHANGE, or CANCEL
- commitment:
  - committedAt: The timestamp when the commitment was made. Expected format: 2025-11-03T17:00:00Z
  - description: A brief description of the commitment. Make this an explicit mention of the commitment task to be done.
  - toBeCompletedAt:
    - The timestamp when the user committed to complete the task (e.g., if they say "I'll meet you for dinner at 5pm tomorrow", this would be tomorrow at 5pm with the appropriate date). Expected format: 2025-11-03T17:00:00Z
    - If a date is not mentioned, but a category of day is mentioned (morning, evening, etc), take morning as 9AM, afternoon as 1PM, evening as 4PM, night as 7PM.
    - If a date is not mentioned and a category is also not mentioned, take the time as 12PM.
- id: (REQUIRED for CHANGE and CANCEL actions, null for CREATE)
  - For CHANGE or CANCEL actions, you MUST identify which existing commitment is being modified or cancelled.
  - Match the commitment from the conversation with one of the existing future commitments listed above.
  - Use the ID from the matching commitment in the "Existing Future Commitments" list.
  - If the action is CREATE, set id to null.
  - If the action is CHANGE or CANCEL but you cannot find a matching commitment, still set the id to null (but this will cause an error, so try your best to match it).

If no commitment action is found, return null for both type and commitment.

Conversation:
%s
`

// PromptConfig carries prompt rendering configuration.
type PromptConfig struct {
	// Template must contain two %s verbs: open commitments first,
	// conversation second.
	Template string

	// Location is the zone used to render message timestamps.
	Location *time.Location
}

// DefaultPromptConfig returns the built-in prompt configuration.
func DefaultPromptConfig() PromptConfig {
	return PromptConfig{
		Template: DefaultPromptTemplate,
		Location: time.Local,
	}
}

// PromptBuilder renders message history and open commitments into the
// instruction given to the completion capability. All methods are pure:
// identical inputs produce byte-identical output.
type PromptBuilder struct {
	config PromptConfig
}

// NewPromptBuilder creates a builder, falling back to defaults for
// unset config fields.
func NewPromptBuilder(config PromptConfig) *PromptBuilder {
	if config.Template == "" {
		config.Template = DefaultPromptTemplate
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	return &PromptBuilder{config: config}
}

// BuildSnapshot renders each message as "[localTime] sender: content",
// newline-joined, in window order.
func (b *PromptBuilder) BuildSnapshot(messages []domain.WhatsAppMessage) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		formatted := msg.SentAt.In(b.config.Location).Format(messageTimeFormat)
		lines[i] = fmt.Sprintf("[%s] %s: %s", formatted, msg.SenderName, msg.Content)
	}
	return strings.Join(lines, "\n")
}

// BuildOpenCommitmentsSnapshot renders each open record as
// "ID:<id>|Participant:<p>|Description:<d>|ToBeCompletedAt:<t>",
// joined by " || ".
func (b *PromptBuilder) BuildOpenCommitmentsSnapshot(records []*domain.CommitmentRecord) string {
	parts := make([]string, len(records))
	for i, rec := range records {
		parts[i] = fmt.Sprintf("ID:%d|Participant:%s|Description:%s|ToBeCompletedAt:%s",
			rec.ID,
			rec.Participant,
			rec.Description,
			rec.ToBeCompletedAt.UTC().Format(time.RFC3339))
	}
	return strings.Join(parts, " || ")
}

// BuildPrompt embeds both snapshots into the instruction template.
func (b *PromptBuilder) BuildPrompt(messageSnapshot, openCommitmentsSnapshot string) string {
	return fmt.Sprintf(b.config.Template, openCommitmentsSnapshot, messageSnapshot)
}
