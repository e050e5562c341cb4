package repo

import (
	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
)

// WindowRepo is the per-participant bounded message history store.
// Strict FIFO within one participant, no ordering across participants.
type WindowRepo interface {
	// Add appends to the participant's window, creating it if absent,
	// then evicts from the head while the window exceeds its capacity.
	Add(msg domain.WhatsAppMessage)

	// GetMessages returns a snapshot copy of the participant's window,
	// oldest first. Unknown participants yield an empty, non-nil slice.
	GetMessages(participantID string) []domain.WhatsAppMessage

	// Clear resets all windows.
	Clear()
}
