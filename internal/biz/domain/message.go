package domain

import "time"

// WhatsAppMessage represents one inbound chat message.
// Produced by the ingestion boundary, consumed read-only by the core.
type WhatsAppMessage struct {
	ParticipantID string
	SenderName    string
	FromMe        bool
	Content       string
	SentAt        time.Time
}
