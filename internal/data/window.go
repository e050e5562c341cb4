package data

import (
	"sync"

	"github.com/prithvianilk/my-besto-friendo/internal/biz/domain"
	"github.com/prithvianilk/my-besto-friendo/internal/biz/repo"
)

// windowStore keeps a bounded FIFO of recent messages per participant.
// Each participant's window carries its own lock so mutations to one
// window are serialized without blocking other participants.
type windowStore struct {
	mu      sync.RWMutex
	maxSize int
	windows map[string]*window
}

type window struct {
	mu       sync.Mutex
	messages []domain.WhatsAppMessage
}

// NewWindowStore creates the in-memory message window store.
// A maxSize of zero or less keeps every window empty.
func NewWindowStore(maxSize int) repo.WindowRepo {
	return &windowStore{
		maxSize: maxSize,
		windows: make(map[string]*window),
	}
}

func (s *windowStore) Add(msg domain.WhatsAppMessage) {
	w := s.windowFor(msg.ParticipantID)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.messages = append(w.messages, msg)
	if excess := len(w.messages) - s.maxSize; excess > 0 {
		if s.maxSize <= 0 {
			excess = len(w.messages)
		}
		w.messages = append(w.messages[:0:0], w.messages[excess:]...)
	}
}

func (s *windowStore) GetMessages(participantID string) []domain.WhatsAppMessage {
	s.mu.RLock()
	w, ok := s.windows[participantID]
	s.mu.RUnlock()
	if !ok {
		return []domain.WhatsAppMessage{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	snapshot := make([]domain.WhatsAppMessage, len(w.messages))
	copy(snapshot, w.messages)
	return snapshot
}

func (s *windowStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = make(map[string]*window)
}

func (s *windowStore) windowFor(participantID string) *window {
	s.mu.RLock()
	w, ok := s.windows[participantID]
	s.mu.RUnlock()
	if ok {
		return w
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok = s.windows[participantID]; ok {
		return w
	}
	w = &window{}
	s.windows[participantID] = w
	return w
}
