package memory

import (
	"sync"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

type MessageStore struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
}

func NewMessageStore() *MessageStore {
	return &MessageStore{}
}

func (s *MessageStore) AppendMessage(msg domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	return nil
}

// ListMessages returns the last `limit` messages in creation order.
// If limit <= 0, returns all.
func (s *MessageStore) ListMessages(limit int) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msgs := s.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]domain.ChatMessage(nil), msgs...), nil
}
