package memory

import (
	"sync"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

// EventStore is an in-memory calendar. Events are immutable once stored.
type EventStore struct {
	mu     sync.RWMutex
	events []domain.CalendarEvent
	ids    map[domain.EventID]struct{}
}

func NewEventStore(seed ...domain.CalendarEvent) *EventStore {
	s := &EventStore{ids: make(map[domain.EventID]struct{})}
	for _, e := range seed {
		_ = s.AppendEvent(e)
	}
	return s
}

func (s *EventStore) AppendEvent(event domain.CalendarEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[event.ID]; exists {
		return ErrDuplicateID
	}
	s.ids[event.ID] = struct{}{}
	s.events = append(s.events, event)
	return nil
}

func (s *EventStore) ListEvents() ([]domain.CalendarEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.CalendarEvent(nil), s.events...), nil
}
