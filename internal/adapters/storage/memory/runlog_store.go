package memory

import (
	"sync"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

// RunLogStore holds the agent log trail of the latest workflow run.
type RunLogStore struct {
	mu   sync.RWMutex
	logs []domain.AgentLog
}

func NewRunLogStore() *RunLogStore {
	return &RunLogStore{}
}

func (s *RunLogStore) ResetRunLog() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = nil
	return nil
}

func (s *RunLogStore) AppendRunLog(log domain.AgentLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, log)
	return nil
}

func (s *RunLogStore) ListRunLog() ([]domain.AgentLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.AgentLog(nil), s.logs...), nil
}
