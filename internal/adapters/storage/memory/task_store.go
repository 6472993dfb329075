package memory

import (
	"errors"
	"sync"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

var ErrDuplicateID = errors.New("id already exists")

// TaskStore is an in-memory, ordered task list. Tasks are never removed.
type TaskStore struct {
	mu    sync.RWMutex
	tasks []domain.Task
	ids   map[domain.TaskID]struct{}
}

func NewTaskStore(seed ...domain.Task) *TaskStore {
	s := &TaskStore{ids: make(map[domain.TaskID]struct{})}
	for _, t := range seed {
		_ = s.AppendTask(t)
	}
	return s
}

// PrependTask puts the task at the top of the list (newest-first).
func (s *TaskStore) PrependTask(task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[task.ID]; exists {
		return ErrDuplicateID
	}
	s.ids[task.ID] = struct{}{}
	s.tasks = append([]domain.Task{task}, s.tasks...)
	return nil
}

func (s *TaskStore) AppendTask(task domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[task.ID]; exists {
		return ErrDuplicateID
	}
	s.ids[task.ID] = struct{}{}
	s.tasks = append(s.tasks, task)
	return nil
}

// ToggleTask flips Completed on the matching task. found is false when no
// task has that id; that is not an error.
func (s *TaskStore) ToggleTask(id domain.TaskID) (domain.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			return s.tasks[i], true, nil
		}
	}
	return domain.Task{}, false, nil
}

func (s *TaskStore) ListTasks() ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.Task(nil), s.tasks...), nil
}
