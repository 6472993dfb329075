package workspace

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the sample data the workspace starts from.
type Seed struct {
	Welcome string                 `yaml:"welcome"`
	Tasks   []domain.Task          `yaml:"tasks"`
	Events  []domain.CalendarEvent `yaml:"events"`
}

// LoadSeed reads a seed file, or the built-in sample data when path is empty.
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading seed %s: %w", path, err)
		}
		data = b
	}
	return ParseSeed(data)
}

// ParseSeed decodes and validates seed YAML.
func ParseSeed(data []byte) (*Seed, error) {
	var s Seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate ensures ids are present and unique and enum fields are known.
func (s *Seed) Validate() error {
	taskIDs := make(map[domain.TaskID]struct{}, len(s.Tasks))
	for i, t := range s.Tasks {
		if t.ID == "" || t.Title == "" {
			return fmt.Errorf("seed task %d: id and title are required", i)
		}
		if _, dup := taskIDs[t.ID]; dup {
			return fmt.Errorf("seed task %s: duplicate id", t.ID)
		}
		taskIDs[t.ID] = struct{}{}
		if _, ok := domain.ParsePriority(string(t.Priority)); !ok {
			return fmt.Errorf("seed task %s: invalid priority %q", t.ID, t.Priority)
		}
	}

	eventIDs := make(map[domain.EventID]struct{}, len(s.Events))
	for i, e := range s.Events {
		if e.ID == "" || e.Title == "" {
			return fmt.Errorf("seed event %d: id and title are required", i)
		}
		if _, dup := eventIDs[e.ID]; dup {
			return fmt.Errorf("seed event %s: duplicate id", e.ID)
		}
		eventIDs[e.ID] = struct{}{}
		if _, ok := domain.ParseEventType(string(e.Type)); !ok {
			return fmt.Errorf("seed event %s: invalid type %q", e.ID, e.Type)
		}
	}
	return nil
}
