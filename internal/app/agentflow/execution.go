package agentflow

import (
	"encoding/json"
	"strings"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

// Execution is the structured output of the executor stage.
type Execution struct {
	Reasoning string
	Answer    string
	NewTasks  []domain.TaskDraft
	NewEvents []domain.EventDraft
}

// ExecutionSchema is the structured-output contract sent with the executor
// call:
//
//	{
//	  "reasoning": "...",
//	  "answer": "...",
//	  "newTasks":  [{"title", "priority", "category", "dueDate"}],
//	  "newEvents": [{"title", "startTime", "endTime", "type", "location"}]
//	}
func ExecutionSchema() *domain.Schema {
	str := func() *domain.Schema { return &domain.Schema{Type: domain.SchemaString} }

	return &domain.Schema{
		Type: domain.SchemaObject,
		Properties: map[string]*domain.Schema{
			"reasoning": str(),
			"answer":    str(),
			"newTasks": {
				Type: domain.SchemaArray,
				Items: &domain.Schema{
					Type: domain.SchemaObject,
					Properties: map[string]*domain.Schema{
						"title":    str(),
						"priority": str(),
						"category": str(),
						"dueDate":  str(),
					},
					Required: []string{"title"},
				},
			},
			"newEvents": {
				Type: domain.SchemaArray,
				Items: &domain.Schema{
					Type: domain.SchemaObject,
					Properties: map[string]*domain.Schema{
						"title":     str(),
						"startTime": str(),
						"endTime":   str(),
						"type":      str(),
						"location":  str(),
					},
					Required: []string{"title", "startTime"},
				},
			},
		},
	}
}

// ParseExecution never fails: text that is not a JSON object, missing
// fields and fields of the wrong type all read as empty. Drafts without a
// title are dropped.
func ParseExecution(text string) Execution {
	var raw map[string]any
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &raw); err != nil {
		return Execution{}
	}

	return Execution{
		Reasoning: getString(raw, "reasoning"),
		Answer:    getString(raw, "answer"),
		NewTasks:  parseTaskDrafts(raw["newTasks"]),
		NewEvents: parseEventDrafts(raw["newEvents"]),
	}
}

// --- internal helpers --- //

// stripCodeFence removes a ```json ... ``` wrapper some models add even in
// JSON mode.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func getOptionalString(m map[string]any, key string) *string {
	if s := getString(m, key); s != "" {
		return &s
	}
	return nil
}

func objects(raw any) []map[string]any {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

func parseTaskDrafts(raw any) []domain.TaskDraft {
	var drafts []domain.TaskDraft
	for _, obj := range objects(raw) {
		title := getString(obj, "title")
		if title == "" {
			continue
		}
		priority, _ := domain.ParsePriority(getString(obj, "priority"))
		drafts = append(drafts, domain.TaskDraft{
			Title:    title,
			Priority: priority,
			Category: getString(obj, "category"),
			DueDate:  getOptionalString(obj, "dueDate"),
		})
	}
	return drafts
}

func parseEventDrafts(raw any) []domain.EventDraft {
	var drafts []domain.EventDraft
	for _, obj := range objects(raw) {
		title := getString(obj, "title")
		if title == "" {
			continue
		}
		typ, _ := domain.ParseEventType(getString(obj, "type"))
		drafts = append(drafts, domain.EventDraft{
			Title:     title,
			StartTime: getString(obj, "startTime"),
			EndTime:   getString(obj, "endTime"),
			Type:      typ,
			Location:  getOptionalString(obj, "location"),
		})
	}
	return drafts
}
