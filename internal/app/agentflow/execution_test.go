package agentflow

import (
	"strings"
	"testing"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

func TestParseExecutionFull(t *testing.T) {
	text := `{
		"reasoning": "two changes",
		"answer": "ok",
		"newTasks": [
			{"title": "Buy milk"},
			{"title": "File taxes", "priority": "HIGH", "category": "Finance", "dueDate": "2026-04-15"},
			{"priority": "low"}
		],
		"newEvents": [
			{"title": "Lunch", "startTime": "12:00", "endTime": "13:00", "type": "social", "location": "Cafe"},
			{"title": "Standup", "startTime": "09:00", "type": "meeting"}
		]
	}`

	exec := ParseExecution(text)

	if exec.Reasoning != "two changes" || exec.Answer != "ok" {
		t.Fatalf("reasoning/answer = %q/%q", exec.Reasoning, exec.Answer)
	}
	if len(exec.NewTasks) != 2 {
		t.Fatalf("expected untitled draft to be dropped, got %+v", exec.NewTasks)
	}
	if exec.NewTasks[0].Priority != "" || exec.NewTasks[0].Category != "" {
		t.Errorf("absent fields must stay empty for defaulting: %+v", exec.NewTasks[0])
	}
	second := exec.NewTasks[1]
	if second.Priority != domain.PriorityHigh || second.Category != "Finance" || second.DueDate == nil || *second.DueDate != "2026-04-15" {
		t.Errorf("unexpected second task: %+v", second)
	}

	if len(exec.NewEvents) != 2 {
		t.Fatalf("NewEvents = %+v", exec.NewEvents)
	}
	if e := exec.NewEvents[0]; e.Type != domain.EventSocial || e.EndTime != "13:00" || e.Location == nil {
		t.Errorf("unexpected first event: %+v", e)
	}
	if e := exec.NewEvents[1]; e.Type != "" {
		t.Errorf("unknown event type should be left for defaulting, got %q", e.Type)
	}
}

func TestParseExecutionTolerance(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"not json":      "Sure! I added it.",
		"array":         `[1,2,3]`,
		"wrong types":   `{"reasoning": 42, "answer": ["x"], "newTasks": "none", "newEvents": {"title": "x"}}`,
		"truncated":     `{"reasoning": "abc", "newTasks": [`,
		"null":          `null`,
		"items not obj": `{"newTasks": ["Buy milk", 3]}`,
	}
	for name, text := range cases {
		exec := ParseExecution(text)
		if exec.Reasoning != "" || exec.Answer != "" || len(exec.NewTasks) != 0 || len(exec.NewEvents) != 0 {
			t.Errorf("%s: expected empty execution, got %+v", name, exec)
		}
	}
}

func TestParseExecutionStripsCodeFence(t *testing.T) {
	text := "```json\n{\"answer\": \"fenced\"}\n```"
	if got := ParseExecution(text).Answer; got != "fenced" {
		t.Fatalf("Answer = %q", got)
	}
}

func TestExecutionSchemaShape(t *testing.T) {
	s := ExecutionSchema()
	for _, field := range []string{"reasoning", "answer", "newTasks", "newEvents"} {
		if s.Properties[field] == nil {
			t.Fatalf("schema missing %s", field)
		}
	}
	events := s.Properties["newEvents"].Items
	for _, field := range []string{"title", "startTime", "endTime", "type", "location"} {
		if events.Properties[field] == nil {
			t.Errorf("event draft schema missing %s", field)
		}
	}
}

func TestBuildPlannerPromptIncludesState(t *testing.T) {
	p := BuildPlannerPrompt("what's next?", domain.AppState{
		Tasks: []domain.Task{{ID: "1", Title: "Gym"}},
	})
	if !strings.Contains(p, "User Request: what's next?") {
		t.Errorf("missing request: %s", p)
	}
	if !strings.Contains(p, `"title":"Gym"`) || !strings.Contains(p, `"events":[]`) {
		t.Errorf("missing serialized state: %s", p)
	}
	if !strings.Contains(p, "Lead Planner") {
		t.Errorf("missing planner instructions")
	}
}

func TestRoleInstructions(t *testing.T) {
	for _, r := range []domain.AgentRole{domain.RolePlanner, domain.RoleManager, domain.RoleExecutor, domain.RoleReviewer} {
		if RoleInstructions(r) == "" {
			t.Errorf("no instructions for %s", r)
		}
	}
	if RoleInstructions("Janitor") != "" {
		t.Errorf("unknown role should have no instructions")
	}
}
