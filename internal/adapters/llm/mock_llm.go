package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

// MockLLM answers without any network call. It recognises the three stage
// prompts by their markers and returns plausible output for each, including
// valid structured output when a schema is requested.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch {
	case opts.ResponseSchema != nil:
		return mockExecution(lineAfter(prompt, "User Query:"))
	case strings.Contains(prompt, "Raw Execution Result:"):
		return "Here is what I did: " + lineAfter(prompt, "Raw Execution Result:"), nil
	default:
		req := lineAfter(prompt, "User Request:")
		return fmt.Sprintf("Strategy for %q: 1) read current tasks and events 2) apply the change 3) summarise for the user.", req), nil
	}
}

func mockExecution(query string) (string, error) {
	lower := strings.ToLower(query)

	out := map[string]any{
		"reasoning": "Matched the request against the task and calendar keywords.",
		"answer":    fmt.Sprintf("Handled %q.", query),
		"newTasks":  []map[string]any{},
		"newEvents": []map[string]any{},
	}

	if strings.Contains(lower, "task") || strings.Contains(lower, "remind") || strings.Contains(lower, "todo") {
		out["newTasks"] = []map[string]any{{"title": query}}
	}
	if strings.Contains(lower, "meeting") || strings.Contains(lower, "schedule") {
		out["newEvents"] = []map[string]any{{"title": query, "startTime": "10:00"}}
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// lineAfter returns the trimmed rest of the line following marker.
func lineAfter(s, marker string) string {
	i := strings.Index(s, marker)
	if i < 0 {
		return ""
	}
	rest := s[i+len(marker):]
	if j := strings.IndexByte(rest, '\n'); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
