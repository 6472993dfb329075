package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PabloGalante/omni-agent/internal/config"
	"github.com/PabloGalante/omni-agent/internal/domain"
	"google.golang.org/genai"
)

func TestMockLLMReturnsStructuredOutputWhenSchemaRequested(t *testing.T) {
	m := NewMockLLM()
	prompt := "Strategy: plan\nUser Query: remind me to buy milk\n\nTask: execute"

	out, err := m.Generate(context.Background(), prompt, domain.GenerateOptions{
		ResponseSchema: &domain.Schema{Type: domain.SchemaObject},
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var parsed struct {
		Answer   string `json:"answer"`
		NewTasks []struct {
			Title string `json:"title"`
		} `json:"newTasks"`
	}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("mock output is not JSON: %v (%s)", err, out)
	}
	if len(parsed.NewTasks) != 1 || parsed.NewTasks[0].Title != "remind me to buy milk" {
		t.Fatalf("unexpected tasks: %+v", parsed.NewTasks)
	}
	if parsed.Answer == "" {
		t.Fatalf("expected non-empty answer")
	}
}

func TestMockLLMPlannerAndReviewer(t *testing.T) {
	m := NewMockLLM()
	ctx := context.Background()

	plan, err := m.Generate(ctx, "User Request: plan my day\n\nTask: plan", domain.GenerateOptions{})
	if err != nil || !strings.Contains(plan, "plan my day") {
		t.Fatalf("planner reply = %q, err = %v", plan, err)
	}

	review, err := m.Generate(ctx, "Raw Execution Result: done\n\nTask: review", domain.GenerateOptions{})
	if err != nil || !strings.Contains(review, "done") {
		t.Fatalf("reviewer reply = %q, err = %v", review, err)
	}
}

func TestMockLLMHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewMockLLM().Generate(ctx, "User Request: x", domain.GenerateOptions{}); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestUnavailableAlwaysFails(t *testing.T) {
	_, err := NewUnavailable("no key").Generate(context.Background(), "hi", domain.GenerateOptions{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestNewSelectsClientByProvider(t *testing.T) {
	ctx := context.Background()

	c, err := New(ctx, config.LLMConfig{Provider: config.ProviderMock})
	if err != nil {
		t.Fatalf("New(mock): %v", err)
	}
	if _, ok := c.(*MockLLM); !ok {
		t.Fatalf("expected *MockLLM, got %T", c)
	}

	c, err = New(ctx, config.LLMConfig{Provider: config.ProviderGemini})
	if err != nil {
		t.Fatalf("New(gemini without key): %v", err)
	}
	if _, ok := c.(*Unavailable); !ok {
		t.Fatalf("expected *Unavailable without API key, got %T", c)
	}
}

func TestGenerateConfigStructuredOutput(t *testing.T) {
	schema := &domain.Schema{
		Type: domain.SchemaObject,
		Properties: map[string]*domain.Schema{
			"answer": {Type: domain.SchemaString},
			"newTasks": {
				Type: domain.SchemaArray,
				Items: &domain.Schema{
					Type:       domain.SchemaObject,
					Properties: map[string]*domain.Schema{"title": {Type: domain.SchemaString}},
					Required:   []string{"title"},
				},
			},
		},
	}

	cfg := generateConfig(domain.GenerateOptions{ResponseSchema: schema, ThinkingBudget: 5000})

	if cfg.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q", cfg.ResponseMIMEType)
	}
	if cfg.ThinkingConfig == nil || cfg.ThinkingConfig.ThinkingBudget == nil || *cfg.ThinkingConfig.ThinkingBudget != 5000 {
		t.Errorf("thinking budget not propagated: %+v", cfg.ThinkingConfig)
	}
	rs := cfg.ResponseSchema
	if rs == nil || rs.Type != genai.TypeObject {
		t.Fatalf("unexpected root schema: %+v", rs)
	}
	tasks := rs.Properties["newTasks"]
	if tasks == nil || tasks.Type != genai.TypeArray || tasks.Items == nil || tasks.Items.Type != genai.TypeObject {
		t.Fatalf("unexpected newTasks schema: %+v", tasks)
	}
	if got := tasks.Items.Required; len(got) != 1 || got[0] != "title" {
		t.Errorf("Required = %v", got)
	}
	if rs.Properties["answer"].Type != genai.TypeString {
		t.Errorf("answer should be a string schema")
	}
}

func TestGenerateConfigPlainText(t *testing.T) {
	cfg := generateConfig(domain.GenerateOptions{})
	if cfg.ResponseSchema != nil || cfg.ResponseMIMEType != "" || cfg.ThinkingConfig != nil {
		t.Fatalf("plain request should not set structured output or thinking: %+v", cfg)
	}
}
