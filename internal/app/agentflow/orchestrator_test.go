package agentflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PabloGalante/omni-agent/internal/adapters/llm"
	"github.com/PabloGalante/omni-agent/internal/app/agentflow"
	"github.com/PabloGalante/omni-agent/internal/domain"
)

// scriptedLLM answers call i with replies[i], or fails on call failAt.
type scriptedLLM struct {
	replies []string
	failAt  int // 1-based; 0 = never
	prompts []string
	opts    []domain.GenerateOptions
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.opts = append(s.opts, opts)
	n := len(s.prompts)
	if n == s.failAt {
		return "", errors.New("service unavailable")
	}
	if n <= len(s.replies) {
		return s.replies[n-1], nil
	}
	return "", nil
}

func snapshot() domain.AppState {
	return domain.AppState{
		Tasks:  []domain.Task{{ID: "1", Title: "Prepare weekly grocery list", Priority: domain.PriorityMedium, Category: "Personal"}},
		Events: []domain.CalendarEvent{{ID: "e1", Title: "Morning Sync", StartTime: "09:00", EndTime: "09:30", Type: domain.EventWork}},
	}
}

func roles(logs []domain.AgentLog) []domain.AgentRole {
	out := make([]domain.AgentRole, 0, len(logs))
	for _, l := range logs {
		out = append(out, l.Role)
	}
	return out
}

func equalRoles(a, b []domain.AgentRole) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunWorkflowSuccess(t *testing.T) {
	fake := &scriptedLLM{replies: []string{
		"Plan: add a task",
		`{"reasoning":"user wants a task","answer":"Added milk","newTasks":[{"title":"Buy milk","priority":"high"}],"newEvents":[{"title":"Dentist","startTime":"15:00","type":"health","location":"Main St"}]}`,
		"Done! I added 'Buy milk'.",
	}}
	orch := agentflow.NewDefaultOrchestrator(fake, agentflow.Options{Model: "test-model", ThinkingBudget: 5000})

	var progress []domain.AgentLog
	res := orch.RunWorkflow(context.Background(), "remind me to buy milk", snapshot(), func(l domain.AgentLog) {
		progress = append(progress, l)
	})

	if res.Failed() || res.Err != nil {
		t.Fatalf("unexpected failure: %v", res.Err)
	}
	if res.Response != "Done! I added 'Buy milk'." {
		t.Fatalf("Response = %q", res.Response)
	}

	wantRoles := []domain.AgentRole{
		domain.RolePlanner, domain.RolePlanner,
		domain.RoleManager, domain.RoleExecutor,
		domain.RoleReviewer, domain.RoleReviewer,
	}
	if got := roles(res.Logs); !equalRoles(got, wantRoles) {
		t.Fatalf("log roles = %v, want %v", got, wantRoles)
	}
	if res.Logs[1].Content != "Plan: add a task" || res.Logs[3].Content != "user wants a task" {
		t.Fatalf("unexpected log contents: %+v", res.Logs)
	}

	if len(progress) != len(res.Logs) {
		t.Fatalf("progress callback saw %d entries, result has %d", len(progress), len(res.Logs))
	}
	for i := range progress {
		if progress[i].ID != res.Logs[i].ID {
			t.Fatalf("progress entry %d out of order", i)
		}
	}

	if len(res.ProposedTasks) != 1 || res.ProposedTasks[0].Title != "Buy milk" || res.ProposedTasks[0].Priority != domain.PriorityHigh {
		t.Fatalf("ProposedTasks = %+v", res.ProposedTasks)
	}
	ev := res.ProposedEvents
	if len(ev) != 1 || ev[0].Type != domain.EventHealth || ev[0].Location == nil || *ev[0].Location != "Main St" {
		t.Fatalf("ProposedEvents = %+v", ev)
	}

	// stage wiring: state in the plan prompt, plan in the executor prompt,
	// answer in the reviewer prompt
	if !strings.Contains(fake.prompts[0], "Prepare weekly grocery list") || !strings.Contains(fake.prompts[0], "remind me to buy milk") {
		t.Errorf("planner prompt misses request or state: %s", fake.prompts[0])
	}
	if !strings.Contains(fake.prompts[1], "Strategy: Plan: add a task") {
		t.Errorf("executor prompt misses plan: %s", fake.prompts[1])
	}
	if !strings.Contains(fake.prompts[2], "Raw Execution Result: Added milk") {
		t.Errorf("reviewer prompt misses answer: %s", fake.prompts[2])
	}

	if fake.opts[0].ThinkingBudget != 5000 || fake.opts[0].ResponseSchema != nil {
		t.Errorf("planner options = %+v", fake.opts[0])
	}
	if fake.opts[1].ResponseSchema == nil {
		t.Errorf("executor call must request structured output")
	}
	if fake.opts[2].ResponseSchema != nil || fake.opts[2].ThinkingBudget != 0 {
		t.Errorf("reviewer options = %+v", fake.opts[2])
	}
	for i, o := range fake.opts {
		if o.Model != "test-model" {
			t.Errorf("call %d used model %q", i, o.Model)
		}
	}
}

func TestRunWorkflowFallbacksOnEmptyReplies(t *testing.T) {
	fake := &scriptedLLM{}
	res := agentflow.NewDefaultOrchestrator(fake, agentflow.Options{}).
		RunWorkflow(context.Background(), "hello", snapshot(), nil)

	if res.Failed() {
		t.Fatalf("empty replies must not fail the run: %v", res.Err)
	}
	if res.Response != agentflow.ReplyFallback {
		t.Fatalf("Response = %q, want fallback", res.Response)
	}
	if res.Logs[1].Content != agentflow.PlanFallback {
		t.Errorf("plan log = %q", res.Logs[1].Content)
	}
	if res.Logs[3].Content != agentflow.ExecutionFallback {
		t.Errorf("execution log = %q", res.Logs[3].Content)
	}
	if !strings.Contains(fake.prompts[1], agentflow.PlanFallback) {
		t.Errorf("executor should receive the fallback plan")
	}
	if len(res.ProposedTasks) != 0 || len(res.ProposedEvents) != 0 {
		t.Errorf("expected no drafts")
	}
}

func TestRunWorkflowMalformedExecutionContinues(t *testing.T) {
	fake := &scriptedLLM{replies: []string{"plan", "this is not json", "Final words"}}
	res := agentflow.NewDefaultOrchestrator(fake, agentflow.Options{}).
		RunWorkflow(context.Background(), "hello", snapshot(), nil)

	if res.Failed() {
		t.Fatalf("malformed structured output must not fail the run")
	}
	if res.Response != "Final words" {
		t.Fatalf("Response = %q", res.Response)
	}
	if !strings.Contains(fake.prompts[2], "Raw Execution Result: \n") {
		t.Errorf("reviewer should receive an empty answer: %q", fake.prompts[2])
	}
}

func TestRunWorkflowFailureAtEachStage(t *testing.T) {
	cases := []struct {
		failAt    int
		wantRoles []domain.AgentRole
	}{
		{1, []domain.AgentRole{domain.RolePlanner, domain.RoleReviewer}},
		{2, []domain.AgentRole{domain.RolePlanner, domain.RolePlanner, domain.RoleManager, domain.RoleReviewer}},
		{3, []domain.AgentRole{domain.RolePlanner, domain.RolePlanner, domain.RoleManager, domain.RoleExecutor, domain.RoleReviewer, domain.RoleReviewer}},
	}

	for _, c := range cases {
		fake := &scriptedLLM{
			replies: []string{"plan", `{"answer":"a","newTasks":[{"title":"X"}]}`, "reply"},
			failAt:  c.failAt,
		}
		var progress int
		res := agentflow.NewDefaultOrchestrator(fake, agentflow.Options{}).
			RunWorkflow(context.Background(), "hello", snapshot(), func(domain.AgentLog) { progress++ })

		if !res.Failed() || res.Err == nil {
			t.Fatalf("failAt=%d: expected failed outcome", c.failAt)
		}
		if res.Response != agentflow.ApologyResponse {
			t.Errorf("failAt=%d: Response = %q", c.failAt, res.Response)
		}
		if len(res.ProposedTasks) != 0 || len(res.ProposedEvents) != 0 {
			t.Errorf("failAt=%d: failed run must not propose drafts", c.failAt)
		}
		if got := roles(res.Logs); !equalRoles(got, c.wantRoles) {
			t.Errorf("failAt=%d: roles = %v, want %v", c.failAt, got, c.wantRoles)
		}
		if last := res.Logs[len(res.Logs)-1]; last.Content != agentflow.FailureLog {
			t.Errorf("failAt=%d: last log = %q", c.failAt, last.Content)
		}
		if progress != len(res.Logs) {
			t.Errorf("failAt=%d: progress saw %d entries, want %d", c.failAt, progress, len(res.Logs))
		}
		if len(fake.prompts) != c.failAt {
			t.Errorf("failAt=%d: %d calls made, no stage may run after a failure", c.failAt, len(fake.prompts))
		}
	}
}

func TestRunWorkflowCancelledContextFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := agentflow.NewDefaultOrchestrator(llm.NewMockLLM(), agentflow.Options{}).
		RunWorkflow(ctx, "hello", snapshot(), nil)

	if !res.Failed() || !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("expected cancellation failure, got outcome=%s err=%v", res.Outcome, res.Err)
	}
}

type panickingLLM struct{}

func (panickingLLM) Generate(context.Context, string, domain.GenerateOptions) (string, error) {
	panic("boom")
}

func TestRunWorkflowRecoversFromPanic(t *testing.T) {
	res := agentflow.NewDefaultOrchestrator(panickingLLM{}, agentflow.Options{}).
		RunWorkflow(context.Background(), "hello", snapshot(), nil)

	if !res.Failed() || res.Response != agentflow.ApologyResponse {
		t.Fatalf("expected failure result after panic, got %+v", res)
	}
}

func TestRunWorkflowWithoutAgents(t *testing.T) {
	res := agentflow.NewOrchestrator().RunWorkflow(context.Background(), "hello", snapshot(), nil)
	if !res.Failed() || len(res.Logs) != 1 || res.Logs[0].Role != domain.RoleReviewer {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestRunWorkflowWithMockLLMAlwaysReplies(t *testing.T) {
	orch := agentflow.NewDefaultOrchestrator(llm.NewMockLLM(), agentflow.Options{})
	for _, in := range []string{"hi", "schedule a meeting with Ana", "add a task to call mom", "¿qué tengo hoy?"} {
		res := orch.RunWorkflow(context.Background(), in, snapshot(), nil)
		if res.Failed() || strings.TrimSpace(res.Response) == "" {
			t.Fatalf("input %q: outcome=%s response=%q", in, res.Outcome, res.Response)
		}
	}
}
