package agentflow

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

const ExecutionFallback = "Executed request logic."

// ExecutorAgent performs the plan and proposes state changes as
// structured output.
type ExecutorAgent struct {
	llm  domain.LLMClient
	opts domain.GenerateOptions
}

func NewExecutorAgent(llm domain.LLMClient, opts domain.GenerateOptions) *ExecutorAgent {
	opts.ResponseSchema = ExecutionSchema()
	opts.ThinkingBudget = 0
	return &ExecutorAgent{llm: llm, opts: opts}
}

func (a *ExecutorAgent) Name() string {
	return "executor"
}

func (a *ExecutorAgent) Intro() (domain.AgentRole, string) {
	return domain.RoleManager, "Retrieving relevant data..."
}

func (a *ExecutorAgent) Run(ctx context.Context, in Turn) (AgentOutput, error) {
	reply, err := a.llm.Generate(ctx, BuildExecutorPrompt(in.Plan, in.UserInput), a.opts)
	if err != nil {
		return AgentOutput{}, err
	}

	in.Execution = ParseExecution(reply)
	observability.LoggerFromContext(ctx).Debug("execution parsed",
		"agent", a.Name(),
		"new_tasks", len(in.Execution.NewTasks),
		"new_events", len(in.Execution.NewEvents),
	)

	summary := in.Execution.Reasoning
	if summary == "" {
		summary = ExecutionFallback
	}

	return AgentOutput{
		Turn: in,
		Role: domain.RoleExecutor,
		Log:  summary,
	}, nil
}
