package agentflow

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

const PlanFallback = "Decomposed into strategy: Fetch state, Process logic, Review."

// PlannerAgent turns the request and the current state into a strategy.
type PlannerAgent struct {
	llm  domain.LLMClient
	opts domain.GenerateOptions
}

func NewPlannerAgent(llm domain.LLMClient, opts domain.GenerateOptions) *PlannerAgent {
	opts.ResponseSchema = nil
	return &PlannerAgent{llm: llm, opts: opts}
}

func (a *PlannerAgent) Name() string {
	return "planner"
}

func (a *PlannerAgent) Intro() (domain.AgentRole, string) {
	return domain.RolePlanner, "Analyzing user request and state..."
}

func (a *PlannerAgent) Run(ctx context.Context, in Turn) (AgentOutput, error) {
	reply, err := a.llm.Generate(ctx, BuildPlannerPrompt(in.UserInput, in.Snapshot), a.opts)
	if err != nil {
		return AgentOutput{}, err
	}

	in.Plan = reply
	if in.Plan == "" {
		in.Plan = PlanFallback
	}

	return AgentOutput{
		Turn: in,
		Role: domain.RolePlanner,
		Log:  in.Plan,
	}, nil
}
