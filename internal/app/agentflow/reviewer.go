package agentflow

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

const ReplyFallback = "I've handled that for you."

// ReviewerAgent polishes the executor's answer into the user-facing reply.
type ReviewerAgent struct {
	llm  domain.LLMClient
	opts domain.GenerateOptions
}

func NewReviewerAgent(llm domain.LLMClient, opts domain.GenerateOptions) *ReviewerAgent {
	opts.ResponseSchema = nil
	opts.ThinkingBudget = 0
	return &ReviewerAgent{llm: llm, opts: opts}
}

func (a *ReviewerAgent) Name() string {
	return "reviewer"
}

func (a *ReviewerAgent) Intro() (domain.AgentRole, string) {
	return domain.RoleReviewer, "Polishing final response..."
}

func (a *ReviewerAgent) Run(ctx context.Context, in Turn) (AgentOutput, error) {
	reply, err := a.llm.Generate(ctx, BuildReviewerPrompt(in.Execution.Answer), a.opts)
	if err != nil {
		return AgentOutput{}, err
	}

	in.Reply = reply
	if in.Reply == "" {
		in.Reply = ReplyFallback
	}

	return AgentOutput{
		Turn: in,
		Role: domain.RoleReviewer,
		Log:  in.Reply,
	}, nil
}
