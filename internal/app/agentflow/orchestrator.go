package agentflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/omni-agent/internal/domain"
	"github.com/PabloGalante/omni-agent/internal/observability"
)

// ProgressFunc receives each AgentLog synchronously, in emission order,
// before the next stage starts.
type ProgressFunc func(domain.AgentLog)

type Options struct {
	Model string
	// ThinkingBudget applies to the planner call only.
	ThinkingBudget int32
}

// Orchestrator is responsible for running the agents in sequence.
type Orchestrator struct {
	agents []Agent
	now    func() time.Time
	newID  func() string
}

// NewDefaultOrchestrator constructs a flow with Planner -> Executor -> Reviewer.
func NewDefaultOrchestrator(llm domain.LLMClient, opts Options) *Orchestrator {
	base := domain.GenerateOptions{Model: opts.Model}
	planOpts := base
	planOpts.ThinkingBudget = opts.ThinkingBudget

	return NewOrchestrator(
		NewPlannerAgent(llm, planOpts),
		NewExecutorAgent(llm, base),
		NewReviewerAgent(llm, base),
	)
}

func NewOrchestrator(agents ...Agent) *Orchestrator {
	return &Orchestrator{
		agents: agents,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// RunWorkflow executes the chain of agents sequentially. It never returns an
// error: a failing stage aborts the run and yields an OutcomeFailed result
// carrying the logs gathered so far plus one Reviewer error entry.
func (o *Orchestrator) RunWorkflow(
	ctx context.Context,
	userInput string,
	snapshot domain.AppState,
	onProgress ProgressFunc,
) *WorkflowResult {
	started := o.now()
	log := observability.LoggerFromContext(ctx)
	log.Info("workflow started", "agents_count", len(o.agents))

	var logs []domain.AgentLog
	emit := func(role domain.AgentRole, content string) {
		entry := domain.AgentLog{
			ID:        domain.LogID(o.newID()),
			Role:      role,
			Content:   content,
			Timestamp: o.now(),
		}
		logs = append(logs, entry)
		if onProgress != nil {
			onProgress(entry)
		}
	}

	fail := func(err error) *WorkflowResult {
		log.Error("workflow failed", "error", err)
		emit(domain.RoleReviewer, FailureLog)
		observability.RecordWorkflowRun(ctx, string(OutcomeFailed), o.now().Sub(started))
		return &WorkflowResult{
			Outcome:  OutcomeFailed,
			Response: ApologyResponse,
			Logs:     logs,
			Err:      err,
		}
	}

	if len(o.agents) == 0 {
		return fail(errors.New("no agents configured in orchestrator"))
	}

	turn := Turn{
		UserInput: userInput,
		Snapshot:  snapshot,
	}

	for _, ag := range o.agents {
		emit(ag.Intro())

		start := o.now()
		log.Info("agent run start", "agent", ag.Name())

		out, err := runAgent(ctx, ag, turn)
		elapsed := o.now().Sub(start)
		if err != nil {
			observability.RecordStage(ctx, ag.Name(), "error", elapsed)
			return fail(fmt.Errorf("agent %s failed: %w", ag.Name(), err))
		}
		observability.RecordStage(ctx, ag.Name(), "ok", elapsed)
		log.Info("agent run end", "agent", ag.Name(), "elapsed_ms", elapsed.Milliseconds())

		emit(out.Role, out.Log)

		// The output of an agent is the input for the next agent
		turn = out.Turn
	}

	response := turn.Reply
	if response == "" {
		response = ReplyFallback
	}

	log.Info("workflow end",
		"proposed_tasks", len(turn.Execution.NewTasks),
		"proposed_events", len(turn.Execution.NewEvents),
	)
	observability.RecordWorkflowRun(ctx, string(OutcomeSucceeded), o.now().Sub(started))

	return &WorkflowResult{
		Outcome:        OutcomeSucceeded,
		Response:       response,
		Logs:           logs,
		ProposedTasks:  turn.Execution.NewTasks,
		ProposedEvents: turn.Execution.NewEvents,
	}
}

// runAgent converts a panic inside an agent or its LLM client into an error.
func runAgent(ctx context.Context, ag Agent, in Turn) (out AgentOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		return AgentOutput{}, err
	}
	return ag.Run(ctx, in)
}
