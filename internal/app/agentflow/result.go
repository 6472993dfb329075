package agentflow

import "github.com/PabloGalante/omni-agent/internal/domain"

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

const (
	FailureLog      = "Error occurred during agent orchestration. Falling back to simple response."
	ApologyResponse = "I encountered an issue coordinating my internal agents. Please try again."
)

// WorkflowResult is what one run hands back to the state controller.
// On OutcomeFailed, Response is ApologyResponse, Err holds the cause and no
// drafts are proposed.
type WorkflowResult struct {
	Outcome        Outcome
	Response       string
	Logs           []domain.AgentLog
	ProposedTasks  []domain.TaskDraft
	ProposedEvents []domain.EventDraft
	Err            error
}

func (r *WorkflowResult) Failed() bool {
	return r.Outcome == OutcomeFailed
}
