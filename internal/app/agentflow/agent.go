package agentflow

import (
	"context"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

// Turn carries everything one workflow run has produced so far. Each agent
// receives the turn left by the previous one and returns it extended.
type Turn struct {
	UserInput string
	Snapshot  domain.AppState

	Plan      string
	Execution Execution
	Reply     string
}

type AgentOutput struct {
	Turn Turn
	// Role and Log form the progress entry emitted once the agent is done.
	Role domain.AgentRole
	Log  string
}

// Agent is one stage of the pipeline: a single call to the LLM.
type Agent interface {
	Name() string
	// Intro is the progress entry emitted before the agent runs.
	Intro() (domain.AgentRole, string)
	Run(ctx context.Context, in Turn) (AgentOutput, error)
}
