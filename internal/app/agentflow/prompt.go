package agentflow

import (
	"encoding/json"
	"fmt"

	"github.com/PabloGalante/omni-agent/internal/domain"
)

const plannerInstructions = `You are the Lead Planner for OmniAgent. Your job is to decompose the user's request into actionable sub-tasks.
Identify which specialized agents are needed (Manager, Executor, or Reviewer).
Output a clear execution strategy.`

const managerInstructions = `You are the Information Manager. You handle the persistent state like tasks, calendar events, and preferences.
You must provide the necessary context to other agents.`

const executorInstructions = `You are the Primary Executor. You perform the actual logic, calculations, and content generation.
Be concise and effective.`

const reviewerInstructions = `You are the Final Quality Assurance Agent. Your job is to take the Executor's work and format it perfectly for the user.
Ensure it sounds professional, helpful, and aligns with the user's goal.`

// RoleInstructions returns the static instructions for a role.
func RoleInstructions(role domain.AgentRole) string {
	switch role {
	case domain.RolePlanner:
		return plannerInstructions
	case domain.RoleManager:
		return managerInstructions
	case domain.RoleExecutor:
		return executorInstructions
	case domain.RoleReviewer:
		return reviewerInstructions
	default:
		return ""
	}
}

// BuildPlannerPrompt combines the request, the current tasks and events and
// the planner instructions.
func BuildPlannerPrompt(userInput string, snapshot domain.AppState) string {
	view := struct {
		Tasks  []domain.Task          `json:"tasks"`
		Events []domain.CalendarEvent `json:"events"`
	}{
		Tasks:  nonNil(snapshot.Tasks),
		Events: nonNil(snapshot.Events),
	}
	state, err := json.Marshal(view)
	if err != nil {
		state = []byte("{}")
	}

	return fmt.Sprintf("User Request: %s\n\nCurrent App State: %s\n\nTask: %s",
		userInput, state, plannerInstructions)
}

// BuildExecutorPrompt asks for the structured change set. Manager
// instructions are included because the executor also owns state changes.
func BuildExecutorPrompt(plan, userInput string) string {
	return fmt.Sprintf("Strategy: %s\nUser Query: %s\n\nContext: %s\n\nTask: %s. "+
		"If the user wants to add tasks or events, list them in newTasks and newEvents; otherwise leave both arrays empty.",
		plan, userInput, managerInstructions, executorInstructions)
}

func BuildReviewerPrompt(answer string) string {
	return fmt.Sprintf("Raw Execution Result: %s\n\nTask: %s", answer, reviewerInstructions)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
