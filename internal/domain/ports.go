package domain

import "context"

// LLMClient is the external text-generation capability.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// GenerateOptions parameterises one call. ResponseSchema switches the
// model into structured (JSON) output.
type GenerateOptions struct {
	Model          string
	ResponseSchema *Schema
	ThinkingBudget int32 // 0 = provider default
	Temperature    *float32
}

// TaskStore keeps the ordered task list.
type TaskStore interface {
	PrependTask(task Task) error
	AppendTask(task Task) error
	ToggleTask(id TaskID) (Task, bool, error)
	ListTasks() ([]Task, error)
}

// EventStore keeps the ordered calendar.
type EventStore interface {
	AppendEvent(event CalendarEvent) error
	ListEvents() ([]CalendarEvent, error)
}

// MessageStore keeps the chat transcript.
type MessageStore interface {
	AppendMessage(msg ChatMessage) error
	ListMessages(limit int) ([]ChatMessage, error)
}

// RunLogStore keeps the progress trail of the current (or last) run.
type RunLogStore interface {
	ResetRunLog() error
	AppendRunLog(log AgentLog) error
	ListRunLog() ([]AgentLog, error)
}
