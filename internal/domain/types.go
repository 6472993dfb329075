package domain

import (
	"strings"
	"time"
)

type TaskID string
type EventID string
type MessageID string
type LogID string

type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// AgentRole tags an AgentLog with the agent that produced it.
type AgentRole string

const (
	RolePlanner  AgentRole = "Planner"
	RoleManager  AgentRole = "Manager"
	RoleExecutor AgentRole = "Executor"
	RoleReviewer AgentRole = "Reviewer"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type EventType string

const (
	EventWork     EventType = "work"
	EventPersonal EventType = "personal"
	EventHealth   EventType = "health"
	EventSocial   EventType = "social"
)

type Timestamp = time.Time

// ParsePriority normalises free text into a Priority.
// ok is false when the value is empty or not one of low/medium/high.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	default:
		return "", false
	}
}

// ParseEventType normalises free text into an EventType.
func ParseEventType(s string) (EventType, bool) {
	switch t := EventType(strings.ToLower(strings.TrimSpace(s))); t {
	case EventWork, EventPersonal, EventHealth, EventSocial:
		return t, true
	default:
		return "", false
	}
}
