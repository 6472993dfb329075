package httpadapter

import (
	"time"

	"github.com/PabloGalante/omni-agent/internal/app/conversation"
	"github.com/PabloGalante/omni-agent/internal/domain"
)

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createTaskRequest struct {
	Title    string  `json:"title" minLength:"1"`
	Priority string  `json:"priority,omitempty"`
	Category string  `json:"category,omitempty"`
	DueDate  *string `json:"due_date,omitempty"`
}

type createEventRequest struct {
	Title     string  `json:"title" minLength:"1"`
	StartTime string  `json:"start_time" example:"09:00"`
	EndTime   string  `json:"end_time,omitempty" example:"10:00"`
	Type      string  `json:"type,omitempty"`
	Location  *string `json:"location,omitempty"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type taskResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Completed bool    `json:"completed"`
	Priority  string  `json:"priority"`
	Category  string  `json:"category"`
	DueDate   *string `json:"due_date,omitempty"`
}

type toggleTaskResponse struct {
	Toggled bool          `json:"toggled"`
	Task    *taskResponse `json:"task,omitempty"`
}

type eventResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Location  *string `json:"location,omitempty"`
	Type      string  `json:"type"`
}

type logResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type messageResponse struct {
	ID        string        `json:"id"`
	Sender    string        `json:"sender"`
	Content   string        `json:"content"`
	Timestamp time.Time     `json:"timestamp"`
	Logs      []logResponse `json:"logs,omitempty"`
}

type stateResponse struct {
	Tasks        []taskResponse    `json:"tasks"`
	Events       []eventResponse   `json:"events"`
	Messages     []messageResponse `json:"messages"`
	CurrentGoal  string            `json:"current_goal"`
	IsProcessing bool              `json:"is_processing"`
}

type logsResponse struct {
	Processing bool          `json:"processing"`
	Logs       []logResponse `json:"logs"`
}

type sendMessageResponse struct {
	UserMessage  messageResponse `json:"user_message"`
	AgentMessage messageResponse `json:"agent_message"`
	Outcome      string          `json:"outcome"`
	Logs         []logResponse   `json:"logs"`
}

// ─────────────────────────────────────────────
// Conversion helpers
// ─────────────────────────────────────────────

func toTaskResponse(t domain.Task) taskResponse {
	return taskResponse{
		ID:        string(t.ID),
		Title:     t.Title,
		Completed: t.Completed,
		Priority:  string(t.Priority),
		Category:  t.Category,
		DueDate:   t.DueDate,
	}
}

func toEventResponse(e domain.CalendarEvent) eventResponse {
	return eventResponse{
		ID:        string(e.ID),
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Location:  e.Location,
		Type:      string(e.Type),
	}
}

func toLogResponse(l domain.AgentLog) logResponse {
	return logResponse{
		ID:        string(l.ID),
		Role:      string(l.Role),
		Content:   l.Content,
		Timestamp: l.Timestamp,
	}
}

func toLogsResponse(logs []domain.AgentLog) []logResponse {
	out := make([]logResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toLogResponse(l))
	}
	return out
}

func toMessageResponse(m domain.ChatMessage) messageResponse {
	resp := messageResponse{
		ID:        string(m.ID),
		Sender:    string(m.Sender),
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if len(m.Logs) > 0 {
		resp.Logs = toLogsResponse(m.Logs)
	}
	return resp
}

func toMessagesResponse(msgs []domain.ChatMessage) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toStateResponse(s domain.AppState) stateResponse {
	tasks := make([]taskResponse, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		tasks = append(tasks, toTaskResponse(t))
	}
	events := make([]eventResponse, 0, len(s.Events))
	for _, e := range s.Events {
		events = append(events, toEventResponse(e))
	}
	return stateResponse{
		Tasks:        tasks,
		Events:       events,
		Messages:     toMessagesResponse(s.Messages),
		CurrentGoal:  s.CurrentGoal,
		IsProcessing: s.IsProcessing,
	}
}

func toSendMessageResponse(out *conversation.SendMessageOutput) sendMessageResponse {
	return sendMessageResponse{
		UserMessage:  toMessageResponse(out.UserMessage),
		AgentMessage: toMessageResponse(out.AgentMessage),
		Outcome:      string(out.Outcome),
		Logs:         toLogsResponse(out.Logs),
	}
}
