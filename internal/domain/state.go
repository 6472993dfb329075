package domain

// AppState is a point-in-time view of everything the user sees.
type AppState struct {
	Tasks        []Task          `json:"tasks"`
	Events       []CalendarEvent `json:"events"`
	Messages     []ChatMessage   `json:"messages"`
	CurrentGoal  string          `json:"currentGoal,omitempty"`
	IsProcessing bool            `json:"isProcessing"`
}

// Clone returns a deep copy so a snapshot can be handed out without sharing
// backing arrays with the owner.
func (s AppState) Clone() AppState {
	out := AppState{
		Tasks:        make([]Task, len(s.Tasks)),
		Events:       make([]CalendarEvent, len(s.Events)),
		Messages:     make([]ChatMessage, len(s.Messages)),
		CurrentGoal:  s.CurrentGoal,
		IsProcessing: s.IsProcessing,
	}
	copy(out.Tasks, s.Tasks)
	copy(out.Events, s.Events)
	for i, m := range s.Messages {
		if m.Logs != nil {
			m.Logs = append([]AgentLog(nil), m.Logs...)
		}
		out.Messages[i] = m
	}
	return out
}
