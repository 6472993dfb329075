package domain

// ChatMessage is one entry of the chat transcript. Assistant replies carry
// the agent log trail of the run that produced them.
type ChatMessage struct {
	ID        MessageID  `json:"id"`
	Sender    Sender     `json:"sender"`
	Content   string     `json:"content"`
	Timestamp Timestamp  `json:"timestamp"`
	Logs      []AgentLog `json:"logs,omitempty"`
}

// AgentLog is a progress entry emitted during one workflow run.
type AgentLog struct {
	ID        LogID     `json:"id"`
	Role      AgentRole `json:"role"`
	Content   string    `json:"content"`
	Timestamp Timestamp `json:"timestamp"`
}
