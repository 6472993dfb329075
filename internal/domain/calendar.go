package domain

// CalendarEvent is a calendar entry. StartTime and EndTime are opaque
// "HH:MM" strings, no overlap checks are made.
type CalendarEvent struct {
	ID        EventID   `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	StartTime string    `json:"startTime" yaml:"startTime"`
	EndTime   string    `json:"endTime" yaml:"endTime"`
	Location  *string   `json:"location,omitempty" yaml:"location,omitempty"`
	Type      EventType `json:"type" yaml:"type"`
}

type EventDraft struct {
	Title     string    `json:"title"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime,omitempty"`
	Type      EventType `json:"type,omitempty"`
	Location  *string   `json:"location,omitempty"`
}
