package domain

// Task is an entry of the to-do list.
type Task struct {
	ID        TaskID   `json:"id" yaml:"id"`
	Title     string   `json:"title" yaml:"title"`
	Completed bool     `json:"completed" yaml:"completed"`
	Priority  Priority `json:"priority" yaml:"priority"`
	Category  string   `json:"category" yaml:"category"`
	DueDate   *string  `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
}

// TaskDraft is a partial task, proposed by the user or by the agents.
// Everything but Title may be left empty and gets defaulted on creation.
type TaskDraft struct {
	Title    string   `json:"title"`
	Priority Priority `json:"priority,omitempty"`
	Category string   `json:"category,omitempty"`
	DueDate  *string  `json:"dueDate,omitempty"`
}
