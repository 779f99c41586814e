package domain

import "time"

// UnknownTaskName is shown wherever task metadata cannot be resolved.
const UnknownTaskName = "Unknown task"

type Task struct {
	ID        string
	Code      string
	Name      string
	CreatedAt time.Time
}

// TaskNames resolves task IDs to display names.
type TaskNames map[string]string

// Name returns the display name for id, or UnknownTaskName.
func (n TaskNames) Name(id string) string {
	if id == "" {
		return UnknownTaskName
	}
	if name, ok := n[id]; ok && name != "" {
		return name
	}
	return UnknownTaskName
}

// NewTaskNames indexes tasks by ID.
func NewTaskNames(tasks []*Task) TaskNames {
	names := make(TaskNames, len(tasks))
	for _, t := range tasks {
		names[t.ID] = CoalesceStr(t.Name, t.Code)
	}
	return names
}
