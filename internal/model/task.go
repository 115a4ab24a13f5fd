package model

import "time"

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is used when neither the user nor a directive sets one.
const DefaultPriority = PriorityMedium

// DefaultProjectID is the project new tasks land in.
const DefaultProjectID = "inbox"

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a single to-do item owned by one user.
type Task struct {
	ID              string
	UserID          string
	Title           string
	Description     string
	Completed       bool
	DueDate         *time.Time // Midnight of the due day; nil when undated
	Priority        Priority
	ProjectID       string
	CalendarEventID string // Google Calendar event mirroring the due date (may be empty)
	CalendarLink    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
