package directive

import "time"

// Priority is the priority extracted from a P1/P2/P3 token. The zero value means none was found.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsedTask is the result of parsing one free-text task entry.
type ParsedTask struct {
	Title    string     // Residual title with directives removed and whitespace collapsed
	Priority Priority   // PriorityNone when no priority token was recognized
	DueDate  *time.Time // Midnight in the reference date's location; nil when no date token was recognized
}

// HasPriority reports whether a priority token was recognized.
func (p ParsedTask) HasPriority() bool {
	return p.Priority != PriorityNone
}

// HasDueDate reports whether a date token was recognized.
func (p ParsedTask) HasDueDate() bool {
	return p.DueDate != nil
}
