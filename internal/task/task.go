package task

import (
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/calendar"
)

// Status represents the current state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityOrder returns the sort order for a priority (lower = higher priority).
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Task is a dated to-do item.
type Task struct {
	ID          string
	Title       string
	Description string
	Priority    Priority
	Status      Status
	Deadline    calendar.Date
	Category    *string
	CreatedAt   time.Time
}

// Completed reports whether the task is done.
func (t *Task) Completed() bool {
	return t.Status == StatusCompleted
}

// Toggle flips the status between pending and completed.
func (t *Task) Toggle() {
	if t.Status == StatusCompleted {
		t.Status = StatusPending
		return
	}
	t.Status = StatusCompleted
}

// CategoryName returns the category or "" when unset.
func (t *Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority normalizes user input such as " High " to a Priority.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	return p, IsValidPriority(p)
}

// ParseStatus normalizes user input to a Status.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	return st, IsValidStatus(st)
}
