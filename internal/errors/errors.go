//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// NotInitializedError indicates the profile directory doesn't exist.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "taskdeck not initialized: run 'deck init' first"
}

// AlreadyInitializedError indicates the profile directory already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "taskdeck already initialized"
}

// TaskNotFoundError indicates the task ID doesn't match any file.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// NoteNotFoundError indicates the note ID doesn't match any file.
type NoteNotFoundError struct {
	ID string
}

func (e NoteNotFoundError) Error() string {
	return fmt.Sprintf("note not found: %s", e.ID)
}

// AlreadyExistsError indicates an ID collision.
type AlreadyExistsError struct {
	ID string
}

func (e AlreadyExistsError) Error() string {
	return fmt.Sprintf("record already exists: %s", e.ID)
}

// InvalidStatusError indicates an unknown task status.
type InvalidStatusError struct {
	Value string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %s (valid: pending, completed)", e.Value)
}

// InvalidPriorityError indicates an invalid priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: high, medium, low)", e.Value)
}

// InvalidDateError indicates text that cannot be read as a YYYY-MM-DD calendar date.
type InvalidDateError struct {
	Value string
}

func (e InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date: %q (expected YYYY-MM-DD)", e.Value)
}

// InvalidMonthError indicates a month outside 1..12 or an unparseable YYYY-MM.
type InvalidMonthError struct {
	Value string
}

func (e InvalidMonthError) Error() string {
	return fmt.Sprintf("invalid month: %q (expected YYYY-MM)", e.Value)
}

// MissingTitleError indicates a task or note was created without a title.
type MissingTitleError struct{}

func (e MissingTitleError) Error() string {
	return "title is required"
}

// AmbiguousIDError indicates an ID prefix that matches more than one record.
type AmbiguousIDError struct {
	Prefix  string
	Matches int
}

func (e AmbiguousIDError) Error() string {
	return fmt.Sprintf("ambiguous id %q: matches %d records", e.Prefix, e.Matches)
}
