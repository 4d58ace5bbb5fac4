package agenda

import (
	"math"

	"github.com/taskdeck/taskdeck/internal/task"
)

// Stats are the dashboard counters for a task list.
type Stats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"` // whole percent
}

// Summarize counts tasks by status. CompletionRate is 0 for an empty list.
func Summarize(tasks []*task.Task) Stats {
	var s Stats
	for _, t := range tasks {
		s.Total++
		switch t.Status {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusPending:
			s.Pending++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100)) //nolint:mnd // percent
	}
	return s
}
