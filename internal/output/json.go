package output

import (
	"encoding/json"
	"time"

	"github.com/taskdeck/taskdeck/internal/agenda"
	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Deadline    string  `json:"deadline"`
	Category    *string `json:"category,omitempty"`
	CreatedAt   string  `json:"created_at"`
	Description string  `json:"description,omitempty"`
}

func toTaskJSON(t *task.Task) taskJSON {
	return taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Deadline:    t.Deadline.String(),
		Category:    t.Category,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		Description: t.Description,
	}
}

func toTaskListJSON(tasks []*task.Task) []taskJSON {
	out := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskJSON(t)
	}
	return out
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t *task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []*task.Task) string {
	return marshalJSON(toTaskListJSON(tasks))
}

// noteJSON is the JSON representation of a note.
type noteJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Pinned    bool    `json:"pinned"`
	CreatedAt string  `json:"created_at"`
	Color     *string `json:"color,omitempty"`
}

func toNoteJSON(n *note.Note) noteJSON {
	return noteJSON{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt.String(),
		Color:     n.Color,
	}
}

// FormatNote formats a single note as JSON.
func (f *JSONFormatter) FormatNote(n *note.Note) string {
	return marshalJSON(toNoteJSON(n))
}

// FormatNoteList formats a list of notes as JSON.
func (f *JSONFormatter) FormatNoteList(notes []*note.Note) string {
	out := make([]noteJSON, len(notes))
	for i, n := range notes {
		out[i] = toNoteJSON(n)
	}
	return marshalJSON(out)
}

// dayJSON holds the tasks due on one day of a month view.
type dayJSON struct {
	Day   int        `json:"day"`
	Tasks []taskJSON `json:"tasks"`
}

// monthJSON is the JSON representation of a month view. Blank cells are 0.
type monthJSON struct {
	Month    string     `json:"month"`
	Title    string     `json:"title"`
	Today    string     `json:"today"`
	Cells    []int      `json:"cells"`
	Days     []dayJSON  `json:"days"`
	Upcoming []taskJSON `json:"upcoming"`
}

// FormatMonth formats a month view as JSON.
func (f *JSONFormatter) FormatMonth(view MonthView) string {
	m := monthJSON{
		Month:    view.Cursor.Key(),
		Title:    view.Cursor.String(),
		Today:    view.Today.String(),
		Cells:    make([]int, len(view.Cells)),
		Days:     []dayJSON{},
		Upcoming: toTaskListJSON(view.Upcoming),
	}
	for i, cell := range view.Cells {
		m.Cells[i] = cell.Day
		if cell.Blank() {
			continue
		}
		if tasks := view.ByDay[cell.Day]; len(tasks) > 0 {
			m.Days = append(m.Days, dayJSON{Day: cell.Day, Tasks: toTaskListJSON(tasks)})
		}
	}
	return marshalJSON(m)
}

// dateTasksJSON is the JSON representation of one day's tasks.
type dateTasksJSON struct {
	Date  string     `json:"date"`
	Tasks []taskJSON `json:"tasks"`
}

// FormatDay formats the tasks due on date as JSON.
func (f *JSONFormatter) FormatDay(date calendar.Date, tasks []*task.Task) string {
	return marshalJSON(dateTasksJSON{Date: date.String(), Tasks: toTaskListJSON(tasks)})
}

// FormatStats formats dashboard counters as JSON.
func (f *JSONFormatter) FormatStats(s agenda.Stats) string {
	return marshalJSON(s)
}

// FormatProfile formats the profile as JSON.
func (f *JSONFormatter) FormatProfile(p config.Profile) string {
	return marshalJSON(p)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
