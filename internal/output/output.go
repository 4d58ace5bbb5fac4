package output

import (
	"github.com/taskdeck/taskdeck/internal/agenda"
	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []*task.Task) string
	FormatNote(n *note.Note) string
	FormatNoteList(notes []*note.Note) string
	FormatMonth(view MonthView) string
	FormatDay(date calendar.Date, tasks []*task.Task) string
	FormatStats(s agenda.Stats) string
	FormatProfile(p config.Profile) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// MonthView is everything needed to draw one month of the calendar.
type MonthView struct {
	Cursor   calendar.Cursor
	Cells    []calendar.Cell
	ByDay    map[int][]*task.Task
	Today    calendar.Date
	Upcoming []*task.Task
}

// NewMonthView assembles a MonthView from a task list the way the calendar
// screen does: grid first, then one day lookup per cell, then the upcoming list.
func NewMonthView(tasks []*task.Task, c calendar.Cursor, today calendar.Date) MonthView {
	return MonthView{
		Cursor:   c,
		Cells:    c.Grid(),
		ByDay:    agenda.InMonth(tasks, c),
		Today:    today,
		Upcoming: agenda.Upcoming(tasks, today),
	}
}
