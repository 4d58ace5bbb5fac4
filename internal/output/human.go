package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/agenda"
	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

const (
	shortIDLength  = 8
	maxDayPreview  = 2 // titles shown per day before "+N more"
	timestampStyle = "2006-01-02 15:04"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct {
	title  lipgloss.Style
	muted  lipgloss.Style
	today  lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
}

// NewHumanFormatter creates a HumanFormatter whose colors match the terminal behind w.
func NewHumanFormatter(w io.Writer) *HumanFormatter {
	r := lipgloss.NewRenderer(w)
	return &HumanFormatter{
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle().Faint(true),
		today:  r.NewStyle().Reverse(true).Bold(true),
		high:   r.NewStyle().Foreground(lipgloss.Color("1")),
		medium: r.NewStyle().Foreground(lipgloss.Color("3")),
		low:    r.NewStyle().Foreground(lipgloss.Color("2")),
	}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	sb.WriteString(f.title.Render(fmt.Sprintf("[%s] %s", t.ID, t.Title)) + "\n")
	fmt.Fprintf(&sb, "  Status:   %s\n", t.Status)
	fmt.Fprintf(&sb, "  Priority: %s\n", f.priorityStyle(t.Priority).Render(string(t.Priority)))
	fmt.Fprintf(&sb, "  Deadline: %s (%s)\n", t.Deadline, t.Deadline.Weekday().String()[:3])
	if c := t.CategoryName(); c != "" {
		fmt.Fprintf(&sb, "  Category: %s\n", c)
	}
	fmt.Fprintf(&sb, "  Created:  %s\n", t.CreatedAt.Local().Format(timestampStyle))

	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	category := ""
	if c := t.CategoryName(); c != "" {
		category = " " + f.muted.Render("#"+c)
	}
	return fmt.Sprintf("%s %s [%s] %s  %s%s\n",
		f.statusIcon(t.Status),
		f.priorityStyle(t.Priority).Render(f.priorityMark(t.Priority)),
		t.ID,
		t.Title,
		f.muted.Render("due "+t.Deadline.String()),
		category,
	)
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusPending:
		return "[ ]"
	case task.StatusCompleted:
		return "[x]"
	default:
		return "[?]"
	}
}

func (f *HumanFormatter) priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityHigh:
		return "P1"
	case task.PriorityMedium:
		return "P2"
	case task.PriorityLow:
		return "P3"
	default:
		return "P?"
	}
}

func (f *HumanFormatter) priorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return f.high
	case task.PriorityMedium:
		return f.medium
	default:
		return f.low
	}
}

// FormatNote formats a single note for display.
func (f *HumanFormatter) FormatNote(n *note.Note) string {
	var sb strings.Builder

	sb.WriteString(f.title.Render(fmt.Sprintf("[%s] %s", n.ID, n.Title)) + "\n")
	fmt.Fprintf(&sb, "  Pinned:  %t\n", n.Pinned)
	fmt.Fprintf(&sb, "  Created: %s\n", n.CreatedAt)
	if c := n.ColorName(); c != "" {
		fmt.Fprintf(&sb, "  Color:   %s\n", c)
	}
	if n.Content != "" {
		sb.WriteString("\n")
		sb.WriteString(n.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatNoteList lists pinned notes first, then the rest.
func (f *HumanFormatter) FormatNoteList(notes []*note.Note) string {
	if len(notes) == 0 {
		return "No notes found.\n"
	}

	pinned, unpinned := note.Partition(notes)

	var sb strings.Builder
	if len(pinned) > 0 {
		sb.WriteString(f.title.Render("Pinned") + "\n")
		for _, n := range pinned {
			sb.WriteString(f.formatNoteLine(n))
		}
		if len(unpinned) > 0 {
			sb.WriteString("\n")
		}
	}
	if len(unpinned) > 0 && len(pinned) > 0 {
		sb.WriteString(f.title.Render("Other notes") + "\n")
	}
	for _, n := range unpinned {
		sb.WriteString(f.formatNoteLine(n))
	}
	return sb.String()
}

func (f *HumanFormatter) formatNoteLine(n *note.Note) string {
	return fmt.Sprintf("[%s] %s  %s\n", shortID(n.ID), n.Title, f.muted.Render(n.CreatedAt.String()))
}

// FormatMonth draws a Sunday-first month grid. Days with tasks carry a marker
// colored by their most important task; today is highlighted.
func (f *HumanFormatter) FormatMonth(view MonthView) string {
	var sb strings.Builder

	sb.WriteString(f.title.Render(view.Cursor.String()) + "\n")
	sb.WriteString("Sun Mon Tue Wed Thu Fri Sat\n")

	for _, week := range calendar.Weeks(view.Cells) {
		cells := make([]string, len(week))
		for i, cell := range week {
			cells[i] = f.formatDayCell(view, cell)
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, ""), " ") + "\n")
	}

	days := make([]int, 0, len(view.ByDay))
	for _, cell := range view.Cells {
		if _, ok := view.ByDay[cell.Day]; ok && !cell.Blank() {
			days = append(days, cell.Day)
		}
	}
	if len(days) > 0 {
		sb.WriteString("\n")
	}
	for _, day := range days {
		tasks := view.ByDay[day]
		titles := make([]string, 0, maxDayPreview)
		for _, t := range tasks[:min(maxDayPreview, len(tasks))] {
			titles = append(titles, f.priorityStyle(t.Priority).Render(t.Title))
		}
		line := fmt.Sprintf("%2d  %s", day, strings.Join(titles, ", "))
		if extra := len(tasks) - maxDayPreview; extra > 0 {
			line += f.muted.Render(fmt.Sprintf(" +%d more", extra))
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + f.title.Render("Upcoming") + "\n")
	if len(view.Upcoming) == 0 {
		sb.WriteString("No upcoming events.\n")
	}
	for _, t := range view.Upcoming {
		sb.WriteString(f.formatTaskLine(t))
	}

	return sb.String()
}

func (f *HumanFormatter) formatDayCell(view MonthView, cell calendar.Cell) string {
	if cell.Blank() {
		return "    "
	}

	number := fmt.Sprintf("%3d", cell.Day)
	if view.Cursor.Date(cell.Day) == view.Today {
		number = f.today.Render(number)
	}

	marker := " "
	if tasks := view.ByDay[cell.Day]; len(tasks) > 0 {
		marker = f.priorityStyle(topPriority(tasks)).Render("*")
	}
	return number + marker
}

// topPriority returns the most important priority among tasks.
func topPriority(tasks []*task.Task) task.Priority {
	top := tasks[0].Priority
	for _, t := range tasks[1:] {
		if task.PriorityOrder(t.Priority) < task.PriorityOrder(top) {
			top = t.Priority
		}
	}
	return top
}

// FormatDay lists the tasks due on one date.
func (f *HumanFormatter) FormatDay(date calendar.Date, tasks []*task.Task) string {
	header := f.title.Render(fmt.Sprintf("%s, %s %d %d",
		date.Weekday(), date.Month, date.Day, date.Year))
	if len(tasks) == 0 {
		return header + "\nNothing due.\n"
	}
	return header + "\n" + f.FormatTaskList(tasks)
}

// FormatStats formats the dashboard counters.
func (f *HumanFormatter) FormatStats(s agenda.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total tasks:     %d\n", s.Total)
	fmt.Fprintf(&sb, "Completed:       %d\n", s.Completed)
	fmt.Fprintf(&sb, "Pending:         %d\n", s.Pending)
	fmt.Fprintf(&sb, "Completion rate: %d%%\n", s.CompletionRate)
	return sb.String()
}

// FormatProfile formats the profile card, skipping empty fields.
func (f *HumanFormatter) FormatProfile(p config.Profile) string {
	if p == (config.Profile{}) {
		return "No profile set. Use 'deck profile set' to add one.\n"
	}

	var sb strings.Builder
	if p.Name != "" {
		sb.WriteString(f.title.Render(p.Name) + "\n")
	}
	fields := []struct{ label, value string }{
		{"Email", p.Email},
		{"Phone", p.Phone},
		{"Location", p.Location},
		{"Joined", p.JoinDate},
	}
	for _, field := range fields {
		if field.value != "" {
			fmt.Fprintf(&sb, "  %-9s %s\n", field.label+":", field.value)
		}
	}
	if p.Bio != "" {
		sb.WriteString("\n" + p.Bio + "\n")
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}
