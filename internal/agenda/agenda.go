// Package agenda answers date questions about a task list: what is due on a
// given day, and what is coming up. It never mutates the tasks it is given and
// keeps no index between calls.
package agenda

import (
	"slices"

	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/task"
)

// OnDate returns the tasks whose deadline is exactly year/month/day, in input
// order. month is zero-based (0 = January).
func OnDate(tasks []*task.Task, year, month, day int) []*task.Task {
	target := calendar.Cursor{Year: year, Month: month}.Date(day)

	matched := []*task.Task{}
	for _, t := range tasks {
		if t.Deadline == target {
			matched = append(matched, t)
		}
	}
	return matched
}

// Upcoming returns the tasks due on or after from, nearest deadline first.
// Ties keep their input order. Completed tasks are included; filter with
// Pending first if they should not be.
func Upcoming(tasks []*task.Task, from calendar.Date) []*task.Task {
	upcoming := []*task.Task{}
	for _, t := range tasks {
		if !t.Deadline.Before(from) {
			upcoming = append(upcoming, t)
		}
	}

	slices.SortStableFunc(upcoming, func(a, b *task.Task) int {
		return a.Deadline.Compare(b.Deadline)
	})
	return upcoming
}

// Pending returns only the tasks that are not completed, in input order.
func Pending(tasks []*task.Task) []*task.Task {
	pending := []*task.Task{}
	for _, t := range tasks {
		if !t.Completed() {
			pending = append(pending, t)
		}
	}
	return pending
}

// InMonth buckets the tasks of the cursor's month by day of month. Days with
// no tasks are absent from the map.
func InMonth(tasks []*task.Task, c calendar.Cursor) map[int][]*task.Task {
	byDay := make(map[int][]*task.Task)
	for _, cell := range c.Grid() {
		if cell.Blank() {
			continue
		}
		if due := OnDate(tasks, c.Year, c.Month, cell.Day); len(due) > 0 {
			byDay[cell.Day] = due
		}
	}
	return byDay
}
