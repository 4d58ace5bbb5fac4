package calendar

import "time"

// DaysPerWeek is the width of a rendered month grid.
const DaysPerWeek = 7

// Cell is one slot of a month grid. Day is 0 for the padding before the 1st.
type Cell struct {
	Day int
}

// Blank reports whether c is padding rather than a day.
func (c Cell) Blank() bool {
	return c.Day == 0
}

// IsLeapYear applies the proleptic Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the zero-based month of year.
func DaysInMonth(year, month int) int {
	switch month {
	case 1:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 3, 5, 8, 10:
		return 30
	default:
		return 31
	}
}

// FirstWeekday returns the day of the week the zero-based month starts on.
func FirstWeekday(year, month int) time.Weekday {
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// BuildGrid returns the cells of a month grid: one blank per weekday before
// the 1st, then days 1..DaysInMonth in order. The result is not padded to a
// full final week; see Weeks.
func BuildGrid(year, month int) []Cell {
	lead := int(FirstWeekday(year, month))
	days := DaysInMonth(year, month)

	cells := make([]Cell, 0, lead+days)
	for range lead {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{Day: day})
	}
	return cells
}

// Weeks splits cells into rows of DaysPerWeek, padding the last row with blanks.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for start := 0; start < len(cells); start += DaysPerWeek {
		row := make([]Cell, DaysPerWeek)
		copy(row, cells[start:min(start+DaysPerWeek, len(cells))])
		rows = append(rows, row)
	}
	return rows
}
