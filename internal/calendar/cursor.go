package calendar

import (
	"fmt"
	"strings"
	"time"

	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
)

const monthsPerYear = 12

// Cursor identifies the displayed month. Month is zero-based (0 = January).
type Cursor struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// Direction is a one-month step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection accepts "prev"/"previous" and "next".
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prev", "previous":
		return Prev, true
	case "next":
		return Next, true
	default:
		return 0, false
	}
}

// Advance moves c one month in dir, carrying into the year.
func Advance(c Cursor, dir Direction) Cursor {
	total := c.Year*monthsPerYear + c.Month + int(dir)
	year := total / monthsPerYear
	month := total % monthsPerYear
	if month < 0 {
		month += monthsPerYear
		year--
	}
	return Cursor{Year: year, Month: month}
}

// CursorFor returns the cursor of the month containing d.
func CursorFor(d Date) Cursor {
	return Cursor{Year: d.Year, Month: int(d.Month) - 1}
}

// ParseMonth reads a YYYY-MM string.
func ParseMonth(s string) (Cursor, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return Cursor{}, deckerrors.InvalidMonthError{Value: s}
	}
	return Cursor{Year: t.Year(), Month: int(t.Month()) - 1}, nil
}

// Valid reports whether Month is within [0,11].
func (c Cursor) Valid() bool {
	return c.Month >= 0 && c.Month < monthsPerYear
}

// Contains reports whether d falls in the month of c.
func (c Cursor) Contains(d Date) bool {
	return d.Year == c.Year && int(d.Month)-1 == c.Month
}

// Date returns the given day of the cursor's month.
func (c Cursor) Date(day int) Date {
	return Date{Year: c.Year, Month: time.Month(c.Month + 1), Day: day}
}

// Grid is shorthand for BuildGrid(c.Year, c.Month).
func (c Cursor) Grid() []Cell {
	return BuildGrid(c.Year, c.Month)
}

func (c Cursor) String() string {
	return fmt.Sprintf("%s %d", time.Month(c.Month+1), c.Year)
}

// Key returns the YYYY-MM form accepted by ParseMonth.
func (c Cursor) Key() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month+1)
}
