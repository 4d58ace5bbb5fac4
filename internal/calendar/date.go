// Package calendar provides naive calendar dates, month grids and month navigation.
//
// Everything here is a pure function of its arguments: no clock reads, no I/O.
// Month numbers follow two conventions. Date carries a time.Month (1-12) because
// it is read from YYYY-MM-DD text, while grid and cursor functions take a
// zero-based month index (0 = January) to match how a UI walks months.
package calendar

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
)

// DateLayout is the textual form of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar day with no time-of-day and no zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date without validation.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate reads a YYYY-MM-DD string. Surrounding whitespace is ignored.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, deckerrors.InvalidDateError{Value: s}
	}
	return Today(t), nil
}

// Today returns the calendar date of now in now's own location.
func Today(now time.Time) Date {
	y, m, d := now.Date()
	return Date{Year: y, Month: m, Day: d}
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d names a real calendar day. The zero Date is not valid.
func (d Date) Valid() bool {
	if d.IsZero() {
		return false
	}
	y, m, day := d.Time().Date()
	return y == d.Year && m == d.Month && day == d.Day
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after other.
func (d Date) Compare(other Date) int {
	if c := cmp.Compare(d.Year, other.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, other.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, other.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Compare(other) > 0
}

// Equal reports whether d and other name the same day.
func (d Date) Equal(other Date) bool {
	return d == other
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return Today(d.Time().AddDate(0, 0, n))
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
