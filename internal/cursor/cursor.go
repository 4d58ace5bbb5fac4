// Package cursor persists the month a profile's calendar view is showing, so
// that successive "deck cal next" invocations walk from where the last one
// stopped.
package cursor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/taskdeck/taskdeck/internal/calendar"
	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
)

const stateFile = "cursor.json"

// State is the on-disk month cursor. Month is zero-based.
type State struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cursor returns the calendar cursor held by s.
func (s State) Cursor() calendar.Cursor {
	return calendar.Cursor{Year: s.Year, Month: s.Month}
}

func statePath(basePath string) string {
	return filepath.Join(basePath, stateFile)
}

// Exists checks if a cursor file exists.
func Exists(basePath string) bool {
	_, err := os.Stat(statePath(basePath))
	return err == nil
}

// Load reads the cursor from disk.
func Load(basePath string) (*State, error) {
	data, err := os.ReadFile(statePath(basePath))
	if err != nil {
		return nil, err
	}

	var s State
	if unmarshalErr := json.Unmarshal(data, &s); unmarshalErr != nil {
		return nil, unmarshalErr
	}
	if !s.Cursor().Valid() {
		return nil, deckerrors.InvalidMonthError{Value: s.Cursor().String()}
	}

	return &s, nil
}

// Save writes the cursor to disk.
func Save(basePath string, s *State) error {
	if !s.Cursor().Valid() {
		return deckerrors.InvalidMonthError{Value: s.Cursor().String()}
	}

	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	if mkdirErr := os.MkdirAll(basePath, 0o755); mkdirErr != nil {
		return mkdirErr
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	//nolint:gosec // G306: 0644 is appropriate for user-readable state files
	return os.WriteFile(statePath(basePath), data, 0o644)
}

// Delete removes the cursor file.
func Delete(basePath string) error {
	err := os.Remove(statePath(basePath))
	if os.IsNotExist(err) {
		return nil // Already deleted, not an error
	}
	return err
}

// Current returns the stored cursor, or the month containing today when none is stored.
func Current(basePath string, today calendar.Date) (calendar.Cursor, error) {
	s, err := Load(basePath)
	if os.IsNotExist(err) {
		return calendar.CursorFor(today), nil
	}
	if err != nil {
		return calendar.Cursor{}, err
	}
	return s.Cursor(), nil
}

// Set stores c as the current cursor.
func Set(basePath string, c calendar.Cursor, now time.Time) error {
	return Save(basePath, &State{Year: c.Year, Month: c.Month, UpdatedAt: now.UTC()})
}

// Step advances the stored cursor one month in dir and persists the result.
func Step(basePath string, dir calendar.Direction, today calendar.Date, now time.Time) (calendar.Cursor, error) {
	current, err := Current(basePath, today)
	if err != nil {
		return calendar.Cursor{}, err
	}

	next := calendar.Advance(current, dir)
	if err = Set(basePath, next, now); err != nil {
		return calendar.Cursor{}, err
	}
	return next, nil
}
