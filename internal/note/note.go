package note

import (
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/calendar"
)

// Note is a sticky note.
type Note struct {
	ID        string
	Title     string
	Content   string
	Pinned    bool
	CreatedAt calendar.Date
	Color     *string
}

// NewID returns a fresh note identifier.
func NewID() string {
	return uuid.NewString()
}

// TogglePin flips the pinned flag.
func (n *Note) TogglePin() {
	n.Pinned = !n.Pinned
}

// ColorName returns the color or "" when unset.
func (n *Note) ColorName() string {
	if n.Color == nil {
		return ""
	}
	return *n.Color
}

// Matches reports whether term appears in the title or content, ignoring case.
func (n *Note) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

// Search returns the notes matching term in input order. An empty term matches everything.
func Search(notes []*Note, term string) []*Note {
	found := []*Note{}
	for _, n := range notes {
		if n.Matches(term) {
			found = append(found, n)
		}
	}
	return found
}

// Partition splits notes into pinned and unpinned, keeping order within each.
func Partition(notes []*Note) ([]*Note, []*Note) {
	pinned := []*Note{}
	unpinned := []*Note{}
	for _, n := range notes {
		if n.Pinned {
			pinned = append(pinned, n)
		} else {
			unpinned = append(unpinned, n)
		}
	}
	return pinned, unpinned
}
