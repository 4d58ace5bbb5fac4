package storage

import (
	"bytes"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/taskdeck/taskdeck/internal/calendar"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

const frontmatterDelimiter = "---"

// taskFrontmatter is the YAML-serializable portion of a task.
type taskFrontmatter struct {
	ID        string        `yaml:"id"`
	Title     string        `yaml:"title"`
	Status    task.Status   `yaml:"status"`
	Priority  task.Priority `yaml:"priority"`
	Deadline  string        `yaml:"deadline"`
	Category  *string       `yaml:"category,omitempty"`
	CreatedAt string        `yaml:"created_at"`
}

// noteFrontmatter is the YAML-serializable portion of a note.
type noteFrontmatter struct {
	ID        string  `yaml:"id"`
	Title     string  `yaml:"title"`
	Pinned    bool    `yaml:"pinned"`
	CreatedAt string  `yaml:"created_at"`
	Color     *string `yaml:"color,omitempty"`
}

// ParseMarkdown parses a task file with YAML frontmatter. The body is the description.
func ParseMarkdown(content []byte) (*task.Task, error) {
	var fm taskFrontmatter
	body, err := decodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}

	deadline, err := calendar.ParseDate(fm.Deadline)
	if err != nil {
		return nil, &parseError{"invalid deadline: " + err.Error()}
	}
	createdAt, err := parseTime(fm.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid created_at: " + err.Error()}
	}

	return &task.Task{
		ID:          fm.ID,
		Title:       fm.Title,
		Description: body,
		Priority:    fm.Priority,
		Status:      fm.Status,
		Deadline:    deadline,
		Category:    fm.Category,
		CreatedAt:   createdAt,
	}, nil
}

// SerializeMarkdown converts a Task to markdown with YAML frontmatter.
func SerializeMarkdown(t *task.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:        t.ID,
		Title:     t.Title,
		Status:    t.Status,
		Priority:  t.Priority,
		Deadline:  t.Deadline.String(),
		Category:  t.Category,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
	return encodeFrontmatter(fm, t.Description)
}

// ParseNoteMarkdown parses a note file with YAML frontmatter. The body is the content.
func ParseNoteMarkdown(content []byte) (*note.Note, error) {
	var fm noteFrontmatter
	body, err := decodeFrontmatter(content, &fm)
	if err != nil {
		return nil, err
	}

	createdAt, err := calendar.ParseDate(fm.CreatedAt)
	if err != nil {
		return nil, &parseError{"invalid created_at: " + err.Error()}
	}

	return &note.Note{
		ID:        fm.ID,
		Title:     fm.Title,
		Content:   body,
		Pinned:    fm.Pinned,
		CreatedAt: createdAt,
		Color:     fm.Color,
	}, nil
}

// SerializeNoteMarkdown converts a Note to markdown with YAML frontmatter.
func SerializeNoteMarkdown(n *note.Note) ([]byte, error) {
	fm := noteFrontmatter{
		ID:        n.ID,
		Title:     n.Title,
		Pinned:    n.Pinned,
		CreatedAt: n.CreatedAt.String(),
		Color:     n.Color,
	}
	return encodeFrontmatter(fm, n.Content)
}

// decodeFrontmatter unmarshals the YAML header into out and returns the trimmed body.
func decodeFrontmatter(content []byte, out any) (string, error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return "", &parseError{"missing YAML frontmatter"}
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			frontmatterEnd = i
			break
		}
	}
	if frontmatterEnd == 0 {
		return "", &parseError{"unclosed YAML frontmatter"}
	}

	yamlContent := strings.Join(lines[1:frontmatterEnd], "\n")
	if err := yaml.Unmarshal([]byte(yamlContent), out); err != nil {
		return "", &parseError{"invalid YAML: " + err.Error()}
	}

	var body string
	if frontmatterEnd+1 < len(lines) {
		body = strings.TrimSpace(strings.Join(lines[frontmatterEnd+1:], "\n"))
	}
	return body, nil
}

func encodeFrontmatter(fm any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontmatterDelimiter + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2) //nolint:mnd // two-space YAML
	if err := enc.Encode(fm); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	buf.WriteString(frontmatterDelimiter + "\n")

	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// parseError represents a parsing error.
type parseError struct {
	msg string
}

func (e *parseError) Error() string {
	return e.msg
}

// parseTime tries to parse a time string in common formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		calendar.DateLayout,
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &parseError{"unrecognized time format"}
}
