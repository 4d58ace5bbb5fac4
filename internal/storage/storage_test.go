//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/calendar"
	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

func TestParseMarkdown(t *testing.T) {
	content := []byte(`---
id: abc123
title: Team Meeting
status: pending
priority: high
deadline: "2024-07-29"
category: Work
created_at: 2024-07-20T10:30:00Z
---

Weekly team sync.
`)

	tk, err := ParseMarkdown(content)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}

	if tk.ID != "abc123" {
		t.Errorf("ID = %q, want %q", tk.ID, "abc123")
	}
	if tk.Title != "Team Meeting" {
		t.Errorf("Title = %q, want %q", tk.Title, "Team Meeting")
	}
	if tk.Status != task.StatusPending {
		t.Errorf("Status = %q, want %q", tk.Status, task.StatusPending)
	}
	if tk.Priority != task.PriorityHigh {
		t.Errorf("Priority = %q, want %q", tk.Priority, task.PriorityHigh)
	}
	if tk.Deadline != calendar.NewDate(2024, time.July, 29) {
		t.Errorf("Deadline = %v, want 2024-07-29", tk.Deadline)
	}
	if tk.CategoryName() != "Work" {
		t.Errorf("Category = %q, want Work", tk.CategoryName())
	}
	if tk.Description != "Weekly team sync." {
		t.Errorf("Description = %q, want %q", tk.Description, "Weekly team sync.")
	}
}

func TestParseMarkdownRejectsBadDeadline(t *testing.T) {
	content := []byte(`---
id: abc123
title: Broken
status: pending
priority: low
deadline: "2024-02-30"
created_at: 2024-01-15T10:30:00Z
---
`)

	if _, err := ParseMarkdown(content); err == nil {
		t.Fatal("expected error for impossible deadline")
	}
}

func TestParseMarkdownMissingFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no delimiter", "id: abc\n"},
		{"unclosed", "---\nid: abc\n"},
		{"bad yaml", "---\nid: [abc\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMarkdown([]byte(tt.content)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestSerializeMarkdown(t *testing.T) {
	category := "Personal"
	original := &task.Task{
		ID:          "abc123",
		Title:       "Doctor Appointment",
		Status:      task.StatusPending,
		Priority:    task.PriorityMedium,
		Deadline:    calendar.NewDate(2024, time.August, 2),
		Category:    &category,
		CreatedAt:   time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC),
		Description: "Annual checkup",
	}

	data, err := SerializeMarkdown(original)
	if err != nil {
		t.Fatalf("SerializeMarkdown failed: %v", err)
	}

	parsed, err := ParseMarkdown(data)
	if err != nil {
		t.Fatalf("ParseMarkdown failed: %v", err)
	}

	if parsed.Deadline != original.Deadline {
		t.Errorf("Round-trip Deadline = %v, want %v", parsed.Deadline, original.Deadline)
	}
	if parsed.CategoryName() != "Personal" {
		t.Errorf("Round-trip Category = %q, want Personal", parsed.CategoryName())
	}
	if parsed.Description != original.Description {
		t.Errorf("Round-trip Description = %q, want %q", parsed.Description, original.Description)
	}
	if !parsed.CreatedAt.Equal(original.CreatedAt) {
		t.Errorf("Round-trip CreatedAt = %v, want %v", parsed.CreatedAt, original.CreatedAt)
	}
}

func TestSerializeNoteMarkdown(t *testing.T) {
	color := "yellow"
	original := &note.Note{
		ID:        "n-1",
		Title:     "Meeting Notes",
		Content:   "Launch date moved to December\n- Need more testers",
		Pinned:    true,
		CreatedAt: calendar.NewDate(2024, time.July, 27),
		Color:     &color,
	}

	data, err := SerializeNoteMarkdown(original)
	if err != nil {
		t.Fatalf("SerializeNoteMarkdown failed: %v", err)
	}

	parsed, err := ParseNoteMarkdown(data)
	if err != nil {
		t.Fatalf("ParseNoteMarkdown failed: %v", err)
	}

	if parsed.Content != original.Content {
		t.Errorf("Round-trip Content = %q, want %q", parsed.Content, original.Content)
	}
	if !parsed.Pinned {
		t.Error("Round-trip Pinned = false, want true")
	}
	if parsed.ColorName() != "yellow" {
		t.Errorf("Round-trip Color = %q, want yellow", parsed.ColorName())
	}
	if parsed.CreatedAt != original.CreatedAt {
		t.Errorf("Round-trip CreatedAt = %v, want %v", parsed.CreatedAt, original.CreatedAt)
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "deck"))
	store.SetClock(func() time.Time {
		return time.Date(2024, time.July, 28, 9, 0, 0, 0, time.UTC)
	})
	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return store
}

func TestStoreOperations(t *testing.T) {
	store := NewStoreWithPath(filepath.Join(t.TempDir(), "deck"))

	if store.IsInitialized() {
		t.Error("Store should not be initialized yet")
	}
	if _, err := store.List(StatusFilter{}); !errors.As(err, &deckerrors.NotInitializedError{}) {
		t.Errorf("List before Init error = %v, want NotInitializedError", err)
	}

	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("Store should be initialized")
	}
	if err := store.Init(false); !errors.As(err, &deckerrors.AlreadyInitializedError{}) {
		t.Errorf("second Init error = %v, want AlreadyInitializedError", err)
	}
	if err := store.Init(true); err != nil {
		t.Errorf("forced Init failed: %v", err)
	}

	tk, err := store.CreateTask(NewTask{
		Title:       "Team Meeting",
		Description: "Weekly team sync",
		Priority:    task.PriorityHigh,
		Deadline:    calendar.NewDate(2024, time.July, 29),
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if tk.ID == "" {
		t.Error("Task ID should not be empty")
	}
	if tk.Status != task.StatusPending {
		t.Errorf("new task status = %q, want pending", tk.Status)
	}
	if !store.Exists(tk.ID) {
		t.Error("Exists should report the new task")
	}

	loaded, err := store.Load(tk.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Title != tk.Title || loaded.Deadline != tk.Deadline {
		t.Errorf("Loaded = %+v, want %+v", loaded, tk)
	}

	tasks, err := store.List(StatusFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("List length = %d, want 1", len(tasks))
	}

	if err = store.Delete(tk.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	var notFound deckerrors.TaskNotFoundError
	if _, err = store.Load(tk.ID); !errors.As(err, &notFound) {
		t.Errorf("Load after delete error = %v, want TaskNotFoundError", err)
	}
	if err = store.Delete(tk.ID); !errors.As(err, &notFound) {
		t.Errorf("second Delete error = %v, want TaskNotFoundError", err)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	store := newTestStore(t)

	if _, err := store.CreateTask(NewTask{Title: "  ", Priority: task.PriorityLow}); !errors.As(err, &deckerrors.MissingTitleError{}) {
		t.Errorf("blank title error = %v, want MissingTitleError", err)
	}
	var prioErr deckerrors.InvalidPriorityError
	if _, err := store.CreateTask(NewTask{Title: "x", Priority: "urgent"}); !errors.As(err, &prioErr) {
		t.Errorf("bad priority error = %v, want InvalidPriorityError", err)
	}
}

func TestCreateTaskRejectsInvalidDeadline(t *testing.T) {
	store := newTestStore(t)

	tests := []struct {
		name     string
		deadline calendar.Date
	}{
		{"missing deadline", calendar.Date{}},
		{"impossible day", calendar.NewDate(2023, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateTask(NewTask{Title: "no deadline", Priority: task.PriorityLow, Deadline: tt.deadline})
			var dateErr deckerrors.InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Errorf("CreateTask error = %v, want InvalidDateError", err)
			}
		})
	}

	ids, err := store.AllIDs()
	if err != nil {
		t.Fatalf("AllIDs failed: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("rejected tasks left files behind: %v", ids)
	}
}

func TestSaveRejectsInvalidDeadline(t *testing.T) {
	store := newTestStore(t)

	err := store.Save(&task.Task{ID: "abc", Title: "x", Priority: task.PriorityLow, Status: task.StatusPending})
	var dateErr deckerrors.InvalidDateError
	if !errors.As(err, &dateErr) {
		t.Errorf("Save error = %v, want InvalidDateError", err)
	}
	if store.Exists("abc") {
		t.Error("task with no deadline should not be written")
	}

	err = store.SaveNote(&note.Note{ID: "n1", Title: "undated"})
	if !errors.As(err, &dateErr) {
		t.Errorf("SaveNote error = %v, want InvalidDateError", err)
	}
}

func TestRecordIDsStayInsideStore(t *testing.T) {
	root := t.TempDir()
	store := NewStoreWithPath(filepath.Join(root, "data", "deck"))
	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	victim := filepath.Join(root, "victim.md")
	if err := os.WriteFile(victim, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	for _, id := range []string{"../../../victim", "../victim", "sub/dir", `sub\dir`, "..", ".", ""} {
		t.Run(id, func(t *testing.T) {
			var taskErr deckerrors.TaskNotFoundError
			if err := store.Delete(id); !errors.As(err, &taskErr) {
				t.Errorf("Delete(%q) error = %v, want TaskNotFoundError", id, err)
			}
			if _, err := store.Load(id); !errors.As(err, &taskErr) {
				t.Errorf("Load(%q) error = %v, want TaskNotFoundError", id, err)
			}
			if store.Exists(id) {
				t.Errorf("Exists(%q) = true", id)
			}
			save := &task.Task{ID: id, Title: "x", Deadline: calendar.NewDate(2024, time.July, 29)}
			if err := store.Save(save); !errors.As(err, &taskErr) {
				t.Errorf("Save(%q) error = %v, want TaskNotFoundError", id, err)
			}

			var noteErr deckerrors.NoteNotFoundError
			if err := store.DeleteNote(id); !errors.As(err, &noteErr) {
				t.Errorf("DeleteNote(%q) error = %v, want NoteNotFoundError", id, err)
			}
			if _, err := store.LoadNote(id); !errors.As(err, &noteErr) {
				t.Errorf("LoadNote(%q) error = %v, want NoteNotFoundError", id, err)
			}
		})
	}

	if _, err := os.Stat(victim); err != nil {
		t.Errorf("file outside the store was touched: %v", err)
	}
}

func TestListOrderAndFilter(t *testing.T) {
	store := newTestStore(t)

	create := func(title string, p task.Priority, deadline string) *task.Task {
		d, err := calendar.ParseDate(deadline)
		if err != nil {
			t.Fatalf("ParseDate: %v", err)
		}
		tk, err := store.CreateTask(NewTask{Title: title, Priority: p, Deadline: d})
		if err != nil {
			t.Fatalf("CreateTask: %v", err)
		}
		return tk
	}

	create("later", task.PriorityHigh, "2024-08-05")
	low := create("low same day", task.PriorityLow, "2024-07-30")
	create("high same day", task.PriorityHigh, "2024-07-30")
	create("earliest", task.PriorityMedium, "2024-07-28")

	low.Toggle()
	if err := store.Save(low); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	tasks, err := store.List(StatusFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"earliest", "high same day", "low same day", "later"}
	if len(tasks) != len(want) {
		t.Fatalf("List length = %d, want %d", len(tasks), len(want))
	}
	for i, title := range want {
		if tasks[i].Title != title {
			t.Errorf("position %d = %q, want %q", i, tasks[i].Title, title)
		}
	}

	completed, err := store.List(StatusFilter{Completed: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != low.ID {
		t.Errorf("completed filter returned %d tasks", len(completed))
	}
}

func TestListSkipsMalformedFiles(t *testing.T) {
	store := newTestStore(t)

	bad := filepath.Join(store.BasePath(), tasksDir, "broken.md")
	if err := os.WriteFile(bad, []byte("not frontmatter"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := store.CreateTask(NewTask{
		Title:    "ok",
		Priority: task.PriorityLow,
		Deadline: calendar.NewDate(2024, time.July, 30),
	}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	tasks, err := store.List(StatusFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("List length = %d, want 1", len(tasks))
	}

	ids, err := store.AllIDs()
	if err != nil {
		t.Fatalf("AllIDs failed: %v", err)
	}
	if !ids["broken"] {
		t.Error("AllIDs should still reserve the malformed file's ID")
	}
}

func TestNoteOperations(t *testing.T) {
	store := newTestStore(t)

	n, err := store.CreateNote(NewNote{Title: "Weekend Plans", Content: "Farmer's market"})
	if err != nil {
		t.Fatalf("CreateNote failed: %v", err)
	}
	if n.CreatedAt != calendar.NewDate(2024, time.July, 28) {
		t.Errorf("CreatedAt = %v, want clock date", n.CreatedAt)
	}

	older := &note.Note{
		ID:        "older",
		Title:     "Recipe Ideas",
		CreatedAt: calendar.NewDate(2024, time.July, 24),
	}
	if err = store.SaveNote(older); err != nil {
		t.Fatalf("SaveNote failed: %v", err)
	}

	notes, err := store.ListNotes()
	if err != nil {
		t.Fatalf("ListNotes failed: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != n.ID || notes[1].ID != "older" {
		t.Fatalf("ListNotes order wrong: %+v", notes)
	}

	if err = store.DeleteNote("older"); err != nil {
		t.Fatalf("DeleteNote failed: %v", err)
	}
	var notFound deckerrors.NoteNotFoundError
	if _, err = store.LoadNote("older"); !errors.As(err, &notFound) {
		t.Errorf("LoadNote after delete error = %v, want NoteNotFoundError", err)
	}

	if _, err = store.CreateNote(NewNote{}); !errors.As(err, &deckerrors.MissingTitleError{}) {
		t.Errorf("blank note error = %v, want MissingTitleError", err)
	}
}

func TestResolveNoteID(t *testing.T) {
	store := newTestStore(t)
	for _, id := range []string{"3fa85f64", "3fb11c02", "9c4e0d1a"} {
		n := &note.Note{ID: id, Title: id, CreatedAt: calendar.NewDate(2024, time.July, 28)}
		if err := store.SaveNote(n); err != nil {
			t.Fatalf("SaveNote failed: %v", err)
		}
	}

	tests := []struct {
		name    string
		prefix  string
		want    string
		wantErr error
	}{
		{"full id", "9c4e0d1a", "9c4e0d1a", nil},
		{"unique prefix", "3fa", "3fa85f64", nil},
		{"ambiguous prefix", "3f", "", deckerrors.AmbiguousIDError{Prefix: "3f", Matches: 2}},
		{"no match", "ff", "", deckerrors.NoteNotFoundError{ID: "ff"}},
		{"blank prefix", "", "", deckerrors.NoteNotFoundError{ID: ""}},
		{"whitespace prefix", "  ", "", deckerrors.NoteNotFoundError{ID: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ResolveNoteID(tt.prefix)
			if tt.wantErr != nil {
				if err != tt.wantErr { //nolint:errorlint // value errors compare by equality
					t.Errorf("ResolveNoteID(%q) error = %v, want %v", tt.prefix, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ResolveNoteID(%q) = %q, %v; want %q", tt.prefix, got, err, tt.want)
			}
		})
	}
}

func TestStatusFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter StatusFilter
		status task.Status
		want   bool
	}{
		{"empty filter matches pending", StatusFilter{}, task.StatusPending, true},
		{"empty filter matches completed", StatusFilter{}, task.StatusCompleted, true},
		{"pending filter matches pending", StatusFilter{Pending: true}, task.StatusPending, true},
		{"pending filter rejects completed", StatusFilter{Pending: true}, task.StatusCompleted, false},
		{"completed filter matches completed", StatusFilter{Completed: true}, task.StatusCompleted, true},
		{"filter rejects unknown", StatusFilter{Pending: true}, task.Status("other"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.status); got != tt.want {
				t.Errorf("filter.Matches(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "work", "work"},
		{"name with spaces", "Side Projects", "Side-Projects"},
		{"name with special chars", "home/my.stuff-v2", "home-my-stuff-v2"},
		{"root path", "/", ""},
		{"trailing slash", "/Users/john/", "Users-john"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePath(tt.input); got != tt.want {
				t.Errorf("SanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProfileDir(t *testing.T) {
	if got := ProfileDir("/data", "Side Projects"); got != filepath.Join("/data", "Side-Projects") {
		t.Errorf("ProfileDir = %q", got)
	}
	if got := ProfileDir("/data", "///"); got != filepath.Join("/data", DefaultProfile) {
		t.Errorf("ProfileDir for empty name = %q", got)
	}
}
