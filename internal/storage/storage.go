package storage

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/calendar"
	deckerrors "github.com/taskdeck/taskdeck/internal/errors"
	"github.com/taskdeck/taskdeck/internal/note"
	"github.com/taskdeck/taskdeck/internal/task"
)

const (
	tasksDir = "tasks"
	notesDir = "notes"
	fileExt  = ".md"
)

// Store handles task and note file operations for one profile.
type Store struct {
	basePath string
	logger   *slog.Logger
	now      func() time.Time
}

// NewStore creates a Store rooted at <dataDir>/<sanitized-profile>/.
func NewStore(dataDir, profile string, logger *slog.Logger) *Store {
	s := NewStoreWithPath(ProfileDir(dataDir, profile))
	if logger != nil {
		s.logger = logger
	}
	return s
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string) *Store {
	return &Store{
		basePath: path,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// SetClock replaces the clock used to stamp new records.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// IsInitialized checks if the profile directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the profile directory and its record folders.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return deckerrors.AlreadyInitializedError{}
	}
	for _, dir := range []string{tasksDir, notesDir} {
		//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
		if err := os.MkdirAll(filepath.Join(s.basePath, dir), 0o755); err != nil {
			return err
		}
	}
	s.logger.Debug("initialized store", "path", s.basePath)
	return nil
}

// validID reports whether id names a file directly inside a record folder.
func validID(id string) bool {
	return id != "" &&
		id != "." &&
		!strings.Contains(id, "..") &&
		!strings.ContainsAny(id, `/\`) &&
		filepath.Base(id) == id
}

func (s *Store) taskPath(id string) string {
	return filepath.Join(s.basePath, tasksDir, id+fileExt)
}

func (s *Store) notePath(id string) string {
	return filepath.Join(s.basePath, notesDir, id+fileExt)
}

// Exists checks if a task with the given ID exists.
func (s *Store) Exists(id string) bool {
	if !validID(id) {
		return false
	}
	_, err := os.Stat(s.taskPath(id))
	return err == nil
}

// Save writes a task to disk.
func (s *Store) Save(t *task.Task) error {
	if !s.IsInitialized() {
		return deckerrors.NotInitializedError{}
	}
	if !validID(t.ID) {
		return deckerrors.TaskNotFoundError{ID: t.ID}
	}
	if !t.Deadline.Valid() {
		return deckerrors.InvalidDateError{Value: t.Deadline.String()}
	}
	content, err := SerializeMarkdown(t)
	if err != nil {
		return err
	}
	if err = s.ensureDir(tasksDir); err != nil {
		return err
	}
	//nolint:gosec // G306: 0644 is appropriate for user-readable task files
	return os.WriteFile(s.taskPath(t.ID), content, 0o644)
}

// Load reads a task from disk.
func (s *Store) Load(id string) (*task.Task, error) {
	if !s.IsInitialized() {
		return nil, deckerrors.NotInitializedError{}
	}
	if !validID(id) {
		return nil, deckerrors.TaskNotFoundError{ID: id}
	}
	content, err := os.ReadFile(s.taskPath(id))
	if os.IsNotExist(err) {
		return nil, deckerrors.TaskNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return ParseMarkdown(content)
}

// Delete removes a task file.
func (s *Store) Delete(id string) error {
	if !s.IsInitialized() {
		return deckerrors.NotInitializedError{}
	}
	if !validID(id) {
		return deckerrors.TaskNotFoundError{ID: id}
	}
	err := os.Remove(s.taskPath(id))
	if os.IsNotExist(err) {
		return deckerrors.TaskNotFoundError{ID: id}
	}
	return err
}

// List returns tasks matching filter ordered by deadline, then priority, then creation time.
func (s *Store) List(filter StatusFilter) ([]*task.Task, error) {
	ids, err := s.recordIDs(tasksDir)
	if err != nil {
		return nil, err
	}

	tasks := []*task.Task{}
	for _, id := range ids {
		t, loadErr := s.Load(id)
		if loadErr != nil {
			s.logger.Debug("skipping malformed task file", "id", id, "error", loadErr)
			continue
		}
		if filter.Matches(t.Status) {
			tasks = append(tasks, t)
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return taskLess(tasks[i], tasks[j])
	})

	return tasks, nil
}

// AllIDs returns all task IDs (for ID generation collision checking).
func (s *Store) AllIDs() (map[string]bool, error) {
	ids, err := s.recordIDs(tasksDir)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// NewTask holds the caller-supplied fields of a task.
type NewTask struct {
	Title       string
	Description string
	Priority    task.Priority
	Deadline    calendar.Date
	Category    *string
}

// CreateTask creates a new pending task with a generated ID.
func (s *Store) CreateTask(in NewTask) (*task.Task, error) {
	if !s.IsInitialized() {
		return nil, deckerrors.NotInitializedError{}
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, deckerrors.MissingTitleError{}
	}
	if !task.IsValidPriority(in.Priority) {
		return nil, deckerrors.InvalidPriorityError{Value: string(in.Priority)}
	}
	if !in.Deadline.Valid() {
		return nil, deckerrors.InvalidDateError{Value: in.Deadline.String()}
	}

	createdAt := s.now().UTC()

	existingIDs, err := s.AllIDs()
	if err != nil {
		return nil, err
	}
	id := task.GenerateID(in.Title, in.Deadline, createdAt, existingIDs)
	if existingIDs[id] {
		return nil, deckerrors.AlreadyExistsError{ID: id}
	}

	t := &task.Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      task.StatusPending,
		Deadline:    in.Deadline,
		Category:    in.Category,
		CreatedAt:   createdAt,
	}

	if err = s.Save(t); err != nil {
		return nil, err
	}
	s.logger.Debug("created task", "id", t.ID, "deadline", t.Deadline.String())
	return t, nil
}

// SaveNote writes a note to disk.
func (s *Store) SaveNote(n *note.Note) error {
	if !s.IsInitialized() {
		return deckerrors.NotInitializedError{}
	}
	if !validID(n.ID) {
		return deckerrors.NoteNotFoundError{ID: n.ID}
	}
	if !n.CreatedAt.Valid() {
		return deckerrors.InvalidDateError{Value: n.CreatedAt.String()}
	}
	content, err := SerializeNoteMarkdown(n)
	if err != nil {
		return err
	}
	if err = s.ensureDir(notesDir); err != nil {
		return err
	}
	//nolint:gosec // G306: 0644 is appropriate for user-readable note files
	return os.WriteFile(s.notePath(n.ID), content, 0o644)
}

// LoadNote reads a note from disk.
func (s *Store) LoadNote(id string) (*note.Note, error) {
	if !s.IsInitialized() {
		return nil, deckerrors.NotInitializedError{}
	}
	if !validID(id) {
		return nil, deckerrors.NoteNotFoundError{ID: id}
	}
	content, err := os.ReadFile(s.notePath(id))
	if os.IsNotExist(err) {
		return nil, deckerrors.NoteNotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}
	return ParseNoteMarkdown(content)
}

// DeleteNote removes a note file.
func (s *Store) DeleteNote(id string) error {
	if !s.IsInitialized() {
		return deckerrors.NotInitializedError{}
	}
	if !validID(id) {
		return deckerrors.NoteNotFoundError{ID: id}
	}
	err := os.Remove(s.notePath(id))
	if os.IsNotExist(err) {
		return deckerrors.NoteNotFoundError{ID: id}
	}
	return err
}

// ResolveNoteID expands a unique ID prefix to the full note ID.
func (s *Store) ResolveNoteID(prefix string) (string, error) {
	if strings.TrimSpace(prefix) == "" {
		return "", deckerrors.NoteNotFoundError{ID: prefix}
	}
	ids, err := s.recordIDs(notesDir)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", deckerrors.NoteNotFoundError{ID: prefix}
	case 1:
		return matches[0], nil
	default:
		return "", deckerrors.AmbiguousIDError{Prefix: prefix, Matches: len(matches)}
	}
}

// ListNotes returns all notes, newest first.
func (s *Store) ListNotes() ([]*note.Note, error) {
	ids, err := s.recordIDs(notesDir)
	if err != nil {
		return nil, err
	}

	notes := []*note.Note{}
	for _, id := range ids {
		n, loadErr := s.LoadNote(id)
		if loadErr != nil {
			s.logger.Debug("skipping malformed note file", "id", id, "error", loadErr)
			continue
		}
		notes = append(notes, n)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		if c := notes[i].CreatedAt.Compare(notes[j].CreatedAt); c != 0 {
			return c > 0
		}
		return notes[i].Title < notes[j].Title
	})

	return notes, nil
}

// NewNote holds the caller-supplied fields of a note.
type NewNote struct {
	Title   string
	Content string
	Pinned  bool
	Color   *string
}

// CreateNote creates a note stamped with today's date.
func (s *Store) CreateNote(in NewNote) (*note.Note, error) {
	if !s.IsInitialized() {
		return nil, deckerrors.NotInitializedError{}
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, deckerrors.MissingTitleError{}
	}

	n := &note.Note{
		ID:        note.NewID(),
		Title:     in.Title,
		Content:   in.Content,
		Pinned:    in.Pinned,
		CreatedAt: calendar.Today(s.now()),
		Color:     in.Color,
	}
	if err := s.SaveNote(n); err != nil {
		return nil, err
	}
	s.logger.Debug("created note", "id", n.ID)
	return n, nil
}

// recordIDs lists the IDs of the markdown files in one record folder.
func (s *Store) recordIDs(dir string) ([]string, error) {
	if !s.IsInitialized() {
		return nil, deckerrors.NotInitializedError{}
	}

	entries, err := os.ReadDir(filepath.Join(s.basePath, dir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(entry.Name(), fileExt))
	}
	return ids, nil
}

func (s *Store) ensureDir(dir string) error {
	//nolint:gosec // G301: 0755 is appropriate for user-accessible data directory
	return os.MkdirAll(filepath.Join(s.basePath, dir), 0o755)
}

// taskLess orders by deadline, then priority (high first), then creation time.
func taskLess(a, b *task.Task) bool {
	if c := a.Deadline.Compare(b.Deadline); c != 0 {
		return c < 0
	}
	pa := task.PriorityOrder(a.Priority)
	pb := task.PriorityOrder(b.Priority)
	if pa != pb {
		return pa < pb
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

// StatusFilter controls which statuses to include in list results.
type StatusFilter struct {
	Pending   bool
	Completed bool
}

// Matches returns true if the status should be included.
func (f StatusFilter) Matches(status task.Status) bool {
	if !f.Pending && !f.Completed {
		return true
	}
	switch status {
	case task.StatusPending:
		return f.Pending
	case task.StatusCompleted:
		return f.Completed
	default:
		return false
	}
}
