// Package tasks owns the task collection and the filter/sort/search selection
package tasks

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// CopySuffix is appended to the title of a duplicated task
const CopySuffix = " (Copy)"

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// IDGenerator supplies fresh task identifiers
type IDGenerator interface {
	NewID() string
}

// IDFunc adapts a function to the IDGenerator interface
type IDFunc func() string

// NewID implements IDGenerator
func (f IDFunc) NewID() string { return f() }

// StoreOption configures a Store
type StoreOption func(*Store)

// WithClock overrides the time source
func WithClock(c Clock) StoreOption {
	return func(s *Store) { s.clock = c }
}

// WithIDGenerator overrides the ID source
func WithIDGenerator(g IDGenerator) StoreOption {
	return func(s *Store) { s.ids = g }
}

// WithSelection sets the initial filter/sort/search state
func WithSelection(sel domain.Selection) StoreOption {
	return func(s *Store) {
		s.SetFilter(sel.Filter)
		s.SetSort(sel.Sort)
		s.SetSearchQuery(sel.Query)
	}
}

// Store is the single owner of the task collection. It is not safe for
// concurrent use; every call is expected to come from the UI update loop.
type Store struct {
	tasks   []domain.Task // most recent first
	sel     domain.Selection
	version uint64
	cache   viewCache

	clock  Clock
	ids    IDGenerator
	logger *slog.Logger
}

// viewCache holds the last derived view and the key it was computed for
type viewCache struct {
	valid   bool
	version uint64
	sel     domain.Selection
	day     time.Time
	expires time.Time // next pending due instant; zero when none
	tasks   []domain.Task
}

// NewStore creates an empty store
func NewStore(logger *slog.Logger, opts ...StoreOption) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		tasks:  []domain.Task{},
		sel:    domain.DefaultSelection(),
		clock:  ClockFunc(time.Now),
		ids:    IDFunc(uuid.NewString),
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a todo task from the form and puts it first.
// A blank title is rejected without touching the collection.
func (s *Store) Add(form domain.TaskForm) (domain.Task, bool) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		s.logger.Debug("rejected task with blank title")
		return domain.Task{}, false
	}

	priority := form.Priority
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}
	category := form.Category
	if !category.Valid() {
		category = domain.CategoryOther
	}

	now := s.clock.Now()
	task := domain.Task{
		ID:          s.ids.NewID(),
		Title:       title,
		Description: strings.TrimSpace(form.Description),
		Status:      domain.StatusTodo,
		Priority:    priority,
		Category:    category,
		Tags:        domain.NormalizeTags(form.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if form.DueDate != nil {
		due := *form.DueDate
		task.DueDate = &due
	}
	if form.EstimatedTime != nil && *form.EstimatedTime > 0 {
		est := *form.EstimatedTime
		task.EstimatedTime = &est
	}

	s.prepend(task)
	s.logger.Debug("task added", "id", task.ID, "title", task.Title)
	return task.Clone(), true
}

// ToggleCompletion flips between completed and todo
func (s *Store) ToggleCompletion(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	next := domain.StatusCompleted
	if s.tasks[i].Status == domain.StatusCompleted {
		next = domain.StatusTodo
	}
	s.applyStatus(i, next)
	s.logger.Debug("task toggled", "id", id, "status", next)
	return true
}

// SetStatus sets any of the four statuses explicitly
func (s *Store) SetStatus(id string, status domain.Status) bool {
	if !status.Valid() {
		return false
	}
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.applyStatus(i, status)
	s.logger.Debug("task status set", "id", id, "status", status)
	return true
}

// Update merges the patch into the task and stamps UpdatedAt
func (s *Store) Update(id string, patch domain.TaskPatch) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	task := &s.tasks[i]
	patch.ApplyTo(task)
	task.UpdatedAt = s.stamp(*task)
	s.touch()
	s.logger.Debug("task updated", "id", id)
	return true
}

// Remove deletes the task with the given id
func (s *Store) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.touch()
	s.logger.Debug("task removed", "id", id)
	return true
}

// ClearCompleted removes every completed task and returns how many went
func (s *Store) ClearCompleted() int {
	kept := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Status != domain.StatusCompleted {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	if removed > 0 {
		s.tasks = kept
		s.touch()
	}
	s.logger.Debug("cleared completed tasks", "count", removed)
	return removed
}

// Duplicate copies a task's content into a new todo task placed first
func (s *Store) Duplicate(id string) (domain.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}

	now := s.clock.Now()
	dup := s.tasks[i].Clone()
	dup.ID = s.ids.NewID()
	dup.Title = dup.Title + CopySuffix
	dup.Status = domain.StatusTodo
	dup.CompletedAt = nil
	dup.CreatedAt = now
	dup.UpdatedAt = now

	s.prepend(dup)
	s.logger.Debug("task duplicated", "source", id, "id", dup.ID)
	return dup.Clone(), true
}

// SetFilter replaces the active filter; unknown values are ignored
func (s *Store) SetFilter(f domain.Filter) {
	if f.Valid() {
		s.sel.Filter = f
	}
}

// SetSort replaces the active sort; unknown values are ignored
func (s *Store) SetSort(o domain.Sort) {
	if o.Valid() {
		s.sel.Sort = o
	}
}

// SetSearchQuery replaces the search query
func (s *Store) SetSearchQuery(q string) {
	s.sel.Query = q
}

// Filter returns the active filter
func (s *Store) Filter() domain.Filter { return s.sel.Filter }

// Sort returns the active sort
func (s *Store) Sort() domain.Sort { return s.sel.Sort }

// SearchQuery returns the active search query
func (s *Store) SearchQuery() string { return s.sel.Query }

// Selection returns the full selection state
func (s *Store) Selection() domain.Selection { return s.sel }

// Version increases on every change to the collection
func (s *Store) Version() uint64 { return s.version }

// Len returns the number of tasks in the collection
func (s *Store) Len() int { return len(s.tasks) }

// Get returns a copy of the task with the given id
func (s *Store) Get(id string) (domain.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// All returns copies of every task in collection order
func (s *Store) All() []domain.Task {
	return cloneAll(s.tasks)
}

// View returns the filtered and sorted tasks for the current selection.
// The result is cached per (version, selection, day) and dropped early when
// a pending task's due instant passes, since that moves it into overdue.
func (s *Store) View() []domain.Task {
	now := s.clock.Now()
	day := domain.StartOfDay(now)

	c := &s.cache
	stale := !c.expires.IsZero() && !now.Before(c.expires)
	if !c.valid || stale || c.version != s.version || c.sel != s.sel || !c.day.Equal(day) {
		c.tasks = domain.Derive(s.tasks, s.sel, now)
		c.version = s.version
		c.sel = s.sel
		c.day = day
		c.expires = s.nextDue(now)
		c.valid = true
	}
	return cloneAll(c.tasks)
}

// nextDue returns the earliest due instant after now among tasks that are
// not completed, or the zero time
func (s *Store) nextDue(now time.Time) time.Time {
	var next time.Time
	for _, t := range s.tasks {
		if t.DueDate == nil || t.IsCompleted() || !t.DueDate.After(now) {
			continue
		}
		if next.IsZero() || t.DueDate.Before(next) {
			next = *t.DueDate
		}
	}
	return next
}

// Stats aggregates the whole collection, ignoring the current selection
func (s *Store) Stats() domain.Stats {
	return domain.ComputeStats(s.tasks, s.clock.Now())
}

func (s *Store) prepend(t domain.Task) {
	s.tasks = append([]domain.Task{t}, s.tasks...)
	s.touch()
}

// applyStatus moves the task at i to status, keeping CompletedAt set
// exactly when the status is completed
func (s *Store) applyStatus(i int, status domain.Status) {
	task := &s.tasks[i]
	now := s.stamp(*task)

	task.Status = status
	if status == domain.StatusCompleted {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
	task.UpdatedAt = now
	s.touch()
}

// stamp returns the current time, never earlier than the task's last update
func (s *Store) stamp(t domain.Task) time.Time {
	now := s.clock.Now()
	if now.Before(t.UpdatedAt) {
		return t.UpdatedAt
	}
	return now
}

func (s *Store) touch() {
	s.version++
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}
