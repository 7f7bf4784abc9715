package tasks

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by one second on every read unless frozen
type fakeClock struct {
	now    time.Time
	step   time.Duration
	frozen bool
}

func (c *fakeClock) Now() time.Time {
	t := c.now
	if !c.frozen {
		c.now = c.now.Add(c.step)
	}
	return t
}

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{
		now:  time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local),
		step: time.Second,
	}
	n := 0
	ids := IDFunc(func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewStore(logger, WithClock(clock), WithIDGenerator(ids)), clock
}

func mustAdd(t *testing.T, s *Store, title string) domain.Task {
	t.Helper()
	task, ok := s.Add(domain.NewTaskForm(title))
	require.True(t, ok)
	return task
}

// assertInvariants checks CompletedAt iff completed and UpdatedAt >= CreatedAt
func assertInvariants(t *testing.T, s *Store) {
	t.Helper()
	for _, task := range s.All() {
		assert.Equal(t, task.Status == domain.StatusCompleted, task.CompletedAt != nil,
			"task %s: status %s with CompletedAt %v", task.ID, task.Status, task.CompletedAt)
		assert.False(t, task.UpdatedAt.Before(task.CreatedAt), "task %s: UpdatedAt before CreatedAt", task.ID)
	}
}

func TestStore_Add(t *testing.T) {
	s, _ := newTestStore(t)

	est := 30
	task, ok := s.Add(domain.TaskForm{
		Title:         "  Write report  ",
		Description:   " quarterly ",
		Priority:      domain.PriorityHigh,
		Category:      domain.CategoryWork,
		Tags:          []string{"q1", "q1", " "},
		EstimatedTime: &est,
	})
	require.True(t, ok)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "quarterly", task.Description)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.Equal(t, []string{"q1"}, task.Tags)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	assert.Nil(t, task.CompletedAt)
	require.NotNil(t, task.EstimatedTime)
	assert.Equal(t, 30, *task.EstimatedTime)
}

func TestStore_Add_PrependsMostRecentFirst(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "first")
	mustAdd(t, s, "second")
	mustAdd(t, s, "third")

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)
}

func TestStore_Add_RejectsBlankTitle(t *testing.T) {
	s, _ := newTestStore(t)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, ok := s.Add(domain.NewTaskForm(title))
		assert.False(t, ok, "title %q should be rejected", title)
	}
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, uint64(0), s.Version())
}

func TestStore_Add_DefaultsInvalidEnums(t *testing.T) {
	s, _ := newTestStore(t)
	task, ok := s.Add(domain.TaskForm{Title: "x"})
	require.True(t, ok)
	assert.Equal(t, domain.PriorityMedium, task.Priority)
	assert.Equal(t, domain.CategoryOther, task.Category)
}

func TestStore_ToggleCompletion(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "toggle me")

	require.True(t, s.ToggleCompletion(task.ID))
	done, _ := s.Get(task.ID)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.UpdatedAt.After(task.UpdatedAt))

	require.True(t, s.ToggleCompletion(task.ID))
	back, _ := s.Get(task.ID)
	assert.Equal(t, task.Status, back.Status)
	assert.Nil(t, back.CompletedAt)
	assert.NotEqual(t, task.UpdatedAt, back.UpdatedAt)
	assert.True(t, back.UpdatedAt.After(done.UpdatedAt))

	assertInvariants(t, s)
}

func TestStore_ToggleCompletion_FromOtherStatuses(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusInProgress, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			s, _ := newTestStore(t)
			task := mustAdd(t, s, "x")
			require.True(t, s.SetStatus(task.ID, status))

			require.True(t, s.ToggleCompletion(task.ID))
			got, _ := s.Get(task.ID)
			assert.Equal(t, domain.StatusCompleted, got.Status)
			assert.NotNil(t, got.CompletedAt)
		})
	}
}

func TestStore_SetStatus(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "x")

	for _, status := range []domain.Status{
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusCompleted,
		domain.StatusTodo,
	} {
		require.True(t, s.SetStatus(task.ID, status))
		got, _ := s.Get(task.ID)
		assert.Equal(t, status, got.Status)
		assertInvariants(t, s)
	}

	assert.False(t, s.SetStatus(task.ID, domain.Status("blocked")))
	got, _ := s.Get(task.ID)
	assert.Equal(t, domain.StatusTodo, got.Status)
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "old")

	title := "new"
	actual := 20
	require.True(t, s.Update(task.ID, domain.TaskPatch{Title: &title, ActualTime: &actual}))

	got, _ := s.Get(task.ID)
	assert.Equal(t, task.ID, got.ID)
	assert.Equal(t, "new", got.Title)
	assert.Equal(t, 20, *got.ActualTime)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
}

func TestStore_Update_EmptyPatchStillStamps(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "x")

	require.True(t, s.Update(task.ID, domain.TaskPatch{}))
	got, _ := s.Get(task.ID)
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))
}

func TestStore_UpdatedAtNeverGoesBackwards(t *testing.T) {
	s, clock := newTestStore(t)
	task := mustAdd(t, s, "x")

	clock.now = clock.now.Add(-time.Hour)
	require.True(t, s.ToggleCompletion(task.ID))

	got, _ := s.Get(task.ID)
	assert.False(t, got.UpdatedAt.Before(task.UpdatedAt))
	assertInvariants(t, s)
}

func TestStore_UnknownIDsAreNoOps(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "x")
	before := s.All()
	version := s.Version()

	assert.False(t, s.ToggleCompletion("missing"))
	assert.False(t, s.SetStatus("missing", domain.StatusCompleted))
	assert.False(t, s.Update("missing", domain.TaskPatch{}))
	assert.False(t, s.Remove("missing"))
	_, ok := s.Duplicate("missing")
	assert.False(t, ok)
	_, ok = s.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, before, s.All())
	assert.Equal(t, version, s.Version())
}

func TestStore_Remove(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")

	require.True(t, s.Remove(b.ID))

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, c.ID, all[0].ID)
	assert.Equal(t, a.ID, all[1].ID)
}

func TestStore_ClearCompleted(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")
	d := mustAdd(t, s, "d")

	require.True(t, s.ToggleCompletion(a.ID))
	require.True(t, s.SetStatus(c.ID, domain.StatusCompleted))
	require.True(t, s.SetStatus(d.ID, domain.StatusCancelled))

	survivorsBefore := map[string]domain.Task{}
	for _, task := range s.All() {
		if task.Status != domain.StatusCompleted {
			survivorsBefore[task.ID] = task
		}
	}

	assert.Equal(t, 2, s.ClearCompleted())

	all := s.All()
	require.Len(t, all, 2)
	for _, task := range all {
		assert.NotEqual(t, domain.StatusCompleted, task.Status)
		assert.Equal(t, survivorsBefore[task.ID], task, "survivor %s changed", task.ID)
	}
	assert.Contains(t, []string{all[0].ID, all[1].ID}, b.ID)
	assert.Contains(t, []string{all[0].ID, all[1].ID}, d.ID)

	assert.Equal(t, 0, s.ClearCompleted())
}

func TestStore_Duplicate(t *testing.T) {
	s, _ := newTestStore(t)
	src, _ := s.Add(domain.TaskForm{
		Title:    "Plan",
		Priority: domain.PriorityUrgent,
		Category: domain.CategoryLearning,
		Tags:     []string{"go"},
	})
	require.True(t, s.ToggleCompletion(src.ID))
	completed, _ := s.Get(src.ID)

	dup, ok := s.Duplicate(src.ID)
	require.True(t, ok)

	assert.NotEqual(t, src.ID, dup.ID)
	assert.Equal(t, "Plan (Copy)", dup.Title)
	assert.Equal(t, domain.StatusTodo, dup.Status)
	assert.Nil(t, dup.CompletedAt)
	assert.Equal(t, domain.PriorityUrgent, dup.Priority)
	assert.Equal(t, domain.CategoryLearning, dup.Category)
	assert.Equal(t, []string{"go"}, dup.Tags)
	assert.True(t, dup.CreatedAt.After(src.CreatedAt))
	assert.Equal(t, dup.CreatedAt, dup.UpdatedAt)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, dup.ID, all[0].ID)

	original, _ := s.Get(src.ID)
	assert.Equal(t, completed, original)
	assertInvariants(t, s)
}

func TestStore_ReturnedTasksAreCopies(t *testing.T) {
	s, _ := newTestStore(t)
	task, _ := s.Add(domain.TaskForm{Title: "x", Tags: []string{"a"}})

	task.Tags[0] = "mutated"
	view := s.View()
	view[0].Tags[0] = "mutated"

	got, _ := s.Get(task.ID)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestStore_SelectionSetters(t *testing.T) {
	s, _ := newTestStore(t)

	s.SetFilter(domain.FilterOverdue)
	s.SetSort(domain.SortByTitle)
	s.SetSearchQuery("milk")
	assert.Equal(t, domain.Selection{Filter: domain.FilterOverdue, Sort: domain.SortByTitle, Query: "milk"}, s.Selection())

	s.SetFilter(domain.Filter("someday"))
	s.SetSort(domain.Sort("random"))
	assert.Equal(t, domain.FilterOverdue, s.Filter())
	assert.Equal(t, domain.SortByTitle, s.Sort())
}

func TestStore_WithSelection(t *testing.T) {
	s := NewStore(nil, WithSelection(domain.Selection{Filter: domain.FilterTodo, Sort: domain.SortByPriority}))
	assert.Equal(t, domain.FilterTodo, s.Filter())
	assert.Equal(t, domain.SortByPriority, s.Sort())
}

func TestStore_View(t *testing.T) {
	s, _ := newTestStore(t)
	low, _ := s.Add(domain.TaskForm{Title: "Buy milk", Priority: domain.PriorityLow, Tags: []string{"Shopping"}})
	urgent, _ := s.Add(domain.TaskForm{Title: "Fix prod", Priority: domain.PriorityUrgent})
	medium, _ := s.Add(domain.TaskForm{Title: "Read book", Priority: domain.PriorityMedium, Tags: []string{"health"}})

	t.Run("default is newest first", func(t *testing.T) {
		assert.Equal(t, []string{medium.ID, urgent.ID, low.ID}, viewIDs(s))
	})

	t.Run("priority sort", func(t *testing.T) {
		s.SetSort(domain.SortByPriority)
		assert.Equal(t, []string{urgent.ID, medium.ID, low.ID}, viewIDs(s))
	})

	t.Run("search by tag", func(t *testing.T) {
		s.SetSearchQuery("shop")
		assert.Equal(t, []string{low.ID}, viewIDs(s))
		s.SetSearchQuery("")
	})

	t.Run("view refreshes after mutation", func(t *testing.T) {
		s.SetFilter(domain.FilterCompleted)
		assert.Empty(t, viewIDs(s))
		require.True(t, s.ToggleCompletion(low.ID))
		assert.Equal(t, []string{low.ID}, viewIDs(s))
	})

	t.Run("view does not reorder the collection", func(t *testing.T) {
		all := s.All()
		assert.Equal(t, medium.ID, all[0].ID)
		assert.Equal(t, low.ID, all[2].ID)
	})
}

func TestStore_View_Deterministic(t *testing.T) {
	s, clock := newTestStore(t)
	clock.frozen = true
	for i := 0; i < 5; i++ {
		mustAdd(t, s, "same")
	}
	s.SetSort(domain.SortByTitle)

	first := viewIDs(s)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, viewIDs(s))
	}
}

func TestStore_View_RefreshesAcrossMidnight(t *testing.T) {
	s, clock := newTestStore(t)
	clock.frozen = true

	due := time.Date(2024, 3, 16, 10, 0, 0, 0, time.Local)
	task, _ := s.Add(domain.TaskForm{Title: "tomorrow", DueDate: &due})
	s.SetFilter(domain.FilterToday)
	assert.Empty(t, viewIDs(s))

	clock.now = time.Date(2024, 3, 16, 8, 0, 0, 0, time.Local)
	assert.Equal(t, []string{task.ID}, viewIDs(s))
}

func TestStore_Stats(t *testing.T) {
	s, _ := newTestStore(t)
	assert.Equal(t, 0, s.Stats().ProductivityScore)

	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	require.True(t, s.ToggleCompletion(a.ID))
	require.True(t, s.ToggleCompletion(b.ID))

	stats := s.Stats()
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Completed)
	assert.Equal(t, 2, stats.CompletedToday)
	assert.Equal(t, 100, stats.ProductivityScore)

	s.SetFilter(domain.FilterTodo)
	assert.Equal(t, 2, s.Stats().Total, "stats ignore the selection")
}

func viewIDs(s *Store) []string {
	view := s.View()
	out := make([]string, len(view))
	for i, t := range view {
		out[i] = t.ID
	}
	return out
}

func TestStore_ViewNoticesDueTimePassing(t *testing.T) {
	s, clock := newTestStore(t)
	clock.frozen = true

	task := mustAdd(t, s, "Call plumber")
	due := clock.now.Add(2*time.Hour + 30*time.Minute)
	require.True(t, s.Update(task.ID, domain.TaskPatch{DueDate: &due}))

	s.SetFilter(domain.FilterOverdue)
	assert.Empty(t, s.View())

	clock.now = clock.now.Add(time.Hour)
	assert.Empty(t, s.View(), "still before the due time")

	clock.now = due.Add(time.Minute)
	view := s.View()
	require.Len(t, view, 1, "same day, no mutation, but the due time has passed")
	assert.Equal(t, task.ID, view[0].ID)
}
