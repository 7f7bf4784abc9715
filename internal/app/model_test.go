package app

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/notify"
	"github.com/riordanpawley/taskflow/internal/services/pomodoro"
	"github.com/riordanpawley/taskflow/internal/services/tasks"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local)

// Helper to create a test model with three tasks. The list shows them
// newest first: "Call mom", "Buy milk", "Write report".
func newTestModel(t *testing.T, cfg *config.Config) Model {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	clock := func() time.Time { return testNow }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	n := 0
	store := tasks.NewStore(logger,
		tasks.WithClock(tasks.ClockFunc(clock)),
		tasks.WithIDGenerator(tasks.IDFunc(func() string {
			n++
			return fmt.Sprintf("task-%d", n)
		})),
	)
	for _, title := range []string{"Write report", "Buy milk", "Call mom"} {
		_, ok := store.Add(domain.NewTaskForm(title))
		require.True(t, ok)
	}

	m := New(cfg, WithLogger(logger), WithStore(store), WithClock(clock))
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return updated
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, key(k))
	}
	return m
}

func currentTitle(t *testing.T, m Model) string {
	t.Helper()
	task, ok := m.list.Current()
	require.True(t, ok, "no task under cursor")
	return task.Title
}

func TestNew(t *testing.T) {
	m := newTestModel(t, nil)

	assert.Equal(t, types.TabDashboard, m.tab)
	assert.Equal(t, types.ModeNormal, m.mode())
	assert.Equal(t, 3, m.list.Len())
	assert.Equal(t, "Call mom", currentTitle(t, m))
	assert.NotNil(t, m.Init())
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	m := New(nil)
	assert.NotNil(t, m.config)
	assert.Equal(t, 0, m.store.Len())
	assert.Equal(t, domain.DefaultSelection(), m.store.Selection())
}

func TestNew_SelectionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tasks.DefaultSort = "title"
	m := New(cfg)
	assert.Equal(t, domain.SortByTitle, m.store.Sort())
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(t, m, "2")
	assert.Equal(t, types.TabTasks, m.tab)

	m = press(t, m, "4")
	assert.Equal(t, types.TabTimer, m.tab)

	m = press(t, m, "tab")
	assert.Equal(t, types.TabDashboard, m.tab, "tab wraps around")

	m = press(t, m, "shift+tab")
	assert.Equal(t, types.TabTimer, m.tab, "shift+tab wraps backwards")
}

func TestTaskNavigation(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2")

	m = press(t, m, "j")
	assert.Equal(t, "Buy milk", currentTitle(t, m))

	m = press(t, m, "G")
	assert.Equal(t, "Write report", currentTitle(t, m))

	m = press(t, m, "j")
	assert.Equal(t, "Write report", currentTitle(t, m), "cursor stays on the last row")

	m = press(t, m, "g")
	assert.Equal(t, "Call mom", currentTitle(t, m))

	m = press(t, m, "k")
	assert.Equal(t, 0, m.list.Cursor())
}

func TestTaskKeysIgnoredOutsideTasksTab(t *testing.T) {
	m := newTestModel(t, nil)

	m = press(t, m, " ")
	assert.Equal(t, 0, m.store.Stats().Completed)
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestToggleCompletion(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", " ")

	task, ok := m.store.Get("task-3")
	require.True(t, ok)
	assert.Equal(t, domain.StatusCompleted, task.Status)

	m = press(t, m, " ")
	task, _ = m.store.Get("task-3")
	assert.Equal(t, domain.StatusTodo, task.Status)
}

func TestAddTask(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Tasks.DefaultPriority = "high"
	m := newTestModel(t, cfg)

	m = press(t, m, "a")
	assert.Equal(t, types.TabTasks, m.tab)
	assert.Equal(t, types.ModeForm, m.mode())
	_, ok := m.overlayStack.Current().(*overlay.TaskFormOverlay)
	require.True(t, ok)

	form := domain.NewTaskForm("Plan trip")
	form.Priority = domain.PriorityHigh
	m = update(t, m, overlay.TaskCreatedMsg{Form: form})
	m = update(t, m, overlay.CloseOverlayMsg{})

	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, 4, m.store.Len())
	assert.Equal(t, "Plan trip", currentTitle(t, m), "new task is selected")
	require.NotEmpty(t, m.toasts)
	assert.Equal(t, ToastSuccess, m.toasts[len(m.toasts)-1].Level)
}

func TestAddTask_BlankTitleRejected(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, overlay.TaskCreatedMsg{Form: domain.NewTaskForm("   ")})
	assert.Equal(t, 3, m.store.Len())
	require.NotEmpty(t, m.toasts)
	assert.Equal(t, ToastError, m.toasts[len(m.toasts)-1].Level)
}

func TestEditTask(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "e")

	edit, ok := m.overlayStack.Current().(*overlay.TaskFormOverlay)
	require.True(t, ok)
	assert.Equal(t, "Edit Task", edit.Title())

	title := "Call mom tonight"
	m = update(t, m, overlay.TaskEditedMsg{ID: "task-3", Patch: domain.TaskPatch{Title: &title}})

	task, _ := m.store.Get("task-3")
	assert.Equal(t, title, task.Title)
}

func TestDeleteTask(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "d")

	_, ok := m.overlayStack.Current().(*overlay.ConfirmDialog)
	require.True(t, ok)
	assert.Equal(t, types.ModeMenu, m.mode())

	t.Run("cancel keeps the task", func(t *testing.T) {
		m := update(t, m, overlay.SelectionMsg{Key: "no", Value: overlay.ConfirmResult{
			Action: overlay.ConfirmDelete, TaskID: "task-3",
		}})
		assert.True(t, m.overlayStack.IsEmpty())
		assert.Equal(t, 3, m.store.Len())
	})

	t.Run("confirm removes the task", func(t *testing.T) {
		m := update(t, m, overlay.SelectionMsg{Key: "yes", Value: overlay.ConfirmResult{
			Action: overlay.ConfirmDelete, TaskID: "task-3", Confirmed: true,
		}})
		assert.True(t, m.overlayStack.IsEmpty())
		assert.Equal(t, 2, m.store.Len())
		_, ok := m.store.Get("task-3")
		assert.False(t, ok)
		assert.Equal(t, "Buy milk", currentTitle(t, m))
	})
}

func TestClearCompleted(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "C")
	assert.True(t, m.overlayStack.IsEmpty(), "nothing to clear")
	require.NotEmpty(t, m.toasts)

	m = press(t, m, " ", "C")
	_, ok := m.overlayStack.Current().(*overlay.ConfirmDialog)
	require.True(t, ok)

	m = update(t, m, overlay.SelectionMsg{Key: "yes", Value: overlay.ConfirmResult{
		Action: overlay.ConfirmClearCompleted, Confirmed: true,
	}})
	assert.Equal(t, 2, m.store.Len())
	assert.Equal(t, 0, m.store.Stats().Completed)
}

func TestStatusPicker(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "s")

	_, ok := m.overlayStack.Current().(*overlay.StatusPicker)
	require.True(t, ok)

	m = update(t, m, overlay.SelectionMsg{Key: "status", Value: overlay.StatusChoice{
		TaskID: "task-3", Status: domain.StatusInProgress,
	}})
	assert.True(t, m.overlayStack.IsEmpty())
	task, _ := m.store.Get("task-3")
	assert.Equal(t, domain.StatusInProgress, task.Status)
}

func TestDuplicate(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "j", "y")

	assert.Equal(t, 4, m.store.Len())
	assert.Equal(t, "Buy milk (Copy)", currentTitle(t, m))
}

func TestFilterAndSort(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", " ")

	m = press(t, m, "f")
	_, ok := m.overlayStack.Current().(*overlay.FilterMenu)
	require.True(t, ok)

	m = update(t, m, overlay.SelectionMsg{Key: "filter", Value: domain.FilterCompleted})
	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, domain.FilterCompleted, m.store.Filter())
	assert.Equal(t, 1, m.list.Len())

	m = press(t, m, "o")
	_, ok = m.overlayStack.Current().(*overlay.SortMenu)
	require.True(t, ok)

	m = update(t, m, overlay.SelectionMsg{Key: "sort", Value: domain.SortByTitle})
	assert.Equal(t, domain.SortByTitle, m.store.Sort())
}

func TestFilterCounts(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", " ")

	counts := m.filterCounts()
	assert.Equal(t, 3, counts[domain.FilterAll])
	assert.Equal(t, 2, counts[domain.FilterTodo])
	assert.Equal(t, 1, counts[domain.FilterCompleted])
}

func TestSearch(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "/")

	_, ok := m.overlayStack.Current().(*overlay.SearchOverlay)
	require.True(t, ok)
	assert.Equal(t, types.ModeSearch, m.mode())

	m = update(t, m, overlay.SearchMsg{Query: "milk"})
	assert.Equal(t, "milk", m.store.SearchQuery())
	assert.Equal(t, 1, m.list.Len())

	m = update(t, m, overlay.CloseOverlayMsg{})
	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, 1, m.list.Len(), "query survives closing the bar")

	m = press(t, m, "esc")
	assert.Equal(t, "", m.store.SearchQuery())
	assert.Equal(t, domain.FilterAll, m.store.Filter())
	assert.Equal(t, 3, m.list.Len())
}

func TestOverlayKeysRouteToOverlay(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "?")

	_, ok := m.overlayStack.Current().(*overlay.HelpOverlay)
	require.True(t, ok)

	m = press(t, m, "2")
	assert.Equal(t, types.TabDashboard, m.tab, "tab keys go to the overlay")
}

func TestNotificationsPanel(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "n")

	_, ok := m.overlayStack.Current().(*overlay.NotificationsPanel)
	assert.True(t, ok)
}

func TestOverdueRaisesNotification(t *testing.T) {
	m := newTestModel(t, nil)

	yesterday := testNow.AddDate(0, 0, -1)
	form := domain.NewTaskForm("Pay rent")
	form.DueDate = &yesterday
	m = update(t, m, overlay.TaskCreatedMsg{Form: form})

	items := m.center.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, notify.IDOverdue, items[0].ID)
	assert.Equal(t, 1, m.center.Unread())

	var warned bool
	for _, toast := range m.toasts {
		if toast.Level == ToastWarning && toast.Message == "Overdue tasks" {
			warned = true
		}
	}
	assert.True(t, warned, "newly raised notification shows a toast")
}

func TestNotificationsDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	disabled := false
	cfg.Notifications.Enabled = &disabled
	m := newTestModel(t, cfg)

	yesterday := testNow.AddDate(0, 0, -1)
	form := domain.NewTaskForm("Pay rent")
	form.DueDate = &yesterday
	m = update(t, m, overlay.TaskCreatedMsg{Form: form})

	assert.Equal(t, 0, m.center.Len())
}

func TestTimerKeys(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "4")

	next, cmd := m.Update(key(" "))
	m = next.(Model)
	assert.True(t, m.timer.State().Active)
	assert.NotNil(t, cmd, "starting schedules a tick")

	m = press(t, m, " ")
	assert.False(t, m.timer.State().Active)

	m = press(t, m, "b")
	assert.Equal(t, pomodoro.ModeBreak, m.timer.State().Mode)

	m = press(t, m, "w")
	assert.Equal(t, pomodoro.ModeWork, m.timer.State().Mode)

	m = press(t, m, " ", "r")
	state := m.timer.State()
	assert.False(t, state.Active)
	assert.Equal(t, m.timer.Duration(pomodoro.ModeWork), state.Remaining)
}

func TestTimerCompleted(t *testing.T) {
	m := newTestModel(t, nil)

	m = update(t, m, pomodoro.CompletedMsg{ID: m.timer.ID() + 1000, Event: pomodoro.Event{Mode: pomodoro.ModeWork, Sessions: 1}})
	assert.Equal(t, 0, m.center.Len(), "completions from other timers are ignored")

	m = update(t, m, pomodoro.CompletedMsg{ID: m.timer.ID(), Event: pomodoro.Event{Mode: pomodoro.ModeWork, Sessions: 1}})
	require.Equal(t, 1, m.center.Len())
	assert.Equal(t, notify.KindSuccess, m.center.Items()[0].Kind)
	require.NotEmpty(t, m.toasts)
	assert.Equal(t, ToastSuccess, m.toasts[len(m.toasts)-1].Level)
}

func TestHousekeepingTickExpiresToasts(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, overlay.TaskCreatedMsg{Form: domain.NewTaskForm("Plan trip")})
	require.NotEmpty(t, m.toasts)

	next, cmd := m.Update(tickMsg(testNow.Add(time.Second)))
	m = next.(Model)
	assert.NotEmpty(t, m.toasts)
	assert.NotNil(t, cmd, "tick reschedules itself")

	m = update(t, m, tickMsg(testNow.Add(time.Hour)))
	assert.Empty(t, m.toasts)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, "?")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd(), "ctrl+c quits even with an overlay open")
}

func TestJumpMode(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "J")

	_, ok := m.overlayStack.Current().(*overlay.JumpMode)
	require.True(t, ok)
	assert.Equal(t, types.ModeJump, m.mode())
	assert.Contains(t, ansi.Strip(m.list.Render()), "d ", "row labels are drawn on the list")
	assert.NotContains(t, ansi.Strip(m.list.Render()), "▶")

	m = press(t, m, "d")
	assert.Equal(t, types.ModeJump, m.mode(), "selection arrives as a message")

	m = update(t, m, overlay.JumpSelectedMsg{TaskIndex: 2})
	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, "Write report", currentTitle(t, m))
	assert.Contains(t, m.list.Render(), "▶")
}

func TestJumpMode_CancelClearsLabels(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, "2", "J")
	m = update(t, m, overlay.CloseOverlayMsg{})

	assert.True(t, m.overlayStack.IsEmpty())
	assert.Contains(t, m.list.Render(), "▶")
	assert.Equal(t, 0, m.list.Cursor())
}

func TestJumpMode_EmptyList(t *testing.T) {
	m := New(nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = press(t, m, "2", "J")
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestSettings(t *testing.T) {
	m := newTestModel(t, nil)
	m = press(t, m, ",")

	menu, ok := m.overlayStack.Current().(*overlay.SettingsOverlay)
	require.True(t, ok)
	prefs, _ := menu.Preferences()
	assert.Equal(t, overlay.Preferences{WorkMinutes: 25, BreakMinutes: 5, Notifications: true}, prefs)

	m = update(t, m, overlay.PreferencesChangedMsg{Preferences: overlay.Preferences{
		WorkMinutes: 50, BreakMinutes: 10, Notifications: false,
	}})
	assert.False(t, m.overlayStack.IsEmpty(), "live changes keep the menu open")
	assert.Equal(t, 50, m.config.Timer.WorkMinutes)
	assert.False(t, m.notifyEnabled)
	assert.Equal(t, 50*60, m.timer.State().Remaining)
	assert.Equal(t, 10*60, m.timer.Duration(pomodoro.ModeBreak))
}

func TestSettingsSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.JSONFile)
	m := newTestModel(t, nil)
	m.configPath = path

	m = update(t, m, overlay.PreferencesChangedMsg{
		Preferences: overlay.Preferences{WorkMinutes: 45, BreakMinutes: 15, Notifications: true},
		Save:        true,
	})
	require.NotEmpty(t, m.toasts)
	assert.Equal(t, ToastSuccess, m.toasts[len(m.toasts)-1].Level)

	saved, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 45, saved.Timer.WorkMinutes)
	assert.Equal(t, 15, saved.Timer.BreakMinutes)
}

func TestSettingsSave_NoPath(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, overlay.PreferencesChangedMsg{Preferences: m.preferences(), Save: true})

	require.NotEmpty(t, m.toasts)
	assert.Equal(t, ToastWarning, m.toasts[len(m.toasts)-1].Level)
}

func TestWindowResize(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}
