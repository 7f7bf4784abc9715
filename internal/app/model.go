// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/config"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/notify"
	"github.com/riordanpawley/taskflow/internal/services/pomodoro"
	"github.com/riordanpawley/taskflow/internal/services/tasks"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/dashboard"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
	"github.com/riordanpawley/taskflow/internal/ui/tasklist"
	"github.com/riordanpawley/taskflow/internal/ui/timerview"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// housekeepingInterval drives toast expiry and time-based notification rules
const housekeepingInterval = time.Second

// Rows taken by the header and the status bar
const chromeHeight = 2

// Model is the main application state
type Model struct {
	// Core services
	store  *tasks.Store
	timer  pomodoro.Model
	center *notify.Center

	// UI state
	overlayStack *overlay.Stack
	list         *tasklist.List
	dash         dashboard.View
	timerView    timerview.View
	tab          types.Tab

	// Toasts
	toasts   []Toast
	toastTTL time.Duration

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config        *config.Config
	configPath    string
	notifyEnabled bool

	spinner spinner.Model
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger used by the model and the services it creates
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithStore uses an existing task store instead of creating an empty one
func WithStore(s *tasks.Store) Option {
	return func(m *Model) { m.store = s }
}

// WithConfigPath sets the file the settings overlay saves to
func WithConfigPath(path string) Option {
	return func(m *Model) { m.configPath = path }
}

// WithClock overrides the wall clock
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a new Model with the given configuration
func New(cfg *config.Config, opts ...Option) Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	s := styles.New()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.TimerWorkMode

	m := Model{
		timer:         pomodoro.NewModel(cfg.Timer.WorkDuration(), cfg.Timer.BreakDuration()),
		overlayStack:  overlay.NewStack(),
		list:          tasklist.New(s, 80, 20),
		dash:          dashboard.New(s, 80),
		timerView:     timerview.New(s, 80),
		tab:           types.TabDashboard,
		toasts:        make([]Toast, 0),
		toastTTL:      cfg.Notifications.ToastDuration(),
		styles:        s,
		config:        cfg,
		notifyEnabled: cfg.Notifications.IsEnabled(),
		spinner:       sp,
		now:           time.Now,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	if m.store == nil {
		m.store = tasks.NewStore(m.logger,
			tasks.WithClock(tasks.ClockFunc(m.now)),
			tasks.WithSelection(cfg.Tasks.Selection()),
		)
	}
	m.center = notify.NewCenter(notify.Thresholds{
		ProductivityMilestone: cfg.Notifications.ProductivityMilestone,
		DailyGoal:             cfg.Notifications.DailyGoal,
		WeeklyGoal:            cfg.Notifications.WeeklyGoal,
	}, m.logger)

	m.syncList()
	if m.notifyEnabled {
		m.center.Refresh(m.store.Stats(), m.now())
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickEvery(housekeepingInterval),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		now := time.Time(msg)
		m.toasts = types.Active(m.toasts, now)
		m.list.SetNow(now)
		m.refreshNotifications()
		return m, tickEvery(housekeepingInterval)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	case pomodoro.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case pomodoro.CompletedMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		return m.handleTimerCompleted(msg.Event)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		m.list.SetJumpLabels(nil)
		return m, nil

	case overlay.JumpSelectedMsg:
		m.overlayStack.Pop()
		m.list.SetJumpLabels(nil)
		m.list.SetCursor(msg.TaskIndex)
		return m, nil

	case overlay.PreferencesChangedMsg:
		return m.applyPreferences(msg)

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SearchMsg:
		m.store.SetSearchQuery(msg.Query)
		m.syncList()
		if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
			search.SetMatchCount(m.list.Len())
		}
		return m, nil

	case overlay.TaskCreatedMsg:
		task, ok := m.store.Add(msg.Form)
		if !ok {
			return m, m.addToast(ToastError, "Task title is required")
		}
		m.afterMutation()
		m.list.SelectID(task.ID)
		return m, m.addToast(ToastSuccess, fmt.Sprintf("Added %q", task.Title))

	case overlay.TaskEditedMsg:
		if !m.store.Update(msg.ID, msg.Patch) {
			return m, m.addToast(ToastInfo, "No changes")
		}
		m.afterMutation()
		return m, m.addToast(ToastSuccess, "Task updated")

	case overlay.NotificationsChangedMsg:
		m.logger.Debug("notifications changed", "unread", msg.Unread)
		return m, nil
	}

	// Anything else (cursor blink and the like) belongs to the open overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// handleSelection applies the result of a menu, picker or dialog
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	m.overlayStack.Pop()

	switch v := msg.Value.(type) {
	case domain.Filter:
		m.store.SetFilter(v)
		m.syncList()
		return m, nil

	case domain.Sort:
		m.store.SetSort(v)
		m.syncList()
		return m, nil

	case overlay.StatusChoice:
		if !m.store.SetStatus(v.TaskID, v.Status) {
			return m, nil
		}
		m.afterMutation()
		return m, m.addToast(ToastSuccess, "Status set to "+v.Status.Label())

	case overlay.ConfirmResult:
		if !v.Confirmed {
			return m, nil
		}
		return m.handleConfirmed(v)
	}

	m.logger.Warn("unhandled selection", "key", msg.Key)
	return m, nil
}

func (m Model) handleConfirmed(res overlay.ConfirmResult) (tea.Model, tea.Cmd) {
	switch res.Action {
	case overlay.ConfirmDelete:
		task, _ := m.store.Get(res.TaskID)
		if !m.store.Remove(res.TaskID) {
			return m, nil
		}
		m.afterMutation()
		return m, m.addToast(ToastSuccess, fmt.Sprintf("Deleted %q", task.Title))

	case overlay.ConfirmClearCompleted:
		n := m.store.ClearCompleted()
		if n == 0 {
			return m, nil
		}
		m.afterMutation()
		return m, m.addToast(ToastSuccess, fmt.Sprintf("Cleared %d completed task(s)", n))
	}
	return m, nil
}

// preferences returns the values the settings overlay edits
func (m Model) preferences() overlay.Preferences {
	return overlay.Preferences{
		WorkMinutes:   m.config.Timer.WorkMinutes,
		BreakMinutes:  m.config.Timer.BreakMinutes,
		Notifications: m.notifyEnabled,
	}
}

// applyPreferences updates the running config and optionally saves it
func (m Model) applyPreferences(msg overlay.PreferencesChangedMsg) (tea.Model, tea.Cmd) {
	p := msg.Preferences
	m.config.Timer.WorkMinutes = p.WorkMinutes
	m.config.Timer.BreakMinutes = p.BreakMinutes
	enabled := p.Notifications
	m.config.Notifications.Enabled = &enabled
	m.notifyEnabled = enabled
	m.timer = m.timer.WithDurations(m.config.Timer.WorkDuration(), m.config.Timer.BreakDuration())

	if !msg.Save {
		return m, nil
	}
	if m.configPath == "" {
		return m, m.addToast(ToastWarning, "No config file to save to")
	}
	if err := config.SaveConfig(m.config, m.configPath); err != nil {
		m.logger.Error("failed to save config", "path", m.configPath, "error", err)
		return m, m.addToast(ToastError, "Could not save settings")
	}
	m.logger.Info("config saved", "path", m.configPath)
	return m, m.addToast(ToastSuccess, "Settings saved to "+filepath.Base(m.configPath))
}

// handleTimerCompleted announces a finished focus session
func (m Model) handleTimerCompleted(ev pomodoro.Event) (tea.Model, tea.Cmd) {
	now := m.now()
	m.logger.Info("focus session completed", "sessions", ev.Sessions)

	m.center.Push(notify.Notification{
		ID:        fmt.Sprintf("timer-%d", now.UnixNano()),
		Kind:      notify.KindSuccess,
		Title:     "Focus session complete",
		Message:   fmt.Sprintf("Session %d done. Time for a break.", ev.Sessions),
		Timestamp: now,
	})
	return m, m.addToast(ToastSuccess, "Focus session complete! Time for a break.")
}

// afterMutation re-syncs derived state after the task list changed
func (m *Model) afterMutation() {
	m.syncList()
	for _, n := range m.refreshNotifications() {
		level := ToastInfo
		switch n.Kind {
		case notify.KindSuccess:
			level = ToastSuccess
		case notify.KindWarning:
			level = ToastWarning
		}
		m.addToast(level, n.Title)
	}
}

// refreshNotifications re-evaluates the stat-driven notification rules
func (m *Model) refreshNotifications() []notify.Notification {
	if !m.notifyEnabled {
		return nil
	}
	return m.center.Refresh(m.store.Stats(), m.now())
}

func (m *Model) syncList() {
	m.list.SetTasks(m.store.View())
	m.list.SetFiltering(m.store.Selection().IsFiltering())
	m.list.SetNow(m.now())
}

func (m *Model) resize() {
	bodyHeight := max(m.height-chromeHeight, 1)
	m.list.SetDimensions(m.width, bodyHeight)
	m.dash = m.dash.WithWidth(m.width)
	m.timerView = m.timerView.WithWidth(m.width)
}

// addToast queues a toast. It returns nil so callers can use it as a tea.Cmd.
func (m *Model) addToast(level ToastLevel, message string) tea.Cmd {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), m.toastTTL))
	return nil
}

// filterCounts counts how many tasks each filter would show
func (m Model) filterCounts() map[domain.Filter]int {
	now := m.now()
	all := m.store.All()
	counts := make(map[domain.Filter]int, len(domain.Filters))
	for _, f := range domain.Filters {
		for _, t := range all {
			if f.Matches(t, now) {
				counts[f]++
			}
		}
	}
	return counts
}

// mode derives the input mode from the open overlay
func (m Model) mode() types.Mode {
	switch m.overlayStack.Current().(type) {
	case nil:
		return types.ModeNormal
	case *overlay.SearchOverlay:
		return types.ModeSearch
	case *overlay.TaskFormOverlay:
		return types.ModeForm
	case *overlay.JumpMode:
		return types.ModeJump
	default:
		return types.ModeMenu
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.timer = m.timer.Stop()
	m.logger.Info("quitting", "tasks", m.store.Len())
	return m, tea.Quit
}

// Store exposes the task store
func (m Model) Store() *tasks.Store { return m.store }

// Message types

type tickMsg time.Time

// tickEvery returns a command that sends a tick message after duration
func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
