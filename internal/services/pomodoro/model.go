package pomodoro

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg advances a Model by one second. Ticks carry the model ID and the
// generation they were scheduled under; anything else is dropped.
type TickMsg struct {
	Time time.Time
	ID   int
	gen  int
}

// CompletedMsg is emitted once for every finished work phase
type CompletedMsg struct {
	ID    int
	Event Event
}

// Model drives a Timer from inside a Bubble Tea program. Only one tick is
// ever in flight: pausing, resetting, switching mode or stopping bumps the
// generation so any tick already scheduled is ignored when it lands.
type Model struct {
	id       int
	gen      int
	timer    *Timer
	interval time.Duration
}

// NewModel creates a paused work-mode model
func NewModel(work, brk time.Duration) Model {
	return Model{
		id:       nextID(),
		timer:    NewTimer(work, brk),
		interval: time.Second,
	}
}

// ID identifies this model's ticks
func (m Model) ID() int { return m.id }

// Init implements tea.Model
func (m Model) Init() tea.Cmd { return nil }

// Update handles TickMsg for this model and ignores everything else
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	tick, ok := msg.(TickMsg)
	if !ok || tick.ID != m.id || tick.gen != m.gen {
		return m, nil
	}
	if !m.timer.Active() {
		return m, nil
	}

	ev, completed := m.timer.Tick()

	var cmds []tea.Cmd
	if m.timer.Active() {
		cmds = append(cmds, m.tick())
	}
	if completed {
		id := m.id
		cmds = append(cmds, func() tea.Msg {
			return CompletedMsg{ID: id, Event: ev}
		})
	}
	return m, tea.Batch(cmds...)
}

// Toggle starts or pauses the countdown
func (m Model) Toggle() (Model, tea.Cmd) {
	m.gen++
	m.timer.Toggle()
	if m.timer.Active() {
		return m, m.tick()
	}
	return m, nil
}

// Reset pauses and restores the current mode's full duration
func (m Model) Reset() (Model, tea.Cmd) {
	m.gen++
	m.timer.Reset()
	return m, nil
}

// SwitchMode pauses and loads the given mode
func (m Model) SwitchMode(mode Mode) (Model, tea.Cmd) {
	m.gen++
	m.timer.SwitchMode(mode)
	return m, nil
}

// WithDurations changes the phase lengths without interrupting a running phase
func (m Model) WithDurations(work, brk time.Duration) Model {
	m.timer.SetDurations(work, brk)
	return m
}

// Stop pauses the countdown and invalidates any scheduled tick
func (m Model) Stop() Model {
	m.gen++
	m.timer.Pause()
	return m
}

// State returns a snapshot of the timer
func (m Model) State() State {
	return snapshot(m.timer)
}

// Duration returns the configured length of a mode in seconds
func (m Model) Duration(mode Mode) int {
	return m.timer.Duration(mode)
}

func (m Model) tick() tea.Cmd {
	id, gen := m.id, m.gen
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, ID: id, gen: gen}
	})
}
