package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/services/pomodoro"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
)

// handleKey handles key presses when no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys
	switch key {
	case "q":
		return m.quit()
	case "ctrl+l":
		return m, tea.ClearScreen
	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	case "n":
		return m, m.overlayStack.Push(overlay.NewNotificationsPanel(m.center))
	case ",":
		return m, m.overlayStack.Push(overlay.NewPreferencesOverlay(m.preferences()))
	case "tab":
		m.tab = types.Tabs[(int(m.tab)+1)%len(types.Tabs)]
		return m, nil
	case "shift+tab":
		m.tab = types.Tabs[(int(m.tab)+len(types.Tabs)-1)%len(types.Tabs)]
		return m, nil
	case "a":
		m.tab = types.TabTasks
		return m, m.overlayStack.Push(overlay.NewTaskFormOverlay(m.config.Tasks.Priority(), m.config.Tasks.Category()))
	}
	for _, t := range types.Tabs {
		if key == t.Key() {
			m.tab = t
			return m, nil
		}
	}

	switch m.tab {
	case types.TabTasks:
		return m.handleTasksKey(key)
	case types.TabTimer:
		return m.handleTimerKey(key)
	}
	return m, nil
}

// handleTasksKey handles the task list bindings
func (m Model) handleTasksKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		m.list.MoveDown()
		return m, nil
	case "k", "up":
		m.list.MoveUp()
		return m, nil
	case "g", "home":
		m.list.GotoTop()
		return m, nil
	case "G", "end":
		m.list.GotoBottom()
		return m, nil
	case "J":
		if m.list.Len() == 0 {
			return m, nil
		}
		jump := overlay.NewJumpMode(m.list.Len())
		m.list.SetJumpLabels(jump.Labels())
		return m, m.overlayStack.Push(jump)
	case "/":
		search := overlay.NewSearchOverlay(m.store.SearchQuery())
		search.SetMatchCount(m.list.Len())
		return m, m.overlayStack.Push(search)
	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.store.Filter(), m.filterCounts()))
	case "o":
		return m, m.overlayStack.Push(overlay.NewSortMenu(m.store.Sort()))
	case "esc":
		if !m.store.Selection().IsFiltering() {
			return m, nil
		}
		m.store.SetSearchQuery("")
		m.store.SetFilter(domain.FilterAll)
		m.syncList()
		return m, m.addToast(ToastInfo, "Filters cleared")
	case "C":
		n := m.store.Stats().Completed
		if n == 0 {
			return m, m.addToast(ToastInfo, "No completed tasks to clear")
		}
		return m, m.overlayStack.Push(overlay.NewClearCompletedConfirm(n))
	}

	task, ok := m.list.Current()
	if !ok {
		return m, nil
	}

	switch key {
	case "enter":
		return m, m.overlayStack.Push(overlay.NewDetailPanel(task, m.now()))
	case "e":
		return m, m.overlayStack.Push(overlay.NewEditTaskOverlay(task))
	case " ", "x":
		m.store.ToggleCompletion(task.ID)
		m.afterMutation()
		return m, nil
	case "s":
		return m, m.overlayStack.Push(overlay.NewStatusPicker(task))
	case "d":
		return m, m.overlayStack.Push(overlay.NewDeleteConfirm(task))
	case "y":
		dup, ok := m.store.Duplicate(task.ID)
		if !ok {
			return m, nil
		}
		m.afterMutation()
		m.list.SelectID(dup.ID)
		return m, m.addToast(ToastSuccess, "Duplicated task")
	}
	return m, nil
}

// handleTimerKey handles the timer bindings
func (m Model) handleTimerKey(key string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch key {
	case " ", "enter":
		m.timer, cmd = m.timer.Toggle()
	case "r":
		m.timer, cmd = m.timer.Reset()
	case "w":
		m.timer, cmd = m.timer.SwitchMode(pomodoro.ModeWork)
	case "b":
		m.timer, cmd = m.timer.SwitchMode(pomodoro.ModeBreak)
	}
	return m, cmd
}

// handleOverlayKey routes key presses to the open overlay
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}
