package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/overlay"
	"github.com/riordanpawley/taskflow/internal/ui/statusbar"
	"github.com/riordanpawley/taskflow/internal/ui/toast"
)

// View renders the model
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	sb := statusbar.New(m.mode(), m.tab, m.width, m.styles).
		WithUnread(m.center.Unread())
	if m.tab == types.TabTasks {
		sb = sb.WithList(m.store.Selection(), m.list.Len(), m.store.Len())
	}
	statusBarView := sb.Render()

	// Bottom bars share the body's height budget
	var bottom []string
	if active := types.Active(m.toasts, m.now()); len(active) > 0 {
		if toastView := toast.New(m.styles).Render(active, m.width); toastView != "" {
			bottom = append(bottom, toastView)
		}
	}

	var body string
	vAlign := lipgloss.Top
	if m.overlayStack.IsEmpty() {
		body = m.renderTab()
	} else {
		current := m.overlayStack.Current()
		overlayView := current.View()
		if overlay.IsBar(current) {
			body = m.renderTab()
			bottom = append([]string{overlayView}, bottom...)
		} else {
			// Centered modal overlay with border and title
			title := current.Title()
			if title != "" {
				titleView := m.styles.OverlayTitle.Render(title)
				overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
			}
			overlayWidth, overlayHeight := current.Size()
			vAlign = lipgloss.Center
			body = m.styles.Overlay.
				Width(min(overlayWidth, max(m.width-4, 10))).
				Height(overlayHeight).
				Render(overlayView)
		}
	}

	bottomView := lipgloss.JoinVertical(lipgloss.Left, bottom...)
	bodyHeight := m.height - chromeHeight
	if len(bottom) > 0 {
		bodyHeight -= lipgloss.Height(bottomView)
	}
	bodyHeight = max(bodyHeight, 0)

	body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, vAlign, clip(body, bodyHeight))

	parts := []string{header}
	if bodyHeight > 0 {
		parts = append(parts, body)
	}
	if len(bottom) > 0 {
		parts = append(parts, bottomView)
	}
	parts = append(parts, statusBarView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the app name, the tab strip and a running-timer badge
func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(types.Tabs))
	for _, t := range types.Tabs {
		label := t.Key() + " " + t.String()
		if t == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, m.styles.Header.Render("TaskFlow"), lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	state := m.timer.State()
	right := ""
	if state.Active {
		right = m.spinner.View() + " " + state.Mode.Label() + " " + state.Clock() + " "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "")
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderTab renders the body of the active tab
func (m Model) renderTab() string {
	switch m.tab {
	case types.TabTasks:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, m.list.Render())
	case types.TabAnalytics:
		return m.dash.Analytics(m.store.Stats(), m.store.All())
	case types.TabTimer:
		return m.timerView.Render(m.timer.State())
	default:
		return m.dash.Dashboard(m.store.Stats(), m.store.View())
	}
}

// clip cuts s down to at most n lines
func clip(s string, n int) string {
	if lipgloss.Height(s) <= n {
		return s
	}
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	return strings.Join(lines[:n], "\n")
}
