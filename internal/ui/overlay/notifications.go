package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/services/notify"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// NotificationsChangedMsg is emitted after the panel marks or dismisses entries
type NotificationsChangedMsg struct {
	Unread int
}

// NotificationsPanel lists the notification center and lets the user mark
// entries read or dismiss them
type NotificationsPanel struct {
	center *notify.Center
	cursor int
	styles *Styles
}

// NewNotificationsPanel creates a panel over the given center
func NewNotificationsPanel(center *notify.Center) *NotificationsPanel {
	return &NotificationsPanel{center: center, styles: New()}
}

// Init initializes the panel
func (p *NotificationsPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *NotificationsPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	items := p.center.Items()
	switch keyMsg.String() {
	case "esc", "q", "n":
		return p, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down":
		if p.cursor < len(items)-1 {
			p.cursor++
		}
		return p, nil

	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil

	case "enter", "r":
		if p.cursor < len(items) && p.center.MarkRead(items[p.cursor].ID) {
			return p, p.changed()
		}
		return p, nil

	case "R":
		p.center.MarkAllRead()
		return p, p.changed()

	case "d", "x":
		if p.cursor < len(items) && p.center.Dismiss(items[p.cursor].ID) {
			p.cursor = max(0, min(p.cursor, p.center.Len()-1))
			return p, p.changed()
		}
		return p, nil
	}

	return p, nil
}

func (p *NotificationsPanel) changed() tea.Cmd {
	unread := p.center.Unread()
	return func() tea.Msg { return NotificationsChangedMsg{Unread: unread} }
}

// View renders the panel
func (p *NotificationsPanel) View() string {
	items := p.center.Items()
	if len(items) == 0 {
		return p.styles.MenuItemDisabled.Render("No notifications") + "\n" +
			p.styles.Footer.Render("Esc: Close")
	}

	var b strings.Builder
	for i, n := range items {
		cursor := "  "
		titleStyle := p.styles.MenuItem
		if i == p.cursor {
			cursor = "▶ "
			titleStyle = p.styles.MenuItemActive
		}
		if n.Read {
			titleStyle = titleStyle.Foreground(styles.Overlay1)
		}

		marker := kindStyle(n.Kind).Render("●")
		if n.Read {
			marker = " "
		}

		b.WriteString(cursor)
		b.WriteString(marker)
		b.WriteString(" ")
		b.WriteString(titleStyle.Render(n.Title))
		b.WriteString(" ")
		b.WriteString(p.styles.MenuItemDisabled.Render(n.Timestamp.Format("15:04")))
		b.WriteString("\n    ")
		b.WriteString(p.styles.MenuItemDisabled.Render(n.Message))
		b.WriteString("\n")
	}

	b.WriteString(p.styles.Footer.Render("r: Mark read • R: Mark all read • d: Dismiss • Esc: Close"))
	return b.String()
}

func kindStyle(k notify.Kind) lipgloss.Style {
	switch k {
	case notify.KindSuccess:
		return lipgloss.NewStyle().Foreground(styles.Green)
	case notify.KindWarning:
		return lipgloss.NewStyle().Foreground(styles.Yellow)
	default:
		return lipgloss.NewStyle().Foreground(styles.Blue)
	}
}

// Title returns the overlay title
func (p *NotificationsPanel) Title() string {
	return "Notifications"
}

// Size returns the overlay dimensions
func (p *NotificationsPanel) Size() (width, height int) {
	return 64, min(30, p.center.Len()*2+6)
}
