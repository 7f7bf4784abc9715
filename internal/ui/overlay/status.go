package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// statusKeys are the hotkeys for domain.Statuses, in the same order
var statusKeys = []string{"t", "i", "c", "x"}

// StatusChoice is the value of the SelectionMsg a StatusPicker emits
type StatusChoice struct {
	TaskID string
	Status domain.Status
}

// StatusPicker moves a single task to another status
type StatusPicker struct {
	task   domain.Task
	cursor int
	styles *Styles
}

// NewStatusPicker creates a picker with the task's current status highlighted
func NewStatusPicker(task domain.Task) *StatusPicker {
	p := &StatusPicker{task: task, styles: New()}
	for i, st := range domain.Statuses {
		if st == task.Status {
			p.cursor = i
		}
	}
	return p
}

// Init initializes the picker
func (p *StatusPicker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *StatusPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	n := len(domain.Statuses)
	switch keyMsg.String() {
	case "esc", "q":
		return p, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down":
		p.cursor = (p.cursor + 1) % n
		return p, nil

	case "k", "up":
		p.cursor = (p.cursor - 1 + n) % n
		return p, nil

	case "enter":
		return p, p.choose(domain.Statuses[p.cursor])
	}

	for i, key := range statusKeys {
		if key == keyMsg.String() {
			return p, p.choose(domain.Statuses[i])
		}
	}
	return p, nil
}

func (p *StatusPicker) choose(st domain.Status) tea.Cmd {
	choice := StatusChoice{TaskID: p.task.ID, Status: st}
	return func() tea.Msg {
		return SelectionMsg{Key: "status", Value: choice}
	}
}

// View renders the picker
func (p *StatusPicker) View() string {
	var b strings.Builder

	b.WriteString(p.styles.MenuHeader.Render(p.task.Title))
	b.WriteString("\n\n")

	for i, st := range domain.Statuses {
		cursor := "  "
		labelStyle := p.styles.MenuItem
		if i == p.cursor {
			cursor = "▶ "
			labelStyle = p.styles.MenuItemActive
		}

		b.WriteString(cursor)
		b.WriteString(p.styles.MenuKey.Render("[" + statusKeys[i] + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(st.Icon() + " " + st.Label()))
		if st == p.task.Status {
			b.WriteString(" ")
			b.WriteString(p.styles.MenuItemActive.Render("●"))
		}
		b.WriteString("\n")
	}

	b.WriteString(p.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (p *StatusPicker) Title() string {
	return "Set status"
}

// Size returns the overlay dimensions
func (p *StatusPicker) Size() (width, height int) {
	return 50, len(domain.Statuses) + 7
}
