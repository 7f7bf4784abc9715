package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Label       string
	Sort        domain.Sort
	Description string
}

// SortMenu is a menu overlay for choosing the task ordering
type SortMenu struct {
	current domain.Sort
	cursor  int
	options []SortOption
	styles  *Styles
}

// NewSortMenu creates a new sort menu with the current ordering highlighted
func NewSortMenu(current domain.Sort) *SortMenu {
	m := &SortMenu{
		current: current,
		styles:  New(),
		options: []SortOption{
			{Key: "c", Label: "Created", Sort: domain.SortByCreated, Description: "Newest first"},
			{Key: "u", Label: "Updated", Sort: domain.SortByUpdated, Description: "Recently changed first"},
			{Key: "p", Label: "Priority", Sort: domain.SortByPriority, Description: "Urgent first"},
			{Key: "d", Label: "Due date", Sort: domain.SortByDueDate, Description: "Soonest first, undated last"},
			{Key: "t", Label: "Title", Sort: domain.SortByTitle, Description: "Alphabetical"},
		},
	}
	for i, opt := range m.options {
		if opt.Sort == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down":
		m.cursor = (m.cursor + 1) % len(m.options)
		return m, nil

	case "k", "up":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
		return m, nil

	case "enter":
		return m, m.choose(m.options[m.cursor])
	}

	for _, opt := range m.options {
		if opt.Key == keyMsg.String() {
			return m, m.choose(opt)
		}
	}
	return m, nil
}

func (m *SortMenu) choose(opt SortOption) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Key: "sort", Value: opt.Sort}
	}
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for i, opt := range m.options {
		cursor := "  "
		labelStyle := m.styles.MenuItem
		if i == m.cursor {
			cursor = "▶ "
			labelStyle = m.styles.MenuItemActive
		}

		b.WriteString(cursor)
		b.WriteString(m.styles.MenuKey.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(opt.Label))
		b.WriteString(" ")
		b.WriteString(m.styles.Footer.UnsetMarginTop().Render("(" + opt.Description + ")"))
		if opt.Sort == m.current {
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("●"))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 60, len(m.options) + 5
}
