package overlay

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// filterKeys are the hotkeys for domain.Filters, in the same order
var filterKeys = []string{"a", "t", "i", "c", "o", "d", "w"}

// FilterMenu is a menu overlay for choosing which tasks are shown
type FilterMenu struct {
	current domain.Filter
	counts  map[domain.Filter]int
	cursor  int
	styles  *Styles
}

// NewFilterMenu creates a new filter menu. counts, when non-nil, is shown
// next to each option.
func NewFilterMenu(current domain.Filter, counts map[domain.Filter]int) *FilterMenu {
	m := &FilterMenu{
		current: current,
		counts:  counts,
		styles:  New(),
	}
	for i, f := range domain.Filters {
		if f == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(domain.Filters)
	switch keyMsg.String() {
	case "esc", "q":
		return m, func() tea.Msg { return CloseOverlayMsg{} }

	case "j", "down":
		m.cursor = (m.cursor + 1) % n
		return m, nil

	case "k", "up":
		m.cursor = (m.cursor - 1 + n) % n
		return m, nil

	case "enter":
		return m, m.choose(domain.Filters[m.cursor])
	}

	for i, key := range filterKeys {
		if key == keyMsg.String() {
			return m, m.choose(domain.Filters[i])
		}
	}
	return m, nil
}

func (m *FilterMenu) choose(f domain.Filter) tea.Cmd {
	return func() tea.Msg {
		return SelectionMsg{Key: "filter", Value: f}
	}
}

// View renders the menu
func (m *FilterMenu) View() string {
	var b strings.Builder

	for i, f := range domain.Filters {
		cursor := "  "
		labelStyle := m.styles.MenuItem
		if i == m.cursor {
			cursor = "▶ "
			labelStyle = m.styles.MenuItemActive
		}

		b.WriteString(cursor)
		b.WriteString(m.styles.MenuKey.Render("[" + filterKeys[i] + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(f.Label()))
		if m.counts != nil {
			b.WriteString(" ")
			b.WriteString(m.styles.MenuCount.Render("(" + strconv.Itoa(m.counts[f]) + ")"))
		}
		if f == m.current {
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("●"))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("j/k: Move • Enter: Select • Esc: Close"))
	return b.String()
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	return "Filter"
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	return 50, len(domain.Filters) + 5
}
