package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// helpRows is the number of binding lines shown at once
const helpRows = 18

var helpCategoryStyle = lipgloss.NewStyle().
	Foreground(styles.Blue).
	Bold(true)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory groups bindings under a heading
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// keyCategories lists every binding the app understands
var keyCategories = []KeyCategory{
	{
		Name: "Tabs",
		Bindings: []KeyBinding{
			{Key: "1-4", Description: "Dashboard, Tasks, Analytics, Timer"},
			{Key: "Tab", Description: "Next tab (Shift+Tab: previous)"},
		},
	},
	{
		Name: "Tasks",
		Bindings: []KeyBinding{
			{Key: "j/k", Description: "Move down/up"},
			{Key: "g/G", Description: "First/last task"},
			{Key: "J", Description: "Jump to a labelled row"},
			{Key: "Enter", Description: "Show task details"},
			{Key: "a", Description: "Add task"},
			{Key: "e", Description: "Edit task"},
			{Key: "Space", Description: "Toggle completed"},
			{Key: "s", Description: "Set status"},
			{Key: "y", Description: "Duplicate task"},
			{Key: "d", Description: "Delete task"},
			{Key: "C", Description: "Clear completed"},
		},
	},
	{
		Name: "View",
		Bindings: []KeyBinding{
			{Key: "/", Description: "Search"},
			{Key: "f", Description: "Filter menu"},
			{Key: "o", Description: "Sort menu"},
			{Key: "Esc", Description: "Clear search and filter"},
		},
	},
	{
		Name: "Timer",
		Bindings: []KeyBinding{
			{Key: "Space", Description: "Start/pause"},
			{Key: "r", Description: "Reset current phase"},
			{Key: "w/b", Description: "Switch to focus/break"},
		},
	},
	{
		Name: "Other",
		Bindings: []KeyBinding{
			{Key: "n", Description: "Notifications"},
			{Key: ",", Description: "Settings"},
			{Key: "?", Description: "Help (this screen)"},
			{Key: "q", Description: "Quit"},
		},
	},
}

// HelpOverlay is a scrollable keybinding reference
type HelpOverlay struct {
	styles *Styles
	lines  []string
	scroll int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	h := &HelpOverlay{styles: New()}
	h.lines = h.render(keyCategories)
	return h
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch keyMsg.String() {
	case "esc", "q", "?":
		return h, func() tea.Msg { return CloseOverlayMsg{} }
	case "j", "down":
		h.scroll = min(h.scroll+1, h.maxScroll())
	case "k", "up":
		h.scroll = max(h.scroll-1, 0)
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll()
	}
	return h, nil
}

// View renders the visible window of bindings
func (h *HelpOverlay) View() string {
	end := min(h.scroll+helpRows, len(h.lines))
	view := strings.Join(h.lines[h.scroll:end], "\n")

	if h.maxScroll() > 0 {
		view += "\n\n" + h.styles.Footer.Render(
			fmt.Sprintf("j/k: scroll  g/G: top/bottom  %d/%d", end, len(h.lines)))
	}
	return view
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	return 50, helpRows + 4
}

func (h *HelpOverlay) maxScroll() int {
	return max(0, len(h.lines)-helpRows)
}

func (h *HelpOverlay) render(categories []KeyCategory) []string {
	var lines []string
	for i, cat := range categories {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, helpCategoryStyle.Render(cat.Name+":"))
		for _, b := range cat.Bindings {
			lines = append(lines, "  "+h.styles.MenuKey.Render(fmt.Sprintf("%-6s", b.Key))+"  "+h.styles.MenuItem.Render(b.Description))
		}
	}
	return lines
}
