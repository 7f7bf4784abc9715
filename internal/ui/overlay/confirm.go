package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// ConfirmAction names the destructive operation awaiting confirmation
type ConfirmAction string

const (
	ConfirmDelete         ConfirmAction = "delete"
	ConfirmClearCompleted ConfirmAction = "clear-completed"
)

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	title    string
	message  string
	action   ConfirmAction
	taskID   string
	styles   *Styles
	selected bool // Yes is highlighted; destructive dialogs open on No
}

// ConfirmResult represents the result of a confirmation dialog
type ConfirmResult struct {
	Action    ConfirmAction
	TaskID    string
	Confirmed bool
}

// NewConfirmDialog creates a new confirmation dialog with the given title and message
func NewConfirmDialog(title, message string, action ConfirmAction) *ConfirmDialog {
	return &ConfirmDialog{
		title:    title,
		message:  message,
		action:   action,
		styles:   New(),
		selected: false,
	}
}

// NewDeleteConfirm asks before removing a single task
func NewDeleteConfirm(task domain.Task) *ConfirmDialog {
	c := NewConfirmDialog("Delete task", fmt.Sprintf("Delete %q? This cannot be undone.", task.Title), ConfirmDelete)
	c.taskID = task.ID
	return c
}

// NewClearCompletedConfirm asks before removing every completed task
func NewClearCompletedConfirm(count int) *ConfirmDialog {
	return NewConfirmDialog("Clear completed",
		fmt.Sprintf("Remove %d completed task(s)?", count), ConfirmClearCompleted)
}

func (c *ConfirmDialog) result(confirmed bool) tea.Cmd {
	key := "no"
	if confirmed {
		key = "yes"
	}
	res := ConfirmResult{Action: c.action, TaskID: c.taskID, Confirmed: confirmed}
	return func() tea.Msg {
		return SelectionMsg{Key: key, Value: res}
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return c, c.result(true)
	case "n", "N", "esc":
		return c, c.result(false)
	case "enter":
		return c, c.result(c.selected)
	case "left", "h":
		c.selected = true
	case "right", "l":
		c.selected = false
	case "tab", "shift+tab":
		c.selected = !c.selected
	}
	return c, nil
}

// View renders the message above the Yes/No buttons
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = noStyle, yesStyle
	}
	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Footer.Render("←/→ or Tab: switch  Enter: confirm  Esc: cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 60, messageLines + 6
}
