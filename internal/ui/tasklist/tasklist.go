// Package tasklist renders the scrollable task list shown on the Tasks tab.
package tasklist

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

const (
	dueLayout = "Jan 2"
	ellipsis  = "…"
)

// List is a cursor-driven view over an already derived task slice
type List struct {
	tasks        []domain.Task
	cursor       int
	scrollOffset int
	width        int
	height       int
	filtering    bool
	jumpLabels   []string
	now          time.Time
	styles       *styles.Styles
}

// New creates an empty list of the given size
func New(s *styles.Styles, width, height int) *List {
	return &List{
		styles: s,
		width:  width,
		height: height,
		now:    time.Now(),
	}
}

// SetTasks replaces the displayed tasks, keeping the cursor on the same
// task ID when it is still present
func (l *List) SetTasks(tasks []domain.Task) {
	var currentID string
	if t, ok := l.Current(); ok {
		currentID = t.ID
	}
	l.tasks = tasks
	if currentID == "" || !l.SelectID(currentID) {
		l.SetCursor(l.cursor)
	}
}

// SetFiltering switches the empty-state message between "no tasks" and
// "nothing matches"
func (l *List) SetFiltering(filtering bool) {
	l.filtering = filtering
}

// SetJumpLabels shows labels[i] in place of the cursor marker of row i.
// A nil slice turns the labels off.
func (l *List) SetJumpLabels(labels []string) {
	l.jumpLabels = labels
}

// SetNow sets the reference time used for overdue highlighting
func (l *List) SetNow(now time.Time) {
	l.now = now
}

// SetDimensions updates the render size
func (l *List) SetDimensions(width, height int) {
	l.width = width
	l.height = height
	l.ensureCursorVisible()
}

// SetCursor moves the cursor to index, clamped to the list bounds
func (l *List) SetCursor(index int) {
	if len(l.tasks) == 0 {
		l.cursor = 0
		l.scrollOffset = 0
		return
	}
	l.cursor = max(0, min(index, len(l.tasks)-1))
	l.ensureCursorVisible()
}

// SelectID moves the cursor onto the task with the given ID
func (l *List) SelectID(id string) bool {
	for i, t := range l.tasks {
		if t.ID == id {
			l.SetCursor(i)
			return true
		}
	}
	return false
}

// Cursor returns the cursor index
func (l *List) Cursor() int {
	return l.cursor
}

// Len returns the number of displayed tasks
func (l *List) Len() int {
	return len(l.tasks)
}

// MoveUp moves the cursor up one row
func (l *List) MoveUp() {
	l.SetCursor(l.cursor - 1)
}

// MoveDown moves the cursor down one row
func (l *List) MoveDown() {
	l.SetCursor(l.cursor + 1)
}

// GotoTop moves the cursor to the first task
func (l *List) GotoTop() {
	l.SetCursor(0)
}

// GotoBottom moves the cursor to the last task
func (l *List) GotoBottom() {
	l.SetCursor(len(l.tasks) - 1)
}

// Current returns the task under the cursor
func (l *List) Current() (domain.Task, bool) {
	if l.cursor < 0 || l.cursor >= len(l.tasks) {
		return domain.Task{}, false
	}
	return l.tasks[l.cursor], true
}

// Render renders the visible window of rows
func (l *List) Render() string {
	if len(l.tasks) == 0 {
		return l.renderEmptyState()
	}

	visibleRows := l.visibleRows()
	start := l.scrollOffset
	end := min(start+visibleRows, len(l.tasks))

	var b strings.Builder
	if start > 0 {
		b.WriteString(l.styles.Separator.Render(fmt.Sprintf(" ↑ %d more", start)))
		b.WriteString("\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(l.renderRow(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	if end < len(l.tasks) {
		b.WriteString("\n")
		b.WriteString(l.styles.Separator.Render(fmt.Sprintf(" ↓ %d more", len(l.tasks)-end)))
	}
	return b.String()
}

func (l *List) renderEmptyState() string {
	msg := "No tasks yet. Press 'a' to add one."
	if l.filtering {
		msg = "No tasks match the current filter or search."
	}
	return l.styles.Empty.Render(msg)
}

func (l *List) renderRow(i int) string {
	t, active := l.tasks[i], i == l.cursor
	indicator := "  "
	if active {
		indicator = "▶ "
	}
	if i < len(l.jumpLabels) {
		indicator = l.styles.JumpLabel.Render(fmt.Sprintf("%-2s", l.jumpLabels[i]))
	}

	titleStyle := l.styles.TaskTitle
	if t.Status == domain.StatusCompleted || t.Status == domain.StatusCancelled {
		titleStyle = l.styles.TaskTitleDone
	}

	parts := []string{
		indicator + l.styles.Status(t.Status).Render(t.Status.Icon()),
		titleStyle.Render(t.Title),
		l.styles.PriorityBadge(t.Priority).Render(t.Priority.Label()),
		l.styles.CategoryBadge(t.Category).Render(t.Category.Label()),
	}
	if due := l.renderDue(t); due != "" {
		parts = append(parts, due)
	}
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		parts = append(parts, l.styles.Tag.Render(strings.Join(tags, " ")))
	}

	line := strings.Join(parts, " ")
	if l.width > 0 {
		line = ansi.Truncate(line, l.width, ellipsis)
	}
	if active {
		return lipgloss.NewStyle().Bold(true).Render(line)
	}
	return line
}

func (l *List) renderDue(t domain.Task) string {
	if t.DueDate == nil {
		return ""
	}
	text := "due " + t.DueDate.Format(dueLayout)
	if t.IsOverdue(l.now) {
		return l.styles.Overdue.Render(text + " (overdue)")
	}
	return l.styles.TaskMeta.Render(text)
}

// visibleRows reserves two lines for the scroll indicators
func (l *List) visibleRows() int {
	if l.height <= 0 {
		return max(1, len(l.tasks))
	}
	if len(l.tasks) <= l.height {
		return l.height
	}
	return max(1, l.height-2)
}

func (l *List) ensureCursorVisible() {
	visibleRows := l.visibleRows()

	if l.cursor < l.scrollOffset {
		l.scrollOffset = l.cursor
	}
	if l.cursor >= l.scrollOffset+visibleRows {
		l.scrollOffset = l.cursor - visibleRows + 1
	}

	maxOffset := max(0, len(l.tasks)-visibleRows)
	if l.scrollOffset > maxOffset {
		l.scrollOffset = maxOffset
	}
	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}
