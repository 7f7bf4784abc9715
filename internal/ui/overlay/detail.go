package overlay

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// DetailPanel displays full task details with scrollable description
type DetailPanel struct {
	task          domain.Task
	now           time.Time
	scrollY       int
	contentHeight int
	viewHeight    int
	styles        *Styles
}

// NewDetailPanel creates a new detail panel for the given task
func NewDetailPanel(task domain.Task, now time.Time) *DetailPanel {
	contentHeight := 0
	if task.Description != "" {
		contentHeight = len(strings.Split(task.Description, "\n"))
	}

	return &DetailPanel{
		task:          task,
		now:           now,
		contentHeight: contentHeight,
		viewHeight:    15,
		styles:        New(),
	}
}

// Init initializes the detail panel
func (d *DetailPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DetailPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return d, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			if d.scrollY < d.maxScroll() {
				d.scrollY++
			}
			return d, nil

		case "k", "up":
			if d.scrollY > 0 {
				d.scrollY--
			}
			return d, nil

		case "g":
			d.scrollY = 0
			return d, nil

		case "G":
			d.scrollY = d.maxScroll()
			return d, nil
		}
	}

	return d, nil
}

// View renders the detail panel
func (d *DetailPanel) View() string {
	var b strings.Builder

	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Blue).
		Bold(true)
	valueStyle := d.styles.MenuItem

	row := func(label, value string) {
		b.WriteString(d.styles.Label.Render(label + ":"))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	b.WriteString(headerStyle.Render(d.task.Title))
	b.WriteString("\n\n")

	row("Status", d.task.Status.Icon()+" "+d.task.Status.Label())
	row("Priority", d.task.Priority.Label())
	row("Category", d.task.Category.Label())
	if len(d.task.Tags) > 0 {
		row("Tags", "#"+strings.Join(d.task.Tags, " #"))
	}
	if d.task.DueDate != nil {
		due := d.task.DueDate.Format(domain.DueDateLayout)
		if d.task.IsOverdue(d.now) {
			due += " (overdue)"
		}
		row("Due", due)
	}
	if d.task.EstimatedTime != nil {
		row("Estimate", domain.FormatMinutes(*d.task.EstimatedTime))
	}
	if d.task.ActualTime != nil {
		row("Actual", domain.FormatMinutes(*d.task.ActualTime))
	}

	row("Created", d.formatTime(d.task.CreatedAt))
	row("Updated", d.formatTime(d.task.UpdatedAt))
	if d.task.CompletedAt != nil {
		row("Completed", d.formatTime(*d.task.CompletedAt))
		row("Took", domain.FormatDuration(d.task.CompletedAt.Sub(d.task.CreatedAt)))
	}

	if d.task.Description != "" {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Description"))
		b.WriteString("\n")

		descLines := strings.Split(d.task.Description, "\n")
		d.contentHeight = len(descLines)

		start := d.scrollY
		end := min(d.scrollY+d.viewHeight, len(descLines))

		for i := start; i < end; i++ {
			b.WriteString(valueStyle.Render(descLines[i]))
			b.WriteString("\n")
		}

		if d.maxScroll() > 0 {
			scrollInfo := d.styles.Footer.Render(
				fmt.Sprintf("[j/k to scroll, g/G to jump] (line %d/%d)", d.scrollY+1, d.contentHeight),
			)
			b.WriteString("\n")
			b.WriteString(scrollInfo)
		}
	}

	return b.String()
}

// Title returns the overlay title
func (d *DetailPanel) Title() string {
	return "Task Details"
}

// Size returns the overlay dimensions
func (d *DetailPanel) Size() (width, height int) {
	d.viewHeight = 15 // Description viewing area
	return 70, 30     // Total overlay size
}

// formatTime formats a timestamp for display
func (d *DetailPanel) formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// maxScroll returns the maximum scroll position
func (d *DetailPanel) maxScroll() int {
	return max(0, d.contentHeight-d.viewHeight)
}
