// Package dashboard renders the Dashboard and Analytics tabs from task
// statistics.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// RecentLimit is how many tasks of the current view the dashboard lists
const RecentLimit = 3

const (
	minBarWidth = 10
	maxBarWidth = 50
)

// View renders read-only summaries. It holds no task state of its own.
type View struct {
	styles *styles.Styles
	width  int
	bar    progress.Model
}

// New creates a dashboard view for the given width
func New(s *styles.Styles, width int) View {
	v := View{
		styles: s,
		bar: progress.New(
			progress.WithGradient(string(styles.Blue), string(styles.Green)),
			progress.WithoutPercentage(),
		),
	}
	return v.WithWidth(width)
}

// WithWidth returns a copy sized for width columns
func (v View) WithWidth(width int) View {
	v.width = width
	v.bar.Width = max(minBarWidth, min(maxBarWidth, width-20))
	return v
}

// Dashboard renders the overview: stat cards, productivity, streak and the
// first few tasks of the current view
func (v View) Dashboard(stats domain.Stats, view []domain.Task) string {
	sections := []string{
		v.renderCards(stats),
		v.renderProductivity(stats),
		v.renderRecent(view),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Analytics renders time tracking and breakdown figures
func (v View) Analytics(stats domain.Stats, tasks []domain.Task) string {
	sections := []string{
		v.renderTime(stats),
		v.renderStatusBreakdown(stats),
		v.renderCategoryBreakdown(tasks),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v View) renderCards(stats domain.Stats) string {
	cards := []string{
		v.card("Total", fmt.Sprintf("%d", stats.Total)),
		v.card("Completed", fmt.Sprintf("%d", stats.Completed)),
		v.card("In progress", fmt.Sprintf("%d", stats.InProgress)),
		v.card("Overdue", fmt.Sprintf("%d", stats.Overdue)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (v View) card(label, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		v.styles.StatValue.Render(value),
		v.styles.StatLabel.Render(label),
	)
	return v.styles.Panel.Width(14).Render(body)
}

func (v View) renderProductivity(stats domain.Stats) string {
	var b strings.Builder
	b.WriteString(v.styles.PanelHead.Render("Productivity"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s  %s",
		v.styles.StatValue.Render(fmt.Sprintf("%d%%", stats.ProductivityScore)),
		v.styles.StatLabel.Render(domain.ProductivityLevel(stats.ProductivityScore)),
		v.bar.ViewAs(stats.CompletionRate()),
	))
	b.WriteString("\n")
	b.WriteString(v.line("Streak", fmt.Sprintf("%d/7 days", stats.Streak())))
	b.WriteString("\n")
	b.WriteString(v.line("Completed today", fmt.Sprintf("%d", stats.CompletedToday)))
	b.WriteString("\n")
	b.WriteString(v.line("Completed this week", fmt.Sprintf("%d", stats.CompletedThisWeek)))
	return v.panel(b.String())
}

func (v View) renderRecent(view []domain.Task) string {
	var b strings.Builder
	b.WriteString(v.styles.PanelHead.Render("Recent tasks"))
	if len(view) == 0 {
		b.WriteString("\n")
		b.WriteString(v.styles.Empty.Render("Nothing here yet"))
		return v.panel(b.String())
	}
	for _, t := range view[:min(RecentLimit, len(view))] {
		title := v.styles.TaskTitle
		if t.IsCompleted() {
			title = v.styles.TaskTitleDone
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s %s %s",
			v.styles.Status(t.Status).Render(t.Status.Icon()),
			title.Render(t.Title),
			v.styles.CategoryBadge(t.Category).Render(t.Category.Label()),
		))
	}
	return v.panel(b.String())
}

func (v View) renderTime(stats domain.Stats) string {
	var b strings.Builder
	b.WriteString(v.styles.PanelHead.Render("Time"))
	b.WriteString("\n")
	b.WriteString(v.line("Estimated", domain.FormatMinutes(stats.TotalEstimatedTime)))
	b.WriteString("\n")
	b.WriteString(v.line("Actual", domain.FormatMinutes(stats.TotalActualTime)))
	b.WriteString("\n")
	b.WriteString(v.line("Efficiency", fmt.Sprintf("%d%%", stats.Efficiency())))
	b.WriteString("\n")
	b.WriteString(v.line("Avg. completion", domain.FormatDuration(stats.AverageCompletionTime)))
	b.WriteString("\n")
	b.WriteString(v.line("Daily average", fmt.Sprintf("%d tasks/day", stats.DailyAverage())))
	return v.panel(b.String())
}

func (v View) renderStatusBreakdown(stats domain.Stats) string {
	counts := map[domain.Status]int{
		domain.StatusTodo:       stats.Todo,
		domain.StatusInProgress: stats.InProgress,
		domain.StatusCompleted:  stats.Completed,
		domain.StatusCancelled:  stats.Cancelled,
	}

	var b strings.Builder
	b.WriteString(v.styles.PanelHead.Render("By status"))
	for _, st := range domain.Statuses {
		b.WriteString("\n")
		b.WriteString(v.breakdownRow(v.styles.Status(st).Render(st.Label()), counts[st], stats.Total))
	}
	return v.panel(b.String())
}

func (v View) renderCategoryBreakdown(tasks []domain.Task) string {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, t := range tasks {
		counts[t.Category]++
	}

	var b strings.Builder
	b.WriteString(v.styles.PanelHead.Render("By category"))
	for _, c := range domain.Categories {
		b.WriteString("\n")
		b.WriteString(v.breakdownRow(v.styles.CategoryBadge(c).Render(c.Label()), counts[c], len(tasks)))
	}
	return v.panel(b.String())
}

func (v View) breakdownRow(label string, n, total int) string {
	ratio := 0.0
	if total > 0 {
		ratio = float64(n) / float64(total)
	}
	return fmt.Sprintf("%s %s %s",
		lipgloss.NewStyle().Width(12).Render(label),
		v.bar.ViewAs(ratio),
		v.styles.StatValue.Render(fmt.Sprintf("%d", n)),
	)
}

func (v View) line(label, value string) string {
	return v.styles.StatLabel.Render(label+": ") + v.styles.StatValue.Render(value)
}

func (v View) panel(content string) string {
	style := v.styles.Panel
	if v.width > 4 {
		style = style.Width(v.width - 4)
	}
	return style.Render(content)
}
