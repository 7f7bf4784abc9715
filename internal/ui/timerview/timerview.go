// Package timerview renders the work/break countdown on the Timer tab.
package timerview

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/services/pomodoro"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

const barWidth = 40

// View renders a pomodoro.State
type View struct {
	styles *styles.Styles
	width  int
	work   progress.Model
	brk    progress.Model
}

// New creates a timer view centered in width columns
func New(s *styles.Styles, width int) View {
	return View{
		styles: s,
		width:  width,
		work:   progress.New(progress.WithSolidFill(string(styles.Red)), progress.WithWidth(barWidth)),
		brk:    progress.New(progress.WithSolidFill(string(styles.Green)), progress.WithWidth(barWidth)),
	}
}

// WithWidth returns a copy centered in width columns
func (v View) WithWidth(width int) View {
	v.width = width
	return v
}

// Render draws the mode, clock, progress bar and session count
func (v View) Render(state pomodoro.State) string {
	modeStyle := v.styles.TimerWorkMode
	bar := v.work
	if state.Mode == pomodoro.ModeBreak {
		modeStyle = v.styles.TimerBreakMode
		bar = v.brk
	}

	status := "Paused"
	if state.Active {
		status = "Running"
	}

	lines := []string{
		modeStyle.Render(state.Mode.Label()),
		v.styles.TimerClock.Render(state.Clock()),
		bar.ViewAs(state.Progress),
		v.styles.StatLabel.Render(status),
		v.styles.StatLabel.Render("Sessions completed: ") +
			v.styles.StatValue.Render(fmt.Sprintf("%d", state.Sessions)),
	}

	block := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if v.width <= 0 {
		return block
	}
	return lipgloss.PlaceHorizontal(v.width, lipgloss.Center, block)
}
