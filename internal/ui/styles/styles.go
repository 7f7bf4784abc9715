package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Layout
	App       lipgloss.Style
	Header    lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Panel     lipgloss.Style
	PanelHead lipgloss.Style

	// Task list
	ListItem       lipgloss.Style
	ListItemActive lipgloss.Style
	TaskTitle      lipgloss.Style
	TaskTitleDone  lipgloss.Style
	TaskMeta       lipgloss.Style
	Tag            lipgloss.Style
	Overdue        lipgloss.Style
	JumpLabel      lipgloss.Style
	Empty          lipgloss.Style

	// Badges
	PriorityBadge func(p domain.Priority) lipgloss.Style
	CategoryBadge func(c domain.Category) lipgloss.Style

	// Dashboard
	StatValue lipgloss.Style
	StatLabel lipgloss.Style

	// Timer
	TimerClock     lipgloss.Style
	TimerWorkMode  lipgloss.Style
	TimerBreakMode lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style
	FormLabel        lipgloss.Style
	FormError        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		App: lipgloss.NewStyle().
			Background(Base),

		Header: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true).
			Padding(0, 1),

		Tab: lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 2),

		TabActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Blue).
			Bold(true).
			Padding(0, 2),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		PanelHead: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true).
			MarginBottom(1),

		ListItem: lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2),

		ListItemActive: lipgloss.NewStyle().
			Foreground(Text).
			Background(Surface0).
			Bold(true).
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(Lavender),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Overlay1).
			Strikethrough(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Overlay1),

		Tag: lipgloss.NewStyle().
			Foreground(Teal),

		Overdue: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		JumpLabel: lipgloss.NewStyle().
			Foreground(Base).
			Background(Yellow).
			Bold(true),

		Empty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true).
			Padding(1, 2),

		PriorityBadge: func(p domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[p]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		CategoryBadge: func(c domain.Category) lipgloss.Style {
			color, ok := CategoryColors[c]
			if !ok {
				color = Subtext0
			}
			return lipgloss.NewStyle().
				Foreground(color)
		},

		StatValue: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(Subtext0),

		TimerClock: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Padding(1, 4),

		TimerWorkMode: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		TimerBreakMode: lipgloss.NewStyle().
			Foreground(Green).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		FormLabel: lipgloss.NewStyle().
			Foreground(Subtext1).
			Bold(true),

		FormError: lipgloss.NewStyle().
			Foreground(Red),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// Status returns the foreground style for a task status
func (s *Styles) Status(status domain.Status) lipgloss.Style {
	color, ok := StatusColors[status]
	if !ok {
		color = Subtext0
	}
	return lipgloss.NewStyle().Foreground(color)
}
