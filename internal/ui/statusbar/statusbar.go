package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/taskflow/internal/domain"
	"github.com/riordanpawley/taskflow/internal/types"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	tab    types.Tab
	width  int
	styles *styles.Styles

	sel     domain.Selection
	shown   int
	total   int
	unread  int
	hasList bool
}

// New creates a new StatusBar with the given mode, tab, width, and styles
func New(mode types.Mode, tab types.Tab, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		tab:    tab,
		width:  width,
		styles: styles,
		sel:    domain.DefaultSelection(),
	}
}

// WithList adds the active selection and the visible/total task counts
func (sb StatusBar) WithList(sel domain.Selection, shown, total int) StatusBar {
	sb.sel = sel
	sb.shown = shown
	sb.total = total
	sb.hasList = true
	return sb
}

// WithUnread adds the unread notification count
func (sb StatusBar) WithUnread(n int) StatusBar {
	sb.unread = n
	return sb
}

// Render renders the status bar as a string. Hints are cut short to keep
// the bar on one row and leave room for the info on the right.
func (sb StatusBar) Render() string {
	inner := max(sb.width-2, 0) // horizontal padding

	// Mode badge
	modeBadge := sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")

	var infoRendered string
	if info := sb.info(); info != "" {
		infoRendered = sb.styles.StatusInfo.Render(info)
	}

	content := modeBadge
	if hints := GetHints(sb.mode, sb.tab); hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		room := inner - lipgloss.Width(modeBadge) - lipgloss.Width(separator)
		if infoRendered != "" {
			room -= lipgloss.Width(infoRendered) + 1
		}
		if room > 0 {
			hintsRendered := sb.styles.StatusHint.Render(ansi.Truncate(hints, room, "…"))
			content = lipgloss.JoinHorizontal(lipgloss.Left, modeBadge, separator, hintsRendered)
		}
	}

	if infoRendered != "" {
		gap := inner - lipgloss.Width(content) - lipgloss.Width(infoRendered)
		if gap > 0 {
			content = content + strings.Repeat(" ", gap) + infoRendered
		}
	}
	content = ansi.Truncate(content, inner, "")

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

// info summarizes the list selection and unread notifications
func (sb StatusBar) info() string {
	var parts []string
	if sb.hasList {
		if sb.sel.Filter != domain.FilterAll {
			parts = append(parts, "filter: "+sb.sel.Filter.Label())
		}
		if sb.sel.Query != "" {
			parts = append(parts, fmt.Sprintf("search: %q", sb.sel.Query))
		}
		parts = append(parts, "sort: "+sb.sel.Sort.Label())
		parts = append(parts, fmt.Sprintf("%d/%d", sb.shown, sb.total))
	}
	if sb.unread > 0 {
		parts = append(parts, fmt.Sprintf("● %d", sb.unread))
	}
	return strings.Join(parts, " · ")
}
