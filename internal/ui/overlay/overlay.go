package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay is a panel drawn over the active tab. Size reports the box the
// app reserves for it: a width of 0 asks for a one-line bar above the
// status bar (search, jump) instead of a centered, titled modal.
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// IsBar reports whether o renders as a full-width bottom bar
func IsBar(o Overlay) bool {
	w, _ := o.Size()
	return w == 0
}

// CloseOverlayMsg pops the top overlay off the stack
type CloseOverlayMsg struct{}

// SelectionMsg carries a menu or dialog choice back to the app. Value is
// typed per menu: domain.Status, domain.Filter, domain.Sort or ConfirmResult.
type SelectionMsg struct {
	Key   string
	Value any
}
