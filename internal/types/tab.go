package types

// Tab is one of the top-level screens
type Tab int

const (
	TabDashboard Tab = iota
	TabTasks
	TabAnalytics
	TabTimer
)

// Tabs lists every tab in display order
var Tabs = []Tab{TabDashboard, TabTasks, TabAnalytics, TabTimer}

// String returns the tab title
func (t Tab) String() string {
	switch t {
	case TabDashboard:
		return "Dashboard"
	case TabTasks:
		return "Tasks"
	case TabAnalytics:
		return "Analytics"
	case TabTimer:
		return "Timer"
	default:
		return "Unknown"
	}
}

// Key returns the number key that selects the tab
func (t Tab) Key() string {
	return string(rune('1' + int(t)))
}
