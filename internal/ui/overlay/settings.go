package overlay

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// SettingType represents the type of a setting
type SettingType int

const (
	// SettingToggle is a boolean on/off setting (Space/Enter to toggle)
	SettingToggle SettingType = iota
	// SettingChoice is a multiple-choice setting (Left/Right to cycle)
	SettingChoice
	// SettingAction is an action that triggers something (Enter to activate)
	SettingAction
	// SettingSeparator is a visual separator (not selectable)
	SettingSeparator
)

// SettingItem represents a single setting in the settings menu
type SettingItem struct {
	Key      string
	Label    string
	Type     SettingType
	Value    any
	Choices  []string       // For SettingChoice type
	OnChange func(any)      // Callback when value changes
	OnAction func() tea.Cmd // Callback for SettingAction type
}

// Preferences are the settings that can be changed while the app runs
type Preferences struct {
	WorkMinutes   int
	BreakMinutes  int
	Notifications bool
}

// PreferencesChangedMsg is emitted after every change. Save is set when the
// user asked to write the preferences to the config file.
type PreferencesChangedMsg struct {
	Preferences Preferences
	Save        bool
}

var (
	workChoices  = []int{15, 20, 25, 30, 45, 50, 60, 90}
	breakChoices = []int{3, 5, 10, 15, 20, 30}
)

// SettingsOverlay is a settings menu overlay
type SettingsOverlay struct {
	items  []SettingItem
	cursor int
	styles *Styles
	prefs  *Preferences
}

// NewSettingsOverlay creates a new settings overlay with the given items
func NewSettingsOverlay(items []SettingItem) *SettingsOverlay {
	s := New()
	menu := &SettingsOverlay{
		items:  items,
		cursor: 0,
		styles: s,
	}
	// Position cursor on first selectable item
	menu.moveCursorToNextSelectable()
	return menu
}

// NewPreferencesOverlay edits the focus timer lengths and notifications.
// Values that are not in the choice lists are offered as an extra choice.
func NewPreferencesOverlay(current Preferences) *SettingsOverlay {
	prefs := current
	items := []SettingItem{
		{
			Key:   "n",
			Label: "Notifications",
			Type:  SettingToggle,
			Value: prefs.Notifications,
			OnChange: func(value any) {
				prefs.Notifications, _ = value.(bool)
			},
		},
		{
			Key:     "w",
			Label:   "Focus length (min)",
			Type:    SettingChoice,
			Value:   strconv.Itoa(prefs.WorkMinutes),
			Choices: minuteChoices(workChoices, prefs.WorkMinutes),
			OnChange: func(value any) {
				prefs.WorkMinutes = atoi(value)
			},
		},
		{
			Key:     "b",
			Label:   "Break length (min)",
			Type:    SettingChoice,
			Value:   strconv.Itoa(prefs.BreakMinutes),
			Choices: minuteChoices(breakChoices, prefs.BreakMinutes),
			OnChange: func(value any) {
				prefs.BreakMinutes = atoi(value)
			},
		},
		{
			Label: "───────────────────",
			Type:  SettingSeparator,
		},
		{
			Key:   "s",
			Label: "Save to config file",
			Type:  SettingAction,
			OnAction: func() tea.Cmd {
				p := prefs
				return func() tea.Msg {
					return PreferencesChangedMsg{Preferences: p, Save: true}
				}
			},
		},
	}

	menu := NewSettingsOverlay(items)
	menu.prefs = &prefs
	return menu
}

// Preferences returns the edited values, or false for a generic menu
func (m *SettingsOverlay) Preferences() (Preferences, bool) {
	if m.prefs == nil {
		return Preferences{}, false
	}
	return *m.prefs, true
}

// Init initializes the overlay
func (m *SettingsOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SettingsOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CloseOverlayMsg{} }

		case "j", "down":
			m.moveCursorDown()
			return m, nil

		case "k", "up":
			m.moveCursorUp()
			return m, nil

		case "h", "left":
			return m, m.stepChoice(-1)

		case "l", "right":
			return m, m.stepChoice(1)

		case " ", "enter":
			return m, m.activateCurrent()
		}
	}

	return m, nil
}

// View renders the settings menu
func (m *SettingsOverlay) View() string {
	lines := make([]string, 0, len(m.items)+2)
	for i, item := range m.items {
		lines = append(lines, m.renderItem(item, i == m.cursor))
	}
	lines = append(lines, "", m.styles.Footer.Render("j/k: move  h/l: change  Space: toggle  Enter: run  Esc: close"))
	return strings.Join(lines, "\n")
}

func (m *SettingsOverlay) renderItem(item SettingItem, active bool) string {
	if item.Type == SettingSeparator {
		return m.styles.Separator.Render(item.Label)
	}

	style := m.styles.MenuItem
	if active {
		style = m.styles.MenuItemActive
	}
	line := m.styles.MenuKey.Render("["+item.Key+"]") + " " + style.Render(fmt.Sprintf("%-20s", item.Label))

	switch item.Type {
	case SettingToggle:
		state := "off"
		if on, _ := item.Value.(bool); on {
			state = "on"
		}
		line += style.Render(" [" + state + "]")
	case SettingChoice:
		choice, _ := item.Value.(string)
		line += style.Render(" < " + choice + " >")
	}
	return line
}

// Title returns the overlay title
func (m *SettingsOverlay) Title() string {
	return "Settings"
}

// Size returns the overlay dimensions
func (m *SettingsOverlay) Size() (width, height int) {
	// Height: number of items + footer + padding
	return 60, len(m.items) + 6
}

// moveCursorDown moves the cursor to the next selectable item
func (m *SettingsOverlay) moveCursorDown() {
	for i := 1; i <= len(m.items); i++ {
		next := (m.cursor + i) % len(m.items)
		if m.items[next].Type != SettingSeparator {
			m.cursor = next
			return
		}
	}
}

// moveCursorUp moves the cursor to the previous selectable item
func (m *SettingsOverlay) moveCursorUp() {
	for i := 1; i <= len(m.items); i++ {
		prev := (m.cursor - i + len(m.items)) % len(m.items)
		if m.items[prev].Type != SettingSeparator {
			m.cursor = prev
			return
		}
	}
}

// moveCursorToNextSelectable moves cursor to first selectable item from current position
func (m *SettingsOverlay) moveCursorToNextSelectable() {
	for i := 0; i < len(m.items); i++ {
		if m.items[i].Type != SettingSeparator {
			m.cursor = i
			return
		}
	}
}

func (m *SettingsOverlay) current() *SettingItem {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

// activateCurrent toggles a toggle setting or triggers an action
func (m *SettingsOverlay) activateCurrent() tea.Cmd {
	item := m.current()
	if item == nil {
		return nil
	}

	switch item.Type {
	case SettingToggle:
		if v, ok := item.Value.(bool); ok {
			item.Value = !v
			if item.OnChange != nil {
				item.OnChange(item.Value)
			}
			return m.changed()
		}
	case SettingAction:
		if item.OnAction != nil {
			return item.OnAction()
		}
	}
	return nil
}

// stepChoice moves a choice setting by delta, wrapping around
func (m *SettingsOverlay) stepChoice(delta int) tea.Cmd {
	item := m.current()
	if item == nil || item.Type != SettingChoice || len(item.Choices) == 0 {
		return nil
	}

	// Find current value index
	currentIdx := -1
	if v, ok := item.Value.(string); ok {
		for i, choice := range item.Choices {
			if choice == v {
				currentIdx = i
				break
			}
		}
	}
	if currentIdx < 0 && delta < 0 {
		currentIdx = 0
	}

	n := len(item.Choices)
	item.Value = item.Choices[((currentIdx+delta)%n+n)%n]

	if item.OnChange != nil {
		item.OnChange(item.Value)
	}
	return m.changed()
}

// changed reports the edited preferences to the app
func (m *SettingsOverlay) changed() tea.Cmd {
	prefs, ok := m.Preferences()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return PreferencesChangedMsg{Preferences: prefs}
	}
}

// minuteChoices renders choices as strings, inserting current in order
// when it is not one of them
func minuteChoices(choices []int, current int) []string {
	out := make([]string, 0, len(choices)+1)
	inserted := current <= 0
	for _, c := range choices {
		if c == current {
			inserted = true
		}
		if !inserted && current < c {
			out = append(out, strconv.Itoa(current))
			inserted = true
		}
		out = append(out, strconv.Itoa(c))
	}
	if !inserted {
		out = append(out, strconv.Itoa(current))
	}
	return out
}

func atoi(v any) int {
	s, _ := v.(string)
	n, _ := strconv.Atoi(s)
	return n
}
