package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// homeRow defines the home row keys for jump labels
var homeRow = []rune{'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';'}

// alphabet for double-char labels when we need more than 10
var alphabet = []rune("abcdefghijklmnopqrstuvwxyz")

// maxPreview caps the labels listed in the prompt
const maxPreview = 20

var (
	jumpBarStyle = lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0)

	jumpInputStyle = lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Background(styles.Surface1).
			Bold(true)

	jumpHintStyle = lipgloss.NewStyle().
			Foreground(styles.Overlay1).
			Background(styles.Surface0)
)

// GenerateLabels generates jump labels for the given count
// Uses single home row characters first, then double alpha characters
func GenerateLabels(count int) []string {
	if count <= 0 {
		return []string{}
	}

	labels := make([]string, 0, count)

	// Single character labels using home row (fast access)
	for i := 0; i < count && i < len(homeRow); i++ {
		labels = append(labels, string(homeRow[i]))
	}

	if len(labels) >= count {
		return labels
	}

	// Double character labels, home row pairs first
	seen := make(map[string]bool, count)
	for _, set := range [][]rune{homeRow, alphabet} {
		for _, first := range set {
			for _, second := range set {
				if len(labels) >= count {
					return labels
				}
				label := string(first) + string(second)
				if !seen[label] {
					seen[label] = true
					labels = append(labels, label)
				}
			}
		}
	}

	return labels
}

// JumpMode reads a row label and reports the matching task index.
// The labels themselves are drawn on the task list rows.
type JumpMode struct {
	order  []string       // labels in row order
	labels map[string]int // label -> row index
	input  string
	maxLen int
}

// JumpSelectedMsg is sent when a jump target is selected
type JumpSelectedMsg struct {
	TaskIndex int
}

// NewJumpMode creates a jump prompt for taskCount rows
func NewJumpMode(taskCount int) *JumpMode {
	order := GenerateLabels(taskCount)
	labelMap := make(map[string]int, len(order))

	maxLen := 1
	for i, label := range order {
		labelMap[label] = i
		maxLen = max(maxLen, len(label))
	}

	return &JumpMode{
		order:  order,
		labels: labelMap,
		maxLen: maxLen,
	}
}

// Labels returns the labels in row order
func (j *JumpMode) Labels() []string {
	return j.order
}

// Init initializes the jump mode
func (j *JumpMode) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (j *JumpMode) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return j, nil
	}

	switch keyMsg.String() {
	case "esc":
		return j, func() tea.Msg { return CloseOverlayMsg{} }

	case "backspace":
		if len(j.input) > 0 {
			j.input = j.input[:len(j.input)-1]
		}
		return j, nil

	case "enter":
		// Picks a short label that is also a prefix of longer ones
		if index, ok := j.labels[j.input]; ok {
			return j, func() tea.Msg {
				return JumpSelectedMsg{TaskIndex: index}
			}
		}
		return j, nil
	}

	key := keyMsg.String()
	if len(key) != 1 || !isJumpKey(rune(key[0])) {
		return j, nil
	}
	j.input += key

	if index, ok := j.labels[j.input]; ok {
		if len(j.input) >= j.maxLen || !j.hasLongerMatch() {
			return j, func() tea.Msg {
				return JumpSelectedMsg{TaskIndex: index}
			}
		}
	}

	if len(j.input) >= j.maxLen {
		j.input = ""
	}
	return j, nil
}

// View renders the single-line jump prompt
func (j *JumpMode) View() string {
	var b strings.Builder

	b.WriteString("Jump: ")
	if j.input == "" {
		b.WriteString(jumpHintStyle.Render("Type a label to jump..."))
	} else {
		b.WriteString("Input: ")
		b.WriteString(jumpInputStyle.Render(j.input))
	}

	if len(j.order) == 0 {
		b.WriteString(jumpHintStyle.Render("  no tasks  Esc: cancel"))
		return jumpBarStyle.Render(b.String())
	}

	preview := j.order
	if len(preview) > maxPreview {
		preview = preview[:maxPreview]
	}
	b.WriteString(jumpHintStyle.Render("  [" + strings.Join(preview, " ")))
	if more := len(j.order) - len(preview); more > 0 {
		b.WriteString(jumpHintStyle.Render(fmt.Sprintf(" +%d", more)))
	}
	b.WriteString(jumpHintStyle.Render("]  Enter: pick  Esc: cancel"))

	return jumpBarStyle.Render(b.String())
}

// Title returns the overlay title
func (j *JumpMode) Title() string {
	return "Jump"
}

// Size returns the overlay dimensions (full-width single line)
func (j *JumpMode) Size() (width, height int) {
	return 0, 1
}

// GetLabel returns the label for a given task index
func (j *JumpMode) GetLabel(index int) string {
	if index < 0 || index >= len(j.order) {
		return ""
	}
	return j.order[index]
}

// hasLongerMatch checks if there are any labels that start with current input
// and are longer than the current input
func (j *JumpMode) hasLongerMatch() bool {
	for label := range j.labels {
		if len(label) > len(j.input) && strings.HasPrefix(label, j.input) {
			return true
		}
	}
	return false
}

// isJumpKey checks if a rune is valid for jump labels (home row or alphabet)
func isJumpKey(r rune) bool {
	return r == ';' || (r >= 'a' && r <= 'z')
}
