package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/taskflow/internal/ui/styles"
)

// SearchMsg is emitted on every keystroke for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay provides a search input overlay
type SearchOverlay struct {
	input      textinput.Model
	original   string
	matchCount int
}

var searchStyle = lipgloss.NewStyle().
	Foreground(styles.Text).
	Background(styles.Surface0)

var matchCountStyle = lipgloss.NewStyle().
	Foreground(styles.Overlay1).
	Background(styles.Surface0)

// NewSearchOverlay creates a new search overlay prefilled with the active query
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title, description or tags..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)

	return &SearchOverlay{
		input:    ti,
		original: query,
	}
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Query returns the text typed so far
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			// Enter closes overlay but keeps the query active
			return s, func() tea.Msg { return CloseOverlayMsg{} }

		case tea.KeyEsc:
			// Esc restores the query that was active before the overlay opened
			s.input.SetValue(s.original)
			original := s.original
			return s, tea.Batch(
				func() tea.Msg { return SearchMsg{Query: original} },
				func() tea.Msg { return CloseOverlayMsg{} },
			)
		}
	}

	prevValue := s.input.Value()
	s.input, cmd = s.input.Update(msg)

	if value := s.input.Value(); value != prevValue {
		return s, tea.Batch(
			cmd,
			func() tea.Msg { return SearchMsg{Query: value} },
		)
	}

	return s, cmd
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	inputView := s.input.View()

	if s.input.Value() != "" {
		countText := fmt.Sprintf(" (%d matches)", s.matchCount)
		inputView += matchCountStyle.Render(countText)
	}

	return searchStyle.Render(inputView)
}

// Title implements Overlay interface (returns empty for search bar)
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay interface (full-width single line)
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
