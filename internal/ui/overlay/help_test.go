package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpKey(h *HelpOverlay, key string) tea.Cmd {
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := h.Update(msg)
	return cmd
}

func TestHelpOverlay_TitleAndSize(t *testing.T) {
	help := NewHelpOverlay()

	assert.Equal(t, "Help", help.Title())
	w, h := help.Size()
	assert.Equal(t, 50, w)
	assert.Greater(t, h, helpRows)
	assert.Nil(t, help.Init())
}

func TestHelpOverlay_ViewShowsFirstPage(t *testing.T) {
	help := NewHelpOverlay()
	view := ansi.Strip(help.View())

	for _, want := range []string{"Tabs:", "Tasks:", "Add task", "j/k: scroll"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "Quit", "last category is below the fold")
}

func TestHelpOverlay_Scrolling(t *testing.T) {
	help := NewHelpOverlay()
	require.Greater(t, help.maxScroll(), 0)

	helpKey(help, "j")
	helpKey(help, "down")
	assert.Equal(t, 2, help.scroll)

	helpKey(help, "k")
	assert.Equal(t, 1, help.scroll)

	helpKey(help, "G")
	assert.Equal(t, help.maxScroll(), help.scroll)
	assert.Contains(t, ansi.Strip(help.View()), "Quit")

	helpKey(help, "j")
	assert.Equal(t, help.maxScroll(), help.scroll, "clamped at the bottom")

	helpKey(help, "g")
	assert.Equal(t, 0, help.scroll)

	helpKey(help, "k")
	assert.Equal(t, 0, help.scroll, "clamped at the top")
}

func TestHelpOverlay_CloseKeys(t *testing.T) {
	for _, key := range []string{"esc", "q", "?"} {
		t.Run(key, func(t *testing.T) {
			cmd := helpKey(NewHelpOverlay(), key)
			require.NotNil(t, cmd)
			assert.IsType(t, CloseOverlayMsg{}, cmd())
		})
	}
}

func TestKeyCategories_Complete(t *testing.T) {
	seen := make(map[string]bool)
	for _, cat := range keyCategories {
		assert.NotEmpty(t, cat.Name)
		assert.NotEmpty(t, cat.Bindings, cat.Name)
		for _, b := range cat.Bindings {
			assert.NotEmpty(t, b.Key)
			assert.NotEmpty(t, b.Description)
			seen[b.Key] = true
		}
	}

	for _, key := range []string{"a", "e", "d", "/", "f", "o", "J", ",", "n", "q"} {
		assert.True(t, seen[key], "missing binding for %q", key)
	}
}

func TestHelpOverlay_BindingsAligned(t *testing.T) {
	for _, line := range NewHelpOverlay().lines {
		plain := ansi.Strip(line)
		if !strings.HasPrefix(plain, "  ") {
			continue
		}
		assert.Equal(t, "  ", plain[8:10], "descriptions start in one column: %q", plain)
	}
}
