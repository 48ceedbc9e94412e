package textfield

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTypingReplacesSelection(t *testing.T) {
	f := New()
	f.SetTextWithSelection("alpha", 2)
	require.True(t, f.HasSelection())
	assert.Equal(t, "al", f.UnselectedText())
	assert.Equal(t, "pha", f.SelectedText())

	edited, _ := f.Update(runes("b"))
	assert.True(t, edited)
	assert.Equal(t, "alb", f.Value())
	assert.False(t, f.HasSelection())
}

func TestBackspaceDeletesSelectionOnly(t *testing.T) {
	f := New()
	f.SetTextWithSelection("alpha", 2)

	edited, _ := f.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.True(t, edited)
	assert.Equal(t, "al", f.Value())
}

func TestLeftMovesToSelectionStart(t *testing.T) {
	f := New()
	f.SetTextWithSelection("alpha", 2)

	edited, _ := f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.False(t, edited)
	assert.Equal(t, "alpha", f.Value())
	assert.False(t, f.HasSelection())
	assert.Equal(t, "al", f.UnselectedText())
	assert.False(t, f.AtEnd())
}

func TestAcceptSelectionKeepsText(t *testing.T) {
	f := New()
	f.SetTextWithSelection("alpha", 2)

	completion, ok := f.Completion()
	require.True(t, ok)
	assert.Equal(t, "alpha", completion)

	assert.True(t, f.AcceptSelection())
	assert.Equal(t, "alpha", f.Value())
	assert.Equal(t, "alpha", f.UnselectedText())
	assert.False(t, f.AcceptSelection())
}

func TestSelectAllIsOverwritten(t *testing.T) {
	f := New()
	f.SetText("seed")
	f.SelectAll()
	assert.Equal(t, "", f.UnselectedText())

	f.Update(runes("x"))
	assert.Equal(t, "x", f.Value())
}

func TestEmptySelectionRange(t *testing.T) {
	f := New()
	f.SetTextWithSelection("al", 2)
	assert.False(t, f.HasSelection())
	assert.Equal(t, "al", f.UnselectedText())
}

func TestMultilineTextSurvivesUntilEdited(t *testing.T) {
	f := New()
	f.SetTextWithSelection("alpha\nalbum", 0)
	assert.Equal(t, "alpha\nalbum", f.Value())
	assert.Equal(t, "alpha\nalbum", f.SelectedText())

	f.AcceptSelection()
	f.Update(runes("!"))
	assert.NotContains(t, f.Value(), "\n")
}
