// Package textfield is the single-line editor above the list. It wraps
// bubbles/textinput and adds a pending selection at the end of the text,
// used for inline completion and for echoing highlighted list rows.
package textfield

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the text field state
type Model struct {
	input textinput.Model

	// selStart is the rune offset where the pending selection starts.
	// The selection always runs to the end of the text. -1 means none.
	selStart int

	// raw keeps text that textinput would flatten (multi-line echo) as long
	// as the displayed value is untouched.
	raw   string
	shown string

	SelectionStyle lipgloss.Style
}

// New creates a focused, empty text field
func New() *Model {
	in := textinput.New()
	in.Prompt = "> "
	in.Focus()
	return &Model{
		input:          in,
		selStart:       -1,
		SelectionStyle: lipgloss.NewStyle().Reverse(true),
	}
}

// SetStyles applies prompt and text styles
func (m *Model) SetStyles(prompt, text, selection lipgloss.Style) {
	m.input.PromptStyle = prompt
	m.input.TextStyle = text
	m.SelectionStyle = selection
}

// SetWidth limits the visible width of the editor
func (m *Model) SetWidth(width int) {
	m.input.Width = width
}

// Value returns the full text including any pending selection
func (m *Model) Value() string {
	v := m.input.Value()
	if m.raw != "" && v == m.shown {
		return m.raw
	}
	return v
}

// UnselectedText returns the text before the selection, or before the
// cursor when nothing is selected
func (m *Model) UnselectedText() string {
	runes := []rune(m.Value())
	i := m.selStart
	if i < 0 {
		i = m.input.Position()
	}
	if i > len(runes) {
		i = len(runes)
	}
	return string(runes[:i])
}

// SelectedText returns the pending selection
func (m *Model) SelectedText() string {
	if m.selStart < 0 {
		return ""
	}
	return string([]rune(m.Value())[m.selStart:])
}

// HasSelection reports whether a selection is pending
func (m *Model) HasSelection() bool {
	return m.selStart >= 0
}

// Completion returns the completed text while a completion is pending
func (m *Model) Completion() (string, bool) {
	if !m.HasSelection() {
		return "", false
	}
	return m.Value(), true
}

// AtEnd reports whether the cursor is at the end of the text
func (m *Model) AtEnd() bool {
	return m.input.Position() >= len([]rune(m.input.Value()))
}

// SetText replaces the text, clears the selection, moves the cursor to the end
func (m *Model) SetText(text string) {
	m.setValue(text)
	m.selStart = -1
}

// SetTextWithSelection replaces the text and selects from rune offset from
// to the end. An empty range leaves nothing selected.
func (m *Model) SetTextWithSelection(text string, from int) {
	m.setValue(text)
	n := len([]rune(text))
	if from < 0 {
		from = 0
	}
	if from >= n {
		m.selStart = -1
		return
	}
	m.selStart = from
}

// SelectAll selects the whole text
func (m *Model) SelectAll() {
	if m.input.Value() == "" {
		m.selStart = -1
		return
	}
	m.selStart = 0
	m.input.CursorEnd()
}

// AcceptSelection keeps the selected text and clears the selection.
// It reports whether a selection was pending.
func (m *Model) AcceptSelection() bool {
	if m.selStart < 0 {
		return false
	}
	m.selStart = -1
	m.input.CursorEnd()
	return true
}

// Focus gives the editor the cursor
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes the cursor
func (m *Model) Blur() {
	m.input.Blur()
}

// Update applies a key to the text. It reports whether the text changed.
func (m *Model) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	before := m.Value()

	if m.selStart >= 0 {
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.dropSelection()
		case tea.KeyBackspace, tea.KeyDelete:
			m.dropSelection()
			return m.Value() != before, nil
		case tea.KeyLeft:
			m.input.SetCursor(m.selStart)
			m.selStart = -1
			return false, nil
		case tea.KeyRight, tea.KeyEnd:
			m.selStart = -1
			m.input.CursorEnd()
			return false, nil
		default:
			m.selStart = -1
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m.Value() != before, cmd
}

// View renders the prompt and text. A pending selection is drawn with
// SelectionStyle instead of the cursor.
func (m *Model) View() string {
	if m.selStart < 0 {
		return m.input.View()
	}
	runes := []rune(m.input.Value())
	var b strings.Builder
	b.WriteString(m.input.PromptStyle.Render(m.input.Prompt))
	b.WriteString(m.input.TextStyle.Render(string(runes[:m.selStart])))
	b.WriteString(m.SelectionStyle.Render(string(runes[m.selStart:])))
	return b.String()
}

func (m *Model) dropSelection() {
	runes := []rune(m.Value())
	m.setValue(string(runes[:m.selStart]))
	m.selStart = -1
}

func (m *Model) setValue(text string) {
	m.raw = ""
	m.shown = ""
	m.input.SetValue(text)
	if strings.ContainsAny(text, "\n\t") {
		m.raw = text
		m.shown = m.input.Value()
	}
	m.input.CursorEnd()
}
