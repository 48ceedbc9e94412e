package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"sprinter/internal/ui/input/types"
)

// TextMode handles keys while the text field has focus. Keys it does not
// consume are edits for the text field.
type TextMode struct{}

func NewTextMode() *TextMode {
	return &TextMode{}
}

func (m *TextMode) Enter(ctx types.Context) []types.Action {
	return []types.Action{types.FocusTextAction{}}
}

func (m *TextMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *TextMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return []types.Action{types.CancelAction{}}, true

	case tea.KeyEnter:
		return []types.Action{types.SubmitAction{}}, true

	case tea.KeyTab:
		if ctx.HasCompletion() {
			return []types.Action{types.AcceptCompletionAction{}}, true
		}
		if !ctx.CursorAtEnd() {
			return nil, true
		}
		return []types.Action{types.PopListAction{}}, true

	case tea.KeyDown, tea.KeyPgDown:
		if ctx.ListVisible() {
			return []types.Action{types.PopListAction{}}, true
		}
		return []types.Action{types.HistoryAction{Step: 1}}, true

	case tea.KeyUp, tea.KeyPgUp:
		if ctx.ListVisible() {
			return nil, true
		}
		return []types.Action{types.HistoryAction{Step: -1}}, true

	case tea.KeyCtrlL:
		return []types.Action{types.SelectAllTextAction{}}, true

	case tea.KeyCtrlS:
		return []types.Action{types.SortListAction{}}, true

	case tea.KeyF1:
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	return nil, false
}
