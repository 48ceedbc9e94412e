package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"sprinter/internal/ui/input/types"
)

// ListMode handles keys while the candidate list has focus
type ListMode struct{}

func NewListMode() *ListMode {
	return &ListMode{}
}

func (m *ListMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ListMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ListMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	toText := types.ChangeModeAction{Mode: types.ModeText}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return []types.Action{types.CancelAction{}}, true

	case tea.KeyEnter:
		return []types.Action{types.SubmitAction{}}, true

	case tea.KeyTab:
		return []types.Action{toText}, true

	case tea.KeyUp, tea.KeyPgUp:
		// Leaving the top of the list returns to the text field
		if ctx.AtFirstRow() {
			return []types.Action{types.RestoreTypedTextAction{}, toText}, true
		}
		if msg.Type == tea.KeyUp {
			return []types.Action{types.NavigateAction{Direction: "up"}}, true
		}
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case tea.KeyPgDown:
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case tea.KeyEnd:
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case tea.KeyShiftUp:
		return []types.Action{types.ExtendSelectionAction{Direction: "up"}}, true

	case tea.KeyShiftDown:
		return []types.Action{types.ExtendSelectionAction{Direction: "down"}}, true

	case tea.KeyLeft, tea.KeyRight:
		if ctx.Wrapping() {
			direction := "left"
			if msg.Type == tea.KeyRight {
				direction = "right"
			}
			return []types.Action{types.NavigateAction{Direction: direction}}, true
		}
		return []types.Action{toText, types.EditTextAction{Key: msg}}, true

	case tea.KeyCtrlL:
		return []types.Action{toText, types.SelectAllTextAction{}}, true

	case tea.KeyCtrlS:
		return []types.Action{types.SortListAction{}}, true

	case tea.KeyF1:
		return []types.Action{types.ToggleHelpAction{}}, true

	case tea.KeyRunes, tea.KeySpace, tea.KeyBackspace, tea.KeyDelete:
		// Typing goes to the text field
		return []types.Action{toText, types.EditTextAction{Key: msg}}, true
	}

	return nil, false
}
