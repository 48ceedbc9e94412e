package types

import tea "github.com/charmbracelet/bubbletea"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end", "left", "right"
}

func (a NavigateAction) Type() string { return "navigate" }

// ExtendSelectionAction grows the multi-selection range
type ExtendSelectionAction struct {
	Direction string // "up" or "down"
}

func (a ExtendSelectionAction) Type() string { return "extend_selection" }

// HistoryAction steps through matches without leaving the text field
type HistoryAction struct {
	Step int
}

func (a HistoryAction) Type() string { return "history" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

type FocusTextAction struct{}

func (a FocusTextAction) Type() string { return "focus_text" }

type PopListAction struct{}

func (a PopListAction) Type() string { return "pop_list" }

// RestoreTypedTextAction puts the last typed text back into the field
type RestoreTypedTextAction struct{}

func (a RestoreTypedTextAction) Type() string { return "restore_typed_text" }

// Text field actions
type EditTextAction struct {
	Key tea.KeyMsg
}

func (a EditTextAction) Type() string { return "edit_text" }

type AcceptCompletionAction struct{}

func (a AcceptCompletionAction) Type() string { return "accept_completion" }

type SelectAllTextAction struct{}

func (a SelectAllTextAction) Type() string { return "select_all_text" }

// Session actions
type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type CancelAction struct{}

func (a CancelAction) Type() string { return "cancel" }

// SortListAction switches the list to alphabetical order
type SortListAction struct{}

func (a SortListAction) Type() string { return "sort_list" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }
