package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode, one per focus target
type Mode int

const (
	ModeText Mode = iota
	ModeList
)

func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeList:
		return "list"
	default:
		return "unknown"
	}
}

// Action represents a command the controller should execute
type Action interface {
	Type() string
}

// Context provides read-only access to state needed for input handling
type Context interface {
	HasCompletion() bool
	CursorAtEnd() bool
	ListVisible() bool
	Wrapping() bool
	AtFirstRow() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action
}
