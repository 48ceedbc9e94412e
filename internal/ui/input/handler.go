package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"sprinter/internal/ui/input/modes"
	"sprinter/internal/ui/input/types"
)

// Handler dispatches keys to the handler of the current mode
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
}

func New() *Handler {
	h := &Handler{
		currentMode: types.ModeText,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeText] = modes.NewTextMode()
	h.modes[types.ModeList] = modes.NewListMode()

	return h
}

// HandleKey translates a key into actions. Mode changes requested by the
// mode handler are applied here and replaced by the enter/exit actions of
// the modes involved, in order.
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	// Unconsumed keys in text mode are edits
	if !consumed {
		if h.currentMode == types.ModeText {
			return []types.Action{types.EditTextAction{Key: msg}}
		}
		return nil
	}

	var allActions []types.Action
	for _, action := range actions {
		changeMode, ok := action.(types.ChangeModeAction)
		if !ok {
			allActions = append(allActions, action)
			continue
		}
		if changeMode.Mode == h.currentMode {
			continue
		}
		if current := h.modes[h.currentMode]; current != nil {
			allActions = append(allActions, current.Exit(ctx)...)
		}
		h.currentMode = changeMode.Mode
		if next := h.modes[h.currentMode]; next != nil {
			allActions = append(allActions, next.Enter(ctx)...)
		}
	}
	return allActions
}

// CurrentMode returns the active mode
func (h *Handler) CurrentMode() types.Mode {
	return h.currentMode
}

// ChangeMode switches mode without running enter/exit hooks. Used when
// the controller moves focus on its own.
func (h *Handler) ChangeMode(mode types.Mode) {
	h.currentMode = mode
}
