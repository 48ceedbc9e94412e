package input

import (
	"sprinter/internal/ui/logic"
	"sprinter/internal/ui/state"
	"sprinter/internal/ui/textfield"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State     *state.NavigationState
	Field     *textfield.Model
	Navigator *logic.Navigator
	Wrap      bool
}

// HasCompletion reports whether the text field holds a pending completion
func (c *ModelContext) HasCompletion() bool {
	return c.Field.HasSelection()
}

// CursorAtEnd reports whether the text cursor sits after the last character
func (c *ModelContext) CursorAtEnd() bool {
	return c.Field.AtEnd()
}

// ListVisible reports whether the candidate list is shown
func (c *ModelContext) ListVisible() bool {
	return !c.State.HideList
}

// Wrapping reports whether the list is laid out as a grid
func (c *ModelContext) Wrapping() bool {
	return c.Wrap
}

// AtFirstRow reports whether the highlight is on the top row of the list
func (c *ModelContext) AtFirstRow() bool {
	if c.State.Highlight < 0 {
		return true
	}
	return c.Navigator.Row(c.State.Highlight) == 0
}
