package state

import (
	"sprinter/internal/domain"
)

// NavigationState contains the interactive state of a picker session
type NavigationState struct {
	// Focus
	Focus    domain.Focus
	HideList bool // list suppressed (minimal mode, text focused)

	// Text state
	OriginalTypedText string // last text typed by the user, not set by echo
	Seeded            bool   // first-match auto-seed already happened

	// Highlight state, positions into the visible matches
	Highlight  int // -1 for none
	Anchor     int // start of a multi-selection range, -1 for none
	HistoryPos int // history stepping position in minimal mode, -1 for none

	// UI state
	ShowHelp      bool
	StatusMessage string
	IngestDone    bool

	// Outcome
	Result domain.Result
}

// NewNavigationState creates the initial state
func NewNavigationState(minimal bool) *NavigationState {
	return &NavigationState{
		Focus:      domain.FocusText,
		HideList:   minimal,
		Highlight:  -1,
		Anchor:     -1,
		HistoryPos: -1,
	}
}

// Selected returns the highlighted range [from, to] in display positions.
// Without a multi-selection anchor the range is the highlighted row only.
func (s *NavigationState) Selected() (from, to int) {
	if s.Highlight < 0 {
		return -1, -1
	}
	if s.Anchor < 0 {
		return s.Highlight, s.Highlight
	}
	if s.Anchor < s.Highlight {
		return s.Anchor, s.Highlight
	}
	return s.Highlight, s.Anchor
}

// IsSelected reports whether a display position is in the highlighted range
func (s *NavigationState) IsSelected(pos int) bool {
	from, to := s.Selected()
	return from >= 0 && pos >= from && pos <= to
}

// Done reports whether the session has been decided
func (s *NavigationState) Done() bool {
	return s.Result.Done()
}
