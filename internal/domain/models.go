package domain

import "strings"

// Item is a single candidate line read from the input stream
type Item struct {
	Index int    // stable insertion index
	Text  string // line content without terminator
}

// Focus identifies which view receives keyboard input
type Focus int

const (
	FocusText Focus = iota
	FocusList
)

func (f Focus) String() string {
	switch f {
	case FocusText:
		return "text"
	case FocusList:
		return "list"
	default:
		return "unknown"
	}
}

// Outcome is the terminal state of a dialog session
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeSubmitted
	OutcomeCancelled
)

// ExitCode maps the outcome to a process exit status
func (o Outcome) ExitCode() int {
	if o == OutcomeSubmitted {
		return 0
	}
	return 1
}

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeSubmitted:
		return "submitted"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result is what a finished session hands to the result sink
type Result struct {
	Outcome Outcome
	Text    string
}

// Done reports whether the session has ended
func (r Result) Done() bool {
	return r.Outcome != OutcomePending
}

// Lines splits submitted text into one entry per selected item.
// A trailing empty line is dropped.
func (r Result) Lines() []string {
	if r.Text == "" {
		return nil
	}
	lines := strings.Split(r.Text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
