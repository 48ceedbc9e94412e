package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// pollInterval is the idle delay between input polls
	pollInterval = 15 * time.Millisecond
	// materializeInterval is how often newly read items are published
	materializeInterval = 500 * time.Millisecond
)

// pollMsg asks the model to drain ready input
type pollMsg struct{}

// materializeMsg publishes pending items to the list
type materializeMsg struct{}

// filterMsg fires when a requested filter delay has elapsed
type filterMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

func pollAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return pollMsg{} }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return pollMsg{} })
}

func materializeTick() tea.Cmd {
	return tea.Tick(materializeInterval, func(time.Time) tea.Msg { return materializeMsg{} })
}

func filterAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return filterMsg{} })
}
