package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Prompt      lipgloss.Style
	Text        lipgloss.Style
	Selection   lipgloss.Style // pending selection in the text field
	Item        lipgloss.Style
	Highlight   lipgloss.Style // current row
	Selected    lipgloss.Style // rows of a multi-selection
	Match       lipgloss.Style // matched part of an item
	Dim         lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Prompt:      lipgloss.NewStyle().Foreground(lipgloss.Color("99")),
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250")),
		Item:        lipgloss.NewStyle(),
		Highlight:   lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Selected:    lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Match:       lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
