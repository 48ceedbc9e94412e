package views

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// StyleSpec describes one style in a style file. Unset fields keep the default.
type StyleSpec struct {
	Foreground string `toml:"foreground,omitempty"`
	Background string `toml:"background,omitempty"`
	Bold       *bool  `toml:"bold,omitempty"`
	Italic     *bool  `toml:"italic,omitempty"`
	Underline  *bool  `toml:"underline,omitempty"`
	Faint      *bool  `toml:"faint,omitempty"`
	Reverse    *bool  `toml:"reverse,omitempty"`
}

// StyleFile is the on-disk style override format, e.g.
//
//	[highlight]
//	background = "24"
//	bold = true
type StyleFile struct {
	Title     StyleSpec `toml:"title"`
	Label     StyleSpec `toml:"label"`
	Prompt    StyleSpec `toml:"prompt"`
	Text      StyleSpec `toml:"text"`
	Selection StyleSpec `toml:"selection"`
	Item      StyleSpec `toml:"item"`
	Highlight StyleSpec `toml:"highlight"`
	Selected  StyleSpec `toml:"selected"`
	Match     StyleSpec `toml:"match"`
	Status    StyleSpec `toml:"status"`
	Help      StyleSpec `toml:"help"`
}

// LoadStyles reads a style file and applies it over the default styles
func LoadStyles(path string) (*Styles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}
	return ParseStyles(data)
}

// ParseStyles decodes style file content and applies it over the default styles
func ParseStyles(data []byte) (*Styles, error) {
	var file StyleFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse style file: %w", err)
	}

	s := NewStyles()
	s.Title = file.Title.apply(s.Title)
	s.Label = file.Label.apply(s.Label)
	s.Prompt = file.Prompt.apply(s.Prompt)
	s.Text = file.Text.apply(s.Text)
	s.Selection = file.Selection.apply(s.Selection)
	s.Item = file.Item.apply(s.Item)
	s.Highlight = file.Highlight.apply(s.Highlight)
	s.Selected = file.Selected.apply(s.Selected)
	s.Match = file.Match.apply(s.Match)
	s.Status = file.Status.apply(s.Status)
	s.Help = file.Help.apply(s.Help)
	return s, nil
}

func (spec StyleSpec) apply(style lipgloss.Style) lipgloss.Style {
	if spec.Foreground != "" {
		style = style.Foreground(lipgloss.Color(spec.Foreground))
	}
	if spec.Background != "" {
		style = style.Background(lipgloss.Color(spec.Background))
	}
	if spec.Bold != nil {
		style = style.Bold(*spec.Bold)
	}
	if spec.Italic != nil {
		style = style.Italic(*spec.Italic)
	}
	if spec.Underline != nil {
		style = style.Underline(*spec.Underline)
	}
	if spec.Faint != nil {
		style = style.Faint(*spec.Faint)
	}
	if spec.Reverse != nil {
		style = style.Reverse(*spec.Reverse)
	}
	return style
}
