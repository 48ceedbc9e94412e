package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ItemRenderer handles rendering of list items
type ItemRenderer struct {
	styles *Styles
}

// NewItemRenderer creates a new item renderer
func NewItemRenderer(styles *Styles) *ItemRenderer {
	return &ItemRenderer{styles: styles}
}

// RenderItem renders one item into a cell of the given width. Parts of the
// text matching the literal segments of pattern are emphasized.
func (r *ItemRenderer) RenderItem(text, pattern string, width int, highlighted, selected bool) string {
	base := r.styles.Item
	switch {
	case highlighted:
		base = r.styles.Highlight
	case selected:
		base = r.styles.Selected
	}

	marker := "  "
	if highlighted {
		marker = "> "
	}
	plain := cleanText(text)
	if width > 0 {
		plain = ansi.Truncate(plain, width-len(marker), "…")
	}

	line := base.Render(marker) + r.highlightMatch(plain, pattern, r.styles.Match.Inherit(base), base)
	if width > 0 {
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += base.Render(strings.Repeat(" ", pad))
		}
	}
	return line
}

// highlightMatch emphasizes each literal segment of a wildcard pattern in
// order of appearance
func (r *ItemRenderer) highlightMatch(text, pattern string, highlightStyle, normalStyle lipgloss.Style) string {
	segments := patternSegments(pattern)
	if len(segments) == 0 {
		return normalStyle.Render(text)
	}

	lowerText := strings.ToLower(text)
	if len(lowerText) != len(text) {
		return normalStyle.Render(text)
	}
	var result []string
	pos := 0
	for _, segment := range segments {
		index := strings.Index(lowerText[pos:], segment)
		if index == -1 {
			break
		}
		start := pos + index
		end := start + len(segment)
		if start > pos {
			result = append(result, normalStyle.Render(text[pos:start]))
		}
		result = append(result, highlightStyle.Render(text[start:end]))
		pos = end
	}
	if pos < len(text) {
		result = append(result, normalStyle.Render(text[pos:]))
	}

	return strings.Join(result, "")
}

// patternSegments splits a wildcard pattern into lower-cased literal parts
func patternSegments(pattern string) []string {
	fields := strings.FieldsFunc(strings.ToLower(pattern), func(r rune) bool {
		return r == '*' || r == '?' || r == ' '
	})
	return fields
}

// cleanText strips escape sequences and flattens tabs so one item stays one line
func cleanText(text string) string {
	text = ansi.Strip(text)
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return ' '
		}
		if r < ' ' || r == 0x7f {
			return -1
		}
		return r
	}, text)
}
