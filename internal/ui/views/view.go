package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Row is one visible list entry
type Row struct {
	Text        string
	Highlighted bool
	Selected    bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Title         string
	Label         string
	Field         string // rendered text field
	Pattern       string // active filter, for match emphasis
	ListVisible   bool
	Rows          []Row // visible window, row-major in grid mode
	Columns       int
	CellWidth     int
	CellHeight    int
	Matches       int
	Total         int
	Highlight     int // display position, -1 for none
	Loading       bool
	Sorted        bool
	StatusMessage string
	StatusError   bool
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles     *Styles
	itemRender *ItemRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	if styles == nil {
		styles = NewStyles()
	}
	return &Renderer{
		styles:     styles,
		itemRender: NewItemRenderer(styles),
	}
}

// Styles returns the styles in use
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}

	var lines []string
	if state.Title != "" {
		lines = append(lines, r.styles.Title.Render(ansi.Truncate(state.Title, width, "…")))
	}
	if state.Label != "" {
		lines = append(lines, r.styles.Label.Render(ansi.Truncate(state.Label, width, "…")))
	}
	lines = append(lines, ansi.Truncate(state.Field, width, ""))

	if state.ListVisible {
		lines = append(lines, r.renderList(state, width)...)
	}

	lines = append(lines, r.renderStatus(state, width))
	if state.HelpView != "" {
		lines = append(lines, state.HelpView)
	}
	return strings.Join(lines, "\n")
}

// ListTop returns the line where the list starts
func (r *Renderer) ListTop(state ViewState) int {
	top := 1 // text field
	if state.Title != "" {
		top++
	}
	if state.Label != "" {
		top++
	}
	return top
}

// ListLines returns how many lines are left for the list
func (r *Renderer) ListLines(state ViewState) int {
	fixed := r.ListTop(state) + 1 // status line
	if state.HelpView != "" {
		fixed += lipgloss.Height(state.HelpView)
	}
	lines := state.Height - fixed
	if lines < 1 {
		lines = 1
	}
	return lines
}

// ListRows returns how many list rows fit, accounting for the cell height
func (r *Renderer) ListRows(state ViewState) int {
	rows := r.ListLines(state) / cellHeight(state)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// GridColumns returns how many cells fit on a row
func GridColumns(width, cellWidth int) int {
	if cellWidth <= 0 {
		return 1
	}
	columns := (width + 1) / (cellWidth + 1)
	if columns < 1 {
		columns = 1
	}
	return columns
}

// HitTest maps a mouse position to the offset into state.Rows, or -1
func (r *Renderer) HitTest(state ViewState, x, y int) int {
	if !state.ListVisible {
		return -1
	}
	line := y - r.ListTop(state)
	if line < 0 || line >= r.ListLines(state) {
		return -1
	}
	row := line / cellHeight(state)
	column := 0
	if state.Columns > 1 {
		column = x / (state.CellWidth + 1)
		if column >= state.Columns {
			return -1
		}
	}
	i := row*columns(state) + column
	if i >= len(state.Rows) {
		return -1
	}
	return i
}

func (r *Renderer) renderList(state ViewState, width int) []string {
	if len(state.Rows) == 0 {
		return []string{r.styles.Dim.Render("  no matches")}
	}

	var lines []string
	if columns(state) == 1 {
		for _, row := range state.Rows {
			lines = append(lines, r.renderCell(state, row, width)...)
		}
		return lines
	}

	for start := 0; start < len(state.Rows); start += state.Columns {
		end := start + state.Columns
		if end > len(state.Rows) {
			end = len(state.Rows)
		}
		cells := make([]string, 0, 2*(end-start))
		for i, row := range state.Rows[start:end] {
			if i > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, strings.Join(r.renderCell(state, row, state.CellWidth), "\n"))
		}
		lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, cells...), "\n")...)
	}
	return lines
}

// renderCell renders one item, padded to the cell height
func (r *Renderer) renderCell(state ViewState, row Row, width int) []string {
	lines := []string{r.itemRender.RenderItem(row.Text, state.Pattern, width, row.Highlighted, row.Selected)}
	for len(lines) < cellHeight(state) {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func (r *Renderer) renderStatus(state ViewState, width int) string {
	if state.StatusMessage != "" {
		style := r.styles.Status
		if state.StatusError {
			style = r.styles.StatusError
		}
		return style.Render(ansi.Truncate(state.StatusMessage, width, "…"))
	}

	var parts []string
	position := 0
	if state.Highlight >= 0 {
		position = state.Highlight + 1
	}
	parts = append(parts, fmt.Sprintf("%d/%d", position, state.Matches))
	if state.Matches != state.Total {
		parts = append(parts, fmt.Sprintf("of %d", state.Total))
	}
	if state.Sorted {
		parts = append(parts, "sorted")
	}
	if state.Loading {
		parts = append(parts, "reading…")
	}
	return r.styles.Status.Render(ansi.Truncate(strings.Join(parts, " "), width, "…"))
}

func columns(state ViewState) int {
	if state.Columns < 1 {
		return 1
	}
	return state.Columns
}

func cellHeight(state ViewState) int {
	if state.CellHeight < 1 {
		return 1
	}
	return state.CellHeight
}
