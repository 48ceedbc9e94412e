package logic

// Navigator handles cursor movement and viewport management for the list.
// Positions are display positions in the filtered list. In grid mode a
// viewport row holds several cells.
type Navigator struct {
	viewportOffset int // first visible row
	viewportHeight int
	columns        int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{viewportHeight: 1, columns: 1}
}

// SetViewport sets the number of visible rows and cells per row
func (n *Navigator) SetViewport(height, columns int) {
	if height < 1 {
		height = 1
	}
	if columns < 1 {
		columns = 1
	}
	n.viewportHeight = height
	n.columns = columns
}

// Columns returns the number of cells per row
func (n *Navigator) Columns() int {
	return n.columns
}

// Height returns the number of visible rows
func (n *Navigator) Height() int {
	return n.viewportHeight
}

// ViewportOffset returns the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// PageSize returns how many positions fit in the viewport
func (n *Navigator) PageSize() int {
	return n.viewportHeight * n.columns
}

// Row returns the viewport row of a position
func (n *Navigator) Row(pos int) int {
	return pos / n.columns
}

// Rows returns the number of rows needed for total positions
func (n *Navigator) Rows(total int) int {
	return (total + n.columns - 1) / n.columns
}

// Move returns pos moved by delta, clamped to [0, total). No wrap-around.
func (n *Navigator) Move(pos, delta, total int) int {
	if total == 0 {
		return -1
	}
	pos += delta
	if pos < 0 {
		pos = 0
	}
	if pos >= total {
		pos = total - 1
	}
	return pos
}

// Visible returns the range of positions [from, to) in the viewport
func (n *Navigator) Visible(total int) (int, int) {
	from := n.viewportOffset * n.columns
	to := from + n.PageSize()
	if to > total {
		to = total
	}
	if from > to {
		from = to
	}
	return from, to
}

// EnsureVisible scrolls the viewport so pos is shown, returns the new offset
func (n *Navigator) EnsureVisible(pos, total int) int {
	rows := n.Rows(total)

	if pos >= 0 {
		row := n.Row(pos)
		if row < n.viewportOffset {
			n.viewportOffset = row
		}
		if row >= n.viewportOffset+n.viewportHeight {
			n.viewportOffset = row - n.viewportHeight + 1
		}
	}

	// Keep the viewport filled when the list shrinks
	maxOffset := rows - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
	return n.viewportOffset
}

// Reset scrolls back to the top
func (n *Navigator) Reset() {
	n.viewportOffset = 0
}
