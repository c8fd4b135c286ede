package overview

// Geometry describes how rows are laid out inside the overview container.
// Units are whatever the host measures in: pixels in a browser, cells in a
// terminal.
type Geometry struct {
	Padding     int // Container padding on each side
	LinePadding int // Top padding of every row except the first
	LineHeight  int // Height of one row, padding included
}

// DefaultGeometry is the pixel layout: 10 padding, 2 line padding, 10 per row.
func DefaultGeometry() Geometry {
	return Geometry{Padding: 10, LinePadding: 2, LineHeight: 10}
}

// CellGeometry is the terminal layout: one cell of padding, one row per cell.
func CellGeometry() Geometry {
	return Geometry{Padding: 1, LinePadding: 0, LineHeight: 1}
}

// RowCount returns how many rows fit in a container of the given outer height.
// The first row carries no padding, which is why one line padding is removed
// up front. The result is never negative.
func (g Geometry) RowCount(height int) int {
	if g.LineHeight <= 0 {
		return 0
	}
	inner := height - 2*g.Padding - g.LinePadding
	if inner <= 0 {
		return 0
	}
	return inner / g.LineHeight
}

// PaddingTop returns the top padding of the row at rowIndex.
func (g Geometry) PaddingTop(rowIndex int) int {
	if rowIndex > 0 {
		return g.LinePadding
	}
	return 0
}

// RowAt maps a vertical offset from the container's top edge to a row index.
// ok is false for offsets inside the container padding or past the last row.
func (g Geometry) RowAt(y, rowCount int) (rowIndex int, ok bool) {
	if g.LineHeight <= 0 {
		return 0, false
	}
	y -= g.Padding
	if y < 0 {
		return 0, false
	}
	rowIndex = y / g.LineHeight
	if rowIndex >= rowCount {
		return 0, false
	}
	return rowIndex, true
}
