package ui

import "strconv"

// Viewport tracks the visible window and the cursor line of a read-only file.
// Line indexes are 0-based; Line and VisibleRange report 1-based numbers.
type Viewport struct {
	width   int
	height  int
	scrollY int
	scrollX int
	cursor  int
	total   int

	showLineNum    bool
	scrollbarWidth int
}

// NewViewport creates a new viewport
func NewViewport() *Viewport {
	return &Viewport{
		width:       80,
		height:      24,
		showLineNum: true,
	}
}

// SetSize sets the viewport dimensions
func (v *Viewport) SetSize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
	v.clamp()
}

// Width returns the viewport width
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the viewport height
func (v *Viewport) Height() int {
	return v.height
}

// SetTotal sets the number of lines in the file and resets position when
// it shrinks below the cursor.
func (v *Viewport) SetTotal(total int) {
	v.total = max(total, 0)
	v.clamp()
}

// Total returns the number of lines
func (v *Viewport) Total() int {
	return v.total
}

// ScrollY returns the first visible line index
func (v *Viewport) ScrollY() int {
	return v.scrollY
}

// SetScrollY sets the first visible line, clamped to the file
func (v *Viewport) SetScrollY(y int) {
	v.scrollY = y
	v.clamp()
}

// ScrollX returns the horizontal scroll offset in cells
func (v *Viewport) ScrollX() int {
	return v.scrollX
}

// SetScrollX sets the horizontal scroll offset
func (v *Viewport) SetScrollX(x int) {
	v.scrollX = max(x, 0)
}

// Cursor returns the cursor line index
func (v *Viewport) Cursor() int {
	return v.cursor
}

// Line returns the 1-based cursor line, 0 for an empty file
func (v *Viewport) Line() int {
	if v.total == 0 {
		return 0
	}
	return v.cursor + 1
}

// ShowLineNumbers enables or disables the line number gutter
func (v *Viewport) ShowLineNumbers(show bool) {
	v.showLineNum = show
}

// ShowLineNum returns whether line numbers are shown
func (v *Viewport) ShowLineNum() bool {
	return v.showLineNum
}

// SetScrollbarWidth sets the width reserved for the scrollbar
func (v *Viewport) SetScrollbarWidth(width int) {
	v.scrollbarWidth = max(width, 0)
}

// ScrollbarWidth returns the width reserved for the scrollbar
func (v *Viewport) ScrollbarWidth() int {
	return v.scrollbarWidth
}

// GutterWidth returns the width of the severity mark and line number gutter
func (v *Viewport) GutterWidth() int {
	w := 1 // severity mark
	if v.showLineNum {
		w += v.LineNumberWidth() + 1
	}
	return w
}

// LineNumberWidth returns the number of digits of the largest line number
func (v *Viewport) LineNumberWidth() int {
	return max(len(strconv.Itoa(v.total)), 3)
}

// TextWidth returns the cells left for source text
func (v *Viewport) TextWidth() int {
	return max(v.width-v.GutterWidth()-v.scrollbarWidth, 0)
}

// VisibleRange returns the first and last visible 1-based lines.
// last < first when the file is empty.
func (v *Viewport) VisibleRange() (first, last int) {
	first = v.scrollY + 1
	last = min(v.scrollY+v.height, v.total)
	return first, last
}

// SetCursor moves the cursor to line index idx and scrolls it into view
func (v *Viewport) SetCursor(idx int) {
	v.cursor = idx
	v.clamp()
	v.EnsureCursorVisible()
}

// MoveCursor moves the cursor by delta lines
func (v *Viewport) MoveCursor(delta int) {
	v.SetCursor(v.cursor + delta)
}

// GoToLine moves the cursor to 1-based line n and centers it when it was
// off screen.
func (v *Viewport) GoToLine(n int) {
	idx := n - 1
	if idx < v.scrollY || idx >= v.scrollY+v.height {
		v.scrollY = idx - v.height/2
	}
	v.SetCursor(idx)
}

// EnsureCursorVisible scrolls so the cursor line is on screen
func (v *Viewport) EnsureCursorVisible() {
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	}
	if v.height > 0 && v.cursor >= v.scrollY+v.height {
		v.scrollY = v.cursor - v.height + 1
	}
	v.clamp()
}

// ScrollUp scrolls the view up by n lines, dragging the cursor along
func (v *Viewport) ScrollUp(n int) {
	v.scroll(-n)
}

// ScrollDown scrolls the view down by n lines, dragging the cursor along
func (v *Viewport) ScrollDown(n int) {
	v.scroll(n)
}

func (v *Viewport) scroll(delta int) {
	v.scrollY += delta
	v.clamp()
	if v.cursor < v.scrollY {
		v.cursor = v.scrollY
	}
	if v.height > 0 && v.cursor >= v.scrollY+v.height {
		v.cursor = v.scrollY + v.height - 1
	}
	v.clamp()
}

// PageUp moves up one page
func (v *Viewport) PageUp() {
	v.scrollY -= v.height
	v.MoveCursor(-v.height)
}

// PageDown moves down one page
func (v *Viewport) PageDown() {
	v.scrollY += v.height
	v.MoveCursor(v.height)
}

// Top moves to the first line
func (v *Viewport) Top() {
	v.SetCursor(0)
}

// Bottom moves to the last line
func (v *Viewport) Bottom() {
	v.SetCursor(v.total - 1)
}

// LineAtY returns the line index shown at row y of the viewport
func (v *Viewport) LineAtY(y int) (int, bool) {
	if y < 0 || y >= v.height {
		return 0, false
	}
	idx := v.scrollY + y
	if idx >= v.total {
		return 0, false
	}
	return idx, true
}

func (v *Viewport) clamp() {
	maxScroll := max(v.total-v.height, 0)
	v.scrollY = min(max(v.scrollY, 0), maxScroll)
	v.cursor = min(max(v.cursor, 0), max(v.total-1, 0))
}
