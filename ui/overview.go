package ui

import (
	"strings"

	"github.com/cornish/revu/overview"
)

// OverviewView draws an overview.Overview as a column of terminal cells and
// maps mouse positions back to rows.
type OverviewView struct {
	styles   Styles
	geometry overview.Geometry
	width    int
	ascii    bool
	enabled  bool

	ov    overview.Overview
	hover int // Hovered row index, -1 for none
}

// NewOverviewView creates an overview column width cells wide.
func NewOverviewView(styles Styles, geometry overview.Geometry, width int) *OverviewView {
	return &OverviewView{
		styles:   styles,
		geometry: geometry,
		width:    width,
		hover:    -1,
		enabled:  true,
	}
}

// SetEnabled shows or hides the column
func (v *OverviewView) SetEnabled(enabled bool) {
	v.enabled = enabled
}

// IsEnabled returns whether the column is shown
func (v *OverviewView) IsEnabled() bool {
	return v.enabled
}

// Toggle shows or hides the column and returns the new state
func (v *OverviewView) Toggle() bool {
	v.enabled = !v.enabled
	return v.enabled
}

// Width returns the column width including the left separator, or 0 when
// hidden.
func (v *OverviewView) Width() int {
	if !v.enabled {
		return 0
	}
	return v.width + 1
}

// SetWidth sets the glyph width.
func (v *OverviewView) SetWidth(width int) {
	if width > 0 {
		v.width = width
	}
}

// SetASCII switches to ASCII glyphs.
func (v *OverviewView) SetASCII(ascii bool) {
	v.ascii = ascii
}

// SetStyles updates the styles for runtime theme changes
func (v *OverviewView) SetStyles(styles Styles) {
	v.styles = styles
}

// SetGeometry changes the row layout.
func (v *OverviewView) SetGeometry(g overview.Geometry) {
	v.geometry = g
}

// SetOverview replaces the painted rows. The hover is dropped when its row
// no longer exists.
func (v *OverviewView) SetOverview(ov overview.Overview) {
	v.ov = ov
	if v.hover >= len(ov.Rows) {
		v.hover = -1
	}
}

// Overview returns the rows currently drawn.
func (v *OverviewView) Overview() overview.Overview {
	return v.ov
}

// RowAt returns the row under vertical offset y, counted from the top of
// the column. Empty rows and padding report false.
func (v *OverviewView) RowAt(y int) (overview.Row, bool) {
	idx, ok := v.geometry.RowAt(y, len(v.ov.Rows))
	if !ok {
		return overview.Row{}, false
	}
	row := v.ov.Rows[idx]
	if row.Empty() {
		return overview.Row{}, false
	}
	return row, true
}

// Hover marks the row under y and returns its title.
func (v *OverviewView) Hover(y int) string {
	row, ok := v.RowAt(y)
	if !ok {
		v.hover = -1
		return ""
	}
	v.hover = row.Index
	return row.Title
}

// ClearHover removes the hover mark.
func (v *OverviewView) ClearHover() {
	v.hover = -1
}

// Hovered returns the hovered row index, or -1.
func (v *OverviewView) Hovered() int {
	return v.hover
}

func (v *OverviewView) glyphRunes() (code, blank, indicator rune) {
	if v.ascii {
		return '-', ' ', '#'
	}
	return '━', ' ', '█'
}

// Render draws height lines. Rows holding any line of the visible range
// [firstLine, lastLine] are highlighted as the viewport.
func (v *OverviewView) Render(height, firstLine, lastLine int) []string {
	if height <= 0 {
		return nil
	}

	ui := v.styles.Theme.UI
	sep := '│'
	if v.ascii {
		sep = '|'
	}
	blankRow := ColorToANSIFg(ui.LineNumber) + string(sep) + resetSGR + strings.Repeat(" ", v.width)

	out := make([]string, height)
	for y := range out {
		out[y] = blankRow
		idx, ok := v.geometry.RowAt(y, len(v.ov.Rows))
		if !ok {
			continue
		}
		row := v.ov.Rows[idx]
		offset := (y - v.geometry.Padding) % max(v.geometry.LineHeight, 1)
		if row.Empty() || offset < row.PaddingTop {
			continue
		}

		var sb strings.Builder
		sb.WriteString(ColorToANSIFg(ui.LineNumber))
		sb.WriteRune(sep)
		sb.WriteString(resetSGR)

		switch {
		case idx == v.hover:
			sb.WriteString(ColorToANSIBg(ui.OverviewHover))
		case v.inViewport(row, firstLine, lastLine):
			sb.WriteString(ColorToANSIBg(ui.OverviewViewport))
		}
		sb.WriteString(v.rowCells(row))
		sb.WriteString(resetSGR)
		out[y] = sb.String()
	}
	return out
}

func (v *OverviewView) inViewport(row overview.Row, firstLine, lastLine int) bool {
	if lastLine < firstLine {
		return false
	}
	end := row.Line + max(v.ov.ChunkSize, 1) - 1
	return row.Line <= lastLine && end >= firstLine
}

func (v *OverviewView) rowCells(row overview.Row) string {
	code, blank, indicator := v.glyphRunes()

	if row.HasIndicator {
		return ColorToANSIFg(v.styles.SeverityColor(row.Severity)) +
			strings.Repeat(string(indicator), v.width)
	}
	if row.Glyph == nil {
		return strings.Repeat(string(blank), v.width)
	}

	var sb strings.Builder
	sb.WriteString(ColorToANSIFg(v.styles.Theme.UI.OverviewGlyph))
	for _, on := range row.Glyph.Cells(v.width) {
		if on {
			sb.WriteRune(code)
		} else {
			sb.WriteRune(blank)
		}
	}
	return sb.String()
}
