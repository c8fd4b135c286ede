package ui

import (
	"strings"
)

// Scrollbar is the one-cell vertical scrollbar between the code view and
// the overview column.
type Scrollbar struct {
	height  int
	enabled bool
	ascii   bool
	styles  Styles
}

// NewScrollbar creates a new scrollbar instance
func NewScrollbar(styles Styles) *Scrollbar {
	return &Scrollbar{
		height: 24,
		styles: styles,
	}
}

// Width returns the scrollbar width (1 character, or 0 if disabled)
func (s *Scrollbar) Width() int {
	if !s.enabled {
		return 0
	}
	return 1
}

// SetHeight sets the scrollbar height
func (s *Scrollbar) SetHeight(height int) {
	if height > 0 {
		s.height = height
	}
}

// Height returns the scrollbar height
func (s *Scrollbar) Height() int {
	return s.height
}

// SetEnabled enables or disables the scrollbar
func (s *Scrollbar) SetEnabled(enabled bool) {
	s.enabled = enabled
}

// IsEnabled returns whether the scrollbar is enabled
func (s *Scrollbar) IsEnabled() bool {
	return s.enabled
}

// SetASCII switches to ASCII track and thumb characters
func (s *Scrollbar) SetASCII(ascii bool) {
	s.ascii = ascii
}

// SetStyles updates the styles for runtime theme changes
func (s *Scrollbar) SetStyles(styles Styles) {
	s.styles = styles
}

// thumb returns the first row and size of the thumb.
func (s *Scrollbar) thumb(viewportStart, viewportHeight, totalLines int) (start, size int) {
	totalLines = max(totalLines, 1)
	viewportHeight = max(viewportHeight, 1)

	if totalLines <= viewportHeight {
		return 0, s.height
	}

	// int64 keeps large files from overflowing
	size = int(int64(viewportHeight) * int64(s.height) / int64(totalLines))
	size = min(max(size, 1), s.height)

	maxScroll := totalLines - viewportHeight
	viewportStart = min(max(viewportStart, 0), maxScroll)
	thumbRange := s.height - size
	if thumbRange > 0 {
		start = int(int64(viewportStart) * int64(thumbRange) / int64(maxScroll))
	}
	return min(max(start, 0), s.height-size), size
}

// Render returns one string per row. viewportStart is the first visible
// line index.
func (s *Scrollbar) Render(viewportStart, viewportHeight, totalLines int) []string {
	if !s.enabled || s.height <= 0 {
		return nil
	}

	ui := s.styles.Theme.UI
	track, bar := "│", "┃"
	if s.ascii {
		track, bar = "|", "#"
	}
	trackCell := ColorToANSIFg(ui.LineNumber) + track + resetSGR
	thumbCell := ColorToANSIFg(ui.StatusAccent) + bar + resetSGR

	start, size := s.thumb(viewportStart, viewportHeight, totalLines)
	rows := make([]string, s.height)
	for row := range rows {
		if row >= start && row < start+size {
			rows[row] = thumbCell
		} else {
			rows[row] = trackCell
		}
	}
	return rows
}

// Bar returns the plain characters of Render, for tests and previews.
func (s *Scrollbar) Bar(viewportStart, viewportHeight, totalLines int) string {
	if !s.enabled || s.height <= 0 {
		return ""
	}
	start, size := s.thumb(viewportStart, viewportHeight, totalLines)
	return strings.Repeat("│", start) + strings.Repeat("┃", size) + strings.Repeat("│", s.height-start-size)
}

// RowToLine converts a clicked scrollbar row to the line index to center on.
// It inverts the thumb position used by Render.
func (s *Scrollbar) RowToLine(row int, totalLines, viewportHeight int) int {
	if totalLines <= 0 || s.height <= 0 || totalLines <= viewportHeight {
		return 0
	}
	row = min(max(row, 0), s.height-1)

	_, size := s.thumb(0, viewportHeight, totalLines)
	thumbRange := s.height - size
	maxScroll := totalLines - viewportHeight
	if thumbRange <= 0 {
		return 0
	}

	scrollPos := int(int64(row) * int64(maxScroll) / int64(thumbRange))
	return min(max(scrollPos+viewportHeight/2, 0), totalLines-1)
}
