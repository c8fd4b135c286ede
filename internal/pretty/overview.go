package pretty

import (
	"fmt"
	"strings"

	"github.com/cornish/revu/overview"
)

// FormatOverview prints one line per overview row: the row's anchor, its
// glyph or severity block, and for indicators the severity name.
func (s *Styles) FormatOverview(ov overview.Overview, width int, ascii bool) string {
	code, block := "━", "█"
	if ascii {
		code, block = "-", "#"
	}

	var b strings.Builder
	for _, row := range ov.Rows {
		if row.Empty() {
			continue
		}
		anchor := s.Anchor.Render(fmt.Sprintf("%-7s", row.Target))

		switch {
		case row.HasIndicator:
			style := s.severityStyle(row.Severity)
			fmt.Fprintf(&b, "%s %s %s\n", anchor, style.Render(strings.Repeat(block, width)), style.Render(row.Severity.String()))
		case row.Glyph != nil:
			var cells strings.Builder
			for _, on := range row.Glyph.Cells(width) {
				if on {
					cells.WriteString(code)
				} else {
					cells.WriteByte(' ')
				}
			}
			fmt.Fprintf(&b, "%s %s\n", anchor, strings.TrimRight(s.Glyph.Render(cells.String()), " "))
		}
	}

	fmt.Fprintf(&b, "%s\n", s.Dim.Render(fmt.Sprintf("%d lines in %d rows, %d per row",
		ov.TotalLines, ov.RowCount, ov.ChunkSize)))
	return b.String()
}
