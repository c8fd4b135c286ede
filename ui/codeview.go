package ui

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/syntax"
)

// RenderState is what the code view needs to draw one frame.
type RenderState struct {
	Lines      []string
	LineColors [][]syntax.ColorSpan // Per line, may be nil
	Messages   *linter.MessageMap

	ScrollY         int
	ScrollX         int
	CursorLine      int // 0-indexed
	TabWidth        int
	ShowLineNumbers bool
	LineNumberWidth int
}

// CodeView renders the source column: severity gutter, line numbers and
// syntax-colored text. It never wraps; long lines are cut at the edge.
type CodeView struct {
	styles Styles
	ascii  bool
}

// NewCodeView creates a code view.
func NewCodeView(styles Styles) *CodeView {
	return &CodeView{styles: styles}
}

// SetStyles updates the styles for runtime theme changes.
func (r *CodeView) SetStyles(styles Styles) {
	r.styles = styles
}

// SetASCII switches the gutter marks to ASCII.
func (r *CodeView) SetASCII(ascii bool) {
	r.ascii = ascii
}

// Render returns height rows, each exactly width cells wide.
func (r *CodeView) Render(width, height int, state *RenderState) []string {
	rows := make([]string, max(height, 0))
	if width <= 0 || state == nil {
		for i := range rows {
			rows[i] = strings.Repeat(" ", max(width, 0))
		}
		return rows
	}

	for row := range rows {
		idx := state.ScrollY + row
		if idx < len(state.Lines) {
			rows[row] = r.renderLine(idx, width, state)
		} else {
			rows[row] = r.renderEmptyLine(width)
		}
	}
	return rows
}

func (r *CodeView) gutter(idx int, state *RenderState) (string, int) {
	var sb strings.Builder
	ui := r.styles.Theme.UI
	w := 0

	// Severity mark
	if msgs := state.Messages.ForLine(idx + 1); len(msgs) > 0 {
		mark := "●"
		if r.ascii {
			mark = "*"
		}
		sb.WriteString(ColorToANSIFg(r.styles.SeverityColor(linter.FindMostSevereType(msgs))))
		sb.WriteString(mark)
		sb.WriteString(resetSGR)
	} else {
		sb.WriteByte(' ')
	}
	w++

	if state.ShowLineNumbers {
		num := strconv.Itoa(idx + 1)
		pad := max(state.LineNumberWidth-len(num), 0)
		color := ui.LineNumber
		if idx == state.CursorLine {
			color = ui.LineNumberActive
		}
		sb.WriteString(strings.Repeat(" ", pad))
		sb.WriteString(ColorToANSIFg(color))
		sb.WriteString(num)
		sb.WriteString(resetSGR)
		sb.WriteByte(' ')
		w += pad + len(num) + 1
	}
	return sb.String(), w
}

// renderLine renders a single line with its gutter.
func (r *CodeView) renderLine(idx, width int, state *RenderState) string {
	var sb strings.Builder
	gutter, gw := r.gutter(idx, state)
	sb.WriteString(gutter)
	width -= gw
	if width <= 0 {
		return sb.String()
	}

	// The cursor line keeps its background across syntax color changes,
	// so colors end with a default-foreground reset, not a full reset.
	lineBg := ""
	fgReset := "\033[39m"
	if idx == state.CursorLine {
		lineBg = ColorToANSIBg(r.styles.Theme.UI.CursorLineBg)
		sb.WriteString(lineBg)
	}

	var colors []syntax.ColorSpan
	if idx < len(state.LineColors) {
		colors = state.LineColors[idx]
	}

	tabWidth := state.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	runes := []rune(state.Lines[idx])
	visualCol := 0
	runeIdx := 0

	// Skip to scroll position
	for runeIdx < len(runes) && visualCol < state.ScrollX {
		visualCol += cellWidth(runes[runeIdx], visualCol, tabWidth)
		runeIdx++
	}

	outputCol := 0
	lastColor := ""
	for runeIdx < len(runes) {
		ru := runes[runeIdx]
		rw := cellWidth(ru, visualCol, tabWidth)
		if outputCol+rw > width {
			break
		}

		if color := syntax.ColorAt(colors, runeIdx); color != lastColor {
			if color == "" {
				sb.WriteString(fgReset)
			} else {
				sb.WriteString(ColorToANSIFg(color))
			}
			lastColor = color
		}

		if ru == '\t' {
			sb.WriteString(strings.Repeat(" ", rw))
		} else {
			sb.WriteRune(ru)
		}

		visualCol += rw
		outputCol += rw
		runeIdx++
	}
	if lastColor != "" {
		sb.WriteString(fgReset)
	}

	// Pad to full width
	if outputCol < width {
		sb.WriteString(strings.Repeat(" ", width-outputCol))
	}
	if lineBg != "" {
		sb.WriteString(resetSGR)
	}
	return sb.String()
}

// renderEmptyLine renders an empty line marker (~).
func (r *CodeView) renderEmptyLine(width int) string {
	var sb strings.Builder
	sb.WriteString(ColorToANSIFg(r.styles.Theme.UI.DisabledFg))
	sb.WriteString("~")
	sb.WriteString(resetSGR)
	if width > 1 {
		sb.WriteString(strings.Repeat(" ", width-1))
	}
	return sb.String()
}

// cellWidth returns the cells ru takes at column col. Tabs advance to the
// next tab stop.
func cellWidth(ru rune, col, tabWidth int) int {
	if ru == '\t' {
		return tabWidth - col%tabWidth
	}
	return runewidth.RuneWidth(ru)
}
