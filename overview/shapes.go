package overview

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// TokenKind classifies a run of columns in a line.
type TokenKind int

const (
	TokenWhitespace TokenKind = iota
	TokenCode
)

// ShapeToken is a run of whitespace or code, as a share of the maximum line width.
type ShapeToken struct {
	Kind           TokenKind
	PercentOfWidth float64
}

// LineShape summarizes one source line for the overview glyph.
type LineShape struct {
	Line   int // 1-indexed
	Tokens []ShapeToken
}

// ShapeOptions tunes shape generation.
type ShapeOptions struct {
	MaxLineLength int // Columns that map to 100% width; longer lines are cut
	TabWidth      int
}

// DefaultShapeOptions returns the standard 80-column, 4-space-tab options.
func DefaultShapeOptions() ShapeOptions {
	return ShapeOptions{MaxLineLength: 80, TabWidth: 4}
}

// GenerateLineShapes returns one LineShape per line, numbered from 1.
func GenerateLineShapes(lines []string, opts ShapeOptions) []LineShape {
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = DefaultShapeOptions().MaxLineLength
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultShapeOptions().TabWidth
	}

	shapes := make([]LineShape, len(lines))
	for i, line := range lines {
		shapes[i] = LineShape{
			Line:   i + 1,
			Tokens: lineTokens(line, opts),
		}
	}
	return shapes
}

func lineTokens(line string, opts ShapeOptions) []ShapeToken {
	var tokens []ShapeToken
	col := 0
	runStart := 0
	runKind := TokenWhitespace
	inRun := false

	flush := func(end int) {
		if inRun && end > runStart {
			tokens = append(tokens, ShapeToken{
				Kind:           runKind,
				PercentOfWidth: float64(end-runStart) / float64(opts.MaxLineLength) * 100,
			})
		}
	}

	for _, r := range line {
		if col >= opts.MaxLineLength {
			break
		}

		kind := TokenCode
		width := runewidth.RuneWidth(r)
		switch {
		case r == '\t':
			kind = TokenWhitespace
			width = opts.TabWidth - col%opts.TabWidth
		case unicode.IsSpace(r):
			kind = TokenWhitespace
			width = 1
		case width == 0:
			// Combining marks add no columns.
			continue
		}

		if !inRun || kind != runKind {
			flush(col)
			runStart = col
			runKind = kind
			inRun = true
		}

		col += width
		if col > opts.MaxLineLength {
			col = opts.MaxLineLength
		}
	}
	flush(col)

	// Trailing whitespace carries no shape.
	if n := len(tokens); n > 0 && tokens[n-1].Kind == TokenWhitespace {
		tokens = tokens[:n-1]
	}
	return tokens
}

// Cells samples the shape into width cells; a cell is true when code covers
// its midpoint.
func (s LineShape) Cells(width int) []bool {
	if width <= 0 {
		return nil
	}
	cells := make([]bool, width)
	for c := range cells {
		mid := (float64(c) + 0.5) / float64(width) * 100
		start := 0.0
		for _, tok := range s.Tokens {
			end := start + tok.PercentOfWidth
			if mid >= start && mid < end {
				cells[c] = tok.Kind == TokenCode
				break
			}
			start = end
		}
	}
	return cells
}

// IsBlank reports whether the line has no code at all.
func (s LineShape) IsBlank() bool {
	for _, tok := range s.Tokens {
		if tok.Kind == TokenCode {
			return false
		}
	}
	return true
}
