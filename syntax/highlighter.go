// Package syntax colours source files for the code view.
package syntax

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Colors holds the theme colour for each token class.
// Values are lipgloss colour strings ("12", "#ff8800").
type Colors struct {
	Keyword  string
	String   string
	Comment  string
	Number   string
	Operator string
	Function string
	Type     string
	Error    string
}

// DefaultColors returns the ANSI-16 palette.
func DefaultColors() Colors {
	return Colors{
		Keyword:  "14", // Bright cyan
		String:   "10", // Bright green
		Comment:  "8",  // Gray
		Number:   "11", // Bright yellow
		Operator: "13", // Bright magenta
		Function: "12", // Bright blue
		Type:     "11", // Bright yellow
		Error:    "9",  // Bright red
	}
}

// ColorSpan is a coloured run of one line.
type ColorSpan struct {
	Start int    // Start column (rune index)
	End   int    // End column (rune index, exclusive)
	Color string // Theme colour
}

// Highlighter colours whole files. Files are tokenised in one pass so that
// multi-line strings and comments come out right.
type Highlighter struct {
	lexer    chroma.Lexer
	language string
	enabled  bool
	colors   Colors
}

// New picks a lexer for filename, falling back to content-based detection.
func New(filename string, content []byte) *Highlighter {
	h := &Highlighter{
		enabled: true,
		colors:  DefaultColors(),
	}
	h.lexer, h.language = detect(filename, content)
	return h
}

func detect(filename string, content []byte) (chroma.Lexer, string) {
	if filename == "" && len(content) == 0 {
		return nil, ""
	}

	if l := lexers.Match(filename); l != nil {
		return chroma.Coalesce(l), l.Config().Name
	}

	// enry knows more filenames and sniffs shebangs and modelines.
	lang := enry.GetLanguage(filename, content)
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return chroma.Coalesce(l), lang
		}
	}

	if l := lexers.Analyse(string(content)); l != nil {
		return chroma.Coalesce(l), l.Config().Name
	}
	return nil, lang
}

// Language returns the detected language name, or "" when unknown.
func (h *Highlighter) Language() string {
	return h.language
}

// SetEnabled turns colouring on or off.
func (h *Highlighter) SetEnabled(enabled bool) {
	h.enabled = enabled
}

// Enabled reports whether colouring is on.
func (h *Highlighter) Enabled() bool {
	return h.enabled
}

// HasLexer reports whether a lexer was found.
func (h *Highlighter) HasLexer() bool {
	return h.lexer != nil
}

// SetColors replaces the token colours.
func (h *Highlighter) SetColors(colors Colors) {
	h.colors = colors
}

// Highlight returns the colour spans of each line of content.
// The result has one entry per line, nil when highlighting is unavailable.
func (h *Highlighter) Highlight(content string) [][]ColorSpan {
	if !h.enabled || h.lexer == nil || content == "" {
		return nil
	}

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return nil
	}

	lines := [][]ColorSpan{nil}
	col := 0
	for _, token := range iterator.Tokens() {
		color := h.tokenColor(token.Type)
		// Tokens may span lines; split them at newlines.
		parts := strings.Split(token.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, nil)
				col = 0
			}
			part = strings.TrimSuffix(part, "\r")
			n := utf8.RuneCountInString(part)
			if color != "" && n > 0 {
				last := len(lines) - 1
				lines[last] = append(lines[last], ColorSpan{Start: col, End: col + n, Color: color})
			}
			col += n
		}
	}

	// Lexers append a trailing newline the source may not have.
	if want := strings.Count(content, "\n") + 1; len(lines) > want {
		lines = lines[:want]
	}
	return lines
}

// ColorAt returns the colour at col, or "" when none applies.
func ColorAt(spans []ColorSpan, col int) string {
	for _, span := range spans {
		if col >= span.Start && col < span.End {
			return span.Color
		}
	}
	return ""
}

func (h *Highlighter) tokenColor(t chroma.TokenType) string {
	switch {
	case t == chroma.Error || t == chroma.GenericError:
		return h.colors.Error
	case t.InCategory(chroma.Keyword):
		return h.colors.Keyword
	case t.InSubCategory(chroma.String):
		return h.colors.String
	case t.InCategory(chroma.Comment):
		return h.colors.Comment
	case t.InSubCategory(chroma.Number), t == chroma.NameConstant:
		return h.colors.Number
	case t.InCategory(chroma.Operator):
		return h.colors.Operator
	case t == chroma.NameFunction, t == chroma.NameFunctionMagic:
		return h.colors.Function
	case t == chroma.NameClass, t == chroma.NameBuiltin, t == chroma.NameBuiltinPseudo,
		t == chroma.GenericHeading, t == chroma.GenericSubheading:
		return h.colors.Type
	default:
		return ""
	}
}
