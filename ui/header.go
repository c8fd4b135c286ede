package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// HeaderInfo is what the header bar shows.
type HeaderInfo struct {
	Addon   string
	Mode    string // "browse" or "compare"
	Base    string // Old version, compare mode only
	Head    string // Version being viewed
	Path    string
	Loading bool
}

// RenderHeader renders the top bar width cells wide.
func RenderHeader(info HeaderInfo, width int, styles Styles) string {
	if width <= 0 {
		return ""
	}

	versions := info.Head
	if info.Mode == "compare" && info.Base != "" {
		versions = info.Base + " → " + info.Head
	}

	left := styles.HeaderAccent.Render(" "+info.Addon+" ") +
		styles.Header.Render(" "+info.Mode+" "+versions+" ")
	right := styles.Header.Render(" " + info.Path + " ")
	if info.Loading {
		right = styles.Header.Render(" loading… ") + right
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		return ansi.Truncate(left+right, width, "…")
	}
	return left + styles.Header.Render(strings.Repeat(" ", gap)) + right
}
