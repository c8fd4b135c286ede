// Package pretty formats review data for plain terminal output, outside the
// interactive viewer.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Severity styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Notice  lipgloss.Style
	Other   lipgloss.Style

	// Message components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Code     lipgloss.Style
	Heading  lipgloss.Style
	Link     lipgloss.Style

	// Overview
	Glyph  lipgloss.Style
	Anchor lipgloss.Style

	// Summary styles
	Success lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	// Hyperlinks enables OSC 8 links around URLs.
	Hyperlinks bool
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Notice:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Other:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Code:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Heading:  lipgloss.NewStyle(),
		Link:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),

		Glyph:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Anchor: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),

		Hyperlinks: true,
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:    plain,
		Warning:  plain,
		Notice:   plain,
		Other:    plain,
		FilePath: plain,
		Location: plain,
		Code:     plain,
		Heading:  plain,
		Link:     plain,
		Glyph:    plain,
		Anchor:   plain,
		Success:  plain,
		Dim:      plain,
		Bold:     plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
