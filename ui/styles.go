package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cornish/revu/config"
	"github.com/cornish/revu/linter"
)

// UseTrueColor controls whether hex colors use true color (24-bit) or
// fall back to the nearest 256-color. Set to false for older terminals.
var UseTrueColor = true

const resetSGR = "\033[0m"

// ColorToANSIFg converts a theme color string to an ANSI foreground escape sequence
// Supports: "0"-"255" for indexed colors, "#RGB" or "#RRGGBB" for hex colors
func ColorToANSIFg(color string) string {
	return "\033[" + sgr(color, true) + "m"
}

// ColorToANSIBg converts a theme color string to an ANSI background escape sequence
func ColorToANSIBg(color string) string {
	return "\033[" + sgr(color, false) + "m"
}

// ColorToANSI returns combined fg+bg ANSI sequence
func ColorToANSI(fg, bg string) string {
	return "\033[" + sgr(bg, false) + ";" + sgr(fg, true) + "m"
}

// sgr returns the SGR parameters selecting color as foreground or background.
func sgr(color string, fg bool) string {
	base, bright, ext := 40, 100, 48
	if fg {
		base, bright, ext = 30, 90, 38
	}

	if strings.HasPrefix(color, "#") {
		r, g, b, ok := parseHexColor(color)
		switch {
		case !ok && fg:
			return "37"
		case !ok:
			return "40"
		case UseTrueColor:
			return fmt.Sprintf("%d;2;%d;%d;%d", ext, r, g, b)
		default:
			return fmt.Sprintf("%d;5;%d", ext, rgbTo256Color(r, g, b))
		}
	}

	n, err := strconv.Atoi(color)
	switch {
	case err != nil || n < 0 || n > 255:
		if fg {
			return "37"
		}
		return "40"
	case n < 8:
		return strconv.Itoa(base + n)
	case n < 16:
		return strconv.Itoa(bright + n - 8)
	default:
		return fmt.Sprintf("%d;5;%d", ext, n)
	}
}

// cubeLevels are the channel values of the 6x6x6 palette cube.
var cubeLevels = [6]int{0, 95, 135, 175, 215, 255}

// rgbTo256Color converts RGB values to the nearest 256-color palette index
func rgbTo256Color(r, g, b int) int {
	hi, lo := max(r, g, b), min(r, g, b)
	if hi-lo < 20 {
		gray := (r + g + b) / 3
		switch {
		case gray < 4:
			return 16
		case gray > 243:
			return 231
		default:
			return 232 + (gray-8)/10
		}
	}
	return 16 + 36*nearestLevel(r) + 6*nearestLevel(g) + nearestLevel(b)
}

func nearestLevel(v int) int {
	best := 0
	for i, level := range cubeLevels {
		if abs(v-level) < abs(v-cubeLevels[best]) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// parseHexColor parses #RGB or #RRGGBB
func parseHexColor(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// Styles contains all the styles used by the viewer
type Styles struct {
	// The theme these styles were generated from
	Theme config.Theme

	// Header and status bar
	Header       lipgloss.Style
	HeaderAccent lipgloss.Style
	StatusBar    lipgloss.Style
	StatusAccent lipgloss.Style

	// Code view
	LineNumber       lipgloss.Style
	LineNumberActive lipgloss.Style
	CursorLine       lipgloss.Style

	// Linter messages, by variant
	Danger    lipgloss.Style
	Warning   lipgloss.Style
	Secondary lipgloss.Style
	Link      lipgloss.Style

	// Dialog styles
	DialogBox         lipgloss.Style
	DialogTitle       lipgloss.Style
	DialogText        lipgloss.Style
	DialogButton      lipgloss.Style
	DialogButtonFocus lipgloss.Style
	DialogListItem    lipgloss.Style
	DialogListActive  lipgloss.Style

	// General styles
	Subtle lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles creates a Styles configuration from a theme
func NewStyles(theme config.Theme) Styles {
	ui, lint := theme.UI, theme.Linter

	box := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(color)).
			Padding(0, 1)
	}

	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.HeaderBg)).
			Foreground(lipgloss.Color(ui.HeaderFg)),
		HeaderAccent: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.HeaderBg)).
			Foreground(lipgloss.Color(ui.HeaderAccent)).
			Bold(true),
		StatusBar: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusFg)),
		StatusAccent: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.StatusBg)).
			Foreground(lipgloss.Color(ui.StatusAccent)).
			Bold(true),

		LineNumber: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LineNumber)),
		LineNumberActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LineNumberActive)).
			Bold(true),
		CursorLine: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.CursorLineBg)),

		Danger:    box(lint.Danger),
		Warning:   box(lint.Warning),
		Secondary: box(lint.Secondary),
		Link: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.LinkFg)).
			Underline(true),

		DialogBox: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogBg)).
			Foreground(lipgloss.Color(ui.DialogFg)),
		DialogTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DialogTitle)).
			Bold(true),
		DialogText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DialogFg)),
		DialogButton: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogBg)).
			Foreground(lipgloss.Color(ui.DialogFg)).
			Padding(0, 1),
		DialogButtonFocus: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogButton)).
			Foreground(lipgloss.Color(ui.DialogButtonFg)).
			Bold(true).
			Padding(0, 1),
		DialogListItem: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogBg)).
			Foreground(lipgloss.Color(ui.DialogFg)),
		DialogListActive: lipgloss.NewStyle().
			Background(lipgloss.Color(ui.DialogButton)).
			Foreground(lipgloss.Color(ui.DialogButtonFg)),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.DisabledFg)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ui.ErrorFg)).
			Bold(true),
	}
}

// DefaultStyles returns the styles of the default theme
func DefaultStyles() Styles {
	return NewStyles(config.DefaultTheme())
}

// SeverityColor returns the theme color for an overview indicator of sev.
func (s Styles) SeverityColor(sev linter.Severity) string {
	lint := s.Theme.Linter
	switch sev {
	case linter.SeverityError:
		return lint.Danger
	case linter.SeverityWarning:
		return lint.Warning
	case linter.SeverityNotice:
		return lint.Notice
	default:
		return lint.Secondary
	}
}

// VariantStyle returns the message box style for v.
func (s Styles) VariantStyle(v Variant) lipgloss.Style {
	switch v {
	case VariantDanger:
		return s.Danger
	case VariantWarning:
		return s.Warning
	default:
		return s.Secondary
	}
}
