package config

import (
	"os"
	"strconv"
	"strings"
)

// ColorMode represents the terminal color capability
type ColorMode int

const (
	Color16        ColorMode = iota // Basic 16 colors
	Color256                        // 256 color palette
	ColorTrueColor                  // 24-bit true color
)

// TermCapabilities holds detected terminal capabilities
type TermCapabilities struct {
	UTF8Support bool      // Terminal supports UTF-8
	ColorMode   ColorMode // Color capability level
	Hyperlinks  bool      // Terminal renders OSC 8 hyperlinks
}

// String returns a human-readable description of the color mode
func (c ColorMode) String() string {
	switch c {
	case Color16:
		return "16 colors"
	case Color256:
		return "256 colors"
	case ColorTrueColor:
		return "TrueColor (24-bit)"
	default:
		return "unknown"
	}
}

// DetectCapabilities detects terminal capabilities from environment variables
func DetectCapabilities() *TermCapabilities {
	return &TermCapabilities{
		UTF8Support: detectUTF8Support(),
		ColorMode:   detectColorMode(),
		Hyperlinks:  detectHyperlinks(),
	}
}

// detectUTF8Support checks LC_ALL, LC_CTYPE and LANG for UTF-8
func detectUTF8Support() bool {
	for _, envVar := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := strings.ToUpper(os.Getenv(envVar))
		if strings.Contains(val, "UTF-8") || strings.Contains(val, "UTF8") {
			return true
		}
	}
	return false
}

// detectColorMode detects the terminal's color capability
func detectColorMode() ColorMode {
	colorterm := strings.ToLower(os.Getenv("COLORTERM"))
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	switch {
	case strings.Contains(term, "truecolor"), strings.Contains(term, "24bit"),
		strings.Contains(term, "direct"):
		return ColorTrueColor
	case strings.Contains(term, "256color"), strings.Contains(term, "256-color"):
		return Color256
	}
	return Color16
}

// detectHyperlinks reports whether the terminal is known to render OSC 8 links
func detectHyperlinks() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode", "ghostty", "Hyper":
		return true
	}
	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") || strings.Contains(os.Getenv("TERM"), "foot") {
		return true
	}
	// VTE-based terminals support links from 0.50.
	if v, err := strconv.Atoi(os.Getenv("VTE_VERSION")); err == nil && v >= 5000 {
		return true
	}
	return false
}

// ShouldUseASCII returns true if ASCII mode should be used based on capabilities
// Takes into account both auto-detection and user override
func (c *TermCapabilities) ShouldUseASCII(override *bool) bool {
	if override != nil {
		return *override
	}
	return !c.UTF8Support
}

// ShouldUseTrueColor returns true if TrueColor should be used based on capabilities
// Takes into account both auto-detection and user override
func (c *TermCapabilities) ShouldUseTrueColor(override *bool) bool {
	if override != nil {
		return *override
	}
	return c.ColorMode == ColorTrueColor
}

// GlobalCapabilities holds the detected capabilities (set at startup)
var GlobalCapabilities *TermCapabilities

// InitCapabilities detects and stores terminal capabilities
// Should be called once at startup
func InitCapabilities() {
	GlobalCapabilities = DetectCapabilities()
}

// GetCapabilities returns the global capabilities, detecting if needed
func GetCapabilities() *TermCapabilities {
	if GlobalCapabilities == nil {
		InitCapabilities()
	}
	return GlobalCapabilities
}
