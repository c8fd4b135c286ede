package ui

import (
	"testing"

	"github.com/cornish/revu/linter"
)

func TestColorToANSI(t *testing.T) {
	UseTrueColor = true
	tests := []struct {
		color  string
		fg, bg string
	}{
		{"1", "\033[31m", "\033[41m"},
		{"9", "\033[91m", "\033[101m"},
		{"200", "\033[38;5;200m", "\033[48;5;200m"},
		{"#ff0000", "\033[38;2;255;0;0m", "\033[48;2;255;0;0m"},
		{"#fff", "\033[38;2;255;255;255m", "\033[48;2;255;255;255m"},
		{"bogus", "\033[37m", "\033[40m"},
		{"#zzz", "\033[37m", "\033[40m"},
	}
	for _, tt := range tests {
		if got := ColorToANSIFg(tt.color); got != tt.fg {
			t.Errorf("ColorToANSIFg(%q) = %q, want %q", tt.color, got, tt.fg)
		}
		if got := ColorToANSIBg(tt.color); got != tt.bg {
			t.Errorf("ColorToANSIBg(%q) = %q, want %q", tt.color, got, tt.bg)
		}
	}
	if got := ColorToANSI("15", "4"); got != "\033[44;97m" {
		t.Errorf("ColorToANSI() = %q", got)
	}
}

func TestColorFallback256(t *testing.T) {
	UseTrueColor = false
	defer func() { UseTrueColor = true }()

	if got := ColorToANSIFg("#ff0000"); got != "\033[38;5;196m" {
		t.Errorf("ColorToANSIFg(#ff0000) = %q, want 196", got)
	}
	tests := []struct {
		r, g, b, want int
	}{
		{0, 0, 0, 16},
		{255, 255, 255, 231},
		{128, 128, 128, 244},
		{0, 0, 255, 21},
	}
	for _, tt := range tests {
		if got := rgbTo256Color(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("rgbTo256Color(%d,%d,%d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestSeverityColor(t *testing.T) {
	s := DefaultStyles()
	lint := s.Theme.Linter
	tests := map[linter.Severity]string{
		linter.SeverityError:   lint.Danger,
		linter.SeverityWarning: lint.Warning,
		linter.SeverityNotice:  lint.Notice,
		linter.SeverityOther:   lint.Secondary,
	}
	for sev, want := range tests {
		if got := s.SeverityColor(sev); got != want {
			t.Errorf("SeverityColor(%v) = %q, want %q", sev, got, want)
		}
	}
}
