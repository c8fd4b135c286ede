package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/ui"
)

// FormatSeverity returns a styled severity name.
func (s *Styles) FormatSeverity(sev linter.Severity) string {
	return s.severityStyle(sev).Render(sev.String())
}

func (s *Styles) severityStyle(sev linter.Severity) lipgloss.Style {
	switch sev {
	case linter.SeverityError:
		return s.Error
	case linter.SeverityWarning:
		return s.Warning
	case linter.SeverityNotice:
		return s.Notice
	default:
		return s.Other
	}
}

// FormatMessage formats one linter message: a location line followed by
// the indented description.
func (s *Styles) FormatMessage(msg linter.Message) string {
	var b strings.Builder

	loc := s.FilePath.Render(msg.File)
	if msg.Line > 0 {
		loc += s.Location.Render(fmt.Sprintf(":%d", msg.Line))
		if msg.Column > 0 {
			loc += s.Location.Render(fmt.Sprintf(":%d", msg.Column))
		}
	}

	fmt.Fprintf(&b, "  %s  %s  %s", loc, s.FormatSeverity(msg.Severity()), s.Heading.Render(ui.UnescapeEntities(msg.Heading)))
	if msg.Code != "" {
		b.WriteString("  " + s.Code.Render("("+msg.Code+")"))
	}
	b.WriteByte('\n')

	for _, line := range msg.Description {
		frags := ui.DescriptionFragments(line)
		if len(frags) == 0 {
			continue
		}
		b.WriteString("    ")
		for _, f := range frags {
			b.WriteString(s.formatFragment(f))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Styles) formatFragment(f ui.Fragment) string {
	if f.Kind != ui.FragmentLink {
		return f.Text
	}
	label := s.Link.Render(f.Text)
	if !s.Hyperlinks {
		return label
	}
	return ansi.SetHyperlink(f.URL) + label + ansi.ResetHyperlink()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, count int) string {
	header := s.FilePath.Render(path)
	if count > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", count, plural(count, "message", "messages")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
