package pretty_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornish/revu/internal/pretty"
	"github.com/cornish/revu/linter"
	"github.com/cornish/revu/overview"
)

func TestIsColorEnabled(t *testing.T) {
	t.Run("always", func(t *testing.T) {
		assert.True(t, pretty.IsColorEnabled("always", &bytes.Buffer{}))
	})

	t.Run("never", func(t *testing.T) {
		assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	})

	t.Run("auto with buffer", func(t *testing.T) {
		assert.False(t, pretty.IsColorEnabled("auto", &bytes.Buffer{}))
	})

	t.Run("auto with NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	})
}

func TestNewStylesNoColor(t *testing.T) {
	s := pretty.NewStyles(false)
	assert.Equal(t, "error", s.Error.Render("error"))
	assert.False(t, s.Hyperlinks)
}

func TestFormatSeverity(t *testing.T) {
	s := pretty.NewStyles(false)
	assert.Equal(t, "error", s.FormatSeverity(linter.SeverityError))
	assert.Equal(t, "warning", s.FormatSeverity(linter.SeverityWarning))
	assert.Equal(t, "notice", s.FormatSeverity(linter.SeverityNotice))
	assert.Equal(t, "other", s.FormatSeverity(linter.SeverityOther))
}

func TestFormatMessage(t *testing.T) {
	s := pretty.NewStyles(false)
	msg := linter.Message{
		Type:    "warning",
		Code:    "UNSAFE_VAR_ASSIGNMENT",
		File:    "lib/main.js",
		Line:    12,
		Column:  4,
		Heading: "Unsafe assignment to &quot;innerHTML&quot;",
		Description: []string{
			"Due to both security and performance concerns, see https://mzl.la/2JCpW8x for details.",
			"",
		},
	}

	got := s.FormatMessage(msg)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `  lib/main.js:12:4  warning  Unsafe assignment to "innerHTML"  (UNSAFE_VAR_ASSIGNMENT)`, lines[0])
	assert.Equal(t, "    Due to both security and performance concerns, see https://mzl.la/2JCpW8x for details.", lines[1])
}

func TestFormatMessageFileLevel(t *testing.T) {
	s := pretty.NewStyles(false)
	got := s.FormatMessage(linter.Message{Type: "notice", File: "manifest.json", Heading: "Missing icon"})
	assert.Equal(t, "  manifest.json  notice  Missing icon\n", got)
}

func TestFormatMessageHyperlinks(t *testing.T) {
	s := pretty.NewStyles(false)
	s.Hyperlinks = true
	got := s.FormatMessage(linter.Message{
		Type:        "error",
		File:        "a.js",
		Heading:     "h",
		Description: []string{"see https://example.com/x"},
	})
	assert.Contains(t, got, ansi.SetHyperlink("https://example.com/x")+"https://example.com/x"+ansi.ResetHyperlink())
	assert.Contains(t, ansi.Strip(got), "    see https://example.com/x\n")
}

func TestFormatFileHeader(t *testing.T) {
	s := pretty.NewStyles(false)
	assert.Equal(t, "a.js", s.FormatFileHeader("a.js", 0))
	assert.Equal(t, "a.js (1 message)", s.FormatFileHeader("a.js", 1))
	assert.Equal(t, "a.js (3 messages)", s.FormatFileHeader("a.js", 3))
}

func TestFormatSummaryOneLine(t *testing.T) {
	s := pretty.NewStyles(false)

	t.Run("clean", func(t *testing.T) {
		assert.Equal(t, "No linter messages\n", s.FormatSummaryOneLine(linter.Summary{}, 4))
	})

	t.Run("mixed", func(t *testing.T) {
		got := s.FormatSummaryOneLine(linter.Summary{Errors: 1, Warnings: 2, Other: 1}, 2)
		assert.Equal(t, "4 messages (1 error, 2 warnings, 1 other) in 2 files\n", got)
	})

	t.Run("single", func(t *testing.T) {
		got := s.FormatSummaryOneLine(linter.Summary{Notices: 1}, 1)
		assert.Equal(t, "1 message (1 notice) in 1 file\n", got)
	})
}

func TestFormatOverview(t *testing.T) {
	s := pretty.NewStyles(false)
	content := "a\n\nfunction x() {}"
	msgs := linter.NewMessageMap([]linter.Message{{UID: "u1", Type: "error", File: "a.js", Line: 3}})
	opts := overview.DefaultOptions()
	opts.Geometry = overview.CellGeometry()

	ov := overview.Build(content, 10, true, msgs, opts)
	got := s.FormatOverview(ov, 4, true)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "#L1"))
	assert.Contains(t, got, "#L3     #### error")
	assert.Equal(t, "3 lines in 8 rows, 1 per row", lines[len(lines)-1])
}
