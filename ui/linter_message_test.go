package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornish/revu/linter"
)

func TestVariantFor(t *testing.T) {
	tests := map[string]Variant{
		"error":   VariantDanger,
		"warning": VariantWarning,
		"notice":  VariantSecondary,
		"info":    VariantSecondary,
		"":        VariantSecondary,
	}
	for typ, want := range tests {
		assert.Equal(t, want, VariantFor(typ), "type %q", typ)
	}
	assert.Equal(t, "danger", VariantDanger.String())
	assert.Equal(t, "secondary", VariantSecondary.String())
}

func TestDescriptionFragments(t *testing.T) {
	frags := DescriptionFragments("See https://example.com for &lt;details&gt;")
	require.Len(t, frags, 3)
	assert.Equal(t, Fragment{Kind: FragmentText, Text: "See "}, frags[0])
	assert.Equal(t, Fragment{Kind: FragmentLink, Text: "https://example.com", URL: "https://example.com"}, frags[1])
	assert.Equal(t, Fragment{Kind: FragmentText, Text: " for <details>"}, frags[2])
}

func TestDescriptionFragmentsEdges(t *testing.T) {
	assert.Empty(t, DescriptionFragments("   "))

	frags := DescriptionFragments("  http://a.test  ")
	require.Len(t, frags, 1)
	assert.Equal(t, FragmentLink, frags[0].Kind)

	frags = DescriptionFragments("plain words only")
	require.Len(t, frags, 1)
	assert.Equal(t, "plain words only", frags[0].Text)

	frags = DescriptionFragments("ftp://nope.test is text")
	require.Len(t, frags, 1)
	assert.Equal(t, FragmentText, frags[0].Kind)
}

func TestUnescapeEntitiesIdempotentOnPlainText(t *testing.T) {
	for _, s := range []string{"", "plain", "a < b", "x & y", "emoji ✓"} {
		assert.Equal(t, s, UnescapeEntities(s))
		assert.Equal(t, UnescapeEntities(s), UnescapeEntities(UnescapeEntities(s)))
	}
	assert.Equal(t, `"quoted" & <tag>`, UnescapeEntities("&quot;quoted&quot; &amp; &lt;tag&gt;"))
}

func sampleMessage() linter.Message {
	return linter.Message{
		UID:     "m1",
		Type:    "warning",
		Line:    3,
		Heading: "Unsafe call to &lt;eval&gt;",
		Description: []string{
			"Avoid eval.",
			"See https://example.com/docs for more.",
		},
	}
}

func TestLinterMessageViewPlainText(t *testing.T) {
	v := LinterMessageView{Message: sampleMessage(), Styles: DefaultStyles()}
	assert.Equal(t, VariantWarning, v.Variant())
	assert.Equal(t, "Unsafe call to <eval>", v.Heading())
	assert.Equal(t, "Unsafe call to <eval>\nAvoid eval.\nSee https://example.com/docs for more.", v.PlainText())
}

func TestLinterMessageViewRenderHyperlinks(t *testing.T) {
	msg := sampleMessage()
	link := ansi.SetHyperlink("https://example.com/docs")

	with := LinterMessageView{Message: msg, Width: 60, Hyperlinks: true, Styles: DefaultStyles()}.Render()
	assert.Contains(t, with, link)

	without := LinterMessageView{Message: msg, Width: 60, Styles: DefaultStyles()}.Render()
	assert.NotContains(t, without, link)

	plain := ansi.Strip(without)
	assert.Contains(t, plain, "Unsafe call to <eval>")
	assert.Contains(t, plain, "https://example.com/docs")
	for _, line := range strings.Split(without, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 60)
	}
}

func TestRenderMessagesMostSevereFirst(t *testing.T) {
	msgs := []linter.Message{
		{UID: "a", Type: "notice", Heading: "first notice"},
		{UID: "b", Type: "error", Heading: "an error"},
		{UID: "c", Type: "warning", Heading: "a warning"},
	}
	out := ansi.Strip(RenderMessages(msgs, 40, false, DefaultStyles()))

	errAt := strings.Index(out, "an error")
	warnAt := strings.Index(out, "a warning")
	noticeAt := strings.Index(out, "first notice")
	require.True(t, errAt >= 0 && warnAt >= 0 && noticeAt >= 0)
	assert.Less(t, errAt, warnAt)
	assert.Less(t, warnAt, noticeAt)
	assert.Equal(t, "notice", msgs[0].Type, "input order is left alone")
}
