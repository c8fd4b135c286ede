package ui

import (
	"html"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/cornish/revu/linter"
)

// Variant is the visual class of a message box.
type Variant int

const (
	VariantSecondary Variant = iota
	VariantWarning
	VariantDanger
)

func (v Variant) String() string {
	switch v {
	case VariantDanger:
		return "danger"
	case VariantWarning:
		return "warning"
	default:
		return "secondary"
	}
}

// VariantFor maps a message type to its box variant.
// Notices and unknown types share the secondary variant.
func VariantFor(messageType string) Variant {
	switch linter.ParseSeverity(messageType) {
	case linter.SeverityError:
		return VariantDanger
	case linter.SeverityWarning:
		return VariantWarning
	default:
		return VariantSecondary
	}
}

// FragmentKind tells text from links.
type FragmentKind int

const (
	FragmentText FragmentKind = iota
	FragmentLink
)

// Fragment is a piece of a description line.
type Fragment struct {
	Kind FragmentKind
	Text string
	URL  string // Set for links
}

// UnescapeEntities decodes HTML entities. Plain text comes back unchanged.
func UnescapeEntities(s string) string {
	return html.UnescapeString(s)
}

func isLink(token string) bool {
	return strings.HasPrefix(token, "http://") || strings.HasPrefix(token, "https://")
}

// DescriptionFragments splits one description line into text and link
// fragments. Tokens are separated by single spaces; a token starting with
// http:// or https:// is a link. Adjacent text, separating spaces included,
// is merged into one fragment.
func DescriptionFragments(line string) []Fragment {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var frags []Fragment
	appendText := func(s string) {
		if n := len(frags); n > 0 && frags[n-1].Kind == FragmentText {
			frags[n-1].Text += s
			return
		}
		frags = append(frags, Fragment{Kind: FragmentText, Text: s})
	}

	for i, token := range strings.Split(line, " ") {
		if i > 0 {
			appendText(" ")
		}
		if isLink(token) {
			frags = append(frags, Fragment{Kind: FragmentLink, Text: token, URL: token})
			continue
		}
		if token != "" {
			appendText(UnescapeEntities(token))
		}
	}
	return frags
}

// LinterMessageView renders one linter message as a bordered box.
type LinterMessageView struct {
	Message    linter.Message
	Width      int  // Outer width; 0 sizes the box to its content
	Hyperlinks bool // Emit OSC 8 links
	Styles     Styles
}

// Variant returns the box variant of the message.
func (v LinterMessageView) Variant() Variant {
	return VariantFor(v.Message.Type)
}

// Heading returns the unescaped heading.
func (v LinterMessageView) Heading() string {
	return UnescapeEntities(v.Message.Heading)
}

// Lines returns the description as fragment lines.
func (v LinterMessageView) Lines() [][]Fragment {
	lines := make([][]Fragment, 0, len(v.Message.Description))
	for _, d := range v.Message.Description {
		lines = append(lines, DescriptionFragments(d))
	}
	return lines
}

// PlainText returns the message without styling, one description line per line.
func (v LinterMessageView) PlainText() string {
	var sb strings.Builder
	sb.WriteString(v.Heading())
	for _, frags := range v.Lines() {
		sb.WriteByte('\n')
		for _, f := range frags {
			sb.WriteString(f.Text)
		}
	}
	return sb.String()
}

// Render returns the styled message box.
func (v LinterMessageView) Render() string {
	box := v.Styles.VariantStyle(v.Variant())
	inner := 0
	if v.Width > 0 {
		inner = v.Width - box.GetHorizontalFrameSize()
		if inner < 1 {
			inner = 1
		}
		box = box.Width(v.Width - box.GetHorizontalBorderSize())
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(box.GetBorderTopForeground()).
		Render(v.Heading())

	parts := []string{title}
	for _, frags := range v.Lines() {
		parts = append(parts, v.renderFragments(frags, inner))
	}
	return box.Render(strings.Join(parts, "\n"))
}

func (v LinterMessageView) renderFragments(frags []Fragment, width int) string {
	var sb strings.Builder
	for _, f := range frags {
		switch f.Kind {
		case FragmentLink:
			label := v.Styles.Link.Render(f.Text)
			if v.Hyperlinks {
				sb.WriteString(ansi.SetHyperlink(f.URL))
				sb.WriteString(label)
				sb.WriteString(ansi.ResetHyperlink())
			} else {
				sb.WriteString(label)
			}
		default:
			sb.WriteString(f.Text)
		}
	}
	if width > 0 {
		return ansi.Wrap(sb.String(), width, "")
	}
	return sb.String()
}

// RenderMessages stacks the boxes of msgs, most severe first.
func RenderMessages(msgs []linter.Message, width int, hyperlinks bool, styles Styles) string {
	ordered := make([]linter.Message, len(msgs))
	copy(ordered, msgs)
	sortBySeverity(ordered)

	boxes := make([]string, len(ordered))
	for i, m := range ordered {
		boxes[i] = LinterMessageView{
			Message:    m,
			Width:      width,
			Hyperlinks: hyperlinks,
			Styles:     styles,
		}.Render()
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

func sortBySeverity(msgs []linter.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Severity().MoreSevereThan(msgs[j].Severity())
	})
}
