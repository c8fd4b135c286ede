package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/cornish/revu/linter"
)

// MessageType classifies a temporary status message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageError
	MessageSuccess
)

// StatusBar represents the bottom status bar
type StatusBar struct {
	path       string
	line       int
	totalLines int
	encoding   string
	language   string
	counts     map[linter.Severity]int
	hint       string // Hover title, shown in place of the path
	prompt     string // Active input prompt, replaces everything on the left
	message    string
	msgType    MessageType
	width      int
	styles     Styles
}

// NewStatusBar creates a new status bar
func NewStatusBar(styles Styles) *StatusBar {
	return &StatusBar{
		encoding: "UTF-8",
		styles:   styles,
	}
}

// SetPath sets the file shown
func (s *StatusBar) SetPath(path string) {
	s.path = path
}

// SetPosition sets the 1-based cursor line and the line count
func (s *StatusBar) SetPosition(line, total int) {
	s.line = line
	s.totalLines = total
}

// SetEncoding sets the detected charset name
func (s *StatusBar) SetEncoding(encoding string) {
	s.encoding = encoding
}

// SetLanguage sets the detected language
func (s *StatusBar) SetLanguage(language string) {
	s.language = language
}

// SetCounts sets the message counts of the file
func (s *StatusBar) SetCounts(counts map[linter.Severity]int) {
	s.counts = counts
}

// SetHint shows a transient hint, such as an overview row title
func (s *StatusBar) SetHint(hint string) {
	s.hint = hint
}

// SetPrompt shows an input prompt; an empty string removes it
func (s *StatusBar) SetPrompt(prompt string) {
	s.prompt = prompt
}

// SetMessage sets a temporary message to display
func (s *StatusBar) SetMessage(message string, msgType MessageType) {
	s.message = message
	s.msgType = msgType
}

// ClearMessage clears the temporary message
func (s *StatusBar) ClearMessage() {
	s.message = ""
	s.msgType = MessageInfo
}

// Message returns the temporary message
func (s *StatusBar) Message() string {
	return s.message
}

// SetWidth sets the width of the status bar
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetStyles updates the styles for runtime theme changes
func (s *StatusBar) SetStyles(styles Styles) {
	s.styles = styles
}

// right returns the position and file facts shown on the right.
func (s *StatusBar) right() string {
	parts := make([]string, 0, 4)
	if s.counts != nil {
		parts = append(parts, fmt.Sprintf("E:%d W:%d N:%d",
			s.counts[linter.SeverityError],
			s.counts[linter.SeverityWarning],
			s.counts[linter.SeverityNotice]+s.counts[linter.SeverityOther]))
	}
	parts = append(parts, fmt.Sprintf("Ln %d/%d", s.line, s.totalLines))
	if s.language != "" {
		parts = append(parts, s.language)
	}
	parts = append(parts, s.encoding)
	return " " + strings.Join(parts, " | ") + " "
}

// View renders the status bar
func (s *StatusBar) View() string {
	ui := s.styles.Theme.UI
	normal := ColorToANSI(ui.StatusFg, ui.StatusBg)
	accent := ColorToANSIFg(ui.StatusAccent) + "\033[1m"
	errColor := ColorToANSIFg(ui.ErrorFg) + "\033[1m"
	resetToNormal := ColorToANSIFg(ui.StatusFg) + "\033[22m"

	right := s.right()
	rightLen := runewidth.StringWidth(right)

	var sb strings.Builder
	sb.WriteString(normal)

	if s.prompt != "" {
		avail := max(s.width-rightLen, 0)
		prompt := runewidth.Truncate(s.prompt, avail, "")
		sb.WriteString(accent + prompt + resetToNormal)
		sb.WriteString(strings.Repeat(" ", avail-runewidth.StringWidth(prompt)))
		sb.WriteString(right)
		sb.WriteString(resetSGR)
		return sb.String()
	}

	left := " " + s.path
	if s.hint != "" {
		left = " " + s.hint
	}
	availLeft := max(s.width-rightLen, 0)
	left = runewidth.Truncate(left, availLeft, "…")
	leftLen := runewidth.StringWidth(left)
	sb.WriteString(left)

	space := max(s.width-leftLen-rightLen, 0)
	msgLen := runewidth.StringWidth(s.message)
	if s.message != "" && msgLen+4 <= space {
		leftPad := (space - msgLen) / 2
		sb.WriteString(strings.Repeat(" ", leftPad))
		switch s.msgType {
		case MessageError:
			sb.WriteString(errColor + s.message + resetToNormal)
		case MessageSuccess:
			sb.WriteString(accent + s.message + resetToNormal)
		default:
			sb.WriteString(s.message)
		}
		sb.WriteString(strings.Repeat(" ", space-msgLen-leftPad))
	} else {
		sb.WriteString(strings.Repeat(" ", space))
	}

	if leftLen+rightLen <= s.width {
		sb.WriteString(right)
	}
	sb.WriteString(resetSGR)
	return sb.String()
}
