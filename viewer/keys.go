package viewer

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/ui"
)

// handleKey handles keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKey(msg)
	case ModeChooser:
		return m.handleChooserKey(msg)
	case ModeHelp:
		// Any key dismisses
		m.mode = ModeNormal
		return m, nil
	}

	m.statusbar.ClearMessage()

	key := msg.String()
	switch m.keys.Action(key) {
	case "quit":
		m.close()
		return m, tea.Quit

	case "help":
		m.mode = ModeHelp

	case "scroll_up":
		m.viewport.MoveCursor(-1)
	case "scroll_down":
		m.viewport.MoveCursor(1)
	case "page_up":
		m.viewport.PageUp()
	case "page_down":
		m.viewport.PageDown()
	case "top":
		m.viewport.Top()
	case "bottom":
		m.viewport.Bottom()

	case "goto_line":
		m.showPrompt("Go to line: ", PromptGoToLine, "")

	case "next_message":
		m.jumpToMessage(true)
	case "prev_message":
		m.jumpToMessage(false)

	case "toggle_overview":
		if m.overviewView.Toggle() {
			m.statusbar.SetMessage("Overview shown", ui.MessageInfo)
		} else {
			m.statusbar.SetMessage("Overview hidden", ui.MessageInfo)
		}
		m.layout()

	case "toggle_linter_panel":
		m.showPanel = !m.showPanel
		m.layout()

	case "toggle_line_numbers":
		m.viewport.ShowLineNumbers(!m.viewport.ShowLineNum())

	case "version_chooser":
		return m, m.openChooser()

	case "open_path":
		m.showPrompt("Open: ", PromptOpenPath, m.route.Path)

	case "copy_link":
		m.copyLink()

	default:
		switch key {
		case "left":
			m.viewport.SetScrollX(m.viewport.ScrollX() - 4)
		case "right":
			m.viewport.SetScrollX(m.viewport.ScrollX() + 4)
		case "esc":
			m.statusbar.SetHint("")
		}
	}

	return m, nil
}

// showPrompt displays a prompt for user input
func (m *Model) showPrompt(text string, action PromptAction, initial string) {
	m.promptText = text
	m.promptInput = initial
	m.promptAction = action
	m.mode = ModePrompt
}

// handlePromptKey handles keyboard input in prompt mode
func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.statusbar.SetMessage("Cancelled", ui.MessageInfo)

	case tea.KeyEnter:
		m.mode = ModeNormal
		return m, m.executePrompt()

	case tea.KeyBackspace:
		if r := []rune(m.promptInput); len(r) > 0 {
			m.promptInput = string(r[:len(r)-1])
		}

	case tea.KeyCtrlU:
		m.promptInput = ""

	case tea.KeyRunes:
		m.promptInput += string(msg.Runes)

	case tea.KeySpace:
		m.promptInput += " "
	}

	return m, nil
}

// executePrompt handles the prompt result based on the action
func (m *Model) executePrompt() tea.Cmd {
	input := strings.TrimSpace(m.promptInput)
	if input == "" {
		return nil
	}

	switch m.promptAction {
	case PromptGoToLine:
		n, err := strconv.Atoi(strings.TrimPrefix(strings.TrimPrefix(input, "#"), "L"))
		if err != nil || n < 1 {
			m.statusbar.SetMessage("Not a line number: "+input, ui.MessageError)
			return nil
		}
		m.viewport.GoToLine(min(n, m.viewport.Total()))

	case PromptOpenPath:
		// A full route switches versions; anything else is a file of the
		// version on screen.
		if strings.HasPrefix(input, "/") || strings.Contains(input, "://") {
			return m.navigate(input)
		}
		return m.openPath(input)
	}
	return nil
}

// jumpToMessage moves the cursor to the next or previous line that has
// linter messages, wrapping around.
func (m *Model) jumpToMessage(forward bool) {
	if m.doc == nil {
		return
	}
	line := m.viewport.Line()
	next, ok := m.doc.Messages.PrevLine(line)
	if forward {
		next, ok = m.doc.Messages.NextLine(line)
	}
	if !ok {
		m.statusbar.SetMessage("No linter messages in this file", ui.MessageInfo)
		return
	}
	m.viewport.GoToLine(next)
}

func (m *Model) copyLink() {
	link := m.Link()
	if link == "" {
		return
	}
	method, err := m.clipboard.Copy(link)
	if err != nil {
		m.logger.Warn("copy link", logging.FieldError, err)
		m.statusbar.SetMessage("Copy failed: "+err.Error(), ui.MessageError)
		return
	}
	m.statusbar.SetMessage("Copied "+link+" ("+method.String()+")", ui.MessageSuccess)
}

// openChooser shows the version chooser, fetching the version list the
// first time.
func (m *Model) openChooser() tea.Cmd {
	m.mode = ModeChooser
	m.chooser.Show()
	needsFetch := m.chooser.Mount()
	m.chooserView.Reset()
	if needsFetch {
		return m.fetchVersionsCmd()
	}
	return nil
}

func (m *Model) closeChooser() {
	m.chooser.Hide()
	m.mode = ModeNormal
}

// handleChooserKey handles keyboard input while the chooser is open
func (m *Model) handleChooserKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.closeChooser()
	case "tab":
		m.chooserView.FocusNext()
	case "shift+tab":
		m.chooserView.FocusPrev()
	case "up", "k", "left", "h":
		m.chooserView.Move(-1)
	case "down", "j", "right", "l":
		m.chooserView.Move(1)
	case "enter", " ":
		route, ok := m.chooserView.Activate()
		if !ok {
			return m, nil
		}
		m.closeChooser()
		return m, m.navigate(route)
	}
	return m, nil
}
