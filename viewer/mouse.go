package viewer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cornish/revu/codeview"
)

// handleMouse handles mouse input: overview clicks and hover, clicks in the
// code and scrollbar, and the wheel.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal {
		return m, nil
	}

	// Adjust for header offset
	y := msg.Y - headerHeight
	inBody := y >= 0 && y < m.bodyHeight()
	overviewX := m.width - m.overviewView.Width()
	onOverview := inBody && m.overviewView.IsEnabled() && msg.X >= overviewX

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.viewport.ScrollUp(wheelScrollRows)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.viewport.ScrollDown(wheelScrollRows)
		return m, nil
	}

	if !onOverview {
		if m.overviewView.Hovered() >= 0 {
			m.overviewView.ClearHover()
			m.statusbar.SetHint("")
		}
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		if onOverview {
			m.statusbar.SetHint(m.overviewView.Hover(y))
		}

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inBody {
			return m, nil
		}
		switch {
		case onOverview:
			m.jumpToRow(y)
		case m.scrollbar.IsEnabled() && msg.X == m.viewport.Width()-1 && y < m.viewport.Height():
			line := m.scrollbar.RowToLine(y, m.viewport.Total(), m.viewport.Height())
			m.viewport.GoToLine(line + 1)
		default:
			if idx, ok := m.viewport.LineAtY(y); ok {
				m.viewport.SetCursor(idx)
			}
		}
	}

	return m, nil
}

// jumpToRow follows the anchor of the overview row under y.
func (m *Model) jumpToRow(y int) {
	row, ok := m.overviewView.RowAt(y)
	if !ok {
		return
	}
	line, ok := codeview.ParseLineAnchor(row.Target)
	if !ok {
		return
	}
	m.viewport.GoToLine(line)
}
