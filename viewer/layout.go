package viewer

import (
	"github.com/cornish/revu/codeview"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/overview"
)

const (
	headerHeight    = 1
	statusHeight    = 1
	maxPanelHeight  = 10
	minCodeHeight   = 3
	wheelScrollRows = 3
)

// resize records the terminal size and feeds the overview sizer. The first
// size mounts the sizer; later ones clear the overview until they settle.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.statusbar.SetWidth(width)
	m.layout()

	m.overviewHeight.Store(int64(m.bodyHeight()))
	if !m.mounted {
		m.mounted = true
		m.sizer.Mount()
		return
	}
	m.feed.Emit()
}

// bodyHeight is the height between the header and the status bar, which is
// also the height of the overview container.
func (m *Model) bodyHeight() int {
	return max(m.height-headerHeight-statusHeight, 0)
}

// panelHeight returns the rows reserved for the linter panel.
func (m *Model) panelHeight() int {
	if !m.showPanel {
		return 0
	}
	body := m.bodyHeight()
	h := min(body/3, maxPanelHeight)
	if body-h < minCodeHeight {
		return 0
	}
	return h
}

// layout sizes the code area from the window and the visible columns.
func (m *Model) layout() {
	codeHeight := m.bodyHeight() - m.panelHeight()
	m.viewport.SetScrollbarWidth(m.scrollbar.Width())
	m.viewport.SetSize(m.width-m.overviewView.Width(), codeHeight)
	m.viewport.EnsureCursorVisible()
	m.scrollbar.SetHeight(codeHeight)
}

// refreshOverview rebuilds the overview from the document, the settled
// height and the messages.
func (m *Model) refreshOverview() {
	if m.doc == nil {
		m.overviewView.SetOverview(overview.Overview{})
		return
	}
	height, measured := m.sizer.Height()
	ov := overview.Build(m.doc.Content(), height, measured, m.doc.Messages, m.cfg.OverviewOptions())
	m.overviewView.SetOverview(ov)
	m.logger.Debug("overview rebuilt",
		logging.FieldHeight, height,
		logging.FieldRows, ov.RowCount,
	)
}

// lineAnchor returns the anchor of the cursor line.
func (m *Model) lineAnchor() string {
	line := m.viewport.Line()
	if line == 0 {
		return ""
	}
	return codeview.LineAnchor(line)
}
