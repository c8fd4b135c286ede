package viewer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cornish/revu/clipboard"
	"github.com/cornish/revu/config"
	"github.com/cornish/revu/internal/logging"
	"github.com/cornish/revu/overview"
	"github.com/cornish/revu/review"
	"github.com/cornish/revu/versions"
)

const manifest = `
addon_id = 7
name = "Tab Stash"
default_path = "background.js"

[[versions]]
id = 10
version = "1.0"
path = "v1"

[[versions]]
id = 20
version = "2.0"
path = "v2"
validation = "v2.json"
`

const report = `{"validation": {"messages": [
  {"uid": "e1", "type": "error", "file": "background.js", "line": 5, "message": "Unsafe call"},
  {"uid": "w1", "type": "warning", "file": "background.js", "line": 20, "message": "Deprecated API"}
]}}`

// manualClock fires timers only when advanced.
type manualClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) overview.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.fn()
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func source(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("var x%d = %d;", i+1, i+1)
	}
	return strings.Join(lines, "\n")
}

type fixture struct {
	m     *Model
	clock *manualClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, review.ManifestTOML), manifest)
	writeFile(t, filepath.Join(dir, "v2.json"), report)
	writeFile(t, filepath.Join(dir, "v1", "background.js"), source(10))
	writeFile(t, filepath.Join(dir, "v2", "background.js"), source(40))
	writeFile(t, filepath.Join(dir, "v2", "lib", "util.js"), "export {}")

	r, err := review.Open(dir)
	require.NoError(t, err)

	clock := &manualClock{}
	m := New(Options{
		Review:    r,
		Config:    config.DefaultConfig(),
		Caps:      &config.TermCapabilities{UTF8Support: true, ColorMode: config.Color256},
		Logger:    logging.NewWithWriter(io.Discard, "error"),
		Clipboard: clipboard.New(&bytes.Buffer{}),
		Clock:     clock,
	})
	t.Cleanup(m.close)

	f := &fixture{m: m, clock: clock}
	f.update(t, tea.WindowSizeMsg{Width: 80, Height: 24})
	f.run(t, m.loadCmd(m.route))
	return f
}

// update feeds msg to the model and returns the resulting command.
func (f *fixture) update(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	model, cmd := f.m.Update(msg)
	require.Same(t, f.m, model)
	return cmd
}

// run executes cmd and feeds its message back, once.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	f.update(t, cmd())
}

func (f *fixture) key(t *testing.T, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+u":
			msg = tea.KeyMsg{Type: tea.KeyCtrlU}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		cmd = f.update(t, msg)
	}
	return cmd
}

func layoutSignalled(m *Model) bool {
	select {
	case <-m.layoutCh:
		return true
	default:
		return false
	}
}

func TestLoadLatestVersion(t *testing.T) {
	f := newFixture(t)
	m := f.m

	require.NotNil(t, m.doc)
	assert.Equal(t, versions.RouteBrowse, m.doc.Route.Kind)
	assert.Equal(t, 20, m.doc.Route.Head)
	assert.Equal(t, "en-US", m.doc.Route.Lang)
	assert.Equal(t, "background.js", m.doc.Route.Path)
	assert.Len(t, m.doc.Lines, 40)
	assert.Equal(t, 2, m.doc.Messages.Len())
	assert.False(t, m.loading)

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 24)
	assert.Contains(t, lines[0], "Tab Stash")
	assert.Contains(t, lines[0], "browse 2.0")
	assert.Contains(t, lines[1], "var x1 = 1;")
	assert.Contains(t, lines[23], "E:1 W:1 N:0")
	assert.Contains(t, lines[23], "Ln 1/40")
}

func TestOverviewFollowsSizer(t *testing.T) {
	f := newFixture(t)
	m := f.m

	ov := m.overviewView.Overview()
	assert.Equal(t, 20, ov.RowCount) // 22 body rows minus 2 padding
	assert.Equal(t, 2, ov.ChunkSize)
	require.True(t, layoutSignalled(m))

	f.update(t, tea.WindowSizeMsg{Width: 80, Height: 30})
	require.True(t, layoutSignalled(m))
	f.update(t, layoutMsg{})
	assert.Equal(t, 0, m.overviewView.Overview().RowCount, "overview hidden until the resize settles")

	f.clock.Advance(150 * time.Millisecond)
	assert.False(t, layoutSignalled(m))

	f.update(t, tea.WindowSizeMsg{Width: 80, Height: 32})
	require.True(t, layoutSignalled(m))

	f.clock.Advance(100 * time.Millisecond)
	assert.False(t, layoutSignalled(m), "second resize restarted the settle delay")

	f.clock.Advance(100 * time.Millisecond)
	require.True(t, layoutSignalled(m))
	f.update(t, layoutMsg{})
	assert.Equal(t, 28, m.overviewView.Overview().RowCount)
}

func TestNextAndPreviousMessage(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, "n")
	assert.Equal(t, 5, m.viewport.Line())
	f.key(t, "n")
	assert.Equal(t, 20, m.viewport.Line())
	f.key(t, "n")
	assert.Equal(t, 5, m.viewport.Line(), "wraps around")
	f.key(t, "N")
	assert.Equal(t, 20, m.viewport.Line())
}

func TestLinterPanelShowsCursorLineMessages(t *testing.T) {
	f := newFixture(t)
	m := f.m

	assert.Contains(t, ansi.Strip(m.View()), "No linter messages on this line")

	f.key(t, "n")
	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Unsafe call")
	assert.NotContains(t, view, "Deprecated API")

	f.key(t, "l")
	assert.NotContains(t, ansi.Strip(m.View()), "Unsafe call")
}

func TestGoToLinePrompt(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, ":")
	assert.Equal(t, ModePrompt, m.mode)
	assert.Contains(t, ansi.Strip(m.View()), "Go to line: _")

	f.key(t, "1", "2", "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 12, m.viewport.Line())

	f.key(t, ":", "x", "enter")
	assert.Equal(t, 12, m.viewport.Line())
	assert.Contains(t, m.statusbar.Message(), "Not a line number")
}

func TestOverviewMouse(t *testing.T) {
	f := newFixture(t)
	m := f.m

	// Row 9 holds lines 19 and 20; line 20 has a warning.
	y := headerHeight + 1 + 9
	f.update(t, tea.MouseMsg{X: 79, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.Equal(t, 9, m.overviewView.Hovered())
	assert.Contains(t, ansi.Strip(m.statusbar.View()), "Jump to line 19")

	f.update(t, tea.MouseMsg{X: 79, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 19, m.viewport.Line())

	f.update(t, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	assert.Equal(t, -1, m.overviewView.Hovered())

	// Padding row above the first overview row
	f.update(t, tea.MouseMsg{X: 79, Y: headerHeight, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 19, m.viewport.Line())
}

func TestCodeClickAndWheel(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.update(t, tea.MouseMsg{X: 10, Y: headerHeight + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 4, m.viewport.Line())

	f.update(t, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, wheelScrollRows, m.viewport.ScrollY())
	f.update(t, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.viewport.ScrollY())
}

func TestToggleOverviewResizesCode(t *testing.T) {
	f := newFixture(t)
	m := f.m

	withOverview := m.viewport.Width()
	f.key(t, "m")
	assert.False(t, m.overviewView.IsEnabled())
	assert.Equal(t, withOverview+m.cfg.Overview.Width+1, m.viewport.Width())
}

func TestChooserCompare(t *testing.T) {
	f := newFixture(t)
	m := f.m

	cmd := f.key(t, "v")
	assert.Equal(t, ModeChooser, m.mode)
	assert.Contains(t, ansi.Strip(m.View()), "Loading versions")

	f.run(t, cmd)
	base, head := m.chooser.Pending()
	assert.Equal(t, 10, base)
	assert.Equal(t, 20, head)

	cmd = f.key(t, "tab", "tab", "enter")
	assert.Equal(t, ModeNormal, m.mode)
	f.run(t, cmd)

	require.NotNil(t, m.doc)
	assert.Equal(t, versions.RouteCompare, m.doc.Route.Kind)
	assert.Equal(t, 10, m.doc.Route.Base)
	assert.Equal(t, "/en-US/compare/7/versions/10...20/?path=background.js", m.route.String())
	assert.Contains(t, ansi.Strip(m.View()), "compare 1.0 → 2.0")
}

func TestChooserEscape(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, "v", "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.False(t, m.chooser.Visible())
}

func TestOpenPathPrompt(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, "o")
	assert.Equal(t, "background.js", m.promptInput)

	cmd := f.key(t, "ctrl+u", "lib/util.js", "enter")
	f.run(t, cmd)
	assert.Equal(t, "lib/util.js", m.doc.Route.Path)
	assert.Equal(t, 20, m.doc.Route.Head)
	assert.Equal(t, 0, m.doc.Messages.Len())
}

func TestOpenRoute(t *testing.T) {
	f := newFixture(t)
	m := f.m

	cmd := f.key(t, "o", "ctrl+u", "/en-US/browse/7/versions/10/", "enter")
	f.run(t, cmd)
	assert.Equal(t, 10, m.doc.Route.Head)
	assert.Len(t, m.doc.Lines, 10)

	assert.Nil(t, f.key(t, "o", "ctrl+u", "/en-US/browse/8/versions/10/", "enter"))
	assert.Equal(t, "Route is for another add-on", m.statusbar.Message())
}

func TestOpenMissingFile(t *testing.T) {
	f := newFixture(t)
	m := f.m

	cmd := f.key(t, "o", "ctrl+u", "nope.js", "enter")
	f.run(t, cmd)
	assert.Contains(t, m.statusbar.Message(), "file not found")
	assert.Equal(t, "background.js", m.doc.Route.Path, "previous document stays")
}

func TestCopyLink(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, "n", "y")
	assert.Equal(t, "/en-US/browse/7/versions/20/?path=background.js#L5", m.clipboard.Last())
	assert.Equal(t, m.Link(), m.clipboard.Last())
}

func TestHelpDialog(t *testing.T) {
	f := newFixture(t)
	m := f.m

	f.key(t, "?")
	assert.Equal(t, ModeHelp, m.mode)
	assert.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")

	f.key(t, "x")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	m := f.m

	cmd := f.key(t, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.sizer.Mounted())
	assert.Error(t, m.ctx.Err())
}
